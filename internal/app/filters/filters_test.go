package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/schooldirectory/internal/app/models"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
)

func TestSchoolFilter_Normalize(t *testing.T) {
	f := SchoolFilter{Code: " bka ", Country: "vn", Type: "PUBLIC", Search: "  hanoi "}.Normalize()

	assert.Equal(t, "BKA", f.Code)
	assert.Equal(t, "VN", f.Country)
	assert.Equal(t, "public", f.Type)
	assert.Equal(t, "hanoi", f.Search)
}

func TestSchoolFilter_PredicatesMatchAndRender(t *testing.T) {
	verified := true
	f := SchoolFilter{Country: "vn", Verified: &verified, Search: "tech"}.Normalize()
	preds := f.Predicates()
	require.Len(t, preds, 3)

	hust := &models.School{Code: "BKA", Name: "Hanoi University of Science and Technology", Country: "VN", Verified: true}
	neu := &models.School{Code: "KHA", Name: "National Economics University", Country: "VN", Verified: true}
	mit := &models.School{Code: "MIT", Name: "Massachusetts Institute of Technology", Country: "US", Verified: true}

	assert.True(t, MatchAll(preds, hust))
	assert.False(t, MatchAll(preds, neu))
	assert.False(t, MatchAll(preds, mit))

	sql, args, err := Where(preds).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(country = ? AND verified = ? AND (name ILIKE ? OR code ILIKE ?))", sql)
	assert.Equal(t, []interface{}{"VN", true, "%tech%", "%tech%"}, args)
}

func TestSchoolFilter_VerifiedFalseIsAConstraint(t *testing.T) {
	unverified := false
	preds := SchoolFilter{Verified: &unverified}.Predicates()
	require.Len(t, preds, 1)

	assert.True(t, MatchAll(preds, &models.School{Verified: false}))
	assert.False(t, MatchAll(preds, &models.School{Verified: true}))
}

func TestWhere_NoPredicates(t *testing.T) {
	assert.Nil(t, Where[*models.School](nil))
	assert.True(t, MatchAll[*models.School](nil, &models.School{}))
}

func TestFacultyFilter_SearchesNameAndCode(t *testing.T) {
	code := "SOICT"
	preds := FacultyFilter{SchoolID: "hust", Search: "soict"}.Normalize().Predicates()
	require.Len(t, preds, 2)

	assert.True(t, MatchAll(preds, &models.Faculty{SchoolID: "hust", Name: "School of ICT", Code: &code}))
	assert.False(t, MatchAll(preds, &models.Faculty{SchoolID: "hust", Name: "School of ICT"}))
	assert.False(t, MatchAll(preds, &models.Faculty{SchoolID: "neu", Name: "School of ICT", Code: &code}))
}

func TestValidateWindow(t *testing.T) {
	tests := []struct {
		name  string
		skip  int
		limit int
		ok    bool
	}{
		{"defaults", 0, DefaultLimit, true},
		{"max limit", 10, MaxLimit, true},
		{"negative skip", -1, 10, false},
		{"zero limit", 0, 0, false},
		{"limit too large", 0, MaxLimit + 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := SchoolFilter{Skip: tt.skip, Limit: tt.limit}.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
		})
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, EscapeLike(`50%_off\`))

	sql, args, err := containsAny("a_b", "name").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "(name ILIKE ?)", sql)
	assert.Equal(t, []interface{}{`%a\_b%`}, args)
}
