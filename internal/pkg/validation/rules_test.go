package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
)

type facultyFixture struct {
	ID   string `json:"id" validate:"required"`
	Name string `json:"name" validate:"required,max=5"`
}

type schoolFixture struct {
	Code      string           `json:"code" validate:"required,max=3"`
	Type      string           `json:"type" validate:"oneof=public private"`
	Country   string           `json:"country" validate:"len=2,alpha"`
	Faculties []facultyFixture `json:"faculties" validate:"dive"`
}

func TestStruct_Valid(t *testing.T) {
	s := schoolFixture{Code: "BKA", Type: "public", Country: "VN", Faculties: []facultyFixture{{ID: "a", Name: "ICT"}}}
	assert.NoError(t, Struct(s))
}

func TestStruct_FieldPathsFollowJSONNames(t *testing.T) {
	s := schoolFixture{
		Code:      "TOOLONG",
		Type:      "charter",
		Country:   "V1",
		Faculties: []facultyFixture{{ID: "a", Name: "ICT"}, {Name: "Mathematics"}},
	}

	err := Struct(s)
	require.ErrorIs(t, err, apperrors.ErrValidationFailed)

	details := apperrors.DetailsOf(err)
	assert.Equal(t, "code must be at most 3 characters", details["code"])
	assert.Equal(t, "type must be one of: public private", details["type"])
	assert.Equal(t, "country must contain letters only", details["country"])
	assert.Equal(t, "faculties[1].id is required", details["faculties[1].id"])
	assert.Equal(t, "faculties[1].name must be at most 5 characters", details["faculties[1].name"])
	assert.Len(t, details, 5)
}

func TestSummary_IsSorted(t *testing.T) {
	got := Summary(map[string]string{"name": "name is required", "code": "code is required"})
	assert.Equal(t, "validation failed: code is required; name is required", got)
}
