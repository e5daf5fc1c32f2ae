package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/schooldirectory/internal/app/filters"
	"github.com/yigit/schooldirectory/internal/app/models"
	"github.com/yigit/schooldirectory/internal/app/repositories"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
)

func newTestServices() *Services {
	return NewServices(repositories.NewMemoryRepositories())
}

func hustInput() *models.SchoolInput {
	return &models.SchoolInput{
		ID:      "hust",
		Code:    "bka",
		Name:    "Hanoi University of Science and Technology",
		Type:    "Public",
		Country: "vn",
		Campuses: []models.CampusInput{
			{Name: "Bach Khoa", Address: "1 Dai Co Viet, Hanoi", IsMain: true},
		},
		Faculties: []models.FacultyInput{
			{ID: "hust-soict", Name: "School of ICT", Programs: []string{"Computer Science"}},
		},
		Metadata: models.Metadata{Verified: true, CreatedAt: "2024-01-01", UpdatedAt: "2024-01-01"},
	}
}

func xInput() *models.SchoolInput {
	return &models.SchoolInput{
		ID:      "x",
		Code:    "X",
		Name:    "Xavier Institute",
		Type:    "private",
		Country: "US",
	}
}

func TestCreateSchool_NormalizesInput(t *testing.T) {
	svc := newTestServices()

	school, err := svc.Schools.CreateSchool(context.Background(), hustInput())
	require.NoError(t, err)
	assert.Equal(t, "BKA", school.Code)
	assert.Equal(t, models.SchoolTypePublic, school.Type)
	assert.Equal(t, "VN", school.Country)
	assert.True(t, school.Verified)
	require.Len(t, school.Campuses, 1)
	assert.NotZero(t, school.Campuses[0].ID)
}

func TestCreateSchool_DefaultsCountry(t *testing.T) {
	svc := newTestServices()

	in := xInput()
	in.Country = ""
	school, err := svc.Schools.CreateSchool(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCountry, school.Country)
}

func TestCreateSchool_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*models.SchoolInput)
		field  string
	}{
		{"missing name", func(in *models.SchoolInput) { in.Name = " " }, "name"},
		{"bad type", func(in *models.SchoolInput) { in.Type = "charter" }, "type"},
		{"long code", func(in *models.SchoolInput) { in.Code = "ABCDEFGHIJK" }, "code"},
		{"bad country", func(in *models.SchoolInput) { in.Country = "VNM" }, "country"},
		{"campus without address", func(in *models.SchoolInput) { in.Campuses[0].Address = "" }, "campuses[0].address"},
		{"faculty without id", func(in *models.SchoolInput) { in.Faculties[0].ID = "" }, "faculties[0].id"},
		{"repeated faculty id", func(in *models.SchoolInput) {
			in.Faculties = append(in.Faculties, models.FacultyInput{ID: "hust-soict", Name: "Again"})
		}, "faculties[1].id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices()
			in := hustInput()
			tt.mutate(in)

			_, err := svc.Schools.CreateSchool(context.Background(), in)
			require.ErrorIs(t, err, apperrors.ErrValidationFailed)
			assert.Contains(t, apperrors.DetailsOf(err), tt.field)

			_, err = svc.Schools.GetSchool(context.Background(), "hust")
			assert.ErrorIs(t, err, apperrors.ErrNotFound)
		})
	}
}

func TestCreateSchool_Duplicates(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices()
	_, err := svc.Schools.CreateSchool(ctx, hustInput())
	require.NoError(t, err)

	_, err = svc.Schools.CreateSchool(ctx, hustInput())
	assert.ErrorIs(t, err, apperrors.ErrDuplicateID)

	sameCode := xInput()
	sameCode.Code = "Bka"
	_, err = svc.Schools.CreateSchool(ctx, sameCode)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateCode)

	_, total, err := svc.Schools.ListSchools(ctx, filters.SchoolFilter{Limit: 100})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestUpdateSchool_PathIDWinsAndChildrenReplaced(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices()
	_, err := svc.Schools.CreateSchool(ctx, hustInput())
	require.NoError(t, err)

	in := hustInput()
	in.ID = "ignored"
	in.Campuses = nil
	in.Faculties = []models.FacultyInput{{ID: "hust-sami", Name: "Applied Mathematics"}}
	in.Metadata = models.Metadata{Verified: false, CreatedAt: "2099-01-01", UpdatedAt: "2025-06-01"}

	school, err := svc.Schools.UpdateSchool(ctx, "hust", in)
	require.NoError(t, err)
	assert.Equal(t, "hust", school.ID)
	assert.Equal(t, "2024-01-01", school.CreatedAt)
	assert.Equal(t, "2025-06-01", school.UpdatedAt)
	assert.False(t, school.Verified)
	assert.Empty(t, school.Campuses)
	require.Len(t, school.Faculties, 1)
	assert.Equal(t, "hust-sami", school.Faculties[0].ID)

	_, err = svc.Schools.GetSchool(ctx, "ignored")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, err = svc.Faculties.GetFaculty(ctx, "hust-soict")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUpdateSchool_MissingSchool(t *testing.T) {
	svc := newTestServices()

	_, err := svc.Schools.UpdateSchool(context.Background(), "hust", hustInput())
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestDeleteSchool_CascadesAndReportsMissing(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices()
	_, err := svc.Schools.CreateSchool(ctx, hustInput())
	require.NoError(t, err)

	require.NoError(t, svc.Schools.DeleteSchool(ctx, "hust"))

	_, err = svc.Schools.GetSchoolCampuses(ctx, "hust")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	_, total, err := svc.Faculties.ListFaculties(ctx, filters.FacultyFilter{Limit: 100})
	require.NoError(t, err)
	assert.Zero(t, total)

	assert.ErrorIs(t, svc.Schools.DeleteSchool(ctx, "hust"), apperrors.ErrNotFound)
}

func TestListSchools_Filters(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices()
	_, err := svc.Schools.CreateSchool(ctx, hustInput())
	require.NoError(t, err)
	_, err = svc.Schools.CreateSchool(ctx, xInput())
	require.NoError(t, err)

	byCountry, _, err := svc.Schools.ListSchools(ctx, filters.SchoolFilter{Limit: 100, Country: "vn"})
	require.NoError(t, err)
	require.Len(t, byCountry, 1)
	assert.Equal(t, "hust", byCountry[0].ID)

	bySearch, _, err := svc.Schools.ListSchools(ctx, filters.SchoolFilter{Limit: 100, Search: "hanoi"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "hust", bySearch[0].ID)

	verified := true
	onlyVerified, total, err := svc.Schools.ListSchools(ctx, filters.SchoolFilter{Limit: 100, Verified: &verified})
	require.NoError(t, err)
	assert.Len(t, onlyVerified, 1)
	assert.EqualValues(t, 1, total)

	all, total, err := svc.Schools.ListSchools(ctx, filters.SchoolFilter{Limit: 100})
	require.NoError(t, err)
	assert.Len(t, all, 2)
	assert.EqualValues(t, 2, total)
}

func TestListSchools_PagesAreStable(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices()
	_, err := svc.Schools.CreateSchool(ctx, xInput())
	require.NoError(t, err)
	_, err = svc.Schools.CreateSchool(ctx, hustInput())
	require.NoError(t, err)

	first, total, err := svc.Schools.ListSchools(ctx, filters.SchoolFilter{Skip: 0, Limit: 1})
	require.NoError(t, err)
	second, _, err := svc.Schools.ListSchools(ctx, filters.SchoolFilter{Skip: 1, Limit: 1})
	require.NoError(t, err)

	assert.EqualValues(t, 2, total)
	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.Equal(t, "hust", first[0].ID)
	assert.Equal(t, "x", second[0].ID)
}

func TestListSchools_RejectsBadWindow(t *testing.T) {
	svc := newTestServices()

	_, _, err := svc.Schools.ListSchools(context.Background(), filters.SchoolFilter{Skip: -1, Limit: 10})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, _, err = svc.Schools.ListSchools(context.Background(), filters.SchoolFilter{Limit: 501})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, _, err = svc.Faculties.ListFaculties(context.Background(), filters.FacultyFilter{Limit: 0})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestGetSchoolChildren_EmptyIsNotAnError(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices()
	_, err := svc.Schools.CreateSchool(ctx, xInput())
	require.NoError(t, err)

	campuses, err := svc.Schools.GetSchoolCampuses(ctx, "x")
	require.NoError(t, err)
	assert.Empty(t, campuses)

	faculties, err := svc.Schools.GetSchoolFaculties(ctx, "x")
	require.NoError(t, err)
	assert.Empty(t, faculties)
}

func TestDeleteAllSchools(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices()
	_, err := svc.Schools.CreateSchool(ctx, hustInput())
	require.NoError(t, err)

	n, err := svc.Schools.DeleteAllSchools(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = svc.Faculties.GetFaculty(ctx, "hust-soict")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
