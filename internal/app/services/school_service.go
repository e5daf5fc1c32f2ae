package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yigit/schooldirectory/internal/app/filters"
	"github.com/yigit/schooldirectory/internal/app/models"
	"github.com/yigit/schooldirectory/internal/app/repositories"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
	"github.com/yigit/schooldirectory/internal/pkg/logger"
	"github.com/yigit/schooldirectory/internal/pkg/validation"
)

// SchoolService defines the interface for school-related operations
type SchoolService interface {
	CreateSchool(ctx context.Context, input *models.SchoolInput) (*models.School, error)
	UpdateSchool(ctx context.Context, id string, input *models.SchoolInput) (*models.School, error)
	DeleteSchool(ctx context.Context, id string) error
	GetSchool(ctx context.Context, id string) (*models.School, error)
	ListSchools(ctx context.Context, filter filters.SchoolFilter) ([]models.School, int64, error)
	GetSchoolFaculties(ctx context.Context, id string) ([]models.Faculty, error)
	GetSchoolCampuses(ctx context.Context, id string) ([]models.Campus, error)
	DeleteAllSchools(ctx context.Context) (int64, error)
}

// schoolServiceImpl implements the SchoolService interface
type schoolServiceImpl struct {
	schoolRepo repositories.SchoolRepository
}

// NewSchoolService creates a new school service instance
func NewSchoolService(schoolRepo repositories.SchoolRepository) SchoolService {
	return &schoolServiceImpl{
		schoolRepo: schoolRepo,
	}
}

// normalizeSchoolInput applies the case and default rules before validation
func normalizeSchoolInput(input *models.SchoolInput) {
	input.ID = strings.TrimSpace(input.ID)
	input.Code = strings.ToUpper(strings.TrimSpace(input.Code))
	input.Name = strings.TrimSpace(input.Name)
	input.Type = strings.ToLower(strings.TrimSpace(input.Type))
	input.Country = strings.ToUpper(strings.TrimSpace(input.Country))
	if input.Country == "" {
		input.Country = models.DefaultCountry
	}
	for i := range input.Faculties {
		input.Faculties[i].ID = strings.TrimSpace(input.Faculties[i].ID)
		input.Faculties[i].Name = strings.TrimSpace(input.Faculties[i].Name)
	}
	for i := range input.Campuses {
		input.Campuses[i].Name = strings.TrimSpace(input.Campuses[i].Name)
	}
}

// validateSchoolInput validates school data before database operations
func validateSchoolInput(input *models.SchoolInput) error {
	if input == nil {
		return apperrors.NewValidationError("school is nil", nil)
	}
	if err := validation.Struct(input); err != nil {
		return err
	}

	seen := make(map[string]int, len(input.Faculties))
	for i, f := range input.Faculties {
		if first, dup := seen[f.ID]; dup {
			field := fmt.Sprintf("faculties[%d].id", i)
			return apperrors.NewValidationError(
				fmt.Sprintf("faculty id '%s' is repeated at faculties[%d] and faculties[%d]", f.ID, first, i),
				map[string]string{field: "faculty id must be unique within the school"},
			)
		}
		seen[f.ID] = i
	}
	return nil
}

func requireID(kind, id string) error {
	if strings.TrimSpace(id) == "" {
		return apperrors.NewValidationError(kind+" id is required", map[string]string{"id": "id is required"})
	}
	return nil
}

// CreateSchool validates the input and stores the school with its children
func (s *schoolServiceImpl) CreateSchool(ctx context.Context, input *models.SchoolInput) (*models.School, error) {
	if input != nil {
		normalizeSchoolInput(input)
	}
	if err := validateSchoolInput(input); err != nil {
		return nil, err
	}

	school := input.ToSchool()
	if err := s.schoolRepo.Create(ctx, school); err != nil {
		return nil, err
	}

	logger.Info().Str("schoolID", school.ID).Str("code", school.Code).
		Int("campuses", len(school.Campuses)).Int("faculties", len(school.Faculties)).
		Msg("School created")
	return school, nil
}

// UpdateSchool replaces the school identified by id. The path id wins over any id in
// the body.
func (s *schoolServiceImpl) UpdateSchool(ctx context.Context, id string, input *models.SchoolInput) (*models.School, error) {
	if err := requireID("school", id); err != nil {
		return nil, err
	}
	if input != nil {
		input.ID = id
		normalizeSchoolInput(input)
	}
	if err := validateSchoolInput(input); err != nil {
		return nil, err
	}

	if err := s.schoolRepo.Update(ctx, input.ToSchool()); err != nil {
		return nil, err
	}

	logger.Info().Str("schoolID", input.ID).Msg("School updated")
	return s.schoolRepo.GetByID(ctx, input.ID)
}

// DeleteSchool removes the school and everything it owns
func (s *schoolServiceImpl) DeleteSchool(ctx context.Context, id string) error {
	if err := requireID("school", id); err != nil {
		return err
	}
	if err := s.schoolRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Str("schoolID", id).Msg("School deleted")
	return nil
}

// GetSchool retrieves a school with campuses and faculties
func (s *schoolServiceImpl) GetSchool(ctx context.Context, id string) (*models.School, error) {
	if err := requireID("school", id); err != nil {
		return nil, err
	}
	return s.schoolRepo.GetByID(ctx, id)
}

// ListSchools returns one page of schools and the total number of matches
func (s *schoolServiceImpl) ListSchools(ctx context.Context, filter filters.SchoolFilter) ([]models.School, int64, error) {
	filter = filter.Normalize()
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	schools, err := s.schoolRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving schools: %w", err)
	}
	total, err := s.schoolRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting schools: %w", err)
	}
	return schools, total, nil
}

// GetSchoolFaculties lists the faculties of a school
func (s *schoolServiceImpl) GetSchoolFaculties(ctx context.Context, id string) ([]models.Faculty, error) {
	if err := requireID("school", id); err != nil {
		return nil, err
	}
	return s.schoolRepo.Faculties(ctx, id)
}

// GetSchoolCampuses lists the campuses of a school
func (s *schoolServiceImpl) GetSchoolCampuses(ctx context.Context, id string) ([]models.Campus, error) {
	if err := requireID("school", id); err != nil {
		return nil, err
	}
	return s.schoolRepo.Campuses(ctx, id)
}

// DeleteAllSchools clears the directory. Used by the importer reset.
func (s *schoolServiceImpl) DeleteAllSchools(ctx context.Context) (int64, error) {
	n, err := s.schoolRepo.DeleteAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("error clearing schools: %w", err)
	}
	logger.Warn().Int64("schools", n).Msg("All schools deleted")
	return n, nil
}
