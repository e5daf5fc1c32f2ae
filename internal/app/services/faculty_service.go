package services

import (
	"context"
	"fmt"

	"github.com/yigit/schooldirectory/internal/app/filters"
	"github.com/yigit/schooldirectory/internal/app/models"
	"github.com/yigit/schooldirectory/internal/app/repositories"
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	GetFaculty(ctx context.Context, id string) (*models.Faculty, error)
	ListFaculties(ctx context.Context, filter filters.FacultyFilter) ([]models.Faculty, int64, error)
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo repositories.FacultyRepository
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo repositories.FacultyRepository) FacultyService {
	return &facultyServiceImpl{
		facultyRepo: facultyRepo,
	}
}

// GetFaculty retrieves a faculty by ID
func (s *facultyServiceImpl) GetFaculty(ctx context.Context, id string) (*models.Faculty, error) {
	if err := requireID("faculty", id); err != nil {
		return nil, err
	}
	return s.facultyRepo.GetByID(ctx, id)
}

// ListFaculties returns one page of faculties and the total number of matches
func (s *facultyServiceImpl) ListFaculties(ctx context.Context, filter filters.FacultyFilter) ([]models.Faculty, int64, error) {
	filter = filter.Normalize()
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}

	faculties, err := s.facultyRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error retrieving faculties: %w", err)
	}
	total, err := s.facultyRepo.Count(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("error counting faculties: %w", err)
	}
	return faculties, total, nil
}
