package repositories

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/schooldirectory/internal/app/filters"
	"github.com/yigit/schooldirectory/internal/app/models"
	"github.com/yigit/schooldirectory/internal/db"
)

// SchoolRepository persists schools together with the campuses and faculties they own.
//
// Mutations are atomic: a school and all of its children are written, replaced or
// removed as one unit. Implementations return errors wrapping apperrors.ErrNotFound,
// ErrDuplicateID or ErrDuplicateCode for the corresponding outcomes.
type SchoolRepository interface {
	// Create inserts the school and its children. Campus IDs are assigned in place.
	Create(ctx context.Context, school *models.School) error
	// Update overwrites the top-level fields (created_at excepted) and replaces both
	// child collections wholesale. Campus IDs are assigned in place.
	Update(ctx context.Context, school *models.School) error
	// Delete removes the school and every campus and faculty it owns.
	Delete(ctx context.Context, id string) error
	// GetByID returns the school with campuses and faculties populated.
	GetByID(ctx context.Context, id string) (*models.School, error)
	// List returns one page of schools without children, ordered by id.
	List(ctx context.Context, filter filters.SchoolFilter) ([]models.School, error)
	// Count returns how many schools match filter, ignoring the page window.
	Count(ctx context.Context, filter filters.SchoolFilter) (int64, error)
	// Campuses lists the campuses of an existing school.
	Campuses(ctx context.Context, schoolID string) ([]models.Campus, error)
	// Faculties lists the faculties of an existing school.
	Faculties(ctx context.Context, schoolID string) ([]models.Faculty, error)
	// DeleteAll removes every school, campus and faculty and reports the school count.
	DeleteAll(ctx context.Context) (int64, error)
}

// FacultyRepository reads faculties across all schools
type FacultyRepository interface {
	GetByID(ctx context.Context, id string) (*models.Faculty, error)
	List(ctx context.Context, filter filters.FacultyFilter) ([]models.Faculty, error)
	Count(ctx context.Context, filter filters.FacultyFilter) (int64, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	Schools   SchoolRepository
	Faculties FacultyRepository
}

// NewRepositories initializes the PostgreSQL repositories
func NewRepositories(database *db.PostgresDB) *Repositories {
	sb := squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)
	return &Repositories{
		Schools:   NewSchoolRepository(database, sb),
		Faculties: NewFacultyRepository(database, sb),
	}
}

// NewMemoryRepositories initializes repositories backed by a shared in-process store
func NewMemoryRepositories() *Repositories {
	store := newMemoryStore()
	return &Repositories{
		Schools:   &MemorySchoolRepository{store: store},
		Faculties: &MemoryFacultyRepository{store: store},
	}
}
