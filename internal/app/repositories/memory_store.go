package repositories

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/yigit/schooldirectory/internal/app/filters"
	"github.com/yigit/schooldirectory/internal/app/models"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
)

// memoryStore keeps the three collections behind one lock. Every mutation
// checks all of its preconditions before touching any map, so a failed write
// leaves no trace.
type memoryStore struct {
	mu           sync.RWMutex
	schools      map[string]*models.School // children stripped
	campuses     map[string][]models.Campus
	faculties    map[string]*models.Faculty
	nextCampusID int64
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		schools:   make(map[string]*models.School),
		campuses:  make(map[string][]models.Campus),
		faculties: make(map[string]*models.Faculty),
	}
}

func copyFaculty(f models.Faculty) models.Faculty {
	programs := make([]string, len(f.Programs))
	copy(programs, f.Programs)
	f.Programs = programs
	return f
}

func copySchoolRow(s *models.School) models.School {
	out := *s
	out.Campuses = nil
	out.Faculties = nil
	return out
}

// codeOwner returns the id of the school holding code, or "" if none does
func (m *memoryStore) codeOwner(code string) string {
	for id, s := range m.schools {
		if s.Code == code {
			return id
		}
	}
	return ""
}

// checkFaculties verifies that the faculty ids of school are distinct and not
// owned by any other school.
func (m *memoryStore) checkFaculties(school *models.School) error {
	seen := make(map[string]struct{}, len(school.Faculties))
	for _, f := range school.Faculties {
		if _, dup := seen[f.ID]; dup {
			return apperrors.NewDuplicateIDError(fmt.Sprintf("faculty with id '%s' already exists", f.ID))
		}
		seen[f.ID] = struct{}{}

		if existing, ok := m.faculties[f.ID]; ok && existing.SchoolID != school.ID {
			return apperrors.NewDuplicateIDError(fmt.Sprintf("faculty with id '%s' already exists", f.ID))
		}
	}
	return nil
}

// putChildren stores copies of the children of school and assigns campus ids in place
func (m *memoryStore) putChildren(school *models.School) {
	campuses := make([]models.Campus, 0, len(school.Campuses))
	for i := range school.Campuses {
		m.nextCampusID++
		school.Campuses[i].ID = m.nextCampusID
		school.Campuses[i].SchoolID = school.ID
		campuses = append(campuses, school.Campuses[i])
	}
	m.campuses[school.ID] = campuses

	for i := range school.Faculties {
		school.Faculties[i].SchoolID = school.ID
		f := copyFaculty(school.Faculties[i])
		m.faculties[f.ID] = &f
	}
}

func (m *memoryStore) dropChildren(schoolID string) {
	delete(m.campuses, schoolID)
	for id, f := range m.faculties {
		if f.SchoolID == schoolID {
			delete(m.faculties, id)
		}
	}
}

func (m *memoryStore) facultiesOf(schoolID string) []models.Faculty {
	out := []models.Faculty{}
	for _, f := range m.faculties {
		if f.SchoolID == schoolID {
			out = append(out, copyFaculty(*f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memoryStore) campusesOf(schoolID string) []models.Campus {
	out := make([]models.Campus, len(m.campuses[schoolID]))
	copy(out, m.campuses[schoolID])
	return out
}

func window[T any](items []T, skip, limit int) []T {
	if skip >= len(items) {
		return []T{}
	}
	end := len(items)
	if limit > 0 && skip+limit < end {
		end = skip + limit
	}
	return items[skip:end]
}

// MemorySchoolRepository is a SchoolRepository kept in process memory
type MemorySchoolRepository struct {
	store *memoryStore
}

// Create inserts the school and its children
func (r *MemorySchoolRepository) Create(_ context.Context, school *models.School) error {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.schools[school.ID]; ok {
		return apperrors.NewDuplicateIDError(fmt.Sprintf("school with id '%s' already exists", school.ID))
	}
	if m.codeOwner(school.Code) != "" {
		return apperrors.NewDuplicateCodeError(fmt.Sprintf("school with code '%s' already exists", school.Code))
	}
	if err := m.checkFaculties(school); err != nil {
		return err
	}

	row := copySchoolRow(school)
	m.schools[school.ID] = &row
	m.putChildren(school)
	return nil
}

// Update overwrites the school and replaces its children
func (r *MemorySchoolRepository) Update(_ context.Context, school *models.School) error {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.schools[school.ID]
	if !ok {
		return schoolNotFound(school.ID)
	}
	if owner := m.codeOwner(school.Code); owner != "" && owner != school.ID {
		return apperrors.NewDuplicateCodeError(fmt.Sprintf("school with code '%s' already exists", school.Code))
	}
	if err := m.checkFaculties(school); err != nil {
		return err
	}

	row := copySchoolRow(school)
	row.CreatedAt = existing.CreatedAt
	m.schools[school.ID] = &row
	m.dropChildren(school.ID)
	m.putChildren(school)
	return nil
}

// Delete removes the school and its children
func (r *MemorySchoolRepository) Delete(_ context.Context, id string) error {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.schools[id]; !ok {
		return schoolNotFound(id)
	}
	m.dropChildren(id)
	delete(m.schools, id)
	return nil
}

// DeleteAll empties the store
func (r *MemorySchoolRepository) DeleteAll(_ context.Context) (int64, error) {
	m := r.store
	m.mu.Lock()
	defer m.mu.Unlock()

	n := int64(len(m.schools))
	m.schools = make(map[string]*models.School)
	m.campuses = make(map[string][]models.Campus)
	m.faculties = make(map[string]*models.Faculty)
	return n, nil
}

// GetByID returns a copy of the school with its children
func (r *MemorySchoolRepository) GetByID(_ context.Context, id string) (*models.School, error) {
	m := r.store
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.schools[id]
	if !ok {
		return nil, schoolNotFound(id)
	}
	out := copySchoolRow(s)
	out.Campuses = m.campusesOf(id)
	out.Faculties = m.facultiesOf(id)
	return &out, nil
}

func (m *memoryStore) matchingSchools(filter filters.SchoolFilter) []models.School {
	preds := filter.Predicates()
	out := []models.School{}
	for _, s := range m.schools {
		if filters.MatchAll(preds, s) {
			out = append(out, copySchoolRow(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// List returns one page of schools ordered by id
func (r *MemorySchoolRepository) List(_ context.Context, filter filters.SchoolFilter) ([]models.School, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return window(r.store.matchingSchools(filter), filter.Skip, filter.Limit), nil
}

// Count returns the number of schools matching filter
func (r *MemorySchoolRepository) Count(_ context.Context, filter filters.SchoolFilter) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.matchingSchools(filter))), nil
}

// Campuses lists the campuses of a school
func (r *MemorySchoolRepository) Campuses(_ context.Context, schoolID string) ([]models.Campus, error) {
	m := r.store
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.schools[schoolID]; !ok {
		return nil, schoolNotFound(schoolID)
	}
	return m.campusesOf(schoolID), nil
}

// Faculties lists the faculties of a school
func (r *MemorySchoolRepository) Faculties(_ context.Context, schoolID string) ([]models.Faculty, error) {
	m := r.store
	m.mu.RLock()
	defer m.mu.RUnlock()

	if _, ok := m.schools[schoolID]; !ok {
		return nil, schoolNotFound(schoolID)
	}
	return m.facultiesOf(schoolID), nil
}

// MemoryFacultyRepository is a FacultyRepository over the same store as
// MemorySchoolRepository
type MemoryFacultyRepository struct {
	store *memoryStore
}

// GetByID returns a copy of the faculty
func (r *MemoryFacultyRepository) GetByID(_ context.Context, id string) (*models.Faculty, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	f, ok := r.store.faculties[id]
	if !ok {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("faculty with id '%s' not found", id))
	}
	out := copyFaculty(*f)
	return &out, nil
}

func (m *memoryStore) matchingFaculties(filter filters.FacultyFilter) []models.Faculty {
	preds := filter.Predicates()
	out := []models.Faculty{}
	for _, f := range m.faculties {
		if filters.MatchAll(preds, f) {
			out = append(out, copyFaculty(*f))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// List returns one page of faculties ordered by id
func (r *MemoryFacultyRepository) List(_ context.Context, filter filters.FacultyFilter) ([]models.Faculty, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return window(r.store.matchingFaculties(filter), filter.Skip, filter.Limit), nil
}

// Count returns the number of faculties matching filter
func (r *MemoryFacultyRepository) Count(_ context.Context, filter filters.FacultyFilter) (int64, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	return int64(len(r.store.matchingFaculties(filter))), nil
}
