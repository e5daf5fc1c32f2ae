// Package filters turns optional list criteria into a conjunction of predicates.
//
// Every predicate is built once and rendered two ways: as a squirrel expression for
// the SQL store and as a Go matcher for the in-memory store, so both backends
// apply exactly the same filter semantics.
package filters

import (
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/yigit/schooldirectory/internal/app/models"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
)

// Pagination bounds
const (
	DefaultLimit = 100
	MaxLimit     = 500
)

// Predicate is one condition of a list query
type Predicate[T any] struct {
	// Field names the filter that produced the predicate, for logging and tests.
	Field string
	SQL   squirrel.Sqlizer
	Match func(T) bool
}

// Where combines predicates into a single SQL condition. It returns nil when there is
// nothing to filter on so callers can skip the WHERE clause.
func Where[T any](preds []Predicate[T]) squirrel.Sqlizer {
	if len(preds) == 0 {
		return nil
	}
	and := make(squirrel.And, 0, len(preds))
	for _, p := range preds {
		and = append(and, p.SQL)
	}
	return and
}

// MatchAll reports whether v satisfies every predicate
func MatchAll[T any](preds []Predicate[T], v T) bool {
	for _, p := range preds {
		if !p.Match(v) {
			return false
		}
	}
	return true
}

// SchoolFilter holds the criteria of a school listing. Empty strings and a nil
// Verified mean "no constraint".
type SchoolFilter struct {
	Skip     int
	Limit    int
	Code     string
	Country  string
	Type     string
	Verified *bool
	Search   string
}

// Normalize applies the case rules of each field: code and country are compared
// uppercase, type lowercase.
func (f SchoolFilter) Normalize() SchoolFilter {
	f.Code = strings.ToUpper(strings.TrimSpace(f.Code))
	f.Country = strings.ToUpper(strings.TrimSpace(f.Country))
	f.Type = strings.ToLower(strings.TrimSpace(f.Type))
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// Validate checks the pagination window
func (f SchoolFilter) Validate() error {
	return validateWindow(f.Skip, f.Limit)
}

// Predicates returns the conditions selected by f. f should be normalized first.
func (f SchoolFilter) Predicates() []Predicate[*models.School] {
	var preds []Predicate[*models.School]

	if f.Code != "" {
		code := f.Code
		preds = append(preds, Predicate[*models.School]{
			Field: "code",
			SQL:   squirrel.Eq{"code": code},
			Match: func(s *models.School) bool { return s.Code == code },
		})
	}
	if f.Country != "" {
		country := f.Country
		preds = append(preds, Predicate[*models.School]{
			Field: "country",
			SQL:   squirrel.Eq{"country": country},
			Match: func(s *models.School) bool { return s.Country == country },
		})
	}
	if f.Type != "" {
		schoolType := models.SchoolType(f.Type)
		preds = append(preds, Predicate[*models.School]{
			Field: "type",
			SQL:   squirrel.Eq{"type": string(schoolType)},
			Match: func(s *models.School) bool { return s.Type == schoolType },
		})
	}
	if f.Verified != nil {
		verified := *f.Verified
		preds = append(preds, Predicate[*models.School]{
			Field: "verified",
			SQL:   squirrel.Eq{"verified": verified},
			Match: func(s *models.School) bool { return s.Verified == verified },
		})
	}
	if f.Search != "" {
		search := f.Search
		preds = append(preds, Predicate[*models.School]{
			Field: "search",
			SQL:   containsAny(search, "name", "code"),
			Match: func(s *models.School) bool {
				return containsFold(s.Name, search) || containsFold(s.Code, search)
			},
		})
	}

	return preds
}

// FacultyFilter holds the criteria of a faculty listing
type FacultyFilter struct {
	Skip     int
	Limit    int
	SchoolID string
	Search   string
}

// Normalize trims the free-text fields
func (f FacultyFilter) Normalize() FacultyFilter {
	f.SchoolID = strings.TrimSpace(f.SchoolID)
	f.Search = strings.TrimSpace(f.Search)
	return f
}

// Validate checks the pagination window
func (f FacultyFilter) Validate() error {
	return validateWindow(f.Skip, f.Limit)
}

// Predicates returns the conditions selected by f
func (f FacultyFilter) Predicates() []Predicate[*models.Faculty] {
	var preds []Predicate[*models.Faculty]

	if f.SchoolID != "" {
		schoolID := f.SchoolID
		preds = append(preds, Predicate[*models.Faculty]{
			Field: "school_id",
			SQL:   squirrel.Eq{"school_id": schoolID},
			Match: func(fac *models.Faculty) bool { return fac.SchoolID == schoolID },
		})
	}
	if f.Search != "" {
		search := f.Search
		preds = append(preds, Predicate[*models.Faculty]{
			Field: "search",
			SQL:   containsAny(search, "name", "code"),
			Match: func(fac *models.Faculty) bool {
				if containsFold(fac.Name, search) {
					return true
				}
				return fac.Code != nil && containsFold(*fac.Code, search)
			},
		})
	}

	return preds
}

func validateWindow(skip, limit int) error {
	fields := map[string]string{}
	if skip < 0 {
		fields["skip"] = "skip must be greater than or equal to 0"
	}
	if limit < 1 || limit > MaxLimit {
		fields["limit"] = "limit must be between 1 and 500"
	}
	if len(fields) > 0 {
		return apperrors.NewValidationError("invalid pagination parameters", fields)
	}
	return nil
}

// containsAny matches rows where any of columns contains term, ignoring case
func containsAny(term string, columns ...string) squirrel.Sqlizer {
	pattern := "%" + EscapeLike(term) + "%"
	or := make(squirrel.Or, 0, len(columns))
	for _, col := range columns {
		or = append(or, squirrel.ILike{col: pattern})
	}
	return or
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike makes LIKE metacharacters in s match literally under PostgreSQL's
// default backslash escape.
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
