package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/yigit/schooldirectory/internal/app/filters"
	"github.com/yigit/schooldirectory/internal/app/models"
	"github.com/yigit/schooldirectory/internal/db"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
	"github.com/yigit/schooldirectory/internal/pkg/logger"
)

var facultyColumns = []string{"id", "school_id", "name", "code", "website", "programs"}

// PostgresFacultyRepository handles faculty database operations
type PostgresFacultyRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new PostgresFacultyRepository
func NewFacultyRepository(database *db.PostgresDB, sb squirrel.StatementBuilderType) *PostgresFacultyRepository {
	return &PostgresFacultyRepository{
		db: database,
		sb: sb,
	}
}

func scanFaculty(row pgx.Row) (*models.Faculty, error) {
	var (
		faculty  models.Faculty
		programs []byte
	)
	if err := row.Scan(&faculty.ID, &faculty.SchoolID, &faculty.Name, &faculty.Code, &faculty.Website, &programs); err != nil {
		return nil, err
	}

	faculty.Programs = []string{}
	if len(programs) > 0 {
		if err := json.Unmarshal(programs, &faculty.Programs); err != nil {
			return nil, fmt.Errorf("failed to decode programs of faculty %s: %w", faculty.ID, err)
		}
	}
	return &faculty, nil
}

// listFacultiesWhere runs an unpaginated faculty query ordered by id
func listFacultiesWhere(ctx context.Context, q querier, sb squirrel.StatementBuilderType, pred squirrel.Sqlizer) ([]models.Faculty, error) {
	sql, args, err := sb.Select(facultyColumns...).
		From("faculties").
		Where(pred).
		OrderBy(orderByTextID).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list faculties query: %w", err)
	}
	return queryFaculties(ctx, q, sql, args)
}

func queryFaculties(ctx context.Context, q querier, sql string, args []interface{}) ([]models.Faculty, error) {
	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list faculties query")
		return nil, fmt.Errorf("error querying faculties: %w", err)
	}
	defer rows.Close()

	faculties := []models.Faculty{}
	for rows.Next() {
		faculty, err := scanFaculty(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		faculties = append(faculties, *faculty)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}
	return faculties, nil
}

// GetByID retrieves a faculty by ID
func (r *PostgresFacultyRepository) GetByID(ctx context.Context, id string) (*models.Faculty, error) {
	sql, args, err := r.sb.Select(facultyColumns...).
		From("faculties").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get faculty SQL")
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty, err := scanFaculty(r.db.Pool.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("faculty with id '%s' not found", id))
		}
		logger.Error().Err(err).Str("facultyID", id).Msg("Error executing get faculty query")
		return nil, fmt.Errorf("error getting faculty by ID: %w", err)
	}
	return faculty, nil
}

// BuildListQuery renders the page query for filter. Exposed for tests.
func (r *PostgresFacultyRepository) BuildListQuery(filter filters.FacultyFilter) (string, []interface{}, error) {
	q := r.sb.Select(facultyColumns...).From("faculties")
	if where := filters.Where(filter.Predicates()); where != nil {
		q = q.Where(where)
	}
	return q.OrderBy(orderByTextID).
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Skip)).
		ToSql()
}

// List retrieves one page of faculties matching filter
func (r *PostgresFacultyRepository) List(ctx context.Context, filter filters.FacultyFilter) ([]models.Faculty, error) {
	sql, args, err := r.BuildListQuery(filter)
	if err != nil {
		logger.Error().Err(err).Msg("Error building list faculties SQL")
		return nil, fmt.Errorf("failed to build list faculties query: %w", err)
	}
	return queryFaculties(ctx, r.db.Pool, sql, args)
}

// Count returns the number of faculties matching filter
func (r *PostgresFacultyRepository) Count(ctx context.Context, filter filters.FacultyFilter) (int64, error) {
	q := r.sb.Select("COUNT(*)").From("faculties")
	if where := filters.Where(filter.Predicates()); where != nil {
		q = q.Where(where)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count faculties query: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count faculties query")
		return 0, fmt.Errorf("failed to count faculties: %w", err)
	}
	return total, nil
}
