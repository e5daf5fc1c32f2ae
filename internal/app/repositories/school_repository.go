package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/yigit/schooldirectory/internal/app/filters"
	"github.com/yigit/schooldirectory/internal/app/models"
	"github.com/yigit/schooldirectory/internal/db"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
	"github.com/yigit/schooldirectory/internal/pkg/dberrors"
	"github.com/yigit/schooldirectory/internal/pkg/logger"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// orderByTextID sorts string ids by byte value, independent of the database locale,
// so pages match the in-memory store.
const orderByTextID = `id COLLATE "C" ASC`

var schoolColumns = []string{
	"id", "code", "name", "logo_url", "description", "type",
	"country", "contact", "verified", "created_at", "updated_at",
}

var campusColumns = []string{"id", "school_id", "name", "address", "is_main"}

// PostgresSchoolRepository handles school database operations
type PostgresSchoolRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewSchoolRepository creates a new PostgresSchoolRepository
func NewSchoolRepository(database *db.PostgresDB, sb squirrel.StatementBuilderType) *PostgresSchoolRepository {
	return &PostgresSchoolRepository{
		db: database,
		sb: sb,
	}
}

func schoolNotFound(id string) error {
	return apperrors.NewNotFoundError(fmt.Sprintf("school with id '%s' not found", id))
}

// lockSchoolID serializes every mutation touching the same school id until the
// surrounding transaction ends. It also covers ids that do not exist yet.
func lockSchoolID(ctx context.Context, tx pgx.Tx, id string) error {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, id); err != nil {
		return fmt.Errorf("failed to lock school %s: %w", id, err)
	}
	return nil
}

func (r *PostgresSchoolRepository) exists(ctx context.Context, q querier, table string, pred squirrel.Sqlizer) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From(table).
		Where(pred).
		Prefix("SELECT EXISTS (").Suffix(")").
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build existence query: %w", err)
	}

	var exists bool
	if err := q.QueryRow(ctx, sql, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("error checking existence in %s: %w", table, err)
	}
	return exists, nil
}

// lockExistingForUpdate row-locks the school and fails with not-found when absent.
func (r *PostgresSchoolRepository) lockExistingForUpdate(ctx context.Context, tx pgx.Tx, id string) error {
	sql, args, err := r.sb.Select("id").
		From("schools").
		Where(squirrel.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build lock school query: %w", err)
	}

	var found string
	if err := tx.QueryRow(ctx, sql, args...).Scan(&found); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schoolNotFound(id)
		}
		return fmt.Errorf("error locking school: %w", err)
	}
	return nil
}

// Create inserts a school with its campuses and faculties in one transaction
func (r *PostgresSchoolRepository) Create(ctx context.Context, school *models.School) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockSchoolID(ctx, tx, school.ID); err != nil {
			return err
		}

		idTaken, err := r.exists(ctx, tx, "schools", squirrel.Eq{"id": school.ID})
		if err != nil {
			return err
		}
		if idTaken {
			return apperrors.NewDuplicateIDError(fmt.Sprintf("school with id '%s' already exists", school.ID))
		}

		codeTaken, err := r.exists(ctx, tx, "schools", squirrel.Eq{"code": school.Code})
		if err != nil {
			return err
		}
		if codeTaken {
			return apperrors.NewDuplicateCodeError(fmt.Sprintf("school with code '%s' already exists", school.Code))
		}

		contact, err := json.Marshal(school.Contact)
		if err != nil {
			return fmt.Errorf("failed to encode contact: %w", err)
		}

		sql, args, err := r.sb.Insert("schools").
			Columns(schoolColumns...).
			Values(school.ID, school.Code, school.Name, school.LogoURL, school.Description, string(school.Type),
				school.Country, contact, school.Verified, school.CreatedAt, school.UpdatedAt).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create school query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return r.mapSchoolWriteError(err, school)
		}

		return r.insertChildren(ctx, tx, school)
	})
}

// Update overwrites a school and replaces its children in one transaction
func (r *PostgresSchoolRepository) Update(ctx context.Context, school *models.School) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockSchoolID(ctx, tx, school.ID); err != nil {
			return err
		}
		if err := r.lockExistingForUpdate(ctx, tx, school.ID); err != nil {
			return err
		}

		codeTaken, err := r.exists(ctx, tx, "schools", squirrel.And{
			squirrel.Eq{"code": school.Code},
			squirrel.NotEq{"id": school.ID},
		})
		if err != nil {
			return err
		}
		if codeTaken {
			return apperrors.NewDuplicateCodeError(fmt.Sprintf("school with code '%s' already exists", school.Code))
		}

		contact, err := json.Marshal(school.Contact)
		if err != nil {
			return fmt.Errorf("failed to encode contact: %w", err)
		}

		sql, args, err := r.sb.Update("schools").
			SetMap(map[string]interface{}{
				"code":        school.Code,
				"name":        school.Name,
				"logo_url":    school.LogoURL,
				"description": school.Description,
				"type":        string(school.Type),
				"country":     school.Country,
				"contact":     contact,
				"verified":    school.Verified,
				"updated_at":  school.UpdatedAt,
				// created_at is owned by the original create
			}).
			Where(squirrel.Eq{"id": school.ID}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update school query: %w", err)
		}

		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return r.mapSchoolWriteError(err, school)
		}

		if err := r.deleteChildren(ctx, tx, school.ID); err != nil {
			return err
		}
		return r.insertChildren(ctx, tx, school)
	})
}

// Delete removes a school, its campuses and its faculties in one transaction
func (r *PostgresSchoolRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := lockSchoolID(ctx, tx, id); err != nil {
			return err
		}
		if err := r.lockExistingForUpdate(ctx, tx, id); err != nil {
			return err
		}

		if err := r.deleteChildren(ctx, tx, id); err != nil {
			return err
		}

		sql, args, err := r.sb.Delete("schools").Where(squirrel.Eq{"id": id}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete school query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Str("schoolID", id).Msg("Error executing delete school query")
			return fmt.Errorf("error deleting school: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return schoolNotFound(id)
		}
		return nil
	})
}

// DeleteAll empties the three collections
func (r *PostgresSchoolRepository) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := r.db.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for _, table := range []string{"campuses", "faculties"} {
			if _, err := tx.Exec(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("error clearing %s: %w", table, err)
			}
		}
		cmdTag, err := tx.Exec(ctx, "DELETE FROM schools")
		if err != nil {
			return fmt.Errorf("error clearing schools: %w", err)
		}
		deleted = cmdTag.RowsAffected()
		return nil
	})
	return deleted, err
}

func (r *PostgresSchoolRepository) deleteChildren(ctx context.Context, tx pgx.Tx, schoolID string) error {
	for _, table := range []string{"campuses", "faculties"} {
		sql, args, err := r.sb.Delete(table).Where(squirrel.Eq{"school_id": schoolID}).ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete %s query: %w", table, err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			logger.Error().Err(err).Str("schoolID", schoolID).Str("table", table).Msg("Error deleting children")
			return fmt.Errorf("error deleting %s of school %s: %w", table, schoolID, err)
		}
	}
	return nil
}

func (r *PostgresSchoolRepository) insertChildren(ctx context.Context, tx pgx.Tx, school *models.School) error {
	for i := range school.Campuses {
		campus := &school.Campuses[i]
		campus.SchoolID = school.ID

		sql, args, err := r.sb.Insert("campuses").
			Columns("school_id", "name", "address", "is_main").
			Values(campus.SchoolID, campus.Name, campus.Address, campus.IsMain).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create campus query: %w", err)
		}
		if err := tx.QueryRow(ctx, sql, args...).Scan(&campus.ID); err != nil {
			return fmt.Errorf("error creating campus %q: %w", campus.Name, err)
		}
	}

	for i := range school.Faculties {
		faculty := &school.Faculties[i]
		faculty.SchoolID = school.ID
		if faculty.Programs == nil {
			faculty.Programs = []string{}
		}

		programs, err := json.Marshal(faculty.Programs)
		if err != nil {
			return fmt.Errorf("failed to encode programs: %w", err)
		}

		sql, args, err := r.sb.Insert("faculties").
			Columns("id", "school_id", "name", "code", "website", "programs").
			Values(faculty.ID, faculty.SchoolID, faculty.Name, faculty.Code, faculty.Website, programs).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create faculty query: %w", err)
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			if dberrors.IsDuplicateConstraintError(err, dberrors.FacultiesPrimaryKey) {
				return apperrors.NewDuplicateIDError(fmt.Sprintf("faculty with id '%s' already exists", faculty.ID))
			}
			return fmt.Errorf("error creating faculty %q: %w", faculty.ID, err)
		}
	}

	return nil
}

// mapSchoolWriteError turns constraint violations that slipped past the prechecks
// into the typed duplicate errors.
func (r *PostgresSchoolRepository) mapSchoolWriteError(err error, school *models.School) error {
	switch {
	case dberrors.IsDuplicateConstraintError(err, dberrors.SchoolsPrimaryKey):
		return apperrors.NewDuplicateIDError(fmt.Sprintf("school with id '%s' already exists", school.ID))
	case dberrors.IsDuplicateConstraintError(err, dberrors.SchoolsCodeKey):
		return apperrors.NewDuplicateCodeError(fmt.Sprintf("school with code '%s' already exists", school.Code))
	}
	logger.Error().Err(err).Str("schoolID", school.ID).Msg("Error writing school row")
	return fmt.Errorf("error writing school: %w", err)
}

func scanSchool(row pgx.Row) (*models.School, error) {
	var (
		school     models.School
		schoolType string
		contact    []byte
	)
	err := row.Scan(
		&school.ID, &school.Code, &school.Name, &school.LogoURL, &school.Description, &schoolType,
		&school.Country, &contact, &school.Verified, &school.CreatedAt, &school.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	school.Type = models.SchoolType(schoolType)
	if len(contact) > 0 {
		if err := json.Unmarshal(contact, &school.Contact); err != nil {
			return nil, fmt.Errorf("failed to decode contact of school %s: %w", school.ID, err)
		}
	}
	return &school, nil
}

// GetByID retrieves a school and its children from a single snapshot
func (r *PostgresSchoolRepository) GetByID(ctx context.Context, id string) (*models.School, error) {
	var school *models.School
	err := r.db.WithReadTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Select(schoolColumns...).
			From("schools").
			Where(squirrel.Eq{"id": id}).
			Limit(1).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build get school query: %w", err)
		}

		school, err = scanSchool(tx.QueryRow(ctx, sql, args...))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return schoolNotFound(id)
			}
			logger.Error().Err(err).Str("schoolID", id).Msg("Error scanning school row")
			return fmt.Errorf("error getting school by ID: %w", err)
		}

		if school.Campuses, err = r.listCampuses(ctx, tx, id); err != nil {
			return err
		}
		school.Faculties, err = listFacultiesWhere(ctx, tx, r.sb, squirrel.Eq{"school_id": id})
		return err
	})
	if err != nil {
		return nil, err
	}
	return school, nil
}

// BuildListQuery renders the page query for filter. Exposed for tests.
func (r *PostgresSchoolRepository) BuildListQuery(filter filters.SchoolFilter) (string, []interface{}, error) {
	q := r.sb.Select(schoolColumns...).From("schools")
	if where := filters.Where(filter.Predicates()); where != nil {
		q = q.Where(where)
	}
	return q.OrderBy(orderByTextID).
		Limit(uint64(filter.Limit)).
		Offset(uint64(filter.Skip)).
		ToSql()
}

// List retrieves one page of schools matching filter
func (r *PostgresSchoolRepository) List(ctx context.Context, filter filters.SchoolFilter) ([]models.School, error) {
	sql, args, err := r.BuildListQuery(filter)
	if err != nil {
		logger.Error().Err(err).Msg("Error building list schools SQL")
		return nil, fmt.Errorf("failed to build list schools query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list schools query")
		return nil, fmt.Errorf("error querying schools: %w", err)
	}
	defer rows.Close()

	schools := []models.School{}
	for rows.Next() {
		school, err := scanSchool(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning school row: %w", err)
		}
		schools = append(schools, *school)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating school rows: %w", err)
	}
	return schools, nil
}

// Count returns the number of schools matching filter
func (r *PostgresSchoolRepository) Count(ctx context.Context, filter filters.SchoolFilter) (int64, error) {
	q := r.sb.Select("COUNT(*)").From("schools")
	if where := filters.Where(filter.Predicates()); where != nil {
		q = q.Where(where)
	}
	sql, args, err := q.ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build count schools query: %w", err)
	}

	var total int64
	if err := r.db.Pool.QueryRow(ctx, sql, args...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error executing count schools query")
		return 0, fmt.Errorf("failed to count schools: %w", err)
	}
	return total, nil
}

// Campuses lists the campuses of a school, failing when the school is absent
func (r *PostgresSchoolRepository) Campuses(ctx context.Context, schoolID string) ([]models.Campus, error) {
	var campuses []models.Campus
	err := r.db.WithReadTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		found, err := r.exists(ctx, tx, "schools", squirrel.Eq{"id": schoolID})
		if err != nil {
			return err
		}
		if !found {
			return schoolNotFound(schoolID)
		}
		campuses, err = r.listCampuses(ctx, tx, schoolID)
		return err
	})
	return campuses, err
}

// Faculties lists the faculties of a school, failing when the school is absent
func (r *PostgresSchoolRepository) Faculties(ctx context.Context, schoolID string) ([]models.Faculty, error) {
	var faculties []models.Faculty
	err := r.db.WithReadTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		found, err := r.exists(ctx, tx, "schools", squirrel.Eq{"id": schoolID})
		if err != nil {
			return err
		}
		if !found {
			return schoolNotFound(schoolID)
		}
		faculties, err = listFacultiesWhere(ctx, tx, r.sb, squirrel.Eq{"school_id": schoolID})
		return err
	})
	return faculties, err
}

func (r *PostgresSchoolRepository) listCampuses(ctx context.Context, q querier, schoolID string) ([]models.Campus, error) {
	sql, args, err := r.sb.Select(campusColumns...).
		From("campuses").
		Where(squirrel.Eq{"school_id": schoolID}).
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build list campuses query: %w", err)
	}

	rows, err := q.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying campuses: %w", err)
	}
	defer rows.Close()

	campuses := []models.Campus{}
	for rows.Next() {
		var c models.Campus
		if err := rows.Scan(&c.ID, &c.SchoolID, &c.Name, &c.Address, &c.IsMain); err != nil {
			return nil, fmt.Errorf("error scanning campus row: %w", err)
		}
		campuses = append(campuses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating campus rows: %w", err)
	}
	return campuses, nil
}
