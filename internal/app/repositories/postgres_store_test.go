package repositories

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/schooldirectory/internal/app/filters"
	"github.com/yigit/schooldirectory/internal/app/migrations"
	"github.com/yigit/schooldirectory/internal/db"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
	"github.com/yigit/schooldirectory/internal/pkg/dberrors"
)

// newPostgresRepositories connects to DATABASE_URL, applies the migrations and empties
// the tables. The database must be disposable.
func newPostgresRepositories(t *testing.T) (*Repositories, *pgxpool.Pool) {
	t.Helper()
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, databaseURL)
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, pool.Ping(ctx))

	migrator := migrations.NewMigrator(pool, zerolog.Nop())
	require.NoError(t, migrator.MigrateFromDirectory(ctx, filepath.Join("..", "..", "..", "migrations")))

	repos := NewRepositories(&db.PostgresDB{Pool: pool})
	_, err = repos.Schools.DeleteAll(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _, _ = repos.Schools.DeleteAll(context.Background()) })

	return repos, pool
}

func countRows(t *testing.T, pool *pgxpool.Pool, table, schoolID string) int {
	t.Helper()
	var n int
	column := "school_id"
	if table == "schools" {
		column = "id"
	}
	err := pool.QueryRow(context.Background(), "SELECT count(*) FROM "+table+" WHERE "+column+" = $1", schoolID).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestPostgres_ConstraintNamesMatchSchema(t *testing.T) {
	_, pool := newPostgresRepositories(t)

	for _, name := range []string{dberrors.SchoolsPrimaryKey, dberrors.SchoolsCodeKey, dberrors.FacultiesPrimaryKey} {
		var exists bool
		err := pool.QueryRow(context.Background(),
			"SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = $1)", name).Scan(&exists)
		require.NoError(t, err)
		assert.True(t, exists, name)
	}
}

func TestPostgresCreate_ReadsBackWithChildren(t *testing.T) {
	ctx := context.Background()
	repos, _ := newPostgresRepositories(t)

	require.NoError(t, repos.Schools.Create(ctx, newSchool("hust", "BKA")))

	got, err := repos.Schools.GetByID(ctx, "hust")
	require.NoError(t, err)
	assert.Equal(t, "BKA", got.Code)
	require.Len(t, got.Campuses, 1)
	assert.NotZero(t, got.Campuses[0].ID)
	require.Len(t, got.Faculties, 1)
	assert.Equal(t, []string{"CS"}, got.Faculties[0].Programs)
}

func TestPostgresCreate_DuplicatesLeaveStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repos, pool := newPostgresRepositories(t)
	require.NoError(t, repos.Schools.Create(ctx, newSchool("hust", "BKA")))

	dupID := newSchool("hust", "XXX")
	dupID.Name = "Changed"
	err := repos.Schools.Create(ctx, dupID)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateID)

	err = repos.Schools.Create(ctx, newSchool("other", "BKA"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateCode)
	assert.Zero(t, countRows(t, pool, "schools", "other"))
	assert.Zero(t, countRows(t, pool, "campuses", "other"))

	got, err := repos.Schools.GetByID(ctx, "hust")
	require.NoError(t, err)
	assert.Equal(t, "School hust", got.Name)
	assert.Len(t, got.Campuses, 1)
}

func TestPostgresCreate_FacultyCollisionRollsBackSchool(t *testing.T) {
	ctx := context.Background()
	repos, pool := newPostgresRepositories(t)
	require.NoError(t, repos.Schools.Create(ctx, newSchool("hust", "BKA")))

	neu := newSchool("neu", "KHA")
	neu.Faculties[0].ID = "hust-it"
	err := repos.Schools.Create(ctx, neu)
	assert.ErrorIs(t, err, apperrors.ErrDuplicateID)

	assert.Zero(t, countRows(t, pool, "schools", "neu"))
	assert.Zero(t, countRows(t, pool, "campuses", "neu"))

	fac, err := repos.Faculties.GetByID(ctx, "hust-it")
	require.NoError(t, err)
	assert.Equal(t, "hust", fac.SchoolID)
}

func TestPostgresUpdate_ReplacesChildrenWholesale(t *testing.T) {
	ctx := context.Background()
	repos, pool := newPostgresRepositories(t)
	require.NoError(t, repos.Schools.Create(ctx, newSchool("hust", "BKA")))

	replacement := newSchool("hust", "BKA")
	replacement.CreatedAt = "2030-01-01"
	replacement.Campuses = nil
	replacement.Faculties[0].ID = "hust-math"
	require.NoError(t, repos.Schools.Update(ctx, replacement))

	got, err := repos.Schools.GetByID(ctx, "hust")
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", got.CreatedAt)
	assert.Empty(t, got.Campuses)
	require.Len(t, got.Faculties, 1)
	assert.Equal(t, "hust-math", got.Faculties[0].ID)
	assert.Zero(t, countRows(t, pool, "campuses", "hust"))

	_, err = repos.Faculties.GetByID(ctx, "hust-it")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	err = repos.Schools.Update(ctx, newSchool("missing", "MIS"))
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestPostgresUpdate_CodeTakenByAnotherSchool(t *testing.T) {
	ctx := context.Background()
	repos, _ := newPostgresRepositories(t)
	require.NoError(t, repos.Schools.Create(ctx, newSchool("hust", "BKA")))
	require.NoError(t, repos.Schools.Create(ctx, newSchool("neu", "KHA")))

	err := repos.Schools.Update(ctx, newSchool("neu", "BKA"))
	assert.ErrorIs(t, err, apperrors.ErrDuplicateCode)

	got, err := repos.Schools.GetByID(ctx, "neu")
	require.NoError(t, err)
	assert.Equal(t, "KHA", got.Code)
	assert.Len(t, got.Faculties, 1)
}

func TestPostgresDelete_RemovesEveryChild(t *testing.T) {
	ctx := context.Background()
	repos, pool := newPostgresRepositories(t)
	require.NoError(t, repos.Schools.Create(ctx, newSchool("hust", "BKA")))
	require.NoError(t, repos.Schools.Create(ctx, newSchool("neu", "KHA")))

	require.NoError(t, repos.Schools.Delete(ctx, "hust"))

	assert.Zero(t, countRows(t, pool, "schools", "hust"))
	assert.Zero(t, countRows(t, pool, "campuses", "hust"))
	assert.Zero(t, countRows(t, pool, "faculties", "hust"))
	assert.Equal(t, 1, countRows(t, pool, "faculties", "neu"))

	assert.ErrorIs(t, repos.Schools.Delete(ctx, "hust"), apperrors.ErrNotFound)
}

func TestPostgresList_ByteOrderMatchesMemoryStore(t *testing.T) {
	ctx := context.Background()
	pgRepos, _ := newPostgresRepositories(t)
	memRepos := NewMemoryRepositories()

	for _, s := range [][2]string{{"hcmus", "QST"}, {"HUST", "BKA"}, {"b-school", "BS"}} {
		require.NoError(t, pgRepos.Schools.Create(ctx, newSchool(s[0], s[1])))
		require.NoError(t, memRepos.Schools.Create(ctx, newSchool(s[0], s[1])))
	}

	ids := func(repos *Repositories) []string {
		list, err := repos.Schools.List(ctx, defaultSchoolFilter())
		require.NoError(t, err)
		out := make([]string, 0, len(list))
		for _, s := range list {
			out = append(out, s.ID)
		}
		return out
	}

	assert.Equal(t, []string{"HUST", "b-school", "hcmus"}, ids(pgRepos))
	assert.Equal(t, ids(memRepos), ids(pgRepos))

	total, err := pgRepos.Schools.Count(ctx, filters.SchoolFilter{Limit: 1, Search: "hus"}.Normalize())
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestPostgresCreate_ConcurrentSameCodeOnlyOneWins(t *testing.T) {
	ctx := context.Background()
	repos, pool := newPostgresRepositories(t)

	const writers = 8
	errs := make([]error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s := newSchool("racer-"+string(rune('a'+i)), "RACE")
			errs[i] = repos.Schools.Create(ctx, s)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
			continue
		}
		assert.ErrorIs(t, err, apperrors.ErrDuplicateCode)
	}
	assert.Equal(t, 1, wins)

	var schools int
	require.NoError(t, pool.QueryRow(ctx, "SELECT count(*) FROM schools WHERE code = 'RACE'").Scan(&schools))
	assert.Equal(t, 1, schools)
}
