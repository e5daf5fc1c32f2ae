package seed

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yigit/schooldirectory/internal/app/filters"
	"github.com/yigit/schooldirectory/internal/app/models"
	"github.com/yigit/schooldirectory/internal/app/repositories"
	"github.com/yigit/schooldirectory/internal/app/services"
)

const seedDoc = `{"schools": [
	{"id": "hust", "code": "BKA", "name": "Hanoi University of Science and Technology", "type": "public"},
	{"id": "neu", "code": "KHA", "name": "National Economics University", "type": "public"}
]}`

func TestCreateDefaultData_SeedsEmptyStore(t *testing.T) {
	ctx := context.Background()
	svc := services.NewServices(repositories.NewMemoryRepositories())
	file := filepath.Join(t.TempDir(), "schools.json")
	require.NoError(t, os.WriteFile(file, []byte(seedDoc), 0o600))

	require.NoError(t, CreateDefaultData(ctx, svc.Schools, file, zerolog.Nop()))

	_, total, err := svc.Schools.ListSchools(ctx, filters.SchoolFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

func TestCreateDefaultData_SkipsPopulatedStore(t *testing.T) {
	ctx := context.Background()
	svc := services.NewServices(repositories.NewMemoryRepositories())
	_, err := svc.Schools.CreateSchool(ctx, &models.SchoolInput{ID: "x", Code: "X", Name: "X", Type: "private"})
	require.NoError(t, err)

	file := filepath.Join(t.TempDir(), "schools.json")
	require.NoError(t, os.WriteFile(file, []byte(seedDoc), 0o600))

	require.NoError(t, CreateDefaultData(ctx, svc.Schools, file, zerolog.Nop()))

	_, total, err := svc.Schools.ListSchools(ctx, filters.SchoolFilter{Limit: 10})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
}

func TestCreateDefaultData_MissingFile(t *testing.T) {
	svc := services.NewServices(repositories.NewMemoryRepositories())

	err := CreateDefaultData(context.Background(), svc.Schools, filepath.Join(t.TempDir(), "nope.json"), zerolog.Nop())
	assert.ErrorIs(t, err, os.ErrNotExist)

	assert.NoError(t, CreateDefaultData(context.Background(), svc.Schools, "", zerolog.Nop()))
}
