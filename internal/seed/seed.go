package seed

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/yigit/schooldirectory/internal/app/filters"
	"github.com/yigit/schooldirectory/internal/app/services"
	"github.com/yigit/schooldirectory/internal/importer"
)

// CreateDefaultData loads seedFile into an empty directory. It does nothing when
// seedFile is blank or when schools already exist. Record-level failures are
// logged by the importer and do not make the seed fail.
func CreateDefaultData(ctx context.Context, schools services.SchoolService, seedFile string, lgr zerolog.Logger) error {
	if seedFile == "" {
		return nil
	}

	_, total, err := schools.ListSchools(ctx, filters.SchoolFilter{Limit: 1})
	if err != nil {
		return fmt.Errorf("failed to check existing schools: %w", err)
	}
	if total > 0 {
		lgr.Info().Int64("schools", total).Msg("Directory already populated, skipping seed")
		return nil
	}

	if _, err := os.Stat(seedFile); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("seed file %s not found: %w", seedFile, err)
	}

	lgr.Info().Str("file", seedFile).Msg("Seeding empty directory...")
	report, err := importer.New(schools, lgr).ImportFiles(ctx, []string{seedFile}, importer.Options{})
	if err != nil {
		return fmt.Errorf("seed import aborted: %w", err)
	}

	lgr.Info().
		Int("imported", report.Imported).
		Int("campuses", report.Campuses).
		Int("faculties", report.Faculties).
		Int("failed", report.Failed()).
		Msg("Seed completed")
	return nil
}
