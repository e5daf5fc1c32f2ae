// Package importer loads school records from JSON documents into the directory.
//
// A document is either a bare array of school records or an object with a
// "schools" array. Every record goes through the regular create path, so it is
// validated and checked for duplicates like an API request. Failures are
// recorded in the Report and never stop the batch.
package importer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gosimple/slug"
	"github.com/rs/zerolog"
	"github.com/yigit/schooldirectory/internal/app/models"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
)

// SchoolWriter is the part of the school service the importer needs
type SchoolWriter interface {
	CreateSchool(ctx context.Context, input *models.SchoolInput) (*models.School, error)
	DeleteAllSchools(ctx context.Context) (int64, error)
}

// Options controls a run
type Options struct {
	// Reset deletes every existing school before loading
	Reset bool
}

// Importer feeds documents into a SchoolWriter
type Importer struct {
	schools SchoolWriter
	logger  zerolog.Logger
}

// New creates an Importer
func New(schools SchoolWriter, lgr zerolog.Logger) *Importer {
	return &Importer{
		schools: schools,
		logger:  lgr,
	}
}

type document struct {
	Schools []json.RawMessage `json:"schools"`
}

// ImportFiles loads every file in order. The returned error is reserved for
// failures that stop the whole run (reset failure, cancelled context); per-file
// and per-record problems are only reported.
func (im *Importer) ImportFiles(ctx context.Context, paths []string, opts Options) (*Report, error) {
	report := &Report{}

	if opts.Reset {
		n, err := im.schools.DeleteAllSchools(ctx)
		if err != nil {
			return report, fmt.Errorf("failed to clear existing data: %w", err)
		}
		report.Cleared = n
		im.logger.Info().Int64("schools", n).Msg("Cleared existing data")
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		f, err := os.Open(path)
		if err != nil {
			report.Documents++
			report.addDocumentError(path, fmt.Errorf("failed to open document: %w", err))
			im.logger.Error().Err(err).Str("file", path).Msg("Skipping unreadable document")
			continue
		}
		err = im.ImportReader(ctx, path, f, report)
		f.Close()
		if err != nil {
			return report, err
		}
	}

	return report, nil
}

// ImportReader loads one document read from r. name identifies the document in
// the report.
func (im *Importer) ImportReader(ctx context.Context, name string, r io.Reader, report *Report) error {
	report.Documents++
	lgr := im.logger.With().Str("file", name).Logger()

	records, err := decodeDocument(r)
	if err != nil {
		report.addDocumentError(name, err)
		lgr.Error().Err(err).Msg("Skipping malformed document")
		return nil
	}
	lgr.Info().Int("records", len(records)).Msg("Loading document")

	for i, raw := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		report.Records++

		var input models.SchoolInput
		if err := json.Unmarshal(raw, &input); err != nil {
			recErr := apperrors.NewMalformedInputError(fmt.Sprintf("record %d is not a valid school object", i), err)
			report.addRecordError(name, i, "", recErr)
			lgr.Warn().Err(recErr).Int("record", i).Msg("Skipping malformed record")
			continue
		}
		fillFacultyIDs(&input)

		school, err := im.schools.CreateSchool(ctx, &input)
		if err != nil {
			report.addRecordError(name, i, input.ID, err)
			lgr.Warn().Err(err).Int("record", i).Str("schoolID", input.ID).Msg("Skipping record")
			continue
		}

		report.Imported++
		report.Campuses += len(school.Campuses)
		report.Faculties += len(school.Faculties)
		lgr.Debug().Str("schoolID", school.ID).Str("name", school.Name).Msg("Imported school")
	}
	return nil
}

func decodeDocument(r io.Reader) ([]json.RawMessage, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, apperrors.NewMalformedInputError("document is empty", nil)
	}

	if data[0] == '[' {
		var records []json.RawMessage
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, apperrors.NewMalformedInputError("document is not a valid JSON array", err)
		}
		return records, nil
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperrors.NewMalformedInputError("document is not valid JSON", err)
	}
	if doc.Schools == nil {
		return nil, apperrors.NewMalformedInputError(`document has no "schools" array`, nil)
	}
	return doc.Schools, nil
}

// fillFacultyIDs derives missing faculty ids from the school id and faculty name
func fillFacultyIDs(input *models.SchoolInput) {
	for i := range input.Faculties {
		f := &input.Faculties[i]
		if strings.TrimSpace(f.ID) != "" || strings.TrimSpace(f.Name) == "" {
			continue
		}
		f.ID = slug.Make(strings.TrimSpace(input.ID) + "-" + f.Name)
	}
}

// RecordError is one failure of a run. Record is -1 for document-level failures.
type RecordError struct {
	File     string
	Record   int
	SchoolID string
	Err      error
}

func (e RecordError) Error() string {
	if e.Record < 0 {
		return fmt.Sprintf("%s: %v", e.File, e.Err)
	}
	if e.SchoolID != "" {
		return fmt.Sprintf("%s[%d] (%s): %v", e.File, e.Record, e.SchoolID, e.Err)
	}
	return fmt.Sprintf("%s[%d]: %v", e.File, e.Record, e.Err)
}

func (e RecordError) Unwrap() error { return e.Err }

// Report summarizes a run
type Report struct {
	Cleared   int64
	Documents int
	Records   int
	Imported  int
	Campuses  int
	Faculties int
	Errors    []RecordError
}

func (r *Report) addDocumentError(file string, err error) {
	r.Errors = append(r.Errors, RecordError{File: file, Record: -1, Err: err})
}

func (r *Report) addRecordError(file string, record int, schoolID string, err error) {
	r.Errors = append(r.Errors, RecordError{File: file, Record: record, SchoolID: schoolID, Err: err})
}

// Failed is the number of records and documents that could not be loaded
func (r *Report) Failed() int {
	return len(r.Errors)
}

// Count returns how many recorded errors match target
func (r *Report) Count(target error) int {
	n := 0
	for _, e := range r.Errors {
		if errors.Is(e, target) {
			n++
		}
	}
	return n
}

// Summary renders the report for humans
func (r *Report) Summary() string {
	var b strings.Builder
	if r.Cleared > 0 {
		fmt.Fprintf(&b, "Cleared %d existing schools\n", r.Cleared)
	}
	fmt.Fprintf(&b, "Documents: %d, records: %d\n", r.Documents, r.Records)
	fmt.Fprintf(&b, "Imported %d schools, %d campuses, %d faculties\n", r.Imported, r.Campuses, r.Faculties)
	if len(r.Errors) > 0 {
		fmt.Fprintf(&b, "Failed: %d (duplicate id %d, duplicate code %d, invalid %d, malformed %d)\n",
			r.Failed(),
			r.Count(apperrors.ErrDuplicateID),
			r.Count(apperrors.ErrDuplicateCode),
			r.Count(apperrors.ErrValidationFailed),
			r.Count(apperrors.ErrMalformedInput),
		)
		for _, e := range r.Errors {
			fmt.Fprintf(&b, "  - %s\n", e.Error())
		}
	}
	return b.String()
}
