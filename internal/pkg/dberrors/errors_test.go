package dberrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateConstraintError(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: SchoolsCodeKey}
	wrapped := fmt.Errorf("insert failed: %w", pgErr)

	assert.True(t, IsDuplicateConstraintError(wrapped, SchoolsCodeKey))
	assert.False(t, IsDuplicateConstraintError(wrapped, SchoolsPrimaryKey))
	assert.False(t, IsDuplicateConstraintError(&pgconn.PgError{Code: "23503", ConstraintName: SchoolsCodeKey}, SchoolsCodeKey))
	assert.False(t, IsDuplicateConstraintError(errors.New("boom"), SchoolsCodeKey))
}
