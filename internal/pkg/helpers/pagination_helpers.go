package helpers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldirectory/internal/app/filters"
	"github.com/yigit/schooldirectory/internal/app/models/dto"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
)

// ParseWindowParams extracts skip and limit from the query string. Range checks are
// left to the filters; only non-integer values are rejected here.
func ParseWindowParams(c *gin.Context) (skip, limit int, err error) {
	fields := map[string]string{}

	skip, convErr := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if convErr != nil {
		fields["skip"] = "skip must be an integer"
	}
	limit, convErr = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(filters.DefaultLimit)))
	if convErr != nil {
		fields["limit"] = "limit must be an integer"
	}

	if len(fields) > 0 {
		return 0, 0, apperrors.NewValidationError("invalid pagination parameters", fields)
	}
	return skip, limit, nil
}

// ParseOptionalBool reads a tri-state boolean query parameter. An absent or empty
// parameter yields nil.
func ParseOptionalBool(c *gin.Context, name string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	switch strings.ToLower(raw) {
	case "true":
		v := true
		return &v, nil
	case "false":
		v := false
		return &v, nil
	}
	return nil, apperrors.NewValidationError(
		"invalid "+name+" parameter",
		map[string]string{name: name + " must be true or false"},
	)
}

// NewPaginationInfo creates a standard PaginationInfo DTO
func NewPaginationInfo(skip, limit int, total int64, count int) dto.PaginationInfo {
	return dto.PaginationInfo{
		Skip:  skip,
		Limit: limit,
		Total: total,
		Count: count,
	}
}
