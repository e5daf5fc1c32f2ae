package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/schooldirectory/internal/app/models/dto"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
	"github.com/yigit/schooldirectory/internal/pkg/logger"
)

// HandleAPIError translates domain errors into status codes and error bodies
func HandleAPIError(c *gin.Context, err error) {
	status, detail := translateError(err)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("requestID", c.GetString(RequestIDKey)).
			Str("path", c.Request.URL.Path).
			Msg("Unhandled error while serving request")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func translateError(err error) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error())
	case errors.Is(err, apperrors.ErrDuplicateID):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()).
			WithField("id")
	case errors.Is(err, apperrors.ErrDuplicateCode):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, err.Error()).
			WithField("code")
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrMalformedInput):
		detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
		if details := apperrors.DetailsOf(err); len(details) > 0 {
			detail = detail.WithDetails(details)
		}
		return http.StatusBadRequest, detail
	case errors.Is(err, apperrors.ErrRateLimited):
		return http.StatusTooManyRequests, dto.NewErrorDetail(dto.ErrorCodeRateLimited, err.Error()).
			WithSeverity(dto.ErrorSeverityWarning)
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}
