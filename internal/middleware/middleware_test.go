package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
	"github.com/yigit/schooldirectory/internal/pkg/ratelimit"
)

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		field  string
	}{
		{"not found", apperrors.NewNotFoundError("school 'x' not found"), http.StatusNotFound, ""},
		{"duplicate id", apperrors.NewDuplicateIDError("dup"), http.StatusConflict, "id"},
		{"duplicate code", apperrors.NewDuplicateCodeError("dup"), http.StatusConflict, "code"},
		{"validation", apperrors.NewValidationError("bad", map[string]string{"name": "name is required"}), http.StatusBadRequest, ""},
		{"malformed", apperrors.NewMalformedInputError("bad json", nil), http.StatusBadRequest, ""},
		{"rate limited", apperrors.NewCustomError(apperrors.ErrRateLimited, "slow down"), http.StatusTooManyRequests, ""},
		{"unknown", errors.New("connection reset"), http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, detail := translateError(tt.err)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.field, detail.Field)
		})
	}
}

func TestTranslateError_HidesInternalMessage(t *testing.T) {
	_, detail := translateError(errors.New("pq: password authentication failed"))
	assert.Equal(t, "Internal server error", detail.Message)
}

func TestRequestLogger_PropagatesRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RequestLogger())
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(RequestIDKey)) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
	assert.Equal(t, "abc-123", w.Body.String())

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Len(t, w.Header().Get(RequestIDHeader), 36)
}

func TestListOrSearch_IgnoresBlankSearch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tests := []struct {
		query string
		class ratelimit.Class
	}{
		{"", ratelimit.ClassList},
		{"search=", ratelimit.ClassList},
		{"search=%20%20", ratelimit.ClassList},
		{"search=hanoi", ratelimit.ClassSearch},
		{"search=%20hanoi%20", ratelimit.ClassSearch},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/schools?"+tt.query, nil)
			assert.Equal(t, tt.class, ListOrSearch(c))
		})
	}
}
