package middleware

import (
	"errors"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/yigit/schooldirectory/internal/pkg/apperrors"
)

// BindJSON decodes the request body into obj. Struct validation is left to the
// services so that every caller, not only HTTP, goes through it.
func BindJSON(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindBodyWith(obj, binding.JSON); err != nil {
		if errors.Is(err, io.EOF) {
			return apperrors.NewMalformedInputError("request body is empty", nil)
		}
		return apperrors.NewMalformedInputError("request body is not valid JSON", err)
	}
	return nil
}
