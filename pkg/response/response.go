package response

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"anoa.com/socialfeed/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// ContextUserIDKey is where middleware.Identity stores the caller-supplied id.
const ContextUserIDKey = "user_id"

// GetUserID returns the requesting user id from the X-User-ID header (via the
// identity middleware) or, failing that, the user_id query parameter.
func GetUserID(c *gin.Context) (string, error) {
	if v, exists := c.Get(ContextUserIDKey); exists {
		if id, ok := v.(string); ok && id != "" {
			return id, nil
		}
	}

	if id := strings.TrimSpace(c.Query("user_id")); id != "" {
		return id, nil
	}

	return "", apperror.BadRequest("user_id is required")
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code >= http.StatusInternalServerError {
		slog.ErrorContext(c.Request.Context(), "internal error",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"err", apperror.Cause(err),
		)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}

func Message(c *gin.Context, code int, message string, extra gin.H) {
	body := gin.H{"message": message}
	for k, v := range extra {
		body[k] = v
	}
	c.JSON(code, body)
}

// UploadError reports a failed multipart read. Bodies cut off by the size
// limit get 413, anything else gets 400 with message.
func UploadError(c *gin.Context, err error, message string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}
