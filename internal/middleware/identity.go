package middleware

import (
	"strings"

	"anoa.com/socialfeed/pkg/response"
	"github.com/gin-gonic/gin"
)

const UserIDHeader = "X-User-ID"

// Identity copies the caller-supplied user id into the gin context. The id is
// trusted as given; handlers that need one fall back to the user_id query
// parameter and reject the request when neither is present.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if id := strings.TrimSpace(c.GetHeader(UserIDHeader)); id != "" {
			c.Set(response.ContextUserIDKey, id)
		}
		c.Next()
	}
}
