package api

import "github.com/gin-gonic/gin"

// userIDFromContext reads the user id the auth middleware stored.
func userIDFromContext(c *gin.Context) (uint, bool) {
	value, ok := c.Get("userID")
	if !ok {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
