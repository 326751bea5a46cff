package middleware

import (
	"prodtrack/internal/access"

	"github.com/gin-gonic/gin"
)

const identityKey = "CurrentIdentity"

func SetIdentity(c *gin.Context, id access.Identity) {
	c.Set(identityKey, id)
}

// CurrentIdentity returns the caller stored by RequireAuth.
func CurrentIdentity(c *gin.Context) (access.Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return access.Identity{}, false
	}
	id, ok := v.(access.Identity)
	return id, ok
}
