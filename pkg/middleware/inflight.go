package middleware

import (
	"github.com/gin-gonic/gin"
	mem "photowalk/pkg/memcache"
	"photowalk/pkg/utils"
)

// InFlightGuard rejects a request while the same client already has one
// running on the same route. Double taps on generate or upload would
// otherwise run twice.
func InFlightGuard(registry *mem.InFlight) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.ClientIP() + "|" + c.Request.Method + " " + c.FullPath()
		if !registry.TryAcquire(key) {
			utils.HandleServiceError(c, utils.ErrRequestInFlight)
			c.Abort()
			return
		}
		defer registry.Release(key)
		c.Next()
	}
}
