package middleware

import (
	"net/netip"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxRealIPKey holds the client address used for login audit lines and the access log.
const CtxRealIPKey = "real_ip"

// clientIPHeaders are consulted in order; the first parseable address wins.
// X-Forwarded-For contributes its left-most hop.
var clientIPHeaders = []string{"CF-Connecting-IP", "X-Real-IP", "X-Forwarded-For"}

// RealIP resolves the caller's address from proxy headers, falling back to gin's ClientIP.
// Addresses are normalized, so an IPv4-mapped IPv6 value is stored in dotted form.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(CtxRealIPKey, realIP(c))
		c.Next()
	}
}

func realIP(c *gin.Context) string {
	for _, h := range clientIPHeaders {
		v := c.GetHeader(h)
		if first, _, found := strings.Cut(v, ","); found {
			v = first
		}
		if addr, err := netip.ParseAddr(strings.TrimSpace(v)); err == nil {
			return addr.Unmap().String()
		}
	}
	return c.ClientIP()
}
