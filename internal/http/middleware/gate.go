package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// AccessGate is the coarse filter in front of protected page prefixes.
// It only checks that one of the recognized session cookies EXISTS - no
// signature or expiry validation. A stale cookie passes the gate and gets
// rejected later by the endpoint's own session check. No cookie at all
// means the user goes to the sign-in page.
func AccessGate(protectedPrefixes []string, cookieNames []string, signinPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path

		protected := false
		for _, prefix := range protectedPrefixes {
			if strings.HasPrefix(path, prefix) {
				protected = true
				break
			}
		}
		if !protected {
			c.Next()
			return
		}

		for _, name := range cookieNames {
			if cookie, err := c.Request.Cookie(name); err == nil && cookie.Value != "" {
				c.Next()
				return
			}
		}

		GateRedirects.Inc()
		c.Redirect(http.StatusSeeOther, signinPath)
		c.Abort()
	}
}
