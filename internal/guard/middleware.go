package guard

import (
	"net/http"

	"fitcoach-web/internal/session"

	"github.com/gin-gonic/gin"
)

// DenyFunc is invoked after a non-allow decision, before the redirect is
// written. Used for audit hooks; must not write to the response.
type DenyFunc func(c *gin.Context, d Decision)

// Middleware evaluates every request against the route rules before the
// handler runs. Redirects use 303 so browsers re-issue as GET.
func Middleware(onDeny DenyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(session.CookieAccessToken)

		d := Decide(c.Request.URL.Path, token)
		if d.Action == Allow {
			c.Next()
			return
		}

		if onDeny != nil {
			onDeny(c, d)
		}
		c.Redirect(http.StatusSeeOther, d.Target)
		c.Abort()
	}
}
