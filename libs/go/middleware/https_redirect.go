package middleware

import (
	"net"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// HTTPSRedirectMiddleware answers plain-HTTP requests with a 307 to the same
// URL over https. Requests that arrived over TLS, or through a proxy that
// sets X-Forwarded-Proto: https, pass through.
func HTTPSRedirectMiddleware(enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled || isSecureRequest(c.Request) {
			c.Next()
			return
		}

		target := "https://" + stripDefaultPort(c.Request.Host) + c.Request.URL.RequestURI()
		c.Redirect(http.StatusTemporaryRedirect, target)
		c.Abort()
	}
}

func isSecureRequest(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	proto := r.Header.Get("X-Forwarded-Proto")
	if i := strings.IndexByte(proto, ','); i >= 0 {
		proto = proto[:i]
	}
	return strings.EqualFold(strings.TrimSpace(proto), "https")
}

func stripDefaultPort(host string) string {
	h, port, err := net.SplitHostPort(host)
	if err != nil {
		return host
	}
	if port == "80" || port == "443" {
		if strings.Contains(h, ":") {
			return "[" + h + "]"
		}
		return h
	}
	return host
}
