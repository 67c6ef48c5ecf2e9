package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// MaxHeaderValueSize caps any single request header value.
const MaxHeaderValueSize = 8 << 10

var (
	// Logged, never blocked: the catalog queries are all parameterized.
	sqlPattern    = regexp.MustCompile(`(?i)('+\s*;\s*DROP\b|UNION\s+SELECT\b|'\s+OR\s+1\s*=\s*1)`)
	scriptPattern = regexp.MustCompile(`(?i)(<script|javascript\s*:|on\w+\s*=)`)
)

// Sanitize rejects requests carrying path traversal, null bytes, oversized
// or multi-line headers, or script fragments in the query string. Rejections
// are 400 with the usual {"error": ...} body.
func Sanitize(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			if msg := checkPath(req.URL.Path, req.URL.RawPath); msg != "" {
				return errorJSON(c, http.StatusBadRequest, msg)
			}
			if msg := checkHeaders(req.Header); msg != "" {
				return errorJSON(c, http.StatusBadRequest, msg)
			}

			for key, values := range req.URL.Query() {
				for _, v := range values {
					if hasNullByte(key) || hasNullByte(v) {
						return errorJSON(c, http.StatusBadRequest, "null byte in query parameter")
					}
					if scriptPattern.MatchString(key) || scriptPattern.MatchString(v) {
						return errorJSON(c, http.StatusBadRequest, "script content in query parameter")
					}
					if sqlPattern.MatchString(v) {
						logger.Warn().
							Str("request_id", requestID(c)).
							Str("param", key).
							Str("path", req.URL.Path).
							Str("remote_ip", c.RealIP()).
							Msg("suspicious SQL fragment in query parameter")
					}
				}
			}
			return next(c)
		}
	}
}

func checkPath(path, raw string) string {
	for _, p := range []string{path, raw} {
		if p == "" {
			continue
		}
		if hasTraversal(p) {
			return "path traversal is not allowed"
		}
		if hasNullByte(p) {
			return "null byte in path"
		}
	}
	return ""
}

func checkHeaders(h http.Header) string {
	for name, values := range h {
		for _, v := range values {
			if len(v) > MaxHeaderValueSize {
				return "header " + name + " is too large"
			}
			if strings.ContainsAny(v, "\r\n") {
				return "header " + name + " contains a line break"
			}
		}
	}
	return ""
}

// hasTraversal also catches single and double percent-encoded dots.
func hasTraversal(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(s, "..") ||
		strings.Contains(lower, "%2e%2e") ||
		strings.Contains(lower, "%252e")
}

func hasNullByte(s string) bool {
	return strings.ContainsRune(s, 0) || strings.Contains(s, "%00")
}
