package middleware

import (
	"net/http"
	"time"
)

const timeoutMessage = "Request timed out"

// Timeout bounds the whole request, including the upstream chart fetch,
// which runs on the request context.
func Timeout(timeout time.Duration) Middleware {
	return func(h http.Handler) http.Handler {
		return http.TimeoutHandler(h, timeout, timeoutMessage)
	}
}
