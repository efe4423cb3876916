package middleware

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrops-backend-go/internal/handler/http/response"
	"github.com/go-chi/httprate"
)

// RateLimitByIP allows requests per window for each client IP using a sliding window counter.
// chi's RealIP middleware should run first. Counters are local to the process.
func RateLimitByIP(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.TooManyRequests(w)
		}),
	)
}
