package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/haguru/booknest/internal/interfaces"
	"github.com/haguru/booknest/internal/models/dto"
	"github.com/haguru/booknest/internal/routes"
	"golang.org/x/time/rate"
)

// RateLimitMiddleware rejects requests above the configured token bucket
// rate with 429 before they reach the dispatcher.
func RateLimitMiddleware(limiter *rate.Limiter, metrics interfaces.Metrics) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				if metrics != nil {
					metrics.IncCounter(routes.RateLimitedTotal)
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				resp := dto.RateLimitResponse{Message: "Too many requests. Please try again later."}
				_ = json.NewEncoder(w).Encode(resp)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
