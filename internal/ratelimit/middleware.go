package ratelimit

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"ordermgmt/internal/respond"
)

const tooManyRequests = "Too many requests from this IP, please try again later."

// Middleware limits requests per client IP. Limiter failures let the
// request through.
func Middleware(limiter Limiter, responder *respond.Responder, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			res, err := limiter.Allow(r.Context(), clientIP(r))
			if err != nil {
				logger.Warn("rate limiter unavailable, allowing request", zap.Error(err))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))

			if !res.Allowed {
				w.Header().Set("Retry-After", strconv.Itoa(int(math.Ceil(res.RetryAfter.Seconds()))))
				responder.Reject(w, http.StatusTooManyRequests, tooManyRequests, "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// clientIP expects RemoteAddr to have been normalised by chi's RealIP when
// running behind a proxy.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
