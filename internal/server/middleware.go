package server

import (
	"fmt"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"ordermgmt/internal/respond"
)

// RequestLogger logs one line per request and echoes the request id.
func RequestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			reqID := middleware.GetReqID(r.Context())
			if reqID != "" {
				w.Header().Set(middleware.RequestIDHeader, reqID)
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)

			logger.Info("http request",
				zap.String("requestId", reqID),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remoteAddr", r.RemoteAddr),
			)
		})
	}
}

// Recoverer turns a panic into the standard 500 envelope. When the handler
// already started its response, the panic is only logged.
func Recoverer(responder *respond.Responder, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				rvr := recover()
				if rvr == nil {
					return
				}
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				err := fmt.Errorf("panic: %v", rvr)
				if ww.Status() != 0 {
					logger.Error("panic after response started",
						zap.String("requestId", middleware.GetReqID(r.Context())),
						zap.String("method", r.Method),
						zap.String("path", r.URL.Path),
						zap.Int("status", ww.Status()),
						zap.Error(err),
					)
					return
				}
				responder.Fail(ww, r, err)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func SecurityHeaders(next http.Handler) http.Handler {
	return chi.Chain(
		middleware.SetHeader("X-Content-Type-Options", "nosniff"),
		middleware.SetHeader("X-Frame-Options", "SAMEORIGIN"),
		middleware.SetHeader("X-DNS-Prefetch-Control", "off"),
		middleware.SetHeader("Referrer-Policy", "no-referrer"),
		middleware.SetHeader("Strict-Transport-Security", "max-age=15552000; includeSubDomains"),
		middleware.SetHeader("Cross-Origin-Opener-Policy", "same-origin"),
		middleware.SetHeader("Content-Security-Policy", "default-src 'self'"),
	).Handler(next)
}

// RequireJSON rejects mutating requests whose media type is not JSON. A
// bodyless request to a path ending in one of bodylessActions is let through.
func RequireJSON(responder *respond.Responder, bodylessActions ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodPost, http.MethodPut, http.MethodPatch:
			default:
				next.ServeHTTP(w, r)
				return
			}
			if r.ContentLength == 0 && isBodylessAction(r.URL.Path, bodylessActions) {
				next.ServeHTTP(w, r)
				return
			}

			mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
			if err != nil || mediaType != "application/json" {
				responder.Reject(w, http.StatusBadRequest, "Invalid Content-Type", "Content-Type must be application/json")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isBodylessAction(path string, actions []string) bool {
	path = strings.TrimSuffix(path, "/")
	for _, action := range actions {
		if strings.HasSuffix(path, action) {
			return true
		}
	}
	return false
}
