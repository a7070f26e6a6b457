// Package respond writes the JSON envelope shared by every endpoint and is
// the single place where unexpected failures are classified and logged.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"ordermgmt/internal/dto"
	apperrors "ordermgmt/internal/errors"
)

type Responder struct {
	logger       *zap.Logger
	exposeErrors bool
}

// New builds a Responder. exposeErrors controls whether raw error text of
// terminal failures reaches the client; it is off in production.
func New(logger *zap.Logger, exposeErrors bool) *Responder {
	return &Responder{
		logger:       logger,
		exposeErrors: exposeErrors,
	}
}

func (rs *Responder) JSON(w http.ResponseWriter, status int, body dto.Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		rs.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (rs *Responder) Success(w http.ResponseWriter, status int, message string, data any) {
	rs.JSON(w, status, dto.Success(message, data))
}

// Reject answers a failure the caller can correct. Nothing is logged.
func (rs *Responder) Reject(w http.ResponseWriter, status int, message, errMsg string) {
	rs.JSON(w, status, dto.Failure(message, errMsg))
}

// Fail classifies err, logs it with the request context and writes the
// sanitised envelope.
func (rs *Responder) Fail(w http.ResponseWriter, r *http.Request, err error) {
	c := apperrors.Classify(err)

	rs.logger.Error("request failed",
		zap.Int("status", c.Status),
		zap.String("requestId", middleware.GetReqID(r.Context())),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.String("body", CapturedBody(r.Context())),
		zap.Error(err),
	)

	errMsg := c.Detail
	if errMsg == "" && rs.exposeErrors {
		errMsg = err.Error()
	}
	rs.Reject(w, c.Status, c.Message, errMsg)
}
