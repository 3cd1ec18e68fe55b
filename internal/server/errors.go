package server

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jonathan/resu/internal/db"
	"github.com/jonathan/resu/internal/pipeline"
)

// Client-facing error messages
const (
	msgBusy          = "A generation is already in progress. Please wait."
	msgInvalid       = "Invalid request"
	msgNotFound      = "Resume not found"
	msgParseFailed   = "Failed to parse job description"
	msgConfirmFailed = "Failed to generate resume"
	msgInternal      = "Internal server error"
)

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	Error   string        `json:"error"`
	Message string        `json:"message,omitempty"`
	Step    string        `json:"step,omitempty"`
	Kind    string        `json:"kind,omitempty"`
	Details []ErrorDetail `json:"details,omitempty"`
}

// ErrorDetail names one offending request field
type ErrorDetail struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var reqErr *pipeline.RequestError
	switch {
	case errors.Is(err, pipeline.ErrConcurrencyRejected):
		return http.StatusTooManyRequests
	case errors.As(err, &reqErr):
		return http.StatusBadRequest
	case errors.Is(err, db.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// writeError maps err onto a status and body. failure is the headline used
// for server-side failures of the operation.
func (s *Server) writeError(w http.ResponseWriter, err error, failure string) {
	status := HTTPStatus(err)
	body := ErrorBody{}

	var reqErr *pipeline.RequestError
	var stepErr *pipeline.StepError
	switch {
	case status == http.StatusTooManyRequests:
		body.Error = msgBusy
	case errors.As(err, &reqErr):
		body.Error = msgInvalid
		body.Details = []ErrorDetail{{Field: reqErr.Field, Message: reqErr.Message}}
	case status == http.StatusNotFound:
		body.Error = msgNotFound
	case errors.As(err, &stepErr):
		body.Error = failure
		body.Message = err.Error()
		body.Step = string(stepErr.Step)
		body.Kind = string(stepErr.Kind)
	default:
		body.Error = failure
		body.Message = err.Error()
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.jsonResponse(w, status, body)
}
