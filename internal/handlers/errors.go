package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/pkg/errors"
	"github.com/serroba/shortlink/internal/shortener"
	"go.uber.org/zap"
)

// EnvDevelopment is the only environment in which error bodies carry stack traces.
const EnvDevelopment = "development"

const (
	redactedStack   = "redacted"
	internalMessage = "internal server error"
)

// ErrorResponse is the body of every failed API response.
type ErrorResponse struct {
	Status  int    `json:"-"`
	Message string `doc:"What went wrong"                          json:"message"`
	Stack   string `doc:"Stack trace, only exposed in development" json:"stack"`
}

func (e *ErrorResponse) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError.
func (e *ErrorResponse) GetStatus() int {
	return e.Status
}

// ErrorResponder maps errors to HTTP statuses and renders them as ErrorResponse.
type ErrorResponder struct {
	exposeInternals bool
	logger          *zap.Logger
}

// NewErrorResponder creates a responder for the given deployment environment.
// Internal error messages and stack traces are only exposed in development.
func NewErrorResponder(env string, logger *zap.Logger) *ErrorResponder {
	return &ErrorResponder{
		exposeInternals: strings.EqualFold(strings.TrimSpace(env), EnvDevelopment),
		logger:          logger,
	}
}

// Respond converts err into an ErrorResponse. Validation errors become 400,
// slug conflicts 409, errors that already carry a status keep it, and
// everything else is logged and reported as 500.
func (r *ErrorResponder) Respond(err error) *ErrorResponse {
	var (
		validationErr *shortener.ValidationError
		statusErr     huma.StatusError
	)

	switch {
	case errors.As(err, &validationErr):
		return r.render(http.StatusBadRequest, validationErr.Error(), err)
	case errors.Is(err, shortener.ErrSlugTaken):
		return r.render(http.StatusConflict, shortener.ErrSlugTaken.Error(), err)
	case errors.As(err, &statusErr):
		return r.render(statusErr.GetStatus(), statusErr.Error(), err)
	}

	r.logger.Error("request failed", zap.Error(err))

	msg := internalMessage
	if r.exposeInternals {
		msg = err.Error()
	}

	return r.render(http.StatusInternalServerError, msg, err)
}

// NewError has the signature of huma.NewError so that errors raised by huma
// itself, such as malformed request bodies, share the ErrorResponse shape.
func (r *ErrorResponder) NewError(status int, msg string, errs ...error) huma.StatusError {
	details := make([]string, 0, len(errs))

	for _, err := range errs {
		if err != nil {
			details = append(details, err.Error())
		}
	}

	if len(details) > 0 && (status < http.StatusInternalServerError || r.exposeInternals) {
		msg = msg + ": " + strings.Join(details, "; ")
	}

	return r.render(status, msg, errors.New(msg))
}

func (r *ErrorResponder) render(status int, msg string, err error) *ErrorResponse {
	stack := redactedStack
	if r.exposeInternals {
		stack = fmt.Sprintf("%+v", err)
	}

	return &ErrorResponse{
		Status:  status,
		Message: msg,
		Stack:   stack,
	}
}
