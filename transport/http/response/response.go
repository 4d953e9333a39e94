package response

import (
	"encoding/json"
	"net/http"
	"taskorganizer/shared/constant"
	"taskorganizer/shared/failure"
	"taskorganizer/shared/logger"

	"github.com/rs/zerolog/log"
)

type Error struct {
	Error   string               `json:"error" example:"Task not found"`
	Details []failure.FieldError `json:"details,omitempty"`
}

type Message struct {
	Message string `json:"message" example:"Healthy"`
}

// WithMessage sends a response with a simple text message
func WithMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Message{Message: message})
}

// WithJSON sends the payload as the response body without an envelope
func WithJSON(writer http.ResponseWriter, code int, jsonPayload any) {
	response(writer, code, jsonPayload)
}

// WithNoContent sends an empty response
func WithNoContent(writer http.ResponseWriter) {
	writer.WriteHeader(http.StatusNoContent)
}

// WithError sends a response with an error message. Only failures reach the
// client verbatim; anything else becomes a generic internal error.
func WithError(writer http.ResponseWriter, err error) {
	fail, ok := failure.As(err)
	if !ok {
		log.Error().Err(err).Msg("unhandled error")

		response(writer, http.StatusInternalServerError, Error{Error: constant.ResponseErrorInternal})

		return
	}

	response(writer, fail.Code, Error{Error: fail.Message, Details: fail.Details})
}

// WithErrorMessage sends an error body with the given status
func WithErrorMessage(writer http.ResponseWriter, code int, message string) {
	response(writer, code, Error{Error: message})
}

// WithRequestLimitExceeded sends a default response for when the request limit is exceeded
func WithRequestLimitExceeded(writer http.ResponseWriter) {
	WithErrorMessage(writer, http.StatusTooManyRequests, constant.ResponseErrorRequestLimitExceeded)
}

// WithPreparingShutdown sends a default response for when the server is preparing to shut down
func WithPreparingShutdown(writer http.ResponseWriter) {
	WithErrorMessage(writer, http.StatusServiceUnavailable, constant.ResponseErrorPrepareShutdown)
}

func response(writer http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.ErrorWithStack(err)
		writer.WriteHeader(http.StatusInternalServerError)

		return
	}

	writer.Header().Set(constant.RequestHeaderContentType, constant.ContentTypeJSON)
	writer.WriteHeader(code)

	if _, err = writer.Write(response); err != nil {
		logger.ErrorWithStack(err)
	}
}
