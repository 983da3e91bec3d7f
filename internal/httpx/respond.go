package httpx

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
)

// SourceHeader marks responses whose data came from the cache rather than
// the primary store.
const SourceHeader = "X-Data-Source"

// SourceCache is the SourceHeader value set on cache-sourced responses.
const SourceCache = "cache"

// Envelope is the uniform top-level JSON wrapper for all responses.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// Error is a client-facing error carrying the HTTP status it maps to.
// Anything that is not an *Error is treated as an unclassified server fault.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func BadRequest(msg string) *Error {
	return &Error{Status: http.StatusBadRequest, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Status: http.StatusUnauthorized, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Status: http.StatusForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Status: http.StatusNotFound, Message: msg}
}

func WriteSuccess(w http.ResponseWriter, status int, message string, data any) {
	writeEnvelope(w, status, Envelope{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func WriteFail(w http.ResponseWriter, status int, msg string) {
	writeEnvelope(w, status, Envelope{
		Status:  "fail",
		Message: msg,
	})
}

// WriteErr maps an error to the envelope. *Error values keep their status
// and message; everything else becomes a 500 with a generic message so
// internals never leak to clients.
func WriteErr(w http.ResponseWriter, err error) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		WriteFail(w, apiErr.Status, apiErr.Message)
		return
	}
	log.Printf("openmusic: unclassified error: %v", err)
	WriteFail(w, http.StatusInternalServerError, "internal server error")
}

func writeEnvelope(w http.ResponseWriter, status int, env Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}
