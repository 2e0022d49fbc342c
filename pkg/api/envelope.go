// Package api defines the wire envelope shared by the fields and submit
// endpoints and an HTTP client for both.
package api

import (
	"fmt"
	"net/http"

	"github.com/goccy/go-json"
)

// Endpoint paths served by the backend.
const (
	PathFields = "/api/form"
	PathSubmit = "/api/form-submit"
)

// MessageMethodNotAllowed is the error message of 405 responses.
const MessageMethodNotAllowed = "Method Not Allowed"

// Envelope wraps every API response.
type Envelope[T any] struct {
	Success      bool   `json:"success"`
	Data         T      `json:"data,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// OK builds a successful envelope.
func OK[T any](data T) Envelope[T] {
	return Envelope[T]{Success: true, Data: data}
}

// Fail builds a failed envelope carrying msg.
func Fail(msg string) Envelope[any] {
	return Envelope[any]{Success: false, ErrorMessage: msg}
}

// WriteJSON encodes v as the response body with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("api: encode response: %w", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(body)
	return err
}

// Error is returned by the client when a request fails or the server answers
// with success=false.
type Error struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Status != 0:
		return fmt.Sprintf("api: %s: status %d: %s", e.Op, e.Status, e.Message)
	case e.Message != "":
		return fmt.Sprintf("api: %s: %s", e.Op, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("api: %s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("api: %s: status %d", e.Op, e.Status)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// ErrorMessage returns the server-provided message, if any.
func (e *Error) ErrorMessage() string { return e.Message }
