package types

import "fmt"

// RequestError is an error that carries the HTTP status code and a dotted
// error-type string for the JSON error envelope.
type RequestError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}

// ErrNotFound marks a record lookup miss. Services return it so handlers can
// map the miss to a 404 without string matching.
var ErrNotFound = &RequestError{Code: 404, Message: "not found", Type: "notfound"}

// ErrTransition marks a rejected status transition. Handlers map it to 409.
func ErrTransition(from, to string) *RequestError {
	return &RequestError{
		Code:    409,
		Message: fmt.Sprintf("invalid status transition %q -> %q", from, to),
		Type:    "transition",
	}
}
