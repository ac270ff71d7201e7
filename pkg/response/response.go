package response

import "backend/pkg/apperror"

// Response is the standard envelope for non-list endpoints.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK wraps a successful result with a human-readable message.
func OK(message string, data interface{}) Response {
	return Response{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// Fail wraps an error into the envelope. Internals never reach the body;
// callers pass the already-sanitized service error.
func Fail(err error) Response {
	return Response{
		Success: false,
		Message: err.Error(),
		Error:   apperror.Code(err),
	}
}
