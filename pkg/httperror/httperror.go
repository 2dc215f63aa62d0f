package httperror

import "github.com/gofiber/fiber/v2"

// Error is the typed failure surfaced at the workflow boundary. Code is a
// stable machine-readable identifier ("upload.missing_file"), Message is
// human-readable, Details carries optional context for the response body.
type Error struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return e.Code + ": " + e.Message
}

func New(status int, code, message string, details interface{}) *Error {
	return &Error{
		Status:  status,
		Code:    code,
		Message: message,
		Details: details,
	}
}

func BadRequest(code, message string, details interface{}) *Error {
	return New(fiber.StatusBadRequest, code, message, details)
}

func Unauthorized(code, message string, details interface{}) *Error {
	return New(fiber.StatusUnauthorized, code, message, details)
}

func Forbidden(code, message string, details interface{}) *Error {
	return New(fiber.StatusForbidden, code, message, details)
}

func NotFound(code, message string, details interface{}) *Error {
	return New(fiber.StatusNotFound, code, message, details)
}

func InternalServerError(code, message string, details interface{}) *Error {
	return New(fiber.StatusInternalServerError, code, message, details)
}

func NoContent(code, message string, details interface{}) *Error {
	return New(fiber.StatusNoContent, code, message, details)
}
