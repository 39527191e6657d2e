package domain

import (
	"fmt"
	"net/http"
)

// Error defines a standard error shape for the API
type Error struct {
	// HTTP Status Code (e.g., 400, 404, 500)
	Code int
	// Safe message for the client
	Message string
	// Original error for internal logging
	Log error
}

// Error implements standard error interface
func (e *Error) Error() string {
	return e.Message
}

// AppError creates a generic application error
func AppError(code int, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Log:     err,
	}
}

// BadRequestError creates a standard error for a bad request
func BadRequestError(msg string) *Error {
	return &Error{Code: http.StatusBadRequest, Message: msg}
}

// InternalError creates a standard error for any internal server error
func InternalError(msg string, err error) *Error {
	return &Error{Code: http.StatusInternalServerError, Message: msg, Log: err}
}

// ValidationError flattens binding failures into a single client message.
func ValidationError(fields map[string]string) *Error {
	msg := "one or more parameters failed validation"
	for name, detail := range fields {
		msg = fmt.Sprintf("%s: %s", name, detail)
		break
	}
	return &Error{Code: http.StatusBadRequest, Message: msg}
}

// WrapError allows wrapping a standard error in an application Error
func WrapError(err error, code int, msg string) *Error {
	if err == nil {
		return nil
	}

	return &Error{
		Code:    code,
		Message: fmt.Sprintf("%s: %v", msg, err),
		Log:     err,
	}
}
