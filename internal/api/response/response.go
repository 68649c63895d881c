// Package response writes the JSON envelope every endpoint answers with:
//
//	{"ok": true,  "data": ...}
//	{"ok": false, "error": {"code": "...", "message": "...", "fields": [...]}}
package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes.
const (
	CodeValidation         = "validation"
	CodeBadRequest         = "bad_request"
	CodeInvalidCredentials = "invalid_credentials"
	CodeUnauthorized       = "unauthorized"
	CodeNotFound           = "not_found"
	CodeMethodNotAllowed   = "method_not_allowed"
	CodeUserNotFound       = "user_not_found"
	CodeUnavailable        = "unavailable"
	CodeInternal           = "internal"
)

// Envelope is the body of every response.
type Envelope struct {
	OK    bool       `json:"ok"`
	Data  any        `json:"data,omitempty"`
	Error *ErrorBody `json:"error,omitempty"`
}

// ErrorBody describes a failure.
type ErrorBody struct {
	Code    string       `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

// FieldError is one failed validation rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// OK writes a success envelope.
func OK(c *gin.Context, data any) {
	c.JSON(http.StatusOK, Envelope{OK: true, Data: data})
}

// Created writes a 201 success envelope.
func Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, Envelope{OK: true, Data: data})
}

// Fail writes an error envelope and aborts the handler chain.
func Fail(c *gin.Context, status int, code, message string, fields ...FieldError) {
	c.AbortWithStatusJSON(status, Envelope{
		OK: false,
		Error: &ErrorBody{
			Code:    code,
			Message: message,
			Fields:  fields,
		},
	})
}

// Validation writes a 400 with the failed fields.
func Validation(c *gin.Context, fields []FieldError) {
	Fail(c, http.StatusBadRequest, CodeValidation, "validation failed", fields...)
}

// Internal writes a 500 without exposing the underlying error.
func Internal(c *gin.Context) {
	Fail(c, http.StatusInternalServerError, CodeInternal, "internal server error")
}
