package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mmynk/todolist/internal/api/response"
	"github.com/mmynk/todolist/internal/auth"
	"github.com/mmynk/todolist/internal/storage"
)

// fail maps a service error to a status code and error envelope.
// resource names the entity in not-found messages.
func (s *Server) fail(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		response.Fail(c, http.StatusNotFound, response.CodeNotFound, resource+" not found")
	case errors.Is(err, auth.ErrUserNotFound):
		response.Fail(c, http.StatusNotFound, response.CodeUserNotFound, err.Error())
	case errors.Is(err, auth.ErrInvalidCredentials):
		response.Fail(c, http.StatusUnauthorized, response.CodeInvalidCredentials, err.Error())
	case errors.Is(err, auth.ErrWeakPassword):
		response.Validation(c, []response.FieldError{{Field: "password", Message: err.Error()}})
	default:
		// The driver's error is logged by the request logger, never sent.
		c.Error(err)
		response.Internal(c)
	}
}

// bind decodes a JSON or form body into req. An empty body is accepted
// when allowEmpty is set.
func (s *Server) bind(c *gin.Context, req any, allowEmpty bool) bool {
	err := c.ShouldBind(req)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return true
	}
	c.Error(err)
	response.Fail(c, http.StatusBadRequest, response.CodeBadRequest, "invalid request body")
	return false
}

func (s *Server) notFound(c *gin.Context) {
	response.Fail(c, http.StatusNotFound, response.CodeNotFound, "route not found")
}

func (s *Server) methodNotAllowed(c *gin.Context) {
	response.Fail(c, http.StatusMethodNotAllowed, response.CodeMethodNotAllowed, "method not allowed")
}
