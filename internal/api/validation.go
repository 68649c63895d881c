package api

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mmynk/todolist/internal/api/response"
)

// newValidator reports fields by their JSON name.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// check validates req and returns one FieldError per failing field.
// messages maps a JSON field name to the message shown for any rule it
// fails; fields without an entry get a generic message.
func (s *Server) check(req any, messages map[string]string) []response.FieldError {
	err := s.validate.Struct(req)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []response.FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]response.FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msg, ok := messages[fe.Field()]
		if !ok {
			msg = fe.Field() + " failed rule " + fe.Tag()
		}
		out = append(out, response.FieldError{Field: fe.Field(), Message: msg})
	}
	return out
}
