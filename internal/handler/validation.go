package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	// report fields by their wire names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	return v
}

// validationFields turns validator errors into one message per field.
func validationFields(err error) map[string]string {
	var vErrs validator.ValidationErrors
	if !errors.As(err, &vErrs) {
		return map[string]string{"request": err.Error()}
	}

	fields := make(map[string]string, len(vErrs))
	for _, fe := range vErrs {
		if _, seen := fields[fe.Field()]; seen {
			continue
		}
		fields[fe.Field()] = fieldMessage(fe)
	}
	return fields
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("the %s field is required", field)
	case "email":
		return fmt.Sprintf("the %s must be a valid email address", field)
	case "min":
		return fmt.Sprintf("the %s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("the %s may not be greater than %s characters", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("the %s does not match", field)
	case "uuid":
		return fmt.Sprintf("the %s must be a valid identifier", field)
	default:
		return fmt.Sprintf("the %s is invalid", field)
	}
}

// decodeAndValidate reads a JSON body into req and validates it, writing the
// error response itself. It reports whether the handler may continue.
func (h *Handlers) decodeAndValidate(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(req); err != nil {
		WriteError(w, "invalid request body", http.StatusBadRequest)
		return false
	}

	return h.validate(w, req)
}

func (h *Handlers) validate(w http.ResponseWriter, req interface{}) bool {
	if err := h.Validate.Struct(req); err != nil {
		writeValidationError(w, validationFields(err))
		return false
	}
	return true
}
