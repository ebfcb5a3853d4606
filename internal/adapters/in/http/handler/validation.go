// internal/adapters/in/http/handler/validation.go
package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	userdom "qkart/internal/domain/user"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their JSON name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// letterdigit: at least one letter and one digit.
	_ = v.RegisterValidation("letterdigit", func(fl validator.FieldLevel) bool {
		return userdom.ValidatePassword(fl.Field().String()) == nil
	})
	return v
}

// validationError turns the first failing rule into a client message.
func validationError(err error) error {
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) || len(ves) == 0 {
		return err
	}
	fe := ves[0]
	field := fe.Field()
	switch {
	case fe.Tag() == "required":
		return fmt.Errorf("%q is required", field)
	case field == "password":
		return errors.New("password must be at least 8 characters and contain at least 1 letter and 1 number")
	case field == "address":
		return errors.New("\"address\" length must be between 20 and 1024 characters")
	case fe.Tag() == "email", fe.Tag() == "excludes":
		return fmt.Errorf("%q must be a valid email", field)
	case fe.Tag() == "min" && fe.Param() == "0":
		return fmt.Errorf("%q must not be negative", field)
	default:
		return fmt.Errorf("%q failed %s validation", field, fe.Tag())
	}
}
