package httpapi

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// checkRequest runs the struct tags on a decoded request and turns the
// failures into one client-facing message.
func checkRequest(req any) error {
	err := validate.Struct(req)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, fe.Field()+" is required")
		case "gt":
			msgs = append(msgs, fmt.Sprintf("%s must be greater than %s", fe.Field(), fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s failed %s", fe.Field(), fe.Tag()))
		}
	}
	return errors.New(strings.Join(msgs, "; "))
}
