package validators

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Struct runs struct-tag validation on a request body and flattens failures
// to field -> failed rule. nil means the body is valid.
func Struct(v interface{}) map[string]string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
		return out
	}
	out["body"] = "invalid"
	return out
}
