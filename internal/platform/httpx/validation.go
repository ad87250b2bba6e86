package httpx

import (
	"errors"

	"github.com/go-playground/validator/v10"
)

// FieldErrors flattens validator output into a field -> message map
// suitable for ValidationProblem.
func FieldErrors(err error) map[string]string {
	out := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fieldErr := range verrs {
			out[fieldErr.Field()] = "failed on " + fieldErr.Tag()
		}
		return out
	}
	out["request"] = err.Error()
	return out
}
