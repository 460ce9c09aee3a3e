package models

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// MinReleaseYear is the earliest accepted release year.
const MinReleaseYear = 1800

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	// the upper bound moves with the calendar, so it cannot be a static tag parameter
	_ = v.RegisterValidation("releaseyear", func(fl validator.FieldLevel) bool {
		year := fl.Field().Int()
		return year >= MinReleaseYear && year <= int64(time.Now().Year())
	})
	return v
}
