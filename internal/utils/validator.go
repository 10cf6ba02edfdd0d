package utils

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type GistsGoneValidator struct {
	v *validator.Validate
}

func NewValidator() *GistsGoneValidator {
	v := validator.New()
	_ = v.RegisterValidation("dateonly", validateDateOnly)
	return &GistsGoneValidator{v}
}

func (cv *GistsGoneValidator) Validate(i interface{}) error {
	return cv.v.Struct(i)
}

func (cv *GistsGoneValidator) Var(field interface{}, tag string) error {
	return cv.v.Var(field, tag)
}

func ValidationMessages(err *error) string {
	errs := (*err).(validator.ValidationErrors)
	messages := make([]string, len(errs))
	for i, e := range errs {
		switch e.Tag() {
		case "required":
			messages[i] = e.Field() + " should not be empty"
		case "max":
			messages[i] = "Too many " + e.Field()
		case "oneof":
			messages[i] = e.Field() + " should be one of: " + e.Param()
		case "dateonly":
			messages[i] = e.Field() + " should be a date in YYYY-MM-DD format"
		default:
			messages[i] = "Invalid " + e.Field()
		}
	}

	return strings.Join(messages, " ; ")
}

func validateDateOnly(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}
