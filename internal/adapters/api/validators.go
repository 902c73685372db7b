package api

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"weatherdash.app/pkg/validation"
)

// validateCityName backs the `cityname` binding tag
func validateCityName(fl validator.FieldLevel) bool {
	return validation.IsValidCityName(fl.Field().String())
}

// RegisterValidators installs the custom binding tags on gin's validator
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("cityname", validateCityName)
}
