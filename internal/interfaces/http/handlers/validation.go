package handlers

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	vo "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
)

// RegisterValidations installs catalog binding rules on gin's validator
// engine. Must run once before routes are registered.
func RegisterValidations() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}

	v.RegisterValidation("plantier", func(fl validator.FieldLevel) bool {
		_, err := vo.ParseTier(fl.Field().String())
		return err == nil
	})

	v.RegisterValidation("plancategory", func(fl validator.FieldLevel) bool {
		_, err := vo.ParseCategory(fl.Field().String())
		return err == nil
	})
}
