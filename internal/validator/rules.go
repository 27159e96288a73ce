package validator

import (
	"log"
	"time"

	"github.com/go-playground/validator/v10"

	"careconnect_web/internal/catalog"
	"careconnect_web/internal/models"
)

// now is replaced in tests
var now = time.Now

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("is-user-role", validateUserRole)
	mustRegister("is-hhmm", validateClock)
	mustRegister("is-date", validateDate)
	mustRegister("future-date", validateFutureDate)
	mustRegister("is-skill", validateSkill)
}

// Empty values pass every rule below, 'required' handles them.

func validateUserRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.UserRole(value).Valid()
}

func validateClock(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	if _, err := time.Parse("15:04", value); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", value)
	return err == nil
}

func validateDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := time.Parse(time.DateOnly, value)
	return err == nil
}

func validateFutureDate(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	d, err := time.ParseInLocation(time.DateOnly, value, time.Local)
	if err != nil {
		// is-date reports the format problem
		return true
	}
	y, m, day := now().Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.Local)
	return d.After(today)
}

func validateSkill(fl validator.FieldLevel) bool {
	return catalog.IsSkill(fl.Field().String())
}
