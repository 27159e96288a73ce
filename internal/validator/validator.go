package validator

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ValidationError holds the "field" -> "message" map of a failed validation.
// Fields keeps the struct order of the failing fields.
type ValidationError struct {
	Errors map[string]string
	Fields []string
}

func (e *ValidationError) Error() string {
	var errMsgs []string
	for _, field := range e.Fields {
		errMsgs = append(errMsgs, fmt.Sprintf("field '%s': %s", field, e.Errors[field]))
	}
	return "Validation failed: " + strings.Join(errMsgs, "; ")
}

// Validator wraps go-playground/validator.
type Validator struct {
	validate *validator.Validate
}

func New() *Validator {
	v := validator.New()

	// Report fields by their form name, falling back to the json name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"form", "json"} {
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

	registerCustomRules(v)

	return &Validator{
		validate: v,
	}
}

// Validate validates a struct. On failure it returns *ValidationError.
// A `msg` struct tag overrides the generated message for that field.
func (v *Validator) Validate(i interface{}) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	out := &ValidationError{Errors: make(map[string]string)}
	for _, fe := range validationErrors {
		fieldName := fe.Field()
		// "skills[1]" is reported as "skills"
		if idx := strings.IndexByte(fieldName, '['); idx >= 0 {
			fieldName = fieldName[:idx]
		}
		if _, seen := out.Errors[fieldName]; seen {
			continue
		}
		out.Fields = append(out.Fields, fieldName)
		out.Errors[fieldName] = v.messageFor(i, fe)
	}

	return out
}

func (v *Validator) messageFor(i interface{}, fe validator.FieldError) string {
	if msg := customMessage(i, fe.StructField()); msg != "" {
		return msg
	}
	return v.getErrorMessage(fe)
}

func customMessage(i interface{}, structField string) string {
	t := reflect.TypeOf(i)
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return ""
	}

	// dive errors report "Skills[2]"
	if idx := strings.IndexByte(structField, '['); idx >= 0 {
		structField = structField[:idx]
	}

	f, ok := t.FieldByName(structField)
	if !ok {
		return ""
	}
	return f.Tag.Get("msg")
}

func (v *Validator) getErrorMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Please enter a valid email address"
	case "min":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at least %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "max":
		if fe.Kind() == reflect.String || fe.Kind() == reflect.Slice || fe.Kind() == reflect.Map {
			return fmt.Sprintf("Must be at most %s characters long", fe.Param())
		}
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be greater than or equal to %s", fe.Param())
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "is-user-role":
		return "Please choose a valid account type"
	case "is-hhmm":
		return "Must be a time in HH:MM format"
	case "is-date":
		return "Must be a date in YYYY-MM-DD format"
	case "future-date":
		return "The date must be tomorrow or later"
	case "is-skill":
		return "Unknown skill"
	default:
		return fmt.Sprintf("Invalid value (failed on '%s' tag)", fe.Tag())
	}
}
