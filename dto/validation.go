package dto

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wingsengineering/wingsweb/localization"
)

var (
	kenyanPhone = regexp.MustCompile(`^(\+254|0)[17]\d{8}$`)
	simpleEmail = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	whitespace  = regexp.MustCompile(`\s`)
)

// FieldErrors maps a form field (its json name) to a localized message.
type FieldErrors map[string]string

// ValidKenyanPhone accepts +2547XXXXXXXX, 07XXXXXXXX and the 1 prefixed
// ranges, ignoring whitespace.
func ValidKenyanPhone(phone string) bool {
	return kenyanPhone.MatchString(whitespace.ReplaceAllString(phone, ""))
}

func ValidEmail(email string) bool {
	return simpleEmail.MatchString(email)
}

// Validator checks visitor forms and reports errors in the visitor's
// language.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for empty tags or nil funcs.
	_ = v.RegisterValidation("kephone", func(fl validator.FieldLevel) bool {
		return ValidKenyanPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("formemail", func(fl validator.FieldLevel) bool {
		return ValidEmail(fl.Field().String())
	})
	return &Validator{v: v}
}

// Check normalizes and validates form. It returns nil when the form is
// valid.
func (v *Validator) Check(loc *localization.Localizer, form Form) FieldErrors {
	form.Normalize()
	err := v.v.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_": loc.T("contact.form.invalid")}
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		if _, seen := out[fe.Field()]; seen {
			continue
		}
		out[fe.Field()] = message(loc, fe)
	}
	return out
}

func message(loc *localization.Localizer, fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		if fe.Kind() == reflect.String {
			return loc.T("validation.minLength", localization.Params{"length": fe.Param()})
		}
		return loc.T("validation.min", localization.Params{"min": fe.Param()})
	case "formemail", "email":
		return loc.T("validation.email")
	case "kephone":
		return loc.T("validation.phone")
	case "oneof":
		return loc.T("validation.oneOf")
	default:
		return loc.T("validation.required")
	}
}

// Required is the message for a field a controller found missing.
func Required(loc *localization.Localizer) string {
	return loc.T("validation.required")
}
