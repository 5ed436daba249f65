package validation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/julianstephens/miaomotion/internal/utils"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// hhmm is stricter than datetime=15:04, which accepts single digit hours.
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return utils.ValidateTimeFormat(fl.Field().String())
	})
	_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		return utils.ValidateDateFormat(fl.Field().String())
	})
	return v
}

// LoginForm is the cosmetic phone/code login. Only the format is checked.
type LoginForm struct {
	Phone string `validate:"required,number,len=11"`
	Code  string `validate:"max=4"`
}

// AdoptForm carries the adoption choices.
type AdoptForm struct {
	Name  string `validate:"max=32"`
	Breed string `validate:"required,oneof=orange calico tuxedo siamese"`
}

// ScheduleForm carries a new schedule item before it is handed to the engine.
type ScheduleForm struct {
	Date      string `validate:"required,ymd"`
	StartTime string `validate:"required,hhmm"`
	EndTime   string `validate:"required,hhmm"`
	Task      string
}

// Struct validates any of the form types above and flattens validator errors
// into a single readable error.
func Struct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, describe(fe))
	}
	return errors.New(strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "len":
		return fmt.Sprintf("%s must be exactly %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "number":
		return fmt.Sprintf("%s must contain digits only", field)
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "hhmm":
		return fmt.Sprintf("%s must be a zero-padded HH:MM time, got %q", field, fe.Value())
	case "ymd":
		return fmt.Sprintf("%s must be a YYYY-MM-DD date, got %q", field, fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
