package diet

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Validator aplica el contrato de salida de DietProposal.
type Validator struct {
	v *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	// no puede fallar: tag y función son fijos
	_ = v.RegisterValidation("hhmm_list", func(fl validator.FieldLevel) bool {
		return IsScheduleString(fl.Field().String())
	})
	v.RegisterStructValidation(validateDates, DietProposal{})
	return &Validator{v: v}
}

func validateDates(sl validator.StructLevel) {
	p, ok := sl.Current().Interface().(DietProposal)
	if !ok || p.EndDate == nil {
		return
	}
	start, err := time.Parse(DateLayout, p.StartDate)
	if err != nil {
		return
	}
	end, err := time.Parse(DateLayout, *p.EndDate)
	if err != nil {
		return
	}
	if end.Before(start) {
		sl.ReportError(p.EndDate, "end_date", "EndDate", "after_start", "")
	}
}

// Validate devuelve *SchemaValidationError con los campos que fallan.
func (v *Validator) Validate(p DietProposal) error {
	err := v.v.Struct(p)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if errors.As(err, &ves) {
		fields := make([]string, 0, len(ves))
		for _, fe := range ves {
			fields = append(fields, fe.Field()+":"+fe.Tag())
		}
		return &SchemaValidationError{Fields: fields, Err: err}
	}
	return &SchemaValidationError{Err: err}
}
