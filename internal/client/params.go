package client

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// DefaultInitialCash is applied when the caller does not supply starting
// capital.
const DefaultInitialCash = 100000

// RunParams are the user-supplied parameters for one backtest run. Dates are
// ISO YYYY-MM-DD strings; start <= end is the input form's responsibility.
type RunParams struct {
	Symbol      string  `json:"symbol" form:"symbol" validate:"required"`
	Start       string  `json:"start" form:"start" validate:"required,isodate"`
	End         string  `json:"end" form:"end" validate:"required,isodate"`
	InitialCash float64 `json:"initial_cash" form:"initial_cash" validate:"gt=0"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Date fields travel as plain strings end to end, so shape is checked here
	// rather than parsed into time.Time.
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		_, err := time.Parse("2006-01-02", fl.Field().String())
		return err == nil
	})
	return v
}

// Normalize applies the default starting capital.
func (p *RunParams) Normalize() {
	if p.InitialCash == 0 {
		p.InitialCash = DefaultInitialCash
	}
}

// Validate checks the parameters. Call Normalize first so an omitted starting
// capital has already been defaulted; a negative or still-zero value fails.
func (p *RunParams) Validate() error {
	return validate.Struct(p)
}
