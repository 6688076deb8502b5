package model

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// tickerPattern accepts plain symbols (RELIANCE, BRK.B) and index
// tickers (^NSEI).
var tickerPattern = regexp.MustCompile(`^[A-Za-z0-9^.\-]{1,16}$`)

// RegisterValidators installs custom validations on gin's binding
// engine. Call once at startup (and in router-level tests).
func RegisterValidators() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("ticker", validTicker)
	}
}

func validTicker(fl validator.FieldLevel) bool {
	return tickerPattern.MatchString(fl.Field().String())
}
