package accountdelivery

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/VictorMordachini/conta-bancaria/internal/domain"
)

// ValidAccountType validates whether the account type is supported.
var ValidAccountType validator.Func = func(fl validator.FieldLevel) bool {
	if t, ok := fl.Field().Interface().(string); ok {
		switch domain.AccountType(t) {
		case domain.Checking, domain.Savings:
			return true
		}
	}

	return false
}

// ValidDecimal validates whether the string parses as a decimal number.
var ValidDecimal validator.Func = func(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		_, err := decimal.NewFromString(s)
		return err == nil
	}

	return false
}
