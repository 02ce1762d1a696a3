package service

import (
	"errors"

	"github.com/shopspring/decimal"
)

// maxAmount — наибольшая сумма, которую вмещает столбец numeric(12,2).
var maxAmount = decimal.RequireFromString("9999999999.99")

// Границы представления суммы. Round и сравнения перемасштабируют коэффициент
// до общей экспоненты, поэтому их вызывают только после этих проверок.
const (
	maxAmountExponent = 10
	minAmountExponent = -40
	maxAmountDigits   = 40
)

var (
	errAmountTooLarge   = errors.New("must not exceed 9999999999.99")
	errAmountTooPrecise = errors.New("must have at most two decimal places")
)

// checkAmount проверяет, что сумма помещается в numeric(12,2) без потерь.
// Знак не проверяется: это делают правила ставки и аукциона.
func checkAmount(v decimal.Decimal) error {
	exp := v.Exponent()
	switch {
	case exp > maxAmountExponent:
		return errAmountTooLarge
	case exp < minAmountExponent:
		return errAmountTooPrecise
	case v.NumDigits() > maxAmountDigits:
		if exp < -2 {
			return errAmountTooPrecise
		}
		return errAmountTooLarge
	}
	if !v.Equal(v.Round(2)) {
		return errAmountTooPrecise
	}
	if v.Abs().GreaterThan(maxAmount) {
		return errAmountTooLarge
	}
	return nil
}
