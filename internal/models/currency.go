package models

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// BaseCurrency is a currency against which all cached rates are expressed.
const BaseCurrency CurrencyCode = "USD"

// CurrencyCode represents a currency identifier, e.g. "EUR".
type CurrencyCode string

// NewCurrencyCode returns normalized currency code.
func NewCurrencyCode(code string) CurrencyCode {
	return CurrencyCode(strings.ToUpper(strings.TrimSpace(code)))
}

func (c CurrencyCode) String() string {
	return string(c)
}

// IsISO reports whether code is a recognized ISO 4217 currency code.
// Rate lookups don't require it, since upstream API also serves non ISO codes.
func (c CurrencyCode) IsISO() bool {
	_, err := currency.ParseISO(string(c))
	return err == nil
}

// Symbol returns a currency symbol for ISO codes and the code itself otherwise.
func (c CurrencyCode) Symbol() string {
	unit, err := currency.ParseISO(string(c))
	if err != nil {
		return string(c)
	}

	return message.NewPrinter(language.English).Sprint(currency.NarrowSymbol(unit))
}

// Currency represents currency model which contains currency name, code and symbol.
type Currency struct {
	Name   string
	Code   CurrencyCode
	Symbol string
}

// GetName returns the currency name with its code.
func (c Currency) GetName() string {
	return fmt.Sprintf("%s (%s)", c.Name, c.Code)
}
