package service

import (
	"context"

	"github.com/VladPetriv/currency_beacon/internal/models"
	"github.com/VladPetriv/currency_beacon/pkg/money"
)

// RateProvider supplies exchange rates between currencies.
type RateProvider interface {
	// Name returns human readable provider identifier.
	Name() string
	// GetRate returns how many units of to currency are worth one unit of from currency.
	GetRate(ctx context.Context, from, to models.CurrencyCode) (float64, error)
}

// ConvertCurrencyOptions represents input options for conversion of amount between currencies.
type ConvertCurrencyOptions struct {
	Amount money.Money
	From   models.CurrencyCode
	To     models.CurrencyCode
}
