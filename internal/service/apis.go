package service

import (
	"context"

	"github.com/VladPetriv/currency_beacon/internal/models"
)

// APIs represents all external apis.
type APIs struct {
	CurrencyExchanger CurrencyExchanger
}

// CurrencyExchanger provides rates of currencies from an external source.
//
//go:generate mockery --dir . --name CurrencyExchanger --output ./mocks
type CurrencyExchanger interface {
	// FetchLatestRates returns the latest rates of all supported currencies against base currency.
	FetchLatestRates(ctx context.Context, baseCurrency models.CurrencyCode) (map[string]float64, error)
	// FetchCurrencies returns a list of supported currencies.
	FetchCurrencies(ctx context.Context) ([]models.Currency, error)
}
