package service

import (
	"errors"

	"github.com/VladPetriv/currency_beacon/pkg/errs"
)

var (
	// ErrFetchRatesFailed happens when upstream API didn't return rates(non 200 status or transport error).
	ErrFetchRatesFailed = errors.New("fetch currency rates failed")
	// ErrMalformedRatesResponse happens when upstream API returned body of unexpected shape.
	ErrMalformedRatesResponse = errors.New("malformed currency rates response")
	// ErrFetchCurrenciesFailed happens when upstream API didn't return the list of supported currencies.
	ErrFetchCurrenciesFailed = errors.New("fetch currencies failed")
	// ErrUnsupportedCurrency happens when requested currency is absent in rates table.
	ErrUnsupportedCurrency = errs.New("unsupported currency")
)
