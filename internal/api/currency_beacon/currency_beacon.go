package currencybeacon

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/VladPetriv/currency_beacon/internal/models"
	"github.com/VladPetriv/currency_beacon/internal/service"
	"resty.dev/v3"
)

// DefaultTimeout is used when no timeout was passed to New.
const DefaultTimeout = 10 * time.Second

type currencyBeacon struct {
	httpClient *resty.Client
}

var _ service.CurrencyExchanger = (*currencyBeacon)(nil)

// Options represents input options for new instance of Currency Beacon api.
type Options struct {
	APIURL  string
	APIKey  string
	Timeout time.Duration
}

// New creates a new instance of currencyBeacon api.
func New(opts Options) *currencyBeacon {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	httpClient := resty.New().
		SetBaseURL(opts.APIURL).
		SetAuthScheme("Bearer").
		SetAuthToken(opts.APIKey).
		SetTimeout(timeout)

	return &currencyBeacon{
		httpClient: httpClient,
	}
}

// Close releases idle connections of underlying http client.
func (c *currencyBeacon) Close() error {
	return c.httpClient.Close()
}

func (c *currencyBeacon) FetchCurrencies(ctx context.Context) ([]models.Currency, error) {
	var result fetchCurrenciesResponse

	response, err := c.httpClient.R().
		SetContext(ctx).
		SetResult(&result).
		Get("/v1/currencies")
	if err != nil {
		return nil, fmt.Errorf("%w: send fetch currencies request: %w", service.ErrFetchCurrenciesFailed, err)
	}
	if response.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("%w: could not fetch currencies(statusCode: %d, body:%s)", service.ErrFetchCurrenciesFailed, response.StatusCode(), response.String())
	}

	output := make([]models.Currency, 0, len(result.Response))
	for _, currency := range result.Response {
		output = append(output, models.Currency{
			Name:   currency.Name,
			Code:   models.NewCurrencyCode(currency.ShortCode),
			Symbol: currency.Symbol,
		})
	}

	return output, nil
}

func (c *currencyBeacon) FetchLatestRates(ctx context.Context, baseCurrency models.CurrencyCode) (map[string]float64, error) {
	response, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParam("base", baseCurrency.String()).
		SetDoNotParseResponse(true).
		Get("/v1/latest")
	if err != nil {
		return nil, fmt.Errorf("%w: send get latest rates request: %w", service.ErrFetchRatesFailed, err)
	}
	defer response.Body.Close()

	if response.StatusCode() != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(response.Body, 1024))
		return nil, fmt.Errorf("%w: could not get latest rates(statusCode: %d, body:%s)", service.ErrFetchRatesFailed, response.StatusCode(), body)
	}

	rates, err := decodeLatestRates(response.Body)
	if err != nil {
		return nil, err
	}

	if _, ok := rates[baseCurrency.String()]; !ok {
		rates[baseCurrency.String()] = 1
	}

	return rates, nil
}

func decodeLatestRates(body io.Reader) (map[string]float64, error) {
	var result latestRatesResponse
	err := json.NewDecoder(body).Decode(&result)
	if err != nil {
		return nil, fmt.Errorf("%w: decode body: %w", service.ErrMalformedRatesResponse, err)
	}
	if result.Response == nil {
		return nil, fmt.Errorf("%w: missing response field", service.ErrMalformedRatesResponse)
	}
	if result.Response.Rates == nil {
		return nil, fmt.Errorf("%w: missing response.rates field", service.ErrMalformedRatesResponse)
	}

	rates := make(map[string]float64, len(*result.Response.Rates))
	for code, rate := range *result.Response.Rates {
		rates[code] = rate
	}

	return rates, nil
}
