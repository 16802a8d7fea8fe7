package currencybeacon

type fetchCurrenciesResponse struct {
	Response []currency `json:"response"`
}

type currency struct {
	Name      string `json:"name"`
	ShortCode string `json:"short_code"`
	Symbol    string `json:"symbol"`
}

type latestRatesResponse struct {
	Response *latestRates `json:"response"`
}

type latestRates struct {
	Base  string              `json:"base"`
	Rates *map[string]float64 `json:"rates"`
}
