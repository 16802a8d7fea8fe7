package server

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"time"

	"github.com/VladPetriv/currency_beacon/internal/models"
	"github.com/VladPetriv/currency_beacon/internal/service"
	"github.com/VladPetriv/currency_beacon/pkg/money"
	"github.com/VladPetriv/currency_beacon/pkg/typecast"
	"github.com/valyala/fasthttp"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const healthCheckTimeout = 2 * time.Second

type settingsView struct {
	Name         string
	BaseCurrency models.CurrencyCode
	RatesTTL     string
	UpdatedAt    string
	Rates        []rateView
}

type rateView struct {
	Code   string
	Symbol string
	Rate   string
}

func (s *Server) handleSettings(ctx *fasthttp.RequestCtx) {
	logger := s.logger.With().Str("name", "server.handleSettings").Logger()

	view := settingsView{
		Name:         s.provider.Name(),
		BaseCurrency: models.BaseCurrency,
		RatesTTL:     s.ratesTTL.String(),
	}

	snapshot := s.provider.Snapshot()
	if snapshot != nil && snapshot.UpdatedAt > 0 {
		printer := message.NewPrinter(language.English)

		view.UpdatedAt = snapshot.UpdatedAtTime().Format(time.RFC3339)
		view.Rates = make([]rateView, 0, len(snapshot.Rates))
		for code, rate := range snapshot.Rates {
			view.Rates = append(view.Rates, rateView{
				Code:   code,
				Symbol: models.CurrencyCode(code).Symbol(),
				Rate:   printer.Sprintf("%.6f", rate),
			})
		}
		sort.Slice(view.Rates, func(i, j int) bool {
			return view.Rates[i].Code < view.Rates[j].Code
		})
	}

	ctx.SetContentType("text/html; charset=utf-8")
	err := s.settingsTemplate.Execute(ctx, view)
	if err != nil {
		logger.Error().Err(err).Msg("render settings template")
		ctx.ResetBody()
		ctx.Error("render settings page", fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetStatusCode(fasthttp.StatusOK)
}

type rateResponse struct {
	Provider  string       `json:"provider"`
	From      string       `json:"from"`
	To        string       `json:"to"`
	Rate      float64      `json:"rate"`
	Amount    *money.Money `json:"amount,omitempty"`
	Converted *money.Money `json:"converted,omitempty"`
}

func (s *Server) handleGetRate(ctx *fasthttp.RequestCtx) {
	logger := s.logger.With().Str("name", "server.handleGetRate").Logger()

	args := ctx.QueryArgs()
	from := models.NewCurrencyCode(string(args.Peek("from")))
	to := models.NewCurrencyCode(string(args.Peek("to")))
	logger.Debug().Any("from", from).Any("to", to).Msg("got args")

	if from == "" || to == "" {
		writeError(ctx, fasthttp.StatusBadRequest, "from and to query parameters are required")
		return
	}

	var amount *money.Money
	if rawAmount := args.Peek("amount"); len(rawAmount) > 0 {
		parsed, err := money.NewFromString(string(rawAmount))
		if err != nil {
			writeError(ctx, fasthttp.StatusBadRequest, "amount must be a decimal number")
			return
		}
		amount = typecast.ToPtr(parsed)
	}

	response := rateResponse{
		Provider: s.provider.Name(),
		From:     from.String(),
		To:       to.String(),
	}

	// Conversion goes first so a failed lookup happens once per request,
	// after it the rate is served from the refreshed cache.
	if amount != nil {
		converted, err := s.provider.Convert(ctx, service.ConvertCurrencyOptions{
			Amount: *amount,
			From:   from,
			To:     to,
		})
		if err != nil {
			handleProviderError(ctx, err)
			return
		}

		response.Amount = amount
		response.Converted = converted
	}

	rate, err := s.provider.GetRate(ctx, from, to)
	if err != nil {
		handleProviderError(ctx, err)
		return
	}
	response.Rate = rate

	writeJSON(ctx, fasthttp.StatusOK, response)
}

type currencyResponse struct {
	Name   string `json:"name"`
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

func (s *Server) handleListCurrencies(ctx *fasthttp.RequestCtx) {
	if s.currencies == nil {
		writeError(ctx, fasthttp.StatusNotFound, "currencies listing is not available")
		return
	}

	currencies, err := s.currencies.FetchCurrencies(ctx)
	if err != nil {
		s.logger.Error().Err(err).Str("name", "server.handleListCurrencies").Msg("fetch currencies")
		handleProviderError(ctx, err)
		return
	}

	response := make([]currencyResponse, 0, len(currencies))
	for _, currency := range currencies {
		response = append(response, currencyResponse{
			Name:   currency.Name,
			Code:   currency.Code.String(),
			Symbol: currency.Symbol,
		})
	}

	writeJSON(ctx, fasthttp.StatusOK, response)
}

type healthResponse struct {
	Status string `json:"status"`
}

func (s *Server) handleHealth(ctx *fasthttp.RequestCtx) {
	if s.database != nil {
		pingCtx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
		defer cancel()

		err := s.database.Ping(pingCtx)
		if err != nil {
			s.logger.Error().Err(err).Msg("ping database")
			writeJSON(ctx, fasthttp.StatusServiceUnavailable, healthResponse{Status: "unavailable"})
			return
		}
	}

	writeJSON(ctx, fasthttp.StatusOK, healthResponse{Status: "ok"})
}

// handleProviderError maps provider errors to responses. Providers log their failures themselves.
func handleProviderError(ctx *fasthttp.RequestCtx, err error) {
	switch {
	case errors.Is(err, service.ErrUnsupportedCurrency):
		writeError(ctx, fasthttp.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrFetchRatesFailed), errors.Is(err, service.ErrMalformedRatesResponse):
		writeError(ctx, fasthttp.StatusBadGateway, "rates are not available")
	case errors.Is(err, service.ErrFetchCurrenciesFailed):
		writeError(ctx, fasthttp.StatusBadGateway, "currencies are not available")
	default:
		writeError(ctx, fasthttp.StatusInternalServerError, "internal error")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(ctx *fasthttp.RequestCtx, statusCode int, message string) {
	writeJSON(ctx, statusCode, errorResponse{Error: message})
}

func writeJSON(ctx *fasthttp.RequestCtx, statusCode int, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		ctx.Error("encode response", fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(statusCode)
	ctx.SetBody(data)
}
