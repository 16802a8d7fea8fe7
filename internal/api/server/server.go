package server

import (
	"context"
	"embed"
	"html/template"
	"strconv"
	"time"

	"github.com/VladPetriv/currency_beacon/internal/metrics"
	"github.com/VladPetriv/currency_beacon/internal/models"
	"github.com/VladPetriv/currency_beacon/internal/service"
	"github.com/VladPetriv/currency_beacon/pkg/database"
	"github.com/VladPetriv/currency_beacon/pkg/logger"
	"github.com/VladPetriv/currency_beacon/pkg/money"
	"github.com/fasthttp/router"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"
)

// SettingsPath is a path of Currency Beacon admin settings page.
const SettingsPath = "/settings/rate-providers/currency-beacon"

//go:embed templates/*.html
var templatesFS embed.FS

// RateProvider is a rate provider which exposes its cached rates.
type RateProvider interface {
	service.RateProvider
	Convert(ctx context.Context, opts service.ConvertCurrencyOptions) (*money.Money, error)
	Snapshot() *models.RateSnapshot
}

// Server serves admin settings page and rates api.
type Server struct {
	logger     *logger.Logger
	provider   RateProvider
	currencies service.CurrencyExchanger
	database   database.Database
	metrics    *metrics.Metrics
	ratesTTL   time.Duration

	settingsTemplate *template.Template
	httpServer       *fasthttp.Server
}

// Options represents input options for new instance of server.
type Options struct {
	Logger     *logger.Logger
	Provider   RateProvider
	Currencies service.CurrencyExchanger

	// Database is pinged by the health check, when set.
	Database database.Database
	Metrics  *metrics.Metrics
	Gatherer prometheus.Gatherer
	RatesTTL time.Duration
}

// New returns new instance of server.
func New(opts Options) (*Server, error) {
	settingsTemplate, err := template.ParseFS(templatesFS, "templates/settings.html")
	if err != nil {
		return nil, err
	}

	s := &Server{
		logger:           opts.Logger,
		provider:         opts.Provider,
		currencies:       opts.Currencies,
		database:         opts.Database,
		metrics:          opts.Metrics,
		ratesTTL:         opts.RatesTTL,
		settingsTemplate: settingsTemplate,
	}
	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	if s.ratesTTL <= 0 {
		s.ratesTTL = service.DefaultRatesTTL
	}

	r := router.New()
	r.GET(SettingsPath, s.instrument(SettingsPath, s.handleSettings))
	r.GET("/api/rates", s.instrument("/api/rates", s.handleGetRate))
	r.GET("/api/currencies", s.instrument("/api/currencies", s.handleListCurrencies))
	r.GET("/healthz", s.handleHealth)
	if opts.Gatherer != nil {
		r.GET("/metrics", fasthttpadaptor.NewFastHTTPHandler(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}

	s.httpServer = &fasthttp.Server{
		Name:         "currency-beacon",
		Handler:      r.Handler,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	return s, nil
}

// Handler returns root request handler.
func (s *Server) Handler() fasthttp.RequestHandler {
	return s.httpServer.Handler
}

// ListenAndServe serves requests on the given address until Shutdown is called.
func (s *Server) ListenAndServe(address string) error {
	s.logger.Info().Str("address", address).Msg("starting http server")
	return s.httpServer.ListenAndServe(address)
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	return s.httpServer.Shutdown()
}

func (s *Server) instrument(path string, next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		next(ctx)

		if s.metrics == nil {
			return
		}
		s.metrics.HTTPRequestsTotal.
			WithLabelValues(path, string(ctx.Method()), strconv.Itoa(ctx.Response.StatusCode())).
			Inc()
	}
}
