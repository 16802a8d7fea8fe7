package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VladPetriv/currency_beacon/internal/metrics"
	"github.com/VladPetriv/currency_beacon/internal/models"
	"github.com/VladPetriv/currency_beacon/pkg/errs"
	"github.com/VladPetriv/currency_beacon/pkg/logger"
	"github.com/VladPetriv/currency_beacon/pkg/money"
	"golang.org/x/sync/singleflight"
)

// CurrencyBeaconName is a human readable identifier of Currency Beacon rate provider.
const CurrencyBeaconName = "Currency Beacon"

// DefaultRatesTTL is a freshness window of cached rates.
const DefaultRatesTTL = 4 * time.Hour

type currencyBeacon struct {
	logger        *logger.Logger
	apis          APIs
	snapshotStore SnapshotStore
	metrics       *metrics.Metrics

	ratesTTL time.Duration
	now      func() time.Time
	// group is nil when duplicate fetches are allowed.
	group *singleflight.Group

	mu       sync.RWMutex
	snapshot *models.RateSnapshot
}

var _ RateProvider = (*currencyBeacon)(nil)

// CurrencyBeaconOptions represents input options for new instance of Currency Beacon rate provider.
type CurrencyBeaconOptions struct {
	Logger        *logger.Logger
	APIs          APIs
	SnapshotStore SnapshotStore
	Metrics       *metrics.Metrics

	// Snapshot is the last known snapshot, nil on cold start.
	Snapshot *models.RateSnapshot
	// RatesTTL defaults to DefaultRatesTTL.
	RatesTTL time.Duration
	// SingleFlight enables only one in-flight fetch at a time.
	SingleFlight bool
	// Now defaults to time.Now.
	Now func() time.Time
}

// NewCurrencyBeacon returns new instance of Currency Beacon rate provider.
func NewCurrencyBeacon(opts CurrencyBeaconOptions) *currencyBeacon {
	provider := &currencyBeacon{
		logger:        opts.Logger,
		apis:          opts.APIs,
		snapshotStore: opts.SnapshotStore,
		metrics:       opts.Metrics,
		ratesTTL:      opts.RatesTTL,
		now:           opts.Now,
		snapshot:      opts.Snapshot.Clone(),
	}

	if provider.logger == nil {
		provider.logger = logger.NewNop()
	}
	if provider.ratesTTL <= 0 {
		provider.ratesTTL = DefaultRatesTTL
	}
	if provider.now == nil {
		provider.now = time.Now
	}
	if opts.SingleFlight {
		provider.group = &singleflight.Group{}
	}

	return provider
}

func (c *currencyBeacon) Name() string {
	return CurrencyBeaconName
}

func (c *currencyBeacon) GetRate(ctx context.Context, from, to models.CurrencyCode) (float64, error) {
	logger := c.logger.With().Str("name", "currencyBeacon.GetRate").Logger()
	logger.Debug().Any("from", from).Any("to", to).Msg("got args")

	rates, err := c.getRates(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("get rates")
		return 0, fmt.Errorf("get rates: %w", err)
	}

	rate, err := calculateRate(rates, from, to)
	if err != nil {
		logger.Info().Msg(err.Error())
		return 0, err
	}
	logger.Debug().Float64("rate", rate).Msg("calculated rate")

	return rate, nil
}

// Convert returns amount converted from one currency to another.
func (c *currencyBeacon) Convert(ctx context.Context, opts ConvertCurrencyOptions) (*money.Money, error) {
	logger := c.logger.With().Str("name", "currencyBeacon.Convert").Logger()
	logger.Debug().Any("opts", opts).Msg("got args")

	// GetRate logs its own failures.
	rate, err := c.GetRate(ctx, opts.From, opts.To)
	if err != nil {
		if errs.IsExpected(err) {
			return nil, err
		}

		return nil, fmt.Errorf("get rate: %w", err)
	}

	amount := opts.Amount
	amount.Mul(money.NewFromFloat(rate))

	return &amount, nil
}

// Snapshot returns a copy of currently cached rates, nil if nothing was cached yet.
func (c *currencyBeacon) Snapshot() *models.RateSnapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return c.snapshot.Clone()
}

func (c *currencyBeacon) getRates(ctx context.Context) (map[string]float64, error) {
	now := c.now()

	c.mu.RLock()
	snapshot := c.snapshot
	c.mu.RUnlock()

	if snapshot.IsFresh(now, c.ratesTTL) {
		c.observeCache(true)
		return snapshot.Rates, nil
	}
	c.observeCache(false)

	if c.group == nil {
		return c.refreshRates(ctx, now)
	}

	result, err, _ := c.group.Do(models.CurrencyBeaconOptionKey, func() (any, error) {
		// The fetch is shared by all waiting callers and is bounded by the client timeout only.
		return c.refreshRates(context.WithoutCancel(ctx), now)
	})
	if err != nil {
		return nil, err
	}

	return result.(map[string]float64), nil
}

// refreshRates fetches rates, hands them over to snapshot store and replaces cached snapshot.
// Snapshot store failures don't affect the result.
func (c *currencyBeacon) refreshRates(ctx context.Context, now time.Time) (map[string]float64, error) {
	logger := c.logger.With().Str("name", "currencyBeacon.refreshRates").Logger()

	startedAt := time.Now()
	rates, err := c.apis.CurrencyExchanger.FetchLatestRates(ctx, models.BaseCurrency)
	c.observeFetch(time.Since(startedAt), err)
	if err != nil {
		return nil, fmt.Errorf("fetch latest rates through currency exchanger: %w", err)
	}
	logger.Debug().Int("ratesCount", len(rates)).Msg("fetched latest rates")

	snapshot := &models.RateSnapshot{
		UpdatedAt: now.Unix(),
		Rates:     rates,
	}

	err = c.snapshotStore.Save(ctx, *snapshot)
	if err != nil {
		logger.Warn().Err(err).Msg("save rates snapshot")
		if c.metrics != nil {
			c.metrics.PersistFailuresTotal.Inc()
		}
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.mu.Unlock()

	return rates, nil
}

func (c *currencyBeacon) observeCache(hit bool) {
	if c.metrics == nil {
		return
	}

	if hit {
		c.metrics.CacheHitsTotal.Inc()
		return
	}
	c.metrics.CacheMissesTotal.Inc()
}

func (c *currencyBeacon) observeFetch(duration time.Duration, err error) {
	if c.metrics == nil {
		return
	}

	c.metrics.FetchDuration.Observe(duration.Seconds())
	result := metrics.FetchResultSuccess
	if err != nil {
		result = metrics.FetchResultError
	}
	c.metrics.FetchesTotal.WithLabelValues(result).Inc()
}

func calculateRate(rates map[string]float64, from, to models.CurrencyCode) (float64, error) {
	fromRate, ok := rates[from.String()]
	if !ok || fromRate == 0 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, from)
	}

	toRate, ok := rates[to.String()]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedCurrency, to)
	}

	return toRate / fromRate, nil
}
