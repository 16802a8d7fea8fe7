package service_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/VladPetriv/currency_beacon/internal/metrics"
	"github.com/VladPetriv/currency_beacon/internal/models"
	"github.com/VladPetriv/currency_beacon/internal/service"
	"github.com/VladPetriv/currency_beacon/internal/service/mocks"
	"github.com/VladPetriv/currency_beacon/pkg/logger"
	"github.com/VladPetriv/currency_beacon/pkg/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type optionDispatcherFunc func(id string, option models.Option) error

func (f optionDispatcherFunc) AddJob(id string, option models.Option) error {
	return f(id, option)
}

func TestSnapshotDispatcher_Save(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		desc          string
		dispatchErr   error
		expectedError bool
	}{
		{
			desc: "positive: snapshot dispatched as currency-beacon option",
		},
		{
			desc:          "negative: dispatcher rejected job",
			dispatchErr:   worker.ErrPoolStopped,
			expectedError: true,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			var dispatched []models.Option
			dispatcher := optionDispatcherFunc(func(id string, option models.Option) error {
				assert.NotEmpty(t, id)
				dispatched = append(dispatched, option)
				return tc.dispatchErr
			})

			snapshotStore := service.NewSnapshotDispatcher(logger.NewNop(), dispatcher)

			err := snapshotStore.Save(context.Background(), models.RateSnapshot{
				UpdatedAt: 1700000000,
				Rates:     map[string]float64{"USD": 1, "EUR": 0.9},
			})
			if tc.expectedError {
				assert.ErrorIs(t, err, worker.ErrPoolStopped)
				return
			}

			require.NoError(t, err)
			require.Len(t, dispatched, 1)
			assert.Equal(t, "currency-beacon", dispatched[0].Key)
			assert.JSONEq(t, `{"updated_at":1700000000,"rates":{"USD":1,"EUR":0.9}}`, dispatched[0].Value)
		})
	}
}

func TestSnapshotDispatcher_SavesThroughWorkerPool(t *testing.T) {
	t.Parallel()

	optionStore := mocks.NewOptionStore(t)
	optionStore.On("Save", mock.Anything, mock.MatchedBy(func(option *models.Option) bool {
		return option.Key == models.CurrencyBeaconOptionKey
	})).Return(nil).Once()

	pool := worker.NewPool(worker.Options{WorkersCount: 1, QueueSize: 1},
		service.NewSaveOptionHandler(service.SaveOptionHandlerOptions{Store: optionStore}))
	pool.Start(context.Background())

	snapshotStore := service.NewSnapshotDispatcher(logger.NewNop(), pool)
	err := snapshotStore.Save(context.Background(), models.RateSnapshot{
		UpdatedAt: 1700000000,
		Rates:     map[string]float64{"USD": 1},
	})
	require.NoError(t, err)

	pool.Stop()
}

func TestSaveOptionHandler(t *testing.T) {
	t.Parallel()

	testCases := [...]struct {
		desc                   string
		storeErr               error
		expectedPersistFailure float64
	}{
		{
			desc: "positive: option saved",
		},
		{
			desc:                   "negative: store failed",
			storeErr:               errors.New("connection refused"),
			expectedPersistFailure: 1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			option := models.Option{Key: models.CurrencyBeaconOptionKey, Value: `{}`}
			optionStore := mocks.NewOptionStore(t)
			optionStore.On("Save", mock.Anything, &option).Return(tc.storeErr).Once()
			m := metrics.New(prometheus.NewRegistry())

			handler := service.NewSaveOptionHandler(service.SaveOptionHandlerOptions{
				Logger:  logger.NewNop(),
				Store:   optionStore,
				Metrics: m,
			})

			err := handler(context.Background(), "job", option)
			if tc.storeErr != nil {
				assert.ErrorIs(t, err, tc.storeErr)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.expectedPersistFailure, testutil.ToFloat64(m.PersistFailuresTotal))
		})
	}
}

// hangingOptionStore blocks every save until released or ctx is done.
type hangingOptionStore struct {
	release chan struct{}
}

func (h *hangingOptionStore) Save(ctx context.Context, _ *models.Option) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-h.release:
		return nil
	}
}

func (h *hangingOptionStore) Get(_ context.Context, _ string) (*models.Option, error) {
	return nil, nil
}

func TestSaveOptionHandler_Timeout(t *testing.T) {
	t.Parallel()

	handler := service.NewSaveOptionHandler(service.SaveOptionHandlerOptions{
		Store:   &hangingOptionStore{release: make(chan struct{})},
		Timeout: 10 * time.Millisecond,
	})

	err := handler(context.Background(), "job", models.Option{Key: models.CurrencyBeaconOptionKey})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCurrencyBeacon_GetRateDoesNotWaitForSlowSnapshotStore(t *testing.T) {
	t.Parallel()

	optionStore := &hangingOptionStore{release: make(chan struct{})}
	pool := worker.NewPool(worker.Options{WorkersCount: 1, QueueSize: 1},
		service.NewSaveOptionHandler(service.SaveOptionHandlerOptions{Store: optionStore}))
	pool.Start(context.Background())
	t.Cleanup(func() {
		close(optionStore.release)
		pool.Stop()
	})

	exchanger := mocks.NewCurrencyExchanger(t)
	exchanger.On("FetchLatestRates", mock.Anything, models.BaseCurrency).Return(freshRates, nil)

	// Every call sees the cache as stale.
	var tick atomic.Int64
	m := metrics.New(prometheus.NewRegistry())
	provider := service.NewCurrencyBeacon(service.CurrencyBeaconOptions{
		APIs:          service.APIs{CurrencyExchanger: exchanger},
		SnapshotStore: service.NewSnapshotDispatcher(logger.NewNop(), pool),
		Metrics:       m,
		Now: func() time.Time {
			return testNow.Add(time.Duration(tick.Add(1)) * 5 * time.Hour)
		},
	})

	const calls = 5
	done := make(chan struct{})
	go func() {
		defer close(done)

		for range calls {
			rate, err := provider.GetRate(context.Background(), "USD", "EUR")
			assert.NoError(t, err)
			assert.Equal(t, 0.5, rate)
		}
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("GetRate is blocked by snapshot store")
	}

	// One save is in progress and one is queued at most, the rest are rejected.
	assert.GreaterOrEqual(t, testutil.ToFloat64(m.PersistFailuresTotal), float64(calls-2))
}

func TestLoadSnapshot(t *testing.T) {
	t.Parallel()

	storeErr := errors.New("connection refused")

	testCases := [...]struct {
		desc          string
		option        *models.Option
		storeErr      error
		expected      *models.RateSnapshot
		expectedError error
	}{
		{
			desc:     "positive: cold start, option not found",
			expected: nil,
		},
		{
			desc: "positive: snapshot loaded",
			option: &models.Option{
				Key:   models.CurrencyBeaconOptionKey,
				Value: `{"updated_at":"1700000000","rates":{"USD":1,"EUR":0.9}}`,
			},
			expected: &models.RateSnapshot{
				UpdatedAt: 1700000000,
				Rates:     map[string]float64{"USD": 1, "EUR": 0.9},
			},
		},
		{
			desc: "positive: undecodable snapshot is treated as cold start",
			option: &models.Option{
				Key:   models.CurrencyBeaconOptionKey,
				Value: `not json`,
			},
			expected: nil,
		},
		{
			desc:          "negative: store failed",
			storeErr:      storeErr,
			expectedError: storeErr,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			t.Parallel()

			optionStore := mocks.NewOptionStore(t)
			optionStore.On("Get", mock.Anything, models.CurrencyBeaconOptionKey).Return(tc.option, tc.storeErr).Once()

			actual, err := service.LoadSnapshot(context.Background(), logger.NewNop(), optionStore)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tc.expected, actual)
		})
	}
}
