package service

import (
	"context"
	"fmt"
	"time"

	"github.com/VladPetriv/currency_beacon/internal/metrics"
	"github.com/VladPetriv/currency_beacon/internal/models"
	"github.com/VladPetriv/currency_beacon/pkg/logger"
	"github.com/VladPetriv/currency_beacon/pkg/worker"
	"github.com/google/uuid"
)

// OptionDispatcher queues options for saving.
type OptionDispatcher interface {
	AddJob(id string, option models.Option) error
}

type snapshotDispatcher struct {
	logger     *logger.Logger
	dispatcher OptionDispatcher
}

var _ SnapshotStore = (*snapshotDispatcher)(nil)

// NewSnapshotDispatcher returns snapshot store which queues snapshots as currency-beacon option
// and returns without waiting for them to be saved.
func NewSnapshotDispatcher(logger *logger.Logger, dispatcher OptionDispatcher) *snapshotDispatcher {
	return &snapshotDispatcher{
		logger:     logger,
		dispatcher: dispatcher,
	}
}

func (s *snapshotDispatcher) Save(_ context.Context, snapshot models.RateSnapshot) error {
	logger := s.logger.With().Str("name", "snapshotDispatcher.Save").Logger()
	logger.Debug().Int64("updatedAt", snapshot.UpdatedAt).Int("ratesCount", len(snapshot.Rates)).Msg("got args")

	value, err := models.EncodeSnapshot(snapshot)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	err = s.dispatcher.AddJob(uuid.NewString(), models.Option{
		Key:   models.CurrencyBeaconOptionKey,
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("dispatch save option job: %w", err)
	}

	return nil
}

// DefaultSaveOptionTimeout limits a single option save when no timeout was configured.
const DefaultSaveOptionTimeout = 5 * time.Second

// SaveOptionHandlerOptions represents input options for the save option job handler.
type SaveOptionHandlerOptions struct {
	Logger  *logger.Logger
	Store   OptionStore
	Metrics *metrics.Metrics
	// Timeout defaults to DefaultSaveOptionTimeout.
	Timeout time.Duration
}

// NewSaveOptionHandler returns a worker job handler which saves options to the store.
func NewSaveOptionHandler(opts SaveOptionHandlerOptions) worker.Func[models.Option] {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultSaveOptionTimeout
	}

	return func(ctx context.Context, id string, option models.Option) error {
		logger := log.With().Str("name", "saveOptionHandler").Str("jobID", id).Logger()
		logger.Debug().Str("key", option.Key).Msg("got args")

		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		err := opts.Store.Save(ctx, &option)
		if err != nil {
			if opts.Metrics != nil {
				opts.Metrics.PersistFailuresTotal.Inc()
			}
			return fmt.Errorf("save option %q: %w", option.Key, err)
		}

		logger.Debug().Str("key", option.Key).Msg("saved option")
		return nil
	}
}

// LoadSnapshot returns the last persisted snapshot. Returns nil when nothing was persisted yet or
// persisted value can't be decoded, so provider starts cold.
func LoadSnapshot(ctx context.Context, logger *logger.Logger, store OptionStore) (*models.RateSnapshot, error) {
	log := logger.With().Str("name", "LoadSnapshot").Logger()

	option, err := store.Get(ctx, models.CurrencyBeaconOptionKey)
	if err != nil {
		return nil, fmt.Errorf("get %s option from store: %w", models.CurrencyBeaconOptionKey, err)
	}
	if option == nil {
		log.Info().Msg("rates snapshot not found")
		return nil, nil
	}

	snapshot, err := models.DecodeSnapshot(option.Value)
	if err != nil {
		log.Warn().Err(err).Msg("decode persisted rates snapshot")
		return nil, nil
	}
	log.Info().Int64("updatedAt", snapshot.UpdatedAt).Int("ratesCount", len(snapshot.Rates)).Msg("loaded rates snapshot")

	return snapshot, nil
}
