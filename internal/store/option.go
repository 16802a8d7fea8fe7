package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/VladPetriv/currency_beacon/internal/models"
	"github.com/VladPetriv/currency_beacon/internal/service"
	"github.com/VladPetriv/currency_beacon/pkg/database"
)

type optionStore struct {
	*database.PostgreSQL
}

var _ service.OptionStore = (*optionStore)(nil)

// NewOption returns new instance of option store.
func NewOption(db *database.PostgreSQL) *optionStore {
	return &optionStore{
		db,
	}
}

func (o *optionStore) Save(ctx context.Context, option *models.Option) error {
	_, err := o.DB.ExecContext(
		ctx,
		`INSERT INTO options (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE
		SET
			value = EXCLUDED.value,
			updated_at = NOW();`,
		option.Key, option.Value,
	)

	return err
}

func (o *optionStore) Get(ctx context.Context, key string) (*models.Option, error) {
	query, args, err := sq.
		StatementBuilder.
		PlaceholderFormat(sq.Dollar).
		Select("key", "value", "created_at", "updated_at").
		From("options").
		Where(sq.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build get option query: %w", err)
	}

	var option models.Option
	err = o.DB.GetContext(ctx, &option, query, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &option, nil
}
