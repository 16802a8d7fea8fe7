package models

import "time"

// CurrencyBeaconOptionKey is a key of option which holds cached Currency Beacon rates.
const CurrencyBeaconOptionKey = "currency-beacon"

// Option represents a single record of key-value option store.
type Option struct {
	Key       string    `db:"key"`
	Value     string    `db:"value"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}
