package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
	"time"
)

// RateSnapshot represents cached rates of a single fetch.
// Rates are expressed against BaseCurrency.
type RateSnapshot struct {
	// UpdatedAt is a unix timestamp (seconds) of the fetch.
	UpdatedAt int64              `json:"updated_at"`
	Rates     map[string]float64 `json:"rates"`
}

// IsFresh reports whether snapshot has rates and is not older than window.
// Snapshot which is exactly window old is still fresh.
func (s *RateSnapshot) IsFresh(now time.Time, window time.Duration) bool {
	if s == nil || len(s.Rates) == 0 || s.UpdatedAt <= 0 {
		return false
	}

	return s.UpdatedAt+int64(window/time.Second) >= now.Unix()
}

// UpdatedAtTime returns UpdatedAt as time.Time.
func (s RateSnapshot) UpdatedAtTime() time.Time {
	return time.Unix(s.UpdatedAt, 0).UTC()
}

// Clone returns a deep copy of snapshot.
func (s *RateSnapshot) Clone() *RateSnapshot {
	if s == nil {
		return nil
	}

	return &RateSnapshot{
		UpdatedAt: s.UpdatedAt,
		Rates:     maps.Clone(s.Rates),
	}
}

// UnmarshalJSON accepts updated_at either as a number or as a numeric string.
func (s *RateSnapshot) UnmarshalJSON(data []byte) error {
	var raw struct {
		UpdatedAt json.RawMessage    `json:"updated_at"`
		Rates     map[string]float64 `json:"rates"`
	}
	err := json.Unmarshal(data, &raw)
	if err != nil {
		return err
	}

	updatedAt, err := parseUnixSeconds(raw.UpdatedAt)
	if err != nil {
		return fmt.Errorf("parse updated_at: %w", err)
	}

	s.UpdatedAt = updatedAt
	s.Rates = raw.Rates

	return nil
}

func parseUnixSeconds(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, nil
	}

	value := string(raw)
	if raw[0] == '"' {
		unquoted, err := strconv.Unquote(value)
		if err != nil {
			return 0, err
		}
		if unquoted == "" {
			return 0, nil
		}
		value = unquoted
	}

	seconds, err := strconv.ParseInt(value, 10, 64)
	if err == nil {
		return seconds, nil
	}

	floatSeconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, err
	}

	return int64(floatSeconds), nil
}

// EncodeSnapshot returns JSON representation of snapshot used as option value.
func EncodeSnapshot(snapshot RateSnapshot) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}

	return string(data), nil
}

// DecodeSnapshot parses option value produced by EncodeSnapshot.
func DecodeSnapshot(value string) (*RateSnapshot, error) {
	var snapshot RateSnapshot
	err := json.Unmarshal([]byte(value), &snapshot)
	if err != nil {
		return nil, err
	}

	return &snapshot, nil
}
