package storage

import (
	"context"
	"encoding/json"
)

// GetJSON decodes the JSON value stored under key into a T. It returns def
// when the key is missing or the stored value does not decode.
func GetJSON[T any](ctx context.Context, a *Adapter, key string, def T) T {
	raw, ok := a.Get(ctx, key)
	if !ok {
		return def
	}
	var v T
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		a.logger.Error("stored value is not valid JSON", "key", key, "err", err)
		return def
	}
	return v
}

// SetJSON encodes value as JSON and stores it under key.
func SetJSON[T any](ctx context.Context, a *Adapter, key string, value T) bool {
	b, err := json.Marshal(value)
	if err != nil {
		a.logger.Error("encode JSON for storage", "key", key, "err", err)
		return false
	}
	return a.Set(ctx, key, string(b))
}
