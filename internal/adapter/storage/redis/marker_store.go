package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cpi-resender/internal/core/domain"

	goredis "github.com/redis/go-redis/v9"
)

// MarkerStore implements ports.MarkerStore as one hash: guid -> JSON marker.
type MarkerStore struct {
	client *goredis.Client
	key    string
}

func NewMarkerStore(client *goredis.Client) *MarkerStore {
	return &MarkerStore{
		client: client,
		key:    "resent:markers",
	}
}

// Upsert overwrites any marker for the same guid and reports whether the
// guid was new.
func (s *MarkerStore) Upsert(ctx context.Context, m domain.ResentMarker) (bool, error) {
	data, err := json.Marshal(m)
	if err != nil {
		return false, fmt.Errorf("encode marker: %w", err)
	}
	added, err := s.client.HSet(ctx, s.key, m.MessageGUID, data).Result()
	if err != nil {
		return false, fmt.Errorf("redis marker upsert: %w", err)
	}
	return added == 1, nil
}

// Get returns nil, nil when the guid has no marker.
func (s *MarkerStore) Get(ctx context.Context, guid string) (*domain.ResentMarker, error) {
	raw, err := s.client.HGet(ctx, s.key, guid).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis marker get: %w", err)
	}
	var m domain.ResentMarker
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("decode marker %s: %w", guid, err)
	}
	return &m, nil
}

// List returns all markers in no particular order. Unreadable values are skipped.
func (s *MarkerStore) List(ctx context.Context) ([]domain.ResentMarker, error) {
	all, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis marker list: %w", err)
	}
	out := make([]domain.ResentMarker, 0, len(all))
	for _, v := range all {
		var m domain.ResentMarker
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func (s *MarkerStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis marker clear: %w", err)
	}
	return nil
}
