package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"cpi-resender/internal/core/domain"
	"cpi-resender/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

// PayloadCache implements ports.PayloadCache. Each flow's bundle is one
// JSON value under payloads:<flow>; payloads:index lists the flows.
type PayloadCache struct {
	client *goredis.Client
	prefix string
	index  string
	sealer ports.PayloadSealer
}

// NewPayloadCache creates a Redis-backed payload cache. A nil sealer
// stores bundles as plain JSON.
func NewPayloadCache(client *goredis.Client, sealer ports.PayloadSealer) *PayloadCache {
	return &PayloadCache{
		client: client,
		prefix: "payloads:",
		index:  "payloads:index",
		sealer: sealer,
	}
}

func (c *PayloadCache) key(flow string) string {
	return c.prefix + flow
}

// Save replaces the flow's bundle. An empty bundle removes the flow.
func (c *PayloadCache) Save(ctx context.Context, flow string, entries []domain.CachedPayload) error {
	if len(entries) == 0 {
		return c.DeleteAll(ctx, flow)
	}
	data, err := c.encode(entries)
	if err != nil {
		return err
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, c.key(flow), data, 0)
	pipe.SAdd(ctx, c.index, flow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis payload cache save: %w", err)
	}
	return nil
}

// Get returns nil, nil when the flow has no bundle.
func (c *PayloadCache) Get(ctx context.Context, flow string) ([]domain.CachedPayload, error) {
	raw, err := c.client.Get(ctx, c.key(flow)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis payload cache get: %w", err)
	}
	return c.decode(raw)
}

// DeleteEntries removes guids from the bundle under WATCH so a concurrent
// Save is never overwritten with stale entries.
func (c *PayloadCache) DeleteEntries(ctx context.Context, flow string, guids []string) (int, error) {
	drop := make(map[string]struct{}, len(guids))
	for _, g := range guids {
		drop[g] = struct{}{}
	}

	key := c.key(flow)
	removed := 0
	err := c.client.Watch(ctx, func(tx *goredis.Tx) error {
		raw, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, goredis.Nil) {
			return nil
		}
		if err != nil {
			return err
		}
		entries, err := c.decode(raw)
		if err != nil {
			return err
		}

		kept := make([]domain.CachedPayload, 0, len(entries))
		for _, e := range entries {
			if _, ok := drop[e.MessageGUID]; !ok {
				kept = append(kept, e)
			}
		}
		removed = len(entries) - len(kept)
		if removed == 0 {
			return nil
		}

		var data []byte
		if len(kept) > 0 {
			if data, err = c.encode(kept); err != nil {
				return err
			}
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			if len(kept) == 0 {
				pipe.Del(ctx, key)
				pipe.SRem(ctx, c.index, flow)
				return nil
			}
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)
	if err != nil {
		return 0, fmt.Errorf("redis payload cache delete entries: %w", err)
	}
	return removed, nil
}

func (c *PayloadCache) DeleteAll(ctx context.Context, flow string) error {
	pipe := c.client.TxPipeline()
	pipe.Del(ctx, c.key(flow))
	pipe.SRem(ctx, c.index, flow)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis payload cache delete: %w", err)
	}
	return nil
}

// ListFlows summarises every indexed bundle, sorted by flow name. Index
// entries whose bundle is gone are pruned.
func (c *PayloadCache) ListFlows(ctx context.Context) ([]domain.CachedFlow, error) {
	names, err := c.client.SMembers(ctx, c.index).Result()
	if err != nil {
		return nil, fmt.Errorf("redis payload cache index: %w", err)
	}
	sort.Strings(names)

	out := make([]domain.CachedFlow, 0, len(names))
	for _, name := range names {
		entries, err := c.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			if err := c.client.SRem(ctx, c.index, name).Err(); err != nil {
				return nil, fmt.Errorf("redis payload cache prune index: %w", err)
			}
			continue
		}
		f := domain.CachedFlow{IntegrationFlowName: name, Entries: len(entries)}
		for _, e := range entries {
			if e.HasPayload() {
				f.WithPayload++
			}
		}
		out = append(out, f)
	}
	return out, nil
}

func (c *PayloadCache) encode(entries []domain.CachedPayload) ([]byte, error) {
	data, err := json.Marshal(entries)
	if err != nil {
		return nil, fmt.Errorf("encode payload bundle: %w", err)
	}
	if c.sealer == nil {
		return data, nil
	}
	sealed, err := c.sealer.Seal(data)
	if err != nil {
		return nil, fmt.Errorf("seal payload bundle: %w", err)
	}
	return sealed, nil
}

func (c *PayloadCache) decode(raw []byte) ([]domain.CachedPayload, error) {
	if c.sealer != nil {
		opened, err := c.sealer.Open(raw)
		if err != nil {
			return nil, fmt.Errorf("open payload bundle: %w", err)
		}
		raw = opened
	}
	var entries []domain.CachedPayload
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("decode payload bundle: %w", err)
	}
	return entries, nil
}
