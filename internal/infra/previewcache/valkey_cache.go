package previewcache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/postforge/postforge/internal/domain/generator"
)

// ValkeyCache keeps preview entries in a Valkey-compatible database so
// multiple instances can share them.
type ValkeyCache struct {
	client valkey.Client
	prefix string
}

// NewValkeyCache constructs a cache backed by Valkey.
func NewValkeyCache(client valkey.Client, prefix string) *ValkeyCache {
	if prefix == "" {
		prefix = "preview"
	}
	return &ValkeyCache{client: client, prefix: prefix}
}

func (c *ValkeyCache) Get(ctx context.Context, key string) (generator.PreviewEntry, bool, error) {
	cmd := c.client.B().Get().Key(c.entryKey(key)).Build()
	payload, err := c.client.Do(ctx, cmd).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return generator.PreviewEntry{}, false, nil
		}
		return generator.PreviewEntry{}, false, err
	}
	var entry generator.PreviewEntry
	if err := json.Unmarshal([]byte(payload), &entry); err != nil {
		return generator.PreviewEntry{}, false, err
	}
	return entry, true, nil
}

func (c *ValkeyCache) Put(ctx context.Context, key string, entry generator.PreviewEntry, ttl time.Duration) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	builder := c.client.B().Set().Key(c.entryKey(key)).Value(string(payload))
	var cmd valkey.Completed
	if ttl > 0 {
		if ttl < time.Second {
			ttl = time.Second
		}
		cmd = builder.Ex(ttl).Build()
	} else {
		cmd = builder.Build()
	}
	return c.client.Do(ctx, cmd).Error()
}

func (c *ValkeyCache) entryKey(key string) string {
	return c.prefix + ":" + key
}

var _ generator.PreviewCache = (*ValkeyCache)(nil)
