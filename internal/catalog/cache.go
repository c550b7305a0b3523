package catalog

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const productKeyPrefix = "product:"

// CachedRepository wraps a Repository with a Redis cache-aside layer.
// Product rows change rarely and are read once per order line, so a
// short TTL keeps checkout from hammering the catalog table.
type CachedRepository struct {
	inner  Repository
	client *redis.Client
	ttl    time.Duration
	logger *log.Logger
}

func NewCachedRepository(inner Repository, client *redis.Client, ttl time.Duration, logger *log.Logger) *CachedRepository {
	return &CachedRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func (c *CachedRepository) GetByID(ctx context.Context, productID string) (*Product, error) {
	key := productKeyPrefix + productID

	data, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var p Product
		if err := json.Unmarshal(data, &p); err == nil {
			return &p, nil
		}
		// corrupt entry, fall through to the database
	} else if err != redis.Nil {
		c.logger.Printf("product cache get %s: %v", productID, err)
	}

	p, err := c.inner.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(p); err == nil {
		if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
			c.logger.Printf("product cache set %s: %v", productID, err)
		}
	}

	return p, nil
}
