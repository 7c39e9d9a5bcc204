package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/catalog-backend/internal/logger"
	"github.com/yungbote/catalog-backend/internal/types"
)

const productListKey = "catalog:products"

// ProductCache is a read-through cache for the product list. A nil cache
// (redis not configured) is valid and disables caching.
type ProductCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logger.Logger
}

func NewProductCache(client *redis.Client, ttl time.Duration, baseLog *logger.Logger) *ProductCache {
	if client == nil {
		return nil
	}
	return &ProductCache{
		client: client,
		ttl:    ttl,
		log:    baseLog.With("cache", "ProductCache"),
	}
}

func (pc *ProductCache) Get(ctx context.Context) ([]*types.ProductDTO, bool) {
	if pc == nil {
		return nil, false
	}
	raw, err := pc.client.Get(ctx, productListKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			pc.log.Warn("Product cache read failed", "error", err)
		}
		return nil, false
	}
	var products []*types.ProductDTO
	if err := json.Unmarshal(raw, &products); err != nil {
		pc.log.Warn("Product cache entry is corrupt, dropping it", "error", err)
		_ = pc.client.Del(ctx, productListKey).Err()
		return nil, false
	}
	return products, true
}

func (pc *ProductCache) Set(ctx context.Context, products []*types.ProductDTO) {
	if pc == nil {
		return
	}
	raw, err := json.Marshal(products)
	if err != nil {
		pc.log.Warn("Product cache marshal failed", "error", err)
		return
	}
	if err := pc.client.Set(ctx, productListKey, raw, pc.ttl).Err(); err != nil {
		pc.log.Warn("Product cache write failed", "error", err)
	}
}

// Invalidate drops the cached list; called after every product or addon
// mutation so readers never see a stale graph past one round trip.
func (pc *ProductCache) Invalidate(ctx context.Context) {
	if pc == nil {
		return
	}
	if err := pc.client.Del(ctx, productListKey).Err(); err != nil {
		pc.log.Warn("Product cache invalidation failed", "error", err)
	}
}
