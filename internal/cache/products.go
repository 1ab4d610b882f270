// Package cache is a Redis read-through layer over hot catalog reads.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"pixelpanda_back_end/internal/catalog"
	"pixelpanda_back_end/internal/database"
)

const ProductCacheTTL = 10 * time.Minute

const productKeyPrefix = "products:"

// GetProductPage returns a cached listing page, if present.
func GetProductPage(ctx context.Context, key string) (*catalog.Page, bool) {
	data, err := database.Redis.Get(ctx, productKeyPrefix+key).Result()
	if err != nil || data == "" {
		return nil, false
	}

	var page catalog.Page
	if err := json.Unmarshal([]byte(data), &page); err != nil {
		return nil, false
	}
	return &page, true
}

// SetProductPage caches a listing page. Failures are ignored; the cache is an
// optimization, not a source of truth.
func SetProductPage(ctx context.Context, key string, page catalog.Page) {
	data, err := json.Marshal(page)
	if err != nil {
		return
	}
	database.Redis.Set(ctx, productKeyPrefix+key, data, ProductCacheTTL)
}

// InvalidateProducts drops every cached listing page after a product
// mutation.
func InvalidateProducts(ctx context.Context) {
	iter := database.Redis.Scan(ctx, 0, productKeyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		database.Redis.Del(ctx, iter.Val())
	}
}
