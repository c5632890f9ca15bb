package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	db "github.com/AgroVault/AgroVault-Backend/db/store"
	goredis "github.com/redis/go-redis/v9"
)

const warehouseKey = "warehouses"

// StoreWarehouseCollection caches the full warehouse listing. The list
// changes rarely and is read on every purchase and stock screen.
func (r *RedisService) StoreWarehouseCollection(ctx context.Context, warehouses []db.Warehouse) error {
	payload, err := json.Marshal(warehouses)
	if err != nil {
		return fmt.Errorf("could not marshal warehouses: %w", err)
	}
	return r.client.Set(ctx, warehouseKey, payload, 10*time.Minute).Err()
}

// GetWarehouseCollection returns the cached listing, or nil when the
// cache is cold.
func (r *RedisService) GetWarehouseCollection(ctx context.Context) ([]db.Warehouse, error) {
	payload, err := r.client.Get(ctx, warehouseKey).Result()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	} else if err != nil {
		return nil, fmt.Errorf("could not get warehouses from Redis: %w", err)
	}

	var warehouses []db.Warehouse
	if err := json.Unmarshal([]byte(payload), &warehouses); err != nil {
		return nil, fmt.Errorf("could not unmarshal cached warehouses: %w", err)
	}
	return warehouses, nil
}

// InvalidateWarehouseCollection drops the cached listing after a write.
func (r *RedisService) InvalidateWarehouseCollection(ctx context.Context) error {
	return r.client.Del(ctx, warehouseKey).Err()
}
