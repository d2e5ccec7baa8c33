package config

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient mengembalikan nil bila REDIS_ADDR kosong atau server tidak bisa di-ping.
// Pemanggil harus menganggap nil sebagai "cache dimatikan".
func NewRedisClient(ctx context.Context, r Redis) *redis.Client {
	if r.Addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     r.Addr,
		Password: r.Password,
		DB:       r.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil
	}
	return client
}
