package middlewares

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-manager/utils"
	"golang.org/x/time/rate"
)

// RateLimiter -> sliding window per IP
type RateLimiter struct {
	rate     int
	interval time.Duration
	ips      map[string][]time.Time
	mu       sync.Mutex
}

func NewRateLimiter(rate int, interval int) *RateLimiter {
	return &RateLimiter{
		rate:     rate,
		interval: time.Duration(interval) * time.Second,
		ips:      make(map[string][]time.Time),
	}
}

func (rl *RateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !rl.allow(c.ClientIP(), time.Now()) {
			utils.AbortWithError(c, http.StatusTooManyRequests, errors.New("too many requests"))
			return
		}
		c.Next()
	}
}

func (rl *RateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.interval)
	valid := rl.ips[ip][:0]
	for _, t := range rl.ips[ip] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= rl.rate {
		rl.ips[ip] = valid
		return false
	}
	rl.ips[ip] = append(valid, now)
	return true
}

// Sweep membuang IP yang sudah tidak punya request di dalam window
func (rl *RateLimiter) Sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := now.Add(-rl.interval)
	for ip, times := range rl.ips {
		if len(times) == 0 || !times[len(times)-1].After(cutoff) {
			delete(rl.ips, ip)
		}
	}
}

// RunSweeper menjalankan Sweep berkala sampai ctx selesai
func (rl *RateLimiter) RunSweeper(ctx context.Context, every time.Duration) error {
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			rl.Sweep(now)
		}
	}
}

// NewStrictRateLimiter -> token bucket per IP, dipakai untuk /auth/login
func NewStrictRateLimiter(every time.Duration, burst int) gin.HandlerFunc {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)

	return func(c *gin.Context) {
		ip := c.ClientIP()

		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(rate.Every(every), burst)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			utils.AbortWithError(c, http.StatusTooManyRequests, errors.New("too many attempts, please wait"))
			return
		}
		c.Next()
	}
}
