// Package cache menyimpan respons GET publik di Redis.
package cache

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/yeremiapane/restaurant-manager/utils"
)

const defaultPrefix = "restaurant:cache"

// Store nil-safe: Store nil atau tanpa client = cache mati, request diteruskan apa adanya.
type Store struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

type entry struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

func New(rdb *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Store{rdb: rdb, ttl: ttl, prefix: defaultPrefix}
}

func (s *Store) Enabled() bool {
	return s != nil && s.rdb != nil
}

// Key -> prefix:sha1(path?query)
func (s *Store) Key(r *http.Request) string {
	sum := sha1.Sum([]byte(r.URL.Path + "?" + r.URL.RawQuery))
	return fmt.Sprintf("%s:%x", s.prefix, sum[:])
}

type captureWriter struct {
	gin.ResponseWriter
	buf bytes.Buffer
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteString(s string) (int, error) {
	w.buf.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Middleware -> HIT dilayani dari Redis, MISS disimpan bila status 200
func (s *Store) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.Enabled() || c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := s.Key(c.Request)

		if raw, err := s.rdb.Get(ctx, key).Bytes(); err == nil {
			var e entry
			if json.Unmarshal(raw, &e) == nil {
				c.Header("X-Cache", "HIT")
				c.Data(e.Status, e.ContentType, e.Body)
				c.Abort()
				return
			}
		}

		cw := &captureWriter{ResponseWriter: c.Writer}
		c.Writer = cw
		c.Header("X-Cache", "MISS")

		c.Next()

		if cw.Status() != http.StatusOK {
			return
		}
		payload, err := json.Marshal(entry{
			Status:      cw.Status(),
			ContentType: cw.Header().Get("Content-Type"),
			Body:        cw.buf.Bytes(),
		})
		if err != nil {
			return
		}
		if err := s.rdb.Set(context.Background(), key, payload, s.ttl).Err(); err != nil {
			utils.ErrorLogger.Printf("cache set %s: %v", c.Request.URL.Path, err)
		}
	}
}

// Purge menghapus semua entry cache. Dipanggil setelah data menu berubah.
func (s *Store) Purge(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	iter := s.rdb.Scan(ctx, 0, s.prefix+":*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}
