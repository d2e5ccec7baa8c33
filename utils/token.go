package utils

import (
	"context"
	"sync"
	"time"
)

var (
	blacklistedTokens = make(map[string]time.Time)
	blacklistMutex    sync.RWMutex
)

// BlacklistToken -> token ditolak sampai waktu expiry aslinya
func BlacklistToken(token string, until time.Time) {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()
	blacklistedTokens[token] = until
}

func IsTokenBlacklisted(token string) bool {
	blacklistMutex.RLock()
	expiry, exists := blacklistedTokens[token]
	blacklistMutex.RUnlock()

	return exists && time.Now().Before(expiry)
}

func purgeBlacklist(now time.Time) int {
	blacklistMutex.Lock()
	defer blacklistMutex.Unlock()

	removed := 0
	for token, expiry := range blacklistedTokens {
		if now.After(expiry) {
			delete(blacklistedTokens, token)
			removed++
		}
	}
	return removed
}

// RunBlacklistJanitor membersihkan token kadaluarsa secara periodik sampai ctx selesai.
func RunBlacklistJanitor(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			if n := purgeBlacklist(now); n > 0 {
				InfoLogger.Printf("Removed %d expired tokens from blacklist", n)
			}
		}
	}
}
