package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/snc99/Pay-Wise-BE/internal/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const purgeInterval = 5 * time.Minute

// slidingWindow counts requests per IP inside a fixed-length window. A
// background goroutine drops IPs whose window has expired so the map does
// not accumulate addresses that never return.
type slidingWindow struct {
	mu      sync.Mutex
	entries map[string]*windowEntry
	limit   int
	window  time.Duration
}

type windowEntry struct {
	count     int
	windowEnd time.Time
}

func newSlidingWindow(limit int, window time.Duration) *slidingWindow {
	sw := &slidingWindow{
		entries: make(map[string]*windowEntry),
		limit:   limit,
		window:  window,
	}
	go sw.purgeLoop()
	return sw
}

// allow records one request for ip and reports whether it is inside the
// limit, along with the time the current window closes.
func (sw *slidingWindow) allow(ip string) (bool, time.Time) {
	sw.mu.Lock()
	defer sw.mu.Unlock()

	now := time.Now()
	entry, ok := sw.entries[ip]
	if !ok || now.After(entry.windowEnd) {
		entry = &windowEntry{windowEnd: now.Add(sw.window)}
		sw.entries[ip] = entry
	}
	entry.count++
	return entry.count <= sw.limit, entry.windowEnd
}

func (sw *slidingWindow) purgeLoop() {
	ticker := time.NewTicker(purgeInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		sw.mu.Lock()
		purged := 0
		for ip, entry := range sw.entries {
			if now.After(entry.windowEnd) {
				delete(sw.entries, ip)
				purged++
			}
		}
		remaining := len(sw.entries)
		sw.mu.Unlock()

		if purged > 0 {
			log.Debug().
				Int("purged", purged).
				Int("remaining", remaining).
				Msg("rate limiter entries purged")
		}
	}
}

// LoginRateLimiter limits login attempts to 20 per minute per IP.
func LoginRateLimiter() gin.HandlerFunc {
	sw := newSlidingWindow(20, time.Minute)
	return func(c *gin.Context) {
		if ok, _ := sw.allow(c.ClientIP()); !ok {
			response.AbortErr(c, http.StatusTooManyRequests, "Terlalu banyak percobaan login. Coba lagi dalam 1 menit.")
			return
		}
		c.Next()
	}
}

// RateLimiter is the general API limiter, typically 200 requests per minute.
func RateLimiter(limit int, window time.Duration) gin.HandlerFunc {
	sw := newSlidingWindow(limit, window)
	return func(c *gin.Context) {
		ok, windowEnd := sw.allow(c.ClientIP())
		if !ok {
			c.Header("Retry-After", windowEnd.Format(time.RFC1123))
			response.AbortErr(c, http.StatusTooManyRequests, "Terlalu banyak permintaan. Coba lagi nanti.")
			return
		}
		c.Next()
	}
}
