package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/airbnb-listing-service/pkg/response"
)

// ipFromCtx extracts the client IP from Gin context, falling back to "unknown"
func ipFromCtx(c *gin.Context) string {
	if ip := c.GetString("real_ip"); ip != "" {
		return ip
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}

func normalizePath(c *gin.Context) string {
	if fp := c.FullPath(); fp != "" {
		return fp
	}
	return c.Request.URL.Path
}

// KeyFunc builds a rate-limit key from the request
// Example: combine client IP and route path for more granular limiting
type KeyFunc func(c *gin.Context) string

// KeyByIP returns a key function that limits by client IP only
func KeyByIP() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:ip:" + ipFromCtx(c)
	}
}

// KeyByIPAndPath returns a key function that limits by client IP and route
func KeyByIPAndPath() KeyFunc {
	return func(c *gin.Context) string {
		return "rl:path:" + normalizePath(c) + ":ip:" + ipFromCtx(c)
	}
}

// KeyByUserID limits authenticated callers per account and anonymous ones per IP
func KeyByUserID() KeyFunc {
	return func(c *gin.Context) string {
		uid := c.GetString(CtxUserIDKey)
		if uid == "" {
			return "rl:user:anon:ip:" + ipFromCtx(c)
		}
		return "rl:user:" + uid
	}
}

// windowScript increments the window counter, arms its expiry on first hit
// and returns {count, remaining ttl in ms}.
var windowScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
  redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("PTTL", KEYS[1])}
`)

type AllowFunc func(*gin.Context) bool // return true for bypass limit

// window is one counter reading
type window struct {
	count int
	reset time.Duration
}

// parseWindow reads the script reply; a malformed reply reports ok=false
func parseWindow(v interface{}) (window, bool) {
	vals, ok := v.([]interface{})
	if !ok || len(vals) != 2 {
		return window{}, false
	}
	count, ok1 := vals[0].(int64)
	pttl, ok2 := vals[1].(int64)
	if !ok1 || !ok2 {
		return window{}, false
	}
	w := window{count: int(count)}
	if pttl > 0 {
		w.reset = time.Duration(pttl) * time.Millisecond
	}
	return w, true
}

// writeHeaders sets the X-RateLimit-* headers and reports whether the request is over max
func (w window) writeHeaders(c *gin.Context, max int) bool {
	resetSec := int((w.reset + time.Second - 1) / time.Second)
	remaining := max - w.count
	if remaining < 0 {
		remaining = 0
	}
	c.Header("X-RateLimit-Limit", strconv.Itoa(max))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.Itoa(resetSec))
	if w.count <= max {
		return false
	}
	if resetSec > 0 {
		c.Header("Retry-After", strconv.Itoa(resetSec))
	}
	return true
}

// RateLimit is a fixed-window limiter backed by Redis. A nil client disables it,
// and Redis errors let the request through.
func RateLimit(rdb *redis.Client, max int, period time.Duration, keyFn KeyFunc, allow AllowFunc) gin.HandlerFunc {
	if rdb == nil || max <= 0 || period <= 0 || keyFn == nil {
		return func(c *gin.Context) { c.Next() }
	}
	return func(c *gin.Context) {
		if allow != nil && allow(c) {
			c.Next()
			return
		}
		if strings.EqualFold(c.Request.Method, http.MethodOptions) {
			c.Next()
			return
		}

		res, err := windowScript.Run(c.Request.Context(), rdb, []string{keyFn(c)}, period.Milliseconds()).Result()
		if err != nil {
			c.Next()
			return
		}
		w, ok := parseWindow(res)
		if !ok {
			c.Next()
			return
		}
		if w.writeHeaders(c, max) {
			response.Error(c, http.StatusTooManyRequests, "rate limit exceeded", nil)
			return
		}
		c.Next()
	}
}
