package middleware

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

type cacheEntry struct {
	Content     []byte
	ContentType string
	Expiration  time.Time
}

// ResponseCache keeps successful GET responses in memory
type ResponseCache struct {
	mu    sync.RWMutex
	items map[string]cacheEntry
}

// NewResponseCache creates an empty cache
func NewResponseCache() *ResponseCache {
	return &ResponseCache{items: make(map[string]cacheEntry)}
}

// cacheKey hashes the path and the sorted query string
func cacheKey(c *gin.Context) string {
	query := c.Request.URL.Query()
	keys := make([]string, 0, len(query))
	for k := range query {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(c.Request.URL.Path)
	b.WriteByte('?')
	for _, k := range keys {
		values := query[k]
		sort.Strings(values)
		for _, v := range values {
			b.WriteString(k + "=" + v + "&")
		}
	}

	sum := md5.Sum([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Handler caches 200 responses of GET requests for expiration
func (rc *ResponseCache) Handler(expiration time.Duration) gin.HandlerFunc {
	if expiration <= 0 {
		expiration = 5 * time.Minute
	}
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		key := cacheKey(c)
		now := time.Now()

		rc.mu.RLock()
		entry, found := rc.items[key]
		rc.mu.RUnlock()
		if found && entry.Expiration.After(now) {
			c.Header("X-Cache", "HIT")
			c.Data(http.StatusOK, entry.ContentType, entry.Content)
			c.Abort()
			return
		}

		writer := &responseWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer
		c.Next()

		if writer.Status() == http.StatusOK {
			rc.mu.Lock()
			rc.items[key] = cacheEntry{
				Content:     writer.body.Bytes(),
				ContentType: writer.Header().Get("Content-Type"),
				Expiration:  now.Add(expiration),
			}
			rc.mu.Unlock()
		}
	}
}

// Purge drops every entry
func (rc *ResponseCache) Purge() {
	rc.mu.Lock()
	rc.items = make(map[string]cacheEntry)
	rc.mu.Unlock()
}

// Invalidate purges the cache after successful writes. Mount it on routes
// that change data the cache serves.
func (rc *ResponseCache) Invalidate() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if status := c.Writer.Status(); status >= 200 && status < 300 {
			rc.Purge()
		}
	}
}

// Len returns the number of entries, expired ones included
func (rc *ResponseCache) Len() int {
	rc.mu.RLock()
	defer rc.mu.RUnlock()
	return len(rc.items)
}

// responseWriter copies the body while writing it through
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
