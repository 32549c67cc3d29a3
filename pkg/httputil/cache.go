// Package httputil provides HTTP helpers shared by the server.
//
// The main piece is ResponseCache, a middleware that caches successful GET
// responses in a cache.Cache. Rendering a stored skeleton is deterministic,
// so repeated requests for the same artifact can be served straight from
// the cache without touching the pipeline.
package httputil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/matzehuels/polyskel/pkg/cache"
	"github.com/matzehuels/polyskel/pkg/observability"
)

// ResponseCache caches successful GET responses.
//
// Keys are derived from the request URI via the Keyer, so query parameters
// (format, style) produce distinct entries. Only 200 responses are cached;
// errors always pass through.
type ResponseCache struct {
	cache     cache.Cache
	keyer     cache.Keyer
	namespace string
	ttl       time.Duration
}

// NewResponseCache creates a response cache middleware.
// If c is nil, a NullCache is used and the middleware is a no-op.
// If keyer is nil, a DefaultKeyer is used.
func NewResponseCache(c cache.Cache, keyer cache.Keyer, namespace string, ttl time.Duration) *ResponseCache {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	return &ResponseCache{
		cache:     c,
		keyer:     keyer,
		namespace: namespace,
		ttl:       ttl,
	}
}

// cachedResponse is the stored form of one response.
type cachedResponse struct {
	Status      int    `json:"status"`
	ContentType string `json:"content_type"`
	Body        []byte `json:"body"`
}

// Middleware wraps next with response caching.
func (rc *ResponseCache) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			next.ServeHTTP(w, r)
			return
		}

		key := rc.keyer.HTTPKey(rc.namespace, r.URL.RequestURI())
		if data, hit, err := rc.cache.Get(r.Context(), key); err == nil && hit {
			var cached cachedResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				observability.Cache().OnCacheHit(r.Context(), "http")
				if cached.ContentType != "" {
					w.Header().Set("Content-Type", cached.ContentType)
				}
				w.Header().Set("X-Cache", "HIT")
				w.WriteHeader(cached.Status)
				_, _ = w.Write(cached.Body)
				return
			}
		}
		observability.Cache().OnCacheMiss(r.Context(), "http")

		rec := &recorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		if rec.status == http.StatusOK {
			entry := cachedResponse{
				Status:      rec.status,
				ContentType: rec.Header().Get("Content-Type"),
				Body:        rec.body.Bytes(),
			}
			if data, err := json.Marshal(entry); err == nil {
				_ = rc.cache.Set(r.Context(), key, data, rc.ttl)
				observability.Cache().OnCacheSet(r.Context(), "http", len(data))
			}
		}
	})
}

// recorder tees the response body so it can be cached after serving.
type recorder struct {
	http.ResponseWriter
	status int
	body   bytes.Buffer
}

func (r *recorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (r *recorder) Write(p []byte) (int, error) {
	r.body.Write(p)
	return r.ResponseWriter.Write(p)
}
