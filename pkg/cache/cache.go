// Package cache provides an in-memory TTL cache for upstream API responses,
// so repeated aggregation requests within the revalidation window are served
// without calling upstream again.
package cache

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/maypok86/otter/v2"
)

// Entry is one cached upstream response.
type Entry struct {
	ExpiresAt   time.Time
	ContentType string
	Data        []byte
}

// Transport is an http.RoundTripper that caches successful GET and POST
// responses for a fixed TTL. GETs are keyed by URL; POSTs (the GraphQL
// calls) are additionally keyed by the request body. Everything else passes
// through untouched.
type Transport struct {
	next   http.RoundTripper
	cache  *otter.Cache[string, Entry]
	ttl    time.Duration
	logger *log.Logger
}

// NewTransport creates a caching transport around next. A nil next uses
// http.DefaultTransport.
func NewTransport(next http.RoundTripper, ttl time.Duration, logger *log.Logger) *Transport {
	if next == nil {
		next = http.DefaultTransport
	}

	c := otter.Must(&otter.Options[string, Entry]{
		MaximumSize:      4_096,
		InitialCapacity:  64,
		ExpiryCalculator: otter.ExpiryWriting[string, Entry](ttl),
	})

	return &Transport{
		next:   next,
		cache:  c,
		ttl:    ttl,
		logger: logger,
	}
}

// RoundTrip serves a cached copy of the response when a fresh one exists,
// and stores successful responses otherwise.
func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	var body []byte
	switch req.Method {
	case http.MethodGet:
	case http.MethodPost:
		if req.Body != nil {
			var err error
			body, err = io.ReadAll(req.Body)
			if err != nil {
				return nil, fmt.Errorf("reading request body: %w", err)
			}
			// Replace the body with a new reader since we consumed it
			req.Body = io.NopCloser(bytes.NewReader(body))
		}
	default:
		return t.next.RoundTrip(req)
	}

	key := cacheKey(req.Method, req.URL.String(), body)

	if entry, found := t.cache.GetIfPresent(key); found {
		// Otter expires on its own, but double-check for safety
		if time.Now().Before(entry.ExpiresAt) {
			return cachedResponse(req, entry), nil
		}
		t.cache.Invalidate(key)
	}

	resp, err := t.next.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	// Only cache successful responses
	if resp.StatusCode != http.StatusOK {
		return resp, nil
	}

	data, err := io.ReadAll(resp.Body)
	if closeErr := resp.Body.Close(); closeErr != nil {
		t.logger.Printf("Failed to close response body: %v", closeErr)
	}
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	t.cache.Set(key, Entry{
		ExpiresAt:   time.Now().Add(t.ttl),
		ContentType: resp.Header.Get("Content-Type"),
		Data:        data,
	})

	resp.Body = io.NopCloser(bytes.NewReader(data))
	return resp, nil
}

// Size returns the estimated number of cached responses.
func (t *Transport) Size() int {
	return t.cache.EstimatedSize()
}

func cacheKey(method, url string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(method))
	h.Write([]byte(url))
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}

func cachedResponse(req *http.Request, entry Entry) *http.Response {
	header := make(http.Header)
	header.Set("X-From-Cache", "true")
	if entry.ContentType != "" {
		header.Set("Content-Type", entry.ContentType)
	}

	return &http.Response{
		Status:        http.StatusText(http.StatusOK),
		StatusCode:    http.StatusOK,
		Proto:         "HTTP/1.1",
		ProtoMajor:    1,
		ProtoMinor:    1,
		Header:        header,
		Body:          io.NopCloser(bytes.NewReader(entry.Data)),
		ContentLength: int64(len(entry.Data)),
		Request:       req,
	}
}
