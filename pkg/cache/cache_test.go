package cache

import (
	"bytes"
	"io"
	"log"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// countingTransport fabricates responses and records how often it is called.
type countingTransport struct {
	calls  int
	status int
	body   string
}

func (c *countingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	c.calls++
	return &http.Response{
		StatusCode: c.status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewReader([]byte(c.body))),
		Request:    req,
	}, nil
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func doGet(t *testing.T, client *http.Client, url string) *http.Response {
	t.Helper()
	resp, err := client.Get(url)
	assert.NoError(t, err)
	return resp
}

func TestTransportCachesSuccessfulGets(t *testing.T) {
	upstream := &countingTransport{status: http.StatusOK, body: `{"ok":true}`}
	client := &http.Client{Transport: NewTransport(upstream, time.Hour, testLogger())}

	first := doGet(t, client, "http://example.test/users/x")
	firstBody, _ := io.ReadAll(first.Body)
	first.Body.Close()

	second := doGet(t, client, "http://example.test/users/x")
	secondBody, _ := io.ReadAll(second.Body)
	second.Body.Close()

	assert.Equal(t, 1, upstream.calls)
	assert.Equal(t, firstBody, secondBody)
	assert.Empty(t, first.Header.Get("X-From-Cache"))
	assert.Equal(t, "true", second.Header.Get("X-From-Cache"))
}

func TestTransportKeysByURL(t *testing.T) {
	upstream := &countingTransport{status: http.StatusOK, body: `[]`}
	client := &http.Client{Transport: NewTransport(upstream, time.Hour, testLogger())}

	doGet(t, client, "http://example.test/users/x/repos").Body.Close()
	doGet(t, client, "http://example.test/users/x/events/public").Body.Close()

	assert.Equal(t, 2, upstream.calls)
}

func TestTransportKeysPostsByBody(t *testing.T) {
	upstream := &countingTransport{status: http.StatusOK, body: `{"data":{}}`}
	client := &http.Client{Transport: NewTransport(upstream, time.Hour, testLogger())}

	post := func(body string) {
		resp, err := client.Post("http://example.test/graphql", "application/json", bytes.NewReader([]byte(body)))
		assert.NoError(t, err)
		resp.Body.Close()
	}

	post(`{"query":"a"}`)
	post(`{"query":"b"}`)
	assert.Equal(t, 2, upstream.calls)

	post(`{"query":"a"}`)
	assert.Equal(t, 2, upstream.calls, "repeated query should be served from cache")
}

func TestTransportSkipsNonSuccessResponses(t *testing.T) {
	upstream := &countingTransport{status: http.StatusInternalServerError, body: `{"message":"boom"}`}
	client := &http.Client{Transport: NewTransport(upstream, time.Hour, testLogger())}

	doGet(t, client, "http://example.test/users/x").Body.Close()
	doGet(t, client, "http://example.test/users/x").Body.Close()

	assert.Equal(t, 2, upstream.calls, "error responses must not be cached")
}

func TestTransportExpiresEntries(t *testing.T) {
	upstream := &countingTransport{status: http.StatusOK, body: `{}`}
	client := &http.Client{Transport: NewTransport(upstream, 10*time.Millisecond, testLogger())}

	doGet(t, client, "http://example.test/users/x").Body.Close()
	time.Sleep(20 * time.Millisecond)
	doGet(t, client, "http://example.test/users/x").Body.Close()

	assert.Equal(t, 2, upstream.calls)
}

func TestTransportPassesThroughOtherMethods(t *testing.T) {
	upstream := &countingTransport{status: http.StatusOK, body: `{}`}
	client := &http.Client{Transport: NewTransport(upstream, time.Hour, testLogger())}

	req, _ := http.NewRequest(http.MethodDelete, "http://example.test/thing", nil)
	resp, err := client.Do(req)
	assert.NoError(t, err)
	resp.Body.Close()

	resp, err = client.Do(req.Clone(req.Context()))
	assert.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, 2, upstream.calls)
}
