package pricelist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/you/skin-arb/internal/config"
	"go.uber.org/zap"
)

func newTestConfig(url string) *config.Config {
	cfg := &config.Config{}
	cfg.Feeds.Buff163URL = url + "/latest/buff163.json"
	cfg.Feeds.CSFloatURL = url + "/latest/csfloat.json"
	cfg.Feeds.UserAgent = "Mozilla/5.0"
	cfg.Feeds.TimeoutMs = 2000
	cfg.Feeds.RatePerSec = 100
	cfg.Feeds.RateBurst = 10
	return cfg
}

func mockUpstream(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Mozilla/5.0", r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/latest/buff163.json":
			_, _ = w.Write([]byte(`{"AK-47 | Redline (Field-Tested)":{"starting_at":{"price":10.5}}}`))
		case "/latest/csfloat.json":
			_, _ = w.Write([]byte(`not json`))
		default:
			http.Error(w, "gone", http.StatusNotFound)
		}
	}))
}

func TestClient_Fetch(t *testing.T) {
	srv := mockUpstream(t)
	defer srv.Close()

	c := NewClient(newTestConfig(srv.URL), zap.NewNop())
	b, err := c.Fetch(context.Background(), Buff163)
	require.NoError(t, err)
	assert.JSONEq(t, `{"AK-47 | Redline (Field-Tested)":{"starting_at":{"price":10.5}}}`, string(b))
}

func TestClient_Fetch_InvalidJSON(t *testing.T) {
	srv := mockUpstream(t)
	defer srv.Close()

	c := NewClient(newTestConfig(srv.URL), zap.NewNop())
	_, err := c.Fetch(context.Background(), CSFloat)
	assert.Error(t, err)
}

func TestClient_Fetch_Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(newTestConfig(srv.URL), zap.NewNop())
	_, err := c.Fetch(context.Background(), Buff163)
	require.Error(t, err)
	assert.Equal(t, "API responded with status: 502", err.Error())
}

func TestClient_Fetch_UnknownFeed(t *testing.T) {
	c := NewClient(newTestConfig("http://127.0.0.1:1"), zap.NewNop())
	_, err := c.Fetch(context.Background(), Feed("steam"))
	assert.True(t, errors.Is(err, ErrUnknownFeed))
}

type countingSource struct {
	calls atomic.Int32
	body  []byte
	err   error
}

func (s *countingSource) Fetch(context.Context, Feed) ([]byte, error) {
	s.calls.Add(1)
	return s.body, s.err
}

func TestCachedSource_ServesFromCache(t *testing.T) {
	src := &countingSource{body: []byte(`{}`)}
	cs := NewCachedSource(src, NewMemoryCache(), time.Minute, zap.NewNop())

	for i := 0; i < 3; i++ {
		b, err := cs.Fetch(context.Background(), Buff163)
		require.NoError(t, err)
		assert.Equal(t, `{}`, string(b))
	}
	assert.Equal(t, int32(1), src.calls.Load())

	_, err := cs.Fetch(context.Background(), CSFloat)
	require.NoError(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCachedSource_ErrorNotCached(t *testing.T) {
	src := &countingSource{err: errors.New("boom")}
	cs := NewCachedSource(src, NewMemoryCache(), time.Minute, zap.NewNop())

	_, err := cs.Fetch(context.Background(), Buff163)
	assert.Error(t, err)
	_, err = cs.Fetch(context.Background(), Buff163)
	assert.Error(t, err)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestCachedSource_ZeroTTLBypassesCache(t *testing.T) {
	src := &countingSource{body: []byte(`{}`)}
	cs := NewCachedSource(src, NewMemoryCache(), 0, zap.NewNop())
	_, _ = cs.Fetch(context.Background(), Buff163)
	_, _ = cs.Fetch(context.Background(), Buff163)
	assert.Equal(t, int32(2), src.calls.Load())
}

func TestMemoryCache_Expiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	c := NewMemoryCache()
	c.now = func() time.Time { return now }

	require.NoError(t, c.Set(context.Background(), "k", []byte("v"), time.Minute))
	b, ok, err := c.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", string(b))

	now = now.Add(time.Minute)
	_, ok, _ = c.Get(context.Background(), "k")
	assert.False(t, ok)
}
