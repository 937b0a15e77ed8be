// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/wangyun/pkg/types"
)

// --- test helpers ---

func testConfig(baseURL string) types.FetchConfig {
	cfg := types.DefaultConfig().Fetch
	cfg.BaseURL = baseURL
	cfg.UserAgent = "wangyun/test (tests@example.org)"
	cfg.MinGap = 0
	cfg.RequestsPerSecond = 0
	return cfg
}

type memCache struct {
	mu     sync.Mutex
	pages  map[string]string
	getErr error
	puts   int
}

func newMemCache() *memCache { return &memCache{pages: map[string]string{}} }

func (m *memCache) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return "", false, m.getErr
	}
	p, ok := m.pages[key]
	return p, ok, nil
}

func (m *memCache) Put(_ context.Context, key, page string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pages[key] = page
	m.puts++
	return nil
}

// --- tests ---

func TestFetch_RequestShape(t *testing.T) {
	var gotPath, gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html>東</html>"))
	}))
	defer ts.Close()

	c := New(testConfig(ts.URL + "/api/rest_v1/page/html/"))
	page, err := c.Fetch(context.Background(), "東")
	require.NoError(t, err)

	assert.Equal(t, "<html>東</html>", page)
	assert.Equal(t, "/api/rest_v1/page/html/東", gotPath)
	assert.Equal(t, "wangyun/test (tests@example.org)", gotUA)
}

func TestPageURL(t *testing.T) {
	c := New(types.DefaultConfig().Fetch)
	assert.Equal(t, "https://en.wiktionary.org/api/rest_v1/page/html/%E6%9D%B1", c.PageURL("東"))
}

func TestUserAgent(t *testing.T) {
	assert.Equal(t, "wangyun/1.2.0 (me@example.org)", UserAgent("1.2.0", "me@example.org"))
	assert.Equal(t, "wangyun/dev", UserAgent("dev", ""))
}

func TestFetch_StatusIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	}))
	defer ts.Close()

	_, err := New(testConfig(ts.URL)).Fetch(context.Background(), "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTransport)

	var te *TransportError
	require.True(t, errors.As(err, &te))
	assert.Equal(t, http.StatusNotFound, te.Status)
	assert.Equal(t, "x", te.Char)
}

func TestFetch_OversizedPageIsTransportError(t *testing.T) {
	orig := MaxPageBytes
	MaxPageBytes = 8
	defer func() { MaxPageBytes = orig }()

	var body string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	}))
	defer ts.Close()

	tests := []struct {
		name    string
		body    string
		wantErr bool
	}{
		{"at the limit", "12345678", false},
		{"one byte over", "123456789", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body = tt.body
			cache := newMemCache()
			c := New(testConfig(ts.URL), WithCache(cache))

			page, err := c.Fetch(context.Background(), "東")
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.body, page)
				return
			}
			assert.ErrorIs(t, err, ErrTransport)
			assert.ErrorContains(t, err, "exceeds 8 bytes")
			assert.Empty(t, page)
			assert.Zero(t, cache.puts, "a truncated page is never cached")
		})
	}
}

func TestFetch_NetworkFailureIsTransportError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := ts.URL
	ts.Close()

	_, err := New(testConfig(url)).Fetch(context.Background(), "x")
	assert.ErrorIs(t, err, ErrTransport)
}

func TestFetch_MinGapFromRequestEnd(t *testing.T) {
	const gap = 40 * time.Millisecond
	var (
		mu      sync.Mutex
		starts  []time.Time
		ends    []time.Time
		holdFor = 20 * time.Millisecond
	)
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		mu.Lock()
		starts = append(starts, time.Now())
		mu.Unlock()
		time.Sleep(holdFor)
		w.Write([]byte("ok"))
		mu.Lock()
		ends = append(ends, time.Now())
		mu.Unlock()
	}))
	defer ts.Close()

	cfg := testConfig(ts.URL)
	cfg.MinGap = gap
	c := New(cfg)

	_, err := c.FetchAll(context.Background(), []string{"a", "b", "c"})
	require.NoError(t, err)

	require.Len(t, starts, 3)
	for i := 1; i < len(starts); i++ {
		assert.GreaterOrEqual(t, starts[i].Sub(ends[i-1]), gap, "request %d started too soon", i)
	}
}

func TestFetch_ConcurrentCallersAreSerialized(t *testing.T) {
	var inFlight, maxInFlight int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			m := atomic.LoadInt32(&maxInFlight)
			if n <= m || atomic.CompareAndSwapInt32(&maxInFlight, m, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	c := New(testConfig(ts.URL))
	var wg sync.WaitGroup
	for _, ch := range []string{"a", "b", "c", "d"} {
		ch := ch
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Fetch(context.Background(), ch)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&maxInFlight))
}

func TestFetch_CacheHitSkipsNetworkAndGap(t *testing.T) {
	var calls int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte("fresh " + r.URL.Path))
	}))
	defer ts.Close()

	cache := newMemCache()
	cache.pages["東"] = "cached"

	cfg := testConfig(ts.URL)
	cfg.MinGap = time.Hour
	c := New(cfg, WithCache(cache))

	// The first network request has no predecessor, so it does not wait.
	page, err := c.Fetch(context.Background(), "行")
	require.NoError(t, err)
	assert.Equal(t, "fresh /行", page)
	assert.Equal(t, "fresh /行", cache.pages["行"])

	// A hit would block for an hour if it were gated.
	start := time.Now()
	page, err = c.Fetch(context.Background(), "東")
	require.NoError(t, err)
	assert.Equal(t, "cached", page)
	assert.Less(t, time.Since(start), time.Second)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, 1, cache.puts)
}

func TestFetch_CacheReadErrorFallsThrough(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("network"))
	}))
	defer ts.Close()

	cache := newMemCache()
	cache.getErr = errors.New("disk gone")

	page, err := New(testConfig(ts.URL), WithCache(cache)).Fetch(context.Background(), "東")
	require.NoError(t, err)
	assert.Equal(t, "network", page)
}

func TestFetch_CancelDuringGap(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer ts.Close()

	cfg := testConfig(ts.URL)
	cfg.MinGap = time.Hour
	c := New(cfg)

	_, err := c.Fetch(context.Background(), "a")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = c.Fetch(ctx, "b")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestFetchAll_StopsAtFirstError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/b" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(r.URL.Path))
	}))
	defer ts.Close()

	pages, err := New(testConfig(ts.URL)).FetchAll(context.Background(), []string{"a", "b", "c"})
	assert.ErrorIs(t, err, ErrTransport)
	assert.Equal(t, []string{"/a"}, pages)
}
