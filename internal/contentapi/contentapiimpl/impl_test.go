package contentapiimpl

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/briidgedotone/narra/internal/cache"
	"github.com/briidgedotone/narra/internal/contentapi"
	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/ingest"
	"github.com/briidgedotone/narra/pkg/config"
	"github.com/briidgedotone/narra/pkg/logger"
	"github.com/go-resty/resty/v2"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func (m *mapCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *mapCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*ClientImpl, *mapCache) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c := &mapCache{data: map[string][]byte{}}
	rc := resty.New().
		SetBaseURL(srv.URL).
		SetTimeout(2*time.Second).
		SetHeader(apiKeyHeader, "test-key")
	return NewWithClient(rc, c, time.Minute, logger.NewNop()), c
}

func TestFetchPost_SendsKeyAndCaches(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		if r.Header.Get(apiKeyHeader) != "test-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/v1/instagram/post" || r.URL.Query().Get("url") == "" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"xdt_shortcode_media":{"id":"1"}}}`))
	})

	ctx := context.Background()
	url := "https://www.instagram.com/p/ABC123/"

	first, err := client.FetchPost(ctx, url)
	if err != nil || !first.Success || first.Cached {
		t.Fatalf("first fetch: %+v %v", first, err)
	}
	second, err := client.FetchPost(ctx, url)
	if err != nil || !second.Success || !second.Cached {
		t.Fatalf("second fetch should hit the cache: %+v %v", second, err)
	}
	if calls.Load() != 1 {
		t.Fatalf("expected one upstream call, got %d", calls.Load())
	}
	if string(second.Data) != string(first.Data) {
		t.Fatalf("cached body differs")
	}
}

func TestFetchProfile_ErrorBody(t *testing.T) {
	client, c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/tiktok/profile" || r.URL.Query().Get("handle") != "dancer" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"success":false,"message":"out of credits"}`))
	})

	resp, err := client.FetchProfile(context.Background(), "dancer", domain.PlatformTikTok)
	if err != nil {
		t.Fatalf("unexpected transport error: %v", err)
	}
	if resp.Success || resp.Error != "out of credits" {
		t.Fatalf("unexpected response %+v", resp)
	}
	if len(c.data) != 0 {
		t.Fatalf("failed responses must not be cached")
	}
}

func TestFetchPosts_SuccessFalseInBody(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("amount") != "12" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		_, _ = w.Write([]byte(`{"success":false,"error":{"message":"private account"}}`))
	})

	resp, err := client.FetchPosts(context.Background(), "someone", domain.PlatformInstagram, 12)
	if err != nil {
		t.Fatal(err)
	}
	if resp.Success || resp.Error != "private account" {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestFetchPost_Timeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := client.FetchPost(ctx, "https://www.tiktok.com/@a/video/1"); err == nil {
		t.Fatal("expected a transport error on timeout")
	}
}

func TestFetchPost_UnknownHost(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {})
	if _, err := client.FetchPost(context.Background(), "https://example.com/p/1"); err == nil {
		t.Fatal("expected an error for an unsupported URL")
	}
}

func TestModule_UsesDecoratedIngestConfig(t *testing.T) {
	var gotKey atomic.Value
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey.Store(r.Header.Get(apiKeyHeader))
		_, _ = w.Write([]byte(`{"success":true,"user":{"username":"creator"}}`))
	}))
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.ContentAPI.BaseURL = "http://127.0.0.1:1"
	cfg.ContentAPI.Key = "env-key"

	var client contentapi.Client
	app := fxtest.New(t,
		fx.Supply(cfg),
		fx.Provide(
			ingest.ConfigFrom,
			func() cache.Cache { return cache.Noop{} },
			func() logger.Logger { return logger.NewNop() },
		),
		Module,
		fx.Decorate(func(c ingest.Config) ingest.Config {
			c.BaseURL = srv.URL
			c.APIKey = "flag-key"
			c.FetchTimeout = 2 * time.Second
			return c
		}),
		fx.Populate(&client),
	)
	app.RequireStart()
	defer app.RequireStop()

	resp, err := client.FetchProfile(context.Background(), "creator", domain.PlatformInstagram)
	if err != nil {
		t.Fatalf("request did not reach the decorated base url: %v", err)
	}
	if !resp.Success {
		t.Fatalf("unexpected response %+v", resp)
	}
	if gotKey.Load() != "flag-key" {
		t.Fatalf("api key = %v, want flag-key", gotKey.Load())
	}
}
