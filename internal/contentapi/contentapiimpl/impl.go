package contentapiimpl

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/briidgedotone/narra/internal/cache"
	"github.com/briidgedotone/narra/internal/contentapi"
	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/ingest"
	"github.com/briidgedotone/narra/pkg/config"
	"github.com/briidgedotone/narra/pkg/logger"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/fx"
)

const apiKeyHeader = "x-api-key"

type endpoints struct {
	profile    string
	posts      string
	post       string
	transcript string
}

var platformEndpoints = map[domain.Platform]endpoints{
	domain.PlatformInstagram: {
		profile:    "/v1/instagram/profile",
		posts:      "/v2/instagram/user/posts",
		post:       "/v1/instagram/post",
		transcript: "/v2/instagram/media/transcript",
	},
	domain.PlatformTikTok: {
		profile:    "/v1/tiktok/profile",
		posts:      "/v3/tiktok/profile/videos",
		post:       "/v2/tiktok/video",
		transcript: "/v1/tiktok/video/transcript",
	},
}

type Opts struct {
	fx.In

	// Ingest carries the API key, base URL and fetch timeout.
	Ingest ingest.Config
	Config *config.Config
	Cache  cache.Cache
	Logger logger.Logger
}

type ClientImpl struct {
	http     *resty.Client
	cache    cache.Cache
	cacheTTL time.Duration
	logger   logger.Logger
}

func New(opts Opts) *ClientImpl {
	cfg := opts.Ingest
	return NewWithClient(
		resty.New().
			SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
			SetTimeout(cfg.FetchTimeout).
			SetHeader(apiKeyHeader, cfg.APIKey).
			SetHeader("Accept", "application/json"),
		opts.Cache,
		opts.Config.ContentAPI.CacheTTL,
		opts.Logger,
	)
}

func NewWithClient(rc *resty.Client, c cache.Cache, ttl time.Duration, log logger.Logger) *ClientImpl {
	if c == nil {
		c = cache.Noop{}
	}
	return &ClientImpl{
		http:     rc,
		cache:    c,
		cacheTTL: ttl,
		logger:   log.WithComponent("ContentAPI"),
	}
}

var _ contentapi.Client = (*ClientImpl)(nil)

func (c *ClientImpl) FetchProfile(ctx context.Context, handle string, platform domain.Platform) (contentapi.Response, error) {
	ep, err := endpointsFor(platform)
	if err != nil {
		return contentapi.Response{}, err
	}
	return c.get(ctx, ep.profile, map[string]string{"handle": handle})
}

func (c *ClientImpl) FetchPosts(ctx context.Context, handle string, platform domain.Platform, count int) (contentapi.Response, error) {
	ep, err := endpointsFor(platform)
	if err != nil {
		return contentapi.Response{}, err
	}
	params := map[string]string{"handle": handle}
	if count > 0 {
		params["amount"] = strconv.Itoa(count)
	}
	return c.get(ctx, ep.posts, params)
}

func (c *ClientImpl) FetchPost(ctx context.Context, postURL string) (contentapi.Response, error) {
	platform, err := domain.PlatformFromURL(postURL)
	if err != nil {
		return contentapi.Response{}, err
	}
	return c.get(ctx, platformEndpoints[platform].post, map[string]string{"url": postURL})
}

func (c *ClientImpl) FetchTranscript(ctx context.Context, postURL string) (contentapi.Response, error) {
	platform, err := domain.PlatformFromURL(postURL)
	if err != nil {
		return contentapi.Response{}, err
	}
	return c.get(ctx, platformEndpoints[platform].transcript, map[string]string{"url": postURL})
}

func (c *ClientImpl) get(ctx context.Context, path string, params map[string]string) (contentapi.Response, error) {
	key := cacheKey(path, params)

	if body, ok, err := c.cache.Get(ctx, key); err != nil {
		c.logger.Warn("Cache read failed", "key", key, "error", err)
	} else if ok {
		return contentapi.Response{Success: true, Data: body, Cached: true}, nil
	}

	started := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		Get(path)
	if err != nil {
		return contentapi.Response{}, fmt.Errorf("request %s: %w", path, err)
	}

	c.logger.Debug("Content API call",
		"path", path,
		"status", resp.StatusCode(),
		"duration", time.Since(started).Round(time.Millisecond).String(),
	)

	body := resp.Body()
	if !resp.IsSuccess() {
		return contentapi.Response{
			Success: false,
			Error:   errorMessage(body, resp.Status()),
		}, nil
	}
	if ok := gjson.GetBytes(body, "success"); ok.Exists() && !ok.Bool() {
		return contentapi.Response{
			Success: false,
			Data:    body,
			Error:   errorMessage(body, "request was not successful"),
		}, nil
	}

	if err := c.cache.Set(ctx, key, body, c.cacheTTL); err != nil {
		c.logger.Warn("Cache write failed", "key", key, "error", err)
	}

	return contentapi.Response{Success: true, Data: body}, nil
}

func endpointsFor(p domain.Platform) (endpoints, error) {
	ep, ok := platformEndpoints[p]
	if !ok {
		return endpoints{}, fmt.Errorf("unsupported platform %q", p)
	}
	return ep, nil
}

// errorMessage pulls a readable message out of an API error body.
func errorMessage(body []byte, fallback string) string {
	for _, path := range []string{"message", "error.message", "error", "detail"} {
		if r := gjson.GetBytes(body, path); r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}
	return fallback
}

func cacheKey(path string, params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return "contentapi:" + path + "?" + q.Encode()
}
