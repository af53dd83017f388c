package contentapi

import (
	"context"

	"github.com/briidgedotone/narra/internal/domain"
)

// Response is the envelope every content API call produces. Success=false
// is a fetch failure whatever the transport status was.
type Response struct {
	Success bool
	Data    []byte
	Error   string
	Cached  bool
}

//go:generate go run go.uber.org/mock/mockgen -source=contentapi.go -destination=mocks/mock.go
type Client interface {
	FetchProfile(ctx context.Context, handle string, platform domain.Platform) (Response, error)
	FetchPosts(ctx context.Context, handle string, platform domain.Platform, count int) (Response, error)
	FetchPost(ctx context.Context, url string) (Response, error)
	FetchTranscript(ctx context.Context, url string) (Response, error)
}
