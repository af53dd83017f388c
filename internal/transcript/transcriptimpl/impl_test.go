package transcriptimpl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/briidgedotone/narra/internal/contentapi"
	mock_contentapi "github.com/briidgedotone/narra/internal/contentapi/mocks"
	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/repositories/memory"
	"github.com/briidgedotone/narra/pkg/config"
	"github.com/briidgedotone/narra/pkg/logger"
	"go.uber.org/mock/gomock"
)

func seedVideo(t *testing.T, store *memory.Store, id, url string, created time.Time) {
	t.Helper()
	_, err := store.Posts().Upsert(context.Background(), domain.Post{
		Platform:       domain.PlatformTikTok,
		PlatformPostID: id,
		EmbedURL:       url,
		IsVideo:        true,
		CreatedAt:      created,
	})
	if err != nil {
		t.Fatal(err)
	}
}

func newBackfiller(api contentapi.Client, store *memory.Store) *BackfillerImpl {
	cfg := &config.Config{}
	cfg.Transcript.BatchSize = 10
	b := New(Opts{API: api, Posts: store.Posts(), Config: cfg, Logger: logger.NewNop()})
	b.sleep = func(context.Context, time.Duration) error { return nil }
	return b
}

func TestRun_FillsTranscripts(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_contentapi.NewMockClient(ctrl)
	store := memory.New()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	seedVideo(t, store, "1", "https://www.tiktok.com/@a/video/1", base)
	seedVideo(t, store, "2", "https://www.tiktok.com/@a/video/2", base.Add(time.Minute))
	seedVideo(t, store, "3", "https://www.tiktok.com/@a/video/3", base.Add(2*time.Minute))

	api.EXPECT().FetchTranscript(gomock.Any(), "https://www.tiktok.com/@a/video/1").
		Return(contentapi.Response{Success: true, Data: []byte(`{"transcript":" hello world "}`)}, nil)
	api.EXPECT().FetchTranscript(gomock.Any(), "https://www.tiktok.com/@a/video/2").
		Return(contentapi.Response{Success: true, Data: []byte(`{"transcripts":[]}`)}, nil)
	api.EXPECT().FetchTranscript(gomock.Any(), "https://www.tiktok.com/@a/video/3").
		Return(contentapi.Response{Success: false, Error: "rate limited"}, nil)

	stats, err := newBackfiller(api, store).Run(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Checked != 3 || stats.Updated != 1 || stats.Empty != 1 || stats.Failed != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	got, err := store.Posts().FindByPlatformID(context.Background(), domain.PlatformTikTok, "1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Transcript != "hello world" {
		t.Fatalf("transcript = %q", got.Transcript)
	}

	left, _ := store.Posts().ListMissingTranscript(context.Background(), 10)
	if len(left) != 2 {
		t.Fatalf("expected two posts still pending, got %d", len(left))
	}
}

func TestRun_CancelledBetweenPosts(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := mock_contentapi.NewMockClient(ctrl)
	store := memory.New()

	base := time.Now()
	seedVideo(t, store, "1", "https://www.tiktok.com/@a/video/1", base)
	seedVideo(t, store, "2", "https://www.tiktok.com/@a/video/2", base.Add(time.Second))

	api.EXPECT().FetchTranscript(gomock.Any(), gomock.Any()).
		Return(contentapi.Response{Success: true, Data: []byte(`{"transcript":"x"}`)}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	b := newBackfiller(api, store)
	b.delay = time.Second
	b.sleep = func(ctx context.Context, _ time.Duration) error {
		cancel()
		return ctx.Err()
	}

	stats, err := b.Run(ctx, 10)
	if !errors.Is(err, context.Canceled) || stats.Updated != 1 {
		t.Fatalf("stats %+v err %v", stats, err)
	}
}

func TestExtract(t *testing.T) {
	cases := map[string]string{
		`{"transcript":"a"}`:                       "a",
		`{"transcripts":[{"text":"b"}]}`:           "b",
		`{"data":{"transcript":"c"}}`:              "c",
		`{"transcript":null,"text":"   "}`:         "",
		`{"success":true,"transcripts":[{"id":1}]}`: "",
	}
	for in, want := range cases {
		if got := extract([]byte(in)); got != want {
			t.Errorf("extract(%s) = %q, want %q", in, got, want)
		}
	}
}

func TestSchedule_EmptyCronDisabled(t *testing.T) {
	b := newBackfiller(nil, memory.New())
	b.cron = ""
	if err := b.Schedule(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := b.Stop(); err != nil {
		t.Fatal(err)
	}
}
