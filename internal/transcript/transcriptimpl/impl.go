package transcriptimpl

import (
	"context"
	"strings"
	"time"

	"github.com/briidgedotone/narra/internal/contentapi"
	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/repositories/post"
	"github.com/briidgedotone/narra/internal/transcript"
	"github.com/briidgedotone/narra/pkg/config"
	"github.com/briidgedotone/narra/pkg/logger"
	"github.com/go-co-op/gocron/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/fx"
)

var transcriptPaths = []string{
	"transcript",
	"data.transcript",
	"transcripts.0.text",
	"data.transcripts.0.text",
	"text",
}

type Opts struct {
	fx.In

	API    contentapi.Client
	Posts  post.Repository
	Config *config.Config
	Logger logger.Logger
}

type BackfillerImpl struct {
	api       contentapi.Client
	posts     post.Repository
	cron      string
	batchSize int
	delay     time.Duration
	logger    logger.Logger
	scheduler gocron.Scheduler
	sleep     func(ctx context.Context, d time.Duration) error
}

func New(opts Opts) *BackfillerImpl {
	return &BackfillerImpl{
		api:       opts.API,
		posts:     opts.Posts,
		cron:      opts.Config.Transcript.Cron,
		batchSize: opts.Config.Transcript.BatchSize,
		delay:     time.Duration(opts.Config.Transcript.DelayMs) * time.Millisecond,
		logger:    opts.Logger.WithComponent("TranscriptBackfill"),
		sleep:     sleepCtx,
	}
}

var _ transcript.Backfiller = (*BackfillerImpl)(nil)

func (b *BackfillerImpl) Run(ctx context.Context, limit int) (transcript.Stats, error) {
	var stats transcript.Stats

	pending, err := b.posts.ListMissingTranscript(ctx, limit)
	if err != nil {
		return stats, domain.PersistenceError(err, "failed to list posts without transcripts")
	}

	for i, p := range pending {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.Checked++

		text, err := b.fetch(ctx, p.EmbedURL)
		switch {
		case err != nil:
			b.logger.Warn("Transcript fetch failed", "post_id", p.ID, "url", p.EmbedURL, "error", err)
			stats.Failed++
		case text == "":
			stats.Empty++
		default:
			if err := b.posts.UpdateTranscript(ctx, p.ID, text); err != nil {
				b.logger.Error("Failed to store transcript", "post_id", p.ID, "error", err)
				stats.Failed++
			} else {
				stats.Updated++
			}
		}

		if i < len(pending)-1 && b.delay > 0 {
			if err := b.sleep(ctx, b.delay); err != nil {
				return stats, err
			}
		}
	}

	b.logger.Info("Transcript backfill finished",
		"checked", stats.Checked,
		"updated", stats.Updated,
		"empty", stats.Empty,
		"failed", stats.Failed,
	)
	return stats, nil
}

func (b *BackfillerImpl) fetch(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", domain.FetchError(domain.ErrMissingContent, "post has no url")
	}

	resp, err := b.api.FetchTranscript(ctx, url)
	if err != nil {
		return "", domain.FetchError(err, "transcript request failed")
	}
	if !resp.Success {
		return "", domain.FetchError(nil, resp.Error)
	}
	return extract(resp.Data), nil
}

func extract(data []byte) string {
	for _, path := range transcriptPaths {
		if r := gjson.GetBytes(data, path); r.Type == gjson.String {
			if text := strings.TrimSpace(r.Str); text != "" {
				return text
			}
		}
	}
	return ""
}

func (b *BackfillerImpl) Schedule(ctx context.Context) error {
	if b.cron == "" {
		b.logger.Info("Transcript backfill schedule disabled")
		return nil
	}

	scheduler, err := gocron.NewScheduler(gocron.WithLocation(time.UTC))
	if err != nil {
		return err
	}

	_, err = scheduler.NewJob(
		gocron.CronJob(b.cron, false),
		gocron.NewTask(func() {
			runCtx, cancel := context.WithTimeout(ctx, 30*time.Minute)
			defer cancel()

			if _, err := b.Run(runCtx, b.batchSize); err != nil {
				b.logger.Error("Scheduled transcript backfill failed", "error", err)
			}
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = scheduler.Shutdown()
		return err
	}

	b.scheduler = scheduler
	scheduler.Start()
	b.logger.Info("Transcript backfill scheduled", "cron", b.cron, "batch", b.batchSize)
	return nil
}

func (b *BackfillerImpl) Stop() error {
	if b.scheduler == nil {
		return nil
	}
	return b.scheduler.Shutdown()
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
