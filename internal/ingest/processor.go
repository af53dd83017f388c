package ingest

import (
	"context"
	"errors"
	"time"

	"github.com/briidgedotone/narra/internal/contentapi"
	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/membership"
	"github.com/briidgedotone/narra/internal/normalizer"
	"github.com/briidgedotone/narra/internal/transformer"
	"github.com/briidgedotone/narra/internal/upsert"
	"github.com/briidgedotone/narra/pkg/logger"
	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Item is one source reference. When Payload is set the fetch step is
// skipped and the payload is transformed directly.
type Item struct {
	URL     string
	Payload *transformer.Payload
}

func URLItems(urls []string) []Item {
	items := make([]Item, 0, len(urls))
	for _, u := range urls {
		items = append(items, Item{URL: u})
	}
	return items
}

type Opts struct {
	fx.In

	Config      Config
	API         contentapi.Client
	Transformer *transformer.Transformer
	Engine      *upsert.Engine
	Guard       *membership.Guard
	Logger      logger.Logger
}

// Processor runs items through fetch, transform, upsert and board
// membership one at a time, in input order.
type Processor struct {
	cfg         Config
	api         contentapi.Client
	transformer *transformer.Transformer
	engine      *upsert.Engine
	guard       *membership.Guard
	logger      logger.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

func New(opts Opts) *Processor {
	return &Processor{
		cfg:         opts.Config,
		api:         opts.API,
		transformer: opts.Transformer,
		engine:      opts.Engine,
		guard:       opts.Guard,
		logger:      opts.Logger.WithComponent("IngestProcessor"),
		sleep:       sleepCtx,
	}
}

// Run processes items[StartOffset:] into the configured target board.
// Per-item failures are counted, never returned. The only error is an
// invalid config or a cancelled context, in which case the summary covers
// the items processed so far. An item interrupted by cancellation is not
// counted and Summary.NextOffset points at it.
func (p *Processor) Run(ctx context.Context, items []Item) (Summary, error) {
	summary := Summary{RunID: uuid.NewString()}
	if err := p.cfg.Validate(); err != nil {
		return summary, err
	}

	log := p.logger.With("run_id", summary.RunID, "board_id", p.cfg.TargetBoardID)
	start := min(p.cfg.StartOffset, len(items))
	log.Info("Starting ingestion run",
		"items", len(items),
		"offset", start,
		"delay_ms", p.cfg.InterItemDelayMs,
	)

	delay := p.cfg.InterItemDelay()
	summary.NextOffset = start
	for i := start; i < len(items); i++ {
		if err := ctx.Err(); err != nil {
			summary.finish()
			return summary, err
		}

		res := p.process(ctx, log, i, items[i], p.cfg.TargetBoardID)
		if err := ctx.Err(); err != nil && res.Outcome.IsError() {
			// The item was cut short, not handled: leave it for the resumed run.
			summary.finish()
			log.Warn("Ingestion run interrupted", "next_offset", i, "url", res.URL, "error", err)
			return summary, err
		}
		summary.add(res)
		summary.NextOffset = i + 1

		log.Info("Item processed",
			"index", i,
			"url", res.URL,
			"outcome", res.Outcome.String(),
			"progress", summary.Total,
		)

		if i < len(items)-1 && delay > 0 {
			if err := p.sleep(ctx, delay); err != nil {
				summary.finish()
				log.Warn("Ingestion run interrupted", "next_offset", summary.NextOffset, "error", err)
				return summary, err
			}
		}
	}

	summary.finish()
	log.Info("Ingestion run finished",
		"total", summary.Total,
		"success", summary.Success,
		"duplicate", summary.Duplicate,
		"error", summary.Error,
		"success_rate_pct", summary.SuccessRatePct,
	)
	return summary, nil
}

// SaveOne is the interactive single-post path: fetch, persist and add to
// boardID. A post already in the board is a Duplicate outcome, not an error.
func (p *Processor) SaveOne(ctx context.Context, url, boardID string) ItemResult {
	log := p.logger.With("board_id", boardID)
	return p.process(ctx, log, 0, Item{URL: url}, boardID)
}

func (p *Processor) process(ctx context.Context, log logger.Logger, index int, item Item, boardID string) ItemResult {
	res := ItemResult{Index: index, URL: item.URL}
	state := StatePending
	fail := func(outcome Outcome, err error) ItemResult {
		res.Outcome = outcome
		res.State = state
		res.FailedIn = state
		res.Err = err
		return res
	}

	payload := item.Payload
	if payload == nil {
		state = StateFetching
		fetched, err := p.fetch(ctx, item.URL)
		if err != nil {
			log.Warn("Fetch failed", "url", item.URL, "error", err)
			return fail(OutcomeFetchFailed, err)
		}
		payload = &fetched
	}
	res.Platform = payload.Platform

	state = StateTransforming
	draft, err := p.transformer.Post(*payload)
	if err != nil {
		log.Warn("Transform failed", "url", item.URL, "platform", payload.Platform.String(), "error", err)
		return fail(OutcomeTransformFailed, err)
	}
	if draft.EmbedURL == "" {
		draft.EmbedURL = item.URL
	}

	state = StateSaving
	post, normalized, err := p.persist(ctx, log, draft)
	if err != nil {
		log.Error("Save failed", "url", item.URL, "platform", payload.Platform.String(), "error", err)
		return fail(OutcomeSaveFailed, err)
	}
	res.PostID = post.ID
	res.NormalizedID = normalized

	outcome, err := p.guard.AddIfAbsent(ctx, boardID, post.ID)
	if err != nil {
		log.Error("Board add failed", "url", item.URL, "post_id", post.ID, "error", err)
		return fail(OutcomeSaveFailed, err)
	}

	res.State = StateDone
	res.Outcome = OutcomeSuccess
	if outcome == membership.AlreadyExists {
		res.Outcome = OutcomeDuplicate
	}
	return res
}

func (p *Processor) fetch(ctx context.Context, url string) (transformer.Payload, error) {
	platform, err := domain.PlatformFromURL(url)
	if err != nil {
		return transformer.Payload{}, domain.FetchError(err, "unsupported source url")
	}

	raw, err := p.fetchWith(ctx, "fetch_post", func(ctx context.Context) (contentapi.Response, error) {
		return p.api.FetchPost(ctx, url)
	})
	if err != nil {
		return transformer.Payload{}, domain.FetchError(err, "failed to fetch "+url)
	}

	return transformer.Payload{
		Platform: platform,
		Shape:    transformer.ShapeSinglePost,
		Raw:      raw,
	}, nil
}

// persist upserts the owner profile and the post under its normalized id.
func (p *Processor) persist(ctx context.Context, log logger.Logger, d domain.Draft) (*domain.Post, string, error) {
	prof, err := p.engine.UpsertProfile(ctx, d.ProfileDraft())
	if err != nil {
		return nil, "", err
	}

	n := normalizer.Normalize(d.Platform, d.PlatformPostID, d.EmbedURL)
	if n.Source == normalizer.SourceFallback {
		log.Warn("Could not derive a stable post id, using the raw id",
			"platform", d.Platform.String(),
			"raw_id", d.PlatformPostID,
			"url", d.EmbedURL,
		)
	}

	post, err := p.engine.UpsertPost(ctx, prof.ID, n.ID, d)
	if err != nil {
		return nil, "", err
	}
	return post, n.ID, nil
}

func unsuccessful(resp contentapi.Response) error {
	if resp.Error == "" {
		return errors.New("content api returned an unsuccessful response")
	}
	return errors.New(resp.Error)
}

func (p *Processor) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if p.cfg.FetchTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, p.cfg.FetchTimeout)
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
