package ingest

import (
	"context"

	"github.com/briidgedotone/narra/internal/contentapi"
	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/transformer"
	"github.com/briidgedotone/narra/pkg/retry"
)

type ImportResult struct {
	Profile  *domain.Profile
	Saved    int
	Rejected int
	Failed   int
}

// ImportProfile fetches a profile and its most recent posts and upserts
// all of them. No board is touched.
func (p *Processor) ImportProfile(ctx context.Context, handle string, platform domain.Platform, count int) (ImportResult, error) {
	log := p.logger.With("handle", handle, "platform", platform.String())

	raw, err := p.fetchWith(ctx, "fetch_profile", func(ctx context.Context) (contentapi.Response, error) {
		return p.api.FetchProfile(ctx, handle, platform)
	})
	if err != nil {
		return ImportResult{}, domain.FetchError(err, "failed to fetch profile "+handle)
	}

	profilePayload := transformer.Payload{Platform: platform, Shape: transformer.ShapeProfile, Raw: raw}
	draft, err := p.transformer.Profile(profilePayload)
	if err != nil {
		return ImportResult{}, err
	}
	prof, err := p.engine.UpsertProfile(ctx, draft)
	if err != nil {
		return ImportResult{}, err
	}
	res := ImportResult{Profile: prof}

	raw, err = p.fetchWith(ctx, "fetch_posts", func(ctx context.Context) (contentapi.Response, error) {
		return p.api.FetchPosts(ctx, handle, platform, count)
	})
	if err != nil {
		return res, domain.FetchError(err, "failed to fetch posts for "+handle)
	}

	list, err := p.transformer.Posts(transformer.Payload{
		Platform: platform,
		Shape:    transformer.ShapePostList,
		Raw:      raw,
		Owner:    transformer.OwnerFromProfile(draft),
	})
	if err != nil {
		return res, err
	}
	for _, rej := range list.Rejected {
		log.Warn("Post rejected during profile import", "error", rej)
	}
	res.Rejected = len(list.Rejected)

	for _, d := range list.Drafts {
		if count > 0 && res.Saved+res.Failed >= count {
			break
		}
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if _, _, err := p.persist(ctx, log, d); err != nil {
			log.Error("Failed to save imported post", "platform_post_id", d.PlatformPostID, "error", err)
			res.Failed++
			continue
		}
		res.Saved++
	}

	log.Info("Profile imported", "profile_id", prof.ID, "saved", res.Saved, "rejected", res.Rejected, "failed", res.Failed)
	return res, nil
}

func (p *Processor) fetchWith(ctx context.Context, name string, call func(ctx context.Context) (contentapi.Response, error)) ([]byte, error) {
	var data []byte
	err := retry.Do(ctx, p.logger, name, func() error {
		fetchCtx, cancel := p.withTimeout(ctx)
		defer cancel()

		resp, err := call(fetchCtx)
		if err != nil {
			return err
		}
		if !resp.Success {
			return retry.Permanent(unsuccessful(resp))
		}
		if resp.Cached {
			p.logger.Debug("Served from cache", "operation", name)
		}
		data = resp.Data
		return nil
	}, p.cfg.Retry)
	return data, err
}
