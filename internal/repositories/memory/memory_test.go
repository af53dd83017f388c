package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/repositories"
)

func TestBoardPostUniqueness(t *testing.T) {
	ctx := context.Background()
	s := New()
	repo := s.BoardPosts()

	if err := repo.Insert(ctx, domain.BoardPost{BoardID: "b1", PostID: "p1"}); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := repo.Insert(ctx, domain.BoardPost{BoardID: "b1", PostID: "p1"})
	if !errors.Is(err, repositories.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
	if _, _, n := s.Counts(); n != 1 {
		t.Fatalf("expected one board post, got %d", n)
	}
}

func TestPostUpsertKeepsIdentityAndTranscript(t *testing.T) {
	ctx := context.Background()
	s := New()
	repo := s.Posts()

	first, err := repo.Upsert(ctx, domain.Post{Platform: domain.PlatformTikTok, PlatformPostID: "1", ProfileID: "prof", IsVideo: true})
	if err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateTranscript(ctx, first.ID, "hello"); err != nil {
		t.Fatal(err)
	}

	second, err := repo.Upsert(ctx, domain.Post{Platform: domain.PlatformTikTok, PlatformPostID: "1", ProfileID: "other", Caption: "new"})
	if err != nil {
		t.Fatal(err)
	}
	if second.ID != first.ID || second.ProfileID != "prof" || second.Transcript != "hello" {
		t.Fatalf("unexpected row after conflict: %+v", second)
	}

	missing, err := repo.ListMissingTranscript(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(missing) != 0 {
		t.Fatalf("expected no posts missing transcripts, got %d", len(missing))
	}
}

func TestNotFound(t *testing.T) {
	ctx := context.Background()
	s := New()

	if _, err := s.Profiles().FindByHandle(ctx, "x", domain.PlatformInstagram); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("profile: %v", err)
	}
	if _, err := s.Posts().FindByPlatformID(ctx, domain.PlatformInstagram, "x"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("post: %v", err)
	}
	if _, err := s.Boards().GetByID(ctx, "x"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("board: %v", err)
	}
	if err := s.Posts().UpdateTranscript(ctx, "x", "t"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("transcript: %v", err)
	}
}
