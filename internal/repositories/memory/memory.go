// Package memory is a process-local datastore with the same uniqueness
// guarantees as the Postgres schema. It backs dry runs and tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/briidgedotone/narra/internal/domain"
	"github.com/briidgedotone/narra/internal/repositories"
	"github.com/briidgedotone/narra/internal/repositories/board"
	"github.com/briidgedotone/narra/internal/repositories/boardpost"
	"github.com/briidgedotone/narra/internal/repositories/post"
	"github.com/briidgedotone/narra/internal/repositories/profile"
	"github.com/google/uuid"
)

type profileKey struct {
	handle   string
	platform domain.Platform
}

type postKey struct {
	platform domain.Platform
	id       string
}

type boardPostKey struct {
	boardID string
	postID  string
}

type Store struct {
	mu sync.Mutex

	profiles   map[profileKey]domain.Profile
	posts      map[postKey]domain.Post
	boardPosts map[boardPostKey]domain.BoardPost
	boards     map[string]domain.Board

	writes int
}

func New() *Store {
	return &Store{
		profiles:   make(map[profileKey]domain.Profile),
		posts:      make(map[postKey]domain.Post),
		boardPosts: make(map[boardPostKey]domain.BoardPost),
		boards:     make(map[string]domain.Board),
	}
}

func (s *Store) Profiles() profile.Repository     { return profiles{s} }
func (s *Store) Posts() post.Repository           { return posts{s} }
func (s *Store) BoardPosts() boardpost.Repository { return boardPosts{s} }
func (s *Store) Boards() board.Repository         { return boards{s} }

// AddBoard seeds a board; boards are never written by the pipeline itself.
func (s *Store) AddBoard(b domain.Board) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	s.boards[b.ID] = b
}

// Writes counts successful write operations of any kind.
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

// Counts returns the number of stored profiles, posts and board posts.
func (s *Store) Counts() (profiles, posts, boardPosts int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.profiles), len(s.posts), len(s.boardPosts)
}

type profiles struct{ s *Store }

func (r profiles) FindByHandle(_ context.Context, handle string, platform domain.Platform) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.profiles[profileKey{handle, platform}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &p, nil
}

func (r profiles) Upsert(_ context.Context, p domain.Profile) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := profileKey{p.Handle, p.Platform}
	if existing, ok := r.s.profiles[key]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.s.profiles[key] = p
	r.s.writes++
	return &p, nil
}

type posts struct{ s *Store }

func (r posts) FindByPlatformID(_ context.Context, platform domain.Platform, platformPostID string) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.posts[postKey{platform, platformPostID}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return clonePost(p), nil
}

func (r posts) Upsert(_ context.Context, p domain.Post) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := postKey{p.Platform, p.PlatformPostID}
	if existing, ok := r.s.posts[key]; ok {
		p.ID = existing.ID
		p.ProfileID = existing.ProfileID
		p.Transcript = existing.Transcript
		p.CreatedAt = existing.CreatedAt
		if p.DatePosted.IsZero() {
			p.DatePosted = existing.DatePosted
		}
	} else if p.ID == "" {
		p.ID = uuid.NewString()
	}
	r.s.posts[key] = *clonePost(p)
	r.s.writes++
	return clonePost(p), nil
}

func (r posts) ListMissingTranscript(_ context.Context, limit int) ([]*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var out []*domain.Post
	for _, p := range r.s.posts {
		if p.IsVideo && p.Transcript == "" {
			out = append(out, clonePost(p))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r posts) UpdateTranscript(_ context.Context, id, transcript string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for k, p := range r.s.posts {
		if p.ID == id {
			p.Transcript = transcript
			p.UpdatedAt = time.Now().UTC()
			r.s.posts[k] = p
			r.s.writes++
			return nil
		}
	}
	return repositories.ErrNotFound
}

type boardPosts struct{ s *Store }

func (r boardPosts) Find(_ context.Context, boardID, postID string) (*domain.BoardPost, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	bp, ok := r.s.boardPosts[boardPostKey{boardID, postID}]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &bp, nil
}

func (r boardPosts) Insert(_ context.Context, bp domain.BoardPost) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := boardPostKey{bp.BoardID, bp.PostID}
	if _, ok := r.s.boardPosts[key]; ok {
		return repositories.ErrAlreadyExists
	}
	if bp.ID == "" {
		bp.ID = uuid.NewString()
	}
	r.s.boardPosts[key] = bp
	r.s.writes++
	return nil
}

type boards struct{ s *Store }

func (r boards) GetByID(_ context.Context, id string) (*domain.Board, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	b, ok := r.s.boards[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &b, nil
}

func clonePost(p domain.Post) *domain.Post {
	if p.CarouselItems != nil {
		p.CarouselItems = append([]domain.CarouselItem(nil), p.CarouselItems...)
	}
	return &p
}
