// Package impl is implementation of service interface.
package impl

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/plumenet/plume/internal/entities"
	"github.com/plumenet/plume/internal/service"
	"github.com/plumenet/plume/internal/storage"
)

type srv struct {
	s             storage.Storage
	maxPostLength int
}

// New creates new instance of service.
func New(s storage.Storage, maxPostLength int) service.Service {
	return srv{
		s:             s,
		maxPostLength: maxPostLength,
	}
}

func (s srv) CreatePost(ctx context.Context, author, text, mediaHandle string) (*entities.Post, error) {
	if author == "" {
		return nil, fmt.Errorf("%w: author is empty", service.ErrInvalidRequest)
	}

	if text == "" {
		return nil, fmt.Errorf("%w: text is empty", service.ErrInvalidRequest)
	}

	if len(text) > s.maxPostLength {
		return nil, fmt.Errorf("%w: text is longer than %d", service.ErrInvalidRequest, s.maxPostLength)
	}

	p := entities.Post{
		ID:     uuid.New().String(),
		Author: author,
		Text:   text,
		// truncated to microseconds to survive the postgres round-trip
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}

	if mediaHandle == "" {
		if err := s.s.CreatePost(ctx, &p); err != nil {
			return nil, fmt.Errorf("failed to create post on storage side: %w", err)
		}

		return &p, nil
	}

	// the claim and the insert share a tx so a failed insert releases
	// the handle
	if err := s.s.InTx(ctx, func(tx storage.Storage) error {
		ref, err := tx.ClaimMediaRef(ctx, mediaHandle, p.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return fmt.Errorf("%w: media is unknown or already attached", service.ErrInvalidRequest)
			}

			return fmt.Errorf("failed to claim media: %w", err)
		}

		p.Media = ref

		if err := tx.CreatePost(ctx, &p); err != nil {
			return fmt.Errorf("failed to create post on storage side: %w", err)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return &p, nil
}

func (s srv) GetPost(ctx context.Context, id, requestedBy string) (*service.PostView, error) {
	p, err := s.s.GetPost(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrNotFound
		}

		return nil, fmt.Errorf("failed to get post on storage side: %w", err)
	}

	likes, err := s.s.LikeCount(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get like count: %w", err)
	}

	out := service.PostView{
		Post:  *p,
		Likes: likes,
	}

	if requestedBy != "" {
		liked, err := s.s.HasLiked(ctx, id, requestedBy)
		if err != nil {
			return nil, fmt.Errorf("failed to get like state: %w", err)
		}

		out.Liked = liked
	}

	return &out, nil
}

func (s srv) Follow(ctx context.Context, follower, followee string) error {
	if follower == "" || followee == "" {
		return fmt.Errorf("%w: empty follower or followee", service.ErrInvalidRequest)
	}

	if follower == followee {
		return service.ErrSelfFollow
	}

	if err := s.s.Follow(ctx, follower, followee); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return service.ErrAlreadyFollowing
		}

		return fmt.Errorf("failed to follow on storage side: %w", err)
	}

	return nil
}

func (s srv) Unfollow(ctx context.Context, follower, followee string) error {
	if follower == "" || followee == "" {
		return fmt.Errorf("%w: empty follower or followee", service.ErrInvalidRequest)
	}

	if err := s.s.Unfollow(ctx, follower, followee); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return service.ErrNotFollowing
		}

		return fmt.Errorf("failed to unfollow on storage side: %w", err)
	}

	return nil
}

func (s srv) Followees(ctx context.Context, user string) ([]string, error) {
	out, err := s.s.Followees(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to get followees on storage side: %w", err)
	}

	return out, nil
}

func (s srv) ToggleLike(ctx context.Context, user, postID string) (*service.ToggleResult, error) {
	if user == "" {
		return nil, fmt.Errorf("%w: user is empty", service.ErrInvalidRequest)
	}

	res, err := s.s.ToggleLike(ctx, postID, user, time.Now().UTC().Truncate(time.Microsecond))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, service.ErrNotFound
		}

		return nil, fmt.Errorf("failed to toggle like on storage side: %w", err)
	}

	return &service.ToggleResult{
		Liked: res.Liked,
		Likes: res.Likes,
	}, nil
}

func (s srv) ReconcileLikes(ctx context.Context, postID string) (uint32, error) {
	likes, err := s.s.ReconcileLikes(ctx, postID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return 0, service.ErrNotFound
		}

		return 0, fmt.Errorf("failed to reconcile likes on storage side: %w", err)
	}

	return likes, nil
}

func (s srv) GetFeed(ctx context.Context, requester string, before time.Time, limit uint16) (*service.FeedPage, error) {
	if requester == "" {
		return nil, fmt.Errorf("%w: requester is empty", service.ErrInvalidRequest)
	}

	if limit == 0 {
		return nil, fmt.Errorf("%w: limit is zero", service.ErrInvalidRequest)
	}

	followees, err := s.s.Followees(ctx, requester)
	if err != nil {
		return nil, fmt.Errorf("failed to get followees: %w", err)
	}

	if len(followees) == 0 {
		return &service.FeedPage{Items: []service.FeedItem{}}, nil
	}

	posts, err := s.s.ListPostsByAuthors(ctx, &storage.ListPostsByAuthorsParams{
		Authors: followees,
		Before:  before,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	items := make([]service.FeedItem, len(posts))

	// engagement lookups are independent reads, fan them out
	g, ctx := errgroup.WithContext(ctx)
	for i := range posts {
		i := i
		p := posts[i]

		g.Go(func() error {
			liked, err := s.s.HasLiked(ctx, p.ID, requester)
			if err != nil {
				return fmt.Errorf("failed to get like state: %w", err)
			}

			likes, err := s.s.LikeCount(ctx, p.ID)
			if err != nil {
				return fmt.Errorf("failed to get like count: %w", err)
			}

			items[i] = service.FeedItem{
				Post:  *p,
				Liked: liked,
				Likes: likes,
			}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to assemble feed: %w", err)
	}

	out := service.FeedPage{Items: items}

	if len(posts) == int(limit) {
		t := posts[len(posts)-1].CreatedAt
		out.NextBefore = &t
	}

	return &out, nil
}

func (s srv) GetStats(ctx context.Context) (*service.Stats, error) {
	st, err := s.s.GetStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get stats on storage side: %w", err)
	}

	return &service.Stats{
		Posts:   st.Posts,
		Likes:   st.Likes,
		Follows: st.Follows,
	}, nil
}
