// Package service contains service interface and related errors.
package service

import (
	"context"
	"errors"
	"time"

	"github.com/plumenet/plume/internal/entities"
)

//go:generate mockgen -destination=./mock/service.go -package=mock -source=service.go

// ErrNotFound is returned when a referenced post does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidRequest is returned when input violates a validation bound.
var ErrInvalidRequest = errors.New("invalid request")

// ErrSelfFollow ...
var ErrSelfFollow = errors.New("can not follow yourself")

// ErrAlreadyFollowing ...
var ErrAlreadyFollowing = errors.New("already following")

// ErrNotFollowing ...
var ErrNotFollowing = errors.New("not following")

// Service provides operations over posts, follows, likes and the feed.
// Media is referenced by the handle returned at upload, a handle attaches
// to at most one post.
type Service interface {
	CreatePost(ctx context.Context, author, text, mediaHandle string) (*entities.Post, error)
	GetPost(ctx context.Context, id, requestedBy string) (*PostView, error)

	Follow(ctx context.Context, follower, followee string) error
	Unfollow(ctx context.Context, follower, followee string) error
	Followees(ctx context.Context, user string) ([]string, error)

	ToggleLike(ctx context.Context, user, postID string) (*ToggleResult, error)
	ReconcileLikes(ctx context.Context, postID string) (uint32, error)

	GetFeed(ctx context.Context, requester string, before time.Time, limit uint16) (*FeedPage, error)

	GetStats(ctx context.Context) (*Stats, error)
}

// ToggleResult is the settled like state returned by a toggle, the caller
// never needs a separate read.
type ToggleResult struct {
	Liked bool
	Likes uint32
}

// PostView is a post annotated with the requester's engagement state.
type PostView struct {
	Post  entities.Post
	Liked bool
	Likes uint32
}

// FeedItem ...
type FeedItem struct {
	Post  entities.Post
	Liked bool
	Likes uint32
}

// FeedPage is a newest-first page of feed items.
// NextBefore is nil when the feed is exhausted.
type FeedPage struct {
	Items      []FeedItem
	NextBefore *time.Time
}

// Stats ...
type Stats struct {
	Posts   int64
	Likes   int64
	Follows int64
}
