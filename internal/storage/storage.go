// Package storage contains a storage interface.
package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/plumenet/plume/internal/entities"
)

//go:generate mockgen -destination=./mock/storage.go -package=mock -source=storage.go

// ErrNotFound ...
var ErrNotFound = fmt.Errorf("not found")

// ErrAlreadyExists is returned when a unique row already exists.
var ErrAlreadyExists = fmt.Errorf("already exists")

// Storage provides methods for interacting with database.
type Storage interface {
	InTx(ctx context.Context, f func(s Storage) error) error

	CreatePost(ctx context.Context, p *entities.Post) error
	GetPost(ctx context.Context, id string) (*entities.Post, error)
	ListPostsByAuthors(ctx context.Context, p *ListPostsByAuthorsParams) ([]*entities.Post, error)

	RegisterMediaRef(ctx context.Context, ref *entities.MediaRef) error
	// ClaimMediaRef attaches an admitted unclaimed ref to a post.
	// A handle is claimable exactly once; a second claim returns ErrNotFound.
	ClaimMediaRef(ctx context.Context, handle, postID string) (*entities.MediaRef, error)

	Follow(ctx context.Context, follower, followee string) error
	Unfollow(ctx context.Context, follower, followee string) error
	Followees(ctx context.Context, follower string) ([]string, error)

	ToggleLike(ctx context.Context, postID, likedBy string, timestamp time.Time) (*ToggleLikeResult, error)
	LikeCount(ctx context.Context, postID string) (uint32, error)
	HasLiked(ctx context.Context, postID, likedBy string) (bool, error)
	ReconcileLikes(ctx context.Context, postID string) (uint32, error)
	ReconcileAllLikes(ctx context.Context) (int64, error)

	GetStats(ctx context.Context) (*Stats, error)
}

// ListPostsByAuthorsParams ...
// Zero Before means no upper bound on creation time.
type ListPostsByAuthorsParams struct {
	Authors []string
	Before  time.Time
	Limit   uint16
}

// ToggleLikeResult is the settled state of a like toggle.
type ToggleLikeResult struct {
	Liked bool
	Likes uint32
}

// Stats represents service-wide counters.
type Stats struct {
	Posts   int64
	Likes   int64
	Follows int64
}
