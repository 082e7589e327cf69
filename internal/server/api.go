package server

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/sirupsen/logrus"

	"github.com/plumenet/plume/internal/entities"
	"github.com/plumenet/plume/internal/service"
)

const maxLimit = 100
const defaultLimit = 20

// Error ...
// swagger:model
type Error struct {
	Error string `json:"error"`
}

// MediaRef ...
// swagger:model
type MediaRef struct {
	Handle      string `json:"handle"`
	ContentType string `json:"contentType"`
	SizeBytes   int64  `json:"sizeBytes"`
}

// Post ...
type Post struct {
	ID     string    `json:"id"`
	Author string    `json:"author"`
	Text   string    `json:"text"`
	Media  *MediaRef `json:"media,omitempty"`
	// CreatedAt is unix nanoseconds.
	CreatedAt int64 `json:"createdAt"`
}

// CreatePostRequest ...
// MediaHandle is the handle returned by media upload; a handle can be
// attached to at most one post.
// swagger:model
type CreatePostRequest struct {
	Text        string `json:"text"`
	MediaHandle string `json:"mediaHandle,omitempty"`
}

// PostResponse ...
// swagger:model
type PostResponse struct {
	Post       Post   `json:"post"`
	Liked      bool   `json:"liked"`
	LikesCount uint32 `json:"likesCount"`
}

// ToggleLikeResponse ...
// swagger:model
type ToggleLikeResponse struct {
	Liked      bool   `json:"liked"`
	LikesCount uint32 `json:"likesCount"`
}

// FeedItem ...
type FeedItem struct {
	Post       Post   `json:"post"`
	Liked      bool   `json:"liked"`
	LikesCount uint32 `json:"likesCount"`
}

// FeedResponse ...
// swagger:model
type FeedResponse struct {
	Items []FeedItem `json:"items"`
	// NextBefore is the pagination cursor, unix nanoseconds.
	// Absent when the feed is exhausted.
	NextBefore *int64 `json:"nextBefore,omitempty"`
}

// FolloweesResponse ...
// swagger:model
type FolloweesResponse struct {
	Followees []string `json:"followees"`
}

// StatsResponse ...
// swagger:model
type StatsResponse struct {
	Posts   int64 `json:"posts"`
	Likes   int64 `json:"likes"`
	Follows int64 `json:"follows"`
}

func toAPIPost(p *entities.Post) Post {
	out := Post{
		ID:        p.ID,
		Author:    p.Author,
		Text:      p.Text,
		CreatedAt: p.CreatedAt.UnixNano(),
	}

	if p.Media != nil {
		out.Media = &MediaRef{
			Handle:      p.Media.Handle,
			ContentType: p.Media.ContentType,
			SizeBytes:   p.Media.SizeBytes,
		}
	}

	return out
}

func toAPIFeed(p *service.FeedPage) FeedResponse {
	out := FeedResponse{
		Items: make([]FeedItem, len(p.Items)),
	}

	for i, v := range p.Items {
		out.Items[i] = FeedItem{
			Post:       toAPIPost(&v.Post),
			Liked:      v.Liked,
			LikesCount: v.Likes,
		}
	}

	if p.NextBefore != nil {
		c := p.NextBefore.UnixNano()
		out.NextBefore = &c
	}

	return out
}

func writeOK(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Error("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeOK(w, status, Error{Error: message})
}

func writeInternalError(ctx context.Context, w http.ResponseWriter, message string) {
	logrus.WithField("request_id", middleware.GetReqID(ctx)).Error(message)

	writeError(w, http.StatusInternalServerError, "internal error")
}
