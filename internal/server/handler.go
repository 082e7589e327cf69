package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi"

	"github.com/plumenet/plume/internal/media"
	"github.com/plumenet/plume/internal/service"
)

var errInvalidRequest = errors.New("invalid request")

// requesterHeader carries the already-authenticated user id, set by the
// auth layer in front of this service.
const requesterHeader = "X-Requester-ID"

func (s server) createPost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts Posts CreatePost
	//
	// Create a new post.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: X-Requester-ID
	//   description: authenticated author of the post
	//   in: header
	//   required: true
	//   type: string
	// - name: body
	//   in: body
	//   required: true
	//   schema:
	//     "$ref": "#/definitions/CreatePostRequest"
	// responses:
	//   '201':
	//     description: Post
	//     schema:
	//       "$ref": "#/definitions/PostResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	requester := r.Header.Get(requesterHeader)
	if requester == "" {
		writeError(w, http.StatusBadRequest, "requester is not set")
		return
	}

	var req CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "failed to decode request")
		return
	}

	p, err := s.s.CreatePost(r.Context(), requester, req.Text, req.MediaHandle)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternalError(r.Context(), w, fmt.Sprintf("failed to create post: %s", err.Error()))
		return
	}

	writeOK(w, http.StatusCreated, PostResponse{Post: toAPIPost(p)})
}

func (s server) getPost(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /posts/{id} Posts GetPost
	//
	// Get post by id with like count and requester's like state.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: string
	// - name: X-Requester-ID
	//   description: adds liked flag to response
	//   in: header
	//   required: false
	//   type: string
	// responses:
	//   '200':
	//     description: Post
	//     schema:
	//       "$ref": "#/definitions/PostResponse"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}

	v, err := s.s.GetPost(r.Context(), id, r.Header.Get(requesterHeader))
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			writeError(w, http.StatusNotFound, "post not found")
			return
		}
		writeInternalError(r.Context(), w, fmt.Sprintf("failed to get post: %s", err.Error()))
		return
	}

	writeOK(w, http.StatusOK, PostResponse{
		Post:       toAPIPost(&v.Post),
		Liked:      v.Liked,
		LikesCount: v.Likes,
	})
}

func (s server) toggleLike(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /posts/{id}/like Likes ToggleLike
	//
	// Toggle requester's like on a post. A repeated call returns the like
	// to its prior state.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: id
	//   in: path
	//   required: true
	//   type: string
	// - name: X-Requester-ID
	//   in: header
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: settled like state
	//     schema:
	//       "$ref": "#/definitions/ToggleLikeResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '404':
	//     description: post not found
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	requester := r.Header.Get(requesterHeader)
	if requester == "" {
		writeError(w, http.StatusBadRequest, "requester is not set")
		return
	}

	res, err := s.s.ToggleLike(r.Context(), requester, chi.URLParam(r, "id"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			writeError(w, http.StatusNotFound, "post not found")
		case errors.Is(err, service.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeInternalError(r.Context(), w, fmt.Sprintf("failed to toggle like: %s", err.Error()))
		}
		return
	}

	writeOK(w, http.StatusOK, ToggleLikeResponse{
		Liked:      res.Liked,
		LikesCount: res.Likes,
	})
}

func (s server) uploadMedia(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /media Media UploadMedia
	//
	// Upload an image attachment. The returned ref is passed back on post
	// creation.
	//
	// ---
	// consumes:
	// - multipart/form-data
	// produces:
	// - application/json
	// parameters:
	// - name: X-Requester-ID
	//   in: header
	//   required: true
	//   type: string
	// - name: file
	//   in: formData
	//   required: true
	//   type: file
	// responses:
	//   '201':
	//     description: MediaRef
	//     schema:
	//       "$ref": "#/definitions/MediaRef"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	if requester := r.Header.Get(requesterHeader); requester == "" {
		writeError(w, http.StatusBadRequest, "requester is not set")
		return
	}

	f, fh, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read file")
		return
	}
	defer f.Close()

	ref, err := s.a.Admit(r.Context(), media.Candidate{
		SizeBytes:   fh.Size,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     f,
	})
	if err != nil {
		if errors.Is(err, media.ErrTooLarge) || errors.Is(err, media.ErrUnsupportedType) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternalError(r.Context(), w, fmt.Sprintf("failed to save media: %s", err.Error()))
		return
	}

	writeOK(w, http.StatusCreated, MediaRef{
		Handle:      ref.Handle,
		ContentType: ref.ContentType,
		SizeBytes:   ref.SizeBytes,
	})
}

func (s server) follow(w http.ResponseWriter, r *http.Request) {
	// swagger:operation POST /users/{followee}/follow Follows Follow
	//
	// Follow a user.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: followee
	//   in: path
	//   required: true
	//   type: string
	// - name: X-Requester-ID
	//   in: header
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: followed
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '409':
	//     description: already following
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	requester := r.Header.Get(requesterHeader)
	if requester == "" {
		writeError(w, http.StatusBadRequest, "requester is not set")
		return
	}

	if err := s.s.Follow(r.Context(), requester, chi.URLParam(r, "followee")); err != nil {
		switch {
		case errors.Is(err, service.ErrSelfFollow):
			writeError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrAlreadyFollowing):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeInternalError(r.Context(), w, fmt.Sprintf("failed to follow: %s", err.Error()))
		}
		return
	}

	writeOK(w, http.StatusOK, struct{}{})
}

func (s server) unfollow(w http.ResponseWriter, r *http.Request) {
	// swagger:operation DELETE /users/{followee}/follow Follows Unfollow
	//
	// Unfollow a user.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: followee
	//   in: path
	//   required: true
	//   type: string
	// - name: X-Requester-ID
	//   in: header
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: unfollowed
	//   '409':
	//     description: not following
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	requester := r.Header.Get(requesterHeader)
	if requester == "" {
		writeError(w, http.StatusBadRequest, "requester is not set")
		return
	}

	if err := s.s.Unfollow(r.Context(), requester, chi.URLParam(r, "followee")); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFollowing):
			writeError(w, http.StatusConflict, err.Error())
		case errors.Is(err, service.ErrInvalidRequest):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeInternalError(r.Context(), w, fmt.Sprintf("failed to unfollow: %s", err.Error()))
		}
		return
	}

	writeOK(w, http.StatusOK, struct{}{})
}

func (s server) followees(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /users/{user}/followees Follows Followees
	//
	// List users the given user follows.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: user
	//   in: path
	//   required: true
	//   type: string
	// responses:
	//   '200':
	//     description: followees
	//     schema:
	//       "$ref": "#/definitions/FolloweesResponse"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	out, err := s.s.Followees(r.Context(), chi.URLParam(r, "user"))
	if err != nil {
		writeInternalError(r.Context(), w, fmt.Sprintf("failed to get followees: %s", err.Error()))
		return
	}

	writeOK(w, http.StatusOK, FolloweesResponse{Followees: out})
}

func (s server) getFeed(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /feed Feed GetFeed
	//
	// Return requester's feed: posts of followed users, newest first.
	//
	// ---
	// produces:
	// - application/json
	// parameters:
	// - name: X-Requester-ID
	//   in: header
	//   required: true
	//   type: string
	// - name: before
	//   description: upper bound on post creation time, unix nanoseconds
	//   in: query
	//   required: false
	// - name: limit
	//   description: limits count of returned posts
	//   in: query
	//   required: false
	//   default: 20
	//   minimum: 1
	//   maximum: 100
	// responses:
	//   '200':
	//     description: feed page
	//     schema:
	//       "$ref": "#/definitions/FeedResponse"
	//   '400':
	//     description: bad request
	//     schema:
	//       "$ref": "#/definitions/Error"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	requester := r.Header.Get(requesterHeader)
	if requester == "" {
		writeError(w, http.StatusBadRequest, "requester is not set")
		return
	}

	before, limit, err := extractFeedParamsFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := s.s.GetFeed(r.Context(), requester, before, limit)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeInternalError(r.Context(), w, fmt.Sprintf("failed to get feed: %s", err.Error()))
		return
	}

	writeOK(w, http.StatusOK, toAPIFeed(page))
}

func (s server) getStats(w http.ResponseWriter, r *http.Request) {
	// swagger:operation GET /stats Stats GetStats
	//
	// Returns service-wide counters.
	//
	// ---
	// produces:
	// - application/json
	// responses:
	//   '200':
	//     description: Stats
	//     schema:
	//       "$ref": "#/definitions/StatsResponse"
	//   '500':
	//     description: internal server error
	//     schema:
	//       "$ref": "#/definitions/Error"

	stats, err := s.s.GetStats(r.Context())
	if err != nil {
		writeInternalError(r.Context(), w, fmt.Sprintf("failed to get stats: %s", err.Error()))
		return
	}

	writeOK(w, http.StatusOK, StatsResponse{
		Posts:   stats.Posts,
		Likes:   stats.Likes,
		Follows: stats.Follows,
	})
}

func extractFeedParamsFromQuery(q url.Values) (time.Time, uint16, error) {
	var before time.Time // zero means no upper bound

	if s := q.Get("before"); s != "" {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return time.Time{}, 0, fmt.Errorf("%w: failed to parse before", errInvalidRequest)
		}

		before = time.Unix(0, v).UTC()
	}

	limit := uint16(defaultLimit)

	if s := q.Get("limit"); s != "" {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return time.Time{}, 0, fmt.Errorf("%w: failed to parse limit", errInvalidRequest)
		}

		if v > maxLimit {
			return time.Time{}, 0, fmt.Errorf("%w: limit is too big", errInvalidRequest)
		}

		limit = uint16(v)
	}

	return before, limit, nil
}
