package impl

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumenet/plume/internal/entities"
	"github.com/plumenet/plume/internal/service"
	storageinterface "github.com/plumenet/plume/internal/storage"
	storage "github.com/plumenet/plume/internal/storage/mock"
)

const maxPostLength = 280

func TestSrv_CreatePost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	s.EXPECT().CreatePost(gomock.Any(), gomock.Any()).Do(func(_ context.Context, p *entities.Post) {
		assert.NotEmpty(t, p.ID)
		assert.Equal(t, "author", p.Author)
		assert.Equal(t, "text", p.Text)
		assert.Nil(t, p.Media)
		assert.False(t, p.CreatedAt.IsZero())
		assert.Equal(t, p.CreatedAt, p.CreatedAt.Truncate(time.Microsecond))
	}).Return(nil)

	p, err := srv.CreatePost(context.Background(), "author", "text", "")
	require.NoError(t, err)
	require.NotNil(t, p)

	s.EXPECT().CreatePost(gomock.Any(), gomock.Any()).Return(context.Canceled)
	_, err = srv.CreatePost(context.Background(), "author", "text", "")
	require.Error(t, err)
}

func TestSrv_CreatePost_WithMedia(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	ref := &entities.MediaRef{
		Handle:      "handle.png",
		ContentType: "image/png",
		SizeBytes:   100,
	}

	s.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f func(storageinterface.Storage) error) error {
		return f(s)
	})
	s.EXPECT().ClaimMediaRef(gomock.Any(), "handle.png", gomock.Any()).DoAndReturn(
		func(_ context.Context, _, postID string) (*entities.MediaRef, error) {
			assert.NotEmpty(t, postID)
			return ref, nil
		})
	s.EXPECT().CreatePost(gomock.Any(), gomock.Any()).Do(func(_ context.Context, p *entities.Post) {
		assert.Equal(t, ref, p.Media)
	}).Return(nil)

	p, err := srv.CreatePost(context.Background(), "author", "text", "handle.png")
	require.NoError(t, err)
	require.Equal(t, ref, p.Media)
}

func TestSrv_CreatePost_MediaAlreadyAttached(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	// unknown and already-claimed handles are indistinguishable, both are
	// rejected before any post row is written
	s.EXPECT().InTx(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, f func(storageinterface.Storage) error) error {
		return f(s)
	})
	s.EXPECT().ClaimMediaRef(gomock.Any(), "handle.png", gomock.Any()).Return(nil, storageinterface.ErrNotFound)

	_, err := srv.CreatePost(context.Background(), "author", "text", "handle.png")
	require.True(t, errors.Is(err, service.ErrInvalidRequest))
}

func TestSrv_CreatePost_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	tt := []struct {
		name   string
		author string
		text   string
	}{
		{name: "empty_author", author: "", text: "text"},
		{name: "empty_text", author: "author", text: ""},
		{name: "too_long_text", author: "author", text: string(make([]byte, maxPostLength+1))},
	}

	for i := range tt {
		tc := tt[i]

		t.Run(tc.name, func(t *testing.T) {
			_, err := srv.CreatePost(context.Background(), tc.author, tc.text, "")
			require.True(t, errors.Is(err, service.ErrInvalidRequest))
		})
	}
}

func TestSrv_GetPost(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	p := &entities.Post{
		ID:        "1",
		Author:    "2",
		Text:      "3",
		CreatedAt: time.Now(),
	}

	s.EXPECT().GetPost(gomock.Any(), "1").Return(p, nil)
	s.EXPECT().LikeCount(gomock.Any(), "1").Return(uint32(5), nil)
	s.EXPECT().HasLiked(gomock.Any(), "1", "requester").Return(true, nil)

	v, err := srv.GetPost(context.Background(), "1", "requester")
	require.NoError(t, err)
	assert.Equal(t, *p, v.Post)
	assert.True(t, v.Liked)
	assert.EqualValues(t, 5, v.Likes)
}

func TestSrv_GetPost_Anonymous(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	s.EXPECT().GetPost(gomock.Any(), "1").Return(&entities.Post{ID: "1"}, nil)
	s.EXPECT().LikeCount(gomock.Any(), "1").Return(uint32(0), nil)

	v, err := srv.GetPost(context.Background(), "1", "")
	require.NoError(t, err)
	assert.False(t, v.Liked)
}

func TestSrv_GetPost_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	s.EXPECT().GetPost(gomock.Any(), "1").Return(nil, storageinterface.ErrNotFound)

	_, err := srv.GetPost(context.Background(), "1", "")
	require.True(t, errors.Is(err, service.ErrNotFound))
}

func TestSrv_Follow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	s.EXPECT().Follow(gomock.Any(), "follower", "followee").Return(nil)
	require.NoError(t, srv.Follow(context.Background(), "follower", "followee"))

	s.EXPECT().Follow(gomock.Any(), "follower", "followee").Return(storageinterface.ErrAlreadyExists)
	require.True(t, errors.Is(srv.Follow(context.Background(), "follower", "followee"), service.ErrAlreadyFollowing))

	s.EXPECT().Follow(gomock.Any(), "follower", "followee").Return(context.Canceled)
	require.Error(t, srv.Follow(context.Background(), "follower", "followee"))
}

func TestSrv_Follow_Self(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	// no storage calls are expected
	require.True(t, errors.Is(srv.Follow(context.Background(), "user", "user"), service.ErrSelfFollow))
}

func TestSrv_Unfollow(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	s.EXPECT().Unfollow(gomock.Any(), "follower", "followee").Return(nil)
	require.NoError(t, srv.Unfollow(context.Background(), "follower", "followee"))

	s.EXPECT().Unfollow(gomock.Any(), "follower", "followee").Return(storageinterface.ErrNotFound)
	require.True(t, errors.Is(srv.Unfollow(context.Background(), "follower", "followee"), service.ErrNotFollowing))
}

func TestSrv_Followees(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	s.EXPECT().Followees(gomock.Any(), "user").Return([]string{"a", "b"}, nil)

	out, err := srv.Followees(context.Background(), "user")
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, out)
}

func TestSrv_ToggleLike(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	s.EXPECT().ToggleLike(gomock.Any(), "post", "user", gomock.Any()).
		Return(&storageinterface.ToggleLikeResult{Liked: true, Likes: 3}, nil)

	res, err := srv.ToggleLike(context.Background(), "user", "post")
	require.NoError(t, err)
	assert.True(t, res.Liked)
	assert.EqualValues(t, 3, res.Likes)

	s.EXPECT().ToggleLike(gomock.Any(), "post", "user", gomock.Any()).Return(nil, storageinterface.ErrNotFound)
	_, err = srv.ToggleLike(context.Background(), "user", "post")
	require.True(t, errors.Is(err, service.ErrNotFound))
}

func TestSrv_ReconcileLikes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	s.EXPECT().ReconcileLikes(gomock.Any(), "post").Return(uint32(7), nil)

	likes, err := srv.ReconcileLikes(context.Background(), "post")
	require.NoError(t, err)
	require.EqualValues(t, 7, likes)
}

func TestSrv_GetFeed_Validation(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	_, err := srv.GetFeed(context.Background(), "user", time.Time{}, 0)
	require.True(t, errors.Is(err, service.ErrInvalidRequest))

	_, err = srv.GetFeed(context.Background(), "", time.Time{}, 10)
	require.True(t, errors.Is(err, service.ErrInvalidRequest))
}

func TestSrv_GetFeed_NoFollowees(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	s.EXPECT().Followees(gomock.Any(), "user").Return([]string{}, nil)

	page, err := srv.GetFeed(context.Background(), "user", time.Time{}, 10)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.Nil(t, page.NextBefore)
}

func TestSrv_GetFeed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	// a follows b and c; b posted at t=10, c at t=20;
	// a's own post never appears because a can not follow itself
	pb := &entities.Post{ID: "pb", Author: "b", Text: "b post", CreatedAt: time.Unix(10, 0)}
	pc := &entities.Post{ID: "pc", Author: "c", Text: "c post", CreatedAt: time.Unix(20, 0)}

	s.EXPECT().Followees(gomock.Any(), "a").Return([]string{"b", "c"}, nil)
	s.EXPECT().ListPostsByAuthors(gomock.Any(), gomock.Any()).Do(func(_ context.Context, p *storageinterface.ListPostsByAuthorsParams) {
		assert.Equal(t, []string{"b", "c"}, p.Authors)
		assert.EqualValues(t, 10, p.Limit)
	}).Return([]*entities.Post{pc, pb}, nil)

	s.EXPECT().HasLiked(gomock.Any(), "pc", "a").Return(true, nil)
	s.EXPECT().LikeCount(gomock.Any(), "pc").Return(uint32(2), nil)
	s.EXPECT().HasLiked(gomock.Any(), "pb", "a").Return(false, nil)
	s.EXPECT().LikeCount(gomock.Any(), "pb").Return(uint32(0), nil)

	page, err := srv.GetFeed(context.Background(), "a", time.Unix(100, 0), 10)
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, *pc, page.Items[0].Post)
	assert.True(t, page.Items[0].Liked)
	assert.EqualValues(t, 2, page.Items[0].Likes)
	assert.Equal(t, *pb, page.Items[1].Post)
	assert.False(t, page.Items[1].Liked)

	// fewer posts than limit, the feed is exhausted
	assert.Nil(t, page.NextBefore)
}

func TestSrv_GetFeed_Cursor(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	p3 := &entities.Post{ID: "3", Author: "b", CreatedAt: time.Unix(3, 0)}
	p2 := &entities.Post{ID: "2", Author: "b", CreatedAt: time.Unix(2, 0)}
	p1 := &entities.Post{ID: "1", Author: "b", CreatedAt: time.Unix(1, 0)}

	s.EXPECT().Followees(gomock.Any(), "a").Return([]string{"b"}, nil)
	s.EXPECT().ListPostsByAuthors(gomock.Any(), gomock.Any()).Return([]*entities.Post{p3, p2}, nil)
	s.EXPECT().HasLiked(gomock.Any(), gomock.Any(), "a").Return(false, nil).Times(2)
	s.EXPECT().LikeCount(gomock.Any(), gomock.Any()).Return(uint32(0), nil).Times(2)

	page, err := srv.GetFeed(context.Background(), "a", time.Time{}, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	require.NotNil(t, page.NextBefore)
	require.Equal(t, time.Unix(2, 0), *page.NextBefore)

	// follow-up page bounded by the cursor
	s.EXPECT().Followees(gomock.Any(), "a").Return([]string{"b"}, nil)
	s.EXPECT().ListPostsByAuthors(gomock.Any(), gomock.Any()).Do(func(_ context.Context, p *storageinterface.ListPostsByAuthorsParams) {
		assert.Equal(t, time.Unix(2, 0), p.Before)
	}).Return([]*entities.Post{p1}, nil)
	s.EXPECT().HasLiked(gomock.Any(), "1", "a").Return(false, nil)
	s.EXPECT().LikeCount(gomock.Any(), "1").Return(uint32(0), nil)

	page, err = srv.GetFeed(context.Background(), "a", *page.NextBefore, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	require.Nil(t, page.NextBefore)
}

func TestSrv_GetFeed_EngagementError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	s.EXPECT().Followees(gomock.Any(), "a").Return([]string{"b"}, nil)
	s.EXPECT().ListPostsByAuthors(gomock.Any(), gomock.Any()).Return([]*entities.Post{
		{ID: "pb", Author: "b", CreatedAt: time.Unix(10, 0)},
	}, nil)
	s.EXPECT().HasLiked(gomock.Any(), "pb", "a").Return(false, context.Canceled)

	_, err := srv.GetFeed(context.Background(), "a", time.Time{}, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to assemble feed")
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestSrv_GetStats(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := storage.NewMockStorage(ctrl)

	srv := New(s, maxPostLength)

	s.EXPECT().GetStats(gomock.Any()).Return(&storageinterface.Stats{Posts: 1, Likes: 2, Follows: 3}, nil)

	stats, err := srv.GetStats(context.Background())
	require.NoError(t, err)
	require.Equal(t, &service.Stats{Posts: 1, Likes: 2, Follows: 3}, stats)
}
