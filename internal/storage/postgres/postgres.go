// Package postgres is implementation of storage interface.
package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/sirupsen/logrus"

	"github.com/plumenet/plume/internal/entities"
	"github.com/plumenet/plume/internal/storage"
)

var log = logrus.WithField("layer", "storage").WithField("package", "postgres")
var errBeginCalledWithinTx = errors.New("can not run InTx within tx")

const (
	foreignKeyViolation = "23503"
	uniqueViolation     = "23505"
)

type pg struct {
	ext sqlx.ExtContext
}

type postDTO struct {
	ID               string         `db:"id"`
	Author           string         `db:"author"`
	Text             string         `db:"text"`
	MediaHandle      sql.NullString `db:"media_handle"`
	MediaContentType sql.NullString `db:"media_content_type"`
	MediaSizeBytes   sql.NullInt64  `db:"media_size_bytes"`
	CreatedAt        time.Time      `db:"created_at"`
}

// New creates new instance of pg.
func New(db *sql.DB) storage.Storage {
	return pg{
		ext: sqlx.NewDb(db, "postgres"),
	}
}

func (s pg) InTx(ctx context.Context, f func(s storage.Storage) error) error {
	db, ok := s.ext.(*sqlx.DB)
	if !ok {
		return errBeginCalledWithinTx
	}

	tx, err := db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return fmt.Errorf("failed to create tx: %w", err)
	}

	if err := f(pg{ext: tx}); err != nil {
		if err := tx.Rollback(); err != nil {
			log.WithError(err).Error("failed to rollback tx")
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit tx: %w", err)
	}

	return nil
}

func (s pg) CreatePost(ctx context.Context, p *entities.Post) error {
	post := toPostDTO(p)

	if _, err := sqlx.NamedExecContext(ctx, s.ext,
		`
			INSERT INTO post(id, author, text, media_handle, media_content_type, media_size_bytes, created_at)
			VALUES(:id, :author, :text, :media_handle, :media_content_type, :media_size_bytes, :created_at)
		`, post,
	); err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) GetPost(ctx context.Context, id string) (*entities.Post, error) {
	var p postDTO

	if err := sqlx.GetContext(ctx, s.ext, &p, `
			SELECT id, author, text, media_handle, media_content_type, media_size_bytes, created_at
			FROM post
			WHERE id = $1
		`,
		id,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return fromPostDTO(&p), nil
}

func (s pg) ListPostsByAuthors(ctx context.Context, p *storage.ListPostsByAuthorsParams) ([]*entities.Post, error) {
	q := `
		SELECT id, author, text, media_handle, media_content_type, media_size_bytes, created_at
		FROM post
		WHERE author IN (?)
	`
	args := []interface{}{stringsUnique(p.Authors)}

	if !p.Before.IsZero() {
		q += ` AND created_at < ?`
		args = append(args, p.Before.UTC())
	}

	q += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, p.Limit)

	query, args, err := sqlx.In(q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to construct IN clause: %w", err)
	}

	var pp []*postDTO

	if err := sqlx.SelectContext(ctx, s.ext, &pp, s.ext.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	out := make([]*entities.Post, len(pp))
	for i, v := range pp {
		out[i] = fromPostDTO(v)
	}

	return out, nil
}

func (s pg) RegisterMediaRef(ctx context.Context, ref *entities.MediaRef) error {
	if _, err := s.ext.ExecContext(ctx,
		`
			INSERT INTO media(handle, content_type, size_bytes, created_at) VALUES($1, $2, $3, $4)
		`, ref.Handle, ref.ContentType, ref.SizeBytes, time.Now().UTC(),
	); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == uniqueViolation {
			return storage.ErrAlreadyExists
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) ClaimMediaRef(ctx context.Context, handle, postID string) (*entities.MediaRef, error) {
	var ref entities.MediaRef

	if err := sqlx.GetContext(ctx, s.ext, &ref,
		`
			UPDATE media SET post_id=$2
			WHERE handle=$1 AND post_id IS NULL
			RETURNING handle, content_type AS contenttype, size_bytes AS sizebytes
		`,
		handle, postID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to claim media: %w", err)
	}

	return &ref, nil
}

func (s pg) Follow(ctx context.Context, follower, followee string) error {
	if _, err := s.ext.ExecContext(ctx,
		`
			INSERT INTO follow(follower, followee) VALUES($1, $2)
		`, follower, followee,
	); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == uniqueViolation {
			return storage.ErrAlreadyExists
		}

		return fmt.Errorf("failed to exec: %w", err)
	}

	return nil
}

func (s pg) Unfollow(ctx context.Context, follower, followee string) error {
	res, err := s.ext.ExecContext(ctx,
		`
			DELETE FROM follow WHERE follower=$1 AND followee=$2
		`, follower, followee,
	)

	if err != nil {
		return fmt.Errorf("failed to exec: %w", err)
	}

	if c, _ := res.RowsAffected(); c == 0 {
		return storage.ErrNotFound
	}

	return nil
}

func (s pg) Followees(ctx context.Context, follower string) ([]string, error) {
	out := make([]string, 0)

	if err := sqlx.SelectContext(ctx, s.ext, &out,
		`SELECT followee FROM follow WHERE follower=$1 ORDER BY followee`,
		follower,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return out, nil
}

// ToggleLike creates or removes the (post, user) like row and adjusts the
// count within one tx. The advisory lock serializes toggles on the same
// pair; toggles on different pairs take different lock keys.
func (s pg) ToggleLike(ctx context.Context, postID, likedBy string, timestamp time.Time) (*storage.ToggleLikeResult, error) {
	if _, ok := s.ext.(*sqlx.DB); ok {
		var out *storage.ToggleLikeResult

		err := s.InTx(ctx, func(tx storage.Storage) error {
			res, err := tx.ToggleLike(ctx, postID, likedBy, timestamp)
			out = res
			return err
		})

		return out, err
	}

	if _, err := s.ext.ExecContext(ctx,
		`SELECT pg_advisory_xact_lock(hashtext($1), hashtext($2))`,
		postID, likedBy,
	); err != nil {
		return nil, fmt.Errorf("failed to lock like pair: %w", err)
	}

	var liked bool
	if err := sqlx.GetContext(ctx, s.ext, &liked,
		`SELECT EXISTS(SELECT 1 FROM "like" WHERE post_id=$1 AND liked_by=$2)`,
		postID, likedBy,
	); err != nil {
		return nil, fmt.Errorf("failed to query like: %w", err)
	}

	var likes uint32

	if liked {
		if _, err := s.ext.ExecContext(ctx,
			`DELETE FROM "like" WHERE post_id=$1 AND liked_by=$2`,
			postID, likedBy,
		); err != nil {
			return nil, fmt.Errorf("failed to exec: %w", err)
		}

		if err := sqlx.GetContext(ctx, s.ext, &likes,
			`UPDATE post SET likes = likes - 1 WHERE id=$1 RETURNING likes`,
			postID,
		); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, storage.ErrNotFound
			}

			return nil, fmt.Errorf("failed to adjust like count: %w", err)
		}

		return &storage.ToggleLikeResult{Liked: false, Likes: likes}, nil
	}

	if _, err := s.ext.ExecContext(ctx,
		`INSERT INTO "like"(post_id, liked_by, liked_at) VALUES($1, $2, $3)`,
		postID, likedBy, timestamp.UTC(),
	); err != nil {
		if err, ok := err.(*pq.Error); ok && err.Code == foreignKeyViolation {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to exec: %w", err)
	}

	if err := sqlx.GetContext(ctx, s.ext, &likes,
		`UPDATE post SET likes = likes + 1 WHERE id=$1 RETURNING likes`,
		postID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrNotFound
		}

		return nil, fmt.Errorf("failed to adjust like count: %w", err)
	}

	return &storage.ToggleLikeResult{Liked: true, Likes: likes}, nil
}

func (s pg) LikeCount(ctx context.Context, postID string) (uint32, error) {
	var likes uint32

	if err := sqlx.GetContext(ctx, s.ext, &likes,
		`SELECT likes FROM post WHERE id=$1`,
		postID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNotFound
		}

		return 0, fmt.Errorf("failed to query: %w", err)
	}

	return likes, nil
}

func (s pg) HasLiked(ctx context.Context, postID, likedBy string) (bool, error) {
	var liked bool

	if err := sqlx.GetContext(ctx, s.ext, &liked,
		`SELECT EXISTS(SELECT 1 FROM "like" WHERE post_id=$1 AND liked_by=$2)`,
		postID, likedBy,
	); err != nil {
		return false, fmt.Errorf("failed to query: %w", err)
	}

	return liked, nil
}

func (s pg) ReconcileLikes(ctx context.Context, postID string) (uint32, error) {
	var likes uint32

	if err := sqlx.GetContext(ctx, s.ext, &likes,
		`
			UPDATE post SET likes = (SELECT count(*) FROM "like" WHERE post_id=post.id)
			WHERE id=$1
			RETURNING likes
		`,
		postID,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, storage.ErrNotFound
		}

		return 0, fmt.Errorf("failed to exec: %w", err)
	}

	return likes, nil
}

func (s pg) ReconcileAllLikes(ctx context.Context) (int64, error) {
	res, err := s.ext.ExecContext(ctx,
		`
			UPDATE post SET likes = c.cnt
			FROM (
				SELECT p.id, count(l.post_id) AS cnt
				FROM post p LEFT JOIN "like" l ON l.post_id = p.id
				GROUP BY p.id
			) c
			WHERE post.id = c.id AND post.likes <> c.cnt
		`,
	)

	if err != nil {
		return 0, fmt.Errorf("failed to exec: %w", err)
	}

	corrected, _ := res.RowsAffected()

	return corrected, nil
}

func (s pg) GetStats(ctx context.Context) (*storage.Stats, error) {
	var out storage.Stats

	if err := sqlx.GetContext(ctx, s.ext, &out, `
			SELECT
				(SELECT count(*) FROM post) AS posts,
				(SELECT count(*) FROM "like") AS likes,
				(SELECT count(*) FROM follow) AS follows
		`,
	); err != nil {
		return nil, fmt.Errorf("failed to query: %w", err)
	}

	return &out, nil
}

func toPostDTO(p *entities.Post) postDTO {
	out := postDTO{
		ID:        p.ID,
		Author:    p.Author,
		Text:      p.Text,
		CreatedAt: p.CreatedAt.UTC(),
	}

	if p.Media != nil {
		out.MediaHandle = sql.NullString{String: p.Media.Handle, Valid: true}
		out.MediaContentType = sql.NullString{String: p.Media.ContentType, Valid: true}
		out.MediaSizeBytes = sql.NullInt64{Int64: p.Media.SizeBytes, Valid: true}
	}

	return out
}

func fromPostDTO(p *postDTO) *entities.Post {
	out := entities.Post{
		ID:        p.ID,
		Author:    p.Author,
		Text:      p.Text,
		CreatedAt: p.CreatedAt,
	}

	if p.MediaHandle.Valid {
		out.Media = &entities.MediaRef{
			Handle:      p.MediaHandle.String,
			ContentType: p.MediaContentType.String,
			SizeBytes:   p.MediaSizeBytes.Int64,
		}
	}

	return &out
}

func stringsUnique(s []string) []string {
	m := make(map[string]struct{}, len(s))
	out := make([]string, 0, len(s))

	for _, v := range s {
		if _, ok := m[v]; !ok {
			m[v] = struct{}{}
			out = append(out, v)
		}
	}

	return out
}
