// Package entities contains main entities of service.
package entities

import (
	"time"
)

// MediaRef references an attachment persisted by a media store.
// A ref is attached to at most one post at creation time.
type MediaRef struct {
	Handle      string
	ContentType string
	SizeBytes   int64
}

// Post is an immutable record created by its author.
type Post struct {
	ID        string
	Author    string
	Text      string
	Media     *MediaRef
	CreatedAt time.Time
}
