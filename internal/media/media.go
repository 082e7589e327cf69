// Package media validates attachments before they are persisted.
package media

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/plumenet/plume/internal/entities"
)

//go:generate mockgen -destination=./mock/media.go -package=mock -source=media.go

var log = logrus.WithField("package", "media")

// ErrTooLarge is returned when a candidate exceeds the configured size limit.
var ErrTooLarge = fmt.Errorf("attachment is too large")

// ErrUnsupportedType is returned when a candidate declares a non-image type.
var ErrUnsupportedType = fmt.Errorf("unsupported attachment type")

// Store persists attachment bytes.
type Store interface {
	Save(ctx context.Context, r io.Reader, contentType string) (string, error)
	Delete(ctx context.Context, handle string) error
}

// Registry records admitted refs so post creation can claim them.
type Registry interface {
	RegisterMediaRef(ctx context.Context, ref *entities.MediaRef) error
}

// Candidate is an attachment waiting for admission.
type Candidate struct {
	SizeBytes   int64
	ContentType string
	Content     io.Reader
}

var allowedTypes = map[string]struct{}{
	"image/png":  {},
	"image/jpeg": {},
}

// Admitter validates candidates, delegates persistence to a store and
// records admitted refs in a registry.
type Admitter struct {
	store    Store
	registry Registry
	maxSize  int64
}

// NewAdmitter creates new instance of Admitter.
func NewAdmitter(s Store, r Registry, maxSize int64) *Admitter {
	return &Admitter{
		store:    s,
		registry: r,
		maxSize:  maxSize,
	}
}

// Admit validates the candidate, saves it to the store and registers the
// ref. Validation happens before any byte is transferred, the store is not
// touched on rejection. Only registered refs can be attached to posts.
func (a *Admitter) Admit(ctx context.Context, c Candidate) (*entities.MediaRef, error) {
	if c.SizeBytes > a.maxSize {
		return nil, fmt.Errorf("%w: %d bytes, limit is %d", ErrTooLarge, c.SizeBytes, a.maxSize)
	}

	if _, ok := allowedTypes[c.ContentType]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, c.ContentType)
	}

	handle, err := a.store.Save(ctx, io.LimitReader(c.Content, c.SizeBytes), c.ContentType)
	if err != nil {
		return nil, fmt.Errorf("failed to save attachment: %w", err)
	}

	ref := entities.MediaRef{
		Handle:      handle,
		ContentType: c.ContentType,
		SizeBytes:   c.SizeBytes,
	}

	if err := a.registry.RegisterMediaRef(ctx, &ref); err != nil {
		if err := a.store.Delete(ctx, handle); err != nil {
			log.WithError(err).WithField("handle", handle).Error("failed to remove unregistered attachment")
		}

		return nil, fmt.Errorf("failed to register attachment: %w", err)
	}

	return &ref, nil
}
