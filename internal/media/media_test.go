package media

import (
	"bytes"
	"context"
	"errors"
	"io"
	"io/ioutil"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plumenet/plume/internal/entities"
	"github.com/plumenet/plume/internal/media/mock"
)

func TestAdmitter_Admit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := mock.NewMockStore(ctrl)
	r := mock.NewMockRegistry(ctrl)

	a := NewAdmitter(s, r, 16)

	content := bytes.Repeat([]byte("a"), 16) // exactly at the limit

	ref := &entities.MediaRef{
		Handle:      "handle.png",
		ContentType: "image/png",
		SizeBytes:   16,
	}

	s.EXPECT().Save(gomock.Any(), gomock.Any(), "image/png").DoAndReturn(
		func(_ context.Context, r io.Reader, _ string) (string, error) {
			b, err := ioutil.ReadAll(r)
			require.NoError(t, err)
			assert.Equal(t, content, b)
			return "handle.png", nil
		})
	r.EXPECT().RegisterMediaRef(gomock.Any(), ref).Return(nil)

	out, err := a.Admit(context.Background(), Candidate{
		SizeBytes:   16,
		ContentType: "image/png",
		Content:     bytes.NewReader(content),
	})
	require.NoError(t, err)
	require.Equal(t, ref, out)
}

func TestAdmitter_Admit_TooLarge(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := NewAdmitter(mock.NewMockStore(ctrl), mock.NewMockRegistry(ctrl), 16)

	// neither store nor registry calls are expected
	_, err := a.Admit(context.Background(), Candidate{
		SizeBytes:   17,
		ContentType: "image/png",
		Content:     bytes.NewReader(bytes.Repeat([]byte("a"), 17)),
	})
	require.True(t, errors.Is(err, ErrTooLarge))
}

func TestAdmitter_Admit_UnsupportedType(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	a := NewAdmitter(mock.NewMockStore(ctrl), mock.NewMockRegistry(ctrl), 16)

	tt := []string{"application/pdf", "text/html", "image/gif", ""}

	for _, contentType := range tt {
		_, err := a.Admit(context.Background(), Candidate{
			SizeBytes:   1,
			ContentType: contentType,
			Content:     bytes.NewReader([]byte("a")),
		})
		require.True(t, errors.Is(err, ErrUnsupportedType), contentType)
	}
}

func TestAdmitter_Admit_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := mock.NewMockStore(ctrl)

	a := NewAdmitter(s, mock.NewMockRegistry(ctrl), 16)

	s.EXPECT().Save(gomock.Any(), gomock.Any(), "image/jpeg").Return("", context.Canceled)

	_, err := a.Admit(context.Background(), Candidate{
		SizeBytes:   1,
		ContentType: "image/jpeg",
		Content:     bytes.NewReader([]byte("a")),
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
}

func TestAdmitter_Admit_RegistryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	s := mock.NewMockStore(ctrl)
	r := mock.NewMockRegistry(ctrl)

	a := NewAdmitter(s, r, 16)

	s.EXPECT().Save(gomock.Any(), gomock.Any(), "image/png").Return("handle.png", nil)
	r.EXPECT().RegisterMediaRef(gomock.Any(), gomock.Any()).Return(context.Canceled)

	// an unregistered file is unreachable, it gets removed
	s.EXPECT().Delete(gomock.Any(), "handle.png").Return(nil)

	_, err := a.Admit(context.Background(), Candidate{
		SizeBytes:   1,
		ContentType: "image/png",
		Content:     bytes.NewReader([]byte("a")),
	})
	require.Error(t, err)
	require.True(t, errors.Is(err, context.Canceled))
}
