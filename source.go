package fleetloader

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"cloud.google.com/go/storage"
	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

// Source fetches the bytes of a workbook. The returned func releases the
// reader.
type Source interface {
	Open(context.Context, Event) (io.Reader, func(), error)
}

// StorageSource reads workbooks from Cloud Storage.
type StorageSource struct {
	storage *storage.Client
}

// NewStorageSource builds a StorageSource with default credentials.
func NewStorageSource(ctx context.Context) (*StorageSource, error) {
	s, err := storage.NewClient(ctx)
	if err != nil {
		return nil, xerrors.Errorf("failed to build storage client: %w", err)
	}

	return &StorageSource{storage: s}, nil
}

// Open opens the event's object.
func (s *StorageSource) Open(ctx context.Context, ev Event) (io.Reader, func(), error) {
	l := log.Ctx(ctx)

	r, err := s.storage.Bucket(ev.Bucket).Object(ev.Name).NewReader(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get reader of %s: %w: %w", ev.FullPath(), ErrSourceUnavailable, err)
	}
	l.Debug().Int64("size", r.Attrs.Size).Msg("object opened")

	return r, func() { r.Close() }, nil
}

// FileSource reads workbooks from a local directory. The event's bucket is
// ignored.
type FileSource struct {
	Dir string
}

// Open opens Dir/ev.Name.
func (s *FileSource) Open(ctx context.Context, ev Event) (io.Reader, func(), error) {
	path := filepath.Join(s.Dir, filepath.FromSlash(ev.Name))

	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s: %w: %w", path, ErrSourceUnavailable, err)
	}
	log.Ctx(ctx).Debug().Str("path", path).Msg("file opened")

	return f, func() { f.Close() }, nil
}
