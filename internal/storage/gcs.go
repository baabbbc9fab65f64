package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

type GCSArchive struct {
	client *storage.Client
	bucket string
	prefix string
}

func NewGCSArchive(ctx context.Context, bucket, prefix string) (*GCSArchive, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCS client: %w", err)
	}

	return &GCSArchive{
		client: client,
		bucket: bucket,
		prefix: prefix,
	}, nil
}

func (s *GCSArchive) Close() error {
	return s.client.Close()
}

// Upload stores a finished deck file under the given archive id and
// returns the object name.
func (s *GCSArchive) Upload(ctx context.Context, archiveID, localPath string) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", localPath, err)
	}
	defer func() { _ = f.Close() }()

	object := path.Join(s.prefix, archiveID, filepath.Base(localPath))
	w := s.client.Bucket(s.bucket).Object(object).NewWriter(ctx)
	if _, err := io.Copy(w, f); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("failed to upload %s: %w", object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("failed to finish upload of %s: %w", object, err)
	}

	return object, nil
}

// List returns archived deck files, newest first.
func (s *GCSArchive) List(ctx context.Context) ([]Entry, error) {
	bkt := s.client.Bucket(s.bucket)
	query := &storage.Query{Prefix: s.prefix}

	var entries []Entry
	it := bkt.Objects(ctx, query)
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to list objects: %w", err)
		}

		if !isDeckFile(attrs.Name) {
			continue
		}
		entries = append(entries, Entry{
			Name:    attrs.Name,
			Size:    attrs.Size,
			Created: attrs.Created,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Created.After(entries[j].Created)
	})

	return entries, nil
}

// Download copies an archived deck file into localDir and returns the
// local path.
func (s *GCSArchive) Download(ctx context.Context, object, localDir string) (string, error) {
	if err := os.MkdirAll(localDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	obj := s.client.Bucket(s.bucket).Object(object)
	r, err := obj.NewReader(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create reader: %w", err)
	}
	defer func() { _ = r.Close() }()

	localPath := filepath.Join(localDir, filepath.Base(object))
	f, err := os.Create(localPath)
	if err != nil {
		return "", fmt.Errorf("failed to create local file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if _, err := io.Copy(f, r); err != nil {
		return "", fmt.Errorf("failed to download file: %w", err)
	}

	return localPath, nil
}

// Entry describes one archived deck file.
type Entry struct {
	Name    string
	Size    int64
	Created time.Time
}

func isDeckFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".pptx" || ext == ".html"
}
