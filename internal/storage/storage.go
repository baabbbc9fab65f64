// Package storage archives finished decks in Google Cloud Storage.
package storage

import "context"

// Archive stores finished deck files remotely.
type Archive interface {
	Upload(ctx context.Context, archiveID, localPath string) (string, error)
	List(ctx context.Context) ([]Entry, error)
	Download(ctx context.Context, object, localDir string) (string, error)
}
