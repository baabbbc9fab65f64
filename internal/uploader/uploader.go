// Package uploader publishes finished decks to external services.
package uploader

import "context"

type UploadRequest struct {
	FilePath    string
	Name        string
	Description string
	Folder      string
}

type UploadResponse struct {
	ID       string
	URL      string
	Platform string
}

type Uploader interface {
	Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error)
	Share(ctx context.Context, fileID string) (string, error)
	Platform() string
}
