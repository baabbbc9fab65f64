package uploader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	driveUploadURL = "https://www.googleapis.com/upload/drive/v3/files"
	driveFilesURL  = "https://www.googleapis.com/drive/v3/files"
	drivePlatform  = "drive"

	pptxMIME = "application/vnd.openxmlformats-officedocument.presentationml.presentation"
)

type DriveUploader struct {
	auth *DriveAuth
}

type DriveAuth struct {
	config    *oauth2.Config
	token     *oauth2.Token
	tokenPath string
}

type driveUploadResponse struct {
	ID          string `json:"id"`
	WebViewLink string `json:"webViewLink"`
}

type driveMetadata struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	MimeType    string   `json:"mimeType,omitempty"`
	Parents     []string `json:"parents,omitempty"`
}

var driveScopes = []string{
	"https://www.googleapis.com/auth/drive.file",
}

func NewDriveAuth(clientID, clientSecret, tokenPath string) *DriveAuth {
	return &DriveAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       driveScopes,
			RedirectURL:  "http://localhost:8080/callback",
		},
		tokenPath: tokenPath,
	}
}

func NewDriveUploader(auth *DriveAuth) *DriveUploader {
	return &DriveUploader{auth: auth}
}

func (u *DriveUploader) Upload(ctx context.Context, req UploadRequest) (*UploadResponse, error) {
	httpClient, err := u.auth.Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get auth client: %w", err)
	}

	name := req.Name
	if name == "" {
		name = filepath.Base(req.FilePath)
	}
	metadata := driveMetadata{
		Name:        name,
		Description: req.Description,
		MimeType:    deckMIME(req.FilePath),
	}
	if req.Folder != "" {
		metadata.Parents = []string{req.Folder}
	}

	metadataJSON, err := json.Marshal(metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata: %w", err)
	}

	deckFile, err := os.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open deck file: %w", err)
	}
	defer func() { _ = deckFile.Close() }()

	// Drive's multipart upload wants multipart/related: a JSON metadata
	// part followed by the media part.
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	metadataPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {"application/json; charset=UTF-8"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create metadata part: %w", err)
	}
	if _, err := metadataPart.Write(metadataJSON); err != nil {
		return nil, fmt.Errorf("failed to write metadata: %w", err)
	}

	deckPart, err := writer.CreatePart(textproto.MIMEHeader{
		"Content-Type": {deckMIME(req.FilePath)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create deck part: %w", err)
	}
	if _, err := io.Copy(deckPart, deckFile); err != nil {
		return nil, fmt.Errorf("failed to copy deck: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close writer: %w", err)
	}

	url := fmt.Sprintf("%s?uploadType=multipart&fields=id,webViewLink", driveUploadURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "multipart/related; boundary="+writer.Boundary())

	resp, err := httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to upload deck: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("upload failed: %s", string(respBody))
	}

	var uploadResp driveUploadResponse
	if err := json.Unmarshal(respBody, &uploadResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	link := uploadResp.WebViewLink
	if link == "" {
		link = fmt.Sprintf("https://drive.google.com/file/d/%s/view", uploadResp.ID)
	}

	return &UploadResponse{
		ID:       uploadResp.ID,
		URL:      link,
		Platform: drivePlatform,
	}, nil
}

// Share grants anyone-with-the-link read access and returns the link.
func (u *DriveUploader) Share(ctx context.Context, fileID string) (string, error) {
	httpClient, err := u.auth.Client(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get auth client: %w", err)
	}

	body := map[string]string{
		"role": "reader",
		"type": "anyone",
	}

	bodyJSON, err := json.Marshal(body)
	if err != nil {
		return "", fmt.Errorf("failed to marshal body: %w", err)
	}

	url := fmt.Sprintf("%s/%s/permissions", driveFilesURL, fileID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(bodyJSON))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to update permissions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("share failed: %s", string(respBody))
	}

	return fmt.Sprintf("https://drive.google.com/file/d/%s/view", fileID), nil
}

func (u *DriveUploader) Platform() string {
	return drivePlatform
}

func (u *DriveUploader) Auth() *DriveAuth {
	return u.auth
}

func deckMIME(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pptx":
		return pptxMIME
	case ".html":
		return "text/html"
	default:
		return "application/octet-stream"
	}
}

func (a *DriveAuth) LoadToken() error {
	data, err := os.ReadFile(a.tokenPath)
	if err != nil {
		return fmt.Errorf("failed to read token file: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return fmt.Errorf("failed to parse token: %w", err)
	}

	a.token = &token
	return nil
}

func (a *DriveAuth) SaveToken() error {
	data, err := json.MarshalIndent(a.token, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := os.WriteFile(a.tokenPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	return nil
}

func (a *DriveAuth) GetAuthURL() string {
	return a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
}

func (a *DriveAuth) Exchange(ctx context.Context, code string) error {
	token, err := a.config.Exchange(ctx, code)
	if err != nil {
		return fmt.Errorf("failed to exchange code: %w", err)
	}

	a.token = token
	return a.SaveToken()
}

func (a *DriveAuth) Client(ctx context.Context) (*http.Client, error) {
	if a.token == nil {
		if err := a.LoadToken(); err != nil {
			return nil, err
		}
	}

	return a.config.Client(ctx, a.token), nil
}

func (a *DriveAuth) IsAuthenticated() bool {
	if a.token == nil {
		if err := a.LoadToken(); err != nil {
			return false
		}
	}
	return a.token != nil && a.token.Valid()
}
