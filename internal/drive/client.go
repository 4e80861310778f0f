// Package drive lists a user's Google Drive files with their stored
// provider access token. One outbound call, no caching, first page
// only.
package drive

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/driveassist/auth-server/internal/provider"
)

const defaultFilesURL = "https://www.googleapis.com/drive/v3/files"

// File is a Drive file reference.
type File struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Client calls the Drive files endpoint.
type Client struct {
	filesURL string
	client   *http.Client
}

// NewClient creates a Drive client. filesURL is overridable for tests;
// empty means the production endpoint.
func NewClient(filesURL string, client *http.Client) *Client {
	if filesURL == "" {
		filesURL = defaultFilesURL
	}
	return &Client{filesURL: filesURL, client: client}
}

type filesResponse struct {
	Files []File `json:"files"`
}

// ListFiles fetches the first page of the user's files. A non-success
// response surfaces as a provider error; a 401 means the access token
// has expired and the session needs a refresh.
func (c *Client) ListFiles(ctx context.Context, accessToken string, pageSize int) ([]File, error) {
	if pageSize <= 0 {
		pageSize = 10
	}

	q := url.Values{
		"pageSize": {fmt.Sprint(pageSize)},
		"fields":   {"files(id, name)"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.filesURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("drive request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read drive response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &provider.Error{Operation: "drive list", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var parsed filesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse drive response: %w", err)
	}

	return parsed.Files, nil
}
