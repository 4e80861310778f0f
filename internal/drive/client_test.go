package drive

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/driveassist/auth-server/internal/provider"
)

func TestClient_ListFiles(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer a1", r.Header.Get("Authorization"))
		require.Equal(t, "10", r.URL.Query().Get("pageSize"))
		json.NewEncoder(w).Encode(map[string]any{
			"files": []map[string]string{
				{"id": "f1", "name": "notes.txt"},
				{"id": "f2", "name": "report.pdf"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, &http.Client{Timeout: 5 * time.Second})

	files, err := c.ListFiles(context.Background(), "a1", 0)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "f1", files[0].ID)
	assert.Equal(t, "notes.txt", files[0].Name)
}

func TestClient_ListFiles_ExpiredToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":401}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, &http.Client{Timeout: 5 * time.Second})

	_, err := c.ListFiles(context.Background(), "stale", 10)
	var provErr *provider.Error
	require.ErrorAs(t, err, &provErr)
	assert.Equal(t, http.StatusUnauthorized, provErr.StatusCode)
}
