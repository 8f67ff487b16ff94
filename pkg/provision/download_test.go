package provision

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDownload(t *testing.T) {
	content := []byte("toolchain tarball bytes")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write(content)
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "dl", "go.tar.gz")

	err := Download(context.Background(), nil, DownloadOptions{
		URL:      server.URL,
		DestPath: destPath,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(destPath)
	require.NoError(t, err)
	assert.Equal(t, content, data)

	// Temp file cleaned up.
	_, err = os.Stat(destPath + ".downloading")
	assert.True(t, os.IsNotExist(err))
}

func TestDownload_ChecksumVerified(t *testing.T) {
	content := []byte("toolchain tarball bytes")
	sum := sha256.Sum256(content)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(content)
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "go.tar.gz")

	err := Download(context.Background(), nil, DownloadOptions{
		URL:      server.URL,
		DestPath: destPath,
		SHA256:   hex.EncodeToString(sum[:]),
	})
	assert.NoError(t, err)
}

func TestDownload_ChecksumMismatch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("unexpected bytes"))
	}))
	defer server.Close()

	destPath := filepath.Join(t.TempDir(), "go.tar.gz")

	err := Download(context.Background(), nil, DownloadOptions{
		URL:      server.URL,
		DestPath: destPath,
		SHA256:   "deadbeef",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")

	// Nothing left behind at the destination.
	_, err = os.Stat(destPath)
	assert.True(t, os.IsNotExist(err))
}

func TestDownload_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	err := Download(context.Background(), nil, DownloadOptions{
		URL:      server.URL,
		DestPath: filepath.Join(t.TempDir(), "go.tar.gz"),
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")
}
