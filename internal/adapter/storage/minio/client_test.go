package minio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	appconfig "github.com/GoArmGo/EmployeeAdmin/internal/config"
	"github.com/GoArmGo/EmployeeAdmin/internal/domain"
	"github.com/GoArmGo/EmployeeAdmin/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 отвечает на запросы path-style к одному бакету
type fakeS3 struct {
	mu       sync.Mutex
	requests []string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Method+" "+r.URL.Path)
	f.mu.Unlock()

	switch {
	case r.Method == http.MethodHead && r.URL.Path == "/avatars":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet && r.URL.Path == "/avatars/missing.png":
		w.Header().Set("Content-Type", "application/xml")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`<?xml version="1.0" encoding="UTF-8"?><Error><Code>NoSuchKey</Code><Message>gone</Message></Error>`))
	case r.Method == http.MethodGet && r.URL.Path == "/avatars/a.png":
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "unexpected", http.StatusBadRequest)
	}
}

func newTestClient(t *testing.T) (*Client, *fakeS3) {
	t.Helper()
	fake := &fakeS3{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	cfg := &appconfig.Config{
		MinioEndpoint:        strings.TrimPrefix(srv.URL, "http://"),
		MinioAccessKeyID:     "key",
		MinioSecretAccessKey: "secret",
		MinioBucketName:      "avatars",
		MinioRegion:          "us-east-1",
	}
	c, err := NewMinioClient(context.Background(), cfg, logger.Discard())
	require.NoError(t, err)
	return c, fake
}

func TestNewMinioClient_RequiresCredentials(t *testing.T) {
	_, err := NewMinioClient(context.Background(), &appconfig.Config{MinioEndpoint: "localhost:9000"}, logger.Discard())
	require.Error(t, err)
}

func TestClient_ExistingBucketIsNotCreated(t *testing.T) {
	_, fake := newTestClient(t)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, []string{"HEAD /avatars"}, fake.requests)
}

func TestClient_OpenFile(t *testing.T) {
	c, _ := newTestClient(t)

	body, contentType, err := c.OpenFile(context.Background(), "a.png")
	require.NoError(t, err)
	defer body.Close()
	assert.Equal(t, "image/png", contentType)

	_, _, err = c.OpenFile(context.Background(), "missing.png")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestClient_DeleteFile(t *testing.T) {
	c, fake := newTestClient(t)

	require.NoError(t, c.DeleteFile(context.Background(), "a.png"))

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Contains(t, fake.requests, "DELETE /avatars/a.png")
}
