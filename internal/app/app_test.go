package app

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/GoArmGo/EmployeeAdmin/internal/config"
	"github.com/GoArmGo/EmployeeAdmin/internal/logger"
	"github.com/GoArmGo/EmployeeAdmin/internal/messaging/payloads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingFiles struct {
	mu      sync.Mutex
	deleted []string
	err     error
}

func (f *recordingFiles) UploadFile(context.Context, string, io.Reader, string) (string, error) {
	return "", errors.New("not supported")
}

func (f *recordingFiles) OpenFile(context.Context, string) (io.ReadCloser, string, error) {
	return nil, "", errors.New("not supported")
}

func (f *recordingFiles) DeleteFile(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, key)
	return nil
}

func TestImageCleanupHandler(t *testing.T) {
	tests := []struct {
		name  string
		event payloads.EmployeeEvent
		want  []string
	}{
		{"delete removes image", payloads.EmployeeEvent{Type: payloads.EventEmployeeDeleted, Image: "uploads/a.png"}, []string{"a.png"}},
		{"update removes superseded", payloads.EmployeeEvent{Type: payloads.EventEmployeeUpdated, Image: "uploads/new.png", SupersededImage: "uploads/old.png"}, []string{"old.png"}},
		{"update keeping image", payloads.EmployeeEvent{Type: payloads.EventEmployeeUpdated, Image: "uploads/same.png", SupersededImage: "uploads/same.png"}, nil},
		{"discarded upload", payloads.EmployeeEvent{Type: payloads.EventImageDiscarded, Image: "uploads/orphan.jpg"}, []string{"orphan.jpg"}},
		{"created is ignored", payloads.EmployeeEvent{Type: payloads.EventEmployeeCreated, Image: "uploads/a.png"}, nil},
		{"foreign reference ignored", payloads.EmployeeEvent{Type: payloads.EventEmployeeDeleted, Image: "../etc/passwd"}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files := &recordingFiles{}
			err := imageCleanupHandler(files, logger.Discard())(context.Background(), tt.event)

			require.NoError(t, err)
			assert.Equal(t, tt.want, files.deleted)
		})
	}
}

func TestImageCleanupHandler_DeleteFailureIsReturned(t *testing.T) {
	files := &recordingFiles{err: errors.New("disk busy")}

	err := imageCleanupHandler(files, logger.Discard())(context.Background(),
		payloads.EmployeeEvent{Type: payloads.EventEmployeeDeleted, Image: "uploads/a.png"})

	assert.Error(t, err)
}

func TestRunWorker_RequiresConsumer(t *testing.T) {
	err := runWorker(context.Background(), nil, &recordingFiles{}, logger.Discard())
	assert.Error(t, err)
}

func TestServe_StopsOnContextCancel(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	router := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- serve(ctx, listener, router, logger.Discard()) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + listener.Addr().String())
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestApp_RunUnknownModeClosesResources(t *testing.T) {
	closed := 0
	a := NewApp(&config.Config{}, logger.Discard(), nil, &recordingFiles{}, nil,
		func() error { closed++; return nil },
		func() error { closed++; return nil },
	)

	err := a.Run(context.Background(), "batch")

	assert.Error(t, err)
	assert.Equal(t, 2, closed)
}
