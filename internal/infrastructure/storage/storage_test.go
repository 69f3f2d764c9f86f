package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelpop-inc/reelpop/internal/shared/config"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

func TestNewS3VideoStorage_Validation(t *testing.T) {
	_, err := NewS3VideoStorage(context.Background(), config.StorageConfig{}, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bucket is required")

	s, err := NewS3VideoStorage(context.Background(), config.StorageConfig{
		Bucket:          "videos",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Endpoint:        "localhost:9000",
		UsePathStyle:    true,
	}, logger.NewNop())
	require.NoError(t, err)
	assert.Equal(t, "videos", s.Bucket())
}

func TestS3VideoStorage_Upload(t *testing.T) {
	var (
		mu        sync.Mutex
		gotMethod string
		gotPath   string
		gotType   string
		gotBody   []byte
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		gotMethod, gotPath, gotType, gotBody = r.Method, r.URL.Path, r.Header.Get("Content-Type"), body
		mu.Unlock()
		w.Header().Set("ETag", `"abc"`)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	s, err := NewS3VideoStorage(context.Background(), config.StorageConfig{
		Bucket:          "videos",
		Region:          "us-east-1",
		AccessKeyID:     "key",
		SecretAccessKey: "secret",
		Endpoint:        srv.URL,
		UsePathStyle:    true,
	}, logger.NewNop())
	require.NoError(t, err)

	err = s.Upload(context.Background(), "user-1/proj-1/task-1.mp4", []byte("fake-mp4-bytes"), "video/mp4")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/videos/user-1/proj-1/task-1.mp4", gotPath)
	assert.Equal(t, "video/mp4", gotType)
	assert.Contains(t, string(gotBody), "fake-mp4-bytes")
}

func TestDisabledStorage(t *testing.T) {
	err := DisabledStorage{}.Upload(context.Background(), "k", nil, "video/mp4")
	assert.ErrorIs(t, err, ErrStorageDisabled)
}

func TestHTTPAssetFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok.mp4":
			_, _ = w.Write([]byte("video"))
		case "/redirect":
			http.Redirect(w, r, "/ok.mp4", http.StatusFound)
		case "/slow":
			time.Sleep(200 * time.Millisecond)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTPAssetFetcher(time.Second)
	ctx := context.Background()

	data, err := f.Fetch(ctx, srv.URL+"/ok.mp4")
	require.NoError(t, err)
	assert.Equal(t, []byte("video"), data)

	_, err = f.Fetch(ctx, srv.URL+"/missing")
	assert.Error(t, err)

	_, err = f.Fetch(ctx, srv.URL+"/redirect")
	assert.Error(t, err, "redirects are not followed")

	fast := NewHTTPAssetFetcher(50 * time.Millisecond)
	_, err = fast.Fetch(ctx, srv.URL+"/slow")
	assert.Error(t, err)

	small := NewHTTPAssetFetcher(time.Second)
	small.maxSize = 3
	_, err = small.Fetch(ctx, srv.URL+"/ok.mp4")
	assert.Error(t, err)
}
