package seedance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reelpop-inc/reelpop/internal/application/generation/gateway"
	"github.com/reelpop-inc/reelpop/internal/infrastructure/kvstore"
	"github.com/reelpop-inc/reelpop/internal/shared/config"
	apperrors "github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/id"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

func TestNormalizeStatus(t *testing.T) {
	tests := map[string]gateway.TaskState{
		"queued":     gateway.TaskQueued,
		"pending":    gateway.TaskQueued,
		"running":    gateway.TaskProcessing,
		"processing": gateway.TaskProcessing,
		"succeeded":  gateway.TaskCompleted,
		"completed":  gateway.TaskCompleted,
		"failed":     gateway.TaskFailed,
		"cancelled":  gateway.TaskFailed,
		"expired":    gateway.TaskFailed,
		"":           gateway.TaskProcessing,
		"brand_new":  gateway.TaskProcessing,
	}
	for in, want := range tests {
		assert.Equal(t, want, normalizeStatus(in), "status %q", in)
	}
}

func TestClient_CreateTask(t *testing.T) {
	var got generateRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/video/generations", r.URL.Path)
		assert.Equal(t, "Bearer key-123", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"id":"cgt-1","status":"pending"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "key-123", "seedance-2.0", time.Second, logger.NewNop())
	task, err := c.CreateTask(context.Background(), gateway.CreateTaskRequest{
		ImageURL:    "https://img/x.jpg",
		Prompt:      "spin",
		Duration:    8,
		Resolution:  "1080p",
		AspectRatio: "9:16",
		Watermark:   true,
	})
	require.NoError(t, err)
	assert.Equal(t, "cgt-1", task.ID)
	assert.Equal(t, gateway.TaskQueued, task.Status)

	assert.Equal(t, "seedance-2.0", got.Model)
	assert.Equal(t, "https://img/x.jpg", got.ImageURL)
	assert.Equal(t, 8, got.Duration)
	assert.Equal(t, "9:16", got.AspectRatio)
	assert.True(t, got.Watermark)
}

func TestClient_ErrorsAreUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"code":"InvalidParameter"}}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "m", time.Second, logger.NewNop())
	_, err := c.CreateTask(context.Background(), gateway.CreateTaskRequest{})
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))

	_, err = c.GetTaskStatus(context.Background(), "t")
	assert.True(t, apperrors.IsUpstreamError(err))
}

func TestClient_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "m", 50*time.Millisecond, logger.NewNop())
	_, err := c.GetTaskStatus(context.Background(), "t")
	assert.True(t, apperrors.IsUpstreamError(err))
}

func TestClient_GetTaskStatus(t *testing.T) {
	responses := map[string]string{
		"/video/generations/done":    `{"id":"done","status":"succeeded","progress":97,"data":{"video_url":"https://x.volces.com/v.mp4"}}`,
		"/video/generations/broken":  `{"id":"broken","status":"failed","error":"content policy"}`,
		"/video/generations/running": `{"id":"running","status":"running","progress":40}`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		_, _ = w.Write([]byte(responses[r.URL.Path]))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "k", "m", time.Second, logger.NewNop())
	ctx := context.Background()

	st, err := c.GetTaskStatus(ctx, "done")
	require.NoError(t, err)
	assert.Equal(t, gateway.TaskCompleted, st.Status)
	assert.Equal(t, 100, st.Progress)
	assert.Equal(t, "https://x.volces.com/v.mp4", st.VideoURL)

	st, err = c.GetTaskStatus(ctx, "broken")
	require.NoError(t, err)
	assert.Equal(t, gateway.TaskFailed, st.Status)
	assert.Equal(t, "content policy", st.Error)
	assert.Empty(t, st.VideoURL)

	st, err = c.GetTaskStatus(ctx, "running")
	require.NoError(t, err)
	assert.Equal(t, gateway.TaskProcessing, st.Status)
	assert.Equal(t, 40, st.Progress)
}

func TestMockGateway_Progression(t *testing.T) {
	g := NewMockGateway(kvstore.NewMemoryStore(100), logger.NewNop())
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	now := start
	g.now = func() time.Time { return now }
	ctx := context.Background()

	task, err := g.CreateTask(ctx, gateway.CreateTaskRequest{})
	require.NoError(t, err)
	assert.True(t, id.HasPrefix(task.ID, MockPrefix))
	assert.Equal(t, gateway.TaskQueued, task.Status)

	st, err := g.GetTaskStatus(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, gateway.TaskQueued, st.Status)
	assert.Equal(t, 0, st.Progress)

	now = start.Add(6 * time.Second)
	st, err = g.GetTaskStatus(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, gateway.TaskProcessing, st.Status)
	assert.Equal(t, 40, st.Progress)

	now = start.Add(MockGenerationTime)
	st, err = g.GetTaskStatus(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, gateway.TaskCompleted, st.Status)
	assert.Equal(t, MockSampleVideoURL, st.VideoURL)

	st, err = g.GetTaskStatus(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, gateway.TaskCompleted, st.Status, "finished tasks stay completed")
}

func TestMockGateway_UnknownTaskIsCompleted(t *testing.T) {
	g := NewMockGateway(kvstore.NewMemoryStore(10), logger.NewNop())
	st, err := g.GetTaskStatus(context.Background(), "mock_1_abc")
	require.NoError(t, err)
	assert.Equal(t, gateway.TaskCompleted, st.Status)
	assert.Equal(t, 100, st.Progress)
}

func TestNewGateway(t *testing.T) {
	store := kvstore.NewMemoryStore(10)
	log := logger.NewNop()

	gw, err := NewGateway(config.GenerationConfig{UseMock: true, APIKey: "k"}, true, store, log)
	require.NoError(t, err)
	assert.IsType(t, &MockGateway{}, gw)

	gw, err = NewGateway(config.GenerationConfig{}, false, store, log)
	require.NoError(t, err)
	assert.IsType(t, &MockGateway{}, gw)

	_, err = NewGateway(config.GenerationConfig{}, true, store, log)
	assert.Error(t, err)

	gw, err = NewGateway(config.GenerationConfig{APIKey: "k", BaseURL: "https://example.com"}, true, store, log)
	require.NoError(t, err)
	assert.IsType(t, &Client{}, gw)
}

func TestMockSampleVideoHost(t *testing.T) {
	assert.Contains(t, MockSampleVideoURL, "://"+MockVideoHost+"/")
}
