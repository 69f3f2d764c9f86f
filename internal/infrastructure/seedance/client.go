// Package seedance implements the generation gateway against the BytePlus
// ModelArk video API, plus an offline mock.
package seedance

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/reelpop-inc/reelpop/internal/application/generation/gateway"
	"github.com/reelpop-inc/reelpop/internal/shared/errors"
	"github.com/reelpop-inc/reelpop/internal/shared/logger"
)

const (
	defaultRequestTimeout = 30 * time.Second
	// provider responses are small JSON documents
	maxResponseSize = 1 << 20
	maxErrorBodyLog = 512
)

type generateRequest struct {
	Model       string `json:"model"`
	ImageURL    string `json:"image_url"`
	Prompt      string `json:"prompt"`
	Duration    int    `json:"duration"`
	Resolution  string `json:"resolution"`
	AspectRatio string `json:"aspect_ratio"`
	Watermark   bool   `json:"watermark"`
}

type generateResponse struct {
	ID      string `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type taskResponse struct {
	ID       string `json:"id"`
	Status   string `json:"status"`
	Progress int    `json:"progress"`
	Data     *struct {
		VideoURL string `json:"video_url"`
	} `json:"data,omitempty"`
	Error string `json:"error,omitempty"`
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
	logger     logger.Interface
}

func NewClient(baseURL, apiKey, model string, timeout time.Duration, logger logger.Interface) *Client {
	if timeout <= 0 {
		timeout = defaultRequestTimeout
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		model:      model,
		logger:     logger,
	}
}

var _ gateway.Gateway = (*Client)(nil)

func (c *Client) CreateTask(ctx context.Context, req gateway.CreateTaskRequest) (*gateway.Task, error) {
	body, err := json.Marshal(generateRequest{
		Model:       c.model,
		ImageURL:    req.ImageURL,
		Prompt:      req.Prompt,
		Duration:    req.Duration,
		Resolution:  req.Resolution,
		AspectRatio: req.AspectRatio,
		Watermark:   req.Watermark,
	})
	if err != nil {
		return nil, errors.NewInternalError("failed to encode generation request")
	}

	var resp generateResponse
	if err := c.do(ctx, http.MethodPost, c.baseURL+"/video/generations", body, &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, errors.NewUpstreamError("video provider returned no task id")
	}

	c.logger.Infow("video generation task created", "task_id", resp.ID, "status", resp.Status)
	return &gateway.Task{ID: resp.ID, Status: normalizeStatus(resp.Status)}, nil
}

func (c *Client) GetTaskStatus(ctx context.Context, taskID string) (*gateway.TaskStatus, error) {
	var resp taskResponse
	endpoint := c.baseURL + "/video/generations/" + url.PathEscape(taskID)
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &resp); err != nil {
		return nil, err
	}

	status := &gateway.TaskStatus{
		ID:       taskID,
		Status:   normalizeStatus(resp.Status),
		Progress: resp.Progress,
	}
	switch status.Status {
	case gateway.TaskCompleted:
		if resp.Data != nil {
			status.VideoURL = resp.Data.VideoURL
		}
		status.Progress = 100
	case gateway.TaskFailed:
		status.Error = resp.Error
	}
	return status, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return errors.NewInternalError("failed to create provider request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Errorw("video provider request failed", "method", method, "url", endpoint, "error", err)
		return errors.NewUpstreamError("video provider unavailable")
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return errors.NewUpstreamError("failed to read video provider response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Errorw("video provider returned error",
			"method", method,
			"url", endpoint,
			"status", resp.StatusCode,
			"body", truncate(string(payload), maxErrorBodyLog),
		)
		return errors.NewUpstreamError(fmt.Sprintf("video provider error (%d)", resp.StatusCode))
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return errors.NewUpstreamError("failed to decode video provider response")
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
