// Package client is a Go client for the journal's HTTP API, used by the
// CLI commands.
package client

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"trade-journal-go/internal/report"
	"trade-journal-go/internal/upload"
)

// Client talks to a running journal server.
type Client struct {
	client *resty.Client
	logger *zap.Logger
}

// New creates a client for the given server address. The token is sent
// as a bearer token on every request.
func New(baseURL, token string, logger *zap.Logger) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json")
	return &Client{client: c, logger: logger}
}

// apiError is the server's error envelope.
type apiError struct {
	Message string `json:"error"`
}

// checkResponse normalizes API failures into a single error shape
// carrying the server's message. Nothing is retried.
func checkResponse(resp *resty.Response, err error, action string) error {
	if err != nil {
		return fmt.Errorf("failed to %s: %w", action, err)
	}
	if resp.IsError() {
		if apiErr, ok := resp.Error().(*apiError); ok && apiErr.Message != "" {
			return fmt.Errorf("failed to %s: %s", action, apiErr.Message)
		}
		return fmt.Errorf("failed to %s: %s", action, resp.Status())
	}
	return nil
}

// Status checks connectivity to the server.
func (c *Client) Status(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		SetError(&apiError{}).
		Get("/api/status")
	return checkResponse(resp, err, "check server status")
}

// Report fetches one period report. Start and end are optional ISO
// YYYY-MM-DD bounds.
func (c *Client) Report(ctx context.Context, granularity, start, end string) ([]report.Row, error) {
	var rows []report.Row
	req := c.client.R().
		SetContext(ctx).
		SetResult(&rows).
		SetError(&apiError{})
	if start != "" {
		req.SetQueryParam("start", start)
	}
	if end != "" {
		req.SetQueryParam("end", end)
	}

	resp, err := req.Get("/api/reports/" + granularity)
	if err := checkResponse(resp, err, "fetch "+granularity+" report"); err != nil {
		return nil, err
	}
	return rows, nil
}

// Upload posts a spreadsheet file and returns the import summary.
func (c *Client) Upload(ctx context.Context, path string) (*upload.Summary, error) {
	var summary upload.Summary
	resp, err := c.client.R().
		SetContext(ctx).
		SetFile("file", path).
		SetResult(&summary).
		SetError(&apiError{}).
		Post("/api/upload")
	if err := checkResponse(resp, err, "upload spreadsheet"); err != nil {
		return nil, err
	}

	c.logger.Info("Upload accepted",
		zap.Int("trades_created", summary.TradesCreated),
		zap.Int("skipped_rows", summary.SkippedRows),
		zap.Int("errors", len(summary.Errors)))
	return &summary, nil
}
