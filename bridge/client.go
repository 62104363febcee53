package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// StatusError is a non-2xx answer from the server.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("bridge returned status %d: %s", e.Code, e.Body)
}

// Client calls a bridge server.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient uses http.DefaultClient when httpClient is nil.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: httpClient}
}

func (c *Client) Decide(ctx context.Context, req DecideRequest) (DecideResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return DecideResponse{}, fmt.Errorf("failed to encode request: %w", err)
	}
	var resp DecideResponse
	err = c.do(ctx, http.MethodPost, "/decide", bytes.NewReader(body), &resp)
	return resp, err
}

func (c *Client) Players(ctx context.Context) ([]string, error) {
	var names []string
	err := c.do(ctx, http.MethodGet, "/players", nil, &names)
	return names, err
}

func (c *Client) EndGame(ctx context.Context, gameID string) error {
	return c.do(ctx, http.MethodDelete, "/games/"+url.PathEscape(gameID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(msg))}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
