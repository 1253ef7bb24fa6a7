package session

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
)

// StatusError is a non-2xx reply from the relay. Message carries the
// server's localized error text when the body had one.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("HTTP %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("HTTP %d", e.Code)
}

// Client is the front-end side of the relay contract.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

// Send posts one chat message. The returned reply may carry a new session id
// which the caller should adopt.
func (c *Client) Send(ctx context.Context, sessionID, message string) (*ChatReply, error) {
	body, err := json.Marshal(ChatRequest{Message: message, SessionID: sessionID})
	if err != nil {
		return nil, err
	}

	var reply ChatReply
	if err := c.do(ctx, http.MethodPost, "/chat", body, &reply); err != nil {
		return nil, err
	}
	return &reply, nil
}

func (c *Client) Status(ctx context.Context) (*Status, error) {
	var st Status
	if err := c.do(ctx, http.MethodGet, "/status", nil, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (c *Client) History(ctx context.Context, sessionID string) (*History, error) {
	var h History
	if err := c.do(ctx, http.MethodGet, "/conversation/"+url.PathEscape(sessionID), nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (c *Client) ClearHistory(ctx context.Context, sessionID string) error {
	return c.do(ctx, http.MethodDelete, "/conversation/"+url.PathEscape(sessionID), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rd io.Reader
	if body != nil {
		rd = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
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

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.Unmarshal(raw, &e)
		return &StatusError{Code: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}
