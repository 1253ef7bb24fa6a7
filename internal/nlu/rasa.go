package nlu

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

	"github.com/rs/zerolog/log"

	"warungchat/internal/menu"
)

const (
	DefaultTimeout       = 30 * time.Second
	DefaultStatusTimeout = 5 * time.Second
)

// RasaClient speaks the Rasa REST channel and HTTP API.
type RasaClient struct {
	baseURL       string
	timeout       time.Duration
	statusTimeout time.Duration
	client        *http.Client
}

func NewRasaClient(baseURL string, timeout, statusTimeout time.Duration) *RasaClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if statusTimeout <= 0 {
		statusTimeout = DefaultStatusTimeout
	}
	return &RasaClient{
		baseURL:       strings.TrimRight(baseURL, "/"),
		timeout:       timeout,
		statusTimeout: statusTimeout,
		client:        &http.Client{},
	}
}

// Send posts {sender, message} to the REST webhook.
func (c *RasaClient) Send(ctx context.Context, sender, message string) ([]Response, error) {
	body, err := json.Marshal(webhookRequest{Sender: sender, Message: message})
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/webhooks/rest/webhook",
		bytes.NewBuffer(body),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var out []Response
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode webhook reply: %w", ErrBadResponse)
	}

	log.Debug().Str("session_id", sender).Int("responses", len(out)).Msg("nlu replied")
	return out, nil
}

// RecommendedMenus reads slots.recommended_menus from the tracker.
func (c *RasaClient) RecommendedMenus(ctx context.Context, sender string) ([]menu.Record, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		c.baseURL+"/conversations/"+url.PathEscape(sender)+"/tracker",
		nil,
	)
	if err != nil {
		return nil, err
	}

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var tracker Tracker
	if err := json.Unmarshal(raw, &tracker); err != nil {
		return nil, fmt.Errorf("decode tracker: %w", ErrBadResponse)
	}
	return tracker.Slots.RecommendedMenus, nil
}

// Status calls GET /status with the short status timeout.
func (c *RasaClient) Status(ctx context.Context) (*Status, error) {
	ctx, cancel := context.WithTimeout(ctx, c.statusTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/status", nil)
	if err != nil {
		return nil, err
	}

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var st Status
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode status: %w", ErrBadResponse)
	}
	if st.Version == "" {
		st.Version = "unknown"
	}
	return &st, nil
}

func (c *RasaClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classify(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, classify(err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s %s -> %d: %s",
			ErrBadResponse, req.Method, req.URL.Path, resp.StatusCode, string(raw))
	}
	return raw, nil
}
