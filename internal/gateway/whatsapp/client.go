package whatsapp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/azuredigitalsoftware-debug/azuredigitalsoftware-auto-upi/internal/gateway"
)

const (
	serviceName = "whatsapp"

	// Responses are small JSON objects; anything bigger is not read.
	maxResponseBytes = 64 << 10
)

type Config struct {
	APIURL    string
	Token     string
	Recipient string
}

// Client posts text messages to the admin through a Fonnte-compatible
// WhatsApp gateway.
type Client struct {
	cfg  Config
	http httpClient
}

func New(cfg Config, client httpClient) *Client {
	if client == nil {
		client = &http.Client{}
	}
	return &Client{
		cfg:  cfg,
		http: client,
	}
}

type sendResponse struct {
	Status bool   `json:"status"`
	Reason string `json:"reason"`
}

func (c *Client) Send(ctx context.Context, text string) error {
	start := time.Now()
	err := gateway.Observe(serviceName, "send", start, c.send(ctx, text))
	if err != nil {
		return fmt.Errorf("gateway whatsapp, send: %w", err)
	}
	return nil
}

func (c *Client) send(ctx context.Context, text string) error {
	form := url.Values{}
	form.Set("target", c.cfg.Recipient)
	form.Set("message", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.APIURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", c.cfg.Token)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var parsed sendResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !parsed.Status {
		return fmt.Errorf("%w: %s", ErrRejected, parsed.Reason)
	}

	return nil
}
