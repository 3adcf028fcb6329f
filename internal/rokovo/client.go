// Package rokovo is the client for the remote assistant API: session
// creation and message exchange, scoped by an api key.
package rokovo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// transportPath is the single endpoint the widget API exposes; the HTTP
// method selects the operation.
const transportPath = "/transport/widget"

type Client struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

type createSessionRequest struct {
	ExternalUserID string `json:"externalUserId"`
}

type createSessionResponse struct {
	Data struct {
		SessionID string `json:"sessionId"`
	} `json:"data"`
}

type exchangeRequest struct {
	SessionID string `json:"sessionId"`
	Content   string `json:"content"`
}

type exchangeResponse struct {
	Data struct {
		Response struct {
			Content string `json:"content"`
		} `json:"response"`
	} `json:"data"`
}

type errorResponse struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateSession opens a widget session for the given external user and
// returns the remote session identifier.
func (c *Client) CreateSession(ctx context.Context, externalUserID string) (string, error) {
	var resp createSessionResponse
	if err := c.do(ctx, http.MethodPost, createSessionRequest{ExternalUserID: externalUserID}, &resp); err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	if resp.Data.SessionID == "" {
		return "", fmt.Errorf("create session: empty session id in response")
	}
	return resp.Data.SessionID, nil
}

// Exchange sends one user message on an existing session and returns the
// assistant's reply text.
func (c *Client) Exchange(ctx context.Context, sessionID, content string) (string, error) {
	var resp exchangeResponse
	if err := c.do(ctx, http.MethodPatch, exchangeRequest{SessionID: sessionID, Content: content}, &resp); err != nil {
		return "", fmt.Errorf("exchange message: %w", err)
	}
	return resp.Data.Response.Content, nil
}

func (c *Client) do(ctx context.Context, method string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+transportPath, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", c.apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("api call: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		var errResp errorResponse
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error.Message != "" {
			return fmt.Errorf("api error %d: %s: %s", resp.StatusCode, errResp.Error.Type, errResp.Error.Message)
		}
		return fmt.Errorf("api error %d: %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}
	return nil
}
