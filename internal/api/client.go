package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"grievgo/backend/internal/models"
)

// Client implements Backend over the service's JSON API.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewClient creates a Client authenticated with the given bearer token.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) do(method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, c.BaseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var envelope struct {
			Error string `json:"error"`
			Code  string `json:"code"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Error == "" {
			envelope.Error = http.StatusText(resp.StatusCode)
		}
		return &Error{StatusCode: resp.StatusCode, Code: envelope.Code, Message: envelope.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) UpdateStatus(complaintID string, newStatus models.Status, reason string) (*models.Complaint, error) {
	payload := map[string]string{"new_status": string(newStatus), "reason": reason}
	var complaint models.Complaint
	path := fmt.Sprintf("/complaints/%s/status", complaintID)
	if err := c.do(http.MethodPatch, path, payload, &complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (c *Client) Escalate(complaintID string, reason string) (*models.Complaint, error) {
	payload := map[string]string{"reason": reason}
	var complaint models.Complaint
	path := fmt.Sprintf("/complaints/%s/escalate", complaintID)
	if err := c.do(http.MethodPost, path, payload, &complaint); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (c *Client) CastVote(complaintID string, vote models.VoteType) (*models.VoteResult, error) {
	payload := map[string]string{"vote_type": string(vote)}
	var result models.VoteResult
	path := fmt.Sprintf("/complaints/%s/vote", complaintID)
	if err := c.do(http.MethodPost, path, payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) ClearVote(complaintID string) (*models.VoteResult, error) {
	var result models.VoteResult
	path := fmt.Sprintf("/complaints/%s/vote", complaintID)
	if err := c.do(http.MethodDelete, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) UnreadNotificationCount() (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.do(http.MethodGet, "/notifications/unread-count", nil, &out); err != nil {
		return 0, err
	}
	return out.Count, nil
}

func (c *Client) ListNotices() ([]models.Notice, error) {
	var out struct {
		Notices []models.Notice `json:"notices"`
	}
	if err := c.do(http.MethodGet, "/notices", nil, &out); err != nil {
		return nil, err
	}
	return out.Notices, nil
}

func (c *Client) FetchConfig() (*models.ClientConfig, error) {
	var cfg models.ClientConfig
	if err := c.do(http.MethodGet, "/config", nil, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
