package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client talks to a GoTrue-compatible admin API with a service-role key.
type Client struct {
	baseURL    string
	serviceKey string
	http       *http.Client
}

func NewClient(baseURL, serviceKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		serviceKey: serviceKey,
		http:       &http.Client{Timeout: timeout},
	}
}

type listResponse struct {
	Users []Identity `json:"users"`
}

func (c *Client) ListPage(ctx context.Context, page, perPage int) ([]Identity, error) {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("per_page", strconv.Itoa(perPage))

	var resp listResponse
	if err := c.do(ctx, http.MethodGet, "/auth/v1/admin/users?"+q.Encode(), nil, &resp); err != nil {
		return nil, fmt.Errorf("list identities page %d: %w", page, err)
	}
	return resp.Users, nil
}

func (c *Client) UpdateMetadata(ctx context.Context, id string, md Metadata) (*Identity, error) {
	body := map[string]Metadata{"user_metadata": md}

	var updated Identity
	if err := c.do(ctx, http.MethodPut, "/auth/v1/admin/users/"+url.PathEscape(id), body, &updated); err != nil {
		return nil, fmt.Errorf("update identity %s: %w", id, err)
	}
	return &updated, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.serviceKey)
	req.Header.Set("Authorization", "Bearer "+c.serviceKey)
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrIdentityNotFound
	}
	if resp.StatusCode >= http.StatusBadRequest {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("identity provider returned %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
