// Package graphclient is a small HTTP client for the social graph API.
package graphclient

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
)

// Envelope mirrors the server's response wrapper.
type Envelope struct {
	Status    string          `json:"status"`
	Code      int             `json:"code"`
	RequestID string          `json:"request_id"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data"`
	Meta      json.RawMessage `json:"meta,omitempty"`
	Error     *struct {
		Code string `json:"code"`
	} `json:"error,omitempty"`
}

// APIError is returned for any non-success envelope.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, e.Code, e.Message)
}

type Client struct {
	http *resty.Client
}

func New(baseURL, token string, timeout time.Duration) *Client {
	c := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "graphctl/0.1").
		SetHeader("Accept", "application/json")
	if token != "" {
		c.SetAuthToken(token)
	}
	return &Client{http: c}
}

// Follow toggles the caller's follow edge towards targetID.
func (c *Client) Follow(targetID string) (*Envelope, error) {
	return c.do(c.http.R().SetBody(map[string]string{"target_user_id": targetID}), "POST", "/api/follow")
}

// Profile fetches userID's profile, or the caller's own when userID is empty.
func (c *Client) Profile(userID string) (*Envelope, error) {
	if userID == "" {
		return c.do(c.http.R(), "GET", "/api/profile")
	}
	return c.do(c.http.R().SetPathParam("id", userID), "GET", "/api/profile/{id}")
}

func (c *Client) Search(q string) (*Envelope, error) {
	return c.do(c.http.R().SetQueryParam("q", q), "GET", "/api/users/search")
}

func (c *Client) Connections(userID, kind string, limit, offset int) (*Envelope, error) {
	req := c.http.R().
		SetPathParam("id", userID).
		SetQueryParam("type", kind)
	if limit > 0 {
		req.SetQueryParam("limit", strconv.Itoa(limit))
	}
	if offset > 0 {
		req.SetQueryParam("offset", strconv.Itoa(offset))
	}
	return c.do(req, "GET", "/api/users/{id}/connections")
}

func (c *Client) Activity() (*Envelope, error) {
	return c.do(c.http.R(), "GET", "/api/activity")
}

func (c *Client) do(req *resty.Request, method, path string) (*Envelope, error) {
	var env Envelope
	resp, err := req.SetResult(&env).SetError(&env).Execute(method, path)
	if err != nil {
		return nil, err
	}
	if resp.IsError() || env.Status != "success" {
		apiErr := &APIError{Status: resp.StatusCode(), Message: env.Message}
		if env.Error != nil {
			apiErr.Code = env.Error.Code
		}
		return nil, apiErr
	}
	return &env, nil
}
