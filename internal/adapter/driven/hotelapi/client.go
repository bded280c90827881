// Package hotelapi implements the HotelBackend port against the hotel
// management REST API.
package hotelapi

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

	"github.com/ericfisherdev/hotelhub/internal/domain/model"
	"github.com/ericfisherdev/hotelhub/internal/domain/port/driven"
)

// Compile-time interface satisfaction check.
var _ driven.HotelBackend = (*Client)(nil)

// maxErrorBody caps how much of a failed response is read for its message.
const maxErrorBody = 64 << 10

// Client calls the backend's /auth and /user resources.
type Client struct {
	http       *http.Client
	baseURL    *url.URL
	authScheme string
}

// NewClient creates a Client for the backend rooted at baseURL. authScheme is
// prepended to the token in the Authorization header ("Bearer"); leave it
// empty to send the raw token.
func NewClient(baseURL string, timeout time.Duration, authScheme string) (*Client, error) {
	return NewClientWithHTTPClient(&http.Client{Timeout: timeout}, baseURL, authScheme)
}

// NewClientWithHTTPClient creates a Client with a custom http.Client.
// Intended for tests that point the client at an httptest server.
func NewClientWithHTTPClient(httpClient *http.Client, baseURL, authScheme string) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing backend URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("backend URL %q must be http or https", baseURL)
	}

	return &Client{
		http:       httpClient,
		baseURL:    u,
		authScheme: strings.TrimSpace(authScheme),
	}, nil
}

// Login posts the credentials to /auth/login and extracts the token from the
// response envelope.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var env loginEnvelope
	if err := c.do(ctx, http.MethodPost, "/auth/login", "", loginRequest{Username: username, Password: password}, &env); err != nil {
		return "", err
	}

	token := env.token()
	if token == "" {
		return "", errMissingToken
	}
	return token, nil
}

// ListUsers fetches GET /user.
func (c *Client) ListUsers(ctx context.Context, token string) ([]model.User, error) {
	var dtos []userDTO
	if err := c.do(ctx, http.MethodGet, "/user", token, nil, &dtos); err != nil {
		return nil, err
	}

	users := make([]model.User, 0, len(dtos))
	for _, d := range dtos {
		users = append(users, d.toModel())
	}
	return users, nil
}

// CreateUser posts a new record to /user.
func (c *Client) CreateUser(ctx context.Context, token string, input model.UserInput) error {
	return c.do(ctx, http.MethodPost, "/user", token, toUserRequest(input), nil)
}

// UpdateUser puts the record to /user/{id}.
func (c *Client) UpdateUser(ctx context.Context, token, id string, input model.UserInput) error {
	return c.do(ctx, http.MethodPut, "/user/"+url.PathEscape(id), token, toUserRequest(input), nil)
}

// DeleteUser deletes /user/{id}.
func (c *Client) DeleteUser(ctx context.Context, token, id string) error {
	return c.do(ctx, http.MethodDelete, "/user/"+url.PathEscape(id), token, nil, nil)
}

// do sends one request. A nil body sends no payload; a nil out discards the
// response body. Non-2xx responses become *model.APIError.
func (c *Client) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.String()+path, reader)
	if err != nil {
		return fmt.Errorf("create %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", c.authorization(token))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeAPIError(resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) authorization(token string) string {
	if c.authScheme == "" {
		return token
	}
	return c.authScheme + " " + token
}

// decodeAPIError builds an APIError from a failed response. Bodies that are
// not JSON still yield an error carrying the status code.
func decodeAPIError(resp *http.Response) error {
	apiErr := &model.APIError{Status: resp.StatusCode}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil || len(bytes.TrimSpace(raw)) == 0 {
		return apiErr
	}

	var body errorBody
	if err := json.Unmarshal(raw, &body); err != nil {
		return apiErr
	}

	apiErr.Message = body.message()
	if apiErr.Status == model.StatusUnprocessableEntity {
		apiErr.Fields = body.fields(raw)
	}
	return apiErr
}
