package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/corpchat/internal/client/models"
	"github.com/dmitrijs2005/corpchat/internal/logging"
)

const (
	pathRegister = "/api/auth/register/"
	pathLogin    = "/api/auth/login/"
	pathLogout   = "/api/auth/logout/"
	pathMessages = "/api/messages/"
	pathProfile  = "/api/profile/"
)

// maxErrorBody caps how much of an error response is read for parsing.
const maxErrorBody = 64 << 10

type HTTPClient struct {
	baseURL *url.URL
	http    *http.Client
	logger  logging.Logger
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient builds a REST client for the API at baseURL. Credentials are
// pulled from tokens on every request. base is the underlying transport; nil
// means http.DefaultTransport.
func NewHTTPClient(baseURL string, tokens TokenSource, base http.RoundTripper, logger logging.Logger) (*HTTPClient, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("base URL %q must include scheme and host", baseURL)
	}
	if logger == nil {
		logger = logging.Nop{}
	}

	return &HTTPClient{
		baseURL: u,
		http:    &http.Client{Transport: newAuthTransport(tokens, base)},
		logger:  logger.With("module", "api_client"),
	}, nil
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (c *HTTPClient) Register(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, pathRegister, nil, credentialsRequest{username, password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, username, password string) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, pathLogin, nil, credentialsRequest{username, password}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context) (string, error) {
	var out struct {
		Detail string `json:"detail"`
	}
	if err := c.do(ctx, http.MethodPost, pathLogout, nil, nil, &out); err != nil {
		return "", err
	}
	return out.Detail, nil
}

// ListMessages fetches one page of history. Non-positive limit falls back to
// the server default page size of 50; negative offset is treated as 0.
func (c *HTTPClient) ListMessages(ctx context.Context, limit, offset int) (*models.MessagePage, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("offset", strconv.Itoa(offset))

	var out models.MessagePage
	if err := c.do(ctx, http.MethodGet, pathMessages, q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) SendMessage(ctx context.Context, content string) (*models.Message, error) {
	in := struct {
		Content string `json:"content"`
	}{Content: content}

	var out models.Message
	if err := c.do(ctx, http.MethodPost, pathMessages, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.Identity, error) {
	var out models.Identity
	if err := c.do(ctx, http.MethodGet, pathProfile, nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, username string) (*models.Identity, error) {
	in := struct {
		Username string `json:"username"`
	}{Username: username}

	var out models.Identity
	if err := c.do(ctx, http.MethodPut, pathProfile, nil, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = strings.TrimRight(u.Path, "/") + path
	if query != nil {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

// do performs one exchange: encode in as JSON (when non-nil), send, and decode
// a 2xx body into out. Non-2xx statuses become *APIError.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		c.logger.Debug(ctx, "request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	c.logger.Debug(ctx, "request done", "method", method, "path", path, "status", resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return parseAPIError(resp.StatusCode, b)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
