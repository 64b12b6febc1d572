// Package skillswapsdk is a client for the SkillSwap marketplace API.
package skillswapsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// DefaultBaseURL is the local development backend.
const DefaultBaseURL = "http://localhost:8000"

// DefaultTimeout bounds every request when Client.Timeout is unset.
const DefaultTimeout = 10 * time.Second

// RequestEditorFn may modify an outgoing request after the identity header is set.
type RequestEditorFn func(ctx context.Context, req *http.Request) error

// Client is the SkillSwap HTTP API client.
type Client struct {
	BaseURL    string
	Identity   *IdentityStore
	HTTPClient *http.Client
	Timeout    time.Duration
	Logger     *log.Logger

	// RequestEditors run in order on every request.
	RequestEditors []RequestEditorFn
	// OnUnauthorized is called for every 401 before the error is returned.
	OnUnauthorized func(ctx context.Context, err *APIError)
}

// New creates a client with sane defaults. A nil identity gets a fresh store.
func New(baseURL string, identity *IdentityStore) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = DefaultBaseURL
	}
	if identity == nil {
		identity = NewIdentityStore()
	}
	return &Client{
		BaseURL:  baseURL,
		Identity: identity,
		Timeout:  DefaultTimeout,
	}
}

// Response is the raw result of a call. Transformers decide how to read it.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Decode unmarshals the body into out.
func (r *Response) Decode(out any) error {
	if r == nil || len(bytes.TrimSpace(r.Body)) == 0 {
		return errors.New("empty response body")
	}
	return json.Unmarshal(r.Body, out)
}

func (c *Client) do(ctx context.Context, method, endpoint string, query url.Values, body any) (*Response, error) {
	timeout := c.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := c.newRequest(ctx, method, endpoint, query, body)
	if err != nil {
		return nil, err
	}
	res, err := c.httpClient().Do(req)
	if err != nil {
		return nil, transportError(err)
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, transportError(err)
	}
	resp := &Response{StatusCode: res.StatusCode, Header: res.Header, Body: data}
	if res.StatusCode < 200 || res.StatusCode >= 300 {
		apiErr := statusError(resp)
		if res.StatusCode == http.StatusUnauthorized {
			c.unauthorized(ctx, req, apiErr)
		}
		return nil, apiErr
	}
	return resp, nil
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, query url.Values, body any) (*http.Request, error) {
	target := c.base() + "/" + strings.TrimLeft(endpoint, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	var reader io.Reader = http.NoBody
	if body != nil {
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
		reader = &buf
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	c.attachIdentity(req)
	for _, edit := range c.RequestEditors {
		if err := edit(ctx, req); err != nil {
			return nil, err
		}
	}
	return req, nil
}

// attachIdentity reads the store once per request; later changes only affect later requests.
func (c *Client) attachIdentity(req *http.Request) {
	req.Header.Set(HeaderUserID, c.Identity.ActorID())
}

func (c *Client) unauthorized(ctx context.Context, req *http.Request, apiErr *APIError) {
	c.logger().Printf("WARNING: unauthorized response for %s %s (actor_id=%s): %s",
		req.Method, req.URL.Path, req.Header.Get(HeaderUserID), apiErr.Detail)
	if c.OnUnauthorized != nil {
		c.OnUnauthorized(ctx, apiErr)
	}
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

func (c *Client) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

func (c *Client) base() string {
	return strings.TrimRight(c.BaseURL, "/")
}
