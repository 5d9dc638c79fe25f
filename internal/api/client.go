package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// RequestTimeout bounds every call to the remote API.
const RequestTimeout = 10 * time.Second

var (
	// ErrUnauthorized means the bearer credential was rejected; the session
	// is invalidated externally on this response.
	ErrUnauthorized = errors.New("session expired, please login again")

	// ErrForbidden means the authenticated user lacks permission.
	ErrForbidden = errors.New("access denied, insufficient permissions")
)

// APIError carries a server-reported failure for a non-2xx response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api error: status %d", e.Status)
}

// TokenProvider supplies the bearer credential attached to every request.
type TokenProvider interface {
	Token() string
}

// Client is the single outbound client for the remote commerce API. All
// calls run through a circuit breaker; responses are unwrapped from the
// {data, meta, message} envelope the API uses.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	breaker *gobreaker.CircuitBreaker[*response]
}

// response is the decoded API envelope.
type response struct {
	Data    json.RawMessage `json:"data"`
	Meta    json.RawMessage `json:"meta"`
	Message string          `json:"message"`
	Err     string          `json:"error"`
}

func NewClient(baseURL string, tokens TokenProvider) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/") + "/",
		http: &http.Client{
			Timeout:   RequestTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens: tokens,
		breaker: gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
			Name: "commerce-api",
			// Client-side rejections must not trip the breaker; only
			// transport and server failures count.
			IsSuccessful: func(err error) bool {
				var apiErr *APIError
				if errors.As(err, &apiErr) {
					return apiErr.Status < http.StatusInternalServerError
				}
				return err == nil ||
					errors.Is(err, ErrUnauthorized) ||
					errors.Is(err, ErrForbidden)
			},
		}),
	}
}

// Get performs a GET against the given endpoint and returns the envelope's
// data field.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodGet, withParams(endpoint, params), nil)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Post sends the body as JSON and returns the envelope's data field.
func (c *Client) Post(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Put sends the body as JSON and returns the envelope's data field.
func (c *Client) Put(ctx context.Context, endpoint string, body any) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodPut, endpoint, body)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Delete performs a DELETE and returns the envelope's data field.
func (c *Client) Delete(ctx context.Context, endpoint string) (json.RawMessage, error) {
	resp, err := c.do(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

func (c *Client) do(ctx context.Context, method, endpoint string, body any) (*response, error) {
	return c.breaker.Execute(func() (*response, error) {
		var reader io.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return nil, fmt.Errorf("marshal request body failed: %w", err)
			}
			reader = bytes.NewReader(data)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
		if err != nil {
			return nil, fmt.Errorf("build request failed: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}

		httpResp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("network error: %w", err)
		}
		defer httpResp.Body.Close()

		raw, err := io.ReadAll(httpResp.Body)
		if err != nil {
			return nil, fmt.Errorf("read response failed: %w", err)
		}

		var resp response
		if len(raw) > 0 {
			// A non-JSON body on an error response is not itself an error;
			// the status code decides below.
			_ = json.Unmarshal(raw, &resp)
		}

		switch {
		case httpResp.StatusCode == http.StatusUnauthorized:
			return nil, ErrUnauthorized
		case httpResp.StatusCode == http.StatusForbidden:
			return nil, ErrForbidden
		case httpResp.StatusCode >= 400:
			msg := resp.Message
			if msg == "" {
				msg = resp.Err
			}
			return nil, &APIError{Status: httpResp.StatusCode, Message: msg}
		}

		return &resp, nil
	})
}

func withParams(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}
