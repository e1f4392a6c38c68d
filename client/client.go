package client

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-resty/resty/v2"

	"github.com/oren0115/ecommerce-sub000/initializers"
	"github.com/oren0115/ecommerce-sub000/models"
	"github.com/oren0115/ecommerce-sub000/session"
)

const (
	// LoginPath is where the auth-failure handler sends the user.
	LoginPath = "/auth/login"
	// authPathPrefix marks screens that must never trigger a login
	// redirect, otherwise a failed login would redirect to itself.
	authPathPrefix = "/auth/"
)

// Client is the single point of egress for all backend communication. It
// injects the bearer token on the way out and intercepts authentication
// failures on the way back.
type Client struct {
	http     *resty.Client
	store    session.Store
	validate *validator.Validate

	// currentPath reports which screen the user is on; injected so the
	// redirect-loop guard is testable without a browser location.
	currentPath   func() string
	onAuthFailure func()
	redirecting   atomic.Bool

	retryBudget int
	backoff     func(attempt int) time.Duration
}

// Option customizes a Client at construction time.
type Option func(*Client)

// WithCurrentPath injects the source of the user's current screen path.
func WithCurrentPath(fn func() string) Option {
	return func(c *Client) { c.currentPath = fn }
}

// WithAuthFailureHandler injects what happens after a 401 clears the
// session. In the storefront this navigates to LoginPath.
func WithAuthFailureHandler(fn func()) Option {
	return func(c *Client) { c.onAuthFailure = fn }
}

// WithBackoff overrides the retry backoff schedule.
func WithBackoff(fn func(attempt int) time.Duration) Option {
	return func(c *Client) { c.backoff = fn }
}

// New builds a client against exactly one base URL. All requests are
// relative to it and carry Content-Type: application/json by default.
func New(cfg initializers.Config, store session.Store, opts ...Option) *Client {
	c := &Client{
		store:         store,
		validate:      validator.New(),
		currentPath:   func() string { return "/" },
		onAuthFailure: func() {},
		retryBudget:   cfg.RetryBudget,
		backoff: func(attempt int) time.Duration {
			return time.Duration(1<<attempt) * time.Second
		},
	}
	if c.retryBudget <= 0 {
		c.retryBudget = 3
	}

	c.http = resty.New().
		SetBaseURL(strings.TrimRight(cfg.BaseURL, "/")).
		SetTimeout(cfg.RequestTimeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	// A missing token is not an error here; the server decides whether
	// the endpoint requires auth.
	c.http.OnBeforeRequest(func(_ *resty.Client, req *resty.Request) error {
		if token := c.store.Token(); token != "" {
			req.SetHeader("Authorization", "Bearer "+token)
		}
		return nil
	})

	c.http.OnAfterResponse(func(_ *resty.Client, resp *resty.Response) error {
		if resp.StatusCode() == http.StatusUnauthorized {
			c.handleAuthRejection()
		}
		return nil
	})

	// Transport-level failures (timeout, cancellation, refused
	// connection) are not proof of invalid auth: log and let the error
	// propagate with the session untouched.
	c.http.OnError(func(req *resty.Request, err error) {
		log.Printf("request to %s failed: %v", req.URL, err)
	})

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// handleAuthRejection runs on every 401. On an auth screen it does nothing,
// so a wrong password on the login page does not bounce the user in a loop.
// Anywhere else it clears both session slots and fires the auth-failure
// handler at most once per client; clearing an already-empty store is a
// no-op, so racing 401s converge on the same end state.
func (c *Client) handleAuthRejection() {
	if strings.HasPrefix(c.currentPath(), authPathPrefix) {
		return
	}
	if err := c.store.Clear(); err != nil {
		log.Println("failed to clear session after auth rejection:", err)
	}
	if c.redirecting.CompareAndSwap(false, true) {
		c.onAuthFailure()
	}
}

// Authenticated reports whether the client currently holds a session.
func (c *Client) Authenticated() bool {
	return session.Authenticated(c.store)
}

// CurrentUser returns the profile from the session store, if any.
func (c *Client) CurrentUser() (*models.User, bool) {
	return c.store.User()
}

// do issues one request and decodes the response body into out (when out is
// non-nil). Bodies wrapped in the standard envelope are unwrapped first;
// bare bodies are decoded directly.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	if resp.IsError() {
		return c.apiError(resp)
	}
	return decodeBody(resp.Body(), out)
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// validateInput rejects bad payloads locally so they never reach the wire.
func (c *Client) validateInput(v any) error {
	if err := c.validate.Struct(v); err != nil {
		return &ValidationError{Message: err.Error()}
	}
	return nil
}

func (c *Client) apiError(resp *resty.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode()}
	var envelope models.APIResponse
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil {
		apiErr.Message = envelope.ErrorMessage()
	}
	return apiErr
}

func decodeBody(raw []byte, out any) error {
	if out == nil || len(raw) == 0 {
		return nil
	}
	var envelope models.APIResponse
	if err := json.Unmarshal(raw, &envelope); err == nil && len(envelope.Data) > 0 {
		return json.Unmarshal(envelope.Data, out)
	}
	return json.Unmarshal(raw, out)
}

// sleep waits for d or until ctx is done, whichever comes first.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
