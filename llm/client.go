package llm

import (
	"context"
	"fmt"
	"sync"
)

// Provider is the interface every completion backend implements.
type Provider interface {
	// Name returns the provider identifier, e.g. "ollama".
	Name() string
	// Complete executes a completion request.
	Complete(ctx context.Context, req Request) (*Response, error)
}

// Client routes requests to registered providers and applies the retry
// policy around each call.
type Client struct {
	mu              sync.RWMutex
	providers       map[string]Provider
	defaultProvider string
	retry           RetryPolicy
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithProvider registers a provider under the given name.
func WithProvider(name string, provider Provider) ClientOption {
	return func(c *Client) {
		c.providers[name] = provider
	}
}

// WithDefaultProvider sets the provider used when a request names none.
func WithDefaultProvider(name string) ClientOption {
	return func(c *Client) {
		c.defaultProvider = name
	}
}

// WithRetryPolicy overrides the default retry policy.
func WithRetryPolicy(policy RetryPolicy) ClientOption {
	return func(c *Client) {
		c.retry = policy
	}
}

// NewClient creates a client. If exactly one provider is registered it
// becomes the default.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		providers: make(map[string]Provider),
		retry:     DefaultRetryPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.defaultProvider == "" && len(c.providers) == 1 {
		for name := range c.providers {
			c.defaultProvider = name
		}
	}
	return c
}

// RegisterProvider adds a provider after construction. The first registered
// provider becomes the default if none is set.
func (c *Client) RegisterProvider(name string, provider Provider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.providers[name] = provider
	if c.defaultProvider == "" {
		c.defaultProvider = name
	}
}

// Complete routes the request to its provider, retrying retryable failures.
func (c *Client) Complete(ctx context.Context, req Request) (*Response, error) {
	provider, err := c.resolveProvider(req)
	if err != nil {
		return nil, err
	}
	if req.Provider == "" {
		req.Provider = provider.Name()
	}
	return Retry(ctx, c.retry, func(ctx context.Context) (*Response, error) {
		return provider.Complete(ctx, req)
	})
}

func (c *Client) resolveProvider(req Request) (Provider, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	name := req.Provider
	if name == "" {
		name = c.defaultProvider
	}
	if name == "" {
		return nil, &ConfigurationError{ClientError{
			Message: "no provider specified and no default provider configured",
		}}
	}
	provider, ok := c.providers[name]
	if !ok {
		return nil, &ConfigurationError{ClientError{
			Message: fmt.Sprintf("provider %q is not registered", name),
		}}
	}
	return provider, nil
}
