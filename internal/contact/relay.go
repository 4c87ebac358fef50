package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	// DefaultRelayURL is the Web3Forms submission endpoint.
	DefaultRelayURL = "https://api.web3forms.com/submit"

	// DefaultFromName labels the sender in the delivered email.
	DefaultFromName = "Portfolio Contact Form"

	DefaultTimeout = 15 * time.Second

	maxResponseSize = 1 << 20
)

// Payload is the JSON body posted to the relay.
type Payload struct {
	AccessKey string `json:"access_key"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	FromName  string `json:"from_name"`
}

// NewPayload combines a form with the relay credentials. An empty fromName
// is replaced with DefaultFromName.
func NewPayload(f Form, accessKey, fromName string) Payload {
	if fromName == "" {
		fromName = DefaultFromName
	}
	return Payload{
		AccessKey: accessKey,
		Name:      f.Name,
		Email:     f.Email,
		Subject:   f.Subject,
		Message:   f.Message,
		FromName:  fromName,
	}
}

// Response is the relay's verdict.
type Response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Relay delivers a payload.
type Relay interface {
	Send(ctx context.Context, p Payload) (Response, error)
}

// RelayClient posts payloads to a form relay over HTTP.
type RelayClient struct {
	url    string
	client *http.Client
}

// RelayOption configures a RelayClient.
type RelayOption func(*RelayClient)

// WithHTTPClient replaces the HTTP client used for requests.
func WithHTTPClient(client *http.Client) RelayOption {
	return func(c *RelayClient) { c.client = client }
}

// WithTimeout bounds each request. Zero disables the bound.
func WithTimeout(timeout time.Duration) RelayOption {
	return func(c *RelayClient) { c.client.Timeout = timeout }
}

// NewRelayClient creates a client for the relay at rawURL.
func NewRelayClient(rawURL string, opts ...RelayOption) (*RelayClient, error) {
	if rawURL == "" {
		return nil, ErrRelayURLRequired
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidRelayURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("%w: scheme must be http or https", ErrInvalidRelayURL)
	}

	c := &RelayClient{
		url:    rawURL,
		client: &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// URL returns the relay endpoint.
func (c *RelayClient) URL() string {
	return c.url
}

// Send posts p once. The relay answers with a JSON verdict whatever the HTTP
// status, so the body is decoded for every status code. Failing to reach the
// relay or to decode its answer is an error.
func (c *RelayClient) Send(ctx context.Context, p Payload) (Response, error) {
	body, err := json.Marshal(p)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrRelayRequest, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrRelayRequest, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return Response{}, fmt.Errorf("%w: %v", ErrRelayRequest, err)
	}
	defer resp.Body.Close() //nolint:errcheck

	var result Response
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseSize)).Decode(&result); err != nil {
		return Response{}, fmt.Errorf("%w: status %d: %v", ErrRelayResponse, resp.StatusCode, err)
	}

	return result, nil
}
