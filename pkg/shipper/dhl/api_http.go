package dhl

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/tournevent/shipbridge/pkg/shipper"
)

const maxErrorSnippet = 256

// HTTPAPIClient is the production implementation of APIClient.
type HTTPAPIClient struct {
	endpoint   string
	httpClient *http.Client
}

// HTTPAPIClientConfig holds configuration for the HTTP client.
type HTTPAPIClientConfig struct {
	Endpoint   string
	Timeout    time.Duration
	HTTPClient *http.Client // optional, overrides Timeout
}

// NewHTTPAPIClient creates a new HTTP-based API client for production use.
func NewHTTPAPIClient(cfg HTTPAPIClientConfig) *HTTPAPIClient {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &HTTPAPIClient{
		endpoint:   endpoint,
		httpClient: httpClient,
	}
}

// Submit posts the request document once. There is no retry.
func (c *HTTPAPIClient) Submit(ctx context.Context, body []byte) ([]byte, error) {
	target, err := c.submitURL()
	if err != nil {
		return nil, &shipper.TransportError{Carrier: carrierName, Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(body))
	if err != nil {
		return nil, &shipper.TransportError{Carrier: carrierName, Cause: err}
	}
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Accept", "application/xml")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &shipper.TransportError{Carrier: carrierName, Cause: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &shipper.TransportError{Carrier: carrierName, StatusCode: resp.StatusCode, Cause: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &shipper.TransportError{
			Carrier:    carrierName,
			StatusCode: resp.StatusCode,
			Cause:      fmt.Errorf("%s: %s", resp.Status, snippet(respBody)),
		}
	}

	return respBody, nil
}

func (c *HTTPAPIClient) submitURL() (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}
	q := u.Query()
	q.Set("isUTF8Support", "true")
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func snippet(body []byte) string {
	s := strings.TrimSpace(string(body))
	if len(s) > maxErrorSnippet {
		s = s[:maxErrorSnippet] + "..."
	}
	return s
}

var _ APIClient = (*HTTPAPIClient)(nil)
