// Package rdap provides an availability.Provider backed by the Verisign
// RDAP registry service. It only answers for .com domains and declares
// itself not applicable for everything else.
package rdap

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"namolux/internal/availability"
	"namolux/pkg/domain"
	"namolux/pkg/serrors"
)

// DefaultEndpoint is the Verisign RDAP base URL for the .com registry.
const DefaultEndpoint = "https://rdap.verisign.com/com/v1/domain/"

// Client queries an RDAP registry. Safe for concurrent use.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// New constructs a Client using the provided http.Client and RDAP base URL.
// An empty endpoint selects DefaultEndpoint.
func New(httpClient *http.Client, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}

	return &Client{httpClient: httpClient, endpoint: endpoint}
}

// Name identifies this provider in results and logs.
func (c *Client) Name() string { return "rdap" }

// Check looks the domain up in the registry. A 404 means the domain has no
// registration record and is available; a 200 means it is taken. Domains
// outside .com yield (nil, nil) so the resolver can fall through.
func (c *Client) Check(ctx context.Context, fqdn string) (*domain.AvailabilityCheckResult, error) {
	if !strings.HasSuffix(strings.ToLower(fqdn), ".com") {
		return nil, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+fqdn, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/rdap+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "rdap query failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch resp.StatusCode {
	case http.StatusNotFound:
		return &domain.AvailabilityCheckResult{
			Domain:     fqdn,
			Available:  true,
			Confidence: domain.ConfidenceMedium,
		}, nil
	case http.StatusOK:
		return &domain.AvailabilityCheckResult{
			Domain:     fqdn,
			Available:  false,
			Confidence: domain.ConfidenceMedium,
		}, nil
	default:
		return nil, serrors.With(serrors.ErrProvider, "rdap registry returned status %d", resp.StatusCode)
	}
}

var _ availability.Provider = (*Client)(nil)
