// Package dnsjson provides an availability.Provider backed by a
// DNS-over-HTTPS JSON resolver. A domain with no NS delegation is treated
// as registrable.
package dnsjson

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"namolux/internal/availability"
	"namolux/pkg/domain"
	"namolux/pkg/serrors"
)

// DefaultEndpoint is the Google public DNS JSON API.
const DefaultEndpoint = "https://dns.google/resolve"

// dnsStatusNXDomain is the DNS RCODE for a name that does not exist.
const dnsStatusNXDomain = 3

// Client queries a DNS-over-HTTPS resolver for NS records. Safe for
// concurrent use.
type Client struct {
	httpClient *http.Client
	endpoint   string
}

// New constructs a Client using the provided http.Client and resolver
// endpoint. An empty endpoint selects DefaultEndpoint.
func New(httpClient *http.Client, endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	return &Client{httpClient: httpClient, endpoint: endpoint}
}

// Name identifies this provider in results and logs.
func (c *Client) Name() string { return "dns" }

// Check resolves the domain's NS records over DNS JSON.
//
// Verdict mapping: NXDOMAIN means available with high confidence; NOERROR
// with answers or authority records means taken; NOERROR with neither means
// available with medium confidence. Anything else is an error.
func (c *Client) Check(ctx context.Context, fqdn string) (*domain.AvailabilityCheckResult, error) {
	reqURL := fmt.Sprintf("%s?name=%s&type=NS", c.endpoint, url.QueryEscape(fqdn))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request: %w", err)
	}
	req.Header.Set("Accept", "application/dns-json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrUnavailable, err, "dns query failed")
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, serrors.With(serrors.ErrProvider, "dns resolver returned status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var payload struct {
		Status int `json:"Status"`
		Answer []struct {
			Data string `json:"data"`
		} `json:"Answer"`
		Authority []struct {
			Data string `json:"data"`
		} `json:"Authority"`
	}
	if err := json.Unmarshal(b, &payload); err != nil {
		return nil, serrors.Wrap(serrors.ErrProvider, err, "could not decode dns response")
	}

	switch payload.Status {
	case dnsStatusNXDomain:
		return &domain.AvailabilityCheckResult{
			Domain:     fqdn,
			Available:  true,
			Confidence: domain.ConfidenceHigh,
		}, nil
	case 0:
		if len(payload.Answer) > 0 || len(payload.Authority) > 0 {
			return &domain.AvailabilityCheckResult{
				Domain:     fqdn,
				Available:  false,
				Confidence: domain.ConfidenceHigh,
			}, nil
		}

		return &domain.AvailabilityCheckResult{
			Domain:     fqdn,
			Available:  true,
			Confidence: domain.ConfidenceMedium,
		}, nil
	default:
		return nil, serrors.With(serrors.ErrProvider, "unexpected dns status %d", payload.Status)
	}
}

// Ensure Client conforms to the availability.Provider interface.
var _ availability.Provider = (*Client)(nil)
