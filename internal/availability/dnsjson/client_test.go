package dnsjson_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"namolux/internal/availability/dnsjson"
	"namolux/pkg/domain"
	"namolux/pkg/serrors"

	"github.com/stretchr/testify/require"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(fn rtFunc) *dnsjson.Client {
	return dnsjson.New(&http.Client{Transport: fn}, "")
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClient_Check_nxdomainIsAvailable(t *testing.T) {
	c := newTestClient(func(r *http.Request) (*http.Response, error) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "dns.google", r.URL.Host)
		require.Equal(t, "blinex.com", r.URL.Query().Get("name"))
		require.Equal(t, "NS", r.URL.Query().Get("type"))

		return jsonResponse(http.StatusOK, `{"Status":3}`), nil
	})

	res, err := c.Check(context.Background(), "blinex.com")
	require.NoError(t, err)
	require.NotNil(t, res)
	require.True(t, res.Available)
	require.Equal(t, domain.ConfidenceHigh, res.Confidence)
}

func TestClient_Check_delegatedIsTaken(t *testing.T) {
	c := newTestClient(func(_ *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK,
			`{"Status":0,"Answer":[{"data":"ns1.example-dns.com."}]}`), nil
	})

	res, err := c.Check(context.Background(), "github.com")
	require.NoError(t, err)
	require.False(t, res.Available)
	require.Equal(t, domain.ConfidenceHigh, res.Confidence)
}

func TestClient_Check_authorityOnlyIsTaken(t *testing.T) {
	c := newTestClient(func(_ *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK,
			`{"Status":0,"Authority":[{"data":"a.gtld-servers.net."}]}`), nil
	})

	res, err := c.Check(context.Background(), "parkedname.com")
	require.NoError(t, err)
	require.False(t, res.Available)
}

func TestClient_Check_noErrorNoRecords(t *testing.T) {
	c := newTestClient(func(_ *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"Status":0}`), nil
	})

	res, err := c.Check(context.Background(), "oddcase.com")
	require.NoError(t, err)
	require.True(t, res.Available)
	require.Equal(t, domain.ConfidenceMedium, res.Confidence)
}

func TestClient_Check_serverFailureIsProviderError(t *testing.T) {
	c := newTestClient(func(_ *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `{"Status":2}`), nil
	})

	_, err := c.Check(context.Background(), "flaky.com")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrProvider)
}

func TestClient_Check_badHTTPStatus(t *testing.T) {
	c := newTestClient(func(_ *http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusBadGateway, `upstream down`), nil
	})

	_, err := c.Check(context.Background(), "flaky.com")
	require.Error(t, err)
	require.ErrorIs(t, err, serrors.ErrProvider)
}
