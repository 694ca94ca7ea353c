// Package ebay talks to the eBay seller REST APIs: the OAuth2
// authorization-code flow with eBay's non-standard token endpoint, and the
// collector that folds fulfillment, finances, analytics, inventory and
// post-order responses into a metric snapshot.
package ebay

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

// Production endpoints.
const (
	DefaultAuthorizeURL = "https://auth.ebay.com/oauth2/authorize"
	DefaultTokenURL     = "https://api.ebay.com/identity/v1/oauth2/token" //nolint:gosec // not a credential
	DefaultAPIURL       = "https://api.ebay.com"
	DefaultAPIZURL      = "https://apiz.ebay.com"
	DefaultMarketplace  = "EBAY_US"
)

// NewTracedClient returns an HTTP client whose requests are recorded as
// OpenTelemetry client spans.
func NewTracedClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout:   timeout,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
}

// TokenProvider returns a currently valid bearer access token.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// Implementation is the OAuth2 authorization-code flow against eBay.
type Implementation interface {
	// AuthorizeURL returns the URL the user visits to grant access.
	AuthorizeURL(flowID string) (string, error)
	// ExchangeCode trades an authorization code for a token record.
	ExchangeCode(ctx context.Context, code string) (Token, error)
	// RefreshToken obtains a new access token and merges it over token.
	RefreshToken(ctx context.Context, token Token) (Token, error)
}

// MetricsCollector produces a snapshot from a bearer access token. It never
// fails as a whole; endpoints that fail leave their metrics at zero.
type MetricsCollector interface {
	Collect(ctx context.Context, accessToken string) *types.Snapshot
}
