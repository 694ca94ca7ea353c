package ebay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Credentials identifies the eBay application and its OAuth endpoints.
type Credentials struct {
	ClientID     string
	ClientSecret string
	AuthorizeURL string
	TokenURL     string
	// RedirectURI is eBay's RuName, sent verbatim as redirect_uri.
	RedirectURI string
}

// HTTPError is returned when the token endpoint answers with a non-2xx
// status.
type HTTPError struct {
	StatusCode  int
	Body        string
	Code        string
	Description string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf(
		"token request failed (status %d): %s - %s",
		e.StatusCode,
		e.Code,
		e.Description,
	)
}

type tokenErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// OAuthClient implements Implementation for eBay. eBay wants client
// credentials in a Basic header on every token call, the RuName as redirect
// URI and the scope list joined with %20.
type OAuthClient struct {
	creds     Credentials
	scopes    []string
	basicAuth string
	state     StateCodec
	extra     url.Values
	client    *http.Client
	nowFunc   func() time.Time
}

// OAuthOption configures the OAuthClient.
type OAuthOption func(*OAuthClient)

// WithScopes overrides the requested scope list.
func WithScopes(scopes []string) OAuthOption {
	return func(c *OAuthClient) {
		c.scopes = scopes
	}
}

// WithStateCodec sets the codec used for the state parameter.
func WithStateCodec(s StateCodec) OAuthOption {
	return func(c *OAuthClient) {
		c.state = s
	}
}

// WithExtraAuthorizeParams adds query parameters to the authorize URL.
func WithExtraAuthorizeParams(v url.Values) OAuthOption {
	return func(c *OAuthClient) {
		c.extra = v
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) OAuthOption {
	return func(c *OAuthClient) {
		c.client = hc
	}
}

// WithNowFunc overrides the time function for testing.
func WithNowFunc(f func() time.Time) OAuthOption {
	return func(c *OAuthClient) {
		c.nowFunc = f
	}
}

// NewOAuthClient creates an eBay OAuth client. Empty endpoint URLs fall
// back to production.
func NewOAuthClient(creds Credentials, opts ...OAuthOption) *OAuthClient {
	if creds.AuthorizeURL == "" {
		creds.AuthorizeURL = DefaultAuthorizeURL
	}
	if creds.TokenURL == "" {
		creds.TokenURL = DefaultTokenURL
	}

	full, _ := ScopePreset(PresetFull) //nolint:errcheck // built-in preset

	c := &OAuthClient{
		creds:  creds,
		scopes: full,
		basicAuth: base64.StdEncoding.EncodeToString(
			[]byte(creds.ClientID + ":" + creds.ClientSecret),
		),
		client:  NewTracedClient(10 * time.Second),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Scopes returns the scopes this client requests.
func (c *OAuthClient) Scopes() []string {
	return c.scopes
}

// RedirectURI returns the RuName sent as redirect_uri.
func (c *OAuthClient) RedirectURI() string {
	return c.creds.RedirectURI
}

// AuthorizeURL builds the eBay consent URL for flowID. The scope parameter
// is appended after encoding because url.Values turns spaces into "+",
// which eBay's authorization server rejects.
func (c *OAuthClient) AuthorizeURL(flowID string) (string, error) {
	u, err := url.Parse(c.creds.AuthorizeURL)
	if err != nil {
		return "", fmt.Errorf("parsing authorize URL: %w", err)
	}

	q := url.Values{
		"response_type": {"code"},
		"client_id":     {c.creds.ClientID},
		"redirect_uri":  {c.creds.RedirectURI},
	}

	if c.state != nil {
		state, err := c.state.Encode(StateClaims{
			FlowID:      flowID,
			RedirectURI: c.creds.RedirectURI,
		})
		if err != nil {
			return "", fmt.Errorf("encoding state: %w", err)
		}
		q.Set("state", state)
	}

	for k, vs := range c.extra {
		q[k] = vs
	}

	u.RawQuery = q.Encode()

	return u.String() + "&scope=" + strings.Join(c.scopes, "%20"), nil
}

// ExchangeCode trades an authorization code for a token record.
func (c *OAuthClient) ExchangeCode(ctx context.Context, code string) (Token, error) {
	return c.tokenRequest(ctx, url.Values{
		"grant_type":   {"authorization_code"},
		"code":         {code},
		"redirect_uri": {c.creds.RedirectURI},
	})
}

// RefreshToken requests a new access token with the refresh token in token
// and returns token merged with the response.
func (c *OAuthClient) RefreshToken(ctx context.Context, token Token) (Token, error) {
	refresh := token.RefreshToken()
	if refresh == "" {
		return nil, ErrNoRefreshToken
	}

	fresh, err := c.tokenRequest(ctx, url.Values{
		"grant_type":    {"refresh_token"},
		"client_id":     {c.creds.ClientID},
		"refresh_token": {refresh},
		"scope":         {strings.Join(c.scopes, " ")},
	})
	if err != nil {
		return nil, err
	}

	return token.Merge(fresh), nil
}

func (c *OAuthClient) tokenRequest(ctx context.Context, form url.Values) (Token, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.creds.TokenURL,
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return nil, fmt.Errorf("creating token request: %w", err)
	}

	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Basic "+c.basicAuth)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing token request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var errResp tokenErrorResponse
		_ = json.Unmarshal(body, &errResp) //nolint:errcheck // best-effort error parsing
		return nil, &HTTPError{
			StatusCode:  resp.StatusCode,
			Body:        string(body),
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	var tok Token
	if err := json.Unmarshal(body, &tok); err != nil {
		return nil, fmt.Errorf("parsing token response: %w", err)
	}
	if tok == nil {
		return nil, errors.New("parsing token response: empty body")
	}

	return tok.withExpiry(c.nowFunc()), nil
}
