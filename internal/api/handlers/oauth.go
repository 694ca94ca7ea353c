package handlers

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/google/uuid"

	"github.com/donaldgifford/ebay-seller-metrics/internal/ebay"
)

// Authorizer builds consent URLs and exchanges authorization codes.
type Authorizer interface {
	AuthorizeURL(flowID string) (string, error)
	RedirectURI() string
	ExchangeCode(ctx context.Context, code string) (ebay.Token, error)
}

// TokenStore holds the token the poller uses.
type TokenStore interface {
	SetToken(t ebay.Token)
	Current() ebay.Token
	Authorized() bool
}

// OAuthHandler drives the browser side of the authorization-code flow.
// Each flow id it issues is accepted by Callback once, within flowTTL.
type OAuthHandler struct {
	auth    Authorizer
	state   ebay.StateCodec
	tokens  TokenStore
	flowTTL time.Duration
	nowFunc func() time.Time

	mu      sync.Mutex
	pending map[string]time.Time
}

// OAuthHandlerOption configures an OAuthHandler.
type OAuthHandlerOption func(*OAuthHandler)

// WithFlowTTL overrides how long an issued flow waits for its callback.
func WithFlowTTL(d time.Duration) OAuthHandlerOption {
	return func(h *OAuthHandler) {
		h.flowTTL = d
	}
}

// WithOAuthNowFunc overrides the time function for testing.
func WithOAuthNowFunc(f func() time.Time) OAuthHandlerOption {
	return func(h *OAuthHandler) {
		h.nowFunc = f
	}
}

// NewOAuthHandler creates a new OAuthHandler. state must be the codec the
// Authorizer signs state values with.
func NewOAuthHandler(a Authorizer, state ebay.StateCodec, tokens TokenStore, opts ...OAuthHandlerOption) *OAuthHandler {
	h := &OAuthHandler{
		auth:    a,
		state:   state,
		tokens:  tokens,
		flowTTL: ebay.DefaultStateTTL,
		nowFunc: time.Now,
		pending: make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *OAuthHandler) issueFlow() string {
	now := h.nowFunc()
	id := uuid.NewString()

	h.mu.Lock()
	defer h.mu.Unlock()
	for k, exp := range h.pending {
		if !now.Before(exp) {
			delete(h.pending, k)
		}
	}
	h.pending[id] = now.Add(h.flowTTL)
	return id
}

// consumeFlow reports whether id was issued and has not expired. It is
// removed either way.
func (h *OAuthHandler) consumeFlow(id string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	exp, ok := h.pending[id]
	delete(h.pending, id)
	return ok && h.nowFunc().Before(exp)
}

// AuthorizeOutput redirects the browser to eBay's consent page.
type AuthorizeOutput struct {
	Status   int
	Location string `header:"Location"`
}

// Authorize redirects to the eBay authorization URL.
func (h *OAuthHandler) Authorize(_ context.Context, _ *struct{}) (*AuthorizeOutput, error) {
	u, err := h.auth.AuthorizeURL(h.issueFlow())
	if err != nil {
		return nil, huma.Error500InternalServerError("building authorize URL failed: " + err.Error())
	}
	return &AuthorizeOutput{Status: http.StatusFound, Location: u}, nil
}

// CallbackInput is what eBay sends back after consent.
type CallbackInput struct {
	Code             string `query:"code"`
	State            string `query:"state"`
	Error            string `query:"error"`
	ErrorDescription string `query:"error_description"`
}

// TokenStatusBody describes the installed token without exposing it.
type TokenStatusBody struct {
	Authorized  bool       `json:"authorized"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Refreshable bool       `json:"refreshable"`
}

// CallbackOutput reports the installed token.
type CallbackOutput struct {
	Body TokenStatusBody
}

// Callback verifies state, exchanges the code and installs the token.
func (h *OAuthHandler) Callback(ctx context.Context, input *CallbackInput) (*CallbackOutput, error) {
	if input.Error != "" {
		return nil, huma.Error400BadRequest("authorization denied: " + input.Error + " " + input.ErrorDescription)
	}
	if input.Code == "" {
		return nil, huma.Error400BadRequest("missing code")
	}
	claims, err := h.state.Decode(input.State)
	if err != nil {
		return nil, huma.Error400BadRequest("invalid state")
	}
	if claims.RedirectURI != h.auth.RedirectURI() {
		return nil, huma.Error400BadRequest("state redirect_uri mismatch")
	}
	if !h.consumeFlow(claims.FlowID) {
		return nil, huma.Error400BadRequest("unknown or reused authorization flow")
	}

	tok, err := h.auth.ExchangeCode(ctx, input.Code)
	if err != nil {
		var herr *ebay.HTTPError
		if errors.As(err, &herr) {
			return nil, huma.Error502BadGateway("code exchange rejected: " + herr.Error())
		}
		return nil, huma.Error500InternalServerError("code exchange failed: " + err.Error())
	}

	h.tokens.SetToken(tok)
	return &CallbackOutput{Body: tokenStatus(h.tokens)}, nil
}

// TokenStatusOutput reports whether a token is installed.
type TokenStatusOutput struct {
	Body TokenStatusBody
}

// Status reports the current token state.
func (h *OAuthHandler) Status(_ context.Context, _ *struct{}) (*TokenStatusOutput, error) {
	return &TokenStatusOutput{Body: tokenStatus(h.tokens)}, nil
}

func tokenStatus(ts TokenStore) TokenStatusBody {
	body := TokenStatusBody{Authorized: ts.Authorized()}
	cur := ts.Current()
	if exp := cur.ExpiresAt(); !exp.IsZero() {
		body.ExpiresAt = &exp
	}
	body.Refreshable = cur.RefreshToken() != ""
	return body
}

// RegisterOAuthRoutes registers the authorization flow endpoints.
func RegisterOAuthRoutes(api huma.API, h *OAuthHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "oauth-authorize",
		Method:      http.MethodGet,
		Path:        "/oauth/authorize",
		Summary:     "Start eBay authorization",
		Description: "Redirects to the eBay consent page with the configured scopes.",
		Tags:        []string{"oauth"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.Authorize)

	huma.Register(api, huma.Operation{
		OperationID: "oauth-callback",
		Method:      http.MethodGet,
		Path:        "/oauth/callback",
		Summary:     "Complete eBay authorization",
		Description: "Verifies state, exchanges the authorization code and installs the token.",
		Tags:        []string{"oauth"},
		Errors: []int{
			http.StatusBadRequest,
			http.StatusInternalServerError,
			http.StatusBadGateway,
		},
	}, h.Callback)

	huma.Register(api, huma.Operation{
		OperationID: "oauth-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/auth",
		Summary:     "Get authorization status",
		Tags:        []string{"oauth"},
	}, h.Status)
}
