package ebay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/oauth2"

	"github.com/donaldgifford/ebay-seller-metrics/internal/metrics"
)

const refreshBuffer = 60 * time.Second

var (
	// ErrNoToken is returned before any token has been installed.
	ErrNoToken = errors.New("no oauth token: authorize the application first")
	// ErrNoRefreshToken is returned when the access token is stale and the
	// record has no refresh token to renew it with.
	ErrNoRefreshToken = errors.New("token has no refresh token")
)

// Session holds the current token record and renews it through an
// Implementation when it is expired or within 60 seconds of expiry.
// Safe for concurrent use; concurrent callers share one refresh.
type Session struct {
	impl Implementation
	log  *slog.Logger

	mu      sync.Mutex
	token   Token
	nowFunc func() time.Time
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithInitialToken seeds the session, typically with a record holding only
// a refresh token from configuration.
func WithInitialToken(t Token) SessionOption {
	return func(s *Session) {
		s.token = t
	}
}

// WithSessionLogger sets a custom logger.
func WithSessionLogger(l *slog.Logger) SessionOption {
	return func(s *Session) {
		s.log = l
	}
}

// WithSessionNowFunc overrides the time function for testing.
func WithSessionNowFunc(f func() time.Time) SessionOption {
	return func(s *Session) {
		s.nowFunc = f
	}
}

// NewSession creates a session refreshing through impl.
func NewSession(impl Implementation, opts ...SessionOption) *Session {
	s := &Session{
		impl:    impl,
		log:     slog.Default(),
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetToken replaces the current token record.
func (s *Session) SetToken(t Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = t
}

// Current returns a copy of the current token record, or nil.
func (s *Session) Current() Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == nil {
		return nil
	}
	return s.token.Merge(nil)
}

// Authorized reports whether the session holds anything it can get an
// access token from.
func (s *Session) Authorized() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token.AccessToken() != "" || s.token.RefreshToken() != ""
}

// Token implements TokenProvider.
func (s *Session) Token(ctx context.Context) (string, error) {
	tok, err := s.ensureValid(ctx)
	if err != nil {
		return "", err
	}
	return tok.AccessToken(), nil
}

// TokenSource adapts the session to oauth2.TokenSource.
func (s *Session) TokenSource(ctx context.Context) oauth2.TokenSource {
	return &sessionTokenSource{ctx: ctx, session: s}
}

type sessionTokenSource struct {
	ctx     context.Context //nolint:containedctx // oauth2.TokenSource has no ctx parameter
	session *Session
}

func (ts *sessionTokenSource) Token() (*oauth2.Token, error) {
	tok, err := ts.session.ensureValid(ts.ctx)
	if err != nil {
		return nil, err
	}
	return tok.OAuth2(), nil
}

func (s *Session) ensureValid(ctx context.Context) (Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token == nil {
		return nil, ErrNoToken
	}

	if s.token.Valid(s.nowFunc(), refreshBuffer) {
		return s.token.Merge(nil), nil
	}

	if s.token.RefreshToken() == "" {
		return nil, ErrNoRefreshToken
	}

	s.log.Debug("refreshing ebay access token")

	fresh, err := s.impl.RefreshToken(ctx, s.token)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("failure").Inc()
		return nil, fmt.Errorf("refreshing token: %w", err)
	}
	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()

	s.token = fresh
	return s.token.Merge(nil), nil
}
