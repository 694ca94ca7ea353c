package ebay

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidState is returned when an OAuth state parameter fails
// verification.
var ErrInvalidState = errors.New("invalid oauth state")

// DefaultStateTTL is how long an issued state is accepted.
const DefaultStateTTL = 30 * time.Minute

// StateClaims is the data carried through the authorize round trip.
type StateClaims struct {
	FlowID      string `json:"flow_id"`
	RedirectURI string `json:"redirect_uri"`
}

// StateCodec encodes and verifies the opaque OAuth state parameter.
type StateCodec interface {
	Encode(claims StateClaims) (string, error)
	Decode(state string) (StateClaims, error)
}

// JWTStateCodec signs state as an HS256 JWT with a short expiry.
type JWTStateCodec struct {
	secret  []byte
	ttl     time.Duration
	nowFunc func() time.Time
}

// JWTStateOption configures a JWTStateCodec.
type JWTStateOption func(*JWTStateCodec)

// WithStateTTL overrides how long an issued state stays valid.
func WithStateTTL(d time.Duration) JWTStateOption {
	return func(c *JWTStateCodec) {
		c.ttl = d
	}
}

// WithStateNowFunc overrides the time function for testing.
func WithStateNowFunc(f func() time.Time) JWTStateOption {
	return func(c *JWTStateCodec) {
		c.nowFunc = f
	}
}

// NewJWTStateCodec creates a codec signing with secret.
func NewJWTStateCodec(secret []byte, opts ...JWTStateOption) *JWTStateCodec {
	c := &JWTStateCodec{
		secret:  secret,
		ttl:     DefaultStateTTL,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type stateJWTClaims struct {
	FlowID      string `json:"flow_id"`
	RedirectURI string `json:"redirect_uri"`
	jwt.RegisteredClaims
}

// Encode signs claims into a state string.
func (c *JWTStateCodec) Encode(claims StateClaims) (string, error) {
	now := c.nowFunc()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, stateJWTClaims{
		FlowID:      claims.FlowID,
		RedirectURI: claims.RedirectURI,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing state: %w", err)
	}
	return signed, nil
}

// Decode verifies state and returns its claims.
func (c *JWTStateCodec) Decode(state string) (StateClaims, error) {
	parsed, err := jwt.ParseWithClaims(
		state,
		&stateJWTClaims{},
		func(*jwt.Token) (any, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.nowFunc),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return StateClaims{}, fmt.Errorf("%w: %w", ErrInvalidState, err)
	}

	claims, ok := parsed.Claims.(*stateJWTClaims)
	if !ok || claims.FlowID == "" {
		return StateClaims{}, fmt.Errorf("%w: missing flow id", ErrInvalidState)
	}

	return StateClaims{FlowID: claims.FlowID, RedirectURI: claims.RedirectURI}, nil
}
