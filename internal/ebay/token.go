package ebay

import (
	"encoding/json"
	"maps"
	"math"
	"strconv"
	"time"

	"golang.org/x/oauth2"
)

// Token is an OAuth2 token record as returned by the eBay token endpoint,
// kept as a generic JSON object so fields this package does not know about
// survive refresh merges.
type Token map[string]any

// Token record fields.
const (
	fieldAccessToken           = "access_token"
	fieldRefreshToken          = "refresh_token"
	fieldTokenType             = "token_type"
	fieldExpiresIn             = "expires_in"
	fieldExpiresAt             = "expires_at"
	fieldRefreshTokenExpiresIn = "refresh_token_expires_in"
)

// AccessToken returns the bearer access token, or "" when absent.
func (t Token) AccessToken() string {
	return t.str(fieldAccessToken)
}

// RefreshToken returns the refresh token, or "" when absent.
func (t Token) RefreshToken() string {
	return t.str(fieldRefreshToken)
}

// TokenType returns the token type, or "" when absent.
func (t Token) TokenType() string {
	return t.str(fieldTokenType)
}

// ExpiresIn returns the access token lifetime in seconds, or 0.
func (t Token) ExpiresIn() int64 {
	return int64(t.num(fieldExpiresIn))
}

// RefreshTokenExpiresIn returns the refresh token lifetime in seconds, or 0.
func (t Token) RefreshTokenExpiresIn() int64 {
	return int64(t.num(fieldRefreshTokenExpiresIn))
}

// ExpiresAt returns the absolute access token expiry, or the zero time when
// the record carries none.
func (t Token) ExpiresAt() time.Time {
	v := t.num(fieldExpiresAt)
	if v == 0 {
		return time.Time{}
	}
	sec, frac := math.Modf(v)
	return time.Unix(int64(sec), int64(frac*1e9))
}

// Valid reports whether the access token is present and not within leeway of
// its expiry at now. A token without a known expiry is treated as valid.
func (t Token) Valid(now time.Time, leeway time.Duration) bool {
	if t.AccessToken() == "" {
		return false
	}
	exp := t.ExpiresAt()
	if exp.IsZero() {
		return true
	}
	return now.Before(exp.Add(-leeway))
}

// Merge returns a copy of t with every field of newer copied over it.
// Fields newer does not carry, such as a refresh token the server did not
// rotate, are kept from t.
func (t Token) Merge(newer Token) Token {
	out := make(Token, len(t)+len(newer))
	maps.Copy(out, t)
	maps.Copy(out, newer)
	return out
}

// withExpiry stamps expires_at from expires_in relative to now.
func (t Token) withExpiry(now time.Time) Token {
	if _, ok := t[fieldExpiresIn]; !ok {
		return t
	}
	t[fieldExpiresAt] = float64(now.Unix() + t.ExpiresIn())
	return t
}

// OAuth2 converts the record into an *oauth2.Token.
func (t Token) OAuth2() *oauth2.Token {
	tok := &oauth2.Token{
		AccessToken:  t.AccessToken(),
		TokenType:    t.TokenType(),
		RefreshToken: t.RefreshToken(),
		Expiry:       t.ExpiresAt(),
		ExpiresIn:    t.ExpiresIn(),
	}
	return tok.WithExtra(map[string]any(t))
}

func (t Token) str(key string) string {
	s, _ := t[key].(string)
	return s
}

func (t Token) num(key string) float64 {
	switch v := t[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64() //nolint:errcheck // malformed reads as 0
		return f
	case string:
		f, _ := strconv.ParseFloat(v, 64) //nolint:errcheck // malformed reads as 0
		return f
	default:
		return 0
	}
}
