package ebay_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-seller-metrics/internal/ebay"
)

func TestJWTStateCodec_RoundTrip(t *testing.T) {
	t.Parallel()

	codec := ebay.NewJWTStateCodec([]byte("secret"))

	state, err := codec.Encode(ebay.StateClaims{FlowID: "flow-1", RedirectURI: "runame"})
	require.NoError(t, err)

	claims, err := codec.Decode(state)
	require.NoError(t, err)
	assert.Equal(t, "flow-1", claims.FlowID)
	assert.Equal(t, "runame", claims.RedirectURI)
}

func TestJWTStateCodec_Rejects(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	issuer := ebay.NewJWTStateCodec(
		[]byte("secret"),
		ebay.WithStateTTL(time.Minute),
		ebay.WithStateNowFunc(func() time.Time { return now }),
	)

	valid, err := issuer.Encode(ebay.StateClaims{FlowID: "flow-1"})
	require.NoError(t, err)

	noFlow, err := issuer.Encode(ebay.StateClaims{})
	require.NoError(t, err)

	noneSigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"flow_id": "flow-1",
		"exp":     now.Add(time.Hour).Unix(),
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name    string
		decoder *ebay.JWTStateCodec
		state   string
	}{
		{
			name:    "garbage",
			decoder: issuer,
			state:   "not-a-jwt",
		},
		{
			name:    "wrong secret",
			decoder: ebay.NewJWTStateCodec([]byte("other")),
			state:   valid,
		},
		{
			name: "expired",
			decoder: ebay.NewJWTStateCodec(
				[]byte("secret"),
				ebay.WithStateNowFunc(func() time.Time { return now.Add(2 * time.Minute) }),
			),
			state: valid,
		},
		{
			name:    "missing flow id",
			decoder: issuer,
			state:   noFlow,
		},
		{
			name:    "unsigned",
			decoder: issuer,
			state:   noneSigned,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := tt.decoder.Decode(tt.state)
			require.ErrorIs(t, err, ebay.ErrInvalidState)
		})
	}
}
