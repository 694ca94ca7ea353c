package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-seller-metrics/internal/metrics"
	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

func testDigest() *Digest {
	return &Digest{
		OrdersDueToday:         4,
		PreviousOrdersDueToday: 1,
		TotalUnfulfilledOrders: 9,
		OrdersAwaitingPayment:  2,
		SalesToday:             123.456,
		AvailableFunds:         812.4,
		ReturnRequests:         1,
		CollectedAt:            time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC),
	}
}

func fieldValue(embed discordEmbed, name string) string {
	for _, f := range embed.Fields {
		if f.Name == name {
			return f.Value
		}
	}
	return ""
}

func TestDiscordNotifier_SendDigest(t *testing.T) {
	t.Parallel()

	degraded := testDigest()
	degraded.Degraded = []string{"funds_summary", "traffic_report"}

	tests := []struct {
		name       string
		digest     *Digest
		opts       []DiscordOption
		statusCode int
		retryAfter string
		respBody   string
		wantErr    string
		wantColor  int
		wantUser   string
	}{
		{
			name:       "complete poll uses green",
			digest:     testDigest(),
			statusCode: http.StatusNoContent,
			wantColor:  colorGreen,
		},
		{
			name:       "degraded poll uses orange",
			digest:     degraded,
			statusCode: http.StatusNoContent,
			wantColor:  colorOrange,
		},
		{
			name:       "username override",
			digest:     testDigest(),
			opts:       []DiscordOption{WithUsername("Seller Bot")},
			statusCode: http.StatusOK,
			wantColor:  colorGreen,
			wantUser:   "Seller Bot",
		},
		{
			name:       "rate limited",
			digest:     testDigest(),
			statusCode: http.StatusTooManyRequests,
			wantErr:    "discord rate limited (429)",
		},
		{
			name:       "rate limited with retry after",
			digest:     testDigest(),
			statusCode: http.StatusTooManyRequests,
			retryAfter: "3",
			wantErr:    "retry after 3s",
		},
		{
			name:       "bad request carries body",
			digest:     testDigest(),
			statusCode: http.StatusBadRequest,
			respBody:   `{"message": "Invalid Form Body"}` + "\n",
			wantErr:    `discord returned 400: {"message": "Invalid Form Body"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var received discordWebhookPayload

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
				assert.Equal(t, http.MethodPost, r.Method)
				assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))

				if tt.retryAfter != "" {
					w.Header().Set("Retry-After", tt.retryAfter)
				}
				w.WriteHeader(tt.statusCode)
				_, _ = w.Write([]byte(tt.respBody))
			}))
			defer srv.Close()

			err := NewDiscordNotifier(srv.URL, tt.opts...).SendDigest(context.Background(), tt.digest)

			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Len(t, received.Embeds, 1)
			assert.Equal(t, tt.wantUser, received.Username)

			embed := received.Embeds[0]
			assert.Equal(t, tt.wantColor, embed.Color)
			assert.Equal(t, "eBay: 4 orders due today", embed.Title)
			assert.Equal(t, sellerHubOrdersURL, embed.URL)
			assert.Equal(t, "3", fieldValue(embed, "New Since Last Poll"))
			assert.Equal(t, "9", fieldValue(embed, "Unfulfilled"))
			assert.Equal(t, "$123.46", fieldValue(embed, "Sales Today"))
			assert.Equal(t, "$812.40", fieldValue(embed, "Available Funds"))
			assert.Equal(t, "2026-10-14T12:00:00Z", embed.Timestamp)

			if len(tt.digest.Degraded) > 0 {
				assert.Equal(t, "Unavailable this poll: funds_summary, traffic_report", embed.Description)
			} else {
				assert.Empty(t, embed.Description)
			}
		})
	}
}

func TestBuildEmbed_NoTimestamp(t *testing.T) {
	t.Parallel()

	embed := buildEmbed(&Digest{OrdersDueToday: 1})
	assert.Empty(t, embed.Timestamp)
	assert.Len(t, embed.Fields, 6)
	assert.Equal(t, "1", fieldValue(embed, "New Since Last Poll"))
}

func TestDiscordNotifier_Unreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()

	err := NewDiscordNotifier(srv.URL).SendDigest(context.Background(), testDigest())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sending discord webhook")
}

func TestNewDigest(t *testing.T) {
	t.Parallel()

	cur := &types.Snapshot{OrdersDueToday: 2, SalesToday: 10, Degraded: []string{"x"}}

	d := NewDigest(nil, cur)
	assert.Equal(t, int64(2), d.NewOrders())
	assert.Equal(t, []string{"x"}, d.Degraded)

	d = NewDigest(&types.Snapshot{OrdersDueToday: 5}, cur)
	assert.Equal(t, int64(5), d.PreviousOrdersDueToday)
	assert.Zero(t, d.NewOrders())
}

func getNotificationHistogramSampleCount() uint64 {
	ch := make(chan prometheus.Metric, 1)
	metrics.NotificationDuration.Collect(ch)
	m := <-ch
	pb := &dto.Metric{}
	_ = m.Write(pb)
	return pb.GetHistogram().GetSampleCount()
}

func TestSendDigest_ObservesNotificationDuration(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	before := getNotificationHistogramSampleCount()
	require.NoError(t, NewDiscordNotifier(srv.URL).SendDigest(context.Background(), testDigest()))
	assert.Equal(t, before+1, getNotificationHistogramSampleCount())
}
