package metrics

import (
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
	assert.NotNil(t, EbayAPICallsTotal)
	assert.NotNil(t, EbayEndpointFailuresTotal)
	assert.NotNil(t, EbayRequestDuration)
	assert.NotNil(t, TokenRefreshesTotal)
	assert.NotNil(t, PollsTotal)
	assert.NotNil(t, PollDuration)
	assert.NotNil(t, LastPollTimestamp)
	assert.NotNil(t, SchedulerNextPollTimestamp)
	assert.NotNil(t, SnapshotValue)
	assert.NotNil(t, NotificationsSentTotal)
	assert.NotNil(t, NotificationFailuresTotal)
	assert.NotNil(t, NotificationDuration)
}

func gaugeValue(t *testing.T, key string) float64 {
	t.Helper()

	m := &dto.Metric{}
	require.NoError(t, SnapshotValue.WithLabelValues(key).Write(m))
	return m.GetGauge().GetValue()
}

func TestPublishSnapshot(t *testing.T) {
	collected := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

	PublishSnapshot(&types.Snapshot{
		OrdersDueToday:   4,
		AvailableFunds:   812.4,
		ClickThroughRate: 3.25,
		CollectedAt:      collected,
	})

	assert.InDelta(t, 4.0, gaugeValue(t, types.KeyOrdersDueToday), 0.0001)
	assert.InDelta(t, 812.4, gaugeValue(t, types.KeyAvailableFunds), 0.0001)
	assert.InDelta(t, 3.25, gaugeValue(t, types.KeyClickThroughRate), 0.0001)
	assert.Zero(t, gaugeValue(t, types.KeyRefundsThisMonth))

	m := &dto.Metric{}
	require.NoError(t, LastPollTimestamp.Write(m))
	assert.InDelta(t, float64(collected.Unix()), m.GetGauge().GetValue(), 0.5)
}

func TestPublishSnapshot_Nil(t *testing.T) {
	assert.NotPanics(t, func() { PublishSnapshot(nil) })
}
