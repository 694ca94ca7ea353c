package client

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/donaldgifford/ebay-seller-metrics/internal/sensor"
	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

// Snapshot is the latest collected snapshot as served by the API.
type Snapshot struct {
	CollectedAt time.Time          `json:"collected_at"`
	Metrics     map[string]float64 `json:"metrics"`
	Degraded    []string           `json:"degraded"`
}

// Sensors is the sensor catalog joined with the latest values.
type Sensors struct {
	CollectedAt *time.Time     `json:"collected_at,omitempty"`
	Sensors     []sensor.Value `json:"sensors"`
}

// SnapshotPage is a page of stored snapshots.
type SnapshotPage struct {
	Total     int                    `json:"total"`
	Snapshots []types.SnapshotRecord `json:"snapshots"`
}

// AuthStatus reports whether the server holds an eBay token.
type AuthStatus struct {
	Authorized  bool       `json:"authorized"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	Refreshable bool       `json:"refreshable"`
}

// GetSnapshot returns the latest snapshot.
func (c *Client) GetSnapshot(ctx context.Context) (*Snapshot, error) {
	var s Snapshot
	if err := c.get(ctx, "/api/v1/snapshot", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListSensors returns every sensor with its latest value.
func (c *Client) ListSensors(ctx context.Context) (*Sensors, error) {
	var s Sensors
	if err := c.get(ctx, "/api/v1/sensors", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// TriggerPoll runs a poll on the server and returns its snapshot.
func (c *Client) TriggerPoll(ctx context.Context) (*Snapshot, error) {
	var s Snapshot
	if err := c.post(ctx, "/api/v1/poll", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// ListPolls returns up to limit recent poll runs.
func (c *Client) ListPolls(ctx context.Context, limit int) ([]types.PollRun, error) {
	var runs []types.PollRun
	if err := c.get(ctx, "/api/v1/polls", url.Values{"limit": {strconv.Itoa(limit)}}, &runs); err != nil {
		return nil, err
	}
	return runs, nil
}

// ListSnapshots returns stored snapshots, newest first.
func (c *Client) ListSnapshots(ctx context.Context, limit, offset int) (*SnapshotPage, error) {
	q := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"offset": {strconv.Itoa(offset)},
	}

	var page SnapshotPage
	if err := c.get(ctx, "/api/v1/snapshots", q, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// GetAuthStatus reports the server's token state.
func (c *Client) GetAuthStatus(ctx context.Context) (*AuthStatus, error) {
	var s AuthStatus
	if err := c.get(ctx, "/api/v1/auth", nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}
