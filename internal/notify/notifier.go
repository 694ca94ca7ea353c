// Package notify defines the notification interface and implementations
// for seller digest delivery.
package notify

import (
	"context"
	"time"

	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

// Digest summarizes a poll for a notification. It is sent when the number
// of orders due today goes up.
type Digest struct {
	OrdersDueToday         int64
	PreviousOrdersDueToday int64
	TotalUnfulfilledOrders int64
	OrdersAwaitingPayment  int64
	SalesToday             float64
	AvailableFunds         float64
	ReturnRequests         int64
	Degraded               []string
	CollectedAt            time.Time
}

// NewDigest builds a digest from the current snapshot and the one before it.
// prev may be nil.
func NewDigest(prev, cur *types.Snapshot) *Digest {
	d := &Digest{
		OrdersDueToday:         cur.OrdersDueToday,
		TotalUnfulfilledOrders: cur.TotalUnfulfilledOrders,
		OrdersAwaitingPayment:  cur.OrdersAwaitingPayment,
		SalesToday:             cur.SalesToday,
		AvailableFunds:         cur.AvailableFunds,
		ReturnRequests:         cur.ReturnRequests,
		Degraded:               cur.Degraded,
		CollectedAt:            cur.CollectedAt,
	}
	if prev != nil {
		d.PreviousOrdersDueToday = prev.OrdersDueToday
	}
	return d
}

// NewOrders returns how many more orders are due today than at the
// previous poll.
func (d *Digest) NewOrders() int64 {
	return max(d.OrdersDueToday-d.PreviousOrdersDueToday, 0)
}

// Notifier defines the interface for sending seller digests.
type Notifier interface {
	SendDigest(ctx context.Context, digest *Digest) error
}
