package engine

import (
	"context"
	"slices"

	"github.com/donaldgifford/ebay-seller-metrics/internal/ebay"
	"github.com/donaldgifford/ebay-seller-metrics/internal/metrics"
	"github.com/donaldgifford/ebay-seller-metrics/internal/notify"
	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

// dueTodayIncreased reports whether cur has more orders due today than prev.
// Snapshots where the unfulfilled orders endpoint failed carry no order
// counts and never trigger.
func dueTodayIncreased(prev, cur *types.Snapshot) bool {
	if prev == nil || cur == nil {
		return false
	}
	if ordersUnknown(prev) || ordersUnknown(cur) {
		return false
	}
	if !sameLocalDay(prev, cur) {
		return cur.OrdersDueToday > 0
	}
	return cur.OrdersDueToday > prev.OrdersDueToday
}

func ordersUnknown(s *types.Snapshot) bool {
	return slices.Contains(s.Degraded, ebay.EndpointUnfulfilledOrders)
}

func sameLocalDay(a, b *types.Snapshot) bool {
	ay, am, ad := a.CollectedAt.Local().Date()
	by, bm, bd := b.CollectedAt.Local().Date()
	return ay == by && am == bm && ad == bd
}

// maybeNotify sends a digest when orders due today went up. Send failures
// are logged and counted; they never fail the poll.
func (p *Poller) maybeNotify(ctx context.Context, prev, cur *types.Snapshot) {
	if !dueTodayIncreased(prev, cur) {
		return
	}

	digest := notify.NewDigest(prev, cur)
	if !sameLocalDay(prev, cur) {
		digest.PreviousOrdersDueToday = 0
	}

	if err := p.notifier.SendDigest(ctx, digest); err != nil {
		metrics.NotificationFailuresTotal.Inc()
		p.log.Error("sending digest", "error", err)
		return
	}

	metrics.NotificationsSentTotal.Inc()
	p.log.Info("digest sent",
		"orders_due_today", digest.OrdersDueToday,
		"new_orders", digest.NewOrders(),
	)
}
