package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier logs digests instead of delivering them.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier returns a notifier for deployments without a webhook.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &NoOpNotifier{log: log}
}

// SendDigest records the digest at debug level and never fails.
func (n *NoOpNotifier) SendDigest(_ context.Context, digest *Digest) error {
	if digest == nil {
		return nil
	}
	n.log.Debug("digest not sent, no notification backend",
		"orders_due_today", digest.OrdersDueToday,
		"new_orders", digest.NewOrders(),
		"degraded", len(digest.Degraded),
	)
	return nil
}
