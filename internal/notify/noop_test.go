package notify

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoOpNotifier_SendDigest(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	n := NewNoOpNotifier(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	require.NoError(t, n.SendDigest(context.Background(), &Digest{
		OrdersDueToday:         3,
		PreviousOrdersDueToday: 1,
	}))
	assert.Contains(t, buf.String(), "orders_due_today=3")
	assert.Contains(t, buf.String(), "new_orders=2")

	buf.Reset()
	require.NoError(t, n.SendDigest(context.Background(), nil))
	assert.Empty(t, buf.String())
}

func TestNewNoOpNotifier_NilLogger(t *testing.T) {
	t.Parallel()

	assert.NoError(t, NewNoOpNotifier(nil).SendDigest(context.Background(), &Digest{}))
}

var (
	_ Notifier = (*NoOpNotifier)(nil)
	_ Notifier = (*DiscordNotifier)(nil)
)
