package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/ebay-seller-metrics/internal/ebay"
	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

// PollRunner runs a poll cycle on demand.
type PollRunner interface {
	RunPoll(ctx context.Context) (*types.Snapshot, error)
}

// PollHandler handles manual poll triggers. Triggers are throttled to one
// per interval.
type PollHandler struct {
	poller  PollRunner
	limiter *rate.Limiter
}

// NewPollHandler creates a PollHandler allowing one trigger per interval.
func NewPollHandler(p PollRunner, interval time.Duration) *PollHandler {
	return &PollHandler{
		poller:  p,
		limiter: rate.NewLimiter(rate.Every(interval), 1),
	}
}

// TriggerPollOutput is the snapshot produced by a manual poll.
type TriggerPollOutput struct {
	Body SnapshotBody
}

// TriggerPoll runs a poll now and returns its snapshot.
func (h *PollHandler) TriggerPoll(ctx context.Context, _ *struct{}) (*TriggerPollOutput, error) {
	if !h.limiter.Allow() {
		return nil, huma.Error429TooManyRequests("poll triggered too recently, try again later")
	}

	snap, err := h.poller.RunPoll(ctx)
	switch {
	case errors.Is(err, ebay.ErrNoToken), errors.Is(err, ebay.ErrNoRefreshToken):
		return nil, huma.Error503ServiceUnavailable("not authorized with eBay: visit /oauth/authorize")
	case err != nil && snap == nil:
		return nil, huma.Error500InternalServerError("poll failed: " + err.Error())
	}

	// A snapshot that could not be persisted is still returned.
	return &TriggerPollOutput{Body: snapshotBody(snap)}, nil
}

// RegisterPollRoutes registers the manual poll endpoint.
func RegisterPollRoutes(api huma.API, h *PollHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "trigger-poll",
		Method:      http.MethodPost,
		Path:        "/api/v1/poll",
		Summary:     "Trigger a poll",
		Description: "Collects every seller metric from eBay now and returns the snapshot.",
		Tags:        []string{"poll"},
		Errors: []int{
			http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusServiceUnavailable,
		},
	}, h.TriggerPoll)
}
