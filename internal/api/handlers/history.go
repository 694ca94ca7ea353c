package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ebay-seller-metrics/internal/store"
	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

// HistoryProvider defines the store methods required by the history handler.
type HistoryProvider interface {
	ListSnapshots(ctx context.Context, q *store.SnapshotQuery) ([]types.SnapshotRecord, int, error)
	ListPollRuns(ctx context.Context, limit int) ([]types.PollRun, error)
}

// HistoryHandler serves stored snapshots and poll runs.
type HistoryHandler struct {
	store HistoryProvider
}

// NewHistoryHandler creates a new HistoryHandler.
func NewHistoryHandler(s HistoryProvider) *HistoryHandler {
	return &HistoryHandler{store: s}
}

// ListPollsInput bounds the poll history.
type ListPollsInput struct {
	Limit int `query:"limit" default:"20" minimum:"1" maximum:"200" doc:"Maximum runs to return"`
}

// ListPollsOutput is the poll run history, newest first.
type ListPollsOutput struct {
	Body []types.PollRun
}

// ListPolls returns recent poll runs.
func (h *HistoryHandler) ListPolls(ctx context.Context, input *ListPollsInput) (*ListPollsOutput, error) {
	runs, err := h.store.ListPollRuns(ctx, input.Limit)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing poll runs failed: " + err.Error())
	}

	if runs == nil {
		runs = []types.PollRun{}
	}

	return &ListPollsOutput{Body: runs}, nil
}

// ListSnapshotsInput filters the snapshot history.
type ListSnapshotsInput struct {
	Since  time.Time `query:"since"  doc:"Only snapshots collected at or after this time (RFC 3339)"`
	Until  time.Time `query:"until"  doc:"Only snapshots collected before this time (RFC 3339)"`
	Limit  int       `query:"limit"  default:"50" minimum:"1" maximum:"500"`
	Offset int       `query:"offset" default:"0" minimum:"0"`
}

// ListSnapshotsOutput is a page of stored snapshots, newest first.
type ListSnapshotsOutput struct {
	Body struct {
		Total     int                    `json:"total"`
		Snapshots []types.SnapshotRecord `json:"snapshots"`
	}
}

// ListSnapshots returns stored snapshots.
func (h *HistoryHandler) ListSnapshots(
	ctx context.Context,
	input *ListSnapshotsInput,
) (*ListSnapshotsOutput, error) {
	q := &store.SnapshotQuery{Limit: input.Limit, Offset: input.Offset}
	if !input.Since.IsZero() {
		q.Since = &input.Since
	}
	if !input.Until.IsZero() {
		q.Until = &input.Until
	}

	recs, total, err := h.store.ListSnapshots(ctx, q)
	if err != nil {
		return nil, huma.Error500InternalServerError("listing snapshots failed: " + err.Error())
	}

	resp := &ListSnapshotsOutput{}
	resp.Body.Total = total
	resp.Body.Snapshots = recs
	if resp.Body.Snapshots == nil {
		resp.Body.Snapshots = []types.SnapshotRecord{}
	}
	return resp, nil
}

// RegisterHistoryRoutes registers poll and snapshot history endpoints.
func RegisterHistoryRoutes(api huma.API, h *HistoryHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "list-polls",
		Method:      http.MethodGet,
		Path:        "/api/v1/polls",
		Summary:     "List poll runs",
		Description: "Returns recent poll cycle records (newest first).",
		Tags:        []string{"poll"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListPolls)

	huma.Register(api, huma.Operation{
		OperationID: "list-snapshots",
		Method:      http.MethodGet,
		Path:        "/api/v1/snapshots",
		Summary:     "List stored snapshots",
		Tags:        []string{"metrics"},
		Errors:      []int{http.StatusInternalServerError},
	}, h.ListSnapshots)
}
