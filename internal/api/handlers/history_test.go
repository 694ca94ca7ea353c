package handlers_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/ebay-seller-metrics/internal/api/handlers"
	"github.com/donaldgifford/ebay-seller-metrics/internal/store"
	"github.com/donaldgifford/ebay-seller-metrics/internal/store/mocks"
	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

func TestListPolls(t *testing.T) {
	t.Parallel()

	completed := collected.Add(3 * time.Second)

	tests := []struct {
		name       string
		path       string
		wantLimit  int
		runs       []types.PollRun
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:      "default limit",
			path:      "/api/v1/polls",
			wantLimit: 20,
			runs: []types.PollRun{{
				ID:          "run-1",
				StartedAt:   collected,
				CompletedAt: &completed,
				Status:      types.PollStatusSucceeded,
			}},
			wantStatus: http.StatusOK,
			wantBody:   `"status":"succeeded"`,
		},
		{
			name:       "explicit limit and empty history",
			path:       "/api/v1/polls?limit=5",
			wantLimit:  5,
			wantStatus: http.StatusOK,
			wantBody:   `[]`,
		},
		{
			name:       "store error",
			path:       "/api/v1/polls",
			wantLimit:  20,
			err:        errors.New("db down"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "listing poll runs failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ms := mocks.NewMockStore(t)
			ms.EXPECT().ListPollRuns(mock.Anything, tt.wantLimit).Return(tt.runs, tt.err).Once()

			_, api := humatest.New(t)
			handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(ms))

			resp := api.Get(tt.path)
			require.Equal(t, tt.wantStatus, resp.Code)
			assert.Contains(t, resp.Body.String(), tt.wantBody)
		})
	}
}

func TestListPolls_LimitOutOfRange(t *testing.T) {
	t.Parallel()

	ms := mocks.NewMockStore(t)

	_, api := humatest.New(t)
	handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(ms))

	resp := api.Get("/api/v1/polls?limit=1000")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
}

func TestListSnapshots(t *testing.T) {
	t.Parallel()

	ms := mocks.NewMockStore(t)
	since := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	rec := testSnapshot().Record("snap-1")
	ms.EXPECT().
		ListSnapshots(mock.Anything, mock.MatchedBy(func(q *store.SnapshotQuery) bool {
			return q.Limit == 10 &&
				q.Offset == 0 &&
				q.Since != nil && q.Since.Equal(since) &&
				q.Until == nil
		})).
		Return([]types.SnapshotRecord{*rec}, 42, nil).Once()

	_, api := humatest.New(t)
	handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(ms))

	resp := api.Get("/api/v1/snapshots?limit=10&since=2026-10-01T00:00:00Z")
	require.Equal(t, http.StatusOK, resp.Code)

	var body struct {
		Total     int                    `json:"total"`
		Snapshots []types.SnapshotRecord `json:"snapshots"`
	}
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
	assert.Equal(t, 42, body.Total)
	require.Len(t, body.Snapshots, 1)
	assert.Equal(t, "snap-1", body.Snapshots[0].ID)
	assert.InDelta(t, 3.0, body.Snapshots[0].Metrics[types.KeyOrdersDueToday], 0)
}

func TestListSnapshots_StoreError(t *testing.T) {
	t.Parallel()

	ms := mocks.NewMockStore(t)
	ms.EXPECT().ListSnapshots(mock.Anything, mock.Anything).Return(nil, 0, errors.New("db down")).Once()

	_, api := humatest.New(t)
	handlers.RegisterHistoryRoutes(api, handlers.NewHistoryHandler(ms))

	resp := api.Get("/api/v1/snapshots")
	require.Equal(t, http.StatusInternalServerError, resp.Code)
	assert.Contains(t, resp.Body.String(), "listing snapshots failed")
}
