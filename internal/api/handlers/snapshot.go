package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/ebay-seller-metrics/internal/sensor"
	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

// SnapshotProvider returns the latest collected snapshot. It returns an
// error before the first poll.
type SnapshotProvider interface {
	Latest() (*types.Snapshot, error)
}

// SnapshotBody is the wire form of a snapshot.
type SnapshotBody struct {
	CollectedAt time.Time          `json:"collected_at" doc:"When the poll that produced the snapshot started"`
	Metrics     map[string]float64 `json:"metrics"      doc:"Every metric key with its value; failed endpoints report 0"`
	Degraded    []string           `json:"degraded"     doc:"Endpoints that failed during collection"`
}

func snapshotBody(s *types.Snapshot) SnapshotBody {
	degraded := s.Degraded
	if degraded == nil {
		degraded = []string{}
	}
	return SnapshotBody{
		CollectedAt: s.CollectedAt,
		Metrics:     s.Map(),
		Degraded:    degraded,
	}
}

// SnapshotHandler serves the latest snapshot and the sensor catalog.
type SnapshotHandler struct {
	snapshots SnapshotProvider
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(p SnapshotProvider) *SnapshotHandler {
	return &SnapshotHandler{snapshots: p}
}

// GetSnapshotOutput is the response for the latest snapshot.
type GetSnapshotOutput struct {
	Body SnapshotBody
}

// GetSnapshot returns the latest snapshot.
func (h *SnapshotHandler) GetSnapshot(_ context.Context, _ *struct{}) (*GetSnapshotOutput, error) {
	snap, err := h.snapshots.Latest()
	if err != nil {
		return nil, huma.Error404NotFound("no snapshot collected yet")
	}
	return &GetSnapshotOutput{Body: snapshotBody(snap)}, nil
}

// ListSensorsOutput is the sensor catalog joined with the latest values.
type ListSensorsOutput struct {
	Body struct {
		CollectedAt *time.Time     `json:"collected_at,omitempty" doc:"Collection time of the values; absent before the first poll"`
		Sensors     []sensor.Value `json:"sensors"`
	}
}

// ListSensors returns every sensor with its latest value. Before the first
// poll every value is zero.
func (h *SnapshotHandler) ListSensors(_ context.Context, _ *struct{}) (*ListSensorsOutput, error) {
	resp := &ListSensorsOutput{}

	snap, err := h.snapshots.Latest()
	if err != nil {
		snap = nil
	} else if snap != nil {
		collected := snap.CollectedAt
		resp.Body.CollectedAt = &collected
	}
	resp.Body.Sensors = sensor.Values(snap)
	return resp, nil
}

// GetSensorInput selects a sensor by metric key.
type GetSensorInput struct {
	Key string `path:"key" doc:"Metric key, e.g. ebay_orders_due_today"`
}

// GetSensorOutput is a single sensor value.
type GetSensorOutput struct {
	Body sensor.Value
}

// GetSensor returns one sensor with its latest value.
func (h *SnapshotHandler) GetSensor(_ context.Context, input *GetSensorInput) (*GetSensorOutput, error) {
	desc, ok := sensor.Lookup(input.Key)
	if !ok {
		return nil, huma.Error404NotFound("unknown sensor " + input.Key)
	}

	val := sensor.Value{Description: desc}
	if snap, err := h.snapshots.Latest(); err == nil && snap != nil {
		val.Value = snap.Map()[desc.Key]
	}
	return &GetSensorOutput{Body: val}, nil
}

// RegisterSnapshotRoutes registers snapshot and sensor endpoints.
func RegisterSnapshotRoutes(api huma.API, h *SnapshotHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-snapshot",
		Method:      http.MethodGet,
		Path:        "/api/v1/snapshot",
		Summary:     "Get latest snapshot",
		Description: "Returns every metric from the most recent poll together with the endpoints that failed.",
		Tags:        []string{"metrics"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetSnapshot)

	huma.Register(api, huma.Operation{
		OperationID: "list-sensors",
		Method:      http.MethodGet,
		Path:        "/api/v1/sensors",
		Summary:     "List sensors",
		Description: "Returns the sensor catalog (name, icon, unit) joined with the latest values.",
		Tags:        []string{"metrics"},
	}, h.ListSensors)

	huma.Register(api, huma.Operation{
		OperationID: "get-sensor",
		Method:      http.MethodGet,
		Path:        "/api/v1/sensors/{key}",
		Summary:     "Get sensor",
		Tags:        []string{"metrics"},
		Errors:      []int{http.StatusNotFound},
	}, h.GetSensor)
}
