// Package types defines the domain types shared across ebay-seller-metrics.
package types

import (
	"time"
)

// Metric keys. The set is closed: every snapshot renders all of them.
const (
	KeyTotalUnfulfilledOrders = "ebay_total_unfulfilled_orders"
	KeyOrdersDueToday         = "ebay_orders_due_today"
	KeyOrdersAwaitingPayment  = "ebay_orders_awaiting_payment"
	KeyFulfilledOrders        = "ebay_fulfilled_orders"
	KeyCancelledOrders        = "ebay_cancelled_orders"
	KeyAvailableFunds         = "ebay_available_funds"
	KeyFundsOnHold            = "ebay_funds_on_hold"
	KeyProcessingFunds        = "ebay_processing_funds"
	KeyTotalFunds             = "ebay_total_funds"
	KeySalesToday             = "ebay_sales_today"
	KeySalesThisWeek          = "ebay_sales_this_week"
	KeySalesThisMonth         = "ebay_sales_this_month"
	KeyRefundsToday           = "ebay_refunds_today"
	KeyRefundsThisWeek        = "ebay_refunds_this_week"
	KeyRefundsThisMonth       = "ebay_refunds_this_month"
	KeyReturnRequests         = "ebay_return_requests"
	KeyCancellationRequests   = "ebay_cancellation_requests"
	KeyActiveListings         = "ebay_active_listings"
	KeyListingImpressions     = "ebay_listing_impressions"
	KeyListingPageViews       = "ebay_listing_page_views"
	KeyClickThroughRate       = "ebay_click_through_rate"
)

// Snapshot is one complete result of a poll cycle. The zero value is a valid
// snapshot with every metric at 0.
type Snapshot struct {
	TotalUnfulfilledOrders int64
	OrdersDueToday         int64
	OrdersAwaitingPayment  int64
	FulfilledOrders        int64
	CancelledOrders        int64

	AvailableFunds  float64
	FundsOnHold     float64
	ProcessingFunds float64
	TotalFunds      float64

	SalesToday       float64
	SalesThisWeek    float64
	SalesThisMonth   float64
	RefundsToday     float64
	RefundsThisWeek  float64
	RefundsThisMonth float64

	ReturnRequests       int64
	CancellationRequests int64
	ActiveListings       int64

	ListingImpressions int64
	ListingPageViews   int64
	ClickThroughRate   float64

	// CollectedAt is when the poll that produced the snapshot started.
	CollectedAt time.Time
	// Degraded names the upstream endpoints that failed during collection.
	// Their metrics stayed at zero.
	Degraded []string
}

type field struct {
	key   string
	count *int64
	value *float64
}

// fields maps every metric key onto the snapshot field that holds it,
// in display order.
func (s *Snapshot) fields() []field {
	return []field{
		{key: KeyTotalUnfulfilledOrders, count: &s.TotalUnfulfilledOrders},
		{key: KeyOrdersDueToday, count: &s.OrdersDueToday},
		{key: KeyOrdersAwaitingPayment, count: &s.OrdersAwaitingPayment},
		{key: KeyFulfilledOrders, count: &s.FulfilledOrders},
		{key: KeyCancelledOrders, count: &s.CancelledOrders},
		{key: KeyAvailableFunds, value: &s.AvailableFunds},
		{key: KeyFundsOnHold, value: &s.FundsOnHold},
		{key: KeyProcessingFunds, value: &s.ProcessingFunds},
		{key: KeyTotalFunds, value: &s.TotalFunds},
		{key: KeySalesToday, value: &s.SalesToday},
		{key: KeySalesThisWeek, value: &s.SalesThisWeek},
		{key: KeySalesThisMonth, value: &s.SalesThisMonth},
		{key: KeyRefundsToday, value: &s.RefundsToday},
		{key: KeyRefundsThisWeek, value: &s.RefundsThisWeek},
		{key: KeyRefundsThisMonth, value: &s.RefundsThisMonth},
		{key: KeyReturnRequests, count: &s.ReturnRequests},
		{key: KeyCancellationRequests, count: &s.CancellationRequests},
		{key: KeyActiveListings, count: &s.ActiveListings},
		{key: KeyListingImpressions, count: &s.ListingImpressions},
		{key: KeyListingPageViews, count: &s.ListingPageViews},
		{key: KeyClickThroughRate, value: &s.ClickThroughRate},
	}
}

// Keys returns every metric key in display order.
func Keys() []string {
	var s Snapshot
	fs := s.fields()
	keys := make([]string, len(fs))
	for i, f := range fs {
		keys[i] = f.key
	}
	return keys
}

// Map renders the snapshot as metric key to value. Every key is present.
func (s *Snapshot) Map() map[string]float64 {
	fs := s.fields()
	m := make(map[string]float64, len(fs))
	for _, f := range fs {
		if f.count != nil {
			m[f.key] = float64(*f.count)
			continue
		}
		m[f.key] = *f.value
	}
	return m
}

// SnapshotFromMap rebuilds a snapshot from its Map rendering. Unknown keys
// are ignored and missing keys stay at zero.
func SnapshotFromMap(m map[string]float64) *Snapshot {
	s := &Snapshot{}
	for _, f := range s.fields() {
		v, ok := m[f.key]
		if !ok {
			continue
		}
		if f.count != nil {
			*f.count = int64(v)
			continue
		}
		*f.value = v
	}
	return s
}

// Record converts the snapshot into its persisted form.
func (s *Snapshot) Record(id string) *SnapshotRecord {
	degraded := s.Degraded
	if degraded == nil {
		degraded = []string{}
	}
	return &SnapshotRecord{
		ID:          id,
		CollectedAt: s.CollectedAt,
		Metrics:     s.Map(),
		Degraded:    degraded,
	}
}

// SnapshotRecord is a stored snapshot.
type SnapshotRecord struct {
	ID          string             `json:"id"           db:"id"`
	CollectedAt time.Time          `json:"collected_at" db:"collected_at"`
	Metrics     map[string]float64 `json:"metrics"      db:"metrics"`
	Degraded    []string           `json:"degraded"     db:"degraded"`
}

// Snapshot converts the record back into a Snapshot.
func (r *SnapshotRecord) Snapshot() *Snapshot {
	s := SnapshotFromMap(r.Metrics)
	s.CollectedAt = r.CollectedAt
	s.Degraded = r.Degraded
	return s
}

// Poll run statuses.
const (
	PollStatusRunning   = "running"
	PollStatusSucceeded = "succeeded"
	PollStatusFailed    = "failed"
	PollStatusCrashed   = "crashed"
)

// PollRun records a single execution of the poll cycle.
type PollRun struct {
	ID                string     `json:"id"                     db:"id"`
	StartedAt         time.Time  `json:"started_at"             db:"started_at"`
	CompletedAt       *time.Time `json:"completed_at,omitempty" db:"completed_at"`
	Status            string     `json:"status"                 db:"status"`
	ErrorText         string     `json:"error_text,omitempty"   db:"error_text"`
	DegradedEndpoints int        `json:"degraded_endpoints"     db:"degraded_endpoints"`
}
