// Package sensor describes how each seller metric is presented: display
// name, icon and unit.
package sensor

import (
	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

// Units.
const (
	UnitUSD     = "USD"
	UnitPercent = "%"
)

// Description is the presentation metadata of one metric key.
type Description struct {
	Key  string `json:"key"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	Unit string `json:"unit,omitempty"`
}

// Value is a description joined with a snapshot value.
type Value struct {
	Description
	Value float64 `json:"value"`
}

var catalog = []Description{
	{Key: types.KeyTotalUnfulfilledOrders, Name: "eBay Total Unfulfilled Orders", Icon: "mdi:package-variant-closed"},
	{Key: types.KeyOrdersDueToday, Name: "eBay Orders Due Today", Icon: "mdi:package-variant-closed"},
	{Key: types.KeyAvailableFunds, Name: "eBay Available Funds", Icon: "mdi:currency-usd", Unit: UnitUSD},
	{Key: types.KeyFundsOnHold, Name: "eBay Funds on Hold", Icon: "mdi:currency-usd", Unit: UnitUSD},
	{Key: types.KeyProcessingFunds, Name: "eBay Funds Processing", Icon: "mdi:currency-usd", Unit: UnitUSD},
	{Key: types.KeyTotalFunds, Name: "eBay Total Funds", Icon: "mdi:currency-usd", Unit: UnitUSD},
	{Key: types.KeySalesToday, Name: "eBay Sales Today", Icon: "mdi:currency-usd", Unit: UnitUSD},
	{Key: types.KeySalesThisWeek, Name: "eBay Sales This Week", Icon: "mdi:currency-usd", Unit: UnitUSD},
	{Key: types.KeySalesThisMonth, Name: "eBay Sales This Month", Icon: "mdi:currency-usd", Unit: UnitUSD},
	{Key: types.KeyRefundsToday, Name: "eBay Refunds Today", Icon: "mdi:cash-refund", Unit: UnitUSD},
	{Key: types.KeyRefundsThisWeek, Name: "eBay Refunds This Week", Icon: "mdi:cash-refund", Unit: UnitUSD},
	{Key: types.KeyRefundsThisMonth, Name: "eBay Refunds This Month", Icon: "mdi:cash-refund", Unit: UnitUSD},
	{Key: types.KeyOrdersAwaitingPayment, Name: "eBay Orders Awaiting Payment", Icon: "mdi:cash-clock"},
	{Key: types.KeyFulfilledOrders, Name: "eBay Fulfilled Orders", Icon: "mdi:package-variant-closed-check"},
	{Key: types.KeyCancelledOrders, Name: "eBay Cancelled Orders", Icon: "mdi:package-variant-closed-remove"},
	{Key: types.KeyReturnRequests, Name: "eBay Return Requests", Icon: "mdi:clipboard-list"},
	{Key: types.KeyCancellationRequests, Name: "eBay Cancellation Requests", Icon: "mdi:cancel"},
	{Key: types.KeyActiveListings, Name: "eBay Active Listings", Icon: "mdi:storefront-outline"},
	{Key: types.KeyListingImpressions, Name: "eBay Listing Impressions", Icon: "mdi:eye-outline"},
	{Key: types.KeyListingPageViews, Name: "eBay Listing Page Views", Icon: "mdi:eye"},
	{Key: types.KeyClickThroughRate, Name: "eBay Click Through Rate", Icon: "mdi:cursor-pointer", Unit: UnitPercent},
}

var byKey = func() map[string]Description {
	m := make(map[string]Description, len(catalog))
	for _, d := range catalog {
		m[d.Key] = d
	}
	return m
}()

// All returns every description in display order.
func All() []Description {
	out := make([]Description, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the description for key.
func Lookup(key string) (Description, bool) {
	d, ok := byKey[key]
	return d, ok
}

// Values joins the catalog with s. A nil snapshot yields zero values.
func Values(s *types.Snapshot) []Value {
	var m map[string]float64
	if s != nil {
		m = s.Map()
	}

	out := make([]Value, 0, len(catalog))
	for _, d := range catalog {
		out = append(out, Value{Description: d, Value: m[d.Key]})
	}
	return out
}
