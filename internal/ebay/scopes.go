package ebay

import (
	"fmt"
	"strings"
)

// OAuth scopes used by the collector.
const (
	ScopeFulfillmentReadonly = "https://api.ebay.com/oauth/api_scope/sell.fulfillment.readonly"
	ScopeFinances            = "https://api.ebay.com/oauth/api_scope/sell.finances"
	ScopeAnalyticsReadonly   = "https://api.ebay.com/oauth/api_scope/sell.analytics.readonly"
	ScopeInventoryReadonly   = "https://api.ebay.com/oauth/api_scope/sell.inventory.readonly"
	ScopePostOrderReadonly   = "https://api.ebay.com/oauth/api_scope/sell.postorder.readonly"
)

// Scope presets.
const (
	PresetFull      = "full"
	PresetFinances  = "finances"
	PresetAnalytics = "analytics"
)

// ScopePreset returns the scope list for a named preset.
//
//   - full: every scope the collector understands
//   - finances: fulfillment and finances
//   - analytics: fulfillment, analytics, inventory and post-order
func ScopePreset(name string) ([]string, error) {
	switch name {
	case PresetFull, "":
		return []string{
			ScopeFulfillmentReadonly,
			ScopeFinances,
			ScopeAnalyticsReadonly,
			ScopeInventoryReadonly,
			ScopePostOrderReadonly,
		}, nil
	case PresetFinances:
		return []string{ScopeFulfillmentReadonly, ScopeFinances}, nil
	case PresetAnalytics:
		return []string{
			ScopeFulfillmentReadonly,
			ScopeAnalyticsReadonly,
			ScopeInventoryReadonly,
			ScopePostOrderReadonly,
		}, nil
	default:
		return nil, fmt.Errorf("unknown scope preset %q", name)
	}
}

// Features selects which groups of endpoints the collector calls.
type Features struct {
	Fulfillment bool
	Finances    bool
	Analytics   bool
	Inventory   bool
	PostOrder   bool
}

// AllFeatures enables every endpoint group.
func AllFeatures() Features {
	return Features{
		Fulfillment: true,
		Finances:    true,
		Analytics:   true,
		Inventory:   true,
		PostOrder:   true,
	}
}

// FeaturesFromScopes derives the endpoint groups a token granted the given
// scopes may call. A read-write scope implies its readonly variant.
func FeaturesFromScopes(scopes []string) Features {
	var f Features
	for _, s := range scopes {
		switch strings.TrimSuffix(s, ".readonly") {
		case strings.TrimSuffix(ScopeFulfillmentReadonly, ".readonly"):
			f.Fulfillment = true
		case ScopeFinances:
			f.Finances = true
		case strings.TrimSuffix(ScopeAnalyticsReadonly, ".readonly"):
			f.Analytics = true
		case strings.TrimSuffix(ScopeInventoryReadonly, ".readonly"):
			f.Inventory = true
		case strings.TrimSuffix(ScopePostOrderReadonly, ".readonly"):
			f.PostOrder = true
		}
	}
	return f
}
