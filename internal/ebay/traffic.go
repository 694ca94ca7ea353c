package ebay

import (
	"math"

	"github.com/tidwall/gjson"
)

// Traffic report metric keys.
const (
	metricImpressions = "LISTING_IMPRESSION"
	metricPageViews   = "LISTING_PAGE_VIEWS"
	metricViews       = "LISTING_VIEWS"
)

// TrafficTotals is the traffic report folded across all listing records.
type TrafficTotals struct {
	Impressions int64
	PageViews   int64
}

// ClickThroughRate returns page views per impression as a percentage
// rounded to two decimals, or 0 without impressions.
func (t TrafficTotals) ClickThroughRate() float64 {
	if t.Impressions == 0 {
		return 0
	}
	rate := float64(t.PageViews) / float64(t.Impressions) * 100
	return math.Round(rate*100) / 100
}

// parseTrafficReport sums the traffic report records in body. The report
// lists metric keys once in header.metrics and each record's metricValues
// positionally; a value may also name its own key via metricKey. A record's
// page views come from LISTING_PAGE_VIEWS, falling back to LISTING_VIEWS.
func parseTrafficReport(body []byte) TrafficTotals {
	var keys []string
	gjson.GetBytes(body, "header.metrics.#.key").ForEach(func(_, k gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})

	var totals TrafficTotals

	gjson.GetBytes(body, "records").ForEach(func(_, record gjson.Result) bool {
		values := make(map[string]float64)

		i := 0
		record.Get("metricValues").ForEach(func(_, mv gjson.Result) bool {
			key := mv.Get("metricKey").String()
			if key == "" && i < len(keys) {
				key = keys[i]
			}
			i++
			if key != "" {
				values[key] += mv.Get("value").Float()
			}
			return true
		})

		totals.Impressions += int64(values[metricImpressions])

		if v, ok := values[metricPageViews]; ok {
			totals.PageViews += int64(v)
		} else {
			totals.PageViews += int64(values[metricViews])
		}
		return true
	})

	return totals
}
