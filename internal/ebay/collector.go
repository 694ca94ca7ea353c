package ebay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/donaldgifford/ebay-seller-metrics/internal/metrics"
	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

const (
	pathOrders             = "/sell/fulfillment/v1/order"
	pathFundsSummary       = "/sell/finances/v1/seller_funds_summary"
	pathTransactionSummary = "/sell/finances/v1/transaction_summary"
	pathReturnSearch       = "/post-order/v2/return/search"
	pathCancellationSearch = "/post-order/v2/cancellation/search"
	pathInventoryItems     = "/sell/inventory/v1/inventory_item"
	pathTrafficReport      = "/sell/analytics/v1/traffic_report"
)

// Endpoint names used in logs, metrics and Snapshot.Degraded.
const (
	EndpointUnfulfilledOrders    = "unfulfilled_orders"
	EndpointFulfilledOrders      = "fulfilled_orders"
	EndpointCancelledOrders      = "cancelled_orders"
	EndpointFundsSummary         = "funds_summary"
	EndpointSalesToday           = "transaction_summary_today"
	EndpointSalesWeek            = "transaction_summary_week"
	EndpointSalesMonth           = "transaction_summary_month"
	EndpointReturnRequests       = "return_requests"
	EndpointCancellationRequests = "cancellation_requests"
	EndpointActiveListings       = "active_listings"
	EndpointTrafficReport        = "traffic_report"
)

// Collector implements MetricsCollector against the eBay seller APIs.
type Collector struct {
	client      *http.Client
	apiURL      string
	apizURL     string
	marketplace string
	features    Features
	log         *slog.Logger
	loc         *time.Location
	nowFunc     func() time.Time
}

// CollectorOption configures the Collector.
type CollectorOption func(*Collector)

// WithCollectorHTTPClient overrides the default HTTP client.
func WithCollectorHTTPClient(hc *http.Client) CollectorOption {
	return func(c *Collector) {
		c.client = hc
	}
}

// WithAPIURL overrides the api.ebay.com base URL.
func WithAPIURL(u string) CollectorOption {
	return func(c *Collector) {
		c.apiURL = strings.TrimRight(u, "/")
	}
}

// WithAPIZURL overrides the apiz.ebay.com base URL used by the Finances API.
func WithAPIZURL(u string) CollectorOption {
	return func(c *Collector) {
		c.apizURL = strings.TrimRight(u, "/")
	}
}

// WithCollectorMarketplace sets the X-EBAY-C-MARKETPLACE-ID header value.
func WithCollectorMarketplace(m string) CollectorOption {
	return func(c *Collector) {
		c.marketplace = m
	}
}

// WithFeatures selects which endpoint groups are called.
func WithFeatures(f Features) CollectorOption {
	return func(c *Collector) {
		c.features = f
	}
}

// WithCollectorLogger sets a custom logger.
func WithCollectorLogger(l *slog.Logger) CollectorOption {
	return func(c *Collector) {
		c.log = l
	}
}

// WithLocation sets the time zone used to decide whether an order is due
// today.
func WithLocation(loc *time.Location) CollectorOption {
	return func(c *Collector) {
		c.loc = loc
	}
}

// WithCollectorNowFunc overrides the time function for testing.
func WithCollectorNowFunc(f func() time.Time) CollectorOption {
	return func(c *Collector) {
		c.nowFunc = f
	}
}

// NewCollector creates a collector calling every endpoint group by default.
func NewCollector(opts ...CollectorOption) *Collector {
	c := &Collector{
		client:      NewTracedClient(30 * time.Second),
		apiURL:      DefaultAPIURL,
		apizURL:     DefaultAPIZURL,
		marketplace: DefaultMarketplace,
		features:    AllFeatures(),
		log:         slog.Default(),
		loc:         time.Local,
		nowFunc:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Collect issues the configured GET requests one after another and folds
// the responses into a snapshot. A failed endpoint is recorded in
// Snapshot.Degraded and leaves its metrics at zero; Collect itself never
// fails.
func (c *Collector) Collect(ctx context.Context, accessToken string) *types.Snapshot {
	now := c.nowFunc()
	snap := &types.Snapshot{CollectedAt: now}

	defer c.client.CloseIdleConnections()

	run := &collection{Collector: c, ctx: ctx, token: accessToken, snap: snap}

	if c.features.Fulfillment {
		run.orders(now)
	}
	if c.features.Finances {
		run.funds()
		run.sales(NewSalesWindows(now))
	}
	if c.features.PostOrder {
		snap.ReturnRequests = run.total(EndpointReturnRequests, c.apiURL+pathReturnSearch)
		snap.CancellationRequests = run.total(
			EndpointCancellationRequests,
			c.apiURL+pathCancellationSearch,
		)
	}
	if c.features.Inventory {
		snap.ActiveListings = run.total(
			EndpointActiveListings,
			buildURL(c.apiURL, pathInventoryItems, url.Values{
				"status": {"ACTIVE"},
				"limit":  {"1"},
			}),
		)
	}
	if c.features.Analytics {
		run.traffic()
	}

	c.log.Debug("collection finished",
		"degraded", len(snap.Degraded),
		"duration_ms", c.nowFunc().Sub(now).Milliseconds(),
	)

	return snap
}

// collection is the state of one Collect call.
type collection struct {
	*Collector
	ctx   context.Context //nolint:containedctx // scoped to a single Collect call
	token string
	snap  *types.Snapshot
}

func (r *collection) orders(now time.Time) {
	var unfulfilled ordersResponse
	if r.getJSON(
		EndpointUnfulfilledOrders,
		ordersURL(r.apiURL, "NOT_STARTED|IN_PROGRESS"),
		&unfulfilled,
	) {
		r.snap.TotalUnfulfilledOrders = unfulfilled.Total
		r.snap.OrdersDueToday = countDueToday(unfulfilled.Orders, now, r.loc)
		r.snap.OrdersAwaitingPayment = countAwaitingPayment(unfulfilled.Orders)
	}

	r.snap.FulfilledOrders = r.total(EndpointFulfilledOrders, ordersURL(r.apiURL, "FULFILLED"))
	r.snap.CancelledOrders = r.total(EndpointCancelledOrders, ordersURL(r.apiURL, "CANCELLED"))
}

func (r *collection) funds() {
	var resp fundsSummaryResponse
	if !r.getJSON(EndpointFundsSummary, r.apizURL+pathFundsSummary, &resp) {
		return
	}
	r.snap.AvailableFunds = amountValue(resp.AvailableFunds)
	r.snap.FundsOnHold = amountValue(resp.FundsOnHold)
	r.snap.ProcessingFunds = amountValue(resp.ProcessingFunds)
	r.snap.TotalFunds = amountValue(resp.TotalFunds)
}

func (r *collection) sales(w SalesWindows) {
	r.snap.SalesToday, r.snap.RefundsToday = r.transactionSummary(EndpointSalesToday, w.Today)
	r.snap.SalesThisWeek, r.snap.RefundsThisWeek = r.transactionSummary(EndpointSalesWeek, w.Week)
	r.snap.SalesThisMonth, r.snap.RefundsThisMonth = r.transactionSummary(EndpointSalesMonth, w.Month)
}

// transactionSummary returns the sale and refund amounts for one window.
// Each matching record replaces the previous value, so the last SALE and
// the last REFUND record win.
func (r *collection) transactionSummary(endpoint string, w DateWindow) (sales, refunds float64) {
	var resp transactionSummaryResponse
	if !r.getJSON(
		endpoint,
		buildURL(r.apizURL, pathTransactionSummary, url.Values{"filter": {w.Filter()}}),
		&resp,
	) {
		return 0, 0
	}

	for _, ts := range resp.TransactionSummaries {
		amount := amountValue(ts.TotalAmount)
		switch ts.TransactionType {
		case transactionSale:
			sales = amount
		case transactionRefund:
			refunds = math.Abs(amount)
		}
	}
	return sales, refunds
}

func (r *collection) traffic() {
	body, ok := r.fetch(EndpointTrafficReport, buildURL(r.apiURL, pathTrafficReport, url.Values{
		"dimension": {"LISTING"},
		"metric":    {metricImpressions + "," + metricViews},
	}))
	if !ok {
		return
	}

	totals := parseTrafficReport(body)
	r.snap.ListingImpressions = totals.Impressions
	r.snap.ListingPageViews = totals.PageViews
	r.snap.ClickThroughRate = totals.ClickThroughRate()
}

// total returns the "total" field of a search response, or 0.
func (r *collection) total(endpoint, rawURL string) int64 {
	var resp totalResponse
	if !r.getJSON(endpoint, rawURL, &resp) {
		return 0
	}
	return resp.Total
}

func (r *collection) getJSON(endpoint, rawURL string, dst any) bool {
	body, ok := r.fetch(endpoint, rawURL)
	if !ok {
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		r.degrade(endpoint, fmt.Errorf("parsing response: %w", err))
		return false
	}
	return true
}

func (r *collection) fetch(endpoint, rawURL string) ([]byte, bool) {
	start := time.Now()
	defer func() {
		metrics.EbayRequestDuration.
			WithLabelValues(endpoint).
			Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(r.ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		r.degrade(endpoint, fmt.Errorf("creating request: %w", err))
		return nil, false
	}

	req.Header.Set("Authorization", "Bearer "+r.token)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-EBAY-C-MARKETPLACE-ID", r.marketplace)

	resp, err := r.client.Do(req)
	if err != nil {
		r.degrade(endpoint, fmt.Errorf("executing request: %w", err))
		return nil, false
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		r.degrade(endpoint, fmt.Errorf("reading response body: %w", err))
		return nil, false
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.degrade(endpoint, fmt.Errorf("eBay API error (status %d)", resp.StatusCode))
		return nil, false
	}

	metrics.EbayAPICallsTotal.WithLabelValues(endpoint).Inc()
	return body, true
}

func (r *collection) degrade(endpoint string, err error) {
	r.snap.Degraded = append(r.snap.Degraded, endpoint)
	metrics.EbayEndpointFailuresTotal.WithLabelValues(endpoint).Inc()
	r.log.Warn("ebay endpoint degraded", "endpoint", endpoint, "error", err)
}

// countDueToday counts orders with at least one line item whose ship-by
// date falls on today's date in loc. An order counts at most once.
func countDueToday(orders []order, now time.Time, loc *time.Location) int64 {
	ny, nm, nd := now.In(loc).Date()

	var n int64
	for _, o := range orders {
		for _, li := range o.LineItems {
			if li.LineItemFulfillmentInstructions == nil {
				continue
			}
			shipBy, err := time.Parse(time.RFC3339, li.LineItemFulfillmentInstructions.ShipByDate)
			if err != nil {
				continue
			}
			y, m, d := shipBy.In(loc).Date()
			if y == ny && m == nm && d == nd {
				n++
				break
			}
		}
	}
	return n
}

// countAwaitingPayment counts orders whose payment status is not PAID.
func countAwaitingPayment(orders []order) int64 {
	var n int64
	for _, o := range orders {
		if o.OrderPaymentStatus != paymentStatusPaid {
			n++
		}
	}
	return n
}

func ordersURL(base, statuses string) string {
	return buildURL(base, pathOrders, url.Values{
		"filter": {"orderfulfillmentstatus:{" + statuses + "}"},
	})
}

func buildURL(base, path string, params url.Values) string {
	return base + path + "?" + params.Encode()
}
