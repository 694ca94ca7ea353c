// Package main implements a mock eBay seller API server for local
// development. It serves the OAuth consent and token endpoints plus canned
// Fulfillment, Finances, Post-Order, Inventory and Analytics responses so
// the service can be exercised end to end without real eBay credentials.
//
// Point ebay.authorize_url, ebay.token_url, ebay.api_url and ebay.apiz_url
// at this server.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
)

const mockCode = "mock-authorization-code"

// mockServer produces responses relative to its clock so that ship-by dates
// land on the current day.
type mockServer struct {
	logger  *slog.Logger
	nowFunc func() time.Time
	issued  atomic.Int64
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	m := &mockServer{logger: logger, nowFunc: time.Now}

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock eBay server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, m.routes()),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func (m *mockServer) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /oauth2/authorize", m.authorizeHandler)
	mux.HandleFunc("POST /identity/v1/oauth2/token", m.tokenHandler)
	mux.HandleFunc("GET /sell/fulfillment/v1/order", m.authenticated(m.ordersHandler))
	mux.HandleFunc("GET /sell/finances/v1/seller_funds_summary", m.authenticated(m.fundsHandler))
	mux.HandleFunc("GET /sell/finances/v1/transaction_summary", m.authenticated(m.transactionSummaryHandler))
	mux.HandleFunc("GET /post-order/v2/return/search", m.authenticated(totalHandler(2)))
	mux.HandleFunc("GET /post-order/v2/cancellation/search", m.authenticated(totalHandler(1)))
	mux.HandleFunc("GET /sell/inventory/v1/inventory_item", m.authenticated(totalHandler(37)))
	mux.HandleFunc("GET /sell/analytics/v1/traffic_report", m.authenticated(m.trafficHandler))
	return mux
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
	json.NewEncoder(w).Encode(v)
}

func oauthError(w http.ResponseWriter, status int, code, description string) {
	writeJSON(w, status, map[string]string{
		"error":             code,
		"error_description": description,
	})
}

// authorizeHandler grants consent immediately by redirecting back with a
// fixed code and the caller's state.
func (m *mockServer) authorizeHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	redirect := q.Get("redirect_uri")
	if q.Get("client_id") == "" || redirect == "" {
		http.Error(w, "client_id and redirect_uri are required", http.StatusBadRequest)
		return
	}

	target, err := url.Parse(redirect)
	if err != nil {
		http.Error(w, "invalid redirect_uri", http.StatusBadRequest)
		return
	}
	v := target.Query()
	v.Set("code", mockCode)
	if s := q.Get("state"); s != "" {
		v.Set("state", s)
	}
	target.RawQuery = v.Encode()

	m.logger.Info("granted consent", "scopes", len(strings.Fields(q.Get("scope"))))
	http.Redirect(w, r, target.String(), http.StatusFound)
}

func (m *mockServer) tokenHandler(w http.ResponseWriter, r *http.Request) {
	// Validate Basic Auth header is present (don't verify creds).
	if _, _, ok := r.BasicAuth(); !ok {
		m.logger.Warn("token request missing Basic Auth header")
		oauthError(w, http.StatusUnauthorized, "invalid_client", "client authentication failed")
		return
	}
	if err := r.ParseForm(); err != nil {
		oauthError(w, http.StatusBadRequest, "invalid_request", "malformed form body")
		return
	}

	n := m.issued.Add(1)
	access := "mock-access-" + strconv.FormatInt(n, 10)

	switch r.PostForm.Get("grant_type") {
	case "authorization_code":
		if r.PostForm.Get("code") != mockCode {
			oauthError(w, http.StatusBadRequest, "invalid_grant", "the provided authorization grant code is invalid")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token":             access,
			"expires_in":               7200,
			"refresh_token":            "mock-refresh-token",
			"refresh_token_expires_in": 47304000,
			"token_type":               "User Access Token",
		})
	case "refresh_token":
		if r.PostForm.Get("refresh_token") == "" {
			oauthError(w, http.StatusBadRequest, "invalid_request", "refresh_token is required")
			return
		}
		// eBay does not rotate the refresh token.
		writeJSON(w, http.StatusOK, map[string]any{
			"access_token": access,
			"expires_in":   7200,
			"token_type":   "User Access Token",
		})
	default:
		oauthError(w, http.StatusBadRequest, "unsupported_grant_type", "grant type not supported")
		return
	}
	m.logger.Info("issued mock token", "grant_type", r.PostForm.Get("grant_type"), "n", n)
}

// authenticated rejects requests without a bearer token the way eBay does.
func (m *mockServer) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer mock-access-") {
			writeJSON(w, http.StatusUnauthorized, map[string]any{
				"errors": []map[string]any{{
					"errorId":  1001,
					"category": "REQUEST",
					"message":  "Invalid access token",
				}},
			})
			return
		}
		next(w, r)
	}
}

func totalHandler(total int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]int{"total": total})
	}
}

func (m *mockServer) ordersHandler(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	switch {
	case strings.Contains(filter, "NOT_STARTED"):
		now := m.nowFunc()
		writeJSON(w, http.StatusOK, map[string]any{
			"total": 3,
			"orders": []map[string]any{
				mockOrder("01-0001", "PAID", now),
				mockOrder("01-0002", "PAID", now.AddDate(0, 0, 2)),
				mockOrder("01-0003", "PENDING", now),
			},
		})
	case strings.Contains(filter, "FULFILLED"):
		writeJSON(w, http.StatusOK, map[string]int{"total": 128})
	case strings.Contains(filter, "CANCELLED"):
		writeJSON(w, http.StatusOK, map[string]int{"total": 4})
	default:
		writeJSON(w, http.StatusOK, map[string]any{"total": 0, "orders": []any{}})
	}
}

func mockOrder(id, paymentStatus string, shipBy time.Time) map[string]any {
	return map[string]any{
		"orderId":            id,
		"orderPaymentStatus": paymentStatus,
		"lineItems": []map[string]any{{
			"lineItemId": id + "-1",
			"lineItemFulfillmentInstructions": map[string]string{
				"shipByDate": shipBy.UTC().Format(time.RFC3339),
			},
		}},
	}
}

func (m *mockServer) fundsHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"availableFunds":  amount("812.40"),
		"fundsOnHold":     amount("55.00"),
		"processingFunds": amount("120.15"),
		"totalFunds":      amount("987.55"),
	})
}

// transactionSummaryHandler scales amounts with the width of the
// transactionDate window so today, week and month report different values.
func (m *mockServer) transactionSummaryHandler(w http.ResponseWriter, r *http.Request) {
	days := windowDays(r.URL.Query().Get("filter"))
	writeJSON(w, http.StatusOK, map[string]any{
		"transactionSummaries": []map[string]any{
			{"transactionType": "SALE", "totalAmount": amount(strconv.FormatFloat(42.5*days, 'f', 2, 64))},
			{"transactionType": "REFUND", "totalAmount": amount(strconv.FormatFloat(-5*days, 'f', 2, 64))},
		},
	})
}

// windowDays parses transactionDate:[from..to] and returns its length in
// days, at least 1.
func windowDays(filter string) float64 {
	start := strings.Index(filter, "[")
	end := strings.LastIndex(filter, "]")
	if start < 0 || end <= start {
		return 1
	}
	from, to, ok := strings.Cut(filter[start+1:end], "..")
	if !ok {
		return 1
	}
	f, err1 := time.Parse(time.RFC3339, from)
	t, err2 := time.Parse(time.RFC3339, to)
	if err1 != nil || err2 != nil {
		return 1
	}
	return max(1, float64(int(t.Sub(f).Hours()/24+0.5)))
}

func (m *mockServer) trafficHandler(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"header": map[string]any{
			"metrics": []map[string]string{
				{"key": "LISTING_IMPRESSION"},
				{"key": "LISTING_VIEWS"},
			},
		},
		"records": []map[string]any{
			{"metricValues": []map[string]any{{"value": 1200}, {"value": 48}}},
			{"metricValues": []map[string]any{{"value": 300}, {"value": 12}}},
		},
	})
}

func amount(v string) map[string]string {
	return map[string]string{"value": v, "currency": "USD"}
}
