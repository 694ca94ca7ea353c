package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	m := &mockServer{
		logger:  testLogger(),
		nowFunc: func() time.Time { return time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC) },
	}
	srv := httptest.NewServer(m.routes())
	t.Cleanup(srv.Close)
	return srv
}

func noRedirect(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

func postToken(t *testing.T, srv *httptest.Server, form url.Values, basic bool) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, srv.URL+"/identity/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if basic {
		req.SetBasicAuth("app-id", "cert-id")
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("posting token request: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp, body
}

func getJSON(t *testing.T, srv *httptest.Server, path, token string) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, http.NoBody)
	if err != nil {
		t.Fatalf("creating request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()

	var body map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp.StatusCode, body
}

func TestAuthorizeRedirectsWithCode(t *testing.T) {
	srv := newTestServer(t)
	client := srv.Client()
	client.CheckRedirect = noRedirect

	q := url.Values{
		"client_id":    {"app-id"},
		"redirect_uri": {"http://localhost:8080/oauth/callback"},
		"state":        {"signed-state"},
		"scope":        {"a b c"},
	}
	resp, err := client.Get(srv.URL + "/oauth2/authorize?" + q.Encode())
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusFound {
		t.Fatalf("status=%d, want %d", resp.StatusCode, http.StatusFound)
	}
	loc, err := url.Parse(resp.Header.Get("Location"))
	if err != nil {
		t.Fatalf("parsing location: %v", err)
	}
	if loc.Path != "/oauth/callback" {
		t.Errorf("path=%s, want /oauth/callback", loc.Path)
	}
	if got := loc.Query().Get("code"); got != mockCode {
		t.Errorf("code=%s, want %s", got, mockCode)
	}
	if got := loc.Query().Get("state"); got != "signed-state" {
		t.Errorf("state=%s, want signed-state", got)
	}
}

func TestAuthorizeMissingRedirect(t *testing.T) {
	srv := newTestServer(t)
	resp, err := srv.Client().Get(srv.URL + "/oauth2/authorize?client_id=app-id")
	if err != nil {
		t.Fatalf("authorize: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status=%d, want %d", resp.StatusCode, http.StatusBadRequest)
	}
}

func TestTokenHandler(t *testing.T) {
	tests := []struct {
		name        string
		form        url.Values
		basic       bool
		wantStatus  int
		wantError   string
		wantRefresh bool
	}{
		{
			name:        "authorization code",
			form:        url.Values{"grant_type": {"authorization_code"}, "code": {mockCode}},
			basic:       true,
			wantStatus:  http.StatusOK,
			wantRefresh: true,
		},
		{
			name:       "refresh",
			form:       url.Values{"grant_type": {"refresh_token"}, "refresh_token": {"r"}},
			basic:      true,
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing basic auth",
			form:       url.Values{"grant_type": {"refresh_token"}, "refresh_token": {"r"}},
			wantStatus: http.StatusUnauthorized,
			wantError:  "invalid_client",
		},
		{
			name:       "bad code",
			form:       url.Values{"grant_type": {"authorization_code"}, "code": {"nope"}},
			basic:      true,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_grant",
		},
		{
			name:       "missing refresh token",
			form:       url.Values{"grant_type": {"refresh_token"}},
			basic:      true,
			wantStatus: http.StatusBadRequest,
			wantError:  "invalid_request",
		},
		{
			name:       "unknown grant",
			form:       url.Values{"grant_type": {"client_credentials"}},
			basic:      true,
			wantStatus: http.StatusBadRequest,
			wantError:  "unsupported_grant_type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newTestServer(t)
			resp, body := postToken(t, srv, tt.form, tt.basic)

			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status=%d, want %d", resp.StatusCode, tt.wantStatus)
			}
			if tt.wantError != "" {
				if body["error"] != tt.wantError {
					t.Errorf("error=%v, want %s", body["error"], tt.wantError)
				}
				return
			}
			if tok, _ := body["access_token"].(string); !strings.HasPrefix(tok, "mock-access-") {
				t.Errorf("access_token=%v, want mock-access- prefix", body["access_token"])
			}
			if body["expires_in"] != float64(7200) {
				t.Errorf("expires_in=%v, want 7200", body["expires_in"])
			}
			_, hasRefresh := body["refresh_token"]
			if hasRefresh != tt.wantRefresh {
				t.Errorf("refresh_token present=%v, want %v", hasRefresh, tt.wantRefresh)
			}
		})
	}
}

func TestSellerEndpointsRequireBearer(t *testing.T) {
	srv := newTestServer(t)
	status, _ := getJSON(t, srv, "/sell/finances/v1/seller_funds_summary", "")
	if status != http.StatusUnauthorized {
		t.Errorf("status=%d, want %d", status, http.StatusUnauthorized)
	}
}

func TestUnfulfilledOrders(t *testing.T) {
	srv := newTestServer(t)
	filter := url.Values{"filter": {"orderfulfillmentstatus:{NOT_STARTED|IN_PROGRESS}"}}
	status, body := getJSON(t, srv, "/sell/fulfillment/v1/order?"+filter.Encode(), "mock-access-1")
	if status != http.StatusOK {
		t.Fatalf("status=%d, want %d", status, http.StatusOK)
	}
	if body["total"] != float64(3) {
		t.Errorf("total=%v, want 3", body["total"])
	}
	orders, _ := body["orders"].([]any)
	if len(orders) != 3 {
		t.Fatalf("orders=%d, want 3", len(orders))
	}

	first, _ := orders[0].(map[string]any)
	items, _ := first["lineItems"].([]any)
	item, _ := items[0].(map[string]any)
	instr, _ := item["lineItemFulfillmentInstructions"].(map[string]any)
	if instr["shipByDate"] != "2026-10-14T15:00:00Z" {
		t.Errorf("shipByDate=%v, want 2026-10-14T15:00:00Z", instr["shipByDate"])
	}
}

func TestOrderTotals(t *testing.T) {
	tests := []struct {
		status string
		want   float64
	}{
		{"FULFILLED", 128},
		{"CANCELLED", 4},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			filter := url.Values{"filter": {"orderfulfillmentstatus:{" + tt.status + "}"}}
			_, body := getJSON(t, srv, "/sell/fulfillment/v1/order?"+filter.Encode(), "mock-access-1")
			if body["total"] != tt.want {
				t.Errorf("total=%v, want %v", body["total"], tt.want)
			}
		})
	}
}

func TestTotalEndpoints(t *testing.T) {
	tests := []struct {
		path string
		want float64
	}{
		{"/post-order/v2/return/search", 2},
		{"/post-order/v2/cancellation/search", 1},
		{"/sell/inventory/v1/inventory_item?status=ACTIVE&limit=1", 37},
	}

	srv := newTestServer(t)
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := getJSON(t, srv, tt.path, "mock-access-1")
			if status != http.StatusOK {
				t.Fatalf("status=%d, want %d", status, http.StatusOK)
			}
			if body["total"] != tt.want {
				t.Errorf("total=%v, want %v", body["total"], tt.want)
			}
		})
	}
}

func TestWindowDays(t *testing.T) {
	tests := []struct {
		filter string
		want   float64
	}{
		{"transactionDate:[2026-10-14T00:00:00Z..2026-10-14T15:00:00.5Z]", 1},
		{"transactionDate:[2026-10-12T00:00:00Z..2026-10-14T15:00:00Z]", 3},
		{"transactionDate:[2026-10-01T00:00:00Z..2026-10-14T15:00:00Z]", 14},
		{"", 1},
		{"transactionDate:[garbage]", 1},
	}

	for _, tt := range tests {
		if got := windowDays(tt.filter); got != tt.want {
			t.Errorf("windowDays(%q)=%v, want %v", tt.filter, got, tt.want)
		}
	}
}

func TestTransactionSummary(t *testing.T) {
	srv := newTestServer(t)
	filter := url.Values{"filter": {"transactionDate:[2026-10-12T00:00:00Z..2026-10-14T15:00:00Z]"}}
	_, body := getJSON(t, srv, "/sell/finances/v1/transaction_summary?"+filter.Encode(), "mock-access-1")

	summaries, _ := body["transactionSummaries"].([]any)
	if len(summaries) != 2 {
		t.Fatalf("summaries=%d, want 2", len(summaries))
	}
	sale, _ := summaries[0].(map[string]any)
	total, _ := sale["totalAmount"].(map[string]any)
	if total["value"] != "127.50" {
		t.Errorf("sale value=%v, want 127.50", total["value"])
	}
}
