package http

import (
	"net/http"
	"strings"
	"testing"
)

func TestChartPeriods(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	cases := []struct {
		period  string
		buckets int
	}{
		{"week", 7},
		{"month", 4},
		{"year", 12},
	}
	for _, tc := range cases {
		t.Run(tc.period, func(t *testing.T) {
			rr := doRequest(t, srv, http.MethodGet, "/api/chart?period="+tc.period, "")
			if rr.Code != http.StatusOK {
				t.Fatalf("status=%d", rr.Code)
			}
			body := decodeBody(t, rr)
			buckets := body["buckets"].([]interface{})
			if len(buckets) != tc.buckets {
				t.Fatalf("buckets=%d, want %d", len(buckets), tc.buckets)
			}
		})
	}

	rr := doRequest(t, srv, http.MethodGet, "/api/chart?period=decade", "")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("invalid period status=%d, want 400", rr.Code)
	}
}

func TestChartDefaultsToWeek(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/chart", "")
	body := decodeBody(t, rr)
	if body["period"] != "week" {
		t.Fatalf("period=%v, want week", body["period"])
	}
}

func TestChartBucketsCarrySeededActivity(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/chart?period=week", "")
	body := decodeBody(t, rr)
	buckets := body["buckets"].([]interface{})

	var income, expense float64
	for _, raw := range buckets {
		b := raw.(map[string]interface{})
		income += b["incomePaise"].(float64)
		expense += b["expensePaise"].(float64)
	}
	if int64(income) != 500000 {
		t.Fatalf("total income paise=%v, want 500000", income)
	}
	if int64(expense) != 12000 {
		t.Fatalf("total expense paise=%v, want 12000", expense)
	}
}

func TestDashboard(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/dashboard", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["totalBalance"] != "1500.00" {
		t.Fatalf("totalBalance=%v, want 1500.00", body["totalBalance"])
	}
	if got := body["unreadAlerts"].(float64); got != 2 {
		t.Fatalf("unreadAlerts=%v, want 2", got)
	}
	recent := body["recentTransactions"].([]interface{})
	if len(recent) != 2 {
		t.Fatalf("recentTransactions=%d, want 2", len(recent))
	}
}

func TestChartCacheInvalidatedByTransfer(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	doRequest(t, srv, http.MethodGet, "/api/chart?period=week", "")
	if _, found := srv.chartCache.Get("week"); !found {
		t.Fatal("chart cache not populated")
	}

	rr := doRequest(t, srv, http.MethodPost, "/api/transfer",
		`{"from":"A1","to":"A2","amount":"1.00"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("transfer status=%d", rr.Code)
	}
	if _, found := srv.chartCache.Get("week"); found {
		t.Fatal("chart cache not invalidated after transfer")
	}
	if _, found := srv.dashboardCache.Get(dashboardCacheKey); found {
		t.Fatal("dashboard cache not invalidated after transfer")
	}
}

func TestBillsInvestmentsCards(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/bills", "")
	bills := decodeBody(t, rr)["bills"].([]interface{})
	if len(bills) != 1 {
		t.Fatalf("bills=%d, want 1", len(bills))
	}
	bill := bills[0].(map[string]interface{})
	if bill["overdue"].(bool) {
		t.Fatal("bill due in two days marked overdue")
	}

	rr = doRequest(t, srv, http.MethodGet, "/api/investments", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("investments status=%d", rr.Code)
	}

	rr = doRequest(t, srv, http.MethodGet, "/api/cards", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("cards status=%d", rr.Code)
	}
}

func TestNotificationLifecycle(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/notifications", "")
	body := decodeBody(t, rr)
	if got := body["unread"].(float64); got != 2 {
		t.Fatalf("unread=%v, want 2", got)
	}

	rr = doRequest(t, srv, http.MethodPost, "/api/notifications/n1/read", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("mark read status=%d", rr.Code)
	}
	if got := decodeBody(t, rr)["unread"].(float64); got != 1 {
		t.Fatalf("unread after mark=%v, want 1", got)
	}

	rr = doRequest(t, srv, http.MethodPost, "/api/notifications", `{"action":"read-all"}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("read-all status=%d", rr.Code)
	}

	rr = doRequest(t, srv, http.MethodDelete, "/api/notifications/n2", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d", rr.Code)
	}

	rr = doRequest(t, srv, http.MethodDelete, "/api/notifications/n2", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("delete missing status=%d, want 404", rr.Code)
	}
}

func TestExportEndpoints(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/export/transactions.csv", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("csv status=%d", rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("csv content type=%q", ct)
	}
	if !strings.Contains(rr.Body.String(), "Salary Credit") {
		t.Fatal("csv missing seeded transaction")
	}

	rr = doRequest(t, srv, http.MethodGet, "/api/export/backup.json", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("backup status=%d", rr.Code)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "bankdash_backup_") {
		t.Fatalf("backup content disposition=%q", cd)
	}
	body := decodeBody(t, rr)
	if accounts := body["accounts"].([]interface{}); len(accounts) != 2 {
		t.Fatalf("backup accounts=%d, want 2", len(accounts))
	}
}
