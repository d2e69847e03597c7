package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"bankdash/internal/core"
	"bankdash/internal/ledger"
)

type fakeWriter struct {
	appended []core.Transaction
	fail     bool
}

func (f *fakeWriter) AppendTransaction(ctx context.Context, tx core.Transaction) (string, error) {
	if f.fail {
		return "", context.DeadlineExceeded
	}
	f.appended = append(f.appended, tx)
	return "mem:1", nil
}

type fakeBalances struct {
	updates map[string]core.Money
}

func (f *fakeBalances) UpdateBalance(ctx context.Context, accountNumber string, balance core.Money) error {
	if f.updates == nil {
		f.updates = make(map[string]core.Money)
	}
	f.updates[accountNumber] = balance
	return nil
}

func newTestServer(t *testing.T) (*Server, *ledger.Store, *fakeWriter, *fakeBalances) {
	t.Helper()

	store := ledger.New()
	now := time.Now()
	store.Seed(ledger.Snapshot{
		Accounts: []core.Account{
			{Number: "A1", Name: "Savings", Type: core.Savings, Balance: core.Money{Paise: 100000}, Currency: "INR", Status: core.AccountActive},
			{Number: "A2", Name: "Current", Type: core.Current, Balance: core.Money{Paise: 50000}, Currency: "INR", Status: core.AccountActive},
		},
		Transactions: []core.Transaction{
			{ID: "t1", Date: now.AddDate(0, 0, -2), Description: "Grocery Store", Category: "Food", Type: core.Expense, Amount: core.Money{Paise: 12000}, Account: "A1", Balance: core.Money{Paise: 88000}, Status: core.StatusCompleted},
			{ID: "t2", Date: now.AddDate(0, 0, -1), Description: "Salary Credit", Category: "Income", Type: core.Income, Amount: core.Money{Paise: 500000}, Account: "A1", Balance: core.Money{Paise: 588000}, Status: core.StatusCompleted},
		},
		Bills: []core.Bill{
			{ID: "b1", Type: "Electricity", Provider: "State Power", Amount: core.Money{Paise: 85000}, DueDate: now.AddDate(0, 0, 2), Status: core.BillPending},
		},
		Notifications: []core.Notification{
			{ID: "n1", Title: "Welcome", Message: "Account ready", Kind: "info", Created: now},
			{ID: "n2", Title: "Bill due", Message: "Electricity due soon", Kind: "warning", Created: now},
		},
	})

	writer := &fakeWriter{}
	balances := &fakeBalances{}
	srv := NewServer(":0", store, ledger.NewReconciler(store), writer, balances)
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	})
	return srv, store, writer, balances
}

func doRequest(t *testing.T, srv *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode body: %v (body=%s)", err, rr.Body.String())
	}
	return out
}

func TestHealthAndReady(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/healthz", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", rr.Code)
	}
	if body := decodeBody(t, rr); body["status"] != "ok" {
		t.Fatalf("healthz status field=%v", body["status"])
	}

	rr = doRequest(t, srv, http.MethodGet, "/readyz", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("readyz status=%d", rr.Code)
	}
	if body := decodeBody(t, rr); body["status"] != "ready" {
		t.Fatalf("readyz status field=%v", body["status"])
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/accounts", "")
	if got := rr.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("X-Content-Type-Options=%q", got)
	}
	if got := rr.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Fatalf("X-Frame-Options=%q", got)
	}
}

func TestSuspiciousRequestBlocked(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/accounts/../.env", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for suspicious path, got %d", rr.Code)
	}
}

func TestListAccounts(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/accounts", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	body := decodeBody(t, rr)
	accounts := body["accounts"].([]interface{})
	if len(accounts) != 2 {
		t.Fatalf("accounts=%d, want 2", len(accounts))
	}
	first := accounts[0].(map[string]interface{})
	if first["accountNumber"] != "A1" || first["balance"] != "1000.00" {
		t.Fatalf("unexpected first account: %v", first)
	}
}

func TestAccountByNumber(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/accounts/A2", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if body := decodeBody(t, rr); body["accountName"] != "Current" {
		t.Fatalf("accountName=%v", body["accountName"])
	}

	rr = doRequest(t, srv, http.MethodGet, "/api/accounts/NOPE", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestListTransactions(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/transactions", "")
	body := decodeBody(t, rr)
	txs := body["transactions"].([]interface{})
	if len(txs) != 2 {
		t.Fatalf("transactions=%d, want 2", len(txs))
	}
	// Newest first
	first := txs[0].(map[string]interface{})
	if first["id"] != "t2" {
		t.Fatalf("first transaction id=%v, want t2", first["id"])
	}

	rr = doRequest(t, srv, http.MethodGet, "/api/transactions?type=expense", "")
	txs = decodeBody(t, rr)["transactions"].([]interface{})
	if len(txs) != 1 {
		t.Fatalf("expense transactions=%d, want 1", len(txs))
	}

	rr = doRequest(t, srv, http.MethodGet, "/api/transactions?limit=1", "")
	txs = decodeBody(t, rr)["transactions"].([]interface{})
	if len(txs) != 1 {
		t.Fatalf("limited transactions=%d, want 1", len(txs))
	}
}

func TestSearch(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodGet, "/api/search?q=grocery", "")
	body := decodeBody(t, rr)
	txs := body["transactions"].([]interface{})
	if len(txs) != 1 {
		t.Fatalf("search results=%d, want 1", len(txs))
	}

	// Below the minimum query length nothing matches
	rr = doRequest(t, srv, http.MethodGet, "/api/search?q=gr", "")
	body = decodeBody(t, rr)
	if got := body["transactions"].([]interface{}); len(got) != 0 {
		t.Fatalf("short query returned results: %v", got)
	}
}

func TestTransfer(t *testing.T) {
	srv, store, writer, balances := newTestServer(t)

	rr := doRequest(t, srv, http.MethodPost, "/api/transfer",
		`{"from":"A1","to":"A2","amount":"250.00","notes":"rent share"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["type"] != "transfer" || body["amount"] != "250.00" {
		t.Fatalf("unexpected transfer view: %v", body)
	}

	from, _ := store.Account("A1")
	if from.Balance.Paise != 75000 {
		t.Fatalf("source balance=%d, want 75000", from.Balance.Paise)
	}
	to, _ := store.Account("A2")
	if to.Balance.Paise != 75000 {
		t.Fatalf("destination balance=%d, want 75000", to.Balance.Paise)
	}

	if len(writer.appended) != 1 {
		t.Fatalf("backend appends=%d, want 1", len(writer.appended))
	}
	if got := balances.updates["A2"]; got.Paise != 75000 {
		t.Fatalf("destination balance pushed=%d, want 75000", got.Paise)
	}
}

func TestTransferInsufficientFunds(t *testing.T) {
	srv, store, _, _ := newTestServer(t)

	rr := doRequest(t, srv, http.MethodPost, "/api/transfer",
		`{"from":"A2","to":"A1","amount":"9999.00"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status=%d, want 422", rr.Code)
	}

	a2, _ := store.Account("A2")
	if a2.Balance.Paise != 50000 {
		t.Fatalf("balance mutated on failed transfer: %d", a2.Balance.Paise)
	}
}

func TestTransferValidation(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
		want int
	}{
		{"missing accounts", `{"amount":"10.00"}`, http.StatusUnprocessableEntity},
		{"same account", `{"from":"A1","to":"A1","amount":"10.00"}`, http.StatusUnprocessableEntity},
		{"bad amount", `{"from":"A1","to":"A2","amount":"abc"}`, http.StatusUnprocessableEntity},
		{"zero amount", `{"from":"A1","to":"A2","amount":"0"}`, http.StatusUnprocessableEntity},
		{"unknown account", `{"from":"NOPE","to":"A2","amount":"10.00"}`, http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rr := doRequest(t, srv, http.MethodPost, "/api/transfer", tc.body)
			if rr.Code != tc.want {
				t.Fatalf("status=%d, want %d", rr.Code, tc.want)
			}
		})
	}

	rr := doRequest(t, srv, http.MethodGet, "/api/transfer", "")
	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("GET transfer status=%d, want 405", rr.Code)
	}
}

func TestTransferAcceptsFormEncoding(t *testing.T) {
	srv, _, _, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/transfer",
		strings.NewReader("from=A1&to=A2&amount=10.00"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rr.Code, rr.Body.String())
	}
}
