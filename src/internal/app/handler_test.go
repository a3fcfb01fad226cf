package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/api-sage/bank-portal/src/internal/adapter/repository/memory"
	"github.com/api-sage/bank-portal/src/internal/auth"
	"github.com/api-sage/bank-portal/src/internal/seed"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	tokens  *auth.TokenRegistry
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	storage := NewMemoryStorage(memory.NewStore())
	if err := seed.Run(context.Background(), storage.Users, storage.Accounts); err != nil {
		t.Fatalf("seed: %v", err)
	}
	tokens := auth.NewTokenRegistry()
	return &testServer{
		t:       t,
		handler: NewHandler(storage, tokens, auth.DefaultPolicy(), "http://localhost:5173"),
		tokens:  tokens,
	}
}

func (s *testServer) do(method string, path string, token string, body string) (int, map[string]any) {
	s.t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)

	var out map[string]any
	if rr.Body.Len() > 0 && strings.HasPrefix(strings.TrimSpace(rr.Body.String()), "{") {
		if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
			s.t.Fatalf("%s %s: decode body: %v", method, path, err)
		}
	}
	return rr.Code, out
}

func (s *testServer) login(username string, password string) string {
	s.t.Helper()

	status, body := s.do(http.MethodPost, "/auth/login", "", `{"username":"`+username+`","password":"`+password+`"}`)
	if status != http.StatusOK {
		s.t.Fatalf("login %s: expected 200, got %d %v", username, status, body)
	}
	return body["accessToken"].(string)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/health", "/api/health"} {
		status, body := s.do(http.MethodGet, path, "", "")
		if status != http.StatusOK || body["status"] != "ok" {
			t.Fatalf("%s: unexpected %d %v", path, status, body)
		}
	}
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)

	status, body := s.do(http.MethodPost, "/auth/login", "", `{"username":"admin"}`)
	if status != http.StatusBadRequest || body["message"] != "Username/email and password are required" {
		t.Fatalf("unexpected %d %v", status, body)
	}

	status, body = s.do(http.MethodPost, "/auth/login", "", `{"username":"admin","password":"nope"}`)
	if status != http.StatusUnauthorized || body["message"] != "Invalid credentials" {
		t.Fatalf("unexpected %d %v", status, body)
	}
}

func TestCustomerDepositWithdrawFlow(t *testing.T) {
	s := newTestServer(t)
	token := s.login("shubham", "123456")

	status, body := s.do(http.MethodPost, "/api/customer/deposit", token, `{"amount": 250}`)
	if status != http.StatusOK || body["message"] != "Deposit successful" || body["newBalance"] != "1250.00" {
		t.Fatalf("deposit: unexpected %d %v", status, body)
	}

	status, body = s.do(http.MethodPost, "/customer/withdraw", token, `{"amount": "2000"}`)
	if status != http.StatusBadRequest || body["message"] != "Insufficient Funds" {
		t.Fatalf("overdraw: unexpected %d %v", status, body)
	}

	status, body = s.do(http.MethodPost, "/customer/deposit", token, `{"amount": -5}`)
	if status != http.StatusBadRequest || body["message"] != "Invalid deposit amount." {
		t.Fatalf("invalid deposit: unexpected %d %v", status, body)
	}

	status, body = s.do(http.MethodPost, "/customer/withdraw", token, `{"amount": "abc"}`)
	if status != http.StatusBadRequest || body["message"] != "Invalid withdrawal amount." {
		t.Fatalf("invalid withdraw: unexpected %d %v", status, body)
	}

	status, body = s.do(http.MethodGet, "/customer/dashboard", token, "")
	if status != http.StatusOK {
		t.Fatalf("dashboard: unexpected %d %v", status, body)
	}
	account := body["account"].(map[string]any)
	if account["balance"] != "1250.00" {
		t.Fatalf("expected balance 1250.00, got %v", account["balance"])
	}
	if txs := body["transactions"].([]any); len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %v", txs)
	}
}

func TestRoleGating(t *testing.T) {
	s := newTestServer(t)
	customer := s.login("shubham", "123456")
	banker := s.login("admin", "admin123")

	status, body := s.do(http.MethodGet, "/banker/accounts", "", "")
	if status != http.StatusUnauthorized || body["message"] != "Authorization header missing" {
		t.Fatalf("unexpected %d %v", status, body)
	}

	status, body = s.do(http.MethodGet, "/banker/accounts", "bogus", "")
	if status != http.StatusForbidden || body["message"] != "Invalid or expired token" {
		t.Fatalf("unexpected %d %v", status, body)
	}

	status, body = s.do(http.MethodGet, "/banker/accounts", customer, "")
	if status != http.StatusForbidden || body["message"] != "Access denied: Banker role required" {
		t.Fatalf("unexpected %d %v", status, body)
	}

	status, body = s.do(http.MethodPost, "/customer/deposit", banker, `{"amount": 10}`)
	if status != http.StatusForbidden || body["message"] != "Access denied: Customer role required" {
		t.Fatalf("unexpected %d %v", status, body)
	}
}

func TestBankerViews(t *testing.T) {
	s := newTestServer(t)
	banker := s.login("admin", "admin123")
	customer := s.login("shubham", "123456")
	s.do(http.MethodPost, "/customer/deposit", customer, `{"amount": 100}`)

	req := httptest.NewRequest(http.MethodGet, "/banker/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+banker)
	rr := httptest.NewRecorder()
	s.handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("list accounts: unexpected %d", rr.Code)
	}
	var accounts []map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &accounts); err != nil {
		t.Fatalf("decode accounts: %v", err)
	}
	if len(accounts) != 2 || accounts[0]["username"] != "shubham" || accounts[0]["balance"] != "1100.00" {
		t.Fatalf("unexpected accounts %v", accounts)
	}
	userID := accounts[0]["user_id"].(string)

	status, body := s.do(http.MethodGet, "/banker/accounts/"+userID+"/transactions", banker, "")
	if status != http.StatusOK {
		t.Fatalf("customer transactions: unexpected %d %v", status, body)
	}
	if body["customer"].(map[string]any)["username"] != "shubham" {
		t.Fatalf("unexpected customer %v", body["customer"])
	}

	status, body = s.do(http.MethodGet, "/banker/accounts/missing/transactions", banker, "")
	if status != http.StatusNotFound || body["message"] != "Customer not found or invalid user role." {
		t.Fatalf("unexpected %d %v", status, body)
	}
}

func TestProfileUpdateRevokesSession(t *testing.T) {
	s := newTestServer(t)
	token := s.login("shubham", "123456")

	status, body := s.do(http.MethodPut, "/customer/profile", token, `{"email":"taken"}`)
	if status != http.StatusBadRequest || body["message"] != "Please enter a valid email address" {
		t.Fatalf("unexpected %d %v", status, body)
	}

	status, body = s.do(http.MethodPut, "/customer/profile", token, `{"email":"ADMINR@bank.com"}`)
	if status != http.StatusConflict || body["message"] != "Email already exists." {
		t.Fatalf("unexpected %d %v", status, body)
	}

	status, body = s.do(http.MethodPut, "/customer/profile", token, `{"password":"freshpass"}`)
	if status != http.StatusOK || body["reauthenticate"] != true {
		t.Fatalf("unexpected %d %v", status, body)
	}

	status, _ = s.do(http.MethodGet, "/customer/dashboard", token, "")
	if status != http.StatusForbidden {
		t.Fatalf("expected revoked token to be rejected, got %d", status)
	}
	s.login("shubham", "freshpass")
}

func TestLogout(t *testing.T) {
	s := newTestServer(t)
	token := s.login("admin", "admin123")

	status, body := s.do(http.MethodPost, "/auth/logout", token, "")
	if status != http.StatusOK || body["message"] != "Logged out successfully" {
		t.Fatalf("unexpected %d %v", status, body)
	}
	if _, ok := s.tokens.Resolve(token); ok {
		t.Fatal("expected token to be gone after logout")
	}
}

func TestDepositRejectsOutOfRangeAmounts(t *testing.T) {
	s := newTestServer(t)
	token := s.login("shubham", "123456")

	for _, amount := range []string{"1e20", "1e5000000", `"1e5000000"`, "1e-5000000"} {
		status, body := s.do(http.MethodPost, "/customer/deposit", token, `{"amount": `+amount+`}`)
		if status != http.StatusBadRequest || body["message"] != "Invalid deposit amount." {
			t.Fatalf("%s: unexpected %d %v", amount, status, body)
		}
	}

	status, body := s.do(http.MethodGet, "/customer/dashboard", token, "")
	if status != http.StatusOK {
		t.Fatalf("dashboard: unexpected %d %v", status, body)
	}
	if balance := body["account"].(map[string]any)["balance"]; balance != "1000.00" {
		t.Fatalf("expected balance unchanged at 1000.00, got %v", balance)
	}
	if txs := body["transactions"].([]any); len(txs) != 0 {
		t.Fatalf("expected no transactions, got %v", txs)
	}
}
