package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"

	"splitease/internal/service"
	"splitease/internal/storage/sqlite"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "splitease-handler-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := New(service.NewExpenseService(store), service.NewLedgerService(store))
	h.RegisterRoutes(router)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (int, envelope) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return rec.Code, env
}

func TestHealth(t *testing.T) {
	router := setupRouter(t)

	code, env := doJSON(t, router, http.MethodGet, "/api/v1/health", nil)
	if code != http.StatusOK || !env.Success {
		t.Fatalf("health = %d %+v, want 200 success", code, env)
	}
}

func TestExpenseLifecycle(t *testing.T) {
	router := setupRouter(t)

	code, env := doJSON(t, router, http.MethodPost, "/api/v1/expenses", gin.H{
		"description":  "Dinner",
		"amount":       120,
		"paid_by":      "Alice",
		"participants": []string{"Alice", "Bob", "Charlie"},
	})
	if code != http.StatusOK || !env.Success {
		t.Fatalf("create = %d %+v, want 200 success", code, env)
	}

	var created expenseResponse
	if err := json.Unmarshal(env.Data, &created); err != nil {
		t.Fatalf("failed to decode created expense: %v", err)
	}
	if created.ID == "" {
		t.Fatal("expected generated expense ID")
	}
	if created.SplitType != "equal" {
		t.Errorf("split_type = %q, want equal by default", created.SplitType)
	}

	code, env = doJSON(t, router, http.MethodGet, "/api/v1/expenses", nil)
	if code != http.StatusOK {
		t.Fatalf("list = %d, want 200", code)
	}
	var listed []expenseResponse
	if err := json.Unmarshal(env.Data, &listed); err != nil {
		t.Fatalf("failed to decode expense list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("got %d expenses, want 1", len(listed))
	}

	code, env = doJSON(t, router, http.MethodPut, "/api/v1/expenses/"+created.ID, gin.H{
		"description":  "Dinner and drinks",
		"amount":       150,
		"paid_by":      "Alice",
		"participants": []string{"Alice", "Bob", "Charlie"},
		"split_type":   "equal",
	})
	if code != http.StatusOK || !env.Success {
		t.Fatalf("update = %d %+v, want 200 success", code, env)
	}

	code, env = doJSON(t, router, http.MethodGet, "/api/v1/expenses/"+created.ID, nil)
	if code != http.StatusOK {
		t.Fatalf("get = %d, want 200", code)
	}
	var fetched expenseResponse
	if err := json.Unmarshal(env.Data, &fetched); err != nil {
		t.Fatalf("failed to decode expense: %v", err)
	}
	if fetched.Amount != 150 {
		t.Errorf("amount after update = %v, want 150", fetched.Amount)
	}

	code, _ = doJSON(t, router, http.MethodDelete, "/api/v1/expenses/"+created.ID, nil)
	if code != http.StatusOK {
		t.Fatalf("delete = %d, want 200", code)
	}
	code, _ = doJSON(t, router, http.MethodGet, "/api/v1/expenses/"+created.ID, nil)
	if code != http.StatusNotFound {
		t.Fatalf("get after delete = %d, want 404", code)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	router := setupRouter(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{
			name: "missing amount",
			body: gin.H{
				"description":  "Dinner",
				"paid_by":      "Alice",
				"participants": []string{"Alice"},
			},
		},
		{
			name: "blank description",
			body: gin.H{
				"description":  "   ",
				"amount":       10,
				"paid_by":      "Alice",
				"participants": []string{"Alice"},
			},
		},
		{
			name: "percentages not summing to 100",
			body: gin.H{
				"description":  "Trip",
				"amount":       100,
				"paid_by":      "Alice",
				"participants": []string{"Alice", "Bob"},
				"split_type":   "percentage",
				"shares":       gin.H{"Alice": 70, "Bob": 20},
			},
		},
		{
			name: "share for non-participant",
			body: gin.H{
				"description":  "Trip",
				"amount":       100,
				"paid_by":      "Alice",
				"participants": []string{"Alice", "Bob"},
				"split_type":   "exact",
				"shares":       gin.H{"Alice": 50, "Eve": 50},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, env := doJSON(t, router, http.MethodPost, "/api/v1/expenses", tt.body)
			if code != http.StatusBadRequest {
				t.Errorf("create = %d %+v, want 400", code, env)
			}
			if env.Success {
				t.Error("expected success=false")
			}
		})
	}
}

func TestBalancesAndSettlements(t *testing.T) {
	router := setupRouter(t)

	seed := []gin.H{
		{
			"description":  "Dinner",
			"amount":       120,
			"paid_by":      "Alice",
			"participants": []string{"Alice", "Bob", "Charlie"},
		},
		{
			"description":  "Trip",
			"amount":       200,
			"paid_by":      "Bob",
			"participants": []string{"Alice", "Bob", "Charlie"},
			"split_type":   "percentage",
			"shares":       gin.H{"Alice": 40, "Bob": 40, "Charlie": 20},
		},
	}
	for _, body := range seed {
		if code, env := doJSON(t, router, http.MethodPost, "/api/v1/expenses", body); code != http.StatusOK {
			t.Fatalf("seed create = %d %+v, want 200", code, env)
		}
	}

	code, env := doJSON(t, router, http.MethodGet, "/api/v1/balances", nil)
	if code != http.StatusOK {
		t.Fatalf("balances = %d, want 200", code)
	}
	var balances []balanceResponse
	if err := json.Unmarshal(env.Data, &balances); err != nil {
		t.Fatalf("failed to decode balances: %v", err)
	}
	wantNet := map[string]float64{"Alice": 0, "Bob": 80, "Charlie": -80}
	if len(balances) != len(wantNet) {
		t.Fatalf("got %d balances, want %d", len(balances), len(wantNet))
	}
	for _, b := range balances {
		if b.Balance != wantNet[b.Person] {
			t.Errorf("balance for %s = %v, want %v", b.Person, b.Balance, wantNet[b.Person])
		}
	}

	code, env = doJSON(t, router, http.MethodGet, "/api/v1/settlements", nil)
	if code != http.StatusOK {
		t.Fatalf("settlements = %d, want 200", code)
	}
	var transfers []transferResponse
	if err := json.Unmarshal(env.Data, &transfers); err != nil {
		t.Fatalf("failed to decode settlements: %v", err)
	}
	if len(transfers) != 1 {
		t.Fatalf("got %d transfers %v, want 1", len(transfers), transfers)
	}
	if transfers[0].From != "Charlie" || transfers[0].To != "Bob" || transfers[0].Amount != 80 {
		t.Errorf("transfer = %+v, want Charlie→Bob 80", transfers[0])
	}

	code, env = doJSON(t, router, http.MethodGet, "/api/v1/people", nil)
	if code != http.StatusOK {
		t.Fatalf("people = %d, want 200", code)
	}
	var people struct {
		People []string `json:"people"`
	}
	if err := json.Unmarshal(env.Data, &people); err != nil {
		t.Fatalf("failed to decode people: %v", err)
	}
	if len(people.People) != 3 || people.People[0] != "Alice" {
		t.Errorf("people = %v, want [Alice Bob Charlie]", people.People)
	}
}
