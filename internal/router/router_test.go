package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"stockbook/internal/config"
	"stockbook/internal/model"
	"stockbook/internal/repository"
	"stockbook/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type testEnv struct {
	server *httptest.Server
	token  string
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	gw := storage.NewMemory()
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, repository.NewAuthRepository(gw).Save(ctx, model.Credential{
		Username: "admin", PasswordHash: string(hash),
	}))

	cfg := &config.Config{
		Env:                "test",
		JWTSecret:          "test-secret",
		JWTExpirationHours: 1,
		ExportDir:          t.TempDir(),
		ExportWorkers:      1,
	}
	engine, err := New(ctx, cfg, gw)
	require.NoError(t, err)

	srv := httptest.NewServer(engine)
	t.Cleanup(srv.Close)

	env := &testEnv{server: srv}
	env.token = env.login(t, "admin", "admin123")
	return env
}

func (e *testEnv) login(t *testing.T, username, password string) string {
	t.Helper()
	resp := e.do(t, http.MethodPost, "/v1/auth/login", map[string]string{
		"username": username, "password": password,
	}, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var session struct {
		AccessToken string `json:"access_token"`
	}
	decodeJSON(t, resp, &session)
	require.NotEmpty(t, session.AccessToken)
	return session.AccessToken
}

func (e *testEnv) do(t *testing.T, method, path string, body any, token string) *http.Response {
	t.Helper()
	var buf *bytes.Buffer
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		buf = bytes.NewBuffer(b)
	} else {
		buf = bytes.NewBuffer(nil)
	}
	req, err := http.NewRequest(method, e.server.URL+path, buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := e.server.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestRouter_HealthIsPublic(t *testing.T) {
	env := setupTestEnv(t)
	resp := env.do(t, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_ProtectedRoutesRejectMissingToken(t *testing.T) {
	env := setupTestEnv(t)
	for _, path := range []string{"/v1/products", "/v1/transactions", "/v1/dashboard", "/v1/settings"} {
		resp := env.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}

func TestRouter_LoginRejectsBadPassword(t *testing.T) {
	env := setupTestEnv(t)
	resp := env.do(t, http.MethodPost, "/v1/auth/login", map[string]string{
		"username": "admin", "password": "wrong",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

// Full cycle: create a product, sell some, check the ledger and the
// dashboard, then delete the product and confirm the ledger survives.
func TestRouter_InventoryFlow(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.do(t, http.MethodPost, "/v1/products", map[string]any{
		"name":         "Widget",
		"category":     "Hardware",
		"supplierName": "Acme",
		"buyingPrice":  10,
		"sellingPrice": 15,
		"stock":        20,
	}, env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID    string `json:"id"`
		Stock int    `json:"stock"`
	}
	decodeJSON(t, resp, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, 20, created.Stock)

	// sell 5
	resp = env.do(t, http.MethodPost, "/v1/transactions/sale", map[string]any{
		"productId": created.ID,
		"quantity":  5,
	}, env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var sale struct {
		Type        string `json:"type"`
		TotalAmount string `json:"totalAmount"`
		Profit      string `json:"profit"`
	}
	decodeJSON(t, resp, &sale)
	assert.Equal(t, "sale", sale.Type)
	assert.Equal(t, "75", sale.TotalAmount)
	assert.Equal(t, "25", sale.Profit)

	// overselling is a conflict
	resp = env.do(t, http.MethodPost, "/v1/transactions/sale", map[string]any{
		"productId": created.ID,
		"quantity":  100,
	}, env.token)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// stock reflects only the successful sale
	resp = env.do(t, http.MethodGet, "/v1/products/"+created.ID, nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var fetched struct {
		Stock int `json:"stock"`
	}
	decodeJSON(t, resp, &fetched)
	assert.Equal(t, 15, fetched.Stock)

	// dashboard sees the sale
	resp = env.do(t, http.MethodGet, "/v1/dashboard", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var dash struct {
		TotalProducts int    `json:"totalProducts"`
		MonthlySales  string `json:"monthlySales"`
	}
	decodeJSON(t, resp, &dash)
	assert.Equal(t, 1, dash.TotalProducts)
	assert.Equal(t, "75", dash.MonthlySales)

	// delete; ledger keeps the sale
	resp = env.do(t, http.MethodDelete, "/v1/products/"+created.ID, nil, env.token)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/v1/transactions", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var txs []struct {
		ProductName string `json:"productName"`
	}
	decodeJSON(t, resp, &txs)
	require.Len(t, txs, 1)
	assert.Equal(t, "Widget", txs[0].ProductName)
}

func TestRouter_RemovalRequiresKnownReason(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.do(t, http.MethodPost, "/v1/products", map[string]any{
		"name": "Widget", "category": "Hardware", "supplierName": "Acme",
		"buyingPrice": 10, "sellingPrice": 15, "stock": 20,
	}, env.token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID string `json:"id"`
	}
	decodeJSON(t, resp, &created)

	resp = env.do(t, http.MethodPost, "/v1/transactions/removal", map[string]any{
		"productId": created.ID, "quantity": 1, "reason": "shrinkage",
	}, env.token)
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/v1/transactions/removal", map[string]any{
		"productId": created.ID, "quantity": 1, "reason": "damaged",
	}, env.token)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_UnknownProductIs404(t *testing.T) {
	env := setupTestEnv(t)
	resp := env.do(t, http.MethodGet, "/v1/products/3e0f5ea1-0d26-4cb5-9f4c-000000000000", nil, env.token)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestRouter_SettingsRoundTrip(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.do(t, http.MethodPut, "/v1/settings", map[string]any{
		"companyName": "Corner Shop",
		"currency":    "EUR",
	}, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/v1/settings", nil, env.token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var settings struct {
		CompanyName    string `json:"companyName"`
		Currency       string `json:"currency"`
		CurrencySymbol string `json:"currencySymbol"`
	}
	decodeJSON(t, resp, &settings)
	assert.Equal(t, "Corner Shop", settings.CompanyName)
	assert.Equal(t, "EUR", settings.Currency)
	assert.Equal(t, "€", settings.CurrencySymbol)
}

func TestRouter_ExportLifecycle(t *testing.T) {
	env := setupTestEnv(t)

	resp := env.do(t, http.MethodPost, "/v1/exports", map[string]any{
		"range": "month", "format": "csv",
	}, env.token)
	require.Equal(t, http.StatusAccepted, resp.StatusCode)
	var job struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeJSON(t, resp, &job)
	require.NotEmpty(t, job.ID)

	require.Eventually(t, func() bool {
		resp := env.do(t, http.MethodGet, "/v1/exports/"+job.ID, nil, env.token)
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return false
		}
		var polled struct {
			Status   string `json:"status"`
			FileName string `json:"fileName"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&polled); err != nil {
			return false
		}
		return polled.Status == "completed" && polled.FileName != ""
	}, 3*time.Second, 25*time.Millisecond)
}
