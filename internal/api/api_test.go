package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/sisques-labs/pair-pay/internal/auth"
	"github.com/sisques-labs/pair-pay/internal/service"
	"github.com/sisques-labs/pair-pay/internal/storage/sqlite"
)

func setupServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	jwtManager := auth.NewJWTManager("test-secret-key-for-api", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	handler := NewHandler(
		service.NewAuthService(authenticator, jwtManager, store),
		service.NewCoupleService(store),
		service.NewExpenseService(store),
		service.NewBalanceService(store),
	)

	server := httptest.NewServer(NewRouter(handler, jwtManager))
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return server
}

// doRequest performs a JSON request and decodes the envelope.
func doRequest(t *testing.T, server *httptest.Server, method, path, token string, body any) (int, map[string]any) {
	t.Helper()

	var payload bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&payload).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}

	req, err := http.NewRequest(method, server.URL+path, &payload)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	defer resp.Body.Close()

	var decoded map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.StatusCode, decoded
}

// registerUser registers an account and returns its session token.
func registerUser(t *testing.T, server *httptest.Server, email, fullName string) string {
	t.Helper()

	status, resp := doRequest(t, server, "POST", "/api/auth/register", "", map[string]any{
		"email":    email,
		"fullName": fullName,
		"password": "correct-horse",
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: status = %d, resp = %v", email, status, resp)
	}
	token, _ := resp["token"].(string)
	if token == "" {
		t.Fatalf("register %s: no token in %v", email, resp)
	}
	return token
}

// pairCouple registers ana and bruno and pairs them, returning both tokens.
func pairCouple(t *testing.T, server *httptest.Server) (string, string) {
	t.Helper()

	anaToken := registerUser(t, server, "ana@example.com", "Ana García")
	brunoToken := registerUser(t, server, "bruno@example.com", "Bruno Díaz")

	status, resp := doRequest(t, server, "POST", "/api/couple", anaToken, nil)
	if status != http.StatusCreated {
		t.Fatalf("create couple: status = %d, resp = %v", status, resp)
	}
	couple := resp["couple"].(map[string]any)
	code := couple["invitationCode"].(string)

	status, resp = doRequest(t, server, "POST", "/api/couple/join", brunoToken, map[string]any{
		"invitationCode": code,
	})
	if status != http.StatusOK {
		t.Fatalf("join couple: status = %d, resp = %v", status, resp)
	}
	return anaToken, brunoToken
}

func TestAuthEndpoints(t *testing.T) {
	server := setupServer(t)

	token := registerUser(t, server, "ana@example.com", "Ana García")

	t.Run("weak password", func(t *testing.T) {
		status, resp := doRequest(t, server, "POST", "/api/auth/register", "", map[string]any{
			"email":    "new@example.com",
			"password": "short",
		})
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400 (%v)", status, resp)
		}
	})

	t.Run("duplicate email", func(t *testing.T) {
		status, _ := doRequest(t, server, "POST", "/api/auth/register", "", map[string]any{
			"email":    "ana@example.com",
			"password": "correct-horse",
		})
		if status != http.StatusConflict {
			t.Errorf("status = %d, want 409", status)
		}
	})

	t.Run("login", func(t *testing.T) {
		status, resp := doRequest(t, server, "POST", "/api/auth/login", "", map[string]any{
			"email":    "ana@example.com",
			"password": "correct-horse",
		})
		if status != http.StatusOK {
			t.Fatalf("status = %d, resp = %v", status, resp)
		}
		if resp["token"] == "" {
			t.Error("expected token")
		}
	})

	t.Run("login wrong password", func(t *testing.T) {
		status, _ := doRequest(t, server, "POST", "/api/auth/login", "", map[string]any{
			"email":    "ana@example.com",
			"password": "wrong-password",
		})
		if status != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", status)
		}
	})

	t.Run("me", func(t *testing.T) {
		status, resp := doRequest(t, server, "GET", "/api/auth/me", token, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d, resp = %v", status, resp)
		}
		user := resp["user"].(map[string]any)
		if user["email"] != "ana@example.com" {
			t.Errorf("email = %v", user["email"])
		}
		if _, leaked := user["PasswordHash"]; leaked {
			t.Error("password hash must not be serialized")
		}
	})

	t.Run("me without token", func(t *testing.T) {
		status, resp := doRequest(t, server, "GET", "/api/auth/me", "", nil)
		if status != http.StatusUnauthorized {
			t.Errorf("status = %d, want 401", status)
		}
		if resp["error"] != "Usuario no autenticado" {
			t.Errorf("error = %v", resp["error"])
		}
	})

	t.Run("logout", func(t *testing.T) {
		status, _ := doRequest(t, server, "POST", "/api/auth/logout", token, nil)
		if status != http.StatusOK {
			t.Errorf("status = %d, want 200", status)
		}
	})
}

func TestCoupleEndpoints(t *testing.T) {
	server := setupServer(t)
	anaToken, brunoToken := pairCouple(t, server)

	t.Run("current couple", func(t *testing.T) {
		status, resp := doRequest(t, server, "GET", "/api/couple", brunoToken, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d, resp = %v", status, resp)
		}
		couple := resp["couple"].(map[string]any)
		members := couple["members"].([]any)
		if len(members) != 2 {
			t.Errorf("members = %d, want 2", len(members))
		}
	})

	t.Run("create while paired", func(t *testing.T) {
		status, resp := doRequest(t, server, "POST", "/api/couple", anaToken, nil)
		if status != http.StatusConflict {
			t.Errorf("status = %d, want 409", status)
		}
		if resp["error"] != "Ya perteneces a una pareja" {
			t.Errorf("error = %v", resp["error"])
		}
	})

	t.Run("join with bad code", func(t *testing.T) {
		carlaToken := registerUser(t, server, "carla@example.com", "")
		status, resp := doRequest(t, server, "POST", "/api/couple/join", carlaToken, map[string]any{
			"invitationCode": "ZZZZZZZZ",
		})
		if status != http.StatusConflict {
			t.Errorf("status = %d, want 409", status)
		}
		if resp["error"] != "Código de invitación inválido" {
			t.Errorf("error = %v", resp["error"])
		}
	})

	t.Run("couple is null for unpaired user", func(t *testing.T) {
		soloToken := registerUser(t, server, "solo@example.com", "")
		status, resp := doRequest(t, server, "GET", "/api/couple", soloToken, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if resp["couple"] != nil {
			t.Errorf("couple = %v, want null", resp["couple"])
		}
	})
}

func TestExpenseEndpoints(t *testing.T) {
	server := setupServer(t)
	anaToken, brunoToken := pairCouple(t, server)

	var expenseID string

	t.Run("create", func(t *testing.T) {
		_, me := doRequest(t, server, "GET", "/api/auth/me", anaToken, nil)
		anaID := me["user"].(map[string]any)["id"].(string)

		status, resp := doRequest(t, server, "POST", "/api/expenses", anaToken, map[string]any{
			"description": "Alquiler",
			"amount":      100,
			"category":    "home",
			"paidBy":      anaID,
		})
		if status != http.StatusCreated {
			t.Fatalf("status = %d, resp = %v", status, resp)
		}
		expense := resp["expense"].(map[string]any)
		expenseID = expense["id"].(string)
		if expense["paidByUser"].(map[string]any)["email"] != "ana@example.com" {
			t.Errorf("paidByUser = %v", expense["paidByUser"])
		}
	})

	t.Run("create invalid category", func(t *testing.T) {
		_, me := doRequest(t, server, "GET", "/api/auth/me", anaToken, nil)
		anaID := me["user"].(map[string]any)["id"].(string)

		status, _ := doRequest(t, server, "POST", "/api/expenses", anaToken, map[string]any{
			"description": "Joyas",
			"amount":      10,
			"category":    "luxuries",
			"paidBy":      anaID,
		})
		if status != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", status)
		}
	})

	t.Run("list and get", func(t *testing.T) {
		status, resp := doRequest(t, server, "GET", "/api/expenses", brunoToken, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if got := len(resp["expenses"].([]any)); got != 1 {
			t.Errorf("expenses = %d, want 1", got)
		}

		status, resp = doRequest(t, server, "GET", "/api/expenses/"+expenseID, brunoToken, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d, resp = %v", status, resp)
		}
	})

	t.Run("get unknown id", func(t *testing.T) {
		status, resp := doRequest(t, server, "GET", "/api/expenses/unknown", anaToken, nil)
		if status != http.StatusNotFound {
			t.Errorf("status = %d, want 404", status)
		}
		if resp["error"] != "Gasto no encontrado" {
			t.Errorf("error = %v", resp["error"])
		}
	})

	t.Run("partner cannot edit", func(t *testing.T) {
		status, resp := doRequest(t, server, "PATCH", "/api/expenses/"+expenseID, brunoToken, map[string]any{
			"description": "Hipoteca",
		})
		if status != http.StatusForbidden {
			t.Errorf("status = %d, want 403", status)
		}
		if resp["error"] != "No tienes permiso para editar este gasto" {
			t.Errorf("error = %v", resp["error"])
		}
	})

	t.Run("author updates", func(t *testing.T) {
		status, resp := doRequest(t, server, "PATCH", "/api/expenses/"+expenseID, anaToken, map[string]any{
			"amount": 120.50,
		})
		if status != http.StatusOK {
			t.Fatalf("status = %d, resp = %v", status, resp)
		}
		expense := resp["expense"].(map[string]any)
		if expense["amount"] != 120.50 {
			t.Errorf("amount = %v, want 120.50", expense["amount"])
		}
		if expense["description"] != "Alquiler" {
			t.Errorf("description = %v, want unchanged", expense["description"])
		}
	})

	t.Run("partner cannot delete", func(t *testing.T) {
		status, resp := doRequest(t, server, "DELETE", "/api/expenses/"+expenseID, brunoToken, nil)
		if status != http.StatusForbidden {
			t.Errorf("status = %d, want 403", status)
		}
		if resp["error"] != "No tienes permiso para eliminar este gasto" {
			t.Errorf("error = %v", resp["error"])
		}
	})

	t.Run("author deletes", func(t *testing.T) {
		status, _ := doRequest(t, server, "DELETE", "/api/expenses/"+expenseID, anaToken, nil)
		if status != http.StatusOK {
			t.Errorf("status = %d, want 200", status)
		}
		status, _ = doRequest(t, server, "GET", "/api/expenses/"+expenseID, anaToken, nil)
		if status != http.StatusNotFound {
			t.Errorf("status after delete = %d, want 404", status)
		}
	})

	t.Run("categories", func(t *testing.T) {
		status, resp := doRequest(t, server, "GET", "/api/categories", anaToken, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if got := len(resp["categories"].([]any)); got != 8 {
			t.Errorf("categories = %d, want 8", got)
		}
	})
}

func TestBalanceAndSettlementEndpoints(t *testing.T) {
	server := setupServer(t)
	anaToken, brunoToken := pairCouple(t, server)

	t.Run("settle with nothing pending", func(t *testing.T) {
		status, resp := doRequest(t, server, "POST", "/api/settlements", anaToken, nil)
		if status != http.StatusConflict {
			t.Errorf("status = %d, want 409", status)
		}
		if resp["error"] != "No hay balance pendiente" {
			t.Errorf("error = %v", resp["error"])
		}
	})

	_, me := doRequest(t, server, "GET", "/api/auth/me", anaToken, nil)
	anaID := me["user"].(map[string]any)["id"].(string)

	status, resp := doRequest(t, server, "POST", "/api/expenses", anaToken, map[string]any{
		"description": "Alquiler",
		"amount":      100,
		"category":    "home",
		"paidBy":      anaID,
	})
	if status != http.StatusCreated {
		t.Fatalf("create expense: status = %d, resp = %v", status, resp)
	}

	t.Run("balance", func(t *testing.T) {
		status, resp := doRequest(t, server, "GET", "/api/balance", brunoToken, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		bal := resp["balance"].(map[string]any)
		if bal["netBalance"] != 50.0 {
			t.Errorf("netBalance = %v, want 50", bal["netBalance"])
		}
		if bal["owedTo"] != anaID {
			t.Errorf("owedTo = %v, want ana", bal["owedTo"])
		}
	})

	t.Run("settle", func(t *testing.T) {
		status, resp := doRequest(t, server, "POST", "/api/settlements", brunoToken, map[string]any{
			"notes": "bizum",
		})
		if status != http.StatusCreated {
			t.Fatalf("status = %d, resp = %v", status, resp)
		}
		settlement := resp["settlement"].(map[string]any)
		if settlement["amount"] != 50.0 {
			t.Errorf("amount = %v, want 50", settlement["amount"])
		}
		if settlement["toUser"] != anaID {
			t.Errorf("toUser = %v, want ana", settlement["toUser"])
		}
	})

	t.Run("settlements list", func(t *testing.T) {
		status, resp := doRequest(t, server, "GET", "/api/settlements", anaToken, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		settlements := resp["settlements"].([]any)
		if len(settlements) != 1 {
			t.Fatalf("settlements = %d, want 1", len(settlements))
		}
		entry := settlements[0].(map[string]any)
		if entry["fromUserProfile"].(map[string]any)["email"] != "bruno@example.com" {
			t.Errorf("fromUserProfile = %v", entry["fromUserProfile"])
		}
	})

	t.Run("balance for unpaired user is null", func(t *testing.T) {
		soloToken := registerUser(t, server, "solo@example.com", "")
		status, resp := doRequest(t, server, "GET", "/api/balance", soloToken, nil)
		if status != http.StatusOK {
			t.Fatalf("status = %d", status)
		}
		if resp["balance"] != nil {
			t.Errorf("balance = %v, want null", resp["balance"])
		}
	})
}

func TestHealthz(t *testing.T) {
	server := setupServer(t)

	status, resp := doRequest(t, server, "GET", "/healthz", "", nil)
	if status != http.StatusOK {
		t.Errorf("status = %d, want 200", status)
	}
	if resp["status"] != "ok" {
		t.Errorf("status field = %v", resp["status"])
	}
}
