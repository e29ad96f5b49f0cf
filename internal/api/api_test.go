package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/erazemk/partstock/internal/auth"
	"github.com/erazemk/partstock/internal/db"
	"github.com/erazemk/partstock/internal/model"
)

const testKeySecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	database := db.NewTestDB(t)
	router := LoggingMiddleware(NewRouter(database, testKeySecret))
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	key, err := auth.GenerateKey(testKeySecret, "test", 0)
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	return server, key
}

func keyRequest(method, url, key string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func createPart(t *testing.T, server *httptest.Server, key string, body any) model.Part {
	t.Helper()
	req, _ := keyRequest("POST", server.URL+"/api/inventory", key, body)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("create request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("expected 201, got %d", resp.StatusCode)
	}
	var part model.Part
	json.NewDecoder(resp.Body).Decode(&part)
	return part
}

func TestInventoryAPIFlow(t *testing.T) {
	server, key := setupTestServer(t)

	created := createPart(t, server, key, map[string]any{
		"name":          "Oil Filter",
		"aliases":       []string{"OF-1"},
		"vehicle_stock": 2,
		"price":         nil,
	})
	if created.ID == 0 || created.Name != "Oil Filter" {
		t.Fatalf("unexpected created part: %+v", created)
	}
	createPart(t, server, key, map[string]any{"name": "Air Filter"})

	// List is ordered by name.
	req, _ := keyRequest("GET", server.URL+"/api/inventory", key, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var parts []model.Part
	json.NewDecoder(resp.Body).Decode(&parts)
	resp.Body.Close()
	if len(parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(parts))
	}
	if parts[0].Name != "Air Filter" {
		t.Errorf("expected Air Filter first, got %q", parts[0].Name)
	}

	// Patch a single field, explicitly unsetting vehicle stock.
	url := server.URL + "/api/inventory/" + strconv.FormatInt(created.ID, 10)
	req, _ = keyRequest("PATCH", url, key, map[string]any{"vehicle_stock": nil})
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var updated model.Part
	json.NewDecoder(resp.Body).Decode(&updated)
	resp.Body.Close()
	if updated.VehicleStock.Set {
		t.Errorf("expected vehicle stock cleared, got %+v", updated.VehicleStock)
	}
	if len(updated.Aliases) != 1 || updated.Aliases[0] != "OF-1" {
		t.Errorf("expected aliases untouched, got %v", updated.Aliases)
	}

	// Delete, then the part is gone.
	req, _ = keyRequest("DELETE", url, key, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()

	req, _ = keyRequest("GET", url, key, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 after delete, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCreateRequiresName(t *testing.T) {
	server, key := setupTestServer(t)

	req, _ := keyRequest("POST", server.URL+"/api/inventory", key, map[string]any{"name": "  "})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for blank name, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestUpdateMissingPart(t *testing.T) {
	server, key := setupTestServer(t)

	req, _ := keyRequest("PATCH", server.URL+"/api/inventory/77", key, map[string]any{"price": 10})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestInvalidPatchBody(t *testing.T) {
	server, key := setupTestServer(t)
	part := createPart(t, server, key, map[string]any{"name": "Belt"})

	url := server.URL + "/api/inventory/" + strconv.FormatInt(part.ID, 10)
	req, _ := keyRequest("PATCH", url, key, map[string]any{"price": -4})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for negative price, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func rawRequest(t *testing.T, method, url, key, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, url, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Authorization", "Bearer "+key)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	return resp
}

func TestCreateRejectsTrailingData(t *testing.T) {
	server, key := setupTestServer(t)

	resp := rawRequest(t, "POST", server.URL+"/api/inventory", key, `{"name":"Belt"} {"name":"Hose"}`)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for trailing data, got %d", resp.StatusCode)
	}
}

func TestCreateRejectsOversizedBody(t *testing.T) {
	server, key := setupTestServer(t)

	body := `{"name":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	resp := rawRequest(t, "POST", server.URL+"/api/inventory", key, body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for oversized body, got %d", resp.StatusCode)
	}
}

func TestMissingKey(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/inventory")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without key, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestAPIKeyHeader(t *testing.T) {
	server, key := setupTestServer(t)

	req, _ := http.NewRequest("GET", server.URL+"/api/inventory", nil)
	req.Header.Set("apikey", key)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200 with apikey header, got %d", resp.StatusCode)
	}
	if resp.Header.Get(RequestIDHeader) == "" {
		t.Error("expected a request id header")
	}
	resp.Body.Close()
}

func TestKeyFromOtherSecretRejected(t *testing.T) {
	server, _ := setupTestServer(t)
	foreign, _ := auth.GenerateKey("another-secret", "", 0)

	req, _ := keyRequest("GET", server.URL+"/api/inventory", foreign, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for foreign key, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestHealthIsPublic(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/health")
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestCORSPreflight(t *testing.T) {
	database := db.NewTestDB(t)
	server := httptest.NewServer(WithCORS(NewRouter(database, testKeySecret), nil))
	t.Cleanup(server.Close)

	req, _ := http.NewRequest(http.MethodOptions, server.URL+"/api/inventory", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodPatch)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight: %v", err)
	}
	resp.Body.Close()
	if resp.Header.Get("Access-Control-Allow-Origin") == "" {
		t.Error("expected Access-Control-Allow-Origin on preflight")
	}
}
