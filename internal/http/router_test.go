package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/dealerhub/go-vehicle-backend/internal/config"
	"github.com/dealerhub/go-vehicle-backend/internal/repo"
)

// newServer wires a full engine against a throwaway SQLite store, the same
// path production takes minus the listener.
func newServer(t *testing.T, mutate func(*config.Config)) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := filepath.Join(t.TempDir(), fmt.Sprintf("router_test_%d.db", time.Now().UnixNano()))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	cfg := config.Config{
		APIBasePath: "/api",
		// Generous limits so the test flow never trips the limiter.
		RateRPS:   1000,
		RateBurst: 1000,
		OTEL:      config.OTELConfig{ServiceName: "router-test"},
	}
	if mutate != nil {
		mutate(&cfg)
	}

	r := gin.New()
	RegisterRoutes(r, db, cfg)
	return r
}

func do(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func parse(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("json: %v (body=%s)", err, w.Body.String())
	}
	return body
}

func TestRouter_HealthAndStatus(t *testing.T) {
	r := newServer(t, nil)

	w := do(t, r, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("/health status=%d", w.Code)
	}

	w = do(t, r, http.MethodGet, "/api/test", "")
	if w.Code != http.StatusOK {
		t.Fatalf("/api/test status=%d, body=%s", w.Code, w.Body.String())
	}
	if parse(t, w)["success"] != true {
		t.Fatalf("status envelope missing success")
	}
	if w.Header().Get("X-Request-ID") == "" {
		t.Fatalf("request id header not set")
	}
}

func TestRouter_MetricsEndpoint(t *testing.T) {
	r := newServer(t, nil)

	// Generate one request so counters have something to report.
	do(t, r, http.MethodGet, "/api/test", "")

	w := do(t, r, http.MethodGet, "/metrics", "")
	if w.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("http_requests_total")) {
		t.Fatalf("expected request counter in metrics exposition")
	}
}

func TestRouter_UnknownRoute_AdvertisesAPI(t *testing.T) {
	r := newServer(t, nil)

	w := do(t, r, http.MethodGet, "/api/nope", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", w.Code)
	}
	body := parse(t, w)
	routes, ok := body["routes"].([]any)
	if !ok || len(routes) != 6 {
		t.Fatalf("expected 6 routes, got %v", body["routes"])
	}

	// A wrong method on a known path falls through to the same advertisement.
	w = do(t, r, http.MethodPatch, "/api/veiculos", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("PATCH status=%d, want 404", w.Code)
	}
}

func TestRouter_CRUDFlow(t *testing.T) {
	r := newServer(t, nil)

	// Empty inventory to start.
	w := do(t, r, http.MethodGet, "/api/veiculos", "")
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d", w.Code)
	}
	if parse(t, w)["total"] != float64(0) {
		t.Fatalf("expected empty inventory")
	}

	// Create two vehicles; the second must list first (newest first).
	w = do(t, r, http.MethodPost, "/api/veiculos",
		`{"modelo":"Gol","marca":"Volkswagen","ano":2018,"preco":42000,"descricao":"  "}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create A status=%d, body=%s", w.Code, w.Body.String())
	}
	a := parse(t, w)["data"].(map[string]any)
	if a["descricao"] != nil {
		t.Fatalf("blank descricao must persist as null, got %v", a["descricao"])
	}
	idA := int64(a["id"].(float64))

	w = do(t, r, http.MethodPost, "/api/veiculos",
		`{"modelo":"Civic","marca":"Honda","ano":"2022","preco":"95000.5"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("create B status=%d, body=%s", w.Code, w.Body.String())
	}

	w = do(t, r, http.MethodGet, "/api/veiculos", "")
	body := parse(t, w)
	if body["total"] != float64(2) {
		t.Fatalf("expected 2 vehicles, got %v", body["total"])
	}
	data := body["data"].([]any)
	if data[0].(map[string]any)["modelo"] != "Civic" {
		t.Fatalf("expected newest first: %v", data)
	}

	// Fetch, update, and delete vehicle A.
	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/veiculos/%d", idA), "")
	if w.Code != http.StatusOK {
		t.Fatalf("get status=%d", w.Code)
	}

	w = do(t, r, http.MethodPut, fmt.Sprintf("/api/veiculos/%d", idA),
		`{"modelo":"Gol GTI","marca":"Volkswagen","ano":2019,"preco":55000}`)
	if w.Code != http.StatusOK {
		t.Fatalf("update status=%d, body=%s", w.Code, w.Body.String())
	}
	if parse(t, w)["data"].(map[string]any)["modelo"] != "Gol GTI" {
		t.Fatalf("update not applied")
	}

	w = do(t, r, http.MethodDelete, fmt.Sprintf("/api/veiculos/%d", idA), "")
	if w.Code != http.StatusOK {
		t.Fatalf("delete status=%d", w.Code)
	}
	if parse(t, w)["data"].(map[string]any)["modelo"] != "Gol GTI" {
		t.Fatalf("delete must return the removed row")
	}

	// Gone now.
	w = do(t, r, http.MethodGet, fmt.Sprintf("/api/veiculos/%d", idA), "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("get-after-delete status=%d, want 404", w.Code)
	}

	// Validation failures through the whole stack.
	w = do(t, r, http.MethodPost, "/api/veiculos", `{"modelo":"Uno"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing fields status=%d, want 400", w.Code)
	}
	w = do(t, r, http.MethodGet, "/api/veiculos/999999", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing id status=%d, want 404", w.Code)
	}
	w = do(t, r, http.MethodGet, "/api/veiculos/abc", "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad id status=%d, want 400", w.Code)
	}
}

func TestRouter_StaticFrontend(t *testing.T) {
	staticDir := t.TempDir()
	index := []byte("<!doctype html><title>inventory</title>")
	if err := os.WriteFile(filepath.Join(staticDir, "index.html"), index, 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}

	r := newServer(t, func(cfg *config.Config) { cfg.StaticDir = staticDir })

	// Root resolves to index.html.
	w := do(t, r, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("root status=%d", w.Code)
	}
	if !bytes.Contains(w.Body.Bytes(), []byte("inventory")) {
		t.Fatalf("expected index.html contents, got %s", w.Body.String())
	}

	// Missing asset falls through to the route list.
	w = do(t, r, http.MethodGet, "/missing.js", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("missing asset status=%d, want 404", w.Code)
	}
	if _, ok := parse(t, w)["routes"]; !ok {
		t.Fatalf("expected route advertisement for missing asset")
	}
}

func TestRouter_SwaggerGate(t *testing.T) {
	// Disabled by default.
	r := newServer(t, nil)
	w := do(t, r, http.MethodGet, "/swagger/index.html", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("swagger should be off by default, status=%d", w.Code)
	}

	r = newServer(t, func(cfg *config.Config) { cfg.SwaggerEnabled = true })
	w = do(t, r, http.MethodGet, "/swagger/index.html", "")
	if w.Code != http.StatusOK {
		t.Fatalf("swagger enabled, status=%d", w.Code)
	}
}
