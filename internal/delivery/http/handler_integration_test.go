package http

import (
	"context"
	"encoding/json"
	"mime"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/config"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/domain"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/infrastructure/store"
	"github.com/benberthelsen/bower-kitchen-planner-2e763145-sub003/internal/usecase"
)

const testJWTSecret = "integration-test-secret"

// TestMain sets up test environment before running tests
func TestMain(m *testing.M) {
	// Set Gin to test mode once for all tests
	gin.SetMode(gin.TestMode)

	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			Environment:    "test",
			AllowedOrigins: []string{"http://localhost:5173"},
		},
		Auth: config.AuthConfig{JWTSecret: testJWTSecret, Issuer: "kitchen-planner"},
	}
}

var testConstants = domain.ConstructionConstants{
	ToeKickHeight: 135, BaseHeight: 720, BaseDepth: 575,
	WallHeight: 720, WallDepth: 350, TallHeight: 2100, TallDepth: 580,
	BenchtopThickness: 33, SplashbackHeight: 600,
	DoorGap: 2, DrawerGap: 2, BoardThickness: 18, ShelfSetback: 5,
}

// setupTestRouter wires the real services over an in-memory store
func setupTestRouter(t *testing.T) (*gin.Engine, *store.Store) {
	t.Helper()
	st := store.OpenMemory(t)

	handler := NewHandler(
		usecase.NewCatalogImportService(st, nil, nil),
		usecase.NewAssemblyExportService(st, nil, usecase.AssemblyExportServiceConfig{Constants: testConstants}, nil),
		usecase.NewPricingService(st, nil),
		nil,
	)
	return SetupRouter(testConfig(), handler, nil, nil), st
}

func doJSON(router *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response), "body: %s", w.Body.String())
	return response
}

func seedJob(t *testing.T, st *store.Store) {
	t.Helper()
	created := time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC).UnixMilli()
	statements := []struct {
		query string
		args  []any
	}{
		{`INSERT INTO customers (id, name, email) VALUES (?, ?, ?)`, []any{"cust-1", "Tom & Jerry", "tj@example.com"}},
		{`INSERT INTO jobs (id, job_number, name, customer_id, created_at) VALUES (?, ?, ?, ?, ?)`,
			[]any{"job-1", "1042", "Smith  Kitchen", "cust-1", created}},
		{`INSERT INTO rooms (id, job_id, name, shape, width, depth, height, layout, created_at)
		  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			[]any{"room-1", "job-1", "Kitchen", "L", 4000, 3000, 2700,
				`[{"id":"c1","cabinetNumber":"C1","definitionId":"base-600","width":600,"depth":575,"height":870,"x":0,"y":0,"z":0,"hinge":"Left"}]`,
				created}},
		{`INSERT INTO price_list (sku, description, price, updated_at) VALUES (?, ?, ?, ?)`,
			[]any{"HINGE-BLUM-SC", "Blum soft-close concealed hinge", 9.5, created}},
	}
	for _, s := range statements {
		_, err := st.DB.ExecContext(context.Background(), s.query, s.args...)
		require.NoError(t, err)
	}
}

func TestHealthCheckEndpoint(t *testing.T) {
	t.Run("returns healthy status", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := doJSON(router, "GET", "/health", "", "")

		assert.Equal(t, http.StatusOK, w.Code)
		response := decodeBody(t, w)
		assert.Equal(t, "healthy", response["status"])
		assert.Equal(t, "kitchen-interchange", response["service"])
		assert.NotEmpty(t, response["version"])
	})

	t.Run("accepts GET requests only", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		for _, method := range []string{"POST", "PUT", "DELETE", "PATCH"} {
			w := doJSON(router, method, "/health", "", "")
			if w.Code != http.StatusNotFound {
				t.Errorf("Method %s: Status = %d, want %d", method, w.Code, http.StatusNotFound)
			}
		}
	})
}

func TestMetricsEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t)

	doJSON(router, "GET", "/health", "", "")
	w := doJSON(router, "GET", "/metrics", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "kitchen_http_request_duration_seconds")
}

const catalogMarkup = `<Workbook><Worksheet><Table>
<Row><Cell><Data>Name</Data></Cell><Cell><Data>LinkID</Data></Cell><Cell><Data>Width</Data></Cell></Row>
<Row><Cell><Data>Base 2 Door</Data></Cell><Cell><Data>B600</Data></Cell><Cell><Data>600</Data></Cell></Row>
<Row><Cell><Data>Wall Cabinet</Data></Cell><Cell><Data>W600</Data></Cell><Cell><Data></Data></Cell></Row>
<Row><Cell><Data></Data></Cell><Cell><Data>X1</Data></Cell></Row>
</Table></Worksheet></Workbook>`

func TestImportCatalogEndpoint(t *testing.T) {
	t.Run("imports records and reports categories", func(t *testing.T) {
		router, _ := setupTestRouter(t)
		body, _ := json.Marshal(ImportRequest{XMLContent: catalogMarkup})

		w := doJSON(router, "POST", "/api/v1/catalog/import", string(body), "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		response := decodeBody(t, w)
		assert.Equal(t, true, response["success"])
		assert.Equal(t, float64(2), response["imported"])
		assert.Equal(t, float64(1), response["dropped"])
		categories := response["categories"].(map[string]interface{})
		assert.Equal(t, float64(1), categories["Base"])
		assert.Equal(t, float64(1), categories["Wall"])
		assert.Equal(t, float64(0), categories["Tall"])
	})

	t.Run("stored product is readable and re-import is idempotent", func(t *testing.T) {
		router, _ := setupTestRouter(t)
		body, _ := json.Marshal(ImportRequest{XMLContent: catalogMarkup})

		doJSON(router, "POST", "/api/v1/catalog/import", string(body), "")
		doJSON(router, "POST", "/api/v1/catalog/import", string(body), "")

		w := doJSON(router, "GET", "/api/v1/catalog/products/B600", "", "")
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		product := decodeBody(t, w)
		assert.Equal(t, "Base 2 Door", product["name"])
		assert.Equal(t, float64(2), product["doorCount"])

		w = doJSON(router, "GET", "/api/v1/catalog/summary", "", "")
		require.Equal(t, http.StatusOK, w.Code)
		categories := decodeBody(t, w)["categories"].(map[string]interface{})
		assert.Equal(t, float64(1), categories["Base"])
	})

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantError  string
	}{
		{name: "empty content", body: `{"xmlContent":""}`, wantStatus: http.StatusBadRequest, wantError: "No XML content provided"},
		{name: "no rows", body: `{"xmlContent":"<Workbook/>"}`, wantStatus: http.StatusBadRequest, wantError: "No products found in XML file"},
		{name: "malformed json", body: `{"xmlContent":`, wantStatus: http.StatusBadRequest, wantError: "invalid request parameters"},
		{name: "feed not configured", body: `{"sourceUrl":"https://feeds.example.com/catalog.xml"}`, wantStatus: http.StatusBadGateway},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupTestRouter(t)

			w := doJSON(router, "POST", "/api/v1/catalog/import", tt.body, "")

			assert.Equal(t, tt.wantStatus, w.Code)
			response := decodeBody(t, w)
			assert.Equal(t, false, response["success"])
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, response["error"])
			}
		})
	}

	t.Run("unknown product is 404", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := doJSON(router, "GET", "/api/v1/catalog/products/NOPE", "", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestExportAssemblyEndpoint(t *testing.T) {
	t.Run("returns the document as an attachment", func(t *testing.T) {
		router, st := setupTestRouter(t)
		seedJob(t, st)

		w := doJSON(router, "GET", "/api/v1/jobs/job-1/assembly", "", "")

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "attachment; filename=Job_1042_Smith_Kitchen.xml", w.Header().Get("Content-Disposition"))
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/xml"))

		doc := w.Body.String()
		assert.True(t, strings.HasPrefix(doc, `<?xml version="1.0" encoding="UTF-8"?>`))
		assert.Contains(t, doc, "<CustomerName>Tom &amp; Jerry</CustomerName>")
		assert.Contains(t, doc, `<Cabinets count="1">`)
		assert.Contains(t, doc, `<Item sku="HINGE-BLUM-SC" qty="4"`)
		assert.Contains(t, doc, `<Item sku="HANDLE-STD" qty="1"`)
		assert.Contains(t, doc, "<CreatedDate>2026-02-03</CreatedDate>")
	})

	t.Run("missing job is 404", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := doJSON(router, "GET", "/api/v1/jobs/missing/assembly", "", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["success"])
	})
}

func TestPricingEndpoints(t *testing.T) {
	admin := signedToken(t, []byte(testJWTSecret), "admin-1", domain.RoleAdmin)
	planner := signedToken(t, []byte(testJWTSecret), "planner-1", "planner")
	body := `{"changes":[{"sku":"HINGE-BLUM-SC","oldPrice":9.5,"newPrice":10.25},{"sku":"NOPE","newPrice":3},{"sku":"HINGE-BLUM-SC","newPrice":-1}]}`

	t.Run("requires a token", func(t *testing.T) {
		router, st := setupTestRouter(t)
		seedJob(t, st)

		w := doJSON(router, "POST", "/api/v1/pricing/updates", body, "")

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects non-admin callers before any write", func(t *testing.T) {
		router, st := setupTestRouter(t)
		seedJob(t, st)

		w := doJSON(router, "POST", "/api/v1/pricing/updates", body, planner)

		assert.Equal(t, http.StatusForbidden, w.Code)
		entry, err := st.GetPriceBySKU(context.Background(), "HINGE-BLUM-SC")
		require.NoError(t, err)
		assert.Equal(t, 9.5, entry.Price)
	})

	t.Run("applies valid changes and counts failures", func(t *testing.T) {
		router, st := setupTestRouter(t)
		seedJob(t, st)

		w := doJSON(router, "POST", "/api/v1/pricing/updates", body, admin)

		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		response := decodeBody(t, w)
		assert.Equal(t, false, response["success"])
		assert.Equal(t, float64(1), response["updated"])
		assert.Equal(t, float64(2), response["failed"])
		errs := response["errors"].([]interface{})
		require.Len(t, errs, 2)
		assert.True(t, strings.HasPrefix(errs[0].(string), "NOPE: "))

		w = doJSON(router, "GET", "/api/v1/pricing/HINGE-BLUM-SC/history", "", admin)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		history := decodeBody(t, w)["history"].([]interface{})
		require.Len(t, history, 1)
		first := history[0].(map[string]interface{})
		assert.Equal(t, 9.5, first["oldPrice"])
		assert.Equal(t, 10.25, first["newPrice"])
		assert.Equal(t, "admin-1", first["changedBy"])
	})

	t.Run("bad history limit", func(t *testing.T) {
		router, _ := setupTestRouter(t)

		w := doJSON(router, "GET", "/api/v1/pricing/HINGE-BLUM-SC/history?limit=abc", "", admin)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_NotConfigured(t *testing.T) {
	router := SetupRouter(testConfig(), NewHandler(nil, nil, nil, nil), nil, nil)

	tests := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/catalog/import"},
		{"GET", "/api/v1/catalog/summary"},
		{"GET", "/api/v1/jobs/job-1/assembly"},
	}
	for _, tt := range tests {
		w := doJSON(router, tt.method, tt.path, `{}`, "")
		if w.Code != http.StatusNotImplemented {
			t.Errorf("%s %s: Status = %d, want %d", tt.method, tt.path, w.Code, http.StatusNotImplemented)
		}
		response := decodeBody(t, w)
		if errorMsg, _ := response["error"].(string); !strings.Contains(errorMsg, "not configured") {
			t.Errorf("error = %q, want to contain 'not configured'", errorMsg)
		}
	}
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{domain.ErrNoXMLContent, http.StatusBadRequest},
		{domain.ErrInvalidConstants, http.StatusBadRequest},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{domain.ErrForbidden, http.StatusForbidden},
		{domain.ErrJobNotFound, http.StatusNotFound},
		{domain.ErrFeedFailure, http.StatusBadGateway},
		{domain.ErrStoreFailure, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		if got := statusFor(tt.err); got != tt.want {
			t.Errorf("statusFor(%v) = %d, want %d", tt.err, got, tt.want)
		}
	}
}

func TestAttachmentDisposition(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"plain", "Job_7_Kitchen.xml"},
		{"quotes", `Job_7_The_"Big"_Kitchen.xml`},
		{"backslash", `Job_7_A\B.xml`},
		{"non-ascii", "Job_7_Café_Küche.xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := attachmentDisposition(tt.filename)

			disposition, params, err := mime.ParseMediaType(header)
			require.NoError(t, err, header)
			assert.Equal(t, "attachment", disposition)
			assert.Equal(t, tt.filename, params["filename"])
		})
	}
}
