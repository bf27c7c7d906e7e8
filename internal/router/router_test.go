package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/vitrina-next/internal/constants"
	"github.com/vitrina-next/internal/http/response"
	"github.com/vitrina-next/internal/provider"

	"github.com/gin-gonic/gin"
)

func setupRouterTest(t *testing.T) (*gin.Engine, *provider.Container) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c := setupAdminAuthTest(t)
	c.Config.Server.Mode = "debug"
	return SetupRouter(c.Config, c), c
}

type envelope struct {
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string) envelope {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	r.ServeHTTP(w, req)
	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal %s %s failed: %v body=%s", method, path, err, w.Body.String())
	}
	return env
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := setupRouterTest(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), `"ok"`) {
		t.Fatalf("health want 200 ok got %d %s", w.Code, w.Body.String())
	}
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("health response should carry request id")
	}
}

func TestPublicPriceQuoteRoute(t *testing.T) {
	r, _ := setupRouterTest(t)

	env := doJSON(t, r, http.MethodGet, "/api/v1/public/price/quote?base_price=100&tax_rate=19&discount_rate=10&currency=USD", "")
	if env.StatusCode != response.CodeOK {
		t.Fatalf("quote status_code want 0 got %d", env.StatusCode)
	}
	body := string(env.Data)
	if !strings.Contains(body, `"final_price":"107.10"`) || !strings.Contains(body, `"final_display":"$107.10"`) {
		t.Fatalf("unexpected quote payload: %s", body)
	}
}

func TestAdminRoutesRequireToken(t *testing.T) {
	r, _ := setupRouterTest(t)

	env := doJSON(t, r, http.MethodGet, "/api/v1/admin/products", "")
	if env.StatusCode != response.CodeUnauthorized {
		t.Fatalf("admin products without token want 401 got %d", env.StatusCode)
	}
}

func TestPermissionCatalogListsAdminRoutes(t *testing.T) {
	r, c := setupRouterTest(t)
	_, token := issueAdminToken(t, c, "root@vitrina.test", constants.AdminRoleSuperadmin)

	env := doJSON(t, r, http.MethodGet, "/api/v1/admin/authz/permissions/catalog", token)
	if env.StatusCode != response.CodeOK {
		t.Fatalf("catalog status_code want 0 got %d", env.StatusCode)
	}
	var items []adminPermissionCatalogItem
	if err := json.Unmarshal(env.Data, &items); err != nil {
		t.Fatalf("unmarshal catalog failed: %v", err)
	}
	seen := map[string]string{}
	for _, item := range items {
		seen[item.Permission] = item.Module
	}
	if seen["PATCH:/admin/products/:id/toggle"] != "products" {
		t.Fatalf("toggle route missing from catalog: %v", seen)
	}
	if seen["DELETE:/admin/authz/policies"] != "authz" {
		t.Fatalf("authz route missing from catalog: %v", seen)
	}
	if _, ok := seen["POST:/admin/login"]; ok {
		t.Fatalf("login route must not be listed")
	}
}
