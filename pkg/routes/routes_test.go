package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"pos_backend/pkg/config"
	"pos_backend/pkg/middleware"
	"pos_backend/pkg/models"
	"pos_backend/pkg/services"
	"pos_backend/pkg/session"
	"pos_backend/pkg/store"
	"strings"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
)

const pizzaID = "a0eebc99-9c0b-4ef8-bb6d-6bb9bd380a11"

// emptyStore starts every collection empty and accepts all writes, so Load
// seeds the default dataset.
type emptyStore struct{}

func (emptyStore) SelectAll(context.Context, any) error { return nil }
func (emptyStore) Insert(context.Context, any) error { return nil }
func (emptyStore) Update(context.Context, any, ...string) error { return nil }
func (emptyStore) Delete(context.Context, any) error { return nil }
func (emptyStore) DeleteAll(context.Context, any) error { return nil }

func newTestRouter(t *testing.T, standby time.Duration) (*gin.Engine, *middleware.App) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig = &config.Config{
		Environment:             "test",
		JWTSecret:               "test-secret",
		JWTExpiresIn:            "1h",
		CookieSecure:            "false",
		EnableMobileTokenReturn: "true",
	}

	writer := store.NewWriter(store.WriterConfig{Workers: 1, MaxAttempts: 1})
	state := store.New(store.Options{Store: emptyStore{}, Writer: writer, Location: time.UTC})
	if err := state.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	idle := session.NewIdleTracker(standby)
	t.Cleanup(func() {
		idle.Stop()
		writer.Close(context.Background())
	})

	app := &middleware.App{State: state, Idle: idle, Assistant: services.NewAssistant(nil)}
	router := gin.New()
	router.Use(sessions.Sessions("session", cookie.NewStore([]byte("test-secret"))))
	Setup(router, app)
	return router, app
}

func request(t *testing.T, router *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return out
}

func login(t *testing.T, router *gin.Engine, staffID, passcode string) string {
	t.Helper()
	rec := request(t, router, http.MethodPost, "/api/auth/login", "", gin.H{"staffId": staffID, "passcode": passcode})
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", staffID, rec.Code, rec.Body.String())
	}
	token, _ := decode(t, rec)["token"].(string)
	if token == "" {
		t.Fatalf("login %s returned no token", staffID)
	}
	return token
}

func TestLoginFailures(t *testing.T) {
	router, _ := newTestRouter(t, 15*time.Minute)

	rec := request(t, router, http.MethodPost, "/api/auth/login", "", gin.H{"staffId": "s3", "passcode": "9999"})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	if msg := decode(t, rec)["message"]; msg != "Invalid Staff ID or Passcode. Please try again." {
		t.Errorf("message = %q", msg)
	}

	rec = request(t, router, http.MethodPost, "/api/auth/login", "", gin.H{"staffId": "s3"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing passcode: status = %d, want 400", rec.Code)
	}

	rec = request(t, router, http.MethodGet, "/api/pos/menu", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}
	rec = request(t, router, http.MethodGet, "/api/pos/menu", "garbage", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", rec.Code)
	}
}

func TestOrderFlow(t *testing.T) {
	router, _ := newTestRouter(t, 15*time.Minute)
	waiter := login(t, router, "s3", "2222")

	rec := request(t, router, http.MethodGet, "/api/pos/menu?category=ALL", waiter, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("menu: status %d", rec.Code)
	}
	if items := decode(t, rec)["items"].([]any); len(items) != 17 {
		t.Errorf("menu items = %d, want 17", len(items))
	}

	rec = request(t, router, http.MethodPost, "/api/pos/orders", waiter, gin.H{
		"tableId": "t-7",
		"items":   []gin.H{{"itemId": pizzaID, "quantity": 1}},
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("checkout: status %d body %s", rec.Code, rec.Body.String())
	}
	order := decode(t, rec)["order"].(map[string]any)
	id := order["id"].(string)
	if order["staffId"] != "s3" || order["status"] != string(models.OrderStatusPending) {
		t.Errorf("order = %v", order)
	}

	rec = request(t, router, http.MethodPost, "/api/pos/orders", waiter, gin.H{"tableId": "t-7"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty cart: status = %d, want 400", rec.Code)
	}

	chef := login(t, router, "s2", "1111")
	rec = request(t, router, http.MethodGet, "/api/pos/kitchen", chef, nil)
	if queue := decode(t, rec)["orders"].([]any); len(queue) != 1 {
		t.Errorf("kitchen queue = %d, want 1", len(queue))
	}

	rec = request(t, router, http.MethodPost, "/api/pos/orders/"+id+"/advance", chef, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("advance: status %d body %s", rec.Code, rec.Body.String())
	}
	if got := decode(t, rec)["order"].(map[string]any)["status"]; got != string(models.OrderStatusPreparing) {
		t.Errorf("advanced status = %v", got)
	}

	rec = request(t, router, http.MethodGet, "/api/pos/orders/"+id+"/receipt?format=html", waiter, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("receipt: status %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("receipt content type = %q", ct)
	}
	if body := rec.Body.String(); !strings.Contains(body, "Mike Johnson") || !strings.Contains(body, "Table 7") {
		t.Errorf("receipt is missing server or table:\n%s", body)
	}

	rec = request(t, router, http.MethodPut, "/api/admin/orders/"+id+"/status", waiter, gin.H{"status": "PAID"})
	if rec.Code != http.StatusForbidden {
		t.Errorf("waiter set-status: status = %d, want 403", rec.Code)
	}

	adminToken := login(t, router, "admin", "0000")
	rec = request(t, router, http.MethodPut, "/api/admin/orders/"+id+"/status", adminToken, gin.H{"status": "PAID"})
	if rec.Code != http.StatusOK {
		t.Errorf("admin set-status: status = %d body %s", rec.Code, rec.Body.String())
	}

	rec = request(t, router, http.MethodGet, "/api/pos/orders/missing", waiter, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing order: status = %d, want 404", rec.Code)
	}
}

func TestRoleGates(t *testing.T) {
	router, _ := newTestRouter(t, 15*time.Minute)
	waiter := login(t, router, "s3", "2222")
	chef := login(t, router, "s2", "1111")
	manager := login(t, router, "s1", "1234")
	cart := gin.H{"tableId": "t-2", "items": []gin.H{{"itemId": pizzaID, "quantity": 1}}}

	rec := request(t, router, http.MethodPost, "/api/pos/orders", chef, cart)
	if rec.Code != http.StatusForbidden {
		t.Errorf("chef checkout: status = %d, want 403", rec.Code)
	}
	if msg := decode(t, rec)["message"]; msg != "Access denied. Insufficient permissions." {
		t.Errorf("message = %q", msg)
	}

	rec = request(t, router, http.MethodPost, "/api/pos/orders", waiter, cart)
	if rec.Code != http.StatusCreated {
		t.Fatalf("waiter checkout: status %d body %s", rec.Code, rec.Body.String())
	}
	id := decode(t, rec)["order"].(map[string]any)["id"].(string)

	rec = request(t, router, http.MethodGet, "/api/pos/kitchen", waiter, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("waiter kitchen queue: status = %d, want 403", rec.Code)
	}
	rec = request(t, router, http.MethodPost, "/api/pos/orders/"+id+"/advance", waiter, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("waiter advance: status = %d, want 403", rec.Code)
	}
	rec = request(t, router, http.MethodPost, "/api/pos/orders/"+id+"/advance", manager, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("manager advance: status = %d, want 200", rec.Code)
	}

	customer := gin.H{"name": "Kofi Boateng", "phone": "0244 000 111"}
	rec = request(t, router, http.MethodPost, "/api/pos/customers", waiter, customer)
	if rec.Code != http.StatusForbidden {
		t.Errorf("waiter create customer: status = %d, want 403", rec.Code)
	}
	rec = request(t, router, http.MethodGet, "/api/pos/customers", chef, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("chef list customers: status = %d, want 403", rec.Code)
	}
	rec = request(t, router, http.MethodPost, "/api/pos/customers", manager, customer)
	if rec.Code != http.StatusCreated {
		t.Errorf("manager create customer: status = %d body %s", rec.Code, rec.Body.String())
	}

	// Floor pages stay open to every role.
	for _, token := range []string{waiter, chef} {
		if rec := request(t, router, http.MethodGet, "/api/pos/tables", token, nil); rec.Code != http.StatusOK {
			t.Errorf("tables: status = %d, want 200", rec.Code)
		}
		if rec := request(t, router, http.MethodGet, "/api/pos/orders", token, nil); rec.Code != http.StatusOK {
			t.Errorf("orders: status = %d, want 200", rec.Code)
		}
	}
}

func TestManagementRoutes(t *testing.T) {
	router, _ := newTestRouter(t, 15*time.Minute)
	waiter := login(t, router, "s3", "2222")
	manager := login(t, router, "s1", "1234")

	rec := request(t, router, http.MethodGet, "/api/admin/staff", waiter, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("waiter staff list: status = %d, want 403", rec.Code)
	}
	rec = request(t, router, http.MethodGet, "/api/admin/settings", waiter, nil)
	if rec.Code != http.StatusOK {
		t.Errorf("waiter settings read: status = %d, want 200", rec.Code)
	}

	rec = request(t, router, http.MethodGet, "/api/admin/menu?view=inventory", manager, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("inventory view: status %d", rec.Code)
	}
	items := decode(t, rec)["items"].([]any)
	if len(items) != 4 {
		t.Errorf("inventory items = %d, want 4", len(items))
	}
	if _, ok := items[0].(map[string]any)["lowStock"]; !ok {
		t.Error("inventory item has no lowStock flag")
	}
	rec = request(t, router, http.MethodGet, "/api/admin/menu?view=cellar", manager, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown view: status = %d, want 400", rec.Code)
	}

	rec = request(t, router, http.MethodPost, "/api/admin/staff", manager, gin.H{
		"id": "s9", "name": "Ama Mensah", "role": " chef ", "passcode": "4821",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create staff: status %d body %s", rec.Code, rec.Body.String())
	}
	created := decode(t, rec)
	if created["role"] != string(models.RoleChef) {
		t.Errorf("role = %v, want CHEF", created["role"])
	}
	if _, leaked := created["passcode"]; leaked {
		t.Error("passcode leaked in response")
	}
	login(t, router, "s9", "4821")

	rec = request(t, router, http.MethodGet, "/api/admin/reports/export/revenue?from=2024-05-01&to=2024-05-03", manager, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("export: status %d body %s", rec.Code, rec.Body.String())
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "revenue_report_2024-05-01_to_2024-05-03.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	want := "Date,Revenue,Orders\n2024-05-01,0,0\n2024-05-02,0,0\n2024-05-03,0,0\n"
	if rec.Body.String() != want {
		t.Errorf("csv = %q, want %q", rec.Body.String(), want)
	}

	rec = request(t, router, http.MethodGet, "/api/admin/reports/summary?from=2024-05-03&to=2024-05-01", manager, nil)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("reversed window: status = %d, want 400", rec.Code)
	}

	rec = request(t, router, http.MethodGet, "/api/admin/insights", manager, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("insights: status %d", rec.Code)
	}
	if got := decode(t, rec)["insights"]; got != services.InsightsFallback {
		t.Errorf("insights = %v", got)
	}

	rec = request(t, router, http.MethodPost, "/api/admin/system/reset", manager, nil)
	if rec.Code != http.StatusForbidden {
		t.Errorf("manager reset: status = %d, want 403", rec.Code)
	}
}

func TestSettingsUpdateRearmsIdleTimeout(t *testing.T) {
	router, app := newTestRouter(t, 15*time.Minute)
	manager := login(t, router, "s1", "1234")

	settings := app.State.Settings()
	settings.StandbyMinutes = 0
	rec := request(t, router, http.MethodPut, "/api/admin/settings", manager, settings)
	if rec.Code != http.StatusOK {
		t.Fatalf("update settings: status %d body %s", rec.Code, rec.Body.String())
	}
	if app.Idle.Timeout() != 0 {
		t.Errorf("idle timeout = %v, want 0", app.Idle.Timeout())
	}
}

func TestIdleSessionIsSignedOut(t *testing.T) {
	router, _ := newTestRouter(t, 50*time.Millisecond)
	waiter := login(t, router, "s3", "2222")

	rec := request(t, router, http.MethodPost, "/api/auth/activity", waiter, gin.H{"signal": "wave"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown signal: status = %d, want 400", rec.Code)
	}

	time.Sleep(200 * time.Millisecond)

	rec = request(t, router, http.MethodGet, "/api/auth/me", waiter, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("idle session: status = %d, want 401", rec.Code)
	}
	if msg := decode(t, rec)["message"]; msg != "Signed out due to inactivity." {
		t.Errorf("message = %q", msg)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	router, app := newTestRouter(t, 15*time.Minute)
	var revoked []models.RevokedSession
	app.Idle.OnRevoke(func(rev models.RevokedSession) { revoked = append(revoked, rev) })
	waiter := login(t, router, "s3", "2222")

	rec := request(t, router, http.MethodPost, "/api/auth/logout", waiter, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("logout: status %d", rec.Code)
	}
	rec = request(t, router, http.MethodGet, "/api/auth/me", waiter, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("after logout: status = %d, want 401", rec.Code)
	}
	if len(revoked) != 1 || revoked[0].StaffID != "s3" {
		t.Fatalf("revoked = %+v", revoked)
	}

	// Restart: a new tracker restored from the saved keys still rejects the token.
	app.Idle.Stop()
	app.Idle = session.NewIdleTracker(15 * time.Minute)
	app.Idle.Restore(revoked)
	t.Cleanup(app.Idle.Stop)
	rec = request(t, router, http.MethodGet, "/api/auth/me", waiter, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("after restart: status = %d, want 401", rec.Code)
	}
}

func TestUnknownRoute(t *testing.T) {
	router, _ := newTestRouter(t, 15*time.Minute)
	rec := request(t, router, http.MethodGet, "/api/nowhere", "", nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}
