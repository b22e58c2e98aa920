package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/brightlaunch/academy-cms-backend/internal/auth"
	"github.com/brightlaunch/academy-cms-backend/internal/editor"
	"github.com/brightlaunch/academy-cms-backend/internal/media"
	pkgAuth "github.com/brightlaunch/academy-cms-backend/pkg/auth"
	"github.com/brightlaunch/academy-cms-backend/pkg/auth/session"
	"github.com/brightlaunch/academy-cms-backend/pkg/config"
	"github.com/brightlaunch/academy-cms-backend/pkg/db/models"
	"github.com/brightlaunch/academy-cms-backend/pkg/logger"
	"github.com/brightlaunch/academy-cms-backend/pkg/metrics"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type stubPinger struct{ err error }

func (s stubPinger) Ping(ctx context.Context) error { return s.err }

type stubSessionGate struct {
	hasSession bool
	editMode   bool
}

func (s *stubSessionGate) HasSession(ctx context.Context, accessID string) (bool, error) {
	return s.hasSession, nil
}

func (s *stubSessionGate) EditMode(ctx context.Context, accessID string) (bool, error) {
	return s.editMode, nil
}

type stubAuthService struct {
	loginCalls int
}

func (s *stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.loginCalls++
	return &auth.LoginResponse{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (s *stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	return &auth.RefreshResponse{AccessToken: "access2", RefreshToken: "refresh2"}, nil
}

func (s *stubAuthService) Logout(ctx context.Context, accessID string) error { return nil }

func (s *stubAuthService) Session(ctx context.Context, claims *pkgAuth.AccessTokenClaims) (*auth.SessionResponse, error) {
	return &auth.SessionResponse{EditMode: true}, nil
}

func (s *stubAuthService) SetEditMode(ctx context.Context, accessID string, enabled bool) (*auth.EditModeResponse, error) {
	return &auth.EditModeResponse{EditMode: enabled}, nil
}

type stubMediaService struct{}

func (stubMediaService) Upload(ctx context.Context, operatorID uuid.UUID, input media.UploadInput) (*media.UploadOutput, error) {
	return &media.UploadOutput{PublicID: "site-assets/x.png", URL: "https://cdn.test/site-assets/x.png", Format: "png", Bytes: int64(len(input.Data))}, nil
}

func (stubMediaService) Delete(ctx context.Context, publicID string) error { return nil }

func (stubMediaService) ResolveURL(publicID string) string {
	if publicID == "" {
		return ""
	}
	return "https://cdn.test/" + publicID
}

type testEnv struct {
	handler http.Handler
	db      *gorm.DB
	cfg     *config.Config
	gate    *stubSessionGate
	authSvc *stubAuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := "file:routes_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	ddl := `CREATE TABLE faqs (
		id TEXT PRIMARY KEY,
		order_index INTEGER NOT NULL DEFAULT 0,
		is_visible BOOLEAN NOT NULL DEFAULT TRUE,
		question TEXT NOT NULL,
		answer TEXT NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	)`
	if err := db.Exec(ddl).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	logg := logger.New(logger.Options{ServiceName: "routes-test"})
	registry, err := editor.NewRegistry(db, logg)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}

	cfg := &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "academy-cms", ExpirationMinutes: 60},
	}

	gate := &stubSessionGate{hasSession: true, editMode: true}
	authSvc := &stubAuthService{}
	promReg := prometheus.NewRegistry()

	handler := NewRouter(
		cfg,
		logg,
		stubPinger{}, stubPinger{},
		nil,
		gate,
		authSvc,
		registry,
		stubMediaService{},
		metrics.NewHTTPMetrics(promReg),
		promReg,
	)

	return &testEnv{handler: handler, db: db, cfg: cfg, gate: gate, authSvc: authSvc}
}

func (e *testEnv) seedFAQ(t *testing.T, order int, visible bool, question string) *models.FAQ {
	t.Helper()
	faq := &models.FAQ{Question: question, Answer: "answer"}
	faq.SetRecordID(uuid.New())
	faq.SetOrder(order)
	faq.IsVisible = visible
	faq.StampCreated(time.Now().UTC())
	if err := e.db.Create(faq).Error; err != nil {
		t.Fatalf("seed faq: %v", err)
	}
	return faq
}

func (e *testEnv) token(t *testing.T) string {
	t.Helper()
	payload := pkgAuth.AccessTokenPayload{
		OperatorID: uuid.New(),
		ProfileID:  uuid.New(),
		Email:      "admin@example.com",
		Role:       "admin",
		JTI:        session.NewAccessID(),
	}
	token, err := pkgAuth.MintAccessToken(e.cfg.JWT, time.Now(), payload)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func (e *testEnv) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)
	return rec
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) any {
	t.Helper()
	var envelope struct {
		Data any `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestHealthEndpoints(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/health/live", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("live: expected 200, got %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/health/ready", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", rec.Code)
	}
	data := decodeData(t, rec).(map[string]any)
	deps := data["dependencies"].(map[string]any)
	if deps["database"] != "ok" || deps["storage"] != "ok" {
		t.Fatalf("unexpected dependency statuses: %v", deps)
	}
	if deps["redis"] != "not configured" {
		t.Fatalf("redis should be unconfigured in tests, got %v", deps["redis"])
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestPublicContentListsOnlyVisible(t *testing.T) {
	env := newTestEnv(t)
	env.seedFAQ(t, 1, true, "shown")
	env.seedFAQ(t, 2, false, "hidden")

	rec := env.do(t, http.MethodGet, "/api/public/v1/content/faqs", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	items := decodeData(t, rec).([]any)
	if len(items) != 1 {
		t.Fatalf("expected 1 visible record, got %d", len(items))
	}
	if items[0].(map[string]any)["question"] != "shown" {
		t.Fatalf("unexpected record: %v", items[0])
	}
}

func TestPublicUnknownTypeIs404(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodGet, "/api/public/v1/content/blog_posts", "", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminContentRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/content/faqs", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	env.seedFAQ(t, 1, true, "shown")
	env.seedFAQ(t, 2, false, "hidden")
	rec = env.do(t, http.MethodGet, "/api/v1/content/faqs", env.token(t), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with token, got %d", rec.Code)
	}
	items := decodeData(t, rec).([]any)
	if len(items) != 2 {
		t.Fatalf("admin list should include hidden records, got %d", len(items))
	}
}

func TestMutationsGatedByEditMode(t *testing.T) {
	env := newTestEnv(t)
	env.gate.editMode = false

	rec := env.do(t, http.MethodPost, "/api/v1/content/faqs", env.token(t), `{"question":"q","answer":"a"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with edit mode off, got %d", rec.Code)
	}

	env.gate.editMode = true
	rec = env.do(t, http.MethodPost, "/api/v1/content/faqs", env.token(t), `{"question":"q","answer":"a"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201 with edit mode on, got %d: %s", rec.Code, rec.Body.String())
	}
	items := decodeData(t, rec).([]any)
	if len(items) != 1 {
		t.Fatalf("expected refreshed collection with 1 record, got %d", len(items))
	}
}

func TestReorderEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	questions := []string{"one", "two", "three", "four", "five"}
	for i, q := range questions {
		env.seedFAQ(t, i+1, true, q)
	}

	rec := env.do(t, http.MethodPost, "/api/v1/content/faqs/reorder", env.token(t), `{"source_index":3,"target_slot":1}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	items := decodeData(t, rec).([]any)
	want := []string{"four", "one", "two", "three", "five"}
	for i, item := range items {
		row := item.(map[string]any)
		if row["question"] != want[i] {
			t.Fatalf("position %d: expected %q, got %v", i, want[i], row["question"])
		}
		if int(row["order"].(float64)) != i+1 {
			t.Fatalf("position %d: expected order %d, got %v", i, i+1, row["order"])
		}
	}
}

func TestRevokedSessionRejected(t *testing.T) {
	env := newTestEnv(t)
	env.gate.hasSession = false

	rec := env.do(t, http.MethodGet, "/api/v1/content/faqs", env.token(t), "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for revoked session, got %d", rec.Code)
	}
}

func TestLoginRouteWired(t *testing.T) {
	env := newTestEnv(t)
	rec := env.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"admin@example.com","password":"secret"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if env.authSvc.loginCalls != 1 {
		t.Fatalf("expected one login call, got %d", env.authSvc.loginCalls)
	}
}

func TestMediaRoutes(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/media/url/site-assets/x.png", env.token(t), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	data := decodeData(t, rec).(map[string]any)
	if data["url"] != "https://cdn.test/site-assets/x.png" {
		t.Fatalf("unexpected url %v", data["url"])
	}

	rec = env.do(t, http.MethodDelete, "/api/v1/media/site-assets/x.png", env.token(t), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	env.gate.editMode = false
	rec = env.do(t, http.MethodDelete, "/api/v1/media/site-assets/x.png", env.token(t), "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 with edit mode off, got %d", rec.Code)
	}
}
