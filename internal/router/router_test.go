package router

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stayhub/hotel-booking-backend/internal/config"
	"github.com/stayhub/hotel-booking-backend/internal/handler"
	"github.com/stayhub/hotel-booking-backend/internal/middleware"
	"github.com/stayhub/hotel-booking-backend/internal/model"
	"github.com/stayhub/hotel-booking-backend/internal/repository/memory"
	"github.com/stayhub/hotel-booking-backend/internal/service"
	"github.com/stayhub/hotel-booking-backend/internal/validator"
	ws "github.com/stayhub/hotel-booking-backend/internal/websocket"
)

type denylist struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func (d *denylist) Revoke(_ context.Context, jti string, _ time.Duration) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[jti] = true
	return nil
}

func (d *denylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.revoked[jti], nil
}

type counter struct {
	mu   sync.Mutex
	hits int64
}

func (c *counter) Hit(context.Context, string, string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits++
	return c.hits, nil
}

// fanout is an in-process event bus shared by the services and the stream.
type fanout struct {
	mu   sync.Mutex
	subs []chan model.RolePermissionEvent
}

func (f *fanout) Publish(_ context.Context, event model.RolePermissionEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, ch := range f.subs {
		select {
		case ch <- event:
		default:
		}
	}
	return nil
}

func (f *fanout) Events(context.Context) (<-chan model.RolePermissionEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	ch := make(chan model.RolePermissionEvent, 8)
	f.subs = append(f.subs, ch)
	return ch, nil
}

type testServer struct {
	engine     *gin.Engine
	store      *memory.Store
	auth       *service.AuthService
	admin      model.Role
	supervisor model.Role
	guest      model.Role
	read       model.Permission
	write      model.Permission
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	validator.Setup()

	cfg := &config.Config{
		GinMode:             gin.TestMode,
		JWTSecret:           "router-secret",
		JWTExpiry:           time.Hour,
		BcryptCost:          4,
		RateLimitPerMinute:  3,
		CompressionMinBytes: 1 << 20,
		ReferenceCacheTTL:   5 * time.Minute,
	}
	log := zerolog.Nop()
	store := memory.New()
	bus := &fanout{}

	auth := service.NewAuthService(cfg, store.Users(), &denylist{revoked: map[string]bool{}})
	rolePermissions := service.NewRolePermissionService(store.Roles(), store.Permissions(), store.RolePermissions(), bus, log)
	permissions := service.NewPermissionService(store.Permissions(), store.RolePermissions(), bus, log)

	handlers := &Handlers{
		Auth:           handler.NewAuthHandler(auth, rolePermissions, log),
		Role:           handler.NewRoleHandler(service.NewRoleService(store.Roles()), log),
		Permission:     handler.NewPermissionHandler(permissions, log),
		RolePermission: handler.NewRolePermissionHandler(rolePermissions, log),
		Country:        handler.NewCountryHandler(service.NewCountryService(store.Countries()), log),
		Currency:       handler.NewCurrencyHandler(service.NewCurrencyService(store.Currencies()), log),
		WS:             handler.NewWSHandler(bus, rolePermissions, log, nil),
		Health:         handler.NewHealthHandler(map[string]handler.HealthCheck{}, log),
	}
	limiter := middleware.NewRateLimiter(&counter{}, "login", cfg.RateLimitPerMinute, log)

	return &testServer{
		engine:     SetupRouter(auth, limiter, handlers, cfg, log),
		store:      store,
		auth:       auth,
		admin:      store.AddRole(model.RoleAdmin),
		supervisor: store.AddRole(model.RoleSupervisor),
		guest:      store.AddRole(model.RoleGuest),
		read:       store.AddPermission(model.PermissionBookingsRead),
		write:      store.AddPermission(model.PermissionBookingsWrite),
	}
}

func (s *testServer) token(t *testing.T, role string) string {
	t.Helper()
	token, _, err := s.auth.GenerateToken(1, role)
	require.NoError(t, err)
	return token
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Fields  map[string]string `json:"fields"`
	} `json:"error"`
}

func (s *testServer) do(t *testing.T, method, target, token, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func apiPath(format string, args ...any) string {
	return "/api/v1" + fmt.Sprintf(format, args...)
}

func TestRolePermissionRoutesRequireStaffRole(t *testing.T) {
	s := newTestServer(t)

	w, env := s.do(t, http.MethodGet, "/api/v1/role-permissions", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REQUIRED", env.Error.Code)

	w, _ = s.do(t, http.MethodGet, "/api/v1/role-permissions", s.token(t, model.RoleGuest), "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	for _, role := range []string{model.RoleAdmin, model.RoleSupervisor} {
		w, _ = s.do(t, http.MethodGet, "/api/v1/role-permissions/matrix", s.token(t, role), "")
		assert.Equal(t, http.StatusOK, w.Code, role)
	}
}

func TestInvalidIDsRejectedBeforeService(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, model.RoleAdmin)

	for _, p := range []string{
		"/api/v1/role-permissions/role/abc",
		"/api/v1/role-permissions/role/0",
		"/api/v1/role-permissions/role/9999999999",
		"/api/v1/permissions/2147483648",
	} {
		w, env := s.do(t, http.MethodGet, p, token, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, p)
		assert.Equal(t, "INVALID_ID", env.Error.Code, p)
	}

	w, env := s.do(t, http.MethodPost, apiPath("/role-permissions/role/%d/permission/x", s.admin.ID), token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_ID", env.Error.Code)

	w, env = s.do(t, http.MethodPost, apiPath("/role-permissions/role/%d/permissions", s.admin.ID), token,
		`{"permission_ids":[9999999999]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestAssignAndRemoveSinglePermission(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, model.RoleSupervisor)
	assign := apiPath("/role-permissions/role/%d/permission/%d", s.guest.ID, s.read.ID)

	w, env := s.do(t, http.MethodPost, assign, token, "")
	require.Equal(t, http.StatusCreated, w.Code)
	var grant model.RolePermission
	require.NoError(t, json.Unmarshal(env.Data, &grant))
	require.NotNil(t, grant.Permission)
	assert.Equal(t, s.read.Name, grant.Permission.Name)
	assert.Equal(t, model.RoleGuest, grant.Role.Name)

	w, env = s.do(t, http.MethodPost, assign, token, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	w, _ = s.do(t, http.MethodDelete, assign, token, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodDelete, assign, token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, env.Error.Message, "not assigned")

	w, _ = s.do(t, http.MethodPost, apiPath("/role-permissions/role/%d/permission/%d", 999, s.read.ID), token, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAssignMultiplePermissions(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, model.RoleAdmin)
	bulk := apiPath("/role-permissions/role/%d/permissions", s.guest.ID)

	w, env := s.do(t, http.MethodPost, bulk, token, `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Fields, "permission_ids")

	w, _ = s.do(t, http.MethodPost, bulk, token, `{"permissionIds":[1]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env = s.do(t, http.MethodPost, bulk, token, fmt.Sprintf(`{"permission_ids":[%d,999]}`, s.read.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error.Message, "one or more permissions not found")
	assert.Zero(t, s.store.GrantCount())

	s.store.Grant(s.guest.ID, s.read.ID)
	w, env = s.do(t, http.MethodPost, bulk, token, fmt.Sprintf(`{"permission_ids":[%d,%d]}`, s.read.ID, s.write.ID))
	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"count":1}`, string(env.Data))

	w, env = s.do(t, http.MethodPost, bulk, token, fmt.Sprintf(`{"permission_ids":[%d]}`, s.read.ID))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	w, env = s.do(t, http.MethodDelete, bulk, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":2}`, string(env.Data))

	w, env = s.do(t, http.MethodDelete, bulk, token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"count":0}`, string(env.Data))
}

func TestMatrixMatchesRolePermissions(t *testing.T) {
	s := newTestServer(t)
	token := s.token(t, model.RoleAdmin)
	s.store.Grant(s.admin.ID, s.read.ID)
	s.store.Grant(s.admin.ID, s.write.ID)

	w, env := s.do(t, http.MethodGet, "/api/v1/role-permissions", token, "")
	require.Equal(t, http.StatusOK, w.Code)
	var matrix model.RolePermissionMatrix
	require.NoError(t, json.Unmarshal(env.Data, &matrix))

	require.Len(t, matrix.Roles, 3)
	assert.Equal(t, []string{model.RoleAdmin, model.RoleGuest, model.RoleSupervisor},
		[]string{matrix.Roles[0].Role.Name, matrix.Roles[1].Role.Name, matrix.Roles[2].Role.Name})
	assert.ElementsMatch(t, []int{s.read.ID, s.write.ID}, matrix.Roles[0].PermissionIDs)
	assert.Empty(t, matrix.Roles[1].PermissionIDs)
	require.Len(t, matrix.Permissions, 2)
}

func TestPermissionDirectoryRoutes(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, model.RoleAdmin)
	supervisor := s.token(t, model.RoleSupervisor)

	w, _ := s.do(t, http.MethodPost, "/api/v1/permissions", supervisor, `{"name":"rooms:read"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env := s.do(t, http.MethodPost, "/api/v1/permissions", admin, `{"name":"rooms:read","description":"View rooms"}`)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		Permission model.Permission `json:"permission"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))

	w, env = s.do(t, http.MethodPost, "/api/v1/permissions", admin, `{"name":"rooms:read"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "CONFLICT", env.Error.Code)

	s.store.Grant(s.admin.ID, s.read.ID)
	w, env = s.do(t, http.MethodDelete, apiPath("/permissions/%d", s.read.ID), admin, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error.Message, "in use")

	w, _ = s.do(t, http.MethodDelete, apiPath("/permissions/%d", created.Permission.ID), admin, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w, _ = s.do(t, http.MethodGet, apiPath("/permissions/%d", created.Permission.ID), supervisor, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReferenceDataIsPublicAndCached(t *testing.T) {
	s := newTestServer(t)
	admin := s.token(t, model.RoleAdmin)

	w, _ := s.do(t, http.MethodPost, "/api/v1/countries", "", `{"name":"Indonesia","code":"ID"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w, _ = s.do(t, http.MethodPost, "/api/v1/countries", admin, `{"name":"Indonesia","code":"ID"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	w, env := s.do(t, http.MethodPost, "/api/v1/currencies", admin, `{"name":"Rupiah","code":"IDRX"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, env.Error.Fields, "code")

	w, env = s.do(t, http.MethodGet, "/api/v1/countries", "", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "public, max-age=300", w.Header().Get("Cache-Control"))
	assert.Contains(t, string(env.Data), `"code":"ID"`)
}

func TestLoginLogoutFlow(t *testing.T) {
	s := newTestServer(t)
	s.store.Grant(s.supervisor.ID, s.read.ID)
	_, err := s.auth.CreateUser(context.Background(), "Night Manager", "night@stayhub.io", "secret123", s.supervisor.ID)
	require.NoError(t, err)

	w, env := s.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"night@stayhub.io","password":"wrong-pass"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)

	w, env = s.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"night@stayhub.io","password":"secret123"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var login model.LoginResponse
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	w, env = s.do(t, http.MethodGet, "/api/v1/auth/me", login.Token, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), model.PermissionBookingsRead)
	assert.NotContains(t, string(env.Data), "password")

	w, _ = s.do(t, http.MethodPost, "/api/v1/auth/logout", login.Token, "")
	require.Equal(t, http.StatusOK, w.Code)

	w, env = s.do(t, http.MethodGet, "/api/v1/auth/me", login.Token, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "TOKEN_REVOKED", env.Error.Code)
}

func TestLoginIsRateLimited(t *testing.T) {
	s := newTestServer(t)
	body := `{"email":"nobody@stayhub.io","password":"secret123"}`

	for i := 0; i < 3; i++ {
		w, _ := s.do(t, http.MethodPost, "/api/v1/auth/login", "", body)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
	w, env := s.do(t, http.MethodPost, "/api/v1/auth/login", "", body)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMIT_EXCEEDED", env.Error.Code)
}

func TestRolePermissionStream(t *testing.T) {
	s := newTestServer(t)
	srv := httptest.NewServer(s.engine)
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/v1/role-permissions/stream?token=" + s.token(t, model.RoleAdmin)
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var snapshot ws.SnapshotResponse
	require.NoError(t, conn.ReadJSON(&snapshot))
	assert.Equal(t, ws.EventSnapshot, snapshot.Event)
	assert.Len(t, snapshot.Matrix.Roles, 3)

	require.NoError(t, conn.WriteJSON(ws.RequestEnvelope{Action: ws.ActionPing}))
	var pong ws.PongResponse
	require.NoError(t, conn.ReadJSON(&pong))
	assert.Equal(t, ws.EventPong, pong.Event)

	w, _ := s.do(t, http.MethodPost, apiPath("/role-permissions/role/%d/permission/%d", s.guest.ID, s.write.ID), s.token(t, model.RoleAdmin), "")
	require.Equal(t, http.StatusCreated, w.Code)

	var changed ws.ChangedResponse
	require.NoError(t, conn.ReadJSON(&changed))
	assert.Equal(t, ws.EventChanged, changed.Event)
	assert.Equal(t, model.EventPermissionAssigned, changed.Change.Type)
	assert.Equal(t, s.guest.ID, changed.Change.RoleID)
}
