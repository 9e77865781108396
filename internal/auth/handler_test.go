package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopvima/shopvima/internal/auth"
	"github.com/shopvima/shopvima/internal/auth/password"
	"github.com/shopvima/shopvima/internal/observability"
	"github.com/shopvima/shopvima/internal/rbac"
	"github.com/shopvima/shopvima/internal/shared"
	_ "github.com/shopvima/shopvima/testing"
)

type stubRepo struct {
	account *auth.Account
}

func (s *stubRepo) FindByEmail(_ context.Context, email string) (*auth.Account, error) {
	if s.account == nil || s.account.Email != email {
		return nil, shared.ErrNotFound
	}
	clone := *s.account
	return &clone, nil
}

func (s *stubRepo) UpdatePasswordHash(context.Context, uuid.UUID, string) error { return nil }

func (s *stubRepo) CreateSession(context.Context, string, uuid.UUID, time.Time, string, string) error {
	return nil
}

func (s *stubRepo) DeleteSession(context.Context, string) error { return nil }

func (s *stubRepo) DeleteExpiredSessions(context.Context) (int64, error) { return 0, nil }

type stubAccessStore struct {
	access map[uuid.UUID]*rbac.PrincipalAccess
}

func (s *stubAccessStore) FindPrincipalAccess(_ context.Context, id uuid.UUID) (*rbac.PrincipalAccess, error) {
	access, ok := s.access[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return access, nil
}

func (s *stubAccessStore) ListPermissionNames(context.Context) ([]string, error) {
	return []string{"products.view"}, nil
}

func newHandler(t *testing.T, repo auth.Repository, store rbac.AccessStore) (*auth.Handler, *shared.SessionManager) {
	t.Helper()
	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessionManager := shared.NewSessionManager(redisClient, "test_session", time.Hour, false)
	csrfManager := shared.NewCSRFManager("csrfsecret")
	handler := auth.NewHandler(nil, auth.NewService(repo, nil), rbac.NewResolver(store), sessionManager, csrfManager, observability.NewMetrics())
	return handler, sessionManager
}

func doLogin(t *testing.T, handler *auth.Handler, sessionManager *shared.SessionManager, body string) (*httptest.ResponseRecorder, *shared.Session) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	sess, err := sessionManager.Load(context.Background(), req)
	require.NoError(t, err)
	ctx := shared.ContextWithSession(req.Context(), sess)
	req = req.WithContext(ctx)

	res := httptest.NewRecorder()
	router := newTestRouter(handler)
	router.ServeHTTP(res, req)
	require.NoError(t, sessionManager.Commit(ctx, res, req, sess))
	return res, sess
}

func newTestRouter(handler *auth.Handler) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/auth", handler.MountRoutes)
	return r
}

func TestLoginSuccess(t *testing.T) {
	account := &auth.Account{
		ID:           uuid.New(),
		Email:        "admin@shopvima.test",
		PasswordHash: password.Hash("s3cret-pass"),
		IsActive:     true,
	}
	handler, sessionManager := newHandler(t, &stubRepo{account: account}, &stubAccessStore{})

	res, sess := doLogin(t, handler, sessionManager, `{"email":"admin@shopvima.test","password":"s3cret-pass"}`)

	require.Equal(t, http.StatusOK, res.Code)

	var body struct {
		PrincipalID uuid.UUID `json:"principal_id"`
		CSRFToken   string    `json:"csrf_token"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, account.ID, body.PrincipalID)
	assert.NotEmpty(t, body.CSRFToken)
	assert.Equal(t, account.ID, sess.Principal())
}

func TestLoginInvalidCredentials(t *testing.T) {
	account := &auth.Account{
		ID:           uuid.New(),
		Email:        "admin@shopvima.test",
		PasswordHash: password.Hash("s3cret-pass"),
		IsActive:     true,
	}
	handler, sessionManager := newHandler(t, &stubRepo{account: account}, &stubAccessStore{})

	res, sess := doLogin(t, handler, sessionManager, `{"email":"admin@shopvima.test","password":"wrong"}`)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, uuid.Nil, sess.Principal())
}

func TestLoginRejectsMalformedBody(t *testing.T) {
	handler, sessionManager := newHandler(t, &stubRepo{}, &stubAccessStore{})

	res, _ := doLogin(t, handler, sessionManager, `{"email":"not-an-email"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}
