package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/puentehua/centro-admin/internal/api/middleware"
	"github.com/puentehua/centro-admin/internal/rbac"
	"github.com/puentehua/centro-admin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func guardTestRouter(tc *testutil.TestSetup) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.Auth(tc.JWTService))

	ok := func(w http.ResponseWriter, r *http.Request) {
		profile := middleware.GetProfile(r.Context())
		if profile == nil {
			http.Error(w, "missing profile", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(tc.DB, rbac.RoleOwner, rbac.RoleAdmin))
		r.Get("/admin-up", ok)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequirePermission(tc.DB, rbac.ResourceUsers, rbac.ActionDelete))
		r.Get("/owner-only", ok)
	})

	return r
}

func TestRequireRole(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	router := guardTestRouter(tc)

	tests := []struct {
		name       string
		token      string
		wantStatus int
	}{
		{"owner allowed", tc.OwnerToken, http.StatusOK},
		{"admin allowed", tc.AdminToken, http.StatusOK},
		{"officer forbidden", tc.OfficerTok, http.StatusForbidden},
		{"no token unauthorized", "", http.StatusUnauthorized},
		{"garbage token unauthorized", "not.a.jwt", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := testutil.AuthenticatedRequest(t, "GET", "/admin-up", nil, tt.token)
			rr := httptest.NewRecorder()
			router.ServeHTTP(rr, req)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestRequirePermission(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	router := guardTestRouter(tc)

	req := testutil.AuthenticatedRequest(t, "GET", "/owner-only", nil, tc.OwnerToken)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusOK, rr.Code)

	req = testutil.AuthenticatedRequest(t, "GET", "/owner-only", nil, tc.AdminToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}

// A role change or deactivation must bite on the very next request,
// even though the session token is still valid.
func TestGuardRereadsProfile(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	router := guardTestRouter(tc)

	req := testutil.AuthenticatedRequest(t, "GET", "/admin-up", nil, tc.AdminToken)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)

	// Demote the admin; same token, next request must be forbidden.
	require.NoError(t, tc.DB.Model(tc.Admin).Update("role", "officer").Error)

	req = testutil.AuthenticatedRequest(t, "GET", "/admin-up", nil, tc.AdminToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	// Deactivate the owner entirely.
	require.NoError(t, tc.DB.Model(tc.Owner).Update("is_active", false).Error)

	req = testutil.AuthenticatedRequest(t, "GET", "/admin-up", nil, tc.OwnerToken)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
}
