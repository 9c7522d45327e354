package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/puentehua/centro-admin/internal/database/models"
	"github.com/puentehua/centro-admin/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListUsersEndpoint(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	router := newTestRouter(t, tc)

	t.Run("admin sees the roster", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/v1/users", nil, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			Data  []models.Profile `json:"data"`
			Total int64            `json:"total"`
		}
		testutil.ParseJSONResponse(t, rr, &resp)
		assert.EqualValues(t, 3, resp.Total)

		// password hashes never serialize
		assert.NotContains(t, rr.Body.String(), "password")
	})

	t.Run("officer cannot see the roster", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "GET", "/api/v1/users", nil, tc.OfficerTok)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("no session means no roster", func(t *testing.T) {
		req := testutil.UnauthenticatedRequest(t, "GET", "/api/v1/users", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestUpdateUserEndpoint(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	router := newTestRouter(t, tc)

	t.Run("owner demotes an admin", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/v1/users/"+tc.Admin.ID.String(), map[string]string{
			"role": "officer",
		}, tc.OwnerToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var stored models.Profile
		require.NoError(t, tc.DB.First(&stored, "id = ?", tc.Admin.ID).Error)
		assert.Equal(t, "officer", stored.Role)

		// the demotion is audited
		var entry models.AuditLogEntry
		err := tc.DB.Where("table_name = ? AND record_id = ?", "profiles", tc.Admin.ID.String()).First(&entry).Error
		require.NoError(t, err)
		assert.Equal(t, tc.Owner.ID, entry.UserID)

		// restore for the remaining subtests
		require.NoError(t, tc.DB.Model(&stored).Update("role", "admin").Error)
	})

	t.Run("changing your own role is a business-rule violation", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/v1/users/"+tc.Owner.ID.String(), map[string]string{
			"role": "admin",
		}, tc.OwnerToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("admin cannot manage a peer admin", func(t *testing.T) {
		peer := testutil.CreateTestProfile(t, tc.DB, "admin")

		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/v1/users/"+peer.ID.String(), map[string]string{
			"role": "officer",
		}, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("admin deactivates an officer", func(t *testing.T) {
		inactive := false
		req := testutil.AuthenticatedRequest(t, "PATCH", "/api/v1/users/"+tc.Officer.ID.String(), map[string]interface{}{
			"is_active": inactive,
		}, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		// the deactivated officer's still-valid token is now useless
		probe := testutil.AuthenticatedRequest(t, "GET", "/api/v1/auth/me", nil, tc.OfficerTok)
		probeRR := httptest.NewRecorder()
		router.ServeHTTP(probeRR, probe)
		assert.Equal(t, http.StatusForbidden, probeRR.Code)
	})
}

func TestDeleteUserEndpoint(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	router := newTestRouter(t, tc)

	t.Run("admin cannot delete at all", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/v1/users/"+tc.Officer.ID.String(), nil, tc.AdminToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("owner cannot delete their own account", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/v1/users/"+tc.Owner.ID.String(), nil, tc.OwnerToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("owner deletes an officer", func(t *testing.T) {
		req := testutil.AuthenticatedRequest(t, "DELETE", "/api/v1/users/"+tc.Officer.ID.String(), nil, tc.OwnerToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

		var count int64
		tc.DB.Model(&models.Profile{}).Where("id = ?", tc.Officer.ID).Count(&count)
		assert.Zero(t, count)

		var entry models.AuditLogEntry
		err := tc.DB.Where("table_name = ? AND action = ?", "profiles", "DELETE").First(&entry).Error
		assert.NoError(t, err)
	})
}

func TestUpdateSelfEndpoint(t *testing.T) {
	tc := testutil.NewTestContext(t)
	defer tc.Cleanup()
	router := newTestRouter(t, tc)

	req := testutil.AuthenticatedRequest(t, "PUT", "/api/v1/auth/me", map[string]string{
		"full_name": "  Renamed <b>Officer</b>  ",
	}, tc.OfficerTok)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	var stored models.Profile
	require.NoError(t, tc.DB.First(&stored, "id = ?", tc.Officer.ID).Error)
	assert.Equal(t, "Renamed Officer", stored.FullName)

	// role cannot ride along through the self-edit surface
	req = testutil.AuthenticatedRequest(t, "PUT", "/api/v1/auth/me", map[string]string{
		"full_name": "Sneaky",
		"role":      "owner",
	}, tc.OfficerTok)
	rr = httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
