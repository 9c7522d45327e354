package rbac

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasPermission(t *testing.T) {
	ordered := []Role{RoleOfficer, RoleAdmin, RoleOwner}

	// rank(r1) >= rank(r2) exactly when r1 appears at or after r2
	for i, r1 := range ordered {
		for j, r2 := range ordered {
			assert.Equal(t, i >= j, HasPermission(r1, r2), "%s vs %s", r1, r2)
		}
	}

	assert.False(t, HasPermission(Role("superuser"), RoleOfficer))
	assert.False(t, HasPermission(RoleOwner, Role("")))
}

func TestCanManageRole(t *testing.T) {
	tests := []struct {
		user, target Role
		want         bool
	}{
		{RoleOwner, RoleAdmin, true},
		{RoleOwner, RoleOfficer, true},
		{RoleOwner, RoleOwner, false}, // strict: owner cannot manage owner
		{RoleAdmin, RoleOfficer, true},
		{RoleAdmin, RoleAdmin, false},
		{RoleAdmin, RoleOwner, false},
		{RoleOfficer, RoleOfficer, false},
		{RoleOfficer, RoleAdmin, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CanManageRole(tt.user, tt.target), "%s manage %s", tt.user, tt.target)
	}
}

func TestCanInviteRole(t *testing.T) {
	assert.True(t, CanInviteRole(RoleOwner, RoleAdmin))
	assert.True(t, CanInviteRole(RoleOwner, RoleOfficer))
	assert.True(t, CanInviteRole(RoleAdmin, RoleOfficer))

	assert.False(t, CanInviteRole(RoleAdmin, RoleAdmin))
	assert.False(t, CanInviteRole(RoleOfficer, RoleOfficer))
	assert.False(t, CanInviteRole(RoleOfficer, RoleAdmin))

	// owner role is never grantable by invitation
	assert.False(t, CanInviteRole(RoleOwner, RoleOwner))
	assert.False(t, CanInviteRole(RoleAdmin, RoleOwner))
}

func TestHasResourcePermission(t *testing.T) {
	tests := []struct {
		name     string
		role     Role
		resource Resource
		action   Action
		want     bool
	}{
		{"officer views classes", RoleOfficer, ResourceClasses, ActionView, true},
		{"officer cannot create classes", RoleOfficer, ResourceClasses, ActionCreate, false},
		{"admin creates classes", RoleAdmin, ResourceClasses, ActionCreate, true},
		{"officer creates events", RoleOfficer, ResourceEvents, ActionCreate, true},
		{"officer cannot delete events", RoleOfficer, ResourceEvents, ActionDelete, false},
		{"only owner deletes users", RoleAdmin, ResourceUsers, ActionDelete, false},
		{"owner deletes users", RoleOwner, ResourceUsers, ActionDelete, true},
		{"officer cannot view users", RoleOfficer, ResourceUsers, ActionView, false},
		{"officer cannot view audit logs", RoleOfficer, ResourceAuditLogs, ActionView, false},
		{"admin views audit logs", RoleAdmin, ResourceAuditLogs, ActionView, true},
		{"no create action on audit logs", RoleOwner, ResourceAuditLogs, ActionCreate, false},
		{"no create action on inquiries for staff", RoleOwner, ResourceInquiries, ActionCreate, false},
		{"unknown resource denies", RoleOwner, Resource("billing"), ActionView, false},
		{"unknown action denies", RoleOwner, ResourceClasses, Action("export"), false},
		{"unknown role denies", Role("ghost"), ResourceClasses, ActionView, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HasResourcePermission(tt.role, tt.resource, tt.action))
		})
	}
}
