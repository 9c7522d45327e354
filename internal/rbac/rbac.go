// Package rbac holds the static role hierarchy and the resource
// permission table. Everything here is a pure lookup; authorization
// state lives in the profiles table and is re-read per request.
package rbac

// Role is a staff role. Roles form a total order: owner > admin > officer.
type Role string

const (
	RoleOwner   Role = "owner"
	RoleAdmin   Role = "admin"
	RoleOfficer Role = "officer"
)

var roleRanks = map[Role]int{
	RoleOwner:   3,
	RoleAdmin:   2,
	RoleOfficer: 1,
}

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	_, ok := roleRanks[r]
	return ok
}

func (r Role) rank() int {
	return roleRanks[r] // unknown roles rank 0, below every real role
}

// HasPermission reports whether userRole meets or exceeds requiredRole.
func HasPermission(userRole, requiredRole Role) bool {
	if !userRole.Valid() || !requiredRole.Valid() {
		return false
	}
	return userRole.rank() >= requiredRole.rank()
}

// CanManageRole reports whether userRole may mutate an account holding
// targetRole. Strict: a role never manages an equal or higher role,
// itself included.
func CanManageRole(userRole, targetRole Role) bool {
	if !userRole.Valid() || !targetRole.Valid() {
		return false
	}
	return userRole.rank() > targetRole.rank()
}

// CanInviteRole reports whether userRole may create an invitation for
// roleToInvite. The owner role is never grantable by invitation.
func CanInviteRole(userRole, roleToInvite Role) bool {
	switch userRole {
	case RoleOwner:
		return roleToInvite == RoleAdmin || roleToInvite == RoleOfficer
	case RoleAdmin:
		return roleToInvite == RoleOfficer
	default:
		return false
	}
}

// Resource is a protected resource category.
type Resource string

const (
	ResourceClasses   Resource = "classes"
	ResourceEvents    Resource = "events"
	ResourceTeam      Resource = "team"
	ResourceUsers     Resource = "users"
	ResourceHSK       Resource = "hsk"
	ResourceInquiries Resource = "inquiries"
	ResourceAuditLogs Resource = "auditLogs"
)

// Action is an operation on a resource.
type Action string

const (
	ActionView   Action = "view"
	ActionCreate Action = "create"
	ActionEdit   Action = "edit"
	ActionDelete Action = "delete"
)

type roleSet map[Role]struct{}

func roles(rs ...Role) roleSet {
	set := make(roleSet, len(rs))
	for _, r := range rs {
		set[r] = struct{}{}
	}
	return set
}

var allStaff = roles(RoleOwner, RoleAdmin, RoleOfficer)
var adminUp = roles(RoleOwner, RoleAdmin)
var ownerOnly = roles(RoleOwner)

// permissions maps resource and action to the roles allowed. Absent
// entries deny; the table is the single source of truth for
// resource-scoped checks.
var permissions = map[Resource]map[Action]roleSet{
	ResourceClasses: {
		ActionView:   allStaff,
		ActionCreate: adminUp,
		ActionEdit:   adminUp,
		ActionDelete: adminUp,
	},
	ResourceEvents: {
		ActionView:   allStaff,
		ActionCreate: allStaff,
		ActionEdit:   allStaff,
		ActionDelete: adminUp,
	},
	ResourceTeam: {
		ActionView:   allStaff,
		ActionCreate: adminUp,
		ActionEdit:   adminUp,
		ActionDelete: adminUp,
	},
	ResourceUsers: {
		ActionView:   adminUp,
		ActionCreate: adminUp,
		ActionEdit:   adminUp,
		ActionDelete: ownerOnly,
	},
	ResourceHSK: {
		ActionView:   allStaff,
		ActionCreate: adminUp,
		ActionEdit:   allStaff,
		ActionDelete: adminUp,
	},
	ResourceInquiries: {
		ActionView:   allStaff,
		ActionEdit:   allStaff,
		ActionDelete: adminUp,
	},
	ResourceAuditLogs: {
		ActionView: adminUp,
	},
}

// HasResourcePermission reports whether role may perform action on
// resource. Unknown resources or actions deny.
func HasResourcePermission(role Role, resource Resource, action Action) bool {
	actions, ok := permissions[resource]
	if !ok {
		return false
	}
	allowed, ok := actions[action]
	if !ok {
		return false
	}
	_, ok = allowed[role]
	return ok
}
