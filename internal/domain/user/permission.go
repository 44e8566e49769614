package user

// Role is the actor role carried in the access token. Authentication itself is
// handled by the surrounding platform; this service only consumes the claims.
type Role string

const (
	// RoleManager administers the site zone and worker registry, and reviews
	// attendance requests.
	RoleManager Role = "manager"
	// RoleEngineer reviews attendance requests and records manual attendance.
	RoleEngineer Role = "engineer"
	// RoleWorker submits attendance requests.
	RoleWorker Role = "worker"
)

type Permission string

const (
	PermissionSubmitAttendance Permission = "attendance:submit"
	PermissionReviewAttendance Permission = "attendance:review"
	PermissionManageSite       Permission = "site:manage"
	PermissionManageWorkers    Permission = "workers:manage"
)

var rolePermissions = map[Role][]Permission{
	RoleManager: {
		PermissionSubmitAttendance,
		PermissionReviewAttendance,
		PermissionManageSite,
		PermissionManageWorkers,
	},
	RoleEngineer: {
		PermissionSubmitAttendance,
		PermissionReviewAttendance,
	},
	RoleWorker: {
		PermissionSubmitAttendance,
	},
}

// HasPermission checks whether a role grants a permission.
func HasPermission(role Role, permission Permission) bool {
	for _, p := range rolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}

// IsValid reports whether the role is one this service knows about.
func (r Role) IsValid() bool {
	_, ok := rolePermissions[r]
	return ok
}
