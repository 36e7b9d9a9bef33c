package auth

import "github.com/tasklists/tasks-api/internal/models"

// User is the authenticated caller, threaded as an explicit parameter into
// every service call. It is never ambient state.
type User struct {
	ID       uint64
	Username string
	Email    string
	Roles    models.RoleList
}

// IsSuperAdmin reports whether the caller holds the privileged role.
func (u User) IsSuperAdmin() bool {
	return u.Roles.Contains(models.RoleSuperAdmin)
}
