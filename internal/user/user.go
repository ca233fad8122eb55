package user

import (
	"context"
	"time"
)

// User is the internal user model with its role and the role's permissions
// resolved. The password hash never leaves the data layer serialized.
type User struct {
	ID          int64      `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	FullName    string     `json:"full_name"`
	IsActive    bool       `json:"is_active"`
	RoleID      int64      `json:"role_id"`
	RoleName    string     `json:"role_name"`
	Permissions []string   `json:"permissions,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func (u *User) HasPermission(permission string) bool {
	for _, p := range u.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

func (u *User) HasAnyPermission(permissions []string) bool {
	for _, userPerm := range u.Permissions {
		for _, requiredPerm := range permissions {
			if userPerm == requiredPerm {
				return true
			}
		}
	}
	return false
}

func (u *User) IsAdmin() bool {
	return u.RoleName == "Admin"
}

// Repository is the data access the user service needs. Role and permission
// relations are resolved through explicit lookups, not navigation graphs.
type Repository interface {
	GetByID(id int64) (*User, error)
	List(limit, offset int) ([]*User, error)
	GetRolePermissions(roleID int64) ([]string, error)
}

type ctxKey string

const contextUserKey ctxKey = "user"

// UserFromContext returns the fully loaded user a permission middleware
// attached, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	u, ok := ctx.Value(contextUserKey).(*User)
	return u, ok
}

func ContextWithUser(ctx context.Context, u *User) context.Context {
	return context.WithValue(ctx, contextUserKey, u)
}
