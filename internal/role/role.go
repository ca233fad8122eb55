package role

import "time"

// Role is the reference-data role record. The seed set is fixed: User (1),
// Guest (2) and Admin (99).
type Role struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type Permission struct {
	ID          int64     `json:"id"`
	RoleID      int64     `json:"role_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type RepositoryAPI interface {
	GetAll() ([]*Role, error)
	GetByID(id int64) (*Role, error)
	GetPermissions(roleID int64) ([]*Permission, error)
}

type RolesResponse struct {
	Roles []*Role `json:"roles"`
}

type PermissionsResponse struct {
	Permissions []*Permission `json:"permissions"`
}
