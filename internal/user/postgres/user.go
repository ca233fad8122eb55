package postgres

import (
	"errors"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	apperrors "github.com/frahmantamala/user-management/internal"
	userDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/user"
	"github.com/frahmantamala/user-management/internal/user"
)

// Repository resolves users through GORM and the role-permission join
// through sqlx on the same underlying connection.
type Repository struct {
	db   *gorm.DB
	sqlx *sqlx.DB
}

func NewRepository(db *gorm.DB, sqlxDB *sqlx.DB) user.Repository {
	return &Repository{db: db, sqlx: sqlxDB}
}

func (r *Repository) GetByID(id int64) (*user.User, error) {
	var row userDatamodel.User
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}

	u := fromDataModel(&row)

	roleName, err := r.roleName(row.RoleID)
	if err != nil {
		return nil, err
	}
	u.RoleName = roleName

	return u, nil
}

func (r *Repository) List(limit, offset int) ([]*user.User, error) {
	var rows []userDatamodel.User
	err := r.db.Order("id ASC").Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}

	users := make([]*user.User, 0, len(rows))
	for i := range rows {
		u := fromDataModel(&rows[i])
		roleName, err := r.roleName(rows[i].RoleID)
		if err != nil {
			return nil, err
		}
		u.RoleName = roleName
		users = append(users, u)
	}
	return users, nil
}

func (r *Repository) GetRolePermissions(roleID int64) ([]string, error) {
	query := r.sqlx.Rebind("SELECT name FROM permissions WHERE role_id = ? ORDER BY name ASC")

	var names []string
	if err := r.sqlx.Select(&names, query, roleID); err != nil {
		return nil, err
	}
	return names, nil
}

func (r *Repository) roleName(roleID int64) (string, error) {
	var role userDatamodel.Role
	err := r.db.Where("id = ?", roleID).First(&role).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return role.Name, nil
}

func fromDataModel(row *userDatamodel.User) *user.User {
	return &user.User{
		ID:        row.ID,
		Username:  row.Username,
		Email:     row.Email,
		FullName:  row.FullName,
		IsActive:  row.IsActive,
		RoleID:    row.RoleID,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}
}
