package postgres

import (
	"errors"

	"gorm.io/gorm"

	userDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/user"
	"github.com/frahmantamala/user-management/internal/role"
)

type RoleRepository struct {
	db *gorm.DB
}

func NewRoleRepository(db *gorm.DB) role.RepositoryAPI {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) GetAll() ([]*role.Role, error) {
	var rows []userDatamodel.Role
	err := r.db.Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	roles := make([]*role.Role, 0, len(rows))
	for i := range rows {
		roles = append(roles, roleFromDataModel(&rows[i]))
	}
	return roles, nil
}

func (r *RoleRepository) GetByID(id int64) (*role.Role, error) {
	var row userDatamodel.Role
	err := r.db.Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return roleFromDataModel(&row), nil
}

func (r *RoleRepository) GetPermissions(roleID int64) ([]*role.Permission, error) {
	var rows []userDatamodel.Permission
	err := r.db.Where("role_id = ?", roleID).Order("name ASC").Find(&rows).Error
	if err != nil {
		return nil, err
	}

	perms := make([]*role.Permission, 0, len(rows))
	for i := range rows {
		perms = append(perms, &role.Permission{
			ID:          rows[i].ID,
			RoleID:      rows[i].RoleID,
			Name:        rows[i].Name,
			Description: rows[i].Description,
			CreatedAt:   rows[i].CreatedAt,
		})
	}
	return perms, nil
}

func roleFromDataModel(row *userDatamodel.Role) *role.Role {
	return &role.Role{
		ID:          row.ID,
		Name:        row.Name,
		Description: row.Description,
		CreatedAt:   row.CreatedAt,
	}
}
