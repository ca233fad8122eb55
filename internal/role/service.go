package role

import (
	"fmt"

	errors "github.com/frahmantamala/user-management/internal"
)

type Service struct {
	repo RepositoryAPI
}

func NewService(repo RepositoryAPI) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetAll() ([]*Role, error) {
	roles, err := s.repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return roles, nil
}

func (s *Service) GetByID(id int64) (*Role, error) {
	r, err := s.repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	if r == nil {
		return nil, errors.ErrRoleNotFound
	}
	return r, nil
}

func (s *Service) GetPermissions(roleID int64) ([]*Permission, error) {
	r, err := s.repo.GetByID(roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to get role: %w", err)
	}
	if r == nil {
		return nil, errors.ErrRoleNotFound
	}

	perms, err := s.repo.GetPermissions(roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	return perms, nil
}
