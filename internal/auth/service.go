package auth

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	errors "github.com/frahmantamala/user-management/internal"
	userDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/user"
)

// Service is the main auth service with dependencies
type Service struct {
	repo       Repository
	issuer     TokenIssuer
	bcryptCost int
}

// NewService creates a new auth service
func NewService(repo Repository, issuer TokenIssuer, bcryptCost int) *Service {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repo:       repo,
		issuer:     issuer,
		bcryptCost: bcryptCost,
	}
}

// Register creates a new account with the Guest role. Duplicate usernames or
// emails are rejected before hashing.
func (s *Service) Register(dto RegisterDTO) (*RegisteredUser, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.ExistsByUsernameOrEmail(dto.Username, dto.Email)
	if err != nil {
		return nil, errors.NewInternalError("failed to check existing users", err)
	}
	if exists {
		return nil, errors.ErrUserExists
	}

	hash, err := HashPassword(dto.Password, s.bcryptCost)
	if err != nil {
		return nil, errors.NewInternalError("failed to hash password", err)
	}

	u := &userDatamodel.User{
		Username:     dto.Username,
		Email:        dto.Email,
		PasswordHash: hash,
		FullName:     dto.FullName,
		IsActive:     true,
		RoleID:       userDatamodel.RoleIDGuest,
		CreatedAt:    time.Now(),
	}

	if err := s.repo.Create(u); err != nil {
		return nil, errors.NewInternalError("failed to create user", err)
	}

	return &RegisteredUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
	}, nil
}

// Login verifies credentials and issues a signed token. The identifier is
// treated as an email when it contains '@', as a username otherwise.
func (s *Service) Login(dto LoginDTO) (*LoginResult, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	var (
		u   *userDatamodel.User
		err error
	)
	if strings.Contains(dto.UsernameOrEmail, "@") {
		u, err = s.repo.FindByEmail(dto.UsernameOrEmail)
	} else {
		u, err = s.repo.FindByUsername(dto.UsernameOrEmail)
	}
	if err != nil || u == nil {
		return nil, errors.ErrInvalidCredentials
	}

	if !u.IsActive {
		return nil, errors.ErrUserInactive
	}

	if err := VerifyPassword(u.PasswordHash, dto.Password); err != nil {
		return nil, errors.ErrInvalidCredentials
	}

	token, err := s.issuer.IssueToken(u.ID, u.Username)
	if err != nil {
		return nil, errors.NewInternalError("failed to issue token", err)
	}

	return &LoginResult{
		Token:    token,
		Username: u.Username,
		Email:    u.Email,
	}, nil
}
