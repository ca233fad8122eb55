package auth

import (
	errors "github.com/frahmantamala/user-management/internal"
	"github.com/frahmantamala/user-management/internal/core/common/validation"
)

// RegisterDTO is the transport shape for registration requests.
type RegisterDTO struct {
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginDTO accepts either a username or an email in the identifier field.
type LoginDTO struct {
	UsernameOrEmail string `json:"username_or_email"`
	Password        string `json:"password"`
}

func (d RegisterDTO) Validate() *errors.AppError {
	if err := validation.ValidateUsername(d.Username); err != nil {
		return err
	}
	if err := validation.ValidateEmail(d.Email); err != nil {
		return err
	}
	return validation.ValidatePassword(d.Password)
}

func (d LoginDTO) Validate() *errors.AppError {
	validator := validation.NewValidator()
	validator.Field("username_or_email", d.UsernameOrEmail).Required()
	validator.Field("password", d.Password).Required()
	return validator.Validate()
}
