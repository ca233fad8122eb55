package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	userDatamodel "github.com/frahmantamala/user-management/internal/core/datamodel/user"
)

// Claims is the claim set carried by every issued token: the username in
// sub, the numeric user id in user_id, and a fresh jti per login.
type Claims struct {
	UserID string `json:"user_id,omitempty"`
	jwt.RegisteredClaims
}

// ServiceAPI is the surface the HTTP handler depends on.
type ServiceAPI interface {
	Register(dto RegisterDTO) (*RegisteredUser, error)
	Login(dto LoginDTO) (*LoginResult, error)
}

// Repository is the credential-store access the service needs.
type Repository interface {
	ExistsByUsernameOrEmail(username, email string) (bool, error)
	Create(u *userDatamodel.User) error
	FindByUsername(username string) (*userDatamodel.User, error)
	FindByEmail(email string) (*userDatamodel.User, error)
}

// TokenIssuer mints signed tokens bound to one user.
type TokenIssuer interface {
	IssueToken(userID int64, username string) (string, error)
}

// RegisteredUser echoes back the created account without sensitive data.
type RegisteredUser struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

// LoginResult is the login response payload.
type LoginResult struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// JWTIssuer signs HS256 tokens with a single shared secret.
type JWTIssuer struct {
	Secret   []byte
	Issuer   string
	Audience string
	TokenTTL time.Duration
}

func NewJWTIssuer(secret, issuer, audience string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{
		Secret:   []byte(secret),
		Issuer:   issuer,
		Audience: audience,
		TokenTTL: ttl,
	}
}

// IssueToken creates a signed token valid for TokenTTL. The jti is freshly
// generated on every call, never reused across logins.
func (j *JWTIssuer) IssueToken(userID int64, username string) (string, error) {
	now := time.Now()

	claims := &Claims{
		UserID: strconv.FormatInt(userID, 10),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.NewString(),
			Issuer:    j.Issuer,
			Audience:  jwt.ClaimStrings{j.Audience},
			ExpiresAt: jwt.NewNumericDate(now.Add(j.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.Secret)
}

func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
