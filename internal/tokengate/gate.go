// Package tokengate guards every inbound request behind bearer-token
// validation, except for a configured allow-list of path prefixes.
//
// Validation is a single pass over the Authorization header that ends in
// either an Identity threaded through the request context or a GateError
// with a distinct kind per failure. The gate holds only immutable
// configuration and never touches the credential store.
package tokengate

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/frahmantamala/user-management/internal/auth"
)

// ErrorKind discriminates every way a request can fail the gate.
type ErrorKind string

const (
	KindMissingAuthHeader   ErrorKind = "MissingAuthHeader"
	KindEmptyToken          ErrorKind = "EmptyToken"
	KindMalformedToken      ErrorKind = "MalformedToken"
	KindInvalidSignature    ErrorKind = "InvalidSignature"
	KindInvalidIssuer       ErrorKind = "InvalidIssuer"
	KindInvalidAudience     ErrorKind = "InvalidAudience"
	KindTokenExpired        ErrorKind = "TokenExpired"
	KindInvalidToken        ErrorKind = "InvalidToken"
	KindValidationFailed    ErrorKind = "ValidationFailed"
	KindServerMisconfigured ErrorKind = "ServerMisconfigured"
)

// GateError is the rejection result of a gate check. Every kind maps to 401
// except ServerMisconfigured, which is a deployment fault reported as 500.
type GateError struct {
	Kind    ErrorKind
	Message string
}

func (e *GateError) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GateError) StatusCode() int {
	if e.Kind == KindServerMisconfigured {
		return http.StatusInternalServerError
	}
	return http.StatusUnauthorized
}

func newGateError(kind ErrorKind, message string) *GateError {
	return &GateError{Kind: kind, Message: message}
}

// Identity is the request-scoped identity derived from a validated token.
// UserID and Username are empty when the corresponding claim is absent.
type Identity struct {
	UserID   string
	Username string
	Claims   *auth.Claims
}

// Config is the immutable configuration the gate is constructed with.
type Config struct {
	SigningKey string
	Issuer     string
	Audience   string
	// ExcludedPaths are matched as case-insensitive prefixes, in order.
	ExcludedPaths []string
}

type Gate struct {
	signingKey []byte
	issuer     string
	audience   string
	excluded   []string
	logger     *slog.Logger
}

func New(cfg Config, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}

	excluded := make([]string, 0, len(cfg.ExcludedPaths))
	for _, p := range cfg.ExcludedPaths {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		excluded = append(excluded, strings.ToLower(p))
	}

	return &Gate{
		signingKey: []byte(cfg.SigningKey),
		issuer:     cfg.Issuer,
		audience:   cfg.Audience,
		excluded:   excluded,
		logger:     logger,
	}
}

// Excluded reports whether the path bypasses token validation. Matching is
// a case-insensitive prefix check against the configured list and depends
// on nothing but the path.
func (g *Gate) Excluded(path string) bool {
	p := strings.ToLower(path)
	for _, prefix := range g.excluded {
		if strings.HasPrefix(p, prefix) {
			return true
		}
	}
	return false
}

// ExtractToken strips an optional case-insensitive "Bearer" scheme prefix
// from the header value. A value without the scheme is used verbatim. A
// scheme with nothing after it yields the empty string, so the caller can
// tell an empty token apart from a malformed one.
func ExtractToken(header string) string {
	value := strings.TrimSpace(header)
	if len(value) >= 6 && strings.EqualFold(value[:6], "Bearer") {
		rest := value[6:]
		if rest == "" || strings.HasPrefix(rest, " ") {
			return strings.TrimSpace(rest)
		}
	}
	return value
}

// Verify runs the full header-to-identity validation pass. It performs no
// I/O; the header value is all it inspects.
func (g *Gate) Verify(authorizationHeader string) (Identity, *GateError) {
	// A missing signing key is a deployment error, never the client's
	// fault. Checked before anything else so it cannot masquerade as 401.
	if len(strings.TrimSpace(string(g.signingKey))) == 0 {
		return Identity{}, newGateError(KindServerMisconfigured, "server signing key is not configured")
	}

	if authorizationHeader == "" {
		return Identity{}, newGateError(KindMissingAuthHeader, "missing authorization header")
	}

	raw := ExtractToken(authorizationHeader)
	if raw == "" {
		return Identity{}, newGateError(KindEmptyToken, "empty bearer token")
	}

	if strings.Count(raw, ".") != 2 {
		return Identity{}, newGateError(KindMalformedToken, "token must have three dot-separated segments")
	}

	claims := &auth.Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, g.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(g.issuer),
		jwt.WithAudience(g.audience),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(0),
	)
	if err != nil {
		return Identity{}, classify(err)
	}
	if token == nil || !token.Valid {
		return Identity{}, newGateError(KindInvalidToken, "invalid token")
	}

	return Identity{
		UserID:   claims.UserID,
		Username: claims.Subject,
		Claims:   claims,
	}, nil
}

func (g *Gate) keyFunc(_ *jwt.Token) (interface{}, error) {
	return g.signingKey, nil
}

// classify maps parse/validation failures onto the gate taxonomy. Kinds are
// checked in a fixed priority order because jwt joins claim errors.
func classify(err error) *GateError {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return newGateError(KindMalformedToken, "malformed token")
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return newGateError(KindInvalidSignature, "invalid token signature")
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return newGateError(KindInvalidIssuer, "invalid token issuer")
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return newGateError(KindInvalidAudience, "invalid token audience")
	case errors.Is(err, jwt.ErrTokenExpired):
		return newGateError(KindTokenExpired, "token has expired")
	default:
		return newGateError(KindInvalidToken, fmt.Sprintf("invalid token: %v", err))
	}
}
