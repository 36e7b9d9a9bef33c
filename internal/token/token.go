package token

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/tasklists/tasks-api/internal/config"
	"github.com/tasklists/tasks-api/internal/models"
)

var ErrInvalidToken = errors.New("invalid token")

// Claims is the access-token payload: identity id in the subject plus name,
// email and the full role set.
type Claims struct {
	Username string          `json:"name"`
	Email    string          `json:"email"`
	Roles    models.RoleList `json:"roles"`
	jwt.RegisteredClaims
}

// Manager signs and parses access tokens and generates refresh tokens.
type Manager struct {
	cfg config.JwtConfig
}

// NewManager creates a Manager from the JWT configuration.
func NewManager(cfg config.JwtConfig) *Manager {
	return &Manager{cfg: cfg}
}

// AccessTokenTTL is the configured access-token lifetime.
func (m *Manager) AccessTokenTTL() time.Duration {
	return time.Duration(m.cfg.ExpireMinutes) * time.Minute
}

// RefreshTokenTTL is the configured refresh-token lifetime.
func (m *Manager) RefreshTokenTTL() time.Duration {
	return time.Duration(m.cfg.RefreshTokenExpireMinutes) * time.Minute
}

// IssueAccessToken builds a signed HS256 token for the user expiring at
// now + the configured minutes.
func (m *Manager) IssueAccessToken(user *models.User, now time.Time) (string, error) {
	claims := Claims{
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			Issuer:    m.cfg.Issuer,
			Audience:  jwt.ClaimStrings{m.cfg.Audience},
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.AccessTokenTTL())),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(m.cfg.Key))
	if err != nil {
		return "", fmt.Errorf("failed to sign access token: %w", err)
	}
	return signed, nil
}

// Parse verifies signature, issuer, audience and expiry and returns the claims.
func (m *Manager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.cfg.Issuer),
		jwt.WithAudience(m.cfg.Audience),
	)
	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// UsernameFromExpiredToken extracts the name claim from a possibly expired
// token. The signature is still verified; claim validation (notably expiry)
// is skipped, which is exactly what a refresh exchange needs.
func (m *Manager) UsernameFromExpiredToken(tokenString string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil || parsed == nil {
		return "", ErrInvalidToken
	}
	if claims.Username == "" {
		return "", ErrInvalidToken
	}
	return claims.Username, nil
}

func (m *Manager) keyFunc(t *jwt.Token) (interface{}, error) {
	return []byte(m.cfg.Key), nil
}

// NewRefreshToken returns base64 of 32 cryptographically random bytes.
func NewRefreshToken() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}
