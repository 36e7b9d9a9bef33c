package token

import (
	"encoding/base64"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tasklists/tasks-api/internal/config"
	"github.com/tasklists/tasks-api/internal/models"
)

func testManager() *Manager {
	return NewManager(config.JwtConfig{
		Issuer:                    "tasks-api-test",
		Audience:                  "tasks-api-test-clients",
		Key:                       "test-signing-key-0123456789abcdef",
		ExpireMinutes:             15,
		RefreshTokenExpireMinutes: 60,
	})
}

func testUser() *models.User {
	return &models.User{
		ID:       42,
		Username: "diego",
		Email:    "diego@example.com",
		Roles:    models.RoleList{models.RoleUser},
	}
}

func TestIssueAndParse(t *testing.T) {
	m := testManager()
	user := testUser()

	signed, err := m.IssueAccessToken(user, time.Now().UTC())
	require.NoError(t, err)

	claims, err := m.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, strconv.FormatUint(user.ID, 10), claims.Subject)
	assert.Equal(t, "diego", claims.Username)
	assert.Equal(t, "diego@example.com", claims.Email)
	assert.Equal(t, models.RoleList{models.RoleUser}, claims.Roles)
}

func TestParse_WrongKey(t *testing.T) {
	m := testManager()

	signed, err := m.IssueAccessToken(testUser(), time.Now().UTC())
	require.NoError(t, err)

	other := NewManager(config.JwtConfig{
		Issuer:        "tasks-api-test",
		Audience:      "tasks-api-test-clients",
		Key:           "a-completely-different-signing-key",
		ExpireMinutes: 15,
	})
	_, err = other.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_WrongAudience(t *testing.T) {
	m := testManager()

	other := NewManager(config.JwtConfig{
		Issuer:        "tasks-api-test",
		Audience:      "somebody-else",
		Key:           "test-signing-key-0123456789abcdef",
		ExpireMinutes: 15,
	})
	signed, err := other.IssueAccessToken(testUser(), time.Now().UTC())
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestParse_Expired(t *testing.T) {
	m := testManager()

	signed, err := m.IssueAccessToken(testUser(), time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)

	_, err = m.Parse(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUsernameFromExpiredToken(t *testing.T) {
	m := testManager()

	// Issued an hour ago with a 15 minute lifetime, so long expired.
	signed, err := m.IssueAccessToken(testUser(), time.Now().UTC().Add(-time.Hour))
	require.NoError(t, err)

	username, err := m.UsernameFromExpiredToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "diego", username)
}

func TestUsernameFromExpiredToken_WrongKey(t *testing.T) {
	m := testManager()

	other := NewManager(config.JwtConfig{
		Issuer:        "tasks-api-test",
		Audience:      "tasks-api-test-clients",
		Key:           "a-completely-different-signing-key",
		ExpireMinutes: 15,
	})
	signed, err := other.IssueAccessToken(testUser(), time.Now().UTC())
	require.NoError(t, err)

	_, err = m.UsernameFromExpiredToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUsernameFromExpiredToken_Garbage(t *testing.T) {
	_, err := testManager().UsernameFromExpiredToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestNewRefreshToken(t *testing.T) {
	first, err := NewRefreshToken()
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(first)
	require.NoError(t, err)
	assert.Len(t, raw, 32)

	second, err := NewRefreshToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
