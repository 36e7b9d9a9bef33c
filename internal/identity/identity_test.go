package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/tasklists/tasks-api/internal/models"
)

const testPassword = "Sup3r-Secret-Pass!"

func testProvider(t *testing.T) Provider {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return NewProvider(db)
}

func TestValidPassword(t *testing.T) {
	cases := []struct {
		name     string
		password string
		want     bool
	}{
		{"all classes", "Sup3r-Secret-Pass!", true},
		{"exactly minimum length", "Aa1!Aa1!Aa1!", true},
		{"too short", "Aa1!Aa1!Aa1", false},
		{"no digit", "Super-Secret-Pass!", false},
		{"no lowercase", "SUP3R-SECRET-PASS!", false},
		{"no uppercase", "sup3r-secret-pass!", false},
		{"no symbol", "Sup3rSecretPass1", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidPassword(tc.password))
		})
	}
}

func TestCreateUser(t *testing.T) {
	p := testProvider(t)

	user, err := p.CreateUser("diego", "diego@example.com", testPassword, models.RoleList{models.RoleUser})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.NotEqual(t, testPassword, user.PasswordHash)

	found, err := p.FindByUsername("diego")
	require.NoError(t, err)
	assert.Equal(t, user.ID, found.ID)
}

func TestCreateUser_WeakPassword(t *testing.T) {
	p := testProvider(t)

	_, err := p.CreateUser("diego", "diego@example.com", "weakpassword", models.RoleList{models.RoleUser})
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	p := testProvider(t)

	_, err := p.CreateUser("diego", "diego@example.com", testPassword, models.RoleList{models.RoleUser})
	require.NoError(t, err)

	_, err = p.CreateUser("diego", "other@example.com", testPassword, models.RoleList{models.RoleUser})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	p := testProvider(t)

	_, err := p.CreateUser("diego", "diego@example.com", testPassword, models.RoleList{models.RoleUser})
	require.NoError(t, err)

	_, err = p.CreateUser("other", "diego@example.com", testPassword, models.RoleList{models.RoleUser})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestVerifyCredentials(t *testing.T) {
	p := testProvider(t)

	_, err := p.CreateUser("diego", "diego@example.com", testPassword, models.RoleList{models.RoleUser})
	require.NoError(t, err)

	user, ok := p.VerifyCredentials("diego", testPassword)
	require.True(t, ok)
	assert.Equal(t, "diego", user.Username)

	_, ok = p.VerifyCredentials("diego", "Wrong-Passw0rd-Here!")
	assert.False(t, ok)

	_, ok = p.VerifyCredentials("ghost", testPassword)
	assert.False(t, ok)
}

func TestIsInRole(t *testing.T) {
	p := testProvider(t)

	user, err := p.CreateUser("root", "root@example.com", testPassword,
		models.RoleList{models.RoleSuperAdmin, models.RoleUser})
	require.NoError(t, err)

	assert.True(t, p.IsInRole(user, models.RoleSuperAdmin))
	assert.True(t, p.IsInRole(user, models.RoleUser))

	plain, err := p.CreateUser("diego", "diego@example.com", testPassword, models.RoleList{models.RoleUser})
	require.NoError(t, err)
	assert.False(t, p.IsInRole(plain, models.RoleSuperAdmin))
}

func TestFindByUsername_NotFound(t *testing.T) {
	p := testProvider(t)

	_, err := p.FindByUsername("ghost")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
