package identity

import (
	"errors"
	"unicode"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tasklists/tasks-api/internal/models"
)

var (
	ErrWeakPassword = errors.New("password does not meet the policy")
	ErrUserExists   = errors.New("username or email already taken")
)

// MinPasswordLength is the minimum accepted password size.
const MinPasswordLength = 12

// Provider owns user records and credential verification. Services depend on
// this interface and never touch password hashing themselves.
type Provider interface {
	// CreateUser enforces the password policy and username/email uniqueness,
	// hashes the password and stores the user.
	CreateUser(username, email, password string, roles models.RoleList) (*models.User, error)

	// FindByUsername returns the user or gorm.ErrRecordNotFound.
	FindByUsername(username string) (*models.User, error)

	// VerifyCredentials reports whether the password matches; the user is
	// returned only on success.
	VerifyCredentials(username, password string) (*models.User, bool)

	// IsInRole reports whether the user holds the role.
	IsInRole(user *models.User, role models.Role) bool

	// UpdateUser persists changes to an existing user record.
	UpdateUser(user *models.User) error

	// DeleteUser removes the user record inside the given transaction.
	DeleteUser(tx *gorm.DB, user *models.User) error
}

// GormProvider is a GORM implementation of Provider.
type GormProvider struct {
	db *gorm.DB
}

// NewProvider creates a new Provider.
func NewProvider(db *gorm.DB) Provider {
	return &GormProvider{db: db}
}

func (p *GormProvider) CreateUser(username, email, password string, roles models.RoleList) (*models.User, error) {
	if !ValidPassword(password) {
		return nil, ErrWeakPassword
	}

	var count int64
	err := p.db.Model(&models.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Roles:        roles,
	}
	if err := p.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (p *GormProvider) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := p.db.Where("username = ?", username).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (p *GormProvider) VerifyCredentials(username, password string) (*models.User, bool) {
	user, err := p.FindByUsername(username)
	if err != nil {
		return nil, false
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, false
	}
	return user, true
}

func (p *GormProvider) IsInRole(user *models.User, role models.Role) bool {
	return user.Roles.Contains(role)
}

func (p *GormProvider) UpdateUser(user *models.User) error {
	return p.db.Save(user).Error
}

func (p *GormProvider) DeleteUser(tx *gorm.DB, user *models.User) error {
	return tx.Unscoped().Delete(user).Error
}

// ValidPassword checks the password policy: at least MinPasswordLength runes
// with one digit, one lowercase, one uppercase and one non-alphanumeric.
func ValidPassword(password string) bool {
	if len([]rune(password)) < MinPasswordLength {
		return false
	}

	var hasDigit, hasLower, hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		default:
			hasSymbol = true
		}
	}
	return hasDigit && hasLower && hasUpper && hasSymbol
}
