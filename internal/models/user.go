package models

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// Role is one of the closed set of application roles.
type Role string

const (
	RoleSuperAdmin Role = "SuperAdmin"
	RoleUser       Role = "User"
)

// RoleList is stored as a comma separated column.
type RoleList []Role

func (r RoleList) Value() (driver.Value, error) {
	parts := make([]string, len(r))
	for i, role := range r {
		parts[i] = string(role)
	}
	return strings.Join(parts, ","), nil
}

func (r *RoleList) Scan(value interface{}) error {
	var raw string
	switch v := value.(type) {
	case string:
		raw = v
	case []byte:
		raw = string(v)
	case nil:
		*r = nil
		return nil
	default:
		return fmt.Errorf("unsupported role list type %T", value)
	}

	if raw == "" {
		*r = nil
		return nil
	}

	parts := strings.Split(raw, ",")
	roles := make(RoleList, 0, len(parts))
	for _, p := range parts {
		roles = append(roles, Role(strings.TrimSpace(p)))
	}
	*r = roles
	return nil
}

// Contains reports whether the list holds the given role.
func (r RoleList) Contains(role Role) bool {
	for _, have := range r {
		if have == role {
			return true
		}
	}
	return false
}

type User struct {
	ID           uint64   `gorm:"primarykey" json:"id"`
	Username     string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Email        string   `gorm:"type:varchar(255);uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"type:varchar(255);not null" json:"-"`
	Roles        RoleList `gorm:"type:varchar(255)" json:"roles"`

	// Single active refresh token per user; overwritten on every issued session.
	RefreshToken          string    `gorm:"type:varchar(255)" json:"-"`
	RefreshTokenExpiresAt time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	TaskLists []TaskList `gorm:"foreignKey:UserID" json:"-"`
}

// IsSuperAdmin is the single privilege check; role strings never leak into services.
func (u *User) IsSuperAdmin() bool {
	return u.Roles.Contains(RoleSuperAdmin)
}
