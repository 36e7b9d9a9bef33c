package database

import (
	"errors"

	"gorm.io/gorm"

	"github.com/tasklists/tasks-api/internal/config"
	"github.com/tasklists/tasks-api/internal/identity"
	"github.com/tasklists/tasks-api/internal/logger"
	"github.com/tasklists/tasks-api/internal/models"
)

// SeedSuperAdmin creates the configured SuperAdmin account if it does not
// already exist. A no-op when the seed settings are absent.
func SeedSuperAdmin(cfg *config.Config, provider identity.Provider) error {
	if cfg.SeedAdminUsername == "" || cfg.SeedAdminEmail == "" || cfg.SeedAdminPassword == "" {
		return nil
	}

	_, err := provider.FindByUsername(cfg.SeedAdminUsername)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	_, err = provider.CreateUser(cfg.SeedAdminUsername, cfg.SeedAdminEmail, cfg.SeedAdminPassword,
		models.RoleList{models.RoleSuperAdmin, models.RoleUser})
	if err != nil {
		return err
	}

	logger.Info("seeded SuperAdmin account")
	return nil
}
