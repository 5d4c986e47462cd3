// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/config"
	userstore "github.com/potluckhq/potluck/internal/app/store/users"
	"github.com/potluckhq/potluck/internal/app/system/normalize"
	"github.com/potluckhq/potluck/internal/domain/models"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminEmail, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureAdmin promotes the configured account to the admin role.
// Accounts are created through the signup flow, so if no account with
// that email exists yet the promotion happens on a later restart.
func ensureAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	store := userstore.New(deps.PotluckMongoDatabase)
	email = normalize.Email(email)

	u, err := store.GetByEmail(ctx, email)
	if errors.Is(err, userstore.ErrNotFound) {
		logger.Info("admin account not registered yet; will promote once it signs up",
			zap.String("email", email))
		return nil
	}
	if err != nil {
		return err
	}

	if u.Role == models.RoleAdmin {
		return nil
	}
	if err := store.SetRole(ctx, u.ID, models.RoleAdmin); err != nil {
		return err
	}
	logger.Info("promoted account to admin", zap.String("email", email))
	return nil
}
