// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"strings"

	"github.com/dalemusser/waffle/config"
	"github.com/k36p/Midad/internal/app/resources"
	userstore "github.com/k36p/Midad/internal/app/store/users"
	"github.com/k36p/Midad/internal/app/system/flash"
	"github.com/k36p/Midad/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	resources.LoadSharedTemplates()

	flash.Init(appCfg.SessionName, appCfg.SessionKey, coreCfg.Env == "prod", logger)

	if appCfg.AdminLogin != "" {
		if err := ensureAdmin(ctx, deps, appCfg.AdminLogin, appCfg.AdminPassword, appCfg.AdminName, logger); err != nil {
			return err
		}
	}
	return nil
}

// ensureAdmin guarantees an admin account with the given login exists.
// An existing account is promoted; a missing one is created when a
// password was configured. Idempotent across restarts.
func ensureAdmin(ctx context.Context, deps DBDeps, login, password, name string, logger *zap.Logger) error {
	users := userstore.New(deps.MidadMongoDatabase)
	login = strings.ToLower(strings.TrimSpace(login))

	existing, err := users.GetByLogin(ctx, login)
	switch {
	case err == nil:
		if existing.Role == models.RoleAdmin {
			return nil
		}
		if _, err := users.SetRole(ctx, existing.ID, models.RoleAdmin); err != nil {
			return err
		}
		logger.Info("promoted bootstrap admin", zap.String("login", login))
		return nil

	case errors.Is(err, userstore.ErrUserNotFound):
		if password == "" {
			logger.Warn("bootstrap admin missing and no admin_password configured", zap.String("login", login))
			return nil
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		_, err = users.Create(ctx, models.User{
			FullName:     name,
			Login:        login,
			PasswordHash: string(hash),
			Role:         models.RoleAdmin,
		})
		if errors.Is(err, userstore.ErrDuplicateLogin) {
			// Raced another instance; the account exists now.
			return nil
		}
		if err != nil {
			return err
		}
		logger.Info("created bootstrap admin", zap.String("login", login))
		return nil

	default:
		return err
	}
}
