// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/clubhub/internal/app/store"
	userstore "github.com/dalemusser/clubhub/internal/app/store/users"
	"github.com/dalemusser/clubhub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections
// and schema setup are complete, but before the HTTP handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return ensureSuperAdmin(ctx, deps, appCfg.SuperAdminEmail, logger)
}

// ensureSuperAdmin promotes the configured user to super-admin, creating
// the record if it does not exist. A blank email skips the bootstrap.
func ensureSuperAdmin(ctx context.Context, deps DBDeps, email string, logger *zap.Logger) error {
	if email == "" {
		logger.Debug("no superadmin_email configured, skipping super-admin bootstrap")
		return nil
	}

	users := userstore.New(deps.MongoDatabase)

	u, err := users.GetByEmail(ctx, email)
	switch {
	case errors.Is(err, store.ErrNotFound):
		created, err := users.Create(ctx, models.User{
			FullName:   "Super Admin",
			Email:      email,
			SuperAdmin: true,
		})
		if err != nil {
			return err
		}
		logger.Info("created super-admin user",
			zap.String("email", created.Email),
			zap.String("user_id", created.ID.Hex()))
		return nil
	case err != nil:
		return err
	}

	if u.SuperAdmin {
		return nil
	}
	u.SuperAdmin = true
	if err := users.Save(ctx, u); err != nil {
		return err
	}
	logger.Info("promoted existing user to super-admin",
		zap.String("email", u.Email),
		zap.String("user_id", u.ID.Hex()))
	return nil
}
