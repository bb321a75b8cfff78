package app

import (
	"context"
	"fmt"
	"time"

	"github.com/tapgate/tapgate/internal/access/domain"
	"github.com/tapgate/tapgate/pkg/cryptox"
	"github.com/tapgate/tapgate/pkg/idx"
)

// seedAdmin creates the first administrator when the user table is empty,
// so a fresh deployment is immediately usable. When no ADMIN_PASSWORD is
// configured a random one is generated and logged exactly once.
func (app *Application) seedAdmin(ctx context.Context) error {
	empty, err := app.db.Users().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	password := app.cfg.AdminPassword
	generated := false
	if password == "" {
		password, err = cryptox.GeneratePassword()
		if err != nil {
			return fmt.Errorf("failed to generate admin password: %w", err)
		}
		generated = true
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	admin := domain.User{
		ID:           idx.New().String(),
		Name:         app.cfg.AdminName,
		Email:        app.cfg.AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := app.db.Users().CreateUser(ctx, admin); err != nil {
		return err
	}

	if generated {
		// The only place this password ever appears. Change it after
		// first login.
		app.logger.Warn("created initial admin account with generated password",
			"email", admin.Email,
			"password", password,
		)
	} else {
		app.logger.Info("created initial admin account", "email", admin.Email)
	}

	return nil
}
