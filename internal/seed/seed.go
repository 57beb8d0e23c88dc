// Package seed fills the reference catalogs and creates the bootstrap
// administrator on an empty database. Every step is idempotent: existing
// rows are left untouched.
package seed

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appModels "github.com/hare-edu/hare-backend/internal/app/models"
	appRepos "github.com/hare-edu/hare-backend/internal/app/repositories"
	"github.com/hare-edu/hare-backend/internal/pkg/auth"
)

// Default catalog contents. These mirror the values the import workbooks
// reference most often; operators extend them through the catalog
// endpoints.
var defaultCatalogs = map[appModels.CatalogKind][]string{
	appModels.CatalogDocumentTypes: {
		"CC", "TI", "CE", "Pasaporte",
	},
	appModels.CatalogEnrollmentStatuses: {
		"Matriculado", "Retirado", "Graduado", "Aplazado",
	},
}

// Bootstrap administrator credentials, created only when no user carries
// the email yet. The password must be changed after first login.
const (
	defaultAdminEmail    = "admin@hare.edu.co"
	defaultAdminPassword = "admin12345"
)

// CreateDefaultData seeds the catalogs and the bootstrap administrator.
// Errors are collected and returned together so a partial failure does not
// block the remaining seeds.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	catalogRepo := appRepos.NewCatalogRepository(dbPool)
	userRepo := appRepos.NewUserRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (catalogs, admin user)...")
	var finalErr error

	for kind, names := range defaultCatalogs {
		for _, name := range names {
			exists, err := catalogRepo.NameExists(ctx, kind, name)
			if err != nil {
				lgr.Error().Err(err).Str("catalog", string(kind)).Str("name", name).Msg("Error checking catalog entry")
				finalErr = errors.Join(finalErr, err)
				continue
			}
			if exists {
				continue
			}
			if err := catalogRepo.Create(ctx, kind, &appModels.CatalogItem{Name: name}); err != nil {
				lgr.Error().Err(err).Str("catalog", string(kind)).Str("name", name).Msg("Error creating catalog entry")
				finalErr = errors.Join(finalErr, err)
			}
		}
	}

	if err := createDefaultAdmin(ctx, userRepo, lgr); err != nil {
		finalErr = errors.Join(finalErr, err)
	}

	return finalErr
}

func createDefaultAdmin(ctx context.Context, userRepo *appRepos.UserRepository, lgr zerolog.Logger) error {
	exists, err := userRepo.EmailExists(ctx, defaultAdminEmail)
	if err != nil {
		lgr.Error().Err(err).Msg("Error checking default admin existence")
		return err
	}
	if exists {
		return nil
	}

	hashed, err := auth.HashPassword(defaultAdminPassword)
	if err != nil {
		lgr.Error().Err(err).Msg("Error hashing default admin password")
		return err
	}

	admin := &appModels.User{
		FirstNames: "Default",
		LastName:   "Administrator",
		Email:      defaultAdminEmail,
		Password:   hashed,
		Role:       appModels.RoleAdmin,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		lgr.Error().Err(err).Msg("Error creating default admin user")
		return err
	}

	lgr.Info().Str("email", defaultAdminEmail).Msg("Default admin user created")
	return nil
}
