package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

// SeedAdmin creates the administrator account when ADMIN_EMAIL is set and
// no user has that email yet. It reports whether a user was created.
func SeedAdmin(ctx context.Context, db *gorm.DB, cfg *config.Config) (bool, error) {
	email := validators.NormalizeEmail(cfg.AdminEmail)
	if email == "" || cfg.AdminPassword == "" {
		return false, nil
	}

	var existing models.User
	err := db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	hash, err := validators.HashPassword(cfg.AdminPassword)
	if err != nil {
		return false, err
	}

	admin := models.User{
		ID:           uuid.NewString(),
		Name:         cfg.AdminName,
		Email:        email,
		PasswordHash: hash,
		Role:         string(booking.RoleAdmin),
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return false, err
	}
	return true, nil
}
