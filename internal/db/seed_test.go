package db

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/BruksfildServices01/salon-scheduler/internal/config"
	"github.com/BruksfildServices01/salon-scheduler/internal/models"
	"github.com/BruksfildServices01/salon-scheduler/internal/validators"
)

func TestSeedAdminOnce(t *testing.T) {
	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))

	cfg := &config.Config{AdminName: "Administração", AdminEmail: " Admin@Condominio.com ", AdminPassword: "troque-me"}
	ctx := context.Background()

	created, err := SeedAdmin(ctx, db, cfg)
	require.NoError(t, err)
	assert.True(t, created)

	created, err = SeedAdmin(ctx, db, cfg)
	require.NoError(t, err)
	assert.False(t, created)

	var u models.User
	require.NoError(t, db.Where("email = ?", "admin@condominio.com").First(&u).Error)
	assert.Equal(t, "admin", u.Role)
	assert.True(t, validators.CheckPassword(u.PasswordHash, "troque-me"))
}

func TestSeedAdminSkippedWithoutCredentials(t *testing.T) {
	created, err := SeedAdmin(context.Background(), nil, &config.Config{})
	require.NoError(t, err)
	assert.False(t, created)
}
