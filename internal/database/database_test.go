package database

import (
	"path/filepath"
	"testing"
	"time"

	"asset-inventory/internal/config"
	"asset-inventory/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_SQLiteCreatesDirAndMigrates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "inventory.db")

	db, err := Init(config.DatabaseConfig{Driver: "sqlite", Path: path})
	require.NoError(t, err)
	defer Close(db)

	require.NoError(t, AutoMigrate(db))
	for _, m := range []any{&models.User{}, &models.Session{}, &models.Category{}, &models.Asset{}} {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestInit_UnsupportedDriver(t *testing.T) {
	_, err := Init(config.DatabaseConfig{Driver: "oracle"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestDeletingUserCascadesSessions(t *testing.T) {
	db, err := Init(config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "fk.db")})
	require.NoError(t, err)
	defer Close(db)
	require.NoError(t, AutoMigrate(db))

	user := models.User{Username: "alice", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Session{
		Token:     "tok-1",
		UserID:    user.ID,
		ExpiresAt: time.Now().Add(time.Hour),
	}).Error)

	require.NoError(t, db.Delete(&user).Error)

	var n int64
	require.NoError(t, db.Model(&models.Session{}).Count(&n).Error)
	assert.Zero(t, n)
}
