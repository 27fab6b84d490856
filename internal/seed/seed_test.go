package seed

import (
	"testing"

	"placeshare/internal/database"
	"placeshare/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSeedDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func TestSeeder(t *testing.T) {
	db := setupSeedDB(t)
	s := NewSeeder(db)

	users, err := s.SeedUsers(5)
	require.NoError(t, err)
	require.Len(t, users, 5)

	// Every user can log in with the default password.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(users[0].Password), []byte(DefaultPassword)))

	total, err := s.SeedPlaces(users, 3)
	require.NoError(t, err)

	var placeCount int64
	db.Model(&models.Place{}).Count(&placeCount)
	assert.EqualValues(t, total, placeCount)

	// Every seeded place references an existing user.
	var orphanCount int64
	db.Model(&models.Place{}).
		Where("creator_id NOT IN (?)", db.Model(&models.User{}).Select("id")).
		Count(&orphanCount)
	assert.Zero(t, orphanCount)

	require.NoError(t, s.ClearAll())

	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	db.Model(&models.Place{}).Count(&placeCount)
	assert.Zero(t, userCount)
	assert.Zero(t, placeCount)
}
