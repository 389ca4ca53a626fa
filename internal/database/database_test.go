package database

import (
	"context"
	"testing"

	"hospital-gin/internal/config"
	"hospital-gin/internal/models"
	"hospital-gin/internal/utils"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAdmin_CreatesOnce(t *testing.T) {
	db := OpenTest(t)
	ctx := context.Background()

	require.NoError(t, SeedAdmin(ctx, db, "root", "pw-1", zerolog.Nop()))
	require.NoError(t, SeedAdmin(ctx, db, "other", "pw-2", zerolog.Nop()))

	var admins []models.User
	require.NoError(t, db.Where("role = ?", models.RoleAdmin).Find(&admins).Error)
	require.Len(t, admins, 1)

	assert.Equal(t, "root", admins[0].Username)
	assert.True(t, admins[0].IsActive)
	assert.True(t, utils.CheckPassword("pw-1", admins[0].Password))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle"})
	assert.Error(t, err)
}

func TestPing(t *testing.T) {
	db := OpenTest(t)
	assert.NoError(t, Ping(context.Background(), db))
}
