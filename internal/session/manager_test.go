package session

import (
	"context"
	"os"
	"testing"
	"time"

	"hospital-gin/internal/database"
	"hospital-gin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager(t *testing.T) (*Manager, *GormStore) {
	t.Helper()
	store := NewGormStore(database.OpenTest(t))
	return NewManager(store, "test-secret", time.Hour), store
}

func TestManager_IssueAndResolve(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	token, sess, err := m.Issue(ctx, &models.User{ID: 7, Role: models.RoleDoctor})
	require.NoError(t, err)
	require.NotEmpty(t, token)

	p, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), p.UserID)
	assert.Equal(t, models.RoleDoctor, p.Role)
	assert.Equal(t, sess.ID, p.SessionID)
}

func TestManager_IssueRefusesUnknownRole(t *testing.T) {
	m, store := newTestManager(t)

	_, _, err := m.Issue(context.Background(), &models.User{ID: 9, Role: "nurse"})
	require.Error(t, err)

	var n int64
	require.NoError(t, store.db.Model(&models.Session{}).Count(&n).Error)
	assert.Zero(t, n, "no session stored")
}

func TestManager_RejectsForeignSignature(t *testing.T) {
	m, store := newTestManager(t)
	other := NewManager(store, "another-secret", time.Hour)
	ctx := context.Background()

	token, _, err := other.Issue(ctx, &models.User{ID: 1, Role: models.RoleAdmin})
	require.NoError(t, err)

	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Resolve(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_Expiry(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()

	start := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return start }
	token, _, err := m.Issue(ctx, &models.User{ID: 3, Role: models.RolePatient})
	require.NoError(t, err)

	m.now = func() time.Time { return start.Add(2 * time.Hour) }
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RevokeAndRevokeUser(t *testing.T) {
	m, _ := newTestManager(t)
	ctx := context.Background()
	user := &models.User{ID: 4, Role: models.RolePatient}

	first, _, err := m.Issue(ctx, user)
	require.NoError(t, err)
	second, _, err := m.Issue(ctx, user)
	require.NoError(t, err)
	third, _, err := m.Issue(ctx, user)
	require.NoError(t, err)

	require.NoError(t, m.Revoke(ctx, first))
	_, err = m.Resolve(ctx, first)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = m.Resolve(ctx, second)
	require.NoError(t, err)

	require.NoError(t, m.RevokeUser(ctx, user.ID))
	for _, tok := range []string{second, third} {
		_, err = m.Resolve(ctx, tok)
		assert.ErrorIs(t, err, ErrInvalidToken)
	}

	assert.NoError(t, m.Revoke(ctx, "garbage"))
}

func TestRedisStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()

	store, err := NewRedisStore(ctx, url)
	require.NoError(t, err)
	defer store.Close()

	m := NewManager(store, "test-secret", time.Minute)
	user := &models.User{ID: 990001, Role: models.RoleDoctor}

	token, _, err := m.Issue(ctx, user)
	require.NoError(t, err)

	p, err := m.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, p.UserID)

	require.NoError(t, m.RevokeUser(ctx, user.ID))
	_, err = m.Resolve(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
