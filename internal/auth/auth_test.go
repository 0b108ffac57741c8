package auth

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/JobDeck-io/jobdeck/internal/config"
	"github.com/JobDeck-io/jobdeck/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T) (*Service, *database.DB) {
	t.Helper()

	cfg := &config.Config{
		DatabaseType: "sqlite",
		DatabasePath: filepath.Join(t.TempDir(), "auth_test.db"),
	}
	db, err := database.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return New(db, false), db
}

func TestLoginBootstrapsFirstAdmin(t *testing.T) {
	svc, db := setupService(t)

	admin, err := svc.Login("admin", "first-run-pass")
	require.NoError(t, err)
	assert.Equal(t, "admin", admin.Username)
	assert.NotZero(t, admin.ID)

	count, err := db.CountAdmins()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// the bootstrapped credentials keep working
	again, err := svc.Login("admin", "first-run-pass")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)
}

func TestLoginDoesNotReplaceExistingAdmin(t *testing.T) {
	svc, db := setupService(t)

	original, err := svc.Login("admin", "correct-pass")
	require.NoError(t, err)

	_, err = svc.Login("admin", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login("intruder", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	count, err := db.CountAdmins()
	require.NoError(t, err)
	assert.Equal(t, 1, count, "failed logins never create or replace accounts")

	stored, err := db.GetAdminByUsername("admin")
	require.NoError(t, err)
	assert.Equal(t, original.ID, stored.ID)
	assert.True(t, stored.ValidatePassword("correct-pass"))
}

func TestSessionRoundtrip(t *testing.T) {
	svc, _ := setupService(t)

	admin, err := svc.Login("admin", "pass")
	require.NoError(t, err)

	token, expiresAt, err := svc.CreateSession(admin.ID)
	require.NoError(t, err)
	assert.Len(t, token, 64, "32 random bytes hex encoded")
	assert.True(t, expiresAt.After(time.Now().Add(6*24*time.Hour)))

	got, err := svc.AdminFromSession(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, got.ID)

	// two live sessions can coexist
	second, _, err := svc.CreateSession(admin.ID)
	require.NoError(t, err)
	assert.NotEqual(t, token, second)
	_, err = svc.AdminFromSession(token)
	assert.NoError(t, err)
}

func TestAdminFromSessionRejectsBadTokens(t *testing.T) {
	svc, db := setupService(t)

	admin, err := svc.Login("admin", "pass")
	require.NoError(t, err)

	_, err = svc.AdminFromSession("")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	_, err = svc.AdminFromSession("no-such-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, db.CreateSession(admin.ID, "expired-token", time.Now().Add(-time.Minute)))
	_, err = svc.AdminFromSession("expired-token")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestLogout(t *testing.T) {
	svc, _ := setupService(t)

	admin, err := svc.Login("admin", "pass")
	require.NoError(t, err)

	token, _, err := svc.CreateSession(admin.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(token))
	_, err = svc.AdminFromSession(token)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	// logging out an already-dead or absent token is fine
	assert.NoError(t, svc.Logout(token))
	assert.NoError(t, svc.Logout(""))
}

func TestCleanupExpiredSessions(t *testing.T) {
	svc, db := setupService(t)

	admin, err := svc.Login("admin", "pass")
	require.NoError(t, err)

	live, _, err := svc.CreateSession(admin.ID)
	require.NoError(t, err)
	require.NoError(t, db.CreateSession(admin.ID, "stale", time.Now().Add(-time.Hour)))

	require.NoError(t, svc.CleanupExpiredSessions())

	_, err = svc.AdminFromSession(live)
	assert.NoError(t, err, "live sessions survive the sweep")
}
