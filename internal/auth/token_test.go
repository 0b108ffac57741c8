package auth

import (
	"testing"
	"time"

	"github.com/JobDeck-io/jobdeck/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager(t *testing.T) {
	tm := NewTokenManager("test-secret-key")
	admin := &models.Admin{ID: 7, Username: "admin"}

	t.Run("valid token roundtrip", func(t *testing.T) {
		token, err := tm.GenerateToken(admin, "ci-deploy", time.Hour)
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := tm.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, int64(7), claims.AdminID)
		assert.Equal(t, "admin", claims.Username)
		assert.Equal(t, "ci-deploy", claims.Name)
	})

	t.Run("expired token", func(t *testing.T) {
		token, err := tm.GenerateToken(admin, "stale", -time.Hour)
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrExpiredToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := tm.ValidateToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewTokenManager("different-secret")
		token, err := other.GenerateToken(admin, "", time.Hour)
		require.NoError(t, err)

		_, err = tm.ValidateToken(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
