package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, 24*time.Hour)

	t.Run("Token round-trip preserves claims", func(t *testing.T) {
		token, err := manager.GenerateToken(42, "Bob CFO", "bob@acme.com", "CFO")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := manager.ValidateToken(token)
		require.NoError(t, err)
		assert.Equal(t, 42, claims.UserID)
		assert.Equal(t, "Bob CFO", claims.Name)
		assert.Equal(t, "bob@acme.com", claims.Email)
		assert.Equal(t, "CFO", claims.Role)
	})

	t.Run("Tokens carry unique IDs", func(t *testing.T) {
		a, err := manager.GenerateToken(1, "A", "a@acme.com", "CEO")
		require.NoError(t, err)
		b, err := manager.GenerateToken(1, "A", "a@acme.com", "CEO")
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})

	t.Run("Wrong secret is rejected", func(t *testing.T) {
		token, err := manager.GenerateToken(1, "A", "a@acme.com", "CEO")
		require.NoError(t, err)

		other := NewJWTManager("other-secret", time.Hour, 24*time.Hour)
		_, err = other.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Expired token is rejected", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute, 24*time.Hour)
		token, err := expired.GenerateToken(1, "A", "a@acme.com", "CEO")
		require.NoError(t, err)

		_, err = manager.ValidateToken(token)
		assert.Error(t, err)
	})

	t.Run("Garbage token is rejected", func(t *testing.T) {
		_, err := manager.ValidateToken("not.a.token")
		assert.Error(t, err)
	})

	t.Run("Token duration is exposed", func(t *testing.T) {
		assert.Equal(t, time.Hour, manager.GetTokenDuration())
	})
}

func TestPasswordHashing(t *testing.T) {
	t.Run("Hash verifies against original password", func(t *testing.T) {
		hash, err := HashPassword("demo")
		require.NoError(t, err)
		assert.NotEqual(t, "demo", hash)
		assert.True(t, CheckPasswordHash("demo", hash))
	})

	t.Run("Wrong password fails", func(t *testing.T) {
		hash, err := HashPassword("demo")
		require.NoError(t, err)
		assert.False(t, CheckPasswordHash("wrong", hash))
	})

	t.Run("Empty hash never verifies", func(t *testing.T) {
		assert.False(t, CheckPasswordHash("demo", ""))
	})
}
