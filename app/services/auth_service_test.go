package services

import (
	"testing"

	"blogify/app/auth"
	"blogify/app/repositories"
	"blogify/app/repositories/mock"

	"github.com/stretchr/testify/assert"
)

func TestAuthService(t *testing.T) {
	secret := []byte("test-secret")
	userRepo := mock.NewUserRepository()
	service := NewAuthService(userRepo, secret)

	t.Run("register issues a verifiable token", func(t *testing.T) {
		user, token, err := service.Register("alice", "alice@x.com", "secret1")
		assert.NoError(t, err)
		assert.Equal(t, 1, user.ID)
		assert.NotEqual(t, "secret1", user.Password, "password must be stored hashed")

		userID, err := auth.ParseToken(secret, token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, userID)
	})

	t.Run("duplicate username or email conflicts", func(t *testing.T) {
		_, _, err := service.Register("alice", "other@x.com", "secret1")
		assert.Equal(t, repositories.ErrDuplicate, err)

		_, _, err = service.Register("someone", "alice@x.com", "secret1")
		assert.Equal(t, repositories.ErrDuplicate, err)
	})

	t.Run("login with valid credentials", func(t *testing.T) {
		user, token, err := service.Login("alice@x.com", "secret1")
		assert.NoError(t, err)
		assert.Equal(t, "alice", user.Username)

		userID, err := auth.ParseToken(secret, token)
		assert.NoError(t, err)
		assert.Equal(t, user.ID, userID)
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, _, err := service.Login("alice@x.com", "wrong")
		assert.Equal(t, ErrInvalidCredentials, err)
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, _, err := service.Login("nobody@x.com", "secret1")
		assert.Equal(t, ErrInvalidCredentials, err)
	})
}
