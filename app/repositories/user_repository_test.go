package repositories

import (
	"testing"

	"blogify/app/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBadgerUserRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewBadgerUserRepository(db)

	t.Run("create and get", func(t *testing.T) {
		user := &models.User{Username: "alice", Email: "alice@x.com", Password: "hash"}
		require.NoError(t, repo.Create(user))
		assert.Equal(t, 1, user.ID)
		assert.False(t, user.CreatedAt.IsZero())

		got, err := repo.GetByID(1)
		assert.NoError(t, err)
		assert.Equal(t, "alice", got.Username)
	})

	t.Run("get by email is case-insensitive", func(t *testing.T) {
		got, err := repo.GetByEmail("Alice@X.com")
		assert.NoError(t, err)
		assert.Equal(t, 1, got.ID)
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		dup := &models.User{Username: "other", Email: "ALICE@x.com", Password: "hash"}
		assert.Equal(t, ErrDuplicate, repo.Create(dup))
	})

	t.Run("duplicate username rejected", func(t *testing.T) {
		dup := &models.User{Username: "Alice", Email: "new@x.com", Password: "hash"}
		assert.Equal(t, ErrDuplicate, repo.Create(dup))
	})

	t.Run("update profile fields", func(t *testing.T) {
		user, err := repo.GetByID(1)
		require.NoError(t, err)

		user.Bio = "Go developer"
		user.TechStack = []string{"go", "badger"}
		assert.NoError(t, repo.Update(user))

		got, err := repo.GetByID(1)
		assert.NoError(t, err)
		assert.Equal(t, "Go developer", got.Bio)
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetByID(99)
		assert.Equal(t, ErrNotFound, err)

		_, err = repo.GetByEmail("nobody@x.com")
		assert.Equal(t, ErrNotFound, err)

		err = repo.Update(&models.User{ID: 99, Username: "ghost", Email: "g@x.com"})
		assert.Equal(t, ErrNotFound, err)
	})
}
