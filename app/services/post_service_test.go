package services

import (
	"testing"
	"time"

	"blogify/app/models"
	"blogify/app/repositories"
	"blogify/app/repositories/mock"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostService() (*PostService, *mock.PostRepository, *mock.UserRepository, *LikeLimiter) {
	postRepo := mock.NewPostRepository()
	userRepo := mock.NewUserRepository()
	limiter := NewLikeLimiter(5 * time.Second)
	return NewPostService(postRepo, userRepo, limiter), postRepo, userRepo, limiter
}

func seedAuthor(t *testing.T, userRepo *mock.UserRepository) *models.User {
	t.Helper()
	user := &models.User{Username: "alice", Email: "alice@x.com", Password: "hash"}
	require.NoError(t, userRepo.Create(user))
	return user
}

func TestPostServiceSlugDerivation(t *testing.T) {
	service, _, userRepo, _ := newTestPostService()
	author := seedAuthor(t, userRepo)

	first := &models.Post{Title: "Hello World", Content: "first body content", AuthorID: author.ID}
	assert.NoError(t, service.CreatePost(first))
	assert.Equal(t, "hello-world", first.Slug)

	second := &models.Post{Title: "Hello World", Content: "second body content", AuthorID: author.ID}
	assert.NoError(t, service.CreatePost(second))
	assert.Equal(t, "hello-world-2", second.Slug)

	third := &models.Post{Title: "Hello World", Content: "third body content", AuthorID: author.ID}
	assert.NoError(t, service.CreatePost(third))
	assert.Equal(t, "hello-world-3", third.Slug)

	t.Run("author is populated on create", func(t *testing.T) {
		assert.NotNil(t, first.Author)
		assert.Equal(t, "alice", first.Author.Name)
	})
}

func TestPostServiceGetPost(t *testing.T) {
	service, _, userRepo, _ := newTestPostService()
	author := seedAuthor(t, userRepo)

	post := &models.Post{Title: "Readable Post", Content: "body content here", AuthorID: author.ID}
	require.NoError(t, service.CreatePost(post))

	t.Run("by numeric ID increments views", func(t *testing.T) {
		got, err := service.GetPost("1")
		assert.NoError(t, err)
		assert.Equal(t, 1, got.Views)
	})

	t.Run("by slug", func(t *testing.T) {
		got, err := service.GetPost("readable-post")
		assert.NoError(t, err)
		assert.Equal(t, post.ID, got.ID)
		assert.Equal(t, 2, got.Views)
	})

	t.Run("unknown identifier", func(t *testing.T) {
		_, err := service.GetPost("nope")
		assert.Equal(t, repositories.ErrNotFound, err)
	})
}

func TestPostServiceSoftDelete(t *testing.T) {
	service, postRepo, userRepo, _ := newTestPostService()
	author := seedAuthor(t, userRepo)

	post := &models.Post{Title: "Doomed Post", Content: "body content here", AuthorID: author.ID}
	require.NoError(t, service.CreatePost(post))

	t.Run("only the author may delete", func(t *testing.T) {
		err := service.DeletePost(author.ID+1, post.ID)
		assert.Equal(t, ErrForbidden, err)
	})

	t.Run("delete flags and timestamps the record", func(t *testing.T) {
		assert.NoError(t, service.DeletePost(author.ID, post.ID))

		stored, err := postRepo.GetAnyByID(post.ID)
		assert.NoError(t, err)
		assert.True(t, stored.IsDeleted)
		assert.NotNil(t, stored.DeletedAt)
	})

	t.Run("deleted post is gone from reads and listings", func(t *testing.T) {
		_, err := service.GetPost("doomed-post")
		assert.Equal(t, repositories.ErrNotFound, err)

		posts, total, err := service.ListPosts(repositories.PostFilter{})
		assert.NoError(t, err)
		assert.Zero(t, total)
		assert.Empty(t, posts)
	})

	t.Run("slug stays reserved after deletion", func(t *testing.T) {
		again := &models.Post{Title: "Doomed Post", Content: "body content here", AuthorID: author.ID}
		assert.NoError(t, service.CreatePost(again))
		assert.Equal(t, "doomed-post-2", again.Slug)
	})
}

func TestPostServiceUpdate(t *testing.T) {
	service, _, userRepo, _ := newTestPostService()
	author := seedAuthor(t, userRepo)

	post := &models.Post{Title: "Original Title", Content: "body content here", AuthorID: author.ID}
	require.NoError(t, service.CreatePost(post))

	t.Run("only the author may update", func(t *testing.T) {
		title := "Hijacked Title"
		_, err := service.UpdatePost(author.ID+1, post.ID, UpdatePostInput{Title: &title})
		assert.Equal(t, ErrForbidden, err)
	})

	t.Run("title change re-derives the slug", func(t *testing.T) {
		title := "Renamed Title"
		updated, err := service.UpdatePost(author.ID, post.ID, UpdatePostInput{Title: &title})
		assert.NoError(t, err)
		assert.Equal(t, "renamed-title", updated.Slug)
	})

	t.Run("content change keeps the slug", func(t *testing.T) {
		content := "rewritten body content"
		updated, err := service.UpdatePost(author.ID, post.ID, UpdatePostInput{Content: &content})
		assert.NoError(t, err)
		assert.Equal(t, "renamed-title", updated.Slug)
		assert.Equal(t, content, updated.Content)
	})
}

func TestPostServiceToggleLike(t *testing.T) {
	service, _, userRepo, limiter := newTestPostService()
	author := seedAuthor(t, userRepo)

	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	post := &models.Post{Title: "Likeable Post", Content: "body content here", AuthorID: author.ID}
	require.NoError(t, service.CreatePost(post))

	t.Run("first toggle likes", func(t *testing.T) {
		got, liked, err := service.ToggleLike(author.ID, post.ID)
		assert.NoError(t, err)
		assert.True(t, liked)
		assert.Equal(t, 1, got.LikesCount())
	})

	t.Run("second toggle inside the window is rejected", func(t *testing.T) {
		_, _, err := service.ToggleLike(author.ID, post.ID)
		assert.Equal(t, ErrRateLimited, err)
	})

	t.Run("toggle after the window unlikes", func(t *testing.T) {
		now = now.Add(6 * time.Second)
		got, liked, err := service.ToggleLike(author.ID, post.ID)
		assert.NoError(t, err)
		assert.False(t, liked)
		assert.Equal(t, 0, got.LikesCount())
	})

	t.Run("unlike does not gate the next like", func(t *testing.T) {
		got, liked, err := service.ToggleLike(author.ID, post.ID)
		assert.NoError(t, err)
		assert.True(t, liked)
		assert.Equal(t, 1, got.LikesCount())
	})
}

func TestPostServiceListings(t *testing.T) {
	service, _, userRepo, _ := newTestPostService()
	author := seedAuthor(t, userRepo)

	draft := &models.Post{Title: "Draft Piece", Content: "body content here", AuthorID: author.ID, Status: models.StatusDraft}
	require.NoError(t, service.CreatePost(draft))
	featured := &models.Post{Title: "Featured Piece", Content: "body content here", AuthorID: author.ID, Featured: true}
	require.NoError(t, service.CreatePost(featured))
	plain := &models.Post{Title: "Plain Piece", Content: "body content here", AuthorID: author.ID, Tags: []string{"go", "web"}}
	require.NoError(t, service.CreatePost(plain))

	liked := &models.Post{Title: "Liked Piece", Content: "body content here", AuthorID: author.ID}
	require.NoError(t, service.CreatePost(liked))
	_, _, err := service.ToggleLike(author.ID, liked.ID)
	require.NoError(t, err)

	t.Run("default listing shows only published", func(t *testing.T) {
		posts, total, err := service.ListPosts(repositories.PostFilter{})
		assert.NoError(t, err)
		assert.Equal(t, 3, total)
		for _, p := range posts {
			assert.Equal(t, models.StatusPublished, p.Status)
		}
	})

	t.Run("tag filter", func(t *testing.T) {
		posts, total, err := service.ListPosts(repositories.PostFilter{Tags: []string{"go"}})
		assert.NoError(t, err)
		assert.Equal(t, 1, total)
		assert.Equal(t, plain.ID, posts[0].ID)
	})

	t.Run("my posts includes drafts", func(t *testing.T) {
		_, total, err := service.MyPosts(author.ID, 1, 10, "")
		assert.NoError(t, err)
		assert.Equal(t, 4, total)
	})

	t.Run("featured listing", func(t *testing.T) {
		posts, err := service.FeaturedPosts(5)
		assert.NoError(t, err)
		assert.Len(t, posts, 1)
		assert.Equal(t, featured.ID, posts[0].ID)
	})

	t.Run("popular listing requires at least one like", func(t *testing.T) {
		posts, err := service.PopularPosts(5)
		assert.NoError(t, err)
		assert.Len(t, posts, 1)
		assert.Equal(t, liked.ID, posts[0].ID)
	})
}
