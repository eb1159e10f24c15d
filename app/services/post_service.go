package services

import (
	"fmt"
	"strconv"
	"time"

	"blogify/app/models"
	"blogify/app/repositories"
)

// maxSlugAttempts bounds the regenerate-and-retry loop on slug conflicts.
const maxSlugAttempts = 10

// PostService handles business logic for blog posts
type PostService struct {
	postRepo repositories.PostRepository
	userRepo repositories.UserRepository
	limiter  *LikeLimiter
}

// NewPostService creates a new PostService
func NewPostService(postRepo repositories.PostRepository, userRepo repositories.UserRepository, limiter *LikeLimiter) *PostService {
	return &PostService{
		postRepo: postRepo,
		userRepo: userRepo,
		limiter:  limiter,
	}
}

// UpdatePostInput carries the optional fields of a post update. Nil means
// "leave unchanged".
type UpdatePostInput struct {
	Title      *string
	Content    *string
	Tags       []string
	Images     []string
	CoverImage *string
	Status     *string
	Featured   *bool
}

// CreatePost validates the post, derives its unique slug and persists it.
// The slug check-and-write happens inside the store's transaction; on a
// conflict the suffix is regenerated and the create retried.
func (s *PostService) CreatePost(post *models.Post) error {
	if err := validatePost(post); err != nil {
		return fmt.Errorf("invalid post: %v", err)
	}

	base := Slugify(post.Title)
	if base == "" {
		return fmt.Errorf("invalid post: title produces an empty slug")
	}

	count, err := s.postRepo.CountSlugMatches(base)
	if err != nil {
		return err
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		post.Slug = base
		if count > 0 {
			post.Slug = fmt.Sprintf("%s-%d", base, count+1)
		}
		err = s.postRepo.Create(post)
		if err != repositories.ErrSlugTaken {
			break
		}
		// Lost a race for the slug; bump the suffix and try again.
		count++
	}
	if err != nil {
		return err
	}

	s.populateAuthor(post)
	return nil
}

// GetPost retrieves a post by numeric ID or slug, increments its view
// counter and attaches the author.
func (s *PostService) GetPost(identifier string) (*models.Post, error) {
	var post *models.Post
	var err error

	if id, convErr := strconv.Atoi(identifier); convErr == nil {
		post, err = s.postRepo.GetByID(id)
	} else {
		post, err = s.postRepo.GetBySlug(identifier)
	}
	if err != nil {
		return nil, err
	}

	post.Views++
	if err := s.postRepo.Update(post); err != nil {
		return nil, fmt.Errorf("failed to record view: %v", err)
	}

	s.populateAuthor(post)
	return post, nil
}

// ListPosts retrieves posts matching the filter. Listings default to
// published posts; soft-deleted posts are excluded by the repository.
func (s *PostService) ListPosts(filter repositories.PostFilter) ([]*models.Post, int, error) {
	if filter.Status == "" {
		filter.Status = models.StatusPublished
	}
	posts, total, err := s.postRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	for _, post := range posts {
		s.populateAuthor(post)
	}
	return posts, total, nil
}

// MyPosts retrieves the authenticated author's own posts, drafts included
// unless a status filter narrows them.
func (s *PostService) MyPosts(userID int, page, limit int, status string) ([]*models.Post, int, error) {
	filter := repositories.PostFilter{
		Page:     page,
		Limit:    limit,
		AuthorID: userID,
		Status:   status,
	}
	posts, total, err := s.postRepo.List(filter)
	if err != nil {
		return nil, 0, err
	}
	for _, post := range posts {
		s.populateAuthor(post)
	}
	return posts, total, nil
}

// FeaturedPosts retrieves the newest featured published posts.
func (s *PostService) FeaturedPosts(limit int) ([]*models.Post, error) {
	featured := true
	posts, _, err := s.postRepo.List(repositories.PostFilter{
		Limit:    limit,
		Status:   models.StatusPublished,
		Featured: &featured,
	})
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		s.populateAuthor(post)
	}
	return posts, nil
}

// PopularPosts retrieves the most-liked published posts.
func (s *PostService) PopularPosts(limit int) ([]*models.Post, error) {
	posts, _, err := s.postRepo.List(repositories.PostFilter{
		Limit:    limit,
		Status:   models.StatusPublished,
		MinLikes: 1,
		Sort:     "-likes",
	})
	if err != nil {
		return nil, err
	}
	for _, post := range posts {
		s.populateAuthor(post)
	}
	return posts, nil
}

// UpdatePost applies the given changes to the caller's own post. A title
// change re-derives the slug under the same uniqueness discipline as
// creation.
func (s *PostService) UpdatePost(userID, postID int, input UpdatePostInput) (*models.Post, error) {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != userID {
		return nil, ErrForbidden
	}

	titleChanged := false
	if input.Title != nil && *input.Title != post.Title {
		post.Title = *input.Title
		titleChanged = true
	}
	if input.Content != nil {
		post.Content = *input.Content
	}
	if input.Tags != nil {
		post.Tags = input.Tags
	}
	if input.Images != nil {
		post.Images = input.Images
	}
	if input.CoverImage != nil {
		post.CoverImage = *input.CoverImage
	}
	if input.Status != nil {
		post.Status = *input.Status
	}
	if input.Featured != nil {
		post.Featured = *input.Featured
	}

	if err := validatePost(post); err != nil {
		return nil, fmt.Errorf("invalid post: %v", err)
	}
	post.UpdatedAt = time.Now()

	if !titleChanged {
		if err := s.postRepo.Update(post); err != nil {
			return nil, err
		}
		s.populateAuthor(post)
		return post, nil
	}

	base := Slugify(post.Title)
	if base == "" {
		return nil, fmt.Errorf("invalid post: title produces an empty slug")
	}
	count, err := s.postRepo.CountSlugMatches(base)
	if err != nil {
		return nil, err
	}
	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		post.Slug = base
		if count > 0 {
			post.Slug = fmt.Sprintf("%s-%d", base, count+1)
		}
		err = s.postRepo.Update(post)
		if err != repositories.ErrSlugTaken {
			break
		}
		count++
	}
	if err != nil {
		return nil, err
	}

	s.populateAuthor(post)
	return post, nil
}

// DeletePost soft-deletes the caller's own post. The record stays in the
// store, flagged and timestamped, and drops out of all listing and detail
// queries.
func (s *PostService) DeletePost(userID, postID int) error {
	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ErrForbidden
	}

	now := time.Now()
	post.IsDeleted = true
	post.DeletedAt = &now
	return s.postRepo.Update(post)
}

// ToggleLike flips the user's like on a post. A toggle inside the cooldown
// window is rejected with ErrRateLimited; a like starts the cooldown and an
// unlike clears it immediately.
func (s *PostService) ToggleLike(userID, postID int) (*models.Post, bool, error) {
	if !s.limiter.Allow(userID, postID) {
		return nil, false, ErrRateLimited
	}

	post, err := s.postRepo.GetByID(postID)
	if err != nil {
		return nil, false, err
	}

	liked := false
	if post.HasLiked(userID) {
		post.RemoveLike(userID)
		s.limiter.Clear(userID, postID)
	} else {
		post.AddLike(userID)
		liked = true
		s.limiter.Start(userID, postID)
	}

	if err := s.postRepo.Update(post); err != nil {
		return nil, false, err
	}

	s.populateAuthor(post)
	return post, liked, nil
}

// populateAuthor attaches the author projection to a post. A missing author
// record leaves the field empty rather than failing the read.
func (s *PostService) populateAuthor(post *models.Post) {
	user, err := s.userRepo.GetByID(post.AuthorID)
	if err != nil {
		return
	}
	post.Author = user.Public(true)
}

// validatePost validates a post's fields
func validatePost(post *models.Post) error {
	if post.Title == "" {
		return fmt.Errorf("title is required")
	}
	if len(post.Title) > 200 {
		return fmt.Errorf("title is too long (maximum 200 characters)")
	}
	if post.Content == "" {
		return fmt.Errorf("content is required")
	}
	if post.Status != "" && post.Status != models.StatusDraft &&
		post.Status != models.StatusPublished && post.Status != models.StatusArchived {
		return fmt.Errorf("invalid status %q", post.Status)
	}
	if len(post.Tags) > 10 {
		return fmt.Errorf("too many tags (maximum 10)")
	}
	return nil
}
