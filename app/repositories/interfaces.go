package repositories

import (
	"time"

	"blogify/app/models"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id int) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
}

// PostFilter narrows and orders post listings. Zero values mean "no filter".
type PostFilter struct {
	Page      int
	Limit     int
	Tags      []string
	AuthorID  int
	Search    string
	Sort      string
	Status    string
	Featured  *bool
	StartDate *time.Time
	EndDate   *time.Time
	MinLikes  int
}

// PostRepository defines the interface for post data access. Reads exclude
// soft-deleted posts except GetAnyByID, which is the audit path.
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id int) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	GetAnyByID(id int) (*models.Post, error)
	List(filter PostFilter) ([]*models.Post, int, error)
	Update(post *models.Post) error
	CountSlugMatches(base string) (int, error)
}

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(comment *models.Comment) error
	GetByID(id int) (*models.Comment, error)
	ListByPost(postID int) ([]*models.Comment, error)
	Delete(id int) error
}
