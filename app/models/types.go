package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Post status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// User represents a registered account. The Password field holds the bcrypt
// hash; it is serialized into the store but never into API responses, which
// always go through PublicUser or explicit response payloads.
type User struct {
	ID        int       `json:"id" validate:"gte=0"`
	Username  string    `json:"username" validate:"required,min=3,max=30"`
	Email     string    `json:"email" validate:"required,email"`
	Password  string    `json:"password,omitempty" validate:"required"`
	Avatar    string    `json:"avatar"`
	Bio       string    `json:"bio,omitempty"`
	TechStack []string  `json:"techStack,omitempty"`
	Followers []int     `json:"followers"`
	Following []int     `json:"following"`
	CreatedAt time.Time `json:"createdAt"`
}

// PublicUser is the author projection embedded in posts and comments.
type PublicUser struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email,omitempty"`
	Avatar string `json:"avatar"`
}

// Like records a single user's like on a post. A user appears at most once
// in a post's like set.
type Like struct {
	UserID    int       `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post represents a blog post.
type Post struct {
	ID         int         `json:"id"`
	Title      string      `json:"title" validate:"required,min=5,max=200"`
	Content    string      `json:"content" validate:"required,min=10"`
	Slug       string      `json:"slug"`
	AuthorID   int         `json:"authorId"`
	Author     *PublicUser `json:"author,omitempty"`
	Tags       []string    `json:"tags" validate:"max=10,dive,max=50"`
	Images     []string    `json:"images"`
	CoverImage string      `json:"coverImage,omitempty"`
	Status     string      `json:"status" validate:"oneof=draft published archived"`
	Featured   bool        `json:"featured"`
	Views      int         `json:"views"`
	Likes      []Like      `json:"likes"`
	IsDeleted  bool        `json:"isDeleted"`
	DeletedAt  *time.Time  `json:"deletedAt,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Comment represents a flat comment record. ParentID is nil for root
// comments; a non-nil ParentID must reference a comment on the same post.
type Comment struct {
	ID        int         `json:"id"`
	PostID    int         `json:"post" validate:"required,gt=0"`
	AuthorID  int         `json:"authorId"`
	Author    *PublicUser `json:"author,omitempty"`
	ParentID  *int        `json:"parentId"`
	Text      string      `json:"text" validate:"required,min=1,max=1000"`
	CreatedAt time.Time   `json:"createdAt"`
}

// CommentNode is a comment annotated with its direct replies, forming the
// nested forest returned by the comments-by-post endpoint.
type CommentNode struct {
	*Comment
	Replies []*CommentNode `json:"replies"`
}
