package models

import (
	"errors"
	"time"
)

// Validate checks if the post meets all validation requirements
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}

	if p.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (p *Post) BeforeCreate() {
	now := time.Now()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = StatusPublished
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	if p.Likes == nil {
		p.Likes = []Like{}
	}
}

// HasLiked reports whether the user is present in the post's like set.
func (p *Post) HasLiked(userID int) bool {
	for _, like := range p.Likes {
		if like.UserID == userID {
			return true
		}
	}
	return false
}

// AddLike adds the user to the like set. Adding a user already present is a
// no-op, preserving the at-most-one-like invariant.
func (p *Post) AddLike(userID int) {
	if p.HasLiked(userID) {
		return
	}
	p.Likes = append(p.Likes, Like{UserID: userID, CreatedAt: time.Now()})
}

// RemoveLike removes the user from the like set and reports whether a like
// was actually removed.
func (p *Post) RemoveLike(userID int) bool {
	for i, like := range p.Likes {
		if like.UserID == userID {
			p.Likes = append(p.Likes[:i], p.Likes[i+1:]...)
			return true
		}
	}
	return false
}

// LikesCount returns the size of the like set.
func (p *Post) LikesCount() int {
	return len(p.Likes)
}
