package models

import (
	"errors"
	"time"
)

// Validate checks if the user meets all validation requirements
func (u *User) Validate() error {
	if err := validate.Struct(u); err != nil {
		return err
	}

	if u.CreatedAt.IsZero() {
		return errors.New("created_at cannot be zero")
	}

	return nil
}

// BeforeCreate sets up any necessary fields before creation
func (u *User) BeforeCreate() {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}
	if u.Followers == nil {
		u.Followers = []int{}
	}
	if u.Following == nil {
		u.Following = []int{}
	}
}

// Public returns the author projection of the user, without the password
// hash. Email is included only when withEmail is set; comment authors are
// rendered without it.
func (u *User) Public(withEmail bool) *PublicUser {
	pu := &PublicUser{
		ID:     u.ID,
		Name:   u.Username,
		Avatar: u.Avatar,
	}
	if withEmail {
		pu.Email = u.Email
	}
	return pu
}
