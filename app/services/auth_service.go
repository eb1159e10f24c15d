package services

import (
	"fmt"

	"blogify/app/auth"
	"blogify/app/models"
	"blogify/app/repositories"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and identity lookups
type AuthService struct {
	userRepo repositories.UserRepository
	secret   []byte
}

// NewAuthService creates a new AuthService
func NewAuthService(userRepo repositories.UserRepository, secret []byte) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		secret:   secret,
	}
}

// Register creates a new user with a hashed password and returns the user
// together with a signed bearer token. Duplicate username or email returns
// repositories.ErrDuplicate.
func (s *AuthService) Register(username, email, password string) (*models.User, string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username: username,
		Email:    email,
		Password: string(hash),
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, "", err
	}

	token, err := auth.IssueToken(s.secret, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %v", err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user with a fresh token.
// Unknown email and wrong password both map to ErrInvalidCredentials.
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err == repositories.ErrNotFound {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := auth.IssueToken(s.secret, user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %v", err)
	}
	return user, token, nil
}

// GetUser retrieves a user by ID
func (s *AuthService) GetUser(id int) (*models.User, error) {
	return s.userRepo.GetByID(id)
}
