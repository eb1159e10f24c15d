package controllers

import (
	"encoding/json"
	"net/http"

	"blogify/app/middleware"
	"blogify/app/models"
	"blogify/app/repositories"
	"blogify/app/services"
)

// AuthController handles HTTP requests for registration, login and identity
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=30"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func tokenResponse(user *models.User, token string) map[string]interface{} {
	return map[string]interface{}{
		"id":     user.ID,
		"name":   user.Username,
		"email":  user.Email,
		"avatar": user.Avatar,
		"token":  token,
	}
}

// Register handles new account creation
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, token, err := ac.authService.Register(req.Username, req.Email, req.Password)
	if err == repositories.ErrDuplicate {
		respondError(w, http.StatusConflict, "User already exists")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Registration failed")
		return
	}

	respondJSON(w, http.StatusCreated, tokenResponse(user, token))
}

// Login handles credential verification and token issuance
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	user, token, err := ac.authService.Login(req.Email, req.Password)
	if err == services.ErrInvalidCredentials {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	respondJSON(w, http.StatusOK, tokenResponse(user, token))
}

// Me returns the authenticated user's profile
func (ac *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	user, err := ac.authService.GetUser(userID)
	if err == repositories.ErrNotFound {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data": map[string]interface{}{
			"id":        user.ID,
			"name":      user.Username,
			"email":     user.Email,
			"avatar":    user.Avatar,
			"followers": user.Followers,
			"following": user.Following,
		},
	})
}
