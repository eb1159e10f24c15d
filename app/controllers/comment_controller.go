package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"blogify/app/middleware"
	"blogify/app/repositories"
	"blogify/app/services"

	"github.com/gorilla/mux"
)

// CommentController handles HTTP requests for comments
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

type createCommentRequest struct {
	Text     string `json:"text" validate:"required,min=1,max=1000"`
	Post     int    `json:"post" validate:"required,gt=0"`
	ParentID *int   `json:"parentId" validate:"omitempty,gt=0"`
}

// Create handles adding a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	comment, err := cc.commentService.AddComment(userID, req.Post, req.ParentID, req.Text)
	switch {
	case err == repositories.ErrNotFound:
		respondError(w, http.StatusNotFound, "Post or parent comment not found")
	case err == services.ErrParentMismatch:
		respondError(w, http.StatusBadRequest, "Parent comment belongs to a different post")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Error adding comment")
	default:
		respondJSON(w, http.StatusCreated, map[string]interface{}{
			"message": "Comment added successfully",
			"data":    comment,
		})
	}
}

// ListByPost handles fetching a post's comments as a nested tree
func (cc *CommentController) ListByPost(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(mux.Vars(r)["postId"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID format")
		return
	}

	tree, count, err := cc.commentService.CommentsForPost(postID)
	switch {
	case err == repositories.ErrNotFound:
		respondError(w, http.StatusNotFound, "Post not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Error fetching comments")
	default:
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"count": count,
			"data":  tree,
		})
	}
}

// Delete handles removing the caller's own comment
func (cc *CommentController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	commentID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid comment ID")
		return
	}

	err = cc.commentService.DeleteComment(userID, commentID)
	switch {
	case err == repositories.ErrNotFound:
		respondError(w, http.StatusNotFound, "Comment not found")
	case err == services.ErrForbidden:
		respondError(w, http.StatusForbidden, "Not authorized to delete this comment")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Error deleting comment")
	default:
		respondJSON(w, http.StatusOK, map[string]string{
			"message": "Comment deleted successfully",
		})
	}
}
