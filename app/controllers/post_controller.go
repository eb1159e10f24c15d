package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"blogify/app/middleware"
	"blogify/app/models"
	"blogify/app/repositories"
	"blogify/app/services"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const maxUploadBytes = 10 << 20

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
	uploadDir   string
}

// NewPostController creates a new PostController. Uploaded cover images are
// written under uploadDir and served at /uploads/.
func NewPostController(postService *services.PostService, uploadDir string) *PostController {
	return &PostController{
		postService: postService,
		uploadDir:   uploadDir,
	}
}

type createPostRequest struct {
	Title      string   `json:"title" validate:"required,min=5,max=200"`
	Content    string   `json:"content" validate:"required,min=10"`
	Tags       []string `json:"tags" validate:"max=10,dive,max=50"`
	Images     []string `json:"images" validate:"dive,uri"`
	CoverImage string   `json:"coverImage"`
	Status     string   `json:"status" validate:"omitempty,oneof=draft published archived"`
	Featured   bool     `json:"featured"`
}

type updatePostRequest struct {
	Title      *string  `json:"title" validate:"omitempty,min=5,max=200"`
	Content    *string  `json:"content" validate:"omitempty,min=10"`
	Tags       []string `json:"tags" validate:"omitempty,max=10,dive,max=50"`
	Images     []string `json:"images" validate:"omitempty,dive,uri"`
	CoverImage *string  `json:"coverImage"`
	Status     *string  `json:"status" validate:"omitempty,oneof=draft published archived"`
	Featured   *bool    `json:"featured"`
}

// Index handles listing posts with filtering and pagination
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	filter, err := parsePostFilter(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	posts, total, err := pc.postService.ListPosts(filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching posts")
		return
	}

	pc.respondPage(w, posts, total, filter.Page, filter.Limit)
}

// Show handles displaying a single post by numeric ID or slug
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	identifier := mux.Vars(r)["identifier"]

	post, err := pc.postService.GetPost(identifier)
	if err == repositories.ErrNotFound {
		respondError(w, http.StatusNotFound, "Post not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching post")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": post})
}

// Create handles creating a new post from a JSON body or a multipart form
// with an optional cover image
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req createPostRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := pc.parseMultipartPost(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
	} else {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
			return
		}
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	post := &models.Post{
		Title:      strings.TrimSpace(req.Title),
		Content:    strings.TrimSpace(req.Content),
		AuthorID:   userID,
		Tags:       req.Tags,
		Images:     req.Images,
		CoverImage: req.CoverImage,
		Status:     req.Status,
		Featured:   req.Featured,
	}
	if err := pc.postService.CreatePost(post); err != nil {
		respondError(w, http.StatusInternalServerError, "Error creating post")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Post created successfully",
		"data":    post,
	})
}

// Update handles editing the caller's own post
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	var req updatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	post, err := pc.postService.UpdatePost(userID, postID, services.UpdatePostInput{
		Title:      req.Title,
		Content:    req.Content,
		Tags:       req.Tags,
		Images:     req.Images,
		CoverImage: req.CoverImage,
		Status:     req.Status,
		Featured:   req.Featured,
	})
	switch {
	case err == repositories.ErrNotFound:
		respondError(w, http.StatusNotFound, "Post not found")
	case err == services.ErrForbidden:
		respondError(w, http.StatusForbidden, "Not authorized to update this post")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Error updating post")
	default:
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Post updated successfully",
			"data":    post,
		})
	}
}

// Delete handles soft-deleting the caller's own post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	err = pc.postService.DeletePost(userID, postID)
	switch {
	case err == repositories.ErrNotFound:
		respondError(w, http.StatusNotFound, "Post not found")
	case err == services.ErrForbidden:
		respondError(w, http.StatusForbidden, "Not authorized to delete this post")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Error deleting post")
	default:
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message": "Post deleted successfully",
			"data":    map[string]interface{}{},
		})
	}
}

// Like handles toggling the caller's like on a post
func (pc *PostController) Like(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	postID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid post ID")
		return
	}

	post, liked, err := pc.postService.ToggleLike(userID, postID)
	switch {
	case err == services.ErrRateLimited:
		respondError(w, http.StatusTooManyRequests, "Please wait before liking again")
	case err == repositories.ErrNotFound:
		respondError(w, http.StatusNotFound, "Post not found")
	case err != nil:
		respondError(w, http.StatusInternalServerError, "Error liking post")
	default:
		message := "Post unliked"
		if liked {
			message = "Post liked"
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"message":    message,
			"data":       post,
			"liked":      liked,
			"likesCount": post.LikesCount(),
		})
	}
}

// MyPosts handles listing the caller's own posts, drafts included
func (pc *PostController) MyPosts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)
	status := r.URL.Query().Get("status")
	if status != "" && !validStatus(status) {
		respondError(w, http.StatusBadRequest, "Invalid status filter")
		return
	}

	posts, total, err := pc.postService.MyPosts(userID, page, limit, status)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching your posts")
		return
	}

	pc.respondPage(w, posts, total, page, limit)
}

// Featured handles listing featured published posts
func (pc *PostController) Featured(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 5)

	posts, err := pc.postService.FeaturedPosts(limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching featured posts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(posts),
		"data":  posts,
	})
}

// Popular handles listing the most-liked published posts
func (pc *PostController) Popular(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 5)

	posts, err := pc.postService.PopularPosts(limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Error fetching popular posts")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(posts),
		"data":  posts,
	})
}

func (pc *PostController) respondPage(w http.ResponseWriter, posts []*models.Post, total, page, limit int) {
	if limit < 1 {
		limit = 10
	}
	totalPages := (total + limit - 1) / limit
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"count":       len(posts),
		"total":       total,
		"totalPages":  totalPages,
		"currentPage": page,
		"data":        posts,
	})
}

// parseMultipartPost reads post fields from a multipart form and stores the
// optional cover image on disk. A create that later fails leaves the stored
// file orphaned; that gap is accepted rather than compensated.
func (pc *PostController) parseMultipartPost(r *http.Request, req *createPostRequest) error {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return fmt.Errorf("failed to parse form: %v", err)
	}

	req.Title = r.FormValue("title")
	req.Content = r.FormValue("content")
	req.Status = r.FormValue("status")
	req.Featured = r.FormValue("featured") == "true"
	if tags := r.FormValue("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				req.Tags = append(req.Tags, tag)
			}
		}
	}

	file, header, err := r.FormFile("coverImage")
	if err == http.ErrMissingFile {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read cover image: %v", err)
	}
	defer file.Close()

	url, err := pc.saveUpload(file, header)
	if err != nil {
		return fmt.Errorf("failed to store cover image: %v", err)
	}
	req.CoverImage = url
	return nil
}

// saveUpload writes an uploaded file under the upload directory with a
// generated name and returns its public URL path.
func (pc *PostController) saveUpload(file multipart.File, header *multipart.FileHeader) (string, error) {
	if err := os.MkdirAll(pc.uploadDir, 0755); err != nil {
		return "", err
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(pc.uploadDir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return "/uploads/" + name, nil
}

// parsePostFilter builds a repository filter from list query parameters
func parsePostFilter(r *http.Request) (repositories.PostFilter, error) {
	q := r.URL.Query()
	filter := repositories.PostFilter{
		Page:   queryInt(r, "page", 1),
		Limit:  queryInt(r, "limit", 10),
		Search: q.Get("search"),
		Sort:   q.Get("sort"),
	}
	if filter.Page < 1 || filter.Limit < 1 || filter.Limit > 100 {
		return filter, fmt.Errorf("invalid pagination parameters")
	}

	if tags := q.Get("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				filter.Tags = append(filter.Tags, tag)
			}
		}
	}
	if author := q.Get("author"); author != "" {
		id, err := strconv.Atoi(author)
		if err != nil || id <= 0 {
			return filter, fmt.Errorf("invalid author ID format")
		}
		filter.AuthorID = id
	}
	if status := q.Get("status"); status != "" {
		if !validStatus(status) {
			return filter, fmt.Errorf("invalid status filter")
		}
		filter.Status = status
	}
	if featured := q.Get("featured"); featured != "" {
		value := featured == "true"
		filter.Featured = &value
	}
	if minLikes := q.Get("minLikes"); minLikes != "" {
		n, err := strconv.Atoi(minLikes)
		if err != nil || n < 0 {
			return filter, fmt.Errorf("invalid minLikes parameter")
		}
		filter.MinLikes = n
	}
	if start := q.Get("startDate"); start != "" {
		t, err := time.Parse(time.RFC3339, start)
		if err != nil {
			return filter, fmt.Errorf("invalid startDate parameter")
		}
		filter.StartDate = &t
	}
	if end := q.Get("endDate"); end != "" {
		t, err := time.Parse(time.RFC3339, end)
		if err != nil {
			return filter, fmt.Errorf("invalid endDate parameter")
		}
		filter.EndDate = &t
	}
	return filter, nil
}

func queryInt(r *http.Request, name string, fallback int) int {
	if raw := r.URL.Query().Get(name); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			return n
		}
	}
	return fallback
}

func validStatus(status string) bool {
	return status == models.StatusDraft || status == models.StatusPublished || status == models.StatusArchived
}
