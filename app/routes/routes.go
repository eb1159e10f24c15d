package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"blogify/app/controllers"
	"blogify/app/middleware"
	"blogify/app/repositories"
	"blogify/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// Config carries the runtime settings the router needs.
type Config struct {
	JWTSecret []byte
	UploadDir string
}

// SetupRoutes wires repositories, services and controllers over the given
// Badger DB and returns the application's router.
func SetupRoutes(db *badger.DB, cfg Config) *mux.Router {
	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	userRepo := repositories.NewBadgerUserRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)

	limiter := services.NewLikeLimiter(services.DefaultLikeCooldown)
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	postService := services.NewPostService(postRepo, userRepo, limiter)
	commentService := services.NewCommentService(commentRepo, postRepo, userRepo)

	authController := controllers.NewAuthController(authService)
	postController := controllers.NewPostController(postService, cfg.UploadDir)
	commentController := controllers.NewCommentController(commentService)

	protect := middleware.Protect(cfg.JWTSecret)

	// Serve uploaded cover images
	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.UploadDir))))

	// JSON 404 for unmatched API paths
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "Not found"})
			return
		}
		http.NotFound(w, r)
	})

	// API routes with JSON content type
	api := router.PathPrefix("/api").Subrouter()
	api.Use(middleware.ContentTypeJSON)

	// Auth endpoints
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/register", authController.Register).Methods("POST")
	authRoutes.HandleFunc("/login", authController.Login).Methods("POST")
	authRoutes.Handle("/me", protect(http.HandlerFunc(authController.Me))).Methods("GET")

	// Post endpoints. Fixed paths are registered before the identifier
	// catch-all so "featured" is never read as a slug.
	posts := api.PathPrefix("/post").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("/featured", postController.Featured).Methods("GET")
	posts.HandleFunc("/popular", postController.Popular).Methods("GET")
	posts.Handle("/my/posts", protect(http.HandlerFunc(postController.MyPosts))).Methods("GET")
	posts.Handle("", protect(http.HandlerFunc(postController.Create))).Methods("POST")
	posts.Handle("/{id:[0-9]+}/like", protect(http.HandlerFunc(postController.Like))).Methods("PUT")
	posts.Handle("/{id:[0-9]+}", protect(http.HandlerFunc(postController.Update))).Methods("PUT")
	posts.Handle("/{id:[0-9]+}", protect(http.HandlerFunc(postController.Delete))).Methods("DELETE")
	posts.HandleFunc("/{identifier}", postController.Show).Methods("GET")

	// Comment endpoints
	comments := api.PathPrefix("/comments").Subrouter()
	comments.Handle("", protect(http.HandlerFunc(commentController.Create))).Methods("POST")
	comments.HandleFunc("/post/{postId:[0-9]+}", commentController.ListByPost).Methods("GET")
	comments.Handle("/{id:[0-9]+}", protect(http.HandlerFunc(commentController.Delete))).Methods("DELETE")

	return router
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
