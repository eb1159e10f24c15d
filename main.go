package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"blogify/app/routes"

	"github.com/dgraph-io/badger/v4"
	"github.com/joho/godotenv"
)

const cliVersion = "1.0.0"

func main() {
	cmd := "serve"
	if len(os.Args) > 1 {
		cmd = strings.ToLower(os.Args[1])
	}

	switch cmd {
	case "help":
		printHelp()
	case "version":
		fmt.Printf("blogify version %s\n", cliVersion)
	case "serve":
		serve()
	default:
		fmt.Printf("Unknown command: %s\n\n", os.Args[1])
		printHelp()
		os.Exit(1)
	}
}

func printHelp() {
	helpText := `Usage: blogify <command>

Commands:
  help      Display this help message.
  version   Show version information.
  serve     Run the blog API server (default).

Environment:
  PORT        Listen port (default 8080).
  DB_PATH     Badger data directory (default data/badger).
  JWT_SECRET  Token signing secret (required).
  UPLOAD_DIR  Directory for uploaded images (default data/uploads).
`
	fmt.Println(helpText)
}

func serve() {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	dbPath := envOr("DB_PATH", "data/badger")
	uploadDir := envOr("UPLOAD_DIR", "data/uploads")
	port := envOr("PORT", "8080")

	opts := badger.DefaultOptions(dbPath).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		log.Fatalf("Failed to open Badger DB: %v", err)
	}
	defer db.Close()

	router := routes.SetupRoutes(db, routes.Config{
		JWTSecret: []byte(secret),
		UploadDir: uploadDir,
	})

	log.Printf("Starting blog API on port %s", port)
	if err := routes.StartServer(":"+port, router); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func envOr(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}
