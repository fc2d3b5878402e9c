package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ezbase/ezbase/pkg/api"
	"github.com/ezbase/ezbase/pkg/auth"
	"github.com/ezbase/ezbase/pkg/config"
	"github.com/ezbase/ezbase/pkg/cryptox"
	"github.com/ezbase/ezbase/pkg/database"
	"github.com/ezbase/ezbase/pkg/records"
	"github.com/ezbase/ezbase/pkg/server"
	"github.com/ezbase/ezbase/pkg/settings"
	"github.com/ezbase/ezbase/pkg/storage"
)

func main() {
	// Command line flags
	var (
		port           = flag.String("port", "", "Server port (overrides EZBASE_PORT)")
		dataFile       = flag.String("data-file", "", "Data file path for persistence (overrides EZBASE_DATA_FILE)")
		backgroundSave = flag.Duration("background-save", 0, "Background save interval (e.g., 5m, 30s). Set to 0 to save after every write.")
		showHelp       = flag.Bool("help", false, "Show help message")
	)

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nezbase is a backend-as-a-service: collection-oriented document storage\nwith admin/user authentication over HTTP.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                                  # Start with defaults\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090                       # Custom port\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -background-save 5m              # Batch saves every 5 minutes\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
		fmt.Fprintf(os.Stderr, "  USER_AUTH_KEY, CLIENT_ID, CLIENT_SECRET and EZBASE_* variables;\n")
		fmt.Fprintf(os.Stderr, "  a .env file in the working directory is loaded when present.\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}

	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *port != "" {
		cfg.Port = *port
	}
	if *dataFile != "" {
		cfg.DataFile = *dataFile
	}

	// Build storage options based on flags
	storageOptions := []storage.StorageOption{
		storage.WithDataFile(cfg.DataFile),
	}
	if *backgroundSave > 0 {
		storageOptions = append(storageOptions, storage.WithBackgroundSave(*backgroundSave))
		log.Printf("INFO: Background save enabled: every %v", *backgroundSave)
	}

	engine := storage.NewStorageEngine(storageOptions...)
	defer engine.StopBackgroundWorkers()

	// Wire the registry and services; everything shares the one engine
	db := database.New(engine)
	hasher := cryptox.NewHasher(cfg.BcryptCost, cfg.HashWorkers)
	defer hasher.Close()
	recordSvc := records.New(db, hasher)

	var google *auth.GoogleProvider
	if cfg.OAuthConfigured() {
		google = auth.NewGoogleProvider(cfg.GoogleClientID, cfg.GoogleClientSecret,
			cfg.OAuthRedirectURL, cfg.FrontendURL, cfg.OAuthTimeout)
		log.Printf("INFO: Google OAuth configured, redirect URL %s", cfg.OAuthRedirectURL)
	} else {
		log.Printf("WARN: Google OAuth not configured, OAuth endpoints will reject requests")
	}

	authSvc := auth.New(db, recordSvc, hasher, []byte(cfg.AuthSecret), cfg.TokenTTL, google)
	settingsSvc := settings.New(db)
	handler := api.NewHandler(authSvc, recordSvc, settingsSvc, db)

	srv := server.NewServer(engine, handler)

	// Initialize database from file
	log.Printf("INFO: Loading data from: %s", cfg.DataFile)
	srv.InitDB(cfg.DataFile)
	engine.StartBackgroundWorkers()

	// Create HTTP server
	httpServer := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: srv.Router(),
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting ezbase server on :%s", cfg.Port)
		log.Printf("API endpoints available at http://localhost:%s/api", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Save database before shutdown
	log.Printf("INFO: Saving data to: %s", cfg.DataFile)
	srv.SaveDB(cfg.DataFile)

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
