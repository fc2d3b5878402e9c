package server

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/ezbase/ezbase/pkg/api"
	"github.com/ezbase/ezbase/pkg/domain"
)

// Server holds the router and the storage engine behind it
type Server struct {
	router  *mux.Router
	engine  domain.StorageEngine
	handler *api.Handler
}

// NewServer assembles the HTTP server around an injected handler and
// engine. The engine is constructed in main and shared through the
// database registry, never created here.
func NewServer(engine domain.StorageEngine, handler *api.Handler) *Server {
	s := &Server{
		router:  mux.NewRouter(),
		engine:  engine,
		handler: handler,
	}

	s.handler.RegisterRoutes(s.router)

	// Use the logging middleware for all routes
	s.router.Use(requestLoggerMiddleware)

	// Customize NotFoundHandler to log 404s
	s.router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("WARN: No route found for %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	})

	return s
}

// requestLoggerMiddleware logs the method, URL path, and duration for each request.
func requestLoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)
		log.Printf("INFO: Request %s %s took %s", r.Method, r.URL.Path, elapsed)
	})
}

// InitDB loads persisted data from a file, if one exists
func (s *Server) InitDB(filename string) {
	if err := s.engine.LoadFromFile(filename); err != nil {
		log.Printf("ERROR: Could not load DB from file %s: %v", filename, err)
	} else {
		log.Printf("INFO: Loaded DB from file %s successfully", filename)
	}
}

// SaveDB saves the current database state to file
func (s *Server) SaveDB(filename string) {
	if err := s.engine.SaveToFile(filename); err != nil {
		log.Printf("ERROR: Could not save DB to file %s: %v", filename, err)
	} else {
		log.Printf("INFO: Saved DB to file %s successfully", filename)
	}
}

// Router exposes the internal mux.Router.
func (s *Server) Router() http.Handler {
	return s.router
}
