package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/fdg312/run-coach/internal/ai"
	"github.com/fdg312/run-coach/internal/blob"
	"github.com/fdg312/run-coach/internal/coach"
	"github.com/fdg312/run-coach/internal/config"
	"github.com/fdg312/run-coach/internal/reports"
	"github.com/fdg312/run-coach/internal/storage"
	"github.com/fdg312/run-coach/internal/storage/memory"
	"github.com/fdg312/run-coach/internal/storage/postgres"
	"github.com/fdg312/run-coach/internal/workouts"
)

// Server wires config, storage and the feature handlers into one ServeMux.
type Server struct {
	config  *config.Config
	mux     *http.ServeMux
	storage storage.Storage
}

func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	s.initStorage()
	s.routes()
	return s
}

// initStorage picks Postgres when DATABASE_URL is set, in-memory otherwise.
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("INFO storage: using in-memory storage (no DATABASE_URL)")
		s.storage = memory.New()
		return
	}

	log.Println("INFO storage: connecting to PostgreSQL...")
	pgStorage, err := postgres.New(context.Background(), s.config.DatabaseURL)
	if err != nil {
		log.Printf("WARN storage: PostgreSQL connection failed: %v", err)
		log.Println("WARN storage: falling back to in-memory storage")
		s.storage = memory.New()
		return
	}

	log.Println("INFO storage: PostgreSQL connected")
	s.storage = pgStorage
}

func (s *Server) routes() {
	// Health check
	s.mux.HandleFunc("GET /healthz", s.handleHealthz)

	// Coach chat API
	aiProvider := ai.NewProvider(s.config)
	coachService := coach.NewService(aiProvider)
	coachHandler := coach.NewHandler(coachService)

	// POST /v1/chat - conversational coach endpoint
	s.mux.HandleFunc("POST /v1/chat", coachHandler.HandleChat)

	// Workouts API
	workoutsService := workouts.NewService(s.storage)
	workoutsHandler := workouts.NewHandler(workoutsService)

	// POST /v1/runs/sync - batch upsert of runs
	s.mux.HandleFunc("POST /v1/runs/sync", workoutsHandler.HandleSyncRuns)

	// GET /v1/stats/snapshot - aggregated stats for a period
	s.mux.HandleFunc("GET /v1/stats/snapshot", workoutsHandler.HandleSnapshot)

	// Reports API
	reportsBlobStore := s.initBlobStore()
	reportsService := reports.NewService(
		s.storage,
		s.storage,
		reportsBlobStore,
		s.config.ReportsMaxRangeDays,
		s.config.Blob.S3.PresignTTLSeconds,
		s.config.Blob.S3.PublicBaseURL,
		s.config.Blob.S3.PreferPublicURL,
	)
	reportsHandler := reports.NewHandlers(reportsService)

	// POST /v1/reports - create report
	s.mux.HandleFunc("POST /v1/reports", reportsHandler.HandleCreate)

	// GET /v1/reports - list reports
	s.mux.HandleFunc("GET /v1/reports", reportsHandler.HandleList)

	// GET /v1/reports/{id}/download - download report
	s.mux.HandleFunc("GET /v1/reports/{id}/download", reportsHandler.HandleDownload)

	// DELETE /v1/reports/{id} - delete report
	s.mux.HandleFunc("DELETE /v1/reports/{id}", reportsHandler.HandleDelete)
}

// initBlobStore initializes the blob store for generated reports.
// Mode local means reports are stored inline in the reports table.
func (s *Server) initBlobStore() blob.Store {
	log.Printf("INFO blob: initializing reports store (BLOB_MODE=%s)", s.config.Blob.Mode)
	store, mode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("FATAL blob: failed to initialize reports store: %v", err)
	}
	log.Printf("INFO blob: reports blob mode: %s", mode)
	return store
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Start runs the HTTP server with the middleware chain
// (outermost first): CORS, rate limit, router.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	var handler http.Handler = s.mux
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)

	log.Printf("INFO server: listening on http://localhost%s", addr)
	log.Printf("INFO server: health check at http://localhost%s/healthz", addr)

	return http.ListenAndServe(addr, handler)
}

// Close releases the storage resources.
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
