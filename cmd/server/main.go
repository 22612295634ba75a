// Package main provides a local HTTP server for development and testing.
// It exposes the analytics endpoints consumed by the dashboard frontend and
// a direct rent-roll upload endpoint that bypasses S3.
package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/rs/cors"

	"portfolio-analytics-engine/internal/config"
	"portfolio-analytics-engine/internal/services/analytics"
	"portfolio-analytics-engine/internal/services/database"
	"portfolio-analytics-engine/internal/services/rentadvisor"
	"portfolio-analytics-engine/internal/utils"
)

// Server holds all dependencies
type Server struct {
	db           *database.DB
	rentRollRepo *database.RentRollRepository
	analytics    *analytics.Service
	config       *config.Config
}

// Response represents a standard API response
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// UploadResponse contains rent-roll upload processing results
type UploadResponse struct {
	BatchID      string   `json:"batch_id"`
	TotalRows    int      `json:"total_rows"`
	ValidRows    int      `json:"valid_rows"`
	Inserted     int      `json:"inserted"`
	Failed       int      `json:"failed"`
	Errors       []string `json:"errors,omitempty"`
	ProcessingMs int64    `json:"processing_ms"`
}

func main() {
	// Initialize logger first
	if err := utils.InitLogger("info"); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer utils.Sync()

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Warning: Could not load config from environment: %v", err)
		cfg = &config.Config{}
	}

	// Initialize database
	db, err := database.New(cfg)
	if err != nil {
		log.Printf("Warning: Could not connect to database: %v", err)
		log.Println("Server will run in demo mode without database")
	}

	server := &Server{
		db:     db,
		config: cfg,
	}

	if db != nil {
		server.rentRollRepo = database.NewRentRollRepository(db)
		server.analytics = analytics.NewService(
			database.NewSnapshotRepository(db),
			rentadvisor.NewClient(cfg),
		)
	}

	// Setup routes
	mux := http.NewServeMux()

	// Health check
	mux.HandleFunc("/health", server.healthHandler)
	mux.HandleFunc("/api/health", server.healthHandler)

	// Analytics endpoints
	mux.HandleFunc("/api/portfolio/health", server.portfolioHealthHandler)
	mux.HandleFunc("/api/tenants/risk", server.tenantRiskHandler)
	mux.HandleFunc("/api/renewals", server.renewalsHandler)
	mux.HandleFunc("/api/dashboard", server.dashboardHandler)

	// Direct rent-roll upload (for local testing without S3)
	mux.HandleFunc("/api/rentroll/upload", server.uploadHandler)

	// Setup CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	handler := c.Handler(mux)

	port := getEnvOrDefault("PORT", "8080")
	addr := fmt.Sprintf("0.0.0.0:%s", port)

	log.Printf("Portfolio Analytics Engine API Server")
	log.Printf("Listening on http://localhost:%s", port)
	log.Printf("Health: http://localhost:%s/health", port)
	log.Println("")

	// Start server (this blocks until error)
	log.Printf("Starting HTTP server on %s...", addr)
	if serverErr := http.ListenAndServe(addr, handler); serverErr != nil {
		log.Fatalf("Server failed: %v", serverErr)
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	dbStatus := "disconnected"
	if s.db != nil {
		if err := s.db.HealthCheck(r.Context()); err == nil {
			dbStatus = "connected"
		}
	}

	response := Response{
		Success: true,
		Message: "Portfolio Analytics Engine API is running",
		Data: map[string]interface{}{
			"status":    "healthy",
			"database":  dbStatus,
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   "1.0.0",
		},
	}

	writeJSON(w, http.StatusOK, response)
}

// parseOrgID extracts and validates the org_id query parameter.
func parseOrgID(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("org_id")
	if raw == "" {
		return 0, fmt.Errorf("missing required parameter: org_id")
	}
	orgID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || orgID <= 0 {
		return 0, fmt.Errorf("invalid org_id: %q", raw)
	}
	return orgID, nil
}

// parseAsOf reads the optional as_of date parameter, defaulting to the
// current UTC date. Explicit dates keep scorer output reproducible.
func parseAsOf(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("as_of")
	if raw == "" {
		return time.Now().UTC(), nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid as_of date: %q", raw)
	}
	return t.UTC(), nil
}

func (s *Server) portfolioHealthHandler(w http.ResponseWriter, r *http.Request) {
	if !s.requireAnalytics(w) {
		return
	}

	orgID, err := parseOrgID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	today, err := parseAsOf(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	health, err := s.analytics.PortfolioHealth(r.Context(), orgID, today)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: health})
}

func (s *Server) tenantRiskHandler(w http.ResponseWriter, r *http.Request) {
	if !s.requireAnalytics(w) {
		return
	}

	orgID, err := parseOrgID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	today, err := parseAsOf(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	report, err := s.analytics.TenantRiskScores(r.Context(), orgID, today)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: report})
}

func (s *Server) renewalsHandler(w http.ResponseWriter, r *http.Request) {
	if !s.requireAnalytics(w) {
		return
	}

	orgID, err := parseOrgID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	today, err := parseAsOf(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	horizon := s.config.RenewalHorizonDays
	if raw := r.URL.Query().Get("horizon_days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			horizon = parsed
		}
	}

	opportunities, err := s.analytics.RenewalOpportunities(r.Context(), orgID, today, horizon)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: opportunities})
}

func (s *Server) dashboardHandler(w http.ResponseWriter, r *http.Request) {
	if !s.requireAnalytics(w) {
		return
	}

	orgID, err := parseOrgID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	today, err := parseAsOf(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Success: false, Error: err.Error()})
		return
	}

	horizon := s.config.RenewalHorizonDays
	if raw := r.URL.Query().Get("horizon_days"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			horizon = parsed
		}
	}

	dashboard, err := s.analytics.Dashboard(r.Context(), orgID, today, horizon)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, Response{Success: false, Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, Response{Success: true, Data: dashboard})
}

func (s *Server) uploadHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if s.rentRollRepo == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Database not available",
		})
		return
	}

	startTime := time.Now()

	if err := r.ParseMultipartForm(10 << 20); err != nil { // 10MB max
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Failed to parse form: " + err.Error(),
		})
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "No file provided",
		})
		return
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Failed to read file: " + err.Error(),
		})
		return
	}

	batchID := uuid.New().String()

	parser := utils.NewCSVParser()
	entries, parseErrors := parser.ParseScheduleEntries(string(content), batchID)

	if len(entries) == 0 {
		errMsgs := make([]string, 0, len(parseErrors))
		for _, e := range parseErrors {
			errMsgs = append(errMsgs, e.Error())
		}
		writeJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "No valid schedule rows found in CSV",
			Data:    errMsgs,
		})
		return
	}

	result, err := s.rentRollRepo.BulkInsert(r.Context(), entries)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to insert schedule rows: " + err.Error(),
		})
		return
	}

	errMsgs := make([]string, 0)
	for _, e := range parseErrors {
		errMsgs = append(errMsgs, e.Error())
	}
	errMsgs = append(errMsgs, result.Errors...)
	if len(errMsgs) > 10 {
		errMsgs = errMsgs[:10]
	}

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Rent-roll processed",
		Data: UploadResponse{
			BatchID:      batchID,
			TotalRows:    len(entries) + len(parseErrors),
			ValidRows:    len(entries),
			Inserted:     result.InsertedCount,
			Failed:       result.FailedCount + len(parseErrors),
			Errors:       errMsgs,
			ProcessingMs: time.Since(startTime).Milliseconds(),
		},
	})
}

// requireAnalytics writes a 503 when the analytics service is unavailable.
func (s *Server) requireAnalytics(w http.ResponseWriter) bool {
	if s.analytics == nil {
		writeJSON(w, http.StatusServiceUnavailable, Response{
			Success: false,
			Error:   "Database not available",
		})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
