package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/artified/mosaic/internal/data/archive"
	"github.com/artified/mosaic/internal/presentation/formatter"
	"github.com/artified/mosaic/internal/util"
)

var artifactNamePattern = regexp.MustCompile(`^timeline_(\d{4}-\d{2}-\d{2})\.json(\.zst)?$`)

// Server exposes generated timeline artifacts over a read-only HTTP API.
type Server struct {
	outputDir string
	router    *mux.Router
	server    *http.Server
	startTime time.Time
}

type apiResponse struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Message   string      `json:"message,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// TimelineEntry describes one artifact available in the output directory.
type TimelineEntry struct {
	Date     string `json:"date"`
	Archived bool   `json:"archived"`
	Path     string `json:"path"`
}

// NewServer builds a server publishing artifacts from outputDir on addr.
func NewServer(addr, outputDir string) *Server {
	s := &Server{
		outputDir: outputDir,
		router:    mux.NewRouter(),
		startTime: time.Now(),
	}
	s.setupRoutes()

	c := cors.New(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})

	s.server = &http.Server{
		Addr:         addr,
		Handler:      c.Handler(s.router),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(s.loggingMiddleware)

	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/health", s.healthHandler).Methods("GET")
	api.HandleFunc("/timelines", s.listTimelinesHandler).Methods("GET")
	api.HandleFunc("/timelines/{date}", s.getTimelineHandler).Methods("GET")
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		util.LogDebugf("%s %s %s %v", r.Method, r.RequestURI, r.RemoteAddr, time.Since(start))
	})
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeSuccess(w, map[string]interface{}{
		"status":         "healthy",
		"uptime_seconds": time.Since(s.startTime).Seconds(),
		"output_dir":     s.outputDir,
	})
}

func (s *Server) listTimelinesHandler(w http.ResponseWriter, r *http.Request) {
	entries, err := s.listArtifacts()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to list artifacts: %v", err))
		return
	}
	s.writeSuccess(w, entries)
}

func (s *Server) getTimelineHandler(w http.ResponseWriter, r *http.Request) {
	date := mux.Vars(r)["date"]
	if _, err := time.Parse("2006-01-02", date); err != nil {
		s.writeError(w, http.StatusBadRequest, "date must be formatted as YYYY-MM-DD")
		return
	}

	name := formatter.ArtifactFilename(date)
	data, err := os.ReadFile(filepath.Join(s.outputDir, name))
	if errors.Is(err, os.ErrNotExist) {
		data, err = archive.Read(archive.Path(name, s.outputDir))
	}
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			s.writeError(w, http.StatusNotFound, fmt.Sprintf("no timeline for %s", date))
			return
		}
		s.writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to read artifact: %v", err))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) listArtifacts() ([]TimelineEntry, error) {
	dirEntries, err := os.ReadDir(s.outputDir)
	if os.IsNotExist(err) {
		return []TimelineEntry{}, nil
	}
	if err != nil {
		return nil, err
	}

	entries := make([]TimelineEntry, 0, len(dirEntries))
	seen := make(map[string]bool)
	for _, e := range dirEntries {
		if e.IsDir() {
			continue
		}
		m := artifactNamePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		date := m[1]
		archived := strings.HasSuffix(e.Name(), ".zst")
		// A plain artifact wins over its archived twin.
		if seen[date] && archived {
			continue
		}
		if seen[date] {
			for i := range entries {
				if entries[i].Date == date {
					entries[i].Archived = false
					entries[i].Path = e.Name()
				}
			}
			continue
		}
		seen[date] = true
		entries = append(entries, TimelineEntry{Date: date, Archived: archived, Path: e.Name()})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })
	return entries, nil
}

func (s *Server) writeSuccess(w http.ResponseWriter, data interface{}) {
	s.writeJSON(w, http.StatusOK, apiResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, apiResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	body, err := sonic.Marshal(payload)
	if err != nil {
		http.Error(w, "encoding failure", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start blocks serving requests until the listener fails or is shut down.
func (s *Server) Start() error {
	util.LogInfof("Serving timelines from %s on %s", s.outputDir, s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
