package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/advisor-labs/readiness/internal/types"
	"github.com/advisor-labs/readiness/pkg/pipeline"
	"github.com/advisor-labs/readiness/pkg/report"
)

const maxUploadBytes = 64 << 20 // 64 MiB per request

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Be careful with this in production
	},
}

type Config struct {
	Port   string
	APIKey string
}

// Server exposes the assessment pipeline over HTTP: multipart upload,
// status polling, report export, and a websocket progress feed.
type Server struct {
	config   Config
	pipeline *pipeline.Pipeline
	status   *pipeline.StatusStore
	index    types.Index
}

func New(config Config, p *pipeline.Pipeline, status *pipeline.StatusStore, idx types.Index) *Server {
	return &Server{
		config:   config,
		pipeline: p,
		status:   status,
		index:    idx,
	}
}

// Handler builds the route table.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /v1/assessments", s.requireKey(s.handleUpload))
	mux.HandleFunc("GET /v1/assessments/{id}", s.requireKey(s.handleStatus))
	mux.HandleFunc("GET /v1/assessments/{id}/report", s.requireKey(s.handleReportJSON))
	mux.HandleFunc("GET /v1/assessments/{id}/report.txt", s.requireKey(s.handleReportText))
	mux.HandleFunc("DELETE /v1/assessments/{id}", s.requireKey(s.handleDelete))
	mux.HandleFunc("GET /v1/assessments/{id}/watch", s.handleWatch)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return mux
}

// ListenAndServe blocks serving the API.
func (s *Server) ListenAndServe() error {
	addr := ":" + s.config.Port
	log.Printf("starting assessment API on %s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *Server) requireKey(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.config.APIKey != "" && r.Header.Get("X-API-Key") != s.config.APIKey {
			writeError(w, http.StatusForbidden, "invalid or missing API key")
			return
		}
		next(w, r)
	}
}

type uploadResponse struct {
	SessionID     string   `json:"session_id"`
	Status        string   `json:"status"`
	FilesReceived []string `json:"files_received"`
}

func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid multipart request: %v", err))
		return
	}

	orgName := r.FormValue("organisation_name")
	if orgName == "" {
		orgName = "Enterprise Client"
	}
	additionalContext := r.FormValue("additional_context")

	var files []pipeline.InputFile
	var names []string
	for _, header := range r.MultipartForm.File["files"] {
		f, err := header.Open()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("cannot read %s: %v", header.Filename, err))
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("cannot read %s: %v", header.Filename, err))
			return
		}
		files = append(files, pipeline.InputFile{Name: header.Filename, Data: data})
		names = append(names, header.Filename)
	}
	if len(files) == 0 {
		writeError(w, http.StatusBadRequest, "no files uploaded")
		return
	}

	sessionID := pipeline.NewSessionID()
	s.status.Create(sessionID)

	// The assessment runs as a background unit of work; callers poll.
	go func() {
		if _, err := s.pipeline.Run(context.Background(), sessionID, orgName, additionalContext, files); err != nil {
			log.Printf("assessment %s failed: %v", sessionID, err)
		}
	}()

	writeJSON(w, http.StatusOK, uploadResponse{
		SessionID:     sessionID,
		Status:        "processing",
		FilesReceived: names,
	})
}

type statusResponse struct {
	SessionID   string `json:"session_id"`
	Status      string `json:"status"`
	ProgressPct int    `json:"progress_pct"`
	CurrentStep string `json:"current_step"`
	Error       string `json:"error,omitempty"`
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	status, ok := s.status.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		SessionID:   status.SessionID,
		Status:      status.PublicStatus(),
		ProgressPct: status.Progress,
		CurrentStep: status.Step,
		Error:       status.Error,
	})
}

func (s *Server) handleReportJSON(w http.ResponseWriter, r *http.Request) {
	status, ok := s.status.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	if status.Report == nil {
		writeError(w, http.StatusConflict, "report not ready")
		return
	}
	writeJSON(w, http.StatusOK, status.Report)
}

func (s *Server) handleReportText(w http.ResponseWriter, r *http.Request) {
	status, ok := s.status.Get(r.PathValue("id"))
	if !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}
	if status.Report == nil {
		writeError(w, http.StatusConflict, "report not ready")
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, report.RenderText(status.Report))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if _, ok := s.status.Get(sessionID); !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	if err := s.index.DeleteSession(r.Context(), sessionID); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("failed to reclaim session: %v", err))
		return
	}
	s.status.Delete(sessionID)
	w.WriteHeader(http.StatusNoContent)
}

// handleWatch streams status updates over a websocket until the session
// reaches a terminal state. A convenience over polling; the polling
// endpoint remains the contract.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if _, ok := s.status.Get(sessionID); !ok {
		writeError(w, http.StatusNotFound, "unknown session")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastProgress := -1
	for range ticker.C {
		status, ok := s.status.Get(sessionID)
		if !ok {
			return
		}
		if status.Progress != lastProgress || status.State == pipeline.StateComplete || status.State == pipeline.StateError {
			lastProgress = status.Progress
			if err := conn.WriteJSON(statusResponse{
				SessionID:   status.SessionID,
				Status:      status.PublicStatus(),
				ProgressPct: status.Progress,
				CurrentStep: status.Step,
				Error:       status.Error,
			}); err != nil {
				return
			}
		}
		if status.State == pipeline.StateComplete || status.State == pipeline.StateError {
			return
		}
	}
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("error writing response: %v", err)
	}
}

func writeError(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, map[string]string{"error": message})
}
