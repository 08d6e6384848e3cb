package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"medirag/internal/config"
)

// Answerer is the question-answering surface the server delegates to;
// satisfied by qa.Composer.
type Answerer interface {
	Answer(ctx context.Context, question string) (string, error)
}

// Server holds everything the handlers need. Dependencies are injected at
// construction; there is no process-global state.
type Server struct {
	cfg      config.Config
	table    *Table
	composer Answerer
}

func NewServer(cfg config.Config, table *Table, composer Answerer) *Server {
	return &Server{cfg: cfg, table: table, composer: composer}
}

func (s *Server) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleRoot)
	mux.HandleFunc("/api/qa", s.handleQA)
	mux.HandleFunc("/api/professors", s.handleProfessors)
	mux.HandleFunc("/api/professors/", s.handleProfessorByID)
	return withCORS(mux)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		writeErr(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "서버가 정상적으로 실행 중입니다!"})
}

func (s *Server) handleQA(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Question string `json:"question"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErr(w, http.StatusBadRequest, "invalid json")
		return
	}
	req.Question = strings.TrimSpace(req.Question)
	if req.Question == "" {
		writeErr(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := s.composer.Answer(r.Context(), req.Question)
	if err != nil {
		log.Printf("api: qa failed: %v", err)
		writeErr(w, http.StatusInternalServerError, fmt.Sprintf("Error processing question: %v", err))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"answer": answer})
}

func (s *Server) handleProfessors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	query := r.URL.Query().Get("query")
	rows := s.table.Rows()
	if query != "" {
		rows = s.table.FilterByQuery(query)
		log.Printf("api: query %q matched %d of %d professors", query, len(rows), s.table.Len())
	}
	writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handleProfessorByID(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeErr(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	raw := strings.Trim(strings.TrimPrefix(r.URL.Path, "/api/professors/"), "/")
	id, err := strconv.Atoi(raw)
	if err != nil {
		writeErr(w, http.StatusBadRequest, fmt.Sprintf("invalid professor id %q", raw))
		return
	}
	row, ok := s.table.ByID(id)
	if !ok {
		writeErr(w, http.StatusNotFound, "교수를 찾을 수 없습니다.")
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, detail string) {
	writeJSON(w, code, map[string]any{"detail": detail})
}

func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
