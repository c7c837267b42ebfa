package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"markestedt/textshortcut/storage"
)

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func isLoopbackOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	switch u.Hostname() {
	case "localhost", "127.0.0.1", "::1":
		return true
	}
	return false
}

// historyEnabled writes 404 and returns false when there is no database
func (s *Server) historyEnabled(w http.ResponseWriter) bool {
	if s.db == nil {
		http.Error(w, "History is disabled", http.StatusNotFound)
		return false
	}
	return true
}

// queryInt reads a positive integer query parameter
func queryInt(r *http.Request, name string, def, floor int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= floor {
			return n
		}
	}
	return def
}

// handleStatus returns the current agent status
func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, s.status())
}

// handleGetHistory returns paginated insertion history
func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	if !s.historyEnabled(w) {
		return
	}

	limit := queryInt(r, "limit", 50, 1)
	offset := queryInt(r, "offset", 0, 0)

	insertions, err := s.db.GetInsertions(limit, offset)
	if err != nil {
		slog.Error("Failed to get insertions", "error", err)
		http.Error(w, "Failed to get history", http.StatusInternalServerError)
		return
	}
	if insertions == nil {
		insertions = []storage.Insertion{}
	}

	total, err := s.db.GetInsertionCount()
	if err != nil {
		slog.Error("Failed to get insertion count", "error", err)
		http.Error(w, "Failed to get history", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]any{
		"insertions": insertions,
		"total":      total,
		"limit":      limit,
		"offset":     offset,
	})
}

// handleDeleteHistory deletes an insertion by ID
func (s *Server) handleDeleteHistory(w http.ResponseWriter, r *http.Request) {
	if !s.historyEnabled(w) {
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, "Invalid ID", http.StatusBadRequest)
		return
	}

	if err := s.db.DeleteInsertion(id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "Insertion not found", http.StatusNotFound)
			return
		}
		slog.Error("Failed to delete insertion", "error", err, "id", id)
		http.Error(w, "Failed to delete insertion", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"status": "success"})
}

// handleStats returns statistics for the last ?days= days (default 7)
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	if !s.historyEnabled(w) {
		return
	}

	days := queryInt(r, "days", 7, 1)

	overall, err := s.db.GetOverallStats(days)
	if err != nil {
		slog.Error("Failed to get overall stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}

	daily, err := s.db.GetDailyStats(days)
	if err != nil {
		slog.Error("Failed to get daily stats", "error", err)
		http.Error(w, "Failed to get statistics", http.StatusInternalServerError)
		return
	}
	if daily == nil {
		daily = []storage.DailyStats{}
	}

	writeJSON(w, map[string]any{
		"days":    days,
		"overall": overall,
		"daily":   daily,
	})
}
