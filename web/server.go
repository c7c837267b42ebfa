package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"markestedt/textshortcut/shortcut"
	"markestedt/textshortcut/storage"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Only pages served from this machine may subscribe
		origin := r.Header.Get("Origin")
		return origin == "" || isLoopbackOrigin(origin)
	},
}

// Status is the agent snapshot served by /api/status
type Status struct {
	Process     string `json:"process"`
	Accelerator string `json:"accelerator"`
	State       string `json:"state"`
	Method      string `json:"method"`
	History     bool   `json:"history"`
}

// Server exposes status, history and a live insertion feed on localhost
type Server struct {
	db     *storage.DB // nil when history is disabled
	status func() Status
	port   int
	hub    *Hub
}

// NewServer creates a new web server. db may be nil.
func NewServer(db *storage.DB, status func() Status, port int) *Server {
	return &Server{
		db:     db,
		status: status,
		port:   port,
		hub:    NewHub(),
	}
}

// Handler returns the HTTP routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/status", s.handleStatus)
	mux.HandleFunc("GET /api/history", s.handleGetHistory)
	mux.HandleFunc("DELETE /api/history/{id}", s.handleDeleteHistory)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

// URL returns the base address of the server
func (s *Server) URL() string {
	return fmt.Sprintf("http://localhost:%d", s.port)
}

// Start serves on 127.0.0.1 until ctx is cancelled
func (s *Server) Start(ctx context.Context) error {
	go s.hub.Run()
	defer s.hub.Stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf("127.0.0.1:%d", s.port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Warn("Web server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting web server", "port", s.port, "url", s.URL())

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("web server failed: %w", err)
	}
	return nil
}

// BroadcastStatus broadcasts a status update to all connected clients
func (s *Server) BroadcastStatus(state string) {
	s.hub.BroadcastMessage(Message{
		Type: MessageTypeStatus,
		Data: StatusMessage{Status: state},
	})
}

// BroadcastInsertion broadcasts an insertion to all connected clients
func (s *Server) BroadcastInsertion(ins shortcut.Insertion, id int64) {
	msg := InsertionMessage{
		ID:        id,
		Text:      ins.Text,
		Success:   ins.Err == nil,
		Timestamp: shortcut.FormatUTC(ins.At),
	}
	if ins.Err != nil {
		msg.Error = ins.Err.Error()
	}

	s.hub.BroadcastMessage(Message{Type: MessageTypeInsertion, Data: msg})
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade WebSocket connection", "error", err)
		return
	}

	client := &Client{
		hub:  s.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	// New subscribers get the current state before any broadcast
	if data, err := json.Marshal(Message{Type: MessageTypeStatus, Data: StatusMessage{Status: s.status().State}}); err == nil {
		client.send <- data
	}

	select {
	case s.hub.register <- client:
	case <-s.hub.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}
