package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/delorenj/claude-notifications/internal/colors"
)

// SoundPlayer is the slice of the sound dispatcher the server needs.
type SoundPlayer interface {
	Play(overrideType string, bellFlag bool)
}

// Server is the relay listener: it accepts sound-play requests and plays
// them through the local sound dispatcher. Requests are independent and
// stateless; there is no cross-request coordination.
type Server struct {
	player SoundPlayer
	once   bool

	mu        sync.Mutex
	srv       *http.Server
	done      chan struct{}
	closeOnce sync.Once
}

// NewServer creates a relay server. When once is true the server handles
// exactly one valid notification and then shuts down.
func NewServer(player SoundPlayer, once bool) *Server {
	return &Server{
		player: player,
		once:   once,
		done:   make(chan struct{}),
	}
}

// Handler returns the HTTP handler serving the relay contract:
// POST /play with a JSON Message body. 204 on success, 400 on malformed
// JSON, 404 on any other method or path. Oversized bodies are aborted
// before full buffering.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(PlayPath, s.handlePlay)
	return mux
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	var msg Message
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			http.Error(w, "request body too large", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "malformed JSON body", http.StatusBadRequest)
		return
	}

	colors.Debug(fmt.Sprintf("relay request from %s: sound=%s source=%s", r.RemoteAddr, msg.SoundType, msg.Source))
	s.player.Play(msg.SoundType, false)
	w.WriteHeader(http.StatusNoContent)

	if s.once {
		// Served the single notification this listener exists for.
		go s.Shutdown()
	}
}

// Listen binds the relay listener and serves until Shutdown is called.
// It handles one connection at a time's worth of work per request; each
// request is independent.
func (s *Server) Listen(host string, port int) error {
	addr := net.JoinHostPort(host, fmt.Sprintf("%d", port))
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("bind relay listener on %s: %w", addr, err)
	}

	s.mu.Lock()
	s.srv = &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	}
	srv := s.srv
	s.mu.Unlock()

	colors.Info(fmt.Sprintf("relay listening on http://%s%s", addr, PlayPath))
	if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("relay listener: %w", err)
	}
	<-s.done
	return nil
}

// Shutdown stops the listener gracefully.
func (s *Server) Shutdown() {
	s.mu.Lock()
	srv := s.srv
	s.mu.Unlock()
	if srv != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
	s.closeOnce.Do(func() { close(s.done) })
}
