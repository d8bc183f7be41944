// Package devserver is a small in-memory game server speaking the client
// wire protocol, used for local play and end-to-end tests.
package devserver

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/Versifine/veloterm/internal/config"
	"github.com/Versifine/veloterm/internal/event"
	"github.com/Versifine/veloterm/internal/protocol"
	"github.com/Versifine/veloterm/internal/terrain"
	"github.com/Versifine/veloterm/internal/transport"
	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const chunkCacheLimit = 1024

type Server struct {
	cfg *config.DevServerConfig
	gen *Generator
	bus *event.Bus

	nextUID atomic.Uint64

	mu      sync.Mutex
	online  map[string]struct{}
	groups  map[string]string
	chunks  map[terrain.ChunkPos]*protocol.Packet
	wg      sync.WaitGroup
	started time.Time
}

func NewServer(cfg *config.DevServerConfig) *Server {
	s := &Server{
		cfg:     cfg,
		gen:     NewGenerator(cfg.World.Seed),
		bus:     event.NewBus(),
		online:  make(map[string]struct{}),
		groups:  make(map[string]string),
		chunks:  make(map[terrain.ChunkPos]*protocol.Packet),
		started: time.Now(),
	}
	s.nextUID.Store(1000)
	return s
}

// Start listens on the configured TCP address, and on the WebSocket address
// when one is set, until ctx ends.
func (s *Server) Start(ctx context.Context) error {
	slog.Info("Starting dev server", "listen", s.cfg.Listen.Address(), "seed", s.cfg.World.Seed)
	ln, err := net.Listen("tcp", s.cfg.Listen.Address())
	if err != nil {
		return err
	}
	errs := make(chan error, 2)
	go func() { errs <- s.Serve(ctx, ln) }()

	if s.cfg.WebSocket.Enabled() {
		httpSrv := &http.Server{
			Addr:              s.cfg.WebSocket.Address(),
			Handler:           s.Handler(ctx),
			ReadHeaderTimeout: 10 * time.Second,
		}
		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = httpSrv.Shutdown(shutdownCtx)
		}()
		go func() {
			slog.Info("WebSocket endpoint enabled", "address", httpSrv.Addr, "path", s.cfg.WebSocket.Path)
			if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
				return
			}
			errs <- nil
		}()
	}

	err = <-errs
	s.wg.Wait()
	return err
}

// Serve accepts TCP sessions on ln until ctx ends.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer ln.Close()
	go func() {
		<-ctx.Done()
		slog.Info("Shutting down dev server")
		_ = ln.Close()
	}()
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				slog.Info("Dev server stopped")
				return nil
			}
			slog.Error("Error accepting connection", "error", err)
			return err
		}
		if tcpConn, ok := conn.(*net.TCPConn); ok {
			_ = tcpConn.SetNoDelay(true)
		}
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.ServeConn(ctx, transport.NewStream(conn))
		}()
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool { return true },
}

// Handler serves the WebSocket game endpoint and a small JSON status API.
func (s *Server) Handler(ctx context.Context) http.Handler {
	r := chi.NewRouter()
	path := s.cfg.WebSocket.Path
	if path == "" {
		path = "/ws"
	}
	r.Get(path, func(w http.ResponseWriter, req *http.Request) {
		conn, err := upgrader.Upgrade(w, req, nil)
		if err != nil {
			slog.Warn("WebSocket upgrade failed", "error", err)
			return
		}
		s.wg.Add(1)
		defer s.wg.Done()
		s.ServeConn(ctx, transport.NewWebSocket(conn))
	})
	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
		r.Get("/status", s.status)
		r.Get("/height/{x}/{y}", s.height)
	})
	return r
}

type statusResponse struct {
	Name     string   `json:"name"`
	Protocol int32    `json:"protocol"`
	Players  []string `json:"players"`
	Seed     int64    `json:"seed"`
	Uptime   string   `json:"uptime"`
}

func (s *Server) status(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, statusResponse{
		Name:     s.cfg.Name,
		Protocol: protocol.CurrentProtocolVersion,
		Players:  s.Players(),
		Seed:     s.cfg.World.Seed,
		Uptime:   time.Since(s.started).Round(time.Second).String(),
	})
}

func (s *Server) height(w http.ResponseWriter, r *http.Request) {
	x, errX := strconv.ParseInt(chi.URLParam(r, "x"), 10, 32)
	y, errY := strconv.ParseInt(chi.URLParam(r, "y"), 10, 32)
	if errX != nil || errY != nil {
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid coordinates"})
		return
	}
	respondJSON(w, http.StatusOK, map[string]int32{"height": s.gen.Height(int32(x), int32(y))})
}

func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Warn("Error encoding JSON", "error", err)
	}
}

// Players lists the accounts currently logged in, sorted.
func (s *Server) Players() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playersLocked()
}

func (s *Server) playersLocked() []string {
	names := make([]string, 0, len(s.online))
	for name := range s.online {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// join claims username for a session; false when it is already online.
func (s *Server) join(username string) bool {
	s.mu.Lock()
	if _, taken := s.online[username]; taken {
		s.mu.Unlock()
		return false
	}
	s.online[username] = struct{}{}
	players := s.playersLocked()
	s.mu.Unlock()
	s.bus.Publish(event.TopicBroadcast, &event.PlayersChangedEvent{Players: players})
	return true
}

func (s *Server) leave(username string) {
	s.mu.Lock()
	delete(s.online, username)
	delete(s.groups, username)
	players := s.playersLocked()
	s.mu.Unlock()
	s.bus.Publish(event.TopicBroadcast, &event.PlayersChangedEvent{Players: players})
}

func (s *Server) groupOf(username string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.groups[username]
	return g, ok
}

func (s *Server) setGroup(username, group string) {
	s.mu.Lock()
	s.groups[username] = group
	s.mu.Unlock()
}

// groupMembers returns everyone in group, sorted.
func (s *Server) groupMembers(group string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var members []string
	for name, g := range s.groups {
		if g == group {
			members = append(members, name)
		}
	}
	slices.Sort(members)
	return members
}

// chunkPacket returns the encoded chunk, generating it on first use.
func (s *Server) chunkPacket(pos terrain.ChunkPos) (*protocol.Packet, error) {
	s.mu.Lock()
	if p, ok := s.chunks[pos]; ok {
		s.mu.Unlock()
		return p, nil
	}
	s.mu.Unlock()

	p, err := protocol.CreateTerrainChunkPacket(s.gen.Chunk(pos).ToWire(pos))
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	if len(s.chunks) >= chunkCacheLimit {
		clear(s.chunks)
	}
	s.chunks[pos] = p
	s.mu.Unlock()
	return p, nil
}

func (s *Server) allocUID() uint64 { return s.nextUID.Add(1) }

func (s *Server) checkCredentials(username, password string) (bool, string) {
	if username == "" {
		return false, "empty username"
	}
	if len(s.cfg.Accounts) == 0 {
		return true, ""
	}
	want, ok := s.cfg.Accounts[username]
	if !ok || want != password {
		return false, "invalid credentials"
	}
	return true, ""
}
