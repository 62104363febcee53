package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"catalina/player"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const maxBodyBytes = 8 << 20

type gameKey struct {
	game   string
	player string
}

// Server keeps one player instance per game and player name, so a seeded
// player draws one sequence over a whole game.
type Server struct {
	mu            sync.Mutex
	players       map[gameKey]player.Player
	defaultPlayer string
	playerOptions []player.Option
	mux           *http.ServeMux
}

type Option func(s *Server)

// WithPlayerOptions are applied to every player the server creates.
func WithPlayerOptions(opts ...player.Option) Option {
	return func(s *Server) {
		s.playerOptions = append(s.playerOptions, opts...)
	}
}

func WithDefaultPlayer(name string) Option {
	return func(s *Server) {
		if name != "" {
			s.defaultPlayer = name
		}
	}
}

func NewServer(opts ...Option) *Server {
	s := &Server{
		players:       make(map[gameKey]player.Player),
		defaultPlayer: player.Default,
	}
	for _, option := range opts {
		option(s)
	}

	s.mux = http.NewServeMux()
	s.mux.HandleFunc("POST /decide", s.handleDecide)
	s.mux.HandleFunc("GET /players", s.handlePlayers)
	s.mux.HandleFunc("DELETE /games/{id}", s.handleEndGame)
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return s
}

func (s *Server) Handler() http.Handler {
	return s.mux
}

// ListenAndServe serves on addr until ctx is done.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done, then shuts down
// gracefully.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	log.Info().Str("addr", ln.Addr().String()).Msg("bridge listening")

	errc := make(chan error, 1)
	go func() {
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	log.Info().Msg("bridge stopped")
	return nil
}

// playerFor returns the game's instance of the named player, creating it on
// first use.
func (s *Server) playerFor(gameID, name string) (player.Player, error) {
	key := gameKey{game: gameID, player: name}
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.players[key]; ok {
		return p, nil
	}
	opts := append([]player.Option{player.WithGameID(gameID)}, s.playerOptions...)
	p, err := player.New(name, opts...)
	if err != nil {
		return nil, err
	}
	s.players[key] = p
	return p, nil
}

func (s *Server) handleDecide(w http.ResponseWriter, r *http.Request) {
	var req DecideRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, "request body over "+strconv.FormatInt(tooLarge.Limit, 10)+" bytes", http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := req.validate(); err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.GameID == "" {
		req.GameID = uuid.NewString()
	}
	if req.Player == "" {
		req.Player = s.defaultPlayer
	}

	p, err := s.playerFor(req.GameID, req.Player)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}

	resp, err := Decide(p, req)
	if err != nil {
		http.Error(w, "bad request: "+err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, resp)
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, player.Names())
}

// handleEndGame forgets every player of a finished game.
func (s *Server) handleEndGame(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	s.mu.Lock()
	removed := 0
	for key := range s.players {
		if key.game == id {
			delete(s.players, key)
			removed++
		}
	}
	s.mu.Unlock()

	if removed == 0 {
		http.Error(w, "unknown game "+id, http.StatusNotFound)
		return
	}
	log.Debug().Str("game", id).Int("players", removed).Msg("game ended")
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}
