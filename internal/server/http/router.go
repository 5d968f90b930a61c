package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"fogchess/internal/server/game"
)

// Server 把路由、会话管理和 websocket hub 组合在一起。
type Server struct {
	cfg Config
	mgr *game.Manager
	hub *Hub
	log *zap.Logger
	h   http.Handler
}

func NewServer(cfg Config, mgr *game.Manager, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	if cfg.WSPingInterval <= 0 {
		cfg.WSPingInterval = DefaultConfig().WSPingInterval
	}
	s := &Server{
		cfg: cfg,
		mgr: mgr,
		hub: NewHub(mgr, log),
		log: log,
	}
	mgr.OnChange(s.hub.Publish)
	s.h = s.routes()
	return s
}

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/new_game", s.handleNewGame)
		r.Post("/play", s.handlePlay)
		r.Get("/games", s.handleListGames)
		r.Get("/games/{id}", s.handleGetGame)
		r.Delete("/games/{id}", s.handleDeleteGame)
		r.Post("/games/{id}/resign", s.handleResign)
	})

	r.Get("/ws/{id}", s.handleWS)
	return r
}

// Hub 供 main 启动广播循环。
func (s *Server) Hub() *Hub { return s.hub }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.h.ServeHTTP(w, r)
}
