package web

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oxturret/turretweb/internal/dependencies/clock"
	appmiddleware "github.com/oxturret/turretweb/internal/middleware"
	"github.com/oxturret/turretweb/internal/services/auth"
	"github.com/oxturret/turretweb/internal/services/instance"
	"github.com/oxturret/turretweb/internal/services/lobby"
	"github.com/oxturret/turretweb/internal/services/relay"
	"github.com/oxturret/turretweb/internal/services/session"
	"github.com/oxturret/turretweb/internal/web/handler"
	"github.com/oxturret/turretweb/internal/web/middleware"
	"github.com/oxturret/turretweb/internal/web/sse"
)

// RouterConfig holds configuration for the web router
type RouterConfig struct {
	Logger          *slog.Logger
	AuthService     *auth.Service
	SessionService  *session.Service
	LobbyController *lobby.Controller
	InstanceTable   *instance.Table
	Relay           *relay.Relay
	Connections     *sse.Registry
	Clock           clock.Clock
	StaticDir       string // Path to static files directory
}

// NewRouter creates the full request handler: static assets first, then the
// authenticated page and game routes.
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	authMiddleware := middleware.Auth(cfg.AuthService, cfg.SessionService, cfg.Logger)

	homeHandler := handler.NewHomeHandler()
	lobbyHandler := handler.NewLobbyHandler(cfg.LobbyController, cfg.Logger)
	playHandler := handler.NewPlayHandler(
		cfg.LobbyController,
		cfg.InstanceTable,
		cfg.Relay,
		cfg.SessionService,
		cfg.Connections,
		cfg.Clock,
		cfg.Logger,
	)

	protected := r.NewRoute().Subrouter()
	protected.Use(authMiddleware)

	protected.HandleFunc("/", homeHandler.Home).Methods(http.MethodGet)

	protected.HandleFunc("/lobbies", lobbyHandler.List).Methods(http.MethodGet)
	protected.HandleFunc("/lobbies/create", lobbyHandler.CreateForm).Methods(http.MethodGet)
	protected.HandleFunc("/lobbies/create", lobbyHandler.Create).Methods(http.MethodPost)
	protected.HandleFunc("/lobbies/detail/{id}", lobbyHandler.Detail).Methods(http.MethodGet)

	protected.HandleFunc("/play", playHandler.Single).Methods(http.MethodGet)
	protected.HandleFunc("/play/{id}/sse", playHandler.Events).Methods(http.MethodGet)
	protected.HandleFunc("/play/{id}", playHandler.Page).Methods(http.MethodGet)
	protected.HandleFunc("/play/{id}", playHandler.Command).Methods(http.MethodPost)

	r.NotFoundHandler = authMiddleware(http.HandlerFunc(handler.NotFound))

	// Static assets bypass authentication. Any path naming a real file in
	// the static tree short-circuits the page routes.
	staticHandler := NewStaticHandler(cfg.StaticDir)
	root := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if cfg.StaticDir != "" && staticHandler.CanServe(req.URL.Path) {
			staticHandler.ServeHTTP(w, req)
			return
		}
		r.ServeHTTP(w, req)
	})

	chain := appmiddleware.Logging(cfg.Logger)(root)
	chain = appmiddleware.Recovery(cfg.Logger, appmiddleware.DefaultPanicHandler)(chain)
	return chain
}
