package handler

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/oxturret/turretweb/internal/dependencies/clock"
	"github.com/oxturret/turretweb/internal/model"
	"github.com/oxturret/turretweb/internal/services/instance"
	"github.com/oxturret/turretweb/internal/services/lobby"
	"github.com/oxturret/turretweb/internal/services/relay"
	"github.com/oxturret/turretweb/internal/services/session"
	"github.com/oxturret/turretweb/internal/web/middleware"
	"github.com/oxturret/turretweb/internal/web/sse"
	"github.com/oxturret/turretweb/internal/web/templates/pages"
)

const maxCommandBytes = 64 * 1024

// PlayHandler handles the game pages, the command endpoint, and the event
// stream.
type PlayHandler struct {
	lobbies     *lobby.Controller
	instances   *instance.Table
	relay       *relay.Relay
	sessions    *session.Service
	connections *sse.Registry
	clock       clock.Clock
	logger      *slog.Logger
}

// NewPlayHandler creates a new PlayHandler
func NewPlayHandler(
	lobbies *lobby.Controller,
	instances *instance.Table,
	commandRelay *relay.Relay,
	sessions *session.Service,
	connections *sse.Registry,
	clk clock.Clock,
	logger *slog.Logger,
) *PlayHandler {
	return &PlayHandler{
		lobbies:     lobbies,
		instances:   instances,
		relay:       commandRelay,
		sessions:    sessions,
		connections: connections,
		clock:       clk,
		logger:      logger,
	}
}

// Single renders the local game page. No lobby or server instance is
// involved; the in-browser engine runs on its own.
func (h *PlayHandler) Single(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, pages.Singleplayer())
}

// Page renders the multiplayer game page. Opening it joins the session to
// the lobby and creates the lobby's game instance on first visit.
func (h *PlayHandler) Page(w http.ResponseWriter, r *http.Request) {
	lobbyID := model.LobbyID(mux.Vars(r)["id"])
	sessionID := middleware.GetSessionID(r.Context())

	if _, err := h.lobbies.AddPlayer(r.Context(), lobbyID, sessionID); err != nil {
		if errors.Is(err, model.ErrLobbyNotFound) {
			NotFound(w, r)
			return
		}
		h.logger.Error("joining lobby failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.instances.GetOrCreate(lobbyID)

	renderPage(w, r, http.StatusOK, pages.Multiplayer())
}

// Command applies a player command to the lobby's game and relays it to
// every member's open streams. Success is a bare 200.
func (h *PlayHandler) Command(w http.ResponseWriter, r *http.Request) {
	lobbyID := model.LobbyID(mux.Vars(r)["id"])
	sessionID := middleware.GetSessionID(r.Context())

	body, err := io.ReadAll(io.LimitReader(r.Body, maxCommandBytes))
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	cmd, err := model.ParseCommand(body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	if err := h.relay.HandleCommand(r.Context(), lobbyID, sessionID, cmd); err != nil {
		switch {
		case errors.Is(err, model.ErrLobbyNotFound), errors.Is(err, model.ErrGameNotFound):
			NotFound(w, r)
		case errors.Is(err, model.ErrMalformedCommand), errors.Is(err, model.ErrUnrecognizedCommand):
			http.Error(w, "Bad Request", http.StatusBadRequest)
		default:
			h.logger.Error("command handling failed", slog.String("error", err.Error()))
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	w.WriteHeader(http.StatusOK)
}

// Events serves the lobby's command stream over server-sent events.
func (h *PlayHandler) Events(w http.ResponseWriter, r *http.Request) {
	sessionID := middleware.GetSessionID(r.Context())

	if err := sse.Serve(w, r, h.connections, h.sessions, sessionID, h.clock, h.logger); err != nil {
		h.logger.Error("event stream failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
