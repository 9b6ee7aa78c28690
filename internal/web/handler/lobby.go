package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/oxturret/turretweb/internal/model"
	"github.com/oxturret/turretweb/internal/services/lobby"
	"github.com/oxturret/turretweb/internal/web/middleware"
	"github.com/oxturret/turretweb/internal/web/templates/pages"
)

// LobbyHandler handles the lobby listing, creation, and detail pages.
type LobbyHandler struct {
	lobbies *lobby.Controller
	logger  *slog.Logger
}

// NewLobbyHandler creates a new LobbyHandler
func NewLobbyHandler(lobbies *lobby.Controller, logger *slog.Logger) *LobbyHandler {
	return &LobbyHandler{
		lobbies: lobbies,
		logger:  logger,
	}
}

// List renders the public lobbies in creation order.
func (h *LobbyHandler) List(w http.ResponseWriter, r *http.Request) {
	lobbies, err := h.lobbies.ListPublic(r.Context())
	if err != nil {
		h.logger.Error("listing lobbies failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	renderPage(w, r, http.StatusOK, pages.Lobbies(pages.LobbiesData{Lobbies: lobbies}))
}

// CreateForm renders the lobby creation form.
func (h *LobbyHandler) CreateForm(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, http.StatusOK, pages.CreateLobby())
}

// Create handles the lobby creation form submission and redirects to the
// new lobby's detail page.
func (h *LobbyHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	name := r.FormValue("name")
	numPlayers, err := strconv.Atoi(r.FormValue("num-players"))
	if err != nil || numPlayers < 1 {
		numPlayers = 2
	}
	isPublic := r.FormValue("public") == "on"

	created, err := h.lobbies.Create(r.Context(), name, numPlayers, isPublic)
	if err != nil {
		h.logger.Error("creating lobby failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/lobbies/detail/"+string(created.ID), http.StatusSeeOther)
}

// Detail renders a lobby page, joining the viewing session to the lobby.
func (h *LobbyHandler) Detail(w http.ResponseWriter, r *http.Request) {
	lobbyID := model.LobbyID(mux.Vars(r)["id"])
	sessionID := middleware.GetSessionID(r.Context())

	updated, err := h.lobbies.AddPlayer(r.Context(), lobbyID, sessionID)
	if err != nil {
		if errors.Is(err, model.ErrLobbyNotFound) {
			NotFound(w, r)
			return
		}
		h.logger.Error("joining lobby failed", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	renderPage(w, r, http.StatusOK, pages.LobbyDetail(pages.LobbyDetailData{Lobby: updated}))
}
