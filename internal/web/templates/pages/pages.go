package pages

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/oxturret/turretweb/internal/model"
	"github.com/oxturret/turretweb/internal/web/templates/layout"
)

// SelectScreen is the landing page: local play or online lobbies.
func SelectScreen() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<a href="/play" class="button">Local Game</a>
<a href="/lobbies" class="button">Online Game</a>`)
		return err
	})
	return layout.Base(layout.PageData{
		Title: "Oxidized Turret",
		Styles: layout.Styles(`.button {
  padding: 1px 6px;
  border: 1px outset buttonborder;
  border-radius: 3px;
  color: buttontext;
  background-color: buttonface;
  text-decoration: none;
}`),
	}, body)
}

// NotFound is the shared 404 page.
func NotFound() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "404 Not Found")
		return err
	})
	return layout.Base(layout.PageData{Title: "Error"}, body)
}

// LobbiesData holds the public lobby list.
type LobbiesData struct {
	Lobbies []*model.Lobby
}

// Lobbies renders the public lobby listing.
func Lobbies(data LobbiesData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, `<a href="/lobbies/create">Open new Lobby</a>
<div>Open Lobbies</div>
<ul>
`); err != nil {
			return err
		}
		for _, lobby := range data.Lobbies {
			if _, err := fmt.Fprintf(w, "<li><a href=\"/lobbies/detail/%s\">%s</a></li>\n",
				templ.EscapeString(string(lobby.ID)), templ.EscapeString(lobby.Name)); err != nil {
				return err
			}
		}
		_, err := io.WriteString(w, "</ul>")
		return err
	})
	return layout.Base(layout.PageData{Title: "Lobbies - Oxidized Turret"}, body)
}

// CreateLobby renders the lobby creation form.
func CreateLobby() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<form action="/lobbies/create" method="POST">
  <p>Create a new Lobby</p>
  <div class="form-row">
    <label>Name</label>
    <input name="name" type="text" required>
  </div>
  <div class="form-row">
    <label>Number of Players</label>
    <input name="num-players" type="number" min="1" step="1" value="2" required>
  </div>
  <div class="form-row">
    <label>Public Lobby</label>
    <input name="public" type="checkbox" checked>
  </div>
  <button type="submit">Create</button>
</form>`)
		return err
	})
	return layout.Base(layout.PageData{
		Title: "Create Lobby - Oxidized Turret",
		Styles: layout.Styles(`label, input { display: block; }
.form-row { margin-bottom: 10px; }`),
	}, body)
}

// LobbyDetailData holds the lobby shown on the detail page.
type LobbyDetailData struct {
	Lobby *model.Lobby
}

// LobbyDetail renders a lobby's membership and the link into the game.
func LobbyDetail(data LobbyDetailData) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		lobby := data.Lobby
		if _, err := fmt.Fprintf(w, `<div>Lobby-Id: %s</div>
<div>Lobby-Name: %s</div>
<div>Max. Players: %d</div>
<div>Players in Lobby</div>
<ul>
`, templ.EscapeString(string(lobby.ID)), templ.EscapeString(lobby.Name), lobby.NumPlayers); err != nil {
			return err
		}
		for _, player := range lobby.PlayerList() {
			if _, err := fmt.Fprintf(w, "<li>%s</li>\n", templ.EscapeString(string(player.ID))); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "</ul>\n<a href=\"/play/%s\">Start Game</a>", templ.EscapeString(string(lobby.ID)))
		return err
	})
	return layout.Base(layout.PageData{Title: "Lobby - Oxidized Turret"}, body)
}

// gameSurface is the shared canvas markup for both play pages.
const gameSurface = `<canvas id="canvas"></canvas>
<canvas id="ui-canvas"></canvas>
<div id="ui">
  <div class="health">Health: 10</div>
  <div class="wave">Wave: 1</div>
  <div class="gold">Gold: 200</div>
  <div class="result"></div>
  <div class="start">Start</div>
</div>
`

const gameStyles = `html, body { margin: 0; overflow: hidden; }
canvas { position: absolute; top: 0; left: 0; }
#ui { position: absolute; top: 0; right: 0; font-family: "Roboto Condensed", sans-serif; }`

// Singleplayer renders the local game: commands loop straight back into the
// in-browser engine.
func Singleplayer() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, gameSurface); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<script type="module">
  import { initGame } from "/js/main.js";

  async function sendMessage(message) {
    return receiveMessage(message);
  }

  const { receiveMessage } = await initGame({
    sendMessage,
    wasmPath: "/wasm/oxidized_turret_bg.wasm",
  });
</script>`)
		return err
	})
	return layout.Base(layout.PageData{
		Title:  "Play - Oxidized Turret",
		Styles: layout.Styles(gameStyles),
	}, body)
}

// Multiplayer renders the shared game: commands go to the server and come
// back to every player over the event stream.
func Multiplayer() templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, gameSurface); err != nil {
			return err
		}
		_, err := io.WriteString(w, `<script type="module">
  import { initGame } from "/js/main.js";

  async function sendMessage(message) {
    return fetch(window.location.href, {
      method: "POST",
      headers: { "content-type": "application/json" },
      body: JSON.stringify(message),
    });
  }

  const { receiveMessage } = await initGame({
    sendMessage,
    wasmPath: "/wasm/oxidized_turret_bg.wasm",
  });

  const serverEvents = new EventSource(window.location.href + "/sse");
  serverEvents.addEventListener("message", (event) => {
    receiveMessage(JSON.parse(event.data));
  });
</script>`)
		return err
	})
	return layout.Base(layout.PageData{
		Title:  "Play - Oxidized Turret",
		Styles: layout.Styles(gameStyles),
	}, body)
}
