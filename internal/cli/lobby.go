package cli

import (
	"bytes"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/spf13/cobra"
)

// LobbySummary is a lobby as shown in the public listing.
type LobbySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LobbyDetail is a lobby as shown on its detail page.
type LobbyDetail struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	NumPlayers string   `json:"num_players"`
	Players    []string `json:"players"`
}

func newLobbyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lobby",
		Short: "Lobby management commands",
	}

	cmd.AddCommand(newLobbyListCmd())
	cmd.AddCommand(newLobbyCreateCmd())
	cmd.AddCommand(newLobbyGetCmd())

	return cmd
}

func newLobbyListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List public lobbies",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _, err := client.Get("/lobbies")
			if err != nil {
				return err
			}

			lobbies, err := parseLobbyList(body)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(lobbies)
				return nil
			}
			if len(lobbies) == 0 {
				out.PrintMessage("No public lobbies")
				return nil
			}
			for _, lobby := range lobbies {
				out.PrintMessage(fmt.Sprintf("%s\t%s", lobby.ID, lobby.Name))
			}
			return nil
		},
	}
}

func newLobbyCreateCmd() *cobra.Command {
	var (
		name       string
		numPlayers int
		private    bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a new lobby",
		RunE: func(cmd *cobra.Command, args []string) error {
			form := url.Values{}
			form.Set("name", name)
			form.Set("num-players", strconv.Itoa(numPlayers))
			if !private {
				form.Set("public", "on")
			}

			_, resp, err := client.PostForm("/lobbies/create", form)
			if err != nil {
				return err
			}

			location := resp.Header.Get("Location")
			id := strings.TrimPrefix(location, "/lobbies/detail/")
			if id == "" || id == location {
				return fmt.Errorf("unexpected redirect location %q", location)
			}

			out := NewOutput(cfg.Output)
			out.Print(LobbySummary{ID: id, Name: name})
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Lobby name (required)")
	cmd.Flags().IntVar(&numPlayers, "num-players", 2, "Target player count")
	cmd.Flags().BoolVar(&private, "private", false, "Hide the lobby from the public listing")
	_ = cmd.MarkFlagRequired("name")

	return cmd
}

func newLobbyGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get lobby details (joins the lobby)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, _, err := client.Get("/lobbies/detail/" + args[0])
			if err != nil {
				return err
			}

			detail, err := parseLobbyDetail(body)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			if cfg.Output == "json" {
				out.Print(detail)
				return nil
			}
			out.PrintMessage("Id: " + detail.ID)
			out.PrintMessage("Name: " + detail.Name)
			out.PrintMessage("Max players: " + detail.NumPlayers)
			out.PrintMessage("Players:")
			for _, player := range detail.Players {
				out.PrintMessage("  " + player)
			}
			return nil
		},
	}
}

func parseLobbyList(body []byte) ([]LobbySummary, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to parse lobby list: %w", err)
	}

	lobbies := []LobbySummary{}
	doc.Find("ul li a").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		id := strings.TrimPrefix(href, "/lobbies/detail/")
		if id == href {
			return
		}
		lobbies = append(lobbies, LobbySummary{ID: id, Name: strings.TrimSpace(sel.Text())})
	})
	return lobbies, nil
}

func parseLobbyDetail(body []byte) (LobbyDetail, error) {
	var detail LobbyDetail

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return detail, fmt.Errorf("failed to parse lobby detail: %w", err)
	}

	doc.Find("div").Each(func(_ int, sel *goquery.Selection) {
		text := strings.TrimSpace(sel.Text())
		switch {
		case strings.HasPrefix(text, "Lobby-Id: "):
			detail.ID = strings.TrimPrefix(text, "Lobby-Id: ")
		case strings.HasPrefix(text, "Lobby-Name: "):
			detail.Name = strings.TrimPrefix(text, "Lobby-Name: ")
		case strings.HasPrefix(text, "Max. Players: "):
			detail.NumPlayers = strings.TrimPrefix(text, "Max. Players: ")
		}
	})
	doc.Find("ul li").Each(func(_ int, sel *goquery.Selection) {
		detail.Players = append(detail.Players, strings.TrimSpace(sel.Text()))
	})
	return detail, nil
}
