package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

func newEventsCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "events <lobby-id>",
		Short: "Stream the lobby's command feed",
		Long: `Connect to the lobby's event stream and print every relayed command.

Each event is the raw command envelope another player (or you) sent:
build_tower, start_wave, upgrade_tower, or sell_tower.

Press Ctrl+C to disconnect.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return streamEvents(args[0], jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output events as JSON lines")

	return cmd
}

// StreamedEvent is one relayed command as printed in JSON mode.
type StreamedEvent struct {
	Time time.Time `json:"time"`
	Data string    `json:"data"`
}

func streamEvents(lobbyID string, jsonOutput bool) error {
	url := strings.TrimSuffix(cfg.ServerURL, "/") + "/play/" + lobbyID + "/sse"

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")
	client.authorize(req)

	// Set up cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	req = req.WithContext(ctx)

	httpClient := &http.Client{
		Timeout: 0, // No timeout for the event stream
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("connection failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if !jsonOutput {
		fmt.Printf("Connected to lobby %s\n", lobbyID)
	}

	scanner := bufio.NewScanner(resp.Body)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")

		if jsonOutput {
			encoded, err := json.Marshal(StreamedEvent{Time: time.Now(), Data: data})
			if err != nil {
				continue
			}
			fmt.Println(string(encoded))
		} else {
			fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), data)
		}
	}

	if ctx.Err() != nil {
		return nil // Interrupted by the user
	}
	return scanner.Err()
}
