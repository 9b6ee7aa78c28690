package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oxturret/turretweb/internal/model"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Send game commands into a lobby",
	}

	cmd.AddCommand(newGameBuildCmd())
	cmd.AddCommand(newGameStartWaveCmd())
	cmd.AddCommand(newGameUpgradeCmd())
	cmd.AddCommand(newGameSellCmd())

	return cmd
}

func sendCommand(lobbyID string, cmdType model.CommandType, data any) error {
	envelope := model.Command{Type: cmdType}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("failed to marshal command data: %w", err)
		}
		envelope.Data = raw
	}

	if _, _, err := client.PostJSON("/play/"+lobbyID, envelope); err != nil {
		return err
	}

	out := NewOutput(cfg.Output)
	out.PrintMessage(fmt.Sprintf("Sent %s to lobby %s", cmdType, lobbyID))
	return nil
}

func newGameBuildCmd() *cobra.Command {
	var (
		x, y float64
		kind int
	)

	cmd := &cobra.Command{
		Use:   "build <lobby-id>",
		Short: "Build a tower",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendCommand(args[0], model.CommandBuildTower, model.BuildTowerData{X: x, Y: y, Kind: kind})
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "Board x coordinate (required)")
	cmd.Flags().Float64Var(&y, "y", 0, "Board y coordinate (required)")
	cmd.Flags().IntVar(&kind, "kind", 0, "Tower kind")
	_ = cmd.MarkFlagRequired("x")
	_ = cmd.MarkFlagRequired("y")

	return cmd
}

func newGameStartWaveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start-wave <lobby-id>",
		Short: "Start the next wave",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendCommand(args[0], model.CommandStartWave, nil)
		},
	}
}

func newGameUpgradeCmd() *cobra.Command {
	var (
		towerID uint32
		index   int
	)

	cmd := &cobra.Command{
		Use:   "upgrade <lobby-id>",
		Short: "Upgrade a tower",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendCommand(args[0], model.CommandUpgradeTower, model.TowerRefData{ID: towerID, Index: index})
		},
	}

	cmd.Flags().Uint32Var(&towerID, "id", 0, "Tower id (required)")
	cmd.Flags().IntVar(&index, "index", 0, "Tower slot index (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}

func newGameSellCmd() *cobra.Command {
	var (
		towerID uint32
		index   int
	)

	cmd := &cobra.Command{
		Use:   "sell <lobby-id>",
		Short: "Sell a tower",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return sendCommand(args[0], model.CommandSellTower, model.TowerRefData{ID: towerID, Index: index})
		},
	}

	cmd.Flags().Uint32Var(&towerID, "id", 0, "Tower id (required)")
	cmd.Flags().IntVar(&index, "index", 0, "Tower slot index (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("index")

	return cmd
}
