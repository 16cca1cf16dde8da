package cmd

import (
	"encoding/json"
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"github.com/liftcore/liftcore/config"
	"github.com/liftcore/liftcore/core/dispatch"
	"github.com/liftcore/liftcore/core/model"
	"github.com/liftcore/liftcore/infra/logger"
)

var (
	fleetPath   string
	origin      int
	destination int
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Dry-run a hall call against a fleet snapshot",
	RunE:  runScore,
}

func init() {
	scoreCmd.Flags().StringVar(&fleetPath, "fleet", "fleet.json", "fleet snapshot file")
	scoreCmd.Flags().IntVar(&origin, "origin", 0, "call origin floor")
	scoreCmd.Flags().IntVar(&destination, "destination", 0, "call destination floor")
	rootCmd.AddCommand(scoreCmd)
}

type scoreLine struct {
	VehicleID int     `json:"vehicle_id"`
	Score     float64 `json:"score,omitempty"`
	Eligible  bool    `json:"eligible"`
	Selected  bool    `json:"selected"`
}

func runScore(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	data, err := os.ReadFile(fleetPath)
	if err != nil {
		return fmt.Errorf("read fleet snapshot: %w", err)
	}
	var snaps []model.VehicleSnapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return fmt.Errorf("parse fleet snapshot: %w", err)
	}
	vehicles := make([]model.Vehicle, len(snaps))
	for i := range snaps {
		vehicles[i] = &snaps[i]
	}

	logg := logger.New("score-command")
	dir := model.TravelDirection(origin, destination)
	scorer := dispatch.ScorerFromConfig(cfg.Dispatch)
	selected, best, ok := scorer.Select(vehicles, origin, dir)
	if !ok {
		logg.Warnf("no eligible elevator for a %s call at floor %d", dir, origin)
	} else {
		logg.Infof("elevator %d selected with score %.3f", selected.ID(), best)
	}

	out := make([]scoreLine, 0, len(vehicles))
	for _, v := range vehicles {
		score := scorer.Score(v, origin, dir)
		line := scoreLine{VehicleID: v.ID(), Eligible: !math.IsInf(score, 1)}
		if line.Eligible {
			line.Score = score
		}
		line.Selected = ok && selected.ID() == v.ID()
		out = append(out, line)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
