package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/liftcore/liftcore/config"
	"github.com/liftcore/liftcore/core/dispatch/logging"
)

var (
	decVehicle int
	decSource  string
	decSince   string
)

var decisionsCmd = &cobra.Command{
	Use:   "decisions",
	Short: "Inspect recorded assignment decisions",
	RunE:  runDecisions,
}

func init() {
	decisionsCmd.Flags().IntVar(&decVehicle, "vehicle", -1, "filter by elevator id, -1 for all")
	decisionsCmd.Flags().StringVar(&decSource, "source", "", `filter by source ("call", "backlog", "intercept")`)
	decisionsCmd.Flags().StringVar(&decSince, "since", "", "only decisions at or after this RFC3339 time")
	rootCmd.AddCommand(decisionsCmd)
}

func runDecisions(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	store, err := cfg.Logging.NewStore()
	if err != nil {
		return fmt.Errorf("open decision log: %w", err)
	}
	if store == nil {
		return fmt.Errorf("decision logging is disabled in the configuration")
	}
	defer func() { _ = store.Close() }()

	q := logging.Query{Source: decSource}
	if decVehicle >= 0 {
		vid := decVehicle
		q.VehicleID = &vid
	}
	if decSince != "" {
		start, err := time.Parse(time.RFC3339, decSince)
		if err != nil {
			return fmt.Errorf("parse since: %w", err)
		}
		q.Start = start
	}

	recs, err := store.Query(cmd.Context(), q)
	if err != nil {
		return fmt.Errorf("query decision log: %w", err)
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(recs)
}
