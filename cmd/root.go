// Package cmd wires the CLI: loading configuration, running strategies,
// validating schedules and comparing strategy outcomes.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmottin/subsched/config"
	"github.com/jmottin/subsched/core/model"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "subsched",
	Short: "Academic submission scheduler",
	Long:  "subsched plans abstract, paper and poster submissions against conference deadlines, dependencies and workload limits.",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.json", "configuration file")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadPlanning loads the file config and converts the planner section into
// the core model.
func loadPlanning() (*config.Config, *model.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	mc, err := cfg.Planner.ToModel()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid planning config: %w", err)
	}
	return cfg, mc, nil
}
