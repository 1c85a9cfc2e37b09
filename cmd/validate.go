package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmottin/subsched/core/validate"
	"github.com/jmottin/subsched/infra/logger"
	"github.com/jmottin/subsched/pkg/export"
)

var schedulePath string

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a previously exported schedule",
	RunE:  runValidate,
}

func init() {
	validateCmd.Flags().StringVar(&schedulePath, "schedule", "schedule.json", "schedule file to validate")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	_, mc, err := loadPlanning()
	if err != nil {
		return err
	}
	logg := logger.New("validate-command")

	f, err := os.Open(schedulePath)
	if err != nil {
		return fmt.Errorf("open schedule: %w", err)
	}
	defer f.Close()
	s, err := export.ReadJSON(f)
	if err != nil {
		return fmt.Errorf("read schedule: %w", err)
	}

	report := validate.Schedule(s, mc)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(report); err != nil {
		return err
	}

	if !report.Valid {
		logg.Warnf("schedule has %d violations across %d families", report.TotalViolations(), len(report.Results))
		return fmt.Errorf("schedule is invalid")
	}
	logg.Infof("schedule is valid, compliance %.1f%%", report.ComplianceRate)
	return nil
}
