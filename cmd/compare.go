package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	coremetrics "github.com/jmottin/subsched/core/metrics"
	"github.com/jmottin/subsched/core/scheduler"
	"github.com/jmottin/subsched/infra/logger"
	"github.com/jmottin/subsched/infra/metrics"
)

var (
	compareSeed   int64
	compareOutput string
	compareFormat string
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run every strategy and rank the outcomes",
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().Int64Var(&compareSeed, "seed", 0, "seed for the stochastic strategy (default from config)")
	compareCmd.Flags().StringVarP(&compareOutput, "output", "o", "", "write the best schedule to this file")
	compareCmd.Flags().StringVarP(&compareFormat, "format", "f", "json", "output format for the best schedule: json or csv")
	rootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, mc, err := loadPlanning()
	if err != nil {
		return err
	}
	logg := logger.New("compare-command")

	seed := cfg.Planner.Seed
	if cmd.Flags().Changed("seed") {
		seed = compareSeed
	}

	var sink coremetrics.Sink
	if cfg.Metrics.Enabled {
		sink = metrics.NewPromSink(nil)
		go func() {
			if err := metrics.StartServer(cfg.Metrics.Addr); err != nil {
				logg.Errorf("metrics server: %v", err)
			}
		}()
	}

	results := scheduler.NewComparator(seed, logg).RunAll(mc)

	tw := tabwriter.NewWriter(os.Stderr, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "STRATEGY\tSCHEDULED\tPENALTY\tQUALITY\tEFFICIENCY\tCOMPLIANCE\tELAPSED")
	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(tw, "%s\terror: %v\n", r.Strategy, r.Err)
			continue
		}
		fmt.Fprintf(tw, "%s\t%d/%d\t%.0f\t%.1f\t%.1f\t%.1f%%\t%s\n",
			r.Strategy, len(r.Schedule), len(mc.Submissions),
			r.Penalty.Total, r.Quality, r.Efficiency, r.Report.ComplianceRate, r.Elapsed)
		if err := coremetrics.Record(sink, runMetrics(string(r.Strategy), r.RunID, r.Schedule, mc, r.Report, r.Penalty, r.Quality, r.Efficiency, r.Elapsed)); err != nil {
			logg.Errorf("record metrics: %v", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	best := scheduler.Best(results)
	if best == nil || best.Err != nil {
		return fmt.Errorf("no strategy produced a schedule")
	}
	logg.Infof("best strategy: %s (penalty %.0f, quality %.1f)", best.Strategy, best.Penalty.Total, best.Quality)

	if compareOutput == "" {
		return nil
	}
	return writeSchedule(best.Schedule, compareOutput, compareFormat)
}
