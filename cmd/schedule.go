package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	coremetrics "github.com/jmottin/subsched/core/metrics"
	"github.com/jmottin/subsched/core/model"
	"github.com/jmottin/subsched/core/scheduler"
	"github.com/jmottin/subsched/core/scoring"
	"github.com/jmottin/subsched/infra/logger"
	"github.com/jmottin/subsched/infra/metrics"
	"github.com/jmottin/subsched/pkg/export"
)

var (
	strategyFlag string
	seedFlag     int64
	outputFlag   string
	formatFlag   string
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Build a schedule with one strategy",
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().StringVarP(&strategyFlag, "strategy", "s", "", "strategy: greedy, stochastic, lookahead, backtracking or optimal (default from config)")
	scheduleCmd.Flags().Int64Var(&seedFlag, "seed", 0, "seed for the stochastic strategy (default from config)")
	scheduleCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "write the schedule to this file instead of stdout")
	scheduleCmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "output format: json or csv")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, args []string) error {
	cfg, mc, err := loadPlanning()
	if err != nil {
		return err
	}
	logg := logger.New("schedule-command")

	strategy := scheduler.Strategy(cfg.Planner.Strategy)
	if strategyFlag != "" {
		strategy = scheduler.Strategy(strategyFlag)
	}
	seed := cfg.Planner.Seed
	if cmd.Flags().Changed("seed") {
		seed = seedFlag
	}

	sched, err := scheduler.New(strategy, seed)
	if err != nil {
		return err
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

	start := time.Now()
	s := sched.Schedule(mc)
	elapsed := time.Since(start)

	report, penalty := scoring.Score(s, mc)
	quality := scoring.QualityScore(s, report, mc)
	efficiency := scoring.EfficiencyScore(s, mc)

	logg.Infof("strategy %s placed %d/%d submissions in %s", strategy, len(s), len(mc.Submissions), elapsed)
	logg.Infof("penalty %.0f, quality %.1f, efficiency %.1f, compliance %.1f%%",
		penalty.Total, quality, efficiency, report.ComplianceRate)
	for _, res := range report.Results {
		if !res.Valid {
			logg.Warnf("%s: %s", res.Family, res.Summary)
		}
	}

	if err := coremetrics.Record(sink, runMetrics(string(strategy), "", s, mc, report, penalty, quality, efficiency, elapsed)); err != nil {
		logg.Errorf("record metrics: %v", err)
	}

	return writeSchedule(s, outputFlag, formatFlag)
}

func runMetrics(strategy, runID string, s model.Schedule, mc *model.Config, report model.Report, penalty scoring.PenaltyBreakdown, quality, efficiency float64, elapsed time.Duration) coremetrics.RunMetrics {
	violations := make(map[string]int, len(report.Results))
	for _, res := range report.Results {
		violations[string(res.Family)] = len(res.Violations)
	}
	return coremetrics.RunMetrics{
		Strategy:        strategy,
		RunID:           runID,
		Scheduled:       len(s),
		Submissions:     len(mc.Submissions),
		TotalPenalty:    penalty.Total,
		QualityScore:    quality,
		EfficiencyScore: efficiency,
		ComplianceRate:  report.ComplianceRate,
		Violations:      violations,
		Elapsed:         elapsed,
	}
}

func writeSchedule(s model.Schedule, path, format string) error {
	out := os.Stdout
	if path != "" {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	switch format {
	case "json":
		return export.WriteJSON(out, s)
	case "csv":
		return export.WriteCSV(out, s)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}
