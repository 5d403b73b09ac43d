package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/daysched/internal/domain"
	"github.com/example/daysched/internal/solver"
	"github.com/example/daysched/internal/timecodec"
)

// runCmd solves a schedule and prints it as a one-shot report; there is
// no long-running or recurring execution mode.
func (a *App) runCmd() *cobra.Command {
	var sample string
	var dayStart, dayEnd string
	var strategy string
	var penaltyWeight float64

	cmd := &cobra.Command{
		Use:   "run [file.csv]",
		Short: "Solve a schedule from a CSV table and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}

			entities, err := loadEntities(path, sample)
			if err != nil {
				return err
			}

			cfg, err := resolveConfig(dayStart, dayEnd, strategy, penaltyWeight)
			if err != nil {
				return err
			}

			result, err := solver.Solve(entities, cfg, a.debug)
			if err != nil {
				if errors.Is(err, domain.ErrInfeasible) {
					return fmt.Errorf("%s", colorWarn.Sprint(err.Error()))
				}
				return err
			}

			fmt.Print(solver.FormatSchedule(result))
			return nil
		},
	}

	cmd.Flags().StringVar(&sample, "sample", "", `use a bundled sample table instead of a file ("simple" or "full")`)
	cmd.Flags().StringVar(&dayStart, "day-start", "", "day start, HH:MM (default 08:00)")
	cmd.Flags().StringVar(&dayEnd, "day-end", "", "day end, HH:MM (default 22:00)")
	cmd.Flags().StringVar(&strategy, "strategy", "earliest", `"earliest" or "latest"`)
	cmd.Flags().Float64Var(&penaltyWeight, "penalty-weight", -1, "window-adherence penalty weight, >= 0 (default 0.3)")

	return cmd
}

func resolveConfig(dayStart, dayEnd, strategy string, penaltyWeight float64) (domain.SchedulerConfig, error) {
	cfg := domain.DefaultConfig()

	if dayStart != "" {
		m, err := timecodec.ParseHHMM(dayStart)
		if err != nil {
			return cfg, err
		}
		cfg.DayStartMinutes = m
	}
	if dayEnd != "" {
		m, err := timecodec.ParseHHMM(dayEnd)
		if err != nil {
			return cfg, err
		}
		cfg.DayEndMinutes = m
	}
	switch strategy {
	case "earliest", "":
		cfg.Strategy = domain.Earliest
	case "latest":
		cfg.Strategy = domain.Latest
	default:
		return cfg, fmt.Errorf("unknown strategy %q (want \"earliest\" or \"latest\")", strategy)
	}
	if penaltyWeight >= 0 {
		cfg.PenaltyWeight = penaltyWeight
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
