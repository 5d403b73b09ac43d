package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/daysched/internal/domain"
	"github.com/example/daysched/internal/timecodec"
)

// explainCmd prints each entity's parsed frequency, constraints, and
// windows in plain text.
func (a *App) explainCmd() *cobra.Command {
	var sample string

	cmd := &cobra.Command{
		Use:   "explain [file.csv]",
		Short: "Print each entity's parsed constraints and windows",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			entities, err := loadEntities(path, sample)
			if err != nil {
				return err
			}
			for _, e := range entities {
				fmt.Println(colorHeader.Sprintf("%s (%s, %s)", e.Name, e.Category, e.Frequency))
				if len(e.Constraints) == 0 {
					fmt.Println("  no constraints")
				}
				for _, c := range e.Constraints {
					fmt.Printf("  %s\n", c)
				}
				if len(e.Windows) == 0 {
					fmt.Println("  no windows")
				}
				for _, w := range e.Windows {
					fmt.Printf("  window %s\n", windowString(w))
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&sample, "sample", "", `use a bundled sample table instead of a file ("simple" or "full")`)
	return cmd
}

func windowString(w domain.WindowSpec) string {
	return w.Label(timecodec.FormatHHMM)
}
