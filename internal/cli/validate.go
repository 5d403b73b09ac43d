package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateCmd parses a table without solving.
func (a *App) validateCmd() *cobra.Command {
	var sample string

	cmd := &cobra.Command{
		Use:   "validate [file.csv]",
		Short: "Parse a table and report how many entities it defines",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) > 0 {
				path = args[0]
			}
			entities, err := loadEntities(path, sample)
			if err != nil {
				return err
			}
			fmt.Println(colorGood.Sprintf("OK: %d entit%s", len(entities), plural(len(entities))))
			return nil
		},
	}
	cmd.Flags().StringVar(&sample, "sample", "", `use a bundled sample table instead of a file ("simple" or "full")`)
	return cmd
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}
