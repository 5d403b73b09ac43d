package cli

import (
	"encoding/csv"
	"fmt"
	"os"

	"github.com/example/daysched/internal/domain"
	"github.com/example/daysched/internal/ingest"
	"github.com/example/daysched/internal/sampledata"
)

// loadEntities resolves the table a subcommand should run against: a CSV
// file named on the command line, or (if sample is set) one of the
// bundled sampledata tables.
func loadEntities(path string, sample string) ([]domain.Entity, error) {
	rows, err := loadRows(path, sample)
	if err != nil {
		return nil, err
	}
	return ingest.FromTable(rows)
}

func loadRows(path string, sample string) ([][]string, error) {
	if sample != "" {
		switch sample {
		case "simple":
			return sampledata.SimpleTable(), nil
		case "full", "":
			return sampledata.Table(), nil
		default:
			return nil, fmt.Errorf("unknown sample table %q (want \"simple\" or \"full\")", sample)
		}
	}
	if path == "" {
		return nil, fmt.Errorf("specify a CSV file or pass --sample")
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return rows, nil
}
