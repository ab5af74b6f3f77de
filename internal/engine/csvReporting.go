package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"carloansim/types"
)

// WriteResultsCSVFile writes scenario results to a CSV file at the given path.
func WriteResultsCSVFile(path string, results []types.ScenarioResult) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create results file: %w", err)
	}
	defer f.Close()

	return writeResultsCSV(f, results)
}

// writeResultsCSV writes results to any io.Writer as CSV.
// You can pass os.Stdout for debugging, or a file.
func writeResultsCSV(w io.Writer, results []types.ScenarioResult) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{
		"start_date",
		"nw_cash_end",
		"nw_loan_lump_end",
		"diff_loan_lump",
		"nw_loan_dca_weekly_end",
		"diff_loan_dca_weekly",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range results {
		record := []string{
			r.StartDate.Format("2006-01-02"),
			r.CashEnd.String(),
			r.LoanLumpEnd.String(),
			r.DiffLump.String(),
			r.LoanDCAEnd.String(),
			r.DiffDCA.String(),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	// Check for any error from the csv.Writer
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}

	return nil
}
