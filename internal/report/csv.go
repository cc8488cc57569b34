package report

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/roach88/riskcast/internal/model"
)

// WriteSummariesCSV exports the per-run summaries as delimited text, one
// row per run in run order. Columns: run, total_delay, total_duration.
func WriteSummariesCSV(w io.Writer, summaries []model.RunSummary) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"run", "total_delay", "total_duration"}); err != nil {
		return err
	}
	for run, s := range summaries {
		record := []string{
			strconv.Itoa(run),
			strconv.Itoa(s.TotalDelay),
			strconv.Itoa(s.TotalDuration),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
