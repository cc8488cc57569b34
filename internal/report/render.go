package report

import (
	"io"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Render writes the human-readable text report for one batch.
//
// Numbers go through an English message printer so large trial counts
// read as "100,000" rather than "100000". The layout is stable and
// covered by a golden test.
func Render(w io.Writer, stats Summary, types []TypeStats, crosstab []CrossTabRow) {
	p := message.NewPrinter(language.English)

	p.Fprintf(w, "Batch %s: %d trials\n", stats.BatchID, stats.Trials)
	p.Fprintf(w, "\n")
	p.Fprintf(w, "Key metrics\n")
	p.Fprintf(w, "  probability of delay (duration > %d months): %.1f%%\n", stats.ThresholdMonths, stats.DelayProbability*100)
	p.Fprintf(w, "  average delay: %.1f months\n", stats.MeanDelay)
	p.Fprintf(w, "  max delay observed: %d months\n", stats.MaxDelay)
	p.Fprintf(w, "  average duration: %.1f months\n", stats.MeanDuration)
	p.Fprintf(w, "  duration percentiles: p50=%d p90=%d p95=%d p99=%d\n",
		stats.Percentiles["p50"], stats.Percentiles["p90"], stats.Percentiles["p95"], stats.Percentiles["p99"])

	if len(types) == 0 {
		p.Fprintf(w, "\n")
		p.Fprintf(w, "No risk events fired.\n")
		return
	}

	p.Fprintf(w, "\n")
	p.Fprintf(w, "Risk analysis\n")
	for _, ts := range types {
		p.Fprintf(w, "  %s: fired %d times (%.1f%% of events), avg delay %.1f months, total %d months\n",
			ts.Type, ts.Count, ts.Share*100, ts.MeanDelay, ts.TotalDelay)
	}

	p.Fprintf(w, "\n")
	p.Fprintf(w, "Mitigation strategies\n")
	for _, row := range crosstab {
		p.Fprintf(w, "  %s: %s (%d)\n", row.Type, row.Mitigation, row.Count)
	}
}
