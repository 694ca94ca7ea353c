package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	apiclient "github.com/donaldgifford/ebay-seller-metrics/internal/api/client"
	"github.com/donaldgifford/ebay-seller-metrics/internal/sensor"
	"github.com/donaldgifford/ebay-seller-metrics/pkg/types"
)

const timeLayout = "2006-01-02 15:04:05"

// tabWriter wraps tabwriter with error tracking.
type tabWriter struct {
	*tabwriter.Writer
	err error
}

func newTabWriter(w io.Writer) *tabWriter {
	return &tabWriter{Writer: tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)}
}

func (tw *tabWriter) writef(format string, args ...any) {
	if tw.err != nil {
		return
	}
	_, tw.err = fmt.Fprintf(tw.Writer, format, args...)
}

func (tw *tabWriter) finish() error {
	if tw.err != nil {
		return tw.err
	}
	return tw.Flush()
}

func printSnapshot(w io.Writer, collectedAt time.Time, m map[string]float64, degraded []string) error {
	tw := newTabWriter(w)
	tw.writef("Collected:\t%s\n", collectedAt.Local().Format(timeLayout))
	if len(degraded) > 0 {
		tw.writef("Degraded:\t%s\n", strings.Join(degraded, ", "))
	}
	tw.writef("\nKEY\tVALUE\n")
	for _, k := range types.Keys() {
		tw.writef("%s\t%s\n", k, formatValue(k, m[k]))
	}
	return tw.finish()
}

func printSensorsTable(w io.Writer, sensors []sensor.Value) error {
	tw := newTabWriter(w)
	tw.writef("NAME\tVALUE\tICON\n")
	for i := range sensors {
		tw.writef("%s\t%s\t%s\n",
			sensors[i].Name,
			formatValue(sensors[i].Key, sensors[i].Value),
			sensors[i].Icon,
		)
	}
	return tw.finish()
}

func printPollRunsTable(w io.Writer, runs []types.PollRun) error {
	tw := newTabWriter(w)
	tw.writef("STARTED\tSTATUS\tCOMPLETED\tDEGRADED\tERROR\n")
	for i := range runs {
		r := &runs[i]
		completed := "-"
		if r.CompletedAt != nil {
			completed = r.CompletedAt.Local().Format(timeLayout)
		}
		tw.writef("%s\t%s\t%s\t%d\t%s\n",
			r.StartedAt.Local().Format(timeLayout),
			r.Status,
			completed,
			r.DegradedEndpoints,
			truncate(r.ErrorText, 40),
		)
	}
	return tw.finish()
}

func printSnapshotPage(w io.Writer, page *apiclient.SnapshotPage) error {
	tw := newTabWriter(w)
	tw.writef("COLLECTED\tDUE TODAY\tUNFULFILLED\tSALES TODAY\tDEGRADED\n")
	for i := range page.Snapshots {
		s := &page.Snapshots[i]
		tw.writef("%s\t%s\t%s\t%s\t%d\n",
			s.CollectedAt.Local().Format(timeLayout),
			formatValue(types.KeyOrdersDueToday, s.Metrics[types.KeyOrdersDueToday]),
			formatValue(types.KeyTotalUnfulfilledOrders, s.Metrics[types.KeyTotalUnfulfilledOrders]),
			formatValue(types.KeySalesToday, s.Metrics[types.KeySalesToday]),
			len(s.Degraded),
		)
	}
	tw.writef("\nShowing %d of %d snapshots.\n", len(page.Snapshots), page.Total)
	return tw.finish()
}

// formatValue renders v using the unit of the metric key.
func formatValue(key string, v float64) string {
	d, _ := sensor.Lookup(key)
	switch d.Unit {
	case sensor.UnitUSD:
		return fmt.Sprintf("$%.2f", v)
	case sensor.UnitPercent:
		return fmt.Sprintf("%.2f%%", v)
	default:
		return fmt.Sprintf("%.0f", v)
	}
}

func outputJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
