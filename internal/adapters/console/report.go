// Package console renders the final report to a writer.
package console

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/sgmobility/taxihotspots/internal/core/domain"
)

// WriteText renders the report as a plain-text table.
func WriteText(w io.Writer, report *domain.Report) error {
	if _, err := fmt.Fprintf(w, "Total Available Taxis: %d\n\n", report.TotalTaxis); err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tArea\tCount\tLocation\tGoogle Maps Link")
	for _, row := range report.Areas {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n",
			row.Rank, row.Name, row.Count, row.Description, row.MapsLink)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if report.Unassigned > 0 {
		_, err := fmt.Fprintf(w, "\n%d taxis outside all planning areas (excluded)\n", report.Unassigned)
		return err
	}
	return nil
}

// WriteJSON renders the report as indented JSON.
func WriteJSON(w io.Writer, report *domain.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
