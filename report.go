package skyblockextractor

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// RenderTable writes a per-endpoint outcome table plus the run tally to w.
func (r *Report) RenderTable(w io.Writer) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"#", "Artifact", "Description", "Status"})

	for i, result := range r.Results {
		status := "ok"
		if !result.Success {
			status = result.Error
		}
		t.AppendRow(table.Row{i + 1, result.File, result.Description, status})
	}

	t.AppendFooter(table.Row{"", "", "Extracted", fmt.Sprintf("%d/%d (%.1f%%)", r.Success, r.Total, r.SuccessRate())})
	t.AppendFooter(table.Row{"", "", "Total size", formatSize(r.Bytes)})
	t.SetStyle(table.StyleRounded)
	t.Render()
}

func formatSize(n int64) string {
	if n >= 1<<20 {
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	}
	return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
}
