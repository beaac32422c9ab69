package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/framestamp/framestamp/internal/runner"
)

// formatSummary renders the run report in the specified format.
func formatSummary(result *Result, format string) (string, error) {
	switch format {
	case "json":
		return formatJSON(result)
	case "csv":
		return formatCSV(result)
	default: // text
		return formatText(result)
	}
}

// cellSummary is the per-cell record used by the JSON report.
type cellSummary struct {
	Source   string `json:"source"`
	Spec     string `json:"spec"`
	Sequence int    `json:"sequence"`
	Label    string `json:"label"`
	Width    int    `json:"width"`
	Height   int    `json:"height"`
	File     string `json:"file,omitempty"`
	Bytes    int    `json:"bytes,omitempty"`
	Error    string `json:"error,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

// formatJSON formats the run report as JSON.
func formatJSON(result *Result) (string, error) {
	report := struct {
		Cells    []cellSummary `json:"cells"`
		Stats    runner.Stats  `json:"stats"`
		Duration string        `json:"duration"`
	}{
		Cells:    make([]cellSummary, len(result.Cells)),
		Stats:    result.Stats,
		Duration: result.Duration.Round(time.Millisecond).String(),
	}

	for i := range result.Cells {
		cell := &result.Cells[i]
		summary := cellSummary{
			Source:   cell.ItemID,
			Spec:     cell.SpecKey,
			Sequence: cell.Sequence,
			Label:    cell.Label,
			Width:    cell.Width,
			Height:   cell.Height,
		}
		if cell.OK() {
			summary.File = result.Names[i]
			summary.Bytes = len(cell.Encoded)
		} else {
			summary.Error = cell.Err.Error()
			summary.Kind = cell.ErrorKind()
		}
		report.Cells[i] = summary
	}

	bts, err := json.MarshalIndent(report, "", "  ")
	return string(bts), err
}

// formatCSV formats the run report as CSV.
func formatCSV(result *Result) (string, error) {
	csvData := [][]string{{
		"source", "spec", "sequence", "label", "width", "height", "status", "file", "error",
	}}

	for i := range result.Cells {
		cell := &result.Cells[i]
		status, file, errMsg := "ok", result.Names[i], ""
		if !cell.OK() {
			status, file, errMsg = cell.ErrorKind(), "", cell.Err.Error()
		}
		csvData = append(csvData, []string{
			cell.ItemID,
			cell.SpecKey,
			strconv.Itoa(cell.Sequence),
			cell.Label,
			strconv.Itoa(cell.Width),
			strconv.Itoa(cell.Height),
			status,
			file,
			errMsg,
		})
	}

	var output strings.Builder
	writer := csv.NewWriter(&output)
	for _, row := range csvData {
		if err := writer.Write(row); err != nil {
			return "", err
		}
	}
	writer.Flush()
	return output.String(), nil
}

// formatText formats the run report as plain text grouped by source image.
func formatText(result *Result) (string, error) {
	var output strings.Builder
	lastSource := ""
	for i := range result.Cells {
		cell := &result.Cells[i]
		if cell.ItemID != lastSource {
			if lastSource != "" {
				output.WriteString("\n")
			}
			lastSource = cell.ItemID
			output.WriteString(fmt.Sprintf("# %s (%s)\n", cell.ItemID, cell.Label))
		}
		if cell.OK() {
			output.WriteString(fmt.Sprintf("  %-12s %dx%d -> %s (%d bytes)\n",
				cell.SpecKey, cell.Width, cell.Height, result.Names[i], len(cell.Encoded)))
		} else {
			output.WriteString(fmt.Sprintf("  %-12s %dx%d -> FAILED (%s): %v\n",
				cell.SpecKey, cell.Width, cell.Height, cell.ErrorKind(), cell.Err))
		}
	}
	output.WriteString(fmt.Sprintf("\n%d/%d cells rendered, %d failed\n",
		result.Stats.Succeeded, result.Stats.Total, result.Stats.Failed))
	return output.String(), nil
}
