// Package format renders per-build statistics for terminal consumption.
package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"ninjatrace/internal/ninjalog"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-runewidth"
)

// BuildStats summarizes one build recorded in the log.
type BuildStats struct {
	Build         int    `json:"build"`
	Targets       int    `json:"targets"`
	WallMillis    int    `json:"wall_ms"`
	CPUMillis     int    `json:"cpu_ms"`
	Slots         int    `json:"slots"`
	LongestName   string `json:"longest_target"`
	LongestMillis int    `json:"longest_ms"`
}

// Summarize computes per-build aggregates. AssignSlots must have run on
// every build so slot counts are populated.
func Summarize(builds []ninjalog.Build) []BuildStats {
	stats := make([]BuildStats, 0, len(builds))
	for i, b := range builds {
		s := BuildStats{Build: i, Targets: len(b.Steps)}
		for _, step := range b.Steps {
			s.CPUMillis += step.Duration()
			if step.Slot+1 > s.Slots {
				s.Slots = step.Slot + 1
			}
			if step.Duration() > s.LongestMillis || s.LongestName == "" {
				s.LongestMillis = step.Duration()
				s.LongestName = step.Name
			}
		}
		if len(b.Steps) > 0 {
			minStart, maxEnd := b.Steps[0].Start, b.Steps[0].End
			for _, step := range b.Steps[1:] {
				if step.Start < minStart {
					minStart = step.Start
				}
				if step.End > maxEnd {
					maxEnd = step.End
				}
			}
			s.WallMillis = maxEnd - minStart
		}
		stats = append(stats, s)
	}
	return stats
}

// WriteStats writes build statistics to w in the requested format.
// nameWidth caps the display width of target names in table and plain
// output; zero or negative means no clipping.
func WriteStats(w io.Writer, stats []BuildStats, format string, nameWidth int) error {
	switch strings.ToLower(format) {
	case "", "table":
		return writeStatsTable(w, stats, nameWidth)
	case "plain":
		return writeStatsPlain(w, stats, nameWidth)
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeStatsPlain(w io.Writer, stats []BuildStats, nameWidth int) error {
	if _, err := fmt.Fprintln(w, "build\ttargets\twall\tcpu\tslots\tlongest\tlongest_time"); err != nil {
		return err
	}
	for _, s := range stats {
		line := fmt.Sprintf(
			"%d\t%d\t%s\t%s\t%d\t%s\t%s",
			s.Build,
			s.Targets,
			formatMillis(s.WallMillis),
			formatMillis(s.CPUMillis),
			s.Slots,
			clipName(s.LongestName, nameWidth),
			formatMillis(s.LongestMillis),
		)
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeStatsTable(w io.Writer, stats []BuildStats, nameWidth int) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 6, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 7, Align: text.AlignRight, AlignHeader: text.AlignCenter},
	})

	tw.AppendHeader(table.Row{"Build", "Targets", "Wall", "CPU", "Slots", "Longest Target", "Time"})

	for _, s := range stats {
		tw.AppendRow(table.Row{
			s.Build,
			s.Targets,
			formatMillis(s.WallMillis),
			formatMillis(s.CPUMillis),
			s.Slots,
			clipName(s.LongestName, nameWidth),
			formatMillis(s.LongestMillis),
		})
	}

	if len(stats) == 0 {
		tw.AppendRow(table.Row{"-", 0, "0ms", "0ms", 0, "(no builds)", "0ms"})
	}

	_ = tw.Render()
	return nil
}

// clipName truncates a target name to the given display width, counting
// wide runes as two columns.
func clipName(name string, width int) string {
	if width <= 0 || runewidth.StringWidth(name) <= width {
		return name
	}
	return runewidth.Truncate(name, width, "…")
}

func formatMillis(ms int) string {
	if ms >= 1000 {
		return fmt.Sprintf("%.3fs", float64(ms)/1000)
	}
	return fmt.Sprintf("%dms", ms)
}
