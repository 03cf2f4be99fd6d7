package format

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"ninjatrace/internal/ninjalog"
)

func sampleBuilds() []ninjalog.Build {
	return []ninjalog.Build{
		{Steps: []ninjalog.Record{
			{Start: 0, End: 10, Name: "a.o", Hash: "h1", Slot: 0},
			{Start: 2, End: 8, Name: "b.o", Hash: "h2", Slot: 1},
		}},
		{Steps: []ninjalog.Record{
			{Start: 20, End: 25, Name: "c.o", Hash: "h3", Slot: 0},
		}},
	}
}

func TestSummarize(t *testing.T) {
	stats := Summarize(sampleBuilds())
	if len(stats) != 2 {
		t.Fatalf("expected 2 stats rows, got %d", len(stats))
	}

	first := stats[0]
	if first.Build != 0 || first.Targets != 2 {
		t.Fatalf("unexpected first row: %+v", first)
	}
	if first.WallMillis != 10 {
		t.Fatalf("wall time should span min start to max end, got %d", first.WallMillis)
	}
	if first.CPUMillis != 16 {
		t.Fatalf("cpu time should sum durations, got %d", first.CPUMillis)
	}
	if first.Slots != 2 {
		t.Fatalf("expected 2 slots, got %d", first.Slots)
	}
	if first.LongestName != "a.o" || first.LongestMillis != 10 {
		t.Fatalf("unexpected longest target: %+v", first)
	}

	second := stats[1]
	if second.Build != 1 || second.Targets != 1 || second.Slots != 1 || second.WallMillis != 5 {
		t.Fatalf("unexpected second row: %+v", second)
	}
}

func TestSummarizeEmptyBuild(t *testing.T) {
	stats := Summarize([]ninjalog.Build{{}})
	if len(stats) != 1 {
		t.Fatalf("expected 1 row, got %d", len(stats))
	}
	if stats[0].Targets != 0 || stats[0].WallMillis != 0 || stats[0].Slots != 0 {
		t.Fatalf("empty build should produce zeroed aggregates: %+v", stats[0])
	}
}

func TestWriteStatsPlain(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStats(&buf, Summarize(sampleBuilds()), "plain", 0); err != nil {
		t.Fatalf("WriteStats returned error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "build\ttargets\twall") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "a.o") {
		t.Fatalf("first row should name the longest target: %q", lines[1])
	}
}

func TestWriteStatsJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStats(&buf, Summarize(sampleBuilds()), "json", 0); err != nil {
		t.Fatalf("WriteStats returned error: %v", err)
	}

	var decoded []BuildStats
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("json output did not decode: %v", err)
	}
	if len(decoded) != 2 || decoded[0].CPUMillis != 16 {
		t.Fatalf("unexpected decoded stats: %+v", decoded)
	}
}

func TestWriteStatsTable(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteStats(&buf, Summarize(sampleBuilds()), "table", 0); err != nil {
		t.Fatalf("WriteStats returned error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Longest Target") || !strings.Contains(out, "a.o") {
		t.Fatalf("unexpected table output: %q", out)
	}
}

func TestWriteStatsUnsupportedFormat(t *testing.T) {
	if err := WriteStats(&bytes.Buffer{}, nil, "yaml", 0); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestClipName(t *testing.T) {
	if got := clipName("short.o", 20); got != "short.o" {
		t.Fatalf("names within the width should pass through: %q", got)
	}
	got := clipName("very/long/path/to/target.o", 10)
	if !strings.HasSuffix(got, "…") {
		t.Fatalf("clipped name should end with an ellipsis: %q", got)
	}
	if clipped := clipName("whatever/else.o", 0); clipped != "whatever/else.o" {
		t.Fatalf("zero width should disable clipping: %q", clipped)
	}
}

func TestFormatMillis(t *testing.T) {
	if got := formatMillis(450); got != "450ms" {
		t.Fatalf("unexpected sub-second format: %q", got)
	}
	if got := formatMillis(12345); got != "12.345s" {
		t.Fatalf("unexpected seconds format: %q", got)
	}
}
