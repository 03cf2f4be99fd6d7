package ninjalog

import (
	"sort"

	"ninjatrace/internal/chrometrace"
)

const traceCategory = "targets"

// ToTraces converts scheduled builds into trace events. Each build
// becomes one process and each worker slot one thread inside it, so
// viewers group the builds into separate lanes. Within a build, events
// come out in the same start order the scheduler used. AssignSlots must
// have run on every build first.
func ToTraces(builds []Build) []chrometrace.Trace {
	traces := []chrometrace.Trace{}
	for pid, b := range builds {
		steps := append([]Record(nil), b.Steps...)
		sort.SliceStable(steps, func(i, j int) bool {
			return steps[i].Start < steps[j].Start
		})
		for _, step := range steps {
			traces = append(traces, chrometrace.Trace{
				Name:            step.Name,
				Category:        traceCategory,
				EventType:       chrometrace.CompleteEvent,
				TimestampMicros: step.Start * 1000,
				DurationMicros:  step.Duration() * 1000,
				ProcessID:       pid,
				ThreadID:        step.Slot,
				Args:            map[string]any{},
			})
		}
	}
	return traces
}
