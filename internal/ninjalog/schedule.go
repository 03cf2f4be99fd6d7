package ninjalog

import "sort"

// AssignSlots reconstructs a plausible worker assignment for one build.
//
// The log does not record which of ninja's workers ran a target, so the
// records are swept in start order and each takes the lowest-numbered
// slot that is free by its start time, opening a new slot when none is.
// A slot frees up at the exact instant its previous occupant ends, so a
// target starting right then reuses it. The sweep packs the build into
// the minimum number of slots, which is not necessarily the assignment
// ninja actually used; it exists for visualization.
//
// Each record's Slot is written exactly once. Records tied on start time
// keep their log order.
func AssignSlots(b *Build) {
	order := make([]int, len(b.Steps))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return b.Steps[order[i]].Start < b.Steps[order[j]].Start
	})

	// Slot 0 exists even for an empty build. The value per slot is the
	// end time of its latest occupant.
	slots := []int{0}
	for _, idx := range order {
		step := b.Steps[idx]
		assigned := -1
		for slot, busyUntil := range slots {
			if busyUntil <= step.Start {
				assigned = slot
				slots[slot] = step.End
				break
			}
		}
		if assigned < 0 {
			assigned = len(slots)
			slots = append(slots, step.End)
		}
		b.Steps[idx].Slot = assigned
	}
}
