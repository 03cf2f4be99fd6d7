// Package ninjalog parses ninja's .ninja_log (format v5), splits it into
// the individual builds it accumulated, and reconstructs a plausible
// worker schedule for each one.
package ninjalog

// Record is one completed build target logged by ninja.
type Record struct {
	Start int    // milliseconds from the start of its build
	End   int    // milliseconds, End >= Start
	Name  string // output path of the target
	Hash  string // ninja's command hash; identity only, never timing
	Slot  int    // worker slot assigned by AssignSlots, -1 until then
}

// Duration returns the wall time the target took, in milliseconds.
func (r Record) Duration() int { return r.End - r.Start }

// Same reports whether both records describe the same target built from
// the same command. Timing plays no part in identity.
func (r Record) Same(other Record) bool {
	return r.Name == other.Name && r.Hash == other.Hash
}

// Overlaps reports whether r starts or ends strictly inside other's open
// interval. This is a membership check; AssignSlots uses its own
// non-strict comparison so that back-to-back targets can share a slot.
func (r Record) Overlaps(other Record) bool {
	return (r.Start > other.Start && r.Start < other.End) ||
		(r.End > other.Start && r.End < other.End)
}

// Build is one ninja invocation inferred from the log, holding its
// records in log (completion) order.
type Build struct {
	Steps []Record
}

func (b *Build) contains(r Record) bool {
	for _, s := range b.Steps {
		if s.Same(r) {
			return true
		}
	}
	return false
}
