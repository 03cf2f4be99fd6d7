package ninjalog

// Segmenter splits a flat record stream into the builds that produced
// it. The log carries no explicit separators between builds, so
// boundaries are inferred from two cues: a target reappearing means it
// was rebuilt, and ninja appends records in completion order, so an end
// time earlier than the previous record's means a new build started.
//
// The second cue assumes the first target finished in a later build
// never outlasts targets already finished in the previous one. When a
// build's tail overlaps the next build's head the two are grouped
// together. That imprecision is inherent to the log format.
type Segmenter struct {
	sealed  []Build
	current Build
}

// Add appends r to the current build, sealing it and opening a new one
// first when r signals a boundary.
func (s *Segmenter) Add(r Record) {
	if needNewBuild(&s.current, r) {
		s.sealed = append(s.sealed, s.current)
		s.current = Build{}
	}
	s.current.Steps = append(s.current.Steps, r)
}

// Builds seals the current build and returns all builds in log order.
// The segmenter must not be reused afterwards.
func (s *Segmenter) Builds() []Build {
	if len(s.sealed) == 0 && len(s.current.Steps) == 0 {
		return nil
	}
	return append(s.sealed, s.current)
}

// Segment groups records, given in log order, into builds.
func Segment(records []Record) []Build {
	var s Segmenter
	for _, r := range records {
		s.Add(r)
	}
	return s.Builds()
}

func needNewBuild(current *Build, r Record) bool {
	if len(current.Steps) == 0 {
		return false
	}
	if current.contains(r) {
		return true
	}
	return r.End < current.Steps[len(current.Steps)-1].End
}
