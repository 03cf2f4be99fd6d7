package ninjalog

import "fmt"

// supportedVersions lists the log format versions this package reads.
var supportedVersions = []int{5}

// VersionError reports a log header declaring an unsupported format
// version. Supported carries the closest supported version so the
// message can tell the user what the tool does accept.
type VersionError struct {
	Supported int
	Actual    int
}

func (e *VersionError) Error() string {
	return fmt.Sprintf("unsupported ninja log version: expected v%d, found v%d", e.Supported, e.Actual)
}

// MalformedRecordError reports a body line that does not match the
// five-field tab-separated schema. Line holds the raw input for
// diagnostics.
type MalformedRecordError struct {
	Line   string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed ninja log line %q: %s", e.Line, e.Reason)
}
