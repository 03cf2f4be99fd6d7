package ninjalog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"
)

var versionPattern = regexp.MustCompile(`^#[\t ]+ninja[\t ]+log[\t ]+v(\d+)`)

// parseVersion extracts the format version from a header comment line.
// It returns false for anything that is not a version marker.
func parseVersion(line string) (int, bool) {
	m := versionPattern.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	v, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

// checkVersion returns a *VersionError naming the closest supported
// version when version is not supported.
func checkVersion(version int) error {
	closest := supportedVersions[0]
	for _, v := range supportedVersions {
		if v == version {
			return nil
		}
		if abs(v-version) < abs(closest-version) {
			closest = v
		}
	}
	return &VersionError{Supported: closest, Actual: version}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// ReadRecords streams records out of a ninja log. Lines before the
// version marker are skipped; a log with no marker yields no records.
// Once the marker is found the declared version is checked, and from
// then on every non-blank, non-comment line must parse as a record.
// fn is called once per record in file order; its error stops the read.
func ReadRecords(r io.Reader, fn func(Record) error) error {
	scanner := bufio.NewScanner(r)
	// Target paths can get long in generated build files.
	const maxLineSize = 1024 * 1024
	scanner.Buffer(make([]byte, 1024), maxLineSize)

	versioned := false
	for scanner.Scan() {
		line := scanner.Text()

		if !versioned {
			version, ok := parseVersion(line)
			if !ok {
				continue
			}
			if err := checkVersion(version); err != nil {
				return err
			}
			versioned = true
			continue
		}

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		rec, err := parseRecord(line)
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan ninja log: %w", err)
	}
	return nil
}

// ReadLog reads the log at path and returns its builds in log order.
func ReadLog(path string) ([]Build, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open ninja log: %w", err)
	}
	defer file.Close()

	var seg Segmenter
	if err := ReadRecords(file, func(r Record) error {
		seg.Add(r)
		return nil
	}); err != nil {
		return nil, err
	}
	return seg.Builds(), nil
}

// parseRecord parses one body line: start, end, restat, name, hash,
// tab-separated. The restat field is positional only and discarded.
func parseRecord(line string) (Record, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 5 {
		return Record{}, &MalformedRecordError{
			Line:   line,
			Reason: fmt.Sprintf("expected 5 tab-separated fields, found %d", len(fields)),
		}
	}

	start, err := parseMillis(fields[0])
	if err != nil {
		return Record{}, &MalformedRecordError{Line: line, Reason: "start time: " + err.Error()}
	}
	end, err := parseMillis(fields[1])
	if err != nil {
		return Record{}, &MalformedRecordError{Line: line, Reason: "end time: " + err.Error()}
	}
	if end < start {
		return Record{}, &MalformedRecordError{
			Line:   line,
			Reason: fmt.Sprintf("end time %d precedes start time %d", end, start),
		}
	}

	return Record{
		Start: start,
		End:   end,
		Name:  fields[3],
		Hash:  fields[4],
		Slot:  -1,
	}, nil
}

func parseMillis(field string) (int, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("%q is not an integer", field)
	}
	if v < 0 {
		return 0, fmt.Errorf("%d is negative", v)
	}
	return v, nil
}
