package audit

import (
	"bufio"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"
)

// Filter selects audit entries for export.
type Filter struct {
	Since     *time.Time // on or after
	Until     *time.Time // before
	Operation string     // exact operation, or "" for all
	Pass      string     // entries that ran this pass, or "" for all
}

// Matches reports whether e passes the filter. A nil filter matches everything.
func (f *Filter) Matches(e *Entry) bool {
	if f == nil {
		return true
	}
	if f.Operation != "" && e.Operation != f.Operation {
		return false
	}
	if f.Pass != "" && !slices.Contains(e.Passes, f.Pass) {
		return false
	}
	if f.Since != nil || f.Until != nil {
		ts, err := time.Parse(time.RFC3339, e.Timestamp)
		if err != nil {
			return false
		}
		if f.Since != nil && ts.Before(*f.Since) {
			return false
		}
		if f.Until != nil && !ts.Before(*f.Until) {
			return false
		}
	}
	return true
}

// Read loads the entries of a JSON-lines audit log that match filter.
// Malformed lines are skipped.
func Read(path string, filter *Filter) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var entries []Entry
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		var e Entry
		if err := json.Unmarshal([]byte(line), &e); err != nil {
			continue
		}
		if !filter.Matches(&e) {
			continue
		}
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// ExportJSON renders entries as a JSON array.
func ExportJSON(entries []Entry) ([]byte, error) {
	if entries == nil {
		entries = []Entry{}
	}
	return json.MarshalIndent(entries, "", "  ")
}

// ExportCSV renders entries as CSV with a header row. Passes are joined with spaces.
func ExportCSV(entries []Entry) ([]byte, error) {
	var buf strings.Builder
	w := csv.NewWriter(&buf)
	header := []string{"timestamp", "operation", "input_file", "output_file", "passes", "in_size", "out_size", "user", "hostname", "success", "error"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, e := range entries {
		row := []string{
			e.Timestamp,
			e.Operation,
			e.InputFile,
			e.OutputFile,
			strings.Join(e.Passes, " "),
			fmt.Sprint(e.InSize),
			fmt.Sprint(e.OutSize),
			e.User,
			e.Hostname,
			fmt.Sprint(e.Success),
			e.Error,
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return []byte(buf.String()), nil
}
