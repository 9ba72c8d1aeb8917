// Package histfile persists history as JSON lines, one object per
// submitted line with its timestamp. Malformed lines are skipped on load
// so a damaged file degrades instead of failing the session.
package histfile

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Entry is one persisted history line.
type Entry struct {
	Line string
	Time time.Time
}

// Load reads the entries from path, oldest first. A missing file is not
// an error.
func Load(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("opening history file %s: %w", path, err)
	}
	defer f.Close()

	var entries []Entry
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		raw := scanner.Text()
		if !gjson.Valid(raw) {
			continue
		}
		line := gjson.Get(raw, "line")
		if !line.Exists() {
			continue
		}
		entry := Entry{Line: line.String()}
		if ts := gjson.Get(raw, "ts"); ts.Exists() {
			if t, err := time.Parse(time.RFC3339, ts.String()); err == nil {
				entry.Time = t
			}
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading history file %s: %w", path, err)
	}
	return entries, nil
}

// Append writes one entry to the end of path, creating it if needed.
func Append(path, line string, at time.Time) error {
	record, err := sjson.Set("", "line", line)
	if err != nil {
		return fmt.Errorf("encoding history entry: %w", err)
	}
	record, err = sjson.Set(record, "ts", at.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("encoding history entry: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening history file %s: %w", path, err)
	}

	if _, err := f.WriteString(record + "\n"); err != nil {
		f.Close()
		return fmt.Errorf("writing history file %s: %w", path, err)
	}
	return f.Close()
}

// Save rewrites path with the given lines, newest last. Used to trim the
// file to the in-memory retention bound on shutdown.
func Save(path string, lines []string, at time.Time) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("opening history file %s: %w", tmp, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		record, err := sjson.Set("", "line", line)
		if err == nil {
			record, err = sjson.Set(record, "ts", at.Format(time.RFC3339))
		}
		if err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("encoding history entry: %w", err)
		}
		if _, err := w.WriteString(record + "\n"); err != nil {
			f.Close()
			os.Remove(tmp)
			return fmt.Errorf("writing history file %s: %w", tmp, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		os.Remove(tmp)
		return fmt.Errorf("writing history file %s: %w", tmp, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("closing history file %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}
