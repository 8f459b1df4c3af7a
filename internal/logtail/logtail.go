package logtail

import (
	"bufio"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

// Read returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Read(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, "open log")
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count, idx := 0, 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read log")
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded console log record.
type Entry struct {
	Time     string
	Severity string
	Message  string
	// Fields holds the remaining structured fields as key=value pairs, sorted by key.
	Fields []string
	Raw    string
}

// Parse decodes a JSON log line. Lines that are not JSON objects come back
// with only Message and Raw set.
func Parse(line string) Entry {
	e := Entry{Raw: line}
	var record map[string]any
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		e.Message = strings.TrimSpace(line)
		return e
	}
	e.Time, _ = record["timestamp"].(string)
	e.Severity, _ = record["severity"].(string)
	e.Message, _ = record["message"].(string)
	delete(record, "timestamp")
	delete(record, "severity")
	delete(record, "message")

	keys := make([]string, 0, len(record))
	for k := range record {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		e.Fields = append(e.Fields, k+"="+format(record[k]))
	}
	return e
}

// Tail reads and decodes the last maxLines records of path.
func Tail(path string, maxLines int) ([]Entry, error) {
	lines, err := Read(path, maxLines)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		entries = append(entries, Parse(l))
	}
	return entries, nil
}

func format(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "?"
	}
	return string(b)
}
