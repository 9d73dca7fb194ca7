package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns every line. A missing file yields no lines.
func Read(path string, maxLines int) ([]string, error) {
	return ReadFunc(path, maxLines, nil)
}

// ReadLevel is Read restricted to slog text records at or above min.
// Lines without a level= attribute are skipped.
func ReadLevel(path string, maxLines int, min slog.Level) ([]string, error) {
	return ReadFunc(path, maxLines, func(line string) bool {
		level, ok := LineLevel(line)
		return ok && level >= min
	})
}

// ReadFunc returns the last maxLines lines for which keep reports true.
// A nil keep accepts every line.
func ReadFunc(path string, maxLines int, keep func(string) bool) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			if line := scanner.Text(); keep == nil || keep(line) {
				lines = append(lines, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		line := scanner.Text()
		if keep != nil && !keep(line) {
			continue
		}
		ring[idx] = line
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
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

// LineLevel extracts the level of a slog text-handler line.
func LineLevel(line string) (slog.Level, bool) {
	const key = "level="
	i := strings.Index(line, key)
	if i < 0 {
		return 0, false
	}
	rest := line[i+len(key):]
	if end := strings.IndexByte(rest, ' '); end >= 0 {
		rest = rest[:end]
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(rest)); err != nil {
		return 0, false
	}
	return level, true
}
