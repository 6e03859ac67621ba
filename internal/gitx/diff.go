package gitx

import (
	"fmt"
	"strconv"
	"strings"
)

// ChangedLines returns the 1-based numbers of lines in the working file
// that were added or modified relative to the merge base of the baseline
// ref, via `git diff -U0 base...HEAD`.
func (r *Repository) ChangedLines(path, base string) ([]uint32, error) {
	out, err := r.git("diff", "-U0", base+"...HEAD", "--", path)
	if err != nil {
		return nil, fmt.Errorf("diff against %s: %w", base, err)
	}
	return ParseChangedLines(out), nil
}

// ParseChangedLines walks unified diff output and collects new-file line
// numbers of added lines. The walker tracks the current new-file position:
// `@@ -a,b +c,d @@` resets it to c, `+` lines are collected and advance it,
// `-` lines are skipped, context lines advance it without being collected.
func ParseChangedLines(diff string) []uint32 {
	var lines []uint32
	current := uint32(0)

	for _, line := range strings.Split(diff, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"),
			strings.HasPrefix(line, "---"),
			strings.HasPrefix(line, "index"),
			strings.HasPrefix(line, "diff"):
			// Header lines carry no position.

		case strings.HasPrefix(line, "@@"):
			if start, ok := parseHunkNewStart(line); ok {
				current = start
			}

		case strings.HasPrefix(line, "+"):
			lines = append(lines, current)
			current++

		case strings.HasPrefix(line, "-"):
			// Deleted from the old file; no new-file position consumed.

		case strings.HasPrefix(line, " "):
			current++
		}
	}

	return lines
}

// parseHunkNewStart extracts c from `@@ -a,b +c,d @@`.
func parseHunkNewStart(line string) (uint32, bool) {
	parts := strings.SplitN(line, "@@", 3)
	if len(parts) < 2 {
		return 0, false
	}
	for _, field := range strings.Fields(parts[1]) {
		if !strings.HasPrefix(field, "+") {
			continue
		}
		numStr := strings.TrimPrefix(field, "+")
		if i := strings.IndexByte(numStr, ','); i >= 0 {
			numStr = numStr[:i]
		}
		n, err := strconv.ParseUint(numStr, 10, 32)
		if err != nil {
			return 0, false
		}
		return uint32(n), true
	}
	return 0, false
}
