// Package sniff infers the field delimiter of an uploaded timing file
// from a bounded sample of its content.
package sniff

import (
	"bytes"
	"strings"
)

// SampleSize bounds how much of the upload is inspected. Anything
// beyond this is irrelevant for dialect detection.
const SampleSize = 4096

// DefaultDelimiter is used when no candidate is unambiguous.
const DefaultDelimiter = ','

var candidates = []rune{',', ';', '\t'}

// Delimiter inspects the sample and returns the delimiter whose count
// is stable (and non-zero) across the sample lines. Falls back to
// DefaultDelimiter when no candidate qualifies. Never fails.
func Delimiter(sample []byte) rune {
	if len(sample) > SampleSize {
		sample = sample[:SampleSize]
	}
	lines := sampleLines(sample)
	if len(lines) == 0 {
		return DefaultDelimiter
	}

	bestDelim := DefaultDelimiter
	bestCount := 0
	for _, cand := range candidates {
		count, stable := stableCount(lines, cand)
		if stable && count > bestCount {
			bestDelim = cand
			bestCount = count
		}
	}
	return bestDelim
}

// stableCount reports the per-line occurrence count of delim and
// whether that count is identical (and positive) on every line.
func stableCount(lines []string, delim rune) (int, bool) {
	count := strings.Count(lines[0], string(delim))
	if count == 0 {
		return 0, false
	}
	for _, line := range lines[1:] {
		if strings.Count(line, string(delim)) != count {
			return 0, false
		}
	}
	return count, true
}

func sampleLines(sample []byte) []string {
	raw := bytes.Split(sample, []byte("\n"))
	// the sample may end mid-line; ignore the truncated remainder
	if len(raw) > 1 {
		raw = raw[:len(raw)-1]
	}
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		line := strings.TrimRight(string(l), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// ContainsBinary reports whether the prefix looks like binary content
// (a null byte within the first SampleSize bytes).
func ContainsBinary(prefix []byte) bool {
	if len(prefix) > SampleSize {
		prefix = prefix[:SampleSize]
	}
	return bytes.IndexByte(prefix, 0x00) >= 0
}
