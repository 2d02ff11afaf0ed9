// Package parse turns delimited text into per-line field mappings.
package parse

import (
	"errors"
	"strings"
)

// ErrMissingHeader is returned when no usable header line can be
// identified. This aborts the whole upload before row validation.
var ErrMissingHeader = errors.New("missing header")

// RawRow maps a column name to the raw string of one input line.
// It only lives for the validation of that line.
type RawRow map[string]string

// Scanner yields the data rows of an upload one by one, in file
// order. The header is consumed on construction.
type Scanner struct {
	header []string
	delim  string
	lines  []string
	pos    int // physical line number of the current position (1-based)
	row    RawRow
	rowIdx int
}

// NewScanner splits content into lines, locates the header (first
// non-empty line) and prepares iteration over the remaining lines.
// A leading UTF-8 byte order mark is tolerated.
func NewScanner(content string, delim rune) (*Scanner, error) {
	content = strings.TrimPrefix(content, "\ufeff")
	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")

	s := &Scanner{delim: string(delim), lines: lines}
	for s.pos < len(lines) {
		line := lines[s.pos]
		s.pos++
		if strings.TrimSpace(line) == "" {
			continue
		}
		header := splitFields(line, s.delim)
		if emptyHeader(header) {
			return nil, ErrMissingHeader
		}
		s.header = header
		return s, nil
	}
	return nil, ErrMissingHeader
}

func (s *Scanner) Header() []string { return s.header }

// Next advances to the next non-empty data line. It returns false
// when the input is exhausted.
func (s *Scanner) Next() bool {
	for s.pos < len(s.lines) {
		line := s.lines[s.pos]
		s.pos++
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := splitFields(line, s.delim)
		row := make(RawRow, len(s.header))
		for i, name := range s.header {
			if i < len(fields) {
				row[name] = fields[i]
			} else {
				// short line: missing trailing columns read as empty
				row[name] = ""
			}
		}
		s.row = row
		s.rowIdx = s.pos
		return true
	}
	return false
}

func (s *Scanner) Row() RawRow { return s.row }

// RowIndex is the 1-based position of the current row in the file,
// counting the header as row 1.
func (s *Scanner) RowIndex() int { return s.rowIdx }

func splitFields(line, delim string) []string {
	fields := strings.Split(strings.TrimRight(line, "\r"), delim)
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func emptyHeader(fields []string) bool {
	for _, f := range fields {
		if f != "" {
			return false
		}
	}
	return true
}
