// Package ingest is the canonical upload pipeline: dialect sniffing,
// row parsing, per-row validation and session aggregation. Persisting
// the result is the caller's job.
package ingest

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/race50/race50-service-go/pkg/ingest/aggregate"
	"github.com/race50/race50-service-go/pkg/ingest/parse"
	"github.com/race50/race50-service-go/pkg/ingest/sniff"
	"github.com/race50/race50-service-go/pkg/ingest/validate"
	"github.com/race50/race50-service-go/pkg/model"
)

// MaxUploadSize rejects files over 10 MB before parsing.
const MaxUploadSize = 10 << 20

// fatal input conditions; none of these leave partial state
var (
	ErrUnsupportedExtension = errors.New("unsupported file type")
	ErrFileTooLarge         = errors.New("file too large")
	ErrBinaryContent        = errors.New("binary content detected")
	ErrNoDataRows           = errors.New("no data rows")
)

// NoValidRowsError: rows were parsed but every one failed validation.
// Carries the full error list for display.
type NoValidRowsError struct {
	RowErrors []model.RowError
}

func (e *NoValidRowsError) Error() string {
	return fmt.Sprintf("no valid rows found (%d rejected)", len(e.RowErrors))
}

var allowedExtensions = map[string]bool{
	".csv": true,
	".txt": true,
	".tsv": true,
}

// Result is the outcome of a fully scanned upload.
type Result struct {
	Rows      []model.LapRow
	Summary   model.SessionSummary
	RowErrors []model.RowError
}

// SessionKey, Track and Date of the session are taken from the first
// accepted row.
func (r *Result) First() model.LapRow { return r.Rows[0] }

// Process runs the whole pipeline over one upload. Row-level
// rejections are collected in Result.RowErrors and never stop the
// scan; all returned errors are fatal to the upload.
func Process(filename string, reader io.Reader) (*Result, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowedExtensions[ext] {
		return nil, ErrUnsupportedExtension
	}

	content, err := readBounded(reader)
	if err != nil {
		return nil, err
	}
	if sniff.ContainsBinary(content) {
		return nil, ErrBinaryContent
	}

	delim := sniff.Delimiter(content)
	scanner, err := parse.NewScanner(string(content), delim)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	validator := validate.New()
	dataRows := 0
	for scanner.Next() {
		dataRows++
		row, rowErr := validator.Row(scanner.Row(), scanner.RowIndex())
		if rowErr != nil {
			res.RowErrors = append(res.RowErrors, *rowErr)
			continue
		}
		res.Rows = append(res.Rows, *row)
	}

	if dataRows == 0 {
		return nil, ErrNoDataRows
	}
	if len(res.Rows) == 0 {
		return nil, &NoValidRowsError{RowErrors: res.RowErrors}
	}

	res.Summary = aggregate.Summarize(res.Rows)
	return res, nil
}

func readBounded(reader io.Reader) ([]byte, error) {
	content, err := io.ReadAll(io.LimitReader(reader, MaxUploadSize+1))
	if err != nil {
		return nil, err
	}
	if len(content) > MaxUploadSize {
		return nil, ErrFileTooLarge
	}
	return content, nil
}
