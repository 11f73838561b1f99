// Package csv implements a streaming, column-spec-driven parser for the
// OpenFlights .dat files. The files are headerless CSV with standard quoting
// (names contain commas), the literal token `\N` as a null sentinel, and the
// occasional malformed row, which is reported and skipped rather than
// aborting the run.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Column value types. A cell is coerced to the declared type before it
// reaches the mapping layer.
const (
	TypeString = "string"
	TypeInt    = "int"
	TypeFloat  = "float"
	TypeBool   = "bool" // accepts Y/N in addition to the usual spellings
)

// nullSentinel is the token OpenFlights uses for missing values.
const nullSentinel = `\N`

// Column declares one position of a fixed headerless schema.
type Column struct {
	Name     string
	Type     string
	Nullable bool
}

// Record is a parsed row: column name to coerced value. Null cells are
// present with a nil value so mappers can distinguish "missing column"
// (a bug) from "null cell" (expected).
type Record map[string]any

// RowError describes a recoverable per-row failure: too many fields, a
// null in a non-nullable column, or a coercion failure on a non-nullable
// column. Rows with a RowError are skipped; the run continues. Line is the
// physical input line the row starts on, so quoted multi-line fields do
// not shift later positions.
type RowError struct {
	Line int
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }

// Parser parses one fixed schema. It is stateless and safe to reuse;
// iteration restarts by calling ParseFile again.
type Parser struct {
	cols []Column
}

// NewParser constructs a Parser for the given column specification.
func NewParser(cols []Column) *Parser {
	return &Parser{cols: cols}
}

// ParseFile opens path and streams coerced records to fn in file order.
// Recoverable row failures go to onErr (which may be nil) and the row is
// skipped. The returned error is fatal: unreadable file, a mid-stream read
// failure, or context cancellation. fn returning an error is also fatal
// and stops iteration.
func (p *Parser) ParseFile(ctx context.Context, path string, fn func(line int, rec Record) error, onErr func(RowError)) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return p.Parse(ctx, f, fn, onErr)
}

// Parse streams coerced records from r. See ParseFile for semantics; this
// entry point exists for callers that already hold a reader (and for tests).
func (p *Parser) Parse(ctx context.Context, r io.Reader, fn func(line int, rec Record) error, onErr func(RowError)) error {
	// Strip an optional UTF-8 BOM before the bytes reach encoding/csv.
	cr := csv.NewReader(transform.NewReader(r, unicode.UTF8BOM.NewDecoder()))
	cr.ReuseRecord = true
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1 // width enforced after read, so bad rows are skippable

	records := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		row, err := cr.Read()
		if err == io.EOF {
			return nil
		}
		records++
		if err != nil {
			if onErr != nil {
				line := records
				var pe *csv.ParseError
				if errors.As(err, &pe) {
					line = pe.Line
				}
				onErr(RowError{Line: line, Err: fmt.Errorf("csv read: %w", err)})
			}
			continue
		}
		line, _ := cr.FieldPos(0)

		// Extra fields are unrecoverable. Short rows pad their missing
		// trailing columns with nulls and fail below only if a padded
		// column is non-nullable.
		if len(row) > len(p.cols) {
			if onErr != nil {
				onErr(RowError{Line: line, Err: fmt.Errorf("field count: expected %d, got %d", len(p.cols), len(row))})
			}
			continue
		}

		rec := make(Record, len(p.cols))
		bad := false
		for i, col := range p.cols {
			raw := ""
			if i < len(row) {
				raw = row[i]
			}
			v, err := coerce(col, raw)
			if err != nil {
				if onErr != nil {
					onErr(RowError{Line: line, Err: fmt.Errorf("column %s: %w", col.Name, err)})
				}
				bad = true
				break
			}
			rec[col.Name] = v
		}
		if bad {
			continue
		}

		if err := fn(line, rec); err != nil {
			return err
		}
	}
}

// coerce converts one raw cell to the column's declared type.
//
// Null handling mirrors the source dataset: `\N` and the empty string are
// null. A null in a non-nullable column is an error. A value that cannot be
// coerced is nil for nullable columns (the dataset is known to contain
// garbage in optional numeric fields) and an error otherwise, so identifier
// columns fail closed.
func coerce(col Column, raw string) (any, error) {
	if raw == nullSentinel || raw == "" {
		if !col.Nullable {
			return nil, fmt.Errorf("null value in non-nullable column")
		}
		return nil, nil
	}

	v, err := coerceValue(col.Type, raw)
	if err != nil {
		if col.Nullable {
			return nil, nil
		}
		return nil, err
	}
	return v, nil
}

func coerceValue(typ, raw string) (any, error) {
	switch typ {
	case TypeString:
		return raw, nil
	case TypeInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse int %q", raw)
		}
		return n, nil
	case TypeFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("parse float %q", raw)
		}
		return f, nil
	case TypeBool:
		switch strings.ToLower(strings.TrimSpace(raw)) {
		case "y", "yes", "true", "1":
			return true, nil
		case "n", "no", "false", "0":
			return false, nil
		}
		return nil, fmt.Errorf("parse bool %q", raw)
	default:
		return nil, fmt.Errorf("unknown column type %q", typ)
	}
}
