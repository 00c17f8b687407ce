// Package export renders a table as delimited text or as a text table, with
// every header and string cell passed through the CSV injection sanitizer.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/app-sre/chartcsv/pkg/table"
)

var ErrUnsupportedFormat = errors.New("unsupported format")

type Format string

const (
	CSV   Format = "csv"
	TSV   Format = "tsv"
	Table Format = "table"
)

var formats = []Format{CSV, TSV, Table}

func (f Format) String() string { return string(f) }

// ContentType returns the media type a response carrying f should declare.
func (f Format) ContentType() string {
	switch f {
	case CSV:
		return "text/csv; charset=utf-8"
	case TSV:
		return "text/tab-separated-values; charset=utf-8"
	default:
		return "text/plain; charset=utf-8"
	}
}

// Extension returns the file extension for f, without the dot.
func (f Format) Extension() string {
	if f == Table {
		return "txt"
	}
	return string(f)
}

func Formats() []Format {
	out := make([]Format, len(formats))
	copy(out, formats)
	return out
}

// ParseFormat parses a format name. The empty string selects CSV.
func ParseFormat(s string) (Format, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CSV, nil
	}
	for _, f := range formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
}

// SerializationError wraps any failure of the underlying writer.
type SerializationError struct {
	Err error
}

func (e *SerializationError) Error() string {
	return fmt.Sprintf("unable to serialize table: %s", e.Err)
}

func (e *SerializationError) Unwrap() error {
	return e.Err
}

// Write renders t to w. A nil table writes nothing. The table is not
// modified.
func Write(w io.Writer, f Format, t *table.Table, opts ...Option) error {
	if t == nil {
		return nil
	}
	o := newOptions(f, opts)
	header, body := records(t, o)

	var err error
	switch f {
	case CSV, TSV:
		err = writeDelimited(w, header, body, o)
	case Table:
		err = writeTable(w, header, body)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, f)
	}
	if err != nil {
		return &SerializationError{Err: err}
	}
	return nil
}

// Marshal renders t and returns the bytes.
func Marshal(f Format, t *table.Table, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, f, t, opts...); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
