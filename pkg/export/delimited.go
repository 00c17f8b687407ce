package export

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"
)

var (
	errInvalidDelimiter = errors.New("invalid field delimiter")
	errNeedEscape       = errors.New("field needs escaping but no escape character is set")
)

func writeDelimited(w io.Writer, header, body [][]string, o *Options) error {
	if o.Quoting == QuoteNone {
		return writeUnquoted(w, header, body, o)
	}

	cw := csv.NewWriter(w)
	cw.Comma = o.Delimiter
	cw.UseCRLF = o.UseCRLF
	for _, records := range [][][]string{header, body} {
		for _, record := range records {
			if err := cw.Write(escapeRecord(record, o.EscapeChar)); err != nil {
				return err
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// escapeRecord doubles every escape character so that a reader using the
// same escape character gets the field back unchanged. Quoting is left to
// encoding/csv.
func escapeRecord(record []string, escape rune) []string {
	if escape == 0 {
		return record
	}
	e := string(escape)
	out := make([]string, len(record))
	for i, field := range record {
		out[i] = strings.ReplaceAll(field, e, e+e)
	}
	return out
}

func writeUnquoted(w io.Writer, header, body [][]string, o *Options) error {
	if !validDelimiter(o.Delimiter) || o.Delimiter == o.EscapeChar {
		return fmt.Errorf("%w: %q", errInvalidDelimiter, o.Delimiter)
	}

	eol := "\n"
	if o.UseCRLF {
		eol = "\r\n"
	}

	bw := bufio.NewWriter(w)
	for _, records := range [][][]string{header, body} {
		for _, record := range records {
			for i, field := range record {
				if i > 0 {
					if _, err := bw.WriteRune(o.Delimiter); err != nil {
						return err
					}
				}
				escaped, err := escapeField(field, o)
				if err != nil {
					return err
				}
				if _, err := bw.WriteString(escaped); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(eol); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

func escapeField(field string, o *Options) (string, error) {
	special := func(r rune) bool {
		return r == o.Delimiter || r == '"' || r == '\r' || r == '\n' || (o.EscapeChar != 0 && r == o.EscapeChar)
	}
	if strings.IndexFunc(field, special) < 0 {
		return field, nil
	}
	if o.EscapeChar == 0 {
		return "", fmt.Errorf("%w: %q", errNeedEscape, field)
	}

	var sb strings.Builder
	for _, r := range field {
		if special(r) {
			sb.WriteRune(o.EscapeChar)
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}

// validDelimiter follows the rules encoding/csv applies to Writer.Comma.
func validDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}
