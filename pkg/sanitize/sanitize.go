// Package sanitize neutralizes values that a spreadsheet application would
// otherwise evaluate as a formula or command when opening an export.
//
// See http://georgemauer.net/2017/10/07/csv-injection.html.
package sanitize

import (
	"regexp"
	"strings"
	"unicode"
)

const (
	triggers = "-@+|=%"

	quotePrefix = `""`
	pipe        = "|"
	escapedPipe = `\|`
	marker      = "'"
)

var negativeNumber = regexp.MustCompile(`^-[0-9.]+$`)

// IsProblematic reports whether value starts with a formula trigger, either
// directly, after exactly two double quotes, or after a run of whitespace.
func IsProblematic(value string) bool {
	if startsWithTrigger(value) {
		return true
	}
	if rest, ok := strings.CutPrefix(value, quotePrefix); ok && startsWithTrigger(rest) {
		return true
	}
	rest := strings.TrimLeftFunc(value, isSpace)
	return len(rest) < len(value) && startsWithTrigger(rest)
}

// IsNegativeNumber reports whether value is a '-' followed only by digits
// and dots.
func IsNegativeNumber(value string) bool {
	return negativeNumber.MatchString(value)
}

// Escape returns value prefixed with a single quote, and with every pipe
// escaped, when it is problematic and not a negative number. Any other value
// is returned unchanged.
func Escape(value string) string {
	if !IsProblematic(value) || IsNegativeNumber(value) {
		return value
	}
	// A pipe can lead to remote code execution through DDE.
	value = strings.ReplaceAll(value, pipe, escapedPipe)

	// Google Sheets ignores a leading space and still evaluates the cell, so
	// the quote is the only prefix that works everywhere.
	return marker + value
}

// Unescape reverses Escape for a value that Escape changed.
func Unescape(value string) string {
	rest, ok := strings.CutPrefix(value, marker)
	if !ok {
		return value
	}
	return strings.ReplaceAll(rest, escapedPipe, pipe)
}

// isSpace counts the file, group, record and unit separators as whitespace.
func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

func startsWithTrigger(s string) bool {
	return s != "" && strings.IndexByte(triggers, s[0]) >= 0
}
