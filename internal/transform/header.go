package transform

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

const byteOrderMark = "\ufeff"

// NormalizeHeader trims each column name, collapses internal whitespace runs
// to one space, applies NFC and removes a stray byte order mark.
func NormalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, name := range header {
		out[i] = NormalizeName(name)
	}
	return out
}

// NormalizeName normalizes a single column name.
func NormalizeName(name string) string {
	name = strings.TrimPrefix(name, byteOrderMark)
	name = strings.Join(strings.Fields(name), " ")
	return norm.NFC.String(name)
}
