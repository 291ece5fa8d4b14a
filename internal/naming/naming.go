// Package naming parses the StudentOutcomeLevel export filename convention.
//
// Metadata (test year, year level, campus) is carried only by the filename:
//
//	[TestYear]_StudentOutcomeLevel_Yr[Level]_[Campus].csv
//
// Parse enforces the pattern and fails with ErrInvalidFilename. ParseLenient
// keeps the historical positional token rules for folders that predate the
// convention.
package naming

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

// Convention is the human-readable filename pattern shown to operators.
const Convention = "[test_year]_StudentOutcomeLevel_Yr[x]_[campus].csv"

// Extension is the only file extension the consolidator reads.
const Extension = ".csv"

// ErrInvalidFilename marks a source file whose name does not follow Convention.
var ErrInvalidFilename = errors.New("invalid source filename")

var conventionPattern = regexp.MustCompile(`^(\d{4})_StudentOutcomeLevel_([Yy][Rr]\d{1,2})_([^_.]+)\.csv$`)

// Source is the metadata encoded in a source filename.
type Source struct {
	Name      string `json:"name"`
	TestYear  string `json:"test_year"`
	YearLevel string `json:"year_level"`
	Campus    string `json:"campus"`
}

// Parse validates name against Convention and returns its tokens verbatim.
// Directory components are ignored.
func Parse(name string) (Source, error) {
	base := filepath.Base(name)
	match := conventionPattern.FindStringSubmatch(base)
	if match == nil {
		return Source{}, fmt.Errorf("%w: %q does not match %s", ErrInvalidFilename, base, Convention)
	}
	campus := strings.TrimSpace(match[3])
	if campus == "" {
		return Source{}, fmt.Errorf("%w: %q has an empty campus token", ErrInvalidFilename, base)
	}
	return Source{
		Name:      base,
		TestYear:  match[1],
		YearLevel: match[2],
		Campus:    campus,
	}, nil
}

// ParseLenient derives metadata from fixed underscore positions: token 0 is the
// test year, token 2 the year level, token 3 the campus, each cut at the first
// dot. Names with fewer than four tokens still fail.
func ParseLenient(name string) (Source, error) {
	base := filepath.Base(name)
	tokens := strings.Split(base, "_")
	if len(tokens) < 4 {
		return Source{}, fmt.Errorf("%w: %q has %d underscore-delimited tokens, need at least 4", ErrInvalidFilename, base, len(tokens))
	}
	return Source{
		Name:      base,
		TestYear:  beforeDot(tokens[0]),
		YearLevel: beforeDot(tokens[2]),
		Campus:    beforeDot(tokens[3]),
	}, nil
}

// IsCandidate reports whether name looks like a consolidator input at all.
func IsCandidate(name string) bool {
	return strings.HasSuffix(name, Extension)
}

func beforeDot(token string) string {
	if idx := strings.IndexByte(token, '.'); idx >= 0 {
		return token[:idx]
	}
	return token
}
