package transform_test

import (
	"strings"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"napcon/internal/naming"
	"napcon/internal/table"
	"napcon/internal/transform"
)

func TestProperty_FullNameJoinsNonEmptyParts(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 300
	properties := gopter.NewProperties(parameters)

	part := gen.OneGenOf(gen.Const(""), gen.AlphaString())

	properties.Property("full name is the space join of the non-empty parts in order", prop.ForAll(
		func(first, second, surname string) bool {
			var want []string
			for _, p := range []string{first, second, surname} {
				if p != "" {
					want = append(want, p)
				}
			}
			return transform.FullName(first, second, surname) == strings.Join(want, " ")
		},
		part, part, part,
	))

	properties.Property("padding around parts never reaches the full name", prop.ForAll(
		func(first, surname string) bool {
			padded := transform.FullName("  "+first+" ", "\t", " "+surname)
			return padded == transform.FullName(first, "", surname)
		},
		part, part,
	))

	properties.TestingRun(t)
}

func TestProperty_TransformPreservesRowsAndFlagsMissingIDs(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	src := naming.Source{Name: "2024_StudentOutcomeLevel_Yr5_East.csv", TestYear: "2024", YearLevel: "Yr5", Campus: "East"}
	stamp := time.Date(2024, time.June, 1, 9, 0, 0, 0, time.Local)

	properties.Property("row count is preserved and blank ids are reported", prop.ForAll(
		func(ids []string) bool {
			chunk := table.Chunk{Header: []string{"Cases ID", "First Name"}}
			blank := 0
			for _, id := range ids {
				chunk.Rows = append(chunk.Rows, []string{id, "Kid"})
				if id == "" {
					blank++
				}
			}
			out := transform.Transform(chunk, src, stamp)
			if out.Len() != len(ids) {
				return false
			}
			missing := transform.MissingIDs(out)
			if missing.Len() != blank {
				return false
			}
			for _, row := range missing.Rows {
				if row[0] != "Kid" || row[1] != "East" || row[2] != "2024" {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.OneGenOf(gen.Const(""), gen.NumString().SuchThat(func(s string) bool { return s != "" }))),
	))

	properties.TestingRun(t)
}
