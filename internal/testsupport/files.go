package testsupport

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// OutcomeHeader is a representative StudentOutcomeLevel export header.
var OutcomeHeader = []string{
	"APS Year", "Reporting Test", "Cases ID", "First Name", "Second Name", "Surname",
	"Home Group", "Date of Birth", "Gender", "LBOTE", "ATSI",
	"Home School Name", "Reporting School Name",
	"READING", "READING Proficiency", "NUMERACY", "NUMERACY Proficiency",
}

// WriteCSV writes header and rows to path, creating parent directories.
func WriteCSV(t testing.TB, path string, header []string, rows [][]string) {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("write header %s: %v", path, err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write rows %s: %v", path, err)
	}
}

// OutcomeRows builds count export rows. Every row whose index is a multiple
// of blankEvery has an empty Cases ID; blankEvery <= 0 disables blanks.
func OutcomeRows(campus string, count, blankEvery int) [][]string {
	rows := make([][]string, 0, count)
	for i := 0; i < count; i++ {
		id := fmt.Sprintf("%s-%04d", strings.ToUpper(campus), i+1)
		if blankEvery > 0 && i%blankEvery == 0 {
			id = ""
		}
		rows = append(rows, []string{
			"2023", "Y3", id, fmt.Sprintf("Student%d", i+1), "", campus,
			"3A", "2015-01-01", "F", "N", "N",
			campus + " PS", campus + " PS",
			"400", "Strong", "390", "Developing",
		})
	}
	return rows
}

// WriteOutcomeFile writes an export named for the convention into dir and
// returns its path.
func WriteOutcomeFile(t testing.TB, dir, year, level, campus string, rows [][]string) string {
	t.Helper()
	path := filepath.Join(dir, fmt.Sprintf("%s_StudentOutcomeLevel_%s_%s.csv", year, level, campus))
	WriteCSV(t, path, OutcomeHeader, rows)
	return path
}

// ReadCSV reads every record from path.
func ReadCSV(t testing.TB, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open %s: %v", path, err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return records
}
