package transform

import (
	"strings"
	"time"

	"napcon/internal/naming"
	"napcon/internal/table"
)

// Transform reshapes chunk for the master table. The result has the same
// number of rows as chunk.
func Transform(chunk table.Chunk, src naming.Source, processedAt time.Time) table.Chunk {
	f := newFrame(chunk, NormalizeHeader(chunk.Header))

	f.fill(ColCampus, src.Campus)
	f.fill(ColTestYear, src.TestYear)
	f.fill(ColYearLevel, src.YearLevel)
	f.set(ColFullName, fullNames(f))
	f.fill(ColProcessedOn, processedAt.Format(TimestampLayout))
	f.fill(ColSourceFile, src.Name)

	for _, name := range DroppedColumns {
		f.drop(name)
	}
	f.rename(ColCasesID, ColStudentID)

	return f.chunk(order(f.names))
}

// FullName joins the non-empty trimmed name parts with single spaces.
func FullName(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			kept = append(kept, trimmed)
		}
	}
	return strings.Join(kept, " ")
}

func fullNames(f *frame) []string {
	first, second, surname := f.get(ColFirstName), f.get(ColSecondName), f.get(ColSurname)
	out := make([]string, f.rows)
	for r := range out {
		out[r] = FullName(cell(first, r), cell(second, r), cell(surname, r))
	}
	return out
}

func cell(values []string, row int) string {
	if values == nil {
		return ""
	}
	return values[row]
}

// order places the preferred columns first and keeps the rest in their
// existing relative order.
func order(names []string) []string {
	present := make(map[string]struct{}, len(names))
	for _, name := range names {
		present[name] = struct{}{}
	}
	preferred := make(map[string]struct{}, len(PreferredOrder))
	out := make([]string, 0, len(names))
	for _, name := range PreferredOrder {
		preferred[name] = struct{}{}
		if _, ok := present[name]; ok {
			out = append(out, name)
		}
	}
	for _, name := range names {
		if _, ok := preferred[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// MasterHeader is the header a new master table starts with: every preferred
// column, present or not, followed by the other columns of header in order.
func MasterHeader(header []string) []string {
	preferred := make(map[string]struct{}, len(PreferredOrder))
	out := append(make([]string, 0, len(PreferredOrder)+len(header)), PreferredOrder...)
	for _, name := range PreferredOrder {
		preferred[name] = struct{}{}
	}
	for _, name := range header {
		if _, ok := preferred[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// MissingIDs returns the Full Name, Campus and Test Year of every row in a
// transformed chunk whose Student ID is blank. A chunk without a Student ID
// column reports all of its rows.
func MissingIDs(chunk table.Chunk) table.Chunk {
	ids := chunk.Column(ColStudentID)
	cols := make([][]string, len(MissingReportHeader))
	for i, name := range MissingReportHeader {
		cols[i] = chunk.Column(name)
	}

	out := table.Chunk{Header: append([]string(nil), MissingReportHeader...)}
	for r := range chunk.Rows {
		if ids != nil && strings.TrimSpace(ids[r]) != "" {
			continue
		}
		missing := make([]string, len(cols))
		for i, values := range cols {
			if values != nil {
				missing[i] = values[r]
			}
		}
		out.Rows = append(out.Rows, missing)
	}
	return out
}
