package table

// Chunk is a header plus a bounded batch of rows. Every row has exactly
// len(Header) cells.
type Chunk struct {
	Header []string
	Rows   [][]string
}

// Len returns the number of rows in the chunk.
func (c Chunk) Len() int {
	return len(c.Rows)
}

// Index returns the position of column name in the header, or -1.
func (c Chunk) Index(name string) int {
	for i, col := range c.Header {
		if col == name {
			return i
		}
	}
	return -1
}

// Column returns the values of column name, or nil when the column is absent.
func (c Chunk) Column(name string) []string {
	idx := c.Index(name)
	if idx < 0 {
		return nil
	}
	values := make([]string, len(c.Rows))
	for i, row := range c.Rows {
		values[i] = row[idx]
	}
	return values
}

// Project rearranges the chunk onto header. Columns in header that the chunk
// lacks are filled with empty strings; chunk columns missing from header are
// dropped and returned.
func Project(c Chunk, header []string) (Chunk, []string) {
	positions := make([]int, len(header))
	for i, col := range header {
		positions[i] = c.Index(col)
	}

	known := make(map[string]struct{}, len(header))
	for _, col := range header {
		known[col] = struct{}{}
	}
	var dropped []string
	for _, col := range c.Header {
		if _, ok := known[col]; !ok {
			dropped = append(dropped, col)
		}
	}

	out := Chunk{Header: append([]string(nil), header...), Rows: make([][]string, len(c.Rows))}
	for r, row := range c.Rows {
		projected := make([]string, len(header))
		for i, pos := range positions {
			if pos >= 0 {
				projected[i] = row[pos]
			}
		}
		out.Rows[r] = projected
	}
	return out, dropped
}

func sameHeader(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
