package transform

import "napcon/internal/table"

// frame is a column-major view of a chunk that keeps column order.
type frame struct {
	names []string
	cols  map[string][]string
	rows  int
}

// newFrame builds a frame from chunk. When two columns share a name the first
// one wins.
func newFrame(chunk table.Chunk, header []string) *frame {
	f := &frame{cols: make(map[string][]string, len(header)), rows: chunk.Len()}
	for idx, name := range header {
		if _, dup := f.cols[name]; dup {
			continue
		}
		values := make([]string, chunk.Len())
		for r, row := range chunk.Rows {
			values[r] = row[idx]
		}
		f.names = append(f.names, name)
		f.cols[name] = values
	}
	return f
}

func (f *frame) has(name string) bool {
	_, ok := f.cols[name]
	return ok
}

func (f *frame) get(name string) []string {
	return f.cols[name]
}

func (f *frame) set(name string, values []string) {
	if !f.has(name) {
		f.names = append(f.names, name)
	}
	f.cols[name] = values
}

func (f *frame) fill(name, value string) {
	values := make([]string, f.rows)
	for i := range values {
		values[i] = value
	}
	f.set(name, values)
}

func (f *frame) drop(name string) {
	if !f.has(name) {
		return
	}
	delete(f.cols, name)
	for i, existing := range f.names {
		if existing == name {
			f.names = append(f.names[:i], f.names[i+1:]...)
			break
		}
	}
}

func (f *frame) rename(from, to string) {
	if !f.has(from) {
		return
	}
	if f.has(to) {
		f.drop(from)
		return
	}
	for i, existing := range f.names {
		if existing == from {
			f.names[i] = to
			break
		}
	}
	f.cols[to] = f.cols[from]
	delete(f.cols, from)
}

// chunk materializes the frame with the given column order.
func (f *frame) chunk(order []string) table.Chunk {
	out := table.Chunk{Header: append([]string(nil), order...), Rows: make([][]string, f.rows)}
	for r := 0; r < f.rows; r++ {
		row := make([]string, len(order))
		for c, name := range order {
			row[c] = f.cols[name][r]
		}
		out.Rows[r] = row
	}
	return out
}
