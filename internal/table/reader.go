package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrEmptyHeader is returned when a CSV file has no header row.
var ErrEmptyHeader = errors.New("csv has no header row")

// Reader streams a CSV file in chunks of rows.
type Reader struct {
	csv    *csv.Reader
	closer io.Closer
	header []string
	line   int
}

// Open opens path and reads its header.
func Open(path string) (*Reader, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	r, err := NewReader(file)
	if err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	r.closer = file
	return r, nil
}

// NewReader wraps src, decoding a leading UTF-8 or UTF-16 byte order mark,
// and reads the header row.
func NewReader(src io.Reader) (*Reader, error) {
	decoded := transform.NewReader(src, unicode.BOMOverride(transform.Nop))
	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if len(header) == 0 || (len(header) == 1 && header[0] == "") {
		return nil, ErrEmptyHeader
	}
	return &Reader{csv: cr, header: header, line: 1}, nil
}

// Header returns the raw header row.
func (r *Reader) Header() []string {
	return append([]string(nil), r.header...)
}

// Next reads up to size rows. It returns io.EOF once no rows remain; a short
// final chunk is returned with a nil error. Short rows are padded; rows wider
// than the header are an error.
func (r *Reader) Next(size int) (Chunk, error) {
	if size <= 0 {
		return Chunk{}, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	chunk := Chunk{Header: r.Header(), Rows: make([][]string, 0, min(size, 1024))}
	for len(chunk.Rows) < size {
		record, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Chunk{}, fmt.Errorf("read row: %w", err)
		}
		r.line++
		if isBlank(record) {
			continue
		}
		if len(record) > len(r.header) {
			return Chunk{}, fmt.Errorf("row %d has %d fields, header has %d", r.line, len(record), len(r.header))
		}
		for len(record) < len(r.header) {
			record = append(record, "")
		}
		chunk.Rows = append(chunk.Rows, record)
	}
	if len(chunk.Rows) == 0 {
		return Chunk{}, io.EOF
	}
	return chunk, nil
}

// Close releases the underlying file, if any.
func (r *Reader) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func isBlank(record []string) bool {
	for _, field := range record {
		if field != "" {
			return false
		}
	}
	return true
}
