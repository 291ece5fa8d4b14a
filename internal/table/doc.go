// Package table reads CSV exports in bounded chunks and appends chunks to CSV
// outputs, writing the header only when the output is first created.
//
// Inputs are decoded through a BOM sniffer so spreadsheet exports saved as
// UTF-8 with BOM or UTF-16 read the same as plain UTF-8. Outputs are the
// append-only master table and missing-ID report; once an output has a
// header, later chunks are projected onto it.
package table
