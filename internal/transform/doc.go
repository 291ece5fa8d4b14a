// Package transform reshapes raw StudentOutcomeLevel chunks into the master
// table layout.
//
// A transformed chunk carries the campus, test year and year level taken from
// the source filename, a synthesized Full Name, processing provenance, and the
// preferred column order. MissingIDs selects the identity columns of rows that
// have no Student ID.
package transform
