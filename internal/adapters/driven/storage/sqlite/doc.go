// Package sqlite provides SQLite-backed blob persistence for the
// document library. The library is stored as a single opaque blob per
// key; SQLite gives us atomic overwrites and a single portable file.
package sqlite
