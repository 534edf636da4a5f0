// Package storage defines the byte-blob boundary between the engine and
// the platform, with a filesystem adapter and a SQLite adapter.
//
// The engine never touches the filesystem directly; it reads and writes
// named blobs through a Store. Absence and corruption are both recovered
// by the engine with a default document, so adapters only need to report
// "not there" distinctly from a real I/O failure.
package storage
