// Package store implements the record engine behind the encrypted data
// file: the document model and its schema migration, import validation,
// the bounded recycle bin with undo/redo, the database merge, the
// uniform-inventory ledger, candidate processing, and the locked
// session that serializes every read and write.
//
// The engine is deliberately forgiving about its own data (anything
// unreadable becomes a default document) and deliberately suspicious of
// imported data (ValidateRaw runs on the raw decoded payload before any
// typed conversion, so hostile keys cannot hide behind struct tags).
package store
