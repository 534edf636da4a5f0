package errors

import "errors"

// Authentication errors indicate the caller could not prove ownership of the vault.
var (
	// ErrBadPassword indicates the supplied password does not match the auth record.
	ErrBadPassword = errors.New("password does not match")

	// ErrLocked indicates too many failed attempts; the vault is temporarily locked.
	ErrLocked = errors.New("too many failed attempts, vault is temporarily locked")

	// ErrNotSetUp indicates no auth record exists yet.
	ErrNotSetUp = errors.New("vault has not been set up")

	// ErrAlreadySetUp indicates an auth record already exists.
	ErrAlreadySetUp = errors.New("vault has already been set up")

	// ErrPasswordRequired indicates an empty password was supplied.
	ErrPasswordRequired = errors.New("password is required")
)

// Domain-rule errors indicate a structurally valid request the engine refuses.
var (
	// ErrLastColumn indicates an attempt to delete the last column while cards remain.
	ErrLastColumn = errors.New("cannot delete the last remaining column while cards are on it")

	// ErrInvalidTable indicates an unknown table identifier.
	ErrInvalidTable = errors.New("unknown table")

	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNothingToUndo indicates no matching recycle entry exists.
	ErrNothingToUndo = errors.New("nothing to undo")

	// ErrNothingToRedo indicates no matching redo entry exists.
	ErrNothingToRedo = errors.New("nothing to redo")

	// ErrBranchRequired indicates a candidate operation without a branch.
	ErrBranchRequired = errors.New("branch is required")

	// ErrInvalidTime indicates a time value that is not 4-digit 24-hour format.
	ErrInvalidTime = errors.New("invalid time format, use 4-digit 24-hour time")
)

// File errors indicate issues with stored artifacts.
var (
	// ErrFileNotFound indicates a named blob could not be located.
	ErrFileNotFound = errors.New("file not found")

	// ErrInvalidImportAction indicates an unsupported import action.
	ErrInvalidImportAction = errors.New("invalid import action")
)
