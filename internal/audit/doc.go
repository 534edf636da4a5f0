// Package audit appends engine operations to a JSON Lines log under
// the storage root. Logging is best-effort: a failed write never fails
// the operation being logged.
package audit
