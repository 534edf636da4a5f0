// Package errors defines the sentinel errors shared across opsvault.
//
// Workflows wrap these with fmt.Errorf("%w: ...") so the command layer
// can branch on errors.Is without string matching.
package errors
