// Package logger provides leveled, colorized CLI logging.
//
// The Logger is a small value type carrying the verbose and debug flags
// parsed by the command layer. Info and debug output only appear when the
// matching flag is set; warnings and errors always reach stderr through
// Warnf/WarnfAlways and Errorf.
package logger
