// Package ui provides semantic text formatting for CLI output.
//
// Formatters carry a color for capable terminals and a plain-text
// decoration (backticks, quotes, parentheses) used when color is
// disabled, so output stays readable under NO_COLOR and in pipes.
package ui
