// Package ui provides semantic text formatting for CLI output.
//
// Formatters carry both a color (for capable terminals) and a plain-text
// decoration (for NO_COLOR environments), so output stays readable either
// way. Commands compose their final messages from these formatters rather
// than calling fatih/color directly.
package ui
