// Package listview provides a generic, keyboard driven selection list for
// Bubble Tea programs. Only the rows inside the viewport are rendered.
package listview
