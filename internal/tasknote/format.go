// Package tasknote renders task lines and splices them into daily notes.
package tasknote

import "strings"

const (
	checkbox  = "- [ ] "
	hourglass = "⏳"
)

// FormatTask renders description as an unchecked task line. A non-empty due
// is appended verbatim after the hourglass marker.
func FormatTask(description, due string) string {
	task := checkbox + strings.TrimSpace(description)
	if due == "" {
		return task
	}
	return task + " " + hourglass + " " + due
}
