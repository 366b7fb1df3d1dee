package tasknote

import (
	"strings"
	"time"
	"unicode"
)

// TasksHeading marks the section new tasks are appended to.
const TasksHeading = "## Tasks"

// Shape is the layout of an existing note as far as insertion cares.
type Shape int

const (
	// ShapeEmpty covers a missing file and one holding only whitespace.
	ShapeEmpty Shape = iota
	// ShapeWithTasks has a "## Tasks" heading line.
	ShapeWithTasks
	// ShapeWithoutTasks has content but no "## Tasks" heading line.
	ShapeWithoutTasks
)

// String returns the shape name.
func (s Shape) String() string {
	switch s {
	case ShapeEmpty:
		return "empty"
	case ShapeWithTasks:
		return "with-tasks"
	case ShapeWithoutTasks:
		return "without-tasks"
	default:
		return "unknown"
	}
}

// Classify inspects content once and reports its Shape.
func Classify(content string) Shape {
	if strings.TrimSpace(content) == "" {
		return ShapeEmpty
	}
	if tasksHeadingIndex(splitLines(content)) >= 0 {
		return ShapeWithTasks
	}
	return ShapeWithoutTasks
}

// Insert returns the full note content with line added. An empty content
// string stands for a note that does not exist yet.
func Insert(content, line string, today time.Time) string {
	switch Classify(content) {
	case ShapeWithTasks:
		return insertIntoSection(content, line)
	case ShapeWithoutTasks:
		return appendSection(content, line)
	default:
		return newNote(line, today)
	}
}

func newNote(line string, today time.Time) string {
	return "# " + today.Format(time.DateOnly) + "\n\n" + TasksHeading + "\n\n" + line + "\n"
}

func appendSection(content, line string) string {
	return strings.TrimRightFunc(content, unicode.IsSpace) + "\n\n" + TasksHeading + "\n\n" + line + "\n"
}

// insertIntoSection places line after the last non-blank line of the first
// Tasks section, before any blank padding that precedes the next "## " heading.
// Lines outside that window are kept as they are, trailing blanks included.
func insertIntoSection(content, line string) string {
	lines := splitLines(content)
	heading := tasksHeadingIndex(lines)

	end := len(lines)
	for i := heading + 1; i < len(lines); i++ {
		if strings.HasPrefix(lines[i], "## ") {
			end = i
			break
		}
	}

	at := end
	for at > heading+1 && strings.TrimSpace(lines[at-1]) == "" {
		at--
	}

	out := make([]string, 0, len(lines)+1)
	out = append(out, lines[:at]...)
	out = append(out, line)
	out = append(out, lines[at:]...)

	return strings.Join(out, "\n") + "\n"
}

// splitLines splits on "\n", drops a "\r" before it and ignores the final
// terminator, so "a\nb\n" yields ["a", "b"].
func splitLines(content string) []string {
	content = strings.TrimSuffix(content, "\n")
	lines := strings.Split(content, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func tasksHeadingIndex(lines []string) int {
	for i, l := range lines {
		if isTasksHeading(l) {
			return i
		}
	}
	return -1
}

// isTasksHeading accepts any line starting with "## Tasks", so "## Tasks:"
// and "## Tasks for today" both count.
func isTasksHeading(line string) bool {
	return strings.HasPrefix(line, TasksHeading)
}
