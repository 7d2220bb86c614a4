// internal/domain/models/task.go
package models

import "time"

// TaskKind distinguishes general tasks from grant deadlines.
type TaskKind string

const (
	TaskKindTask  TaskKind = "task"
	TaskKindGrant TaskKind = "grant"
)

// DueDateLayout is the layout of Task.DueDate (an HTML date input value).
const DueDateLayout = "2006-01-02"

// Task is one calendar entry. ID is the creation time in Unix milliseconds.
//
// The JSON shape matches what the browser calendar stored under "npoTasks",
// so lists written by either side can be read by the other.
type Task struct {
	ID      int64    `json:"id"`
	Title   string   `json:"title"`
	DueDate string   `json:"dueDate"`
	Kind    TaskKind `json:"type"`
}

// Due parses DueDate. ok is false for malformed dates.
func (t Task) Due() (time.Time, bool) {
	d, err := time.Parse(DueDateLayout, t.DueDate)
	if err != nil {
		return time.Time{}, false
	}
	return d, true
}

// ValidTaskKind reports whether k is a known kind.
func ValidTaskKind(k TaskKind) bool {
	return k == TaskKindTask || k == TaskKindGrant
}
