// Package service defines the backend-agnostic types for todo storage.
package service

// Task represents a single todo entry.
// Tasks have no ID; identity is the position in the list.
type Task struct {
	Task string `json:"task"`
	Done bool   `json:"done"`
}

// Mark returns the status glyph shown between brackets.
func (t Task) Mark() string {
	if t.Done {
		return DoneMark
	}
	return OpenMark
}

const (
	// DoneMark marks a completed task.
	DoneMark = "✓"

	// OpenMark marks a task that still needs doing.
	OpenMark = " "
)
