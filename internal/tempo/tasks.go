package tempo

import (
	"fmt"
	"time"
)

// TaskListResponse mirrors /api/v1/tasks.
type TaskListResponse struct {
	Tasks []Task
}

func (r *TaskListResponse) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return fmt.Errorf("task list: %w", err)
	}
	*r = TaskListResponse{}
	if !obj.into("tasks", &r.Tasks) {
		obj.into("items", &r.Tasks)
	}
	if len(r.Tasks) == 0 {
		r.Tasks = nil
	}
	return nil
}

// Task is one scheduled task or reminder.
type Task struct {
	ID          string
	Title       string
	Due         string
	Priority    string
	Status      string
	Project     string
	Notes       string
	ReminderMin *int
	CreatedAt   string
}

// UnmarshalJSON decodes a task; a missing id is a corrupt entry.
func (t *Task) UnmarshalJSON(data []byte) error {
	obj, err := parseObject(data)
	if err != nil {
		return fmt.Errorf("task: %w", err)
	}
	id := obj.str("id")
	if id == "" {
		return fmt.Errorf("task missing id")
	}
	*t = Task{
		ID:          id,
		Title:       obj.str("title"),
		Due:         obj.str("due_at"),
		Priority:    obj.str("priority"),
		Status:      obj.str("status"),
		Project:     obj.str("project"),
		Notes:       obj.str("notes"),
		ReminderMin: obj.intPtr("reminder_lead_minutes"),
		CreatedAt:   obj.str("created_at"),
	}
	if t.Due == "" {
		t.Due = obj.str("due")
	}
	return nil
}

// ParsedDue returns the due timestamp, zero when absent or unrecognized.
func (t Task) ParsedDue() time.Time {
	return optionalTime(t.Due)
}

// Done reports whether the server marked the task complete.
func (t Task) Done() bool {
	return t.Status == "done" || t.Status == "completed"
}
