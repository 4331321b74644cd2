package task

import "context"

// Repository defines the persistence interface for tasks and templates.
// The grid core never touches it directly; the store synchronizes its
// in-memory collection through this interface.
type Repository interface {
	// CreateTask persists a new task. The caller assigns the ID.
	CreateTask(ctx context.Context, t *Task) error

	// CreateTasks persists multiple tasks in one transaction. Used by
	// series materialization so a batch lands atomically.
	CreateTasks(ctx context.Context, tasks []*Task) error

	// UpdateTask replaces the stored fields of a task.
	UpdateTask(ctx context.Context, t *Task) error

	// DeleteTask removes a task by ID.
	DeleteTask(ctx context.Context, id int64) error

	// DeleteTasks removes multiple tasks in one transaction.
	DeleteTasks(ctx context.Context, ids []int64) error

	// ListTasks returns every stored task in insertion order.
	ListTasks(ctx context.Context) ([]*Task, error)

	// CreateTemplate persists a task template and assigns its ID.
	CreateTemplate(ctx context.Context, tpl *Template) error

	// DeleteTemplate removes a template by ID.
	DeleteTemplate(ctx context.Context, id int64) error

	// ListTemplates returns all saved templates in insertion order.
	ListTemplates(ctx context.Context) ([]*Template, error)

	// Close releases any resources held by the repository.
	Close() error
}
