// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"dayplan/internal/task"
)

// SQLite implements task.Repository using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

const taskColumns = "id, date, start_slot, end_slot, title, description, color_index, is_repeated, series_key, source, harvest_data"

const insertTaskQuery = `
	INSERT INTO tasks (` + taskColumns + `)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// CreateTask persists a new task. The id must already be assigned.
func (s *SQLite) CreateTask(ctx context.Context, t *task.Task) error {
	if _, err := s.db.ExecContext(ctx, insertTaskQuery, insertArgs(t)...); err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}
	return nil
}

// CreateTasks persists multiple tasks in one transaction.
func (s *SQLite) CreateTasks(ctx context.Context, tasks []*task.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, insertTaskQuery)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, t := range tasks {
		if _, err := stmt.ExecContext(ctx, insertArgs(t)...); err != nil {
			return fmt.Errorf("inserting task %d: %w", t.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// UpdateTask replaces the stored fields of a task.
func (s *SQLite) UpdateTask(ctx context.Context, t *task.Task) error {
	query := `
		UPDATE tasks
		SET date = ?, start_slot = ?, end_slot = ?, title = ?, description = ?,
		    color_index = ?, is_repeated = ?, series_key = ?, source = ?, harvest_data = ?
		WHERE id = ?
	`
	result, err := s.db.ExecContext(ctx, query,
		t.Date,
		t.StartSlot,
		t.EndSlot,
		t.Title,
		t.Description,
		t.ColorIndex,
		t.IsRepeated,
		t.SeriesKey,
		string(t.Source),
		t.HarvestData,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %d: %w", t.ID, task.ErrTaskNotFound)
	}
	return nil
}

// DeleteTask removes a task by ID.
func (s *SQLite) DeleteTask(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("task %d: %w", id, task.ErrTaskNotFound)
	}
	return nil
}

// DeleteTasks removes multiple tasks in one transaction. Ids that are
// already gone are ignored.
func (s *SQLite) DeleteTasks(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `DELETE FROM tasks WHERE id = ?`)
	if err != nil {
		return fmt.Errorf("preparing statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, id := range ids {
		if _, err := stmt.ExecContext(ctx, id); err != nil {
			return fmt.Errorf("deleting task %d: %w", id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// ListTasks returns every stored task in insertion order. Ids are
// creation-time-derived, so rowid order is insertion order.
func (s *SQLite) ListTasks(ctx context.Context) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY rowid`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var tasks []*task.Task
	for rows.Next() {
		var (
			t      task.Task
			source string
		)
		err := rows.Scan(
			&t.ID,
			&t.Date,
			&t.StartSlot,
			&t.EndSlot,
			&t.Title,
			&t.Description,
			&t.ColorIndex,
			&t.IsRepeated,
			&t.SeriesKey,
			&source,
			&t.HarvestData,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		t.Source = task.Source(source)
		tasks = append(tasks, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating tasks: %w", err)
	}
	return tasks, nil
}

// CreateTemplate persists a task template and assigns its ID.
func (s *SQLite) CreateTemplate(ctx context.Context, tpl *task.Template) error {
	result, err := s.db.ExecContext(ctx,
		`INSERT INTO templates (title, description, color_index) VALUES (?, ?, ?)`,
		tpl.Title, tpl.Description, tpl.ColorIndex,
	)
	if err != nil {
		return fmt.Errorf("inserting template: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("getting last insert id: %w", err)
	}
	tpl.ID = id
	return nil
}

// DeleteTemplate removes a template by ID.
func (s *SQLite) DeleteTemplate(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM templates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting template: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("template %d not found", id)
	}
	return nil
}

// ListTemplates returns all saved templates in insertion order.
func (s *SQLite) ListTemplates(ctx context.Context) ([]*task.Template, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, title, description, color_index FROM templates ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying templates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var templates []*task.Template
	for rows.Next() {
		var tpl task.Template
		if err := rows.Scan(&tpl.ID, &tpl.Title, &tpl.Description, &tpl.ColorIndex); err != nil {
			return nil, fmt.Errorf("scanning template: %w", err)
		}
		templates = append(templates, &tpl)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating templates: %w", err)
	}
	return templates, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func insertArgs(t *task.Task) []any {
	return []any{
		t.ID,
		t.Date,
		t.StartSlot,
		t.EndSlot,
		t.Title,
		t.Description,
		t.ColorIndex,
		t.IsRepeated,
		t.SeriesKey,
		string(t.Source),
		t.HarvestData,
	}
}
