package storage

import (
	"context"
	"fmt"

	"taktziv/internal/core"
)

func (r *Repository) ListTasks(ctx context.Context) ([]core.Task, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, important, completed FROM tasks
		ORDER BY important DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	defer rows.Close()

	var tasks []core.Task
	for rows.Next() {
		var (
			t         core.Task
			important int
			completed int
		)
		if err := rows.Scan(&t.ID, &t.Title, &important, &completed); err != nil {
			return nil, fmt.Errorf("list tasks: %w", err)
		}
		t.Important = important != 0
		t.Completed = completed != 0
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *Repository) CreateTask(ctx context.Context, t core.Task) (core.Task, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tasks (title, important, completed) VALUES (?, ?, ?)`,
		t.Title, boolToInt(t.Important), boolToInt(t.Completed))
	if err != nil {
		return core.Task{}, fmt.Errorf("create task: %w", err)
	}
	if t.ID, err = res.LastInsertId(); err != nil {
		return core.Task{}, fmt.Errorf("create task: %w", err)
	}
	return t, nil
}

func (r *Repository) UpdateTask(ctx context.Context, t core.Task) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE tasks SET title = ?, important = ?, completed = ? WHERE id = ?`,
		t.Title, boolToInt(t.Important), boolToInt(t.Completed), t.ID)
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return affectedOrNotFound(res)
}

func (r *Repository) GetTask(ctx context.Context, id int64) (core.Task, error) {
	var (
		t         core.Task
		important int
		completed int
	)
	err := r.db.QueryRowContext(ctx, `
		SELECT id, title, important, completed FROM tasks WHERE id = ?`, id).
		Scan(&t.ID, &t.Title, &important, &completed)
	if err != nil {
		return core.Task{}, wrapNotFound(err)
	}
	t.Important = important != 0
	t.Completed = completed != 0
	return t, nil
}

func (r *Repository) DeleteTask(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return affectedOrNotFound(res)
}
