package db

import (
	"context"
	"time"

	"todolist/internal/db/models"

	"github.com/jackc/pgx/v5"
)

const taskColumns = `
	t.id, t.title, t.description, t.priority, t.severity_type, t.status_type,
	t.user_id, t.created_at, t.updated_at,
	u.id, u.name, u.email, u.active, u.created_at, u.updated_at`

func scanTask(row pgx.Row) (*models.Task, error) {
	task := &models.Task{Owner: &models.User{}}
	var severity, status int

	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&task.Priority,
		&severity,
		&status,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.Owner.ID,
		&task.Owner.Name,
		&task.Owner.Email,
		&task.Owner.Active,
		&task.Owner.CreatedAt,
		&task.Owner.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	task.Severity = models.SeverityType(severity)
	task.Status = models.TaskStatusType(status)
	return task, nil
}

// ListTasks retrieves one page of tasks matching the filter, each with
// its owner expanded. Tag lists are only loaded on single-task reads.
func (db *DB) ListTasks(ctx context.Context, filter models.TaskFilter, page models.Pageable) ([]*models.Task, error) {
	b := taskConds(filter)
	query := `
		SELECT` + taskColumns + `
		FROM tasks t
		JOIN users u ON t.user_id = u.id` + b.where() + b.page(page)

	rows, err := db.Query(ctx, query, b.args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, rows.Err()
}

// CountTasks recounts the tasks matching the same filter as ListTasks.
func (db *DB) CountTasks(ctx context.Context, filter models.TaskFilter) (int64, error) {
	b := taskConds(filter)

	var total int64
	err := db.QueryRow(ctx, `SELECT count(*) FROM tasks t`+b.where(), b.args...).Scan(&total)
	return total, err
}

// GetTaskByID retrieves a task with its owner and tags expanded,
// nil when no row matches.
func (db *DB) GetTaskByID(ctx context.Context, id int64) (*models.Task, error) {
	query := `
		SELECT` + taskColumns + `
		FROM tasks t
		JOIN users u ON t.user_id = u.id
		WHERE t.id = $1`

	task, err := scanTask(db.QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	task.Tags, err = db.getTaskTags(ctx, task.ID)
	if err != nil {
		return nil, err
	}
	return task, nil
}

func (db *DB) getTaskTags(ctx context.Context, taskID int64) ([]models.Tag, error) {
	query := `
		SELECT g.id, g.name
		FROM tags g
		JOIN task_tags tt ON tt.tag_id = g.id
		WHERE tt.task_id = $1
		ORDER BY g.id`

	rows, err := db.Query(ctx, query, taskID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

// CreateTask inserts a task and its tag associations in one
// transaction, so a failed association never leaves a partial task.
func (db *DB) CreateTask(ctx context.Context, task *models.Task, tagIDs []int64) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	now := time.Now().UTC()
	task.CreatedAt = now
	task.UpdatedAt = now

	err = tx.QueryRow(ctx,
		`INSERT INTO tasks (title, description, priority, severity_type, status_type, user_id, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING id`,
		task.Title,
		task.Description,
		task.Priority,
		task.Severity.Code(),
		task.Status.Code(),
		task.UserID,
		task.CreatedAt,
		task.UpdatedAt,
	).Scan(&task.ID)
	if err != nil {
		return err
	}

	if err := insertTaskTags(ctx, tx, task.ID, tagIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// UpdateTask persists task changes and replaces its tag set wholesale.
func (db *DB) UpdateTask(ctx context.Context, task *models.Task, tagIDs []int64) error {
	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	task.UpdatedAt = time.Now().UTC()

	_, err = tx.Exec(ctx,
		`UPDATE tasks
		 SET title = $1, description = $2, priority = $3, severity_type = $4,
		     status_type = $5, user_id = $6, updated_at = $7
		 WHERE id = $8`,
		task.Title,
		task.Description,
		task.Priority,
		task.Severity.Code(),
		task.Status.Code(),
		task.UserID,
		task.UpdatedAt,
		task.ID,
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM task_tags WHERE task_id = $1`, task.ID); err != nil {
		return err
	}
	if err := insertTaskTags(ctx, tx, task.ID, tagIDs); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func insertTaskTags(ctx context.Context, tx pgx.Tx, taskID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		_, err := tx.Exec(ctx,
			`INSERT INTO task_tags (task_id, tag_id) VALUES ($1, $2)`,
			taskID, tagID,
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// DeleteTask removes the task row; association rows cascade.
func (db *DB) DeleteTask(ctx context.Context, id int64) error {
	_, err := db.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	return err
}
