package db

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

const taskColumns = `id, title, description, status, priority, due_date, created_at, updated_at`

const listTasksQuery = `
SELECT ` + taskColumns + `
FROM tasks
ORDER BY created_at DESC, id DESC
`

const listTasksByStatusQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE status = ?
ORDER BY created_at DESC, id DESC
`

const getTaskQuery = `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

const insertTaskQuery = `
INSERT INTO tasks (title, description, status, priority, due_date)
VALUES (?, ?, ?, ?, ?)
`

// updateTaskQuery is fixed: every column is rewritten to itself unless its
// *_set flag is true.
const updateTaskQuery = `
UPDATE tasks SET
  title       = CASE WHEN :title_set       THEN :title       ELSE title       END,
  description = CASE WHEN :description_set THEN :description ELSE description END,
  status      = CASE WHEN :status_set      THEN :status      ELSE status      END,
  priority    = CASE WHEN :priority_set    THEN :priority    ELSE priority    END,
  due_date    = CASE WHEN :due_date_set    THEN :due_date    ELSE due_date    END
WHERE id = :id
`

const deleteTaskQuery = `DELETE FROM tasks WHERE id = ?`

const countTasksQuery = `SELECT COUNT(*) FROM tasks`

const countTasksByStatusQuery = `SELECT COUNT(*) FROM tasks WHERE status = ?`

type TaskRepository struct {
	db *sqlx.DB
}

type taskRow struct {
	ID          uint64         `db:"id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Status      string         `db:"status"`
	Priority    string         `db:"priority"`
	DueDate     sql.NullTime   `db:"due_date"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

type taskPatchRow struct {
	ID             uint64         `db:"id"`
	TitleSet       bool           `db:"title_set"`
	Title          string         `db:"title"`
	DescriptionSet bool           `db:"description_set"`
	Description    sql.NullString `db:"description"`
	StatusSet      bool           `db:"status_set"`
	Status         string         `db:"status"`
	PrioritySet    bool           `db:"priority_set"`
	Priority       string         `db:"priority"`
	DueDateSet     bool           `db:"due_date_set"`
	DueDate        sql.NullString `db:"due_date"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// withConn runs fn on a connection taken from the pool and hands it back on
// every exit path.
func (r *TaskRepository) withConn(ctx context.Context, fn func(conn *sqlx.Conn) error) error {
	conn, err := r.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			zap.L().Warn("failed to release mysql connection", zap.Error(err))
		}
	}()

	return fn(conn)
}

func (r *TaskRepository) List(ctx context.Context, status string) ([]domain.Task, error) {
	var rows []taskRow
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		if status == "" {
			return conn.SelectContext(ctx, &rows, listTasksQuery)
		}
		return conn.SelectContext(ctx, &rows, listTasksByStatusQuery, status)
	})
	if err != nil {
		return nil, classifyError("list tasks", err)
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func (r *TaskRepository) GetByID(ctx context.Context, id uint64) (domain.Task, error) {
	var row taskRow
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &row, getTaskQuery, id)
	})
	if err != nil {
		return domain.Task{}, classifyError("get task", err)
	}

	return mapTaskRowToDomainTask(row), nil
}

func (r *TaskRepository) Create(ctx context.Context, input domain.CreateTaskInput) (uint64, error) {
	var id int64
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		result, err := conn.ExecContext(
			ctx,
			insertTaskQuery,
			input.Title,
			nullString(input.Description),
			string(input.Status),
			string(input.Priority),
			nullDate(input.DueDate),
		)
		if err != nil {
			return err
		}
		id, err = result.LastInsertId()
		return err
	})
	if err != nil {
		return 0, classifyError("insert task", err)
	}

	return uint64(id), nil
}

func (r *TaskRepository) Update(ctx context.Context, id uint64, patch domain.TaskPatch) error {
	query, args, err := sqlx.Named(updateTaskQuery, mapPatchToRow(id, patch))
	if err != nil {
		return classifyError("bind task update", err)
	}

	err = r.withConn(ctx, func(conn *sqlx.Conn) error {
		_, err := conn.ExecContext(ctx, conn.Rebind(query), args...)
		return err
	})
	return classifyError("update task", err)
}

func (r *TaskRepository) Delete(ctx context.Context, id uint64) error {
	var affected int64
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		result, err := conn.ExecContext(ctx, deleteTaskQuery, id)
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return classifyError("delete task", err)
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}

	return nil
}

func (r *TaskRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &count, countTasksQuery)
	})
	if err != nil {
		return 0, classifyError("count tasks", err)
	}
	return count, nil
}

func (r *TaskRepository) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	var count int64
	err := r.withConn(ctx, func(conn *sqlx.Conn) error {
		return conn.GetContext(ctx, &count, countTasksByStatusQuery, string(status))
	})
	if err != nil {
		return 0, classifyError("count tasks by status", err)
	}
	return count, nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:        row.ID,
		Title:     row.Title,
		Status:    domain.TaskStatus(row.Status),
		Priority:  domain.TaskPriority(row.Priority),
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}

	return task
}

func mapPatchToRow(id uint64, patch domain.TaskPatch) taskPatchRow {
	row := taskPatchRow{ID: id}

	if title, ok := patch.Title.Get(); ok {
		row.TitleSet = true
		row.Title = title
	}
	if description, ok := patch.Description.Get(); ok {
		row.DescriptionSet = true
		row.Description = nullString(description)
	}
	if status, ok := patch.Status.Get(); ok {
		row.StatusSet = true
		row.Status = string(status)
	}
	if priority, ok := patch.Priority.Get(); ok {
		row.PrioritySet = true
		row.Priority = string(priority)
	}
	if dueDate, ok := patch.DueDate.Get(); ok {
		row.DueDateSet = true
		row.DueDate = nullDate(dueDate)
	}

	return row
}

func nullString(value *string) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *value, Valid: true}
}

// nullDate renders a calendar date as YYYY-MM-DD so the DATE column never
// receives a time component.
func nullDate(value *time.Time) sql.NullString {
	if value == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: value.Format(time.DateOnly), Valid: true}
}
