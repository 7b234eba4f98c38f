package ports

import (
	"context"

	"taskmanager/internal/core/domain"
)

type TaskRepository interface {
	List(ctx context.Context, status string) ([]domain.Task, error)
	GetByID(ctx context.Context, id uint64) (domain.Task, error)
	Create(ctx context.Context, input domain.CreateTaskInput) (uint64, error)
	Update(ctx context.Context, id uint64, patch domain.TaskPatch) error
	Delete(ctx context.Context, id uint64) error
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error)
}

type TaskService interface {
	ListTasks(ctx context.Context, status string) ([]domain.Task, error)
	GetTask(ctx context.Context, id uint64) (domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	UpdateTask(ctx context.Context, id uint64, patch domain.TaskPatch) (domain.Task, error)
	DeleteTask(ctx context.Context, id uint64) error
	Stats(ctx context.Context) (domain.TaskStats, error)
}
