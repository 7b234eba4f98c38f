package service

import (
	"context"
	"fmt"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
}

func NewTaskService(taskRepository ports.TaskRepository) *TaskService {
	return &TaskService{taskRepository: taskRepository}
}

func (s *TaskService) ListTasks(ctx context.Context, status string) ([]domain.Task, error) {
	return s.taskRepository.List(ctx, status)
}

func (s *TaskService) GetTask(ctx context.Context, id uint64) (domain.Task, error) {
	return s.taskRepository.GetByID(ctx, id)
}

func (s *TaskService) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	if input.Status == "" {
		input.Status = domain.TaskStatusPending
	}
	if input.Priority == "" {
		input.Priority = domain.TaskPriorityMedium
	}

	id, err := s.taskRepository.Create(ctx, input)
	if err != nil {
		return domain.Task{}, err
	}

	task, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, fmt.Errorf("read created task %d: %w", id, err)
	}
	return task, nil
}

// UpdateTask applies the present fields of patch. An empty patch returns the
// current row without touching storage.
func (s *TaskService) UpdateTask(ctx context.Context, id uint64, patch domain.TaskPatch) (domain.Task, error) {
	current, err := s.taskRepository.GetByID(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}
	if patch.IsEmpty() {
		return current, nil
	}

	if err := s.taskRepository.Update(ctx, id, patch); err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.GetByID(ctx, id)
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint64) error {
	if _, err := s.taskRepository.GetByID(ctx, id); err != nil {
		return err
	}
	return s.taskRepository.Delete(ctx, id)
}

// Stats runs one count per bucket; the numbers are not read from a single
// snapshot and may drift under concurrent writes.
func (s *TaskService) Stats(ctx context.Context) (domain.TaskStats, error) {
	var stats domain.TaskStats

	total, err := s.taskRepository.CountAll(ctx)
	if err != nil {
		return domain.TaskStats{}, err
	}
	stats.Total = total

	for _, status := range domain.TaskStatuses {
		count, err := s.taskRepository.CountByStatus(ctx, status)
		if err != nil {
			return domain.TaskStats{}, err
		}
		switch status {
		case domain.TaskStatusPending:
			stats.Pending = count
		case domain.TaskStatusInProgress:
			stats.InProgress = count
		case domain.TaskStatusCompleted:
			stats.Completed = count
		}
	}

	return stats, nil
}

var _ ports.TaskService = (*TaskService)(nil)
