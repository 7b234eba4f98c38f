package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"taskmanager/internal/app/service"
	"taskmanager/internal/core/domain"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) List(ctx context.Context, status string) ([]domain.Task, error) {
	args := m.Called(ctx, status)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) GetByID(ctx context.Context, id uint64) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) Create(ctx context.Context, input domain.CreateTaskInput) (uint64, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *taskRepositoryMock) Update(ctx context.Context, id uint64, patch domain.TaskPatch) error {
	args := m.Called(ctx, id, patch)
	return args.Error(0)
}

func (m *taskRepositoryMock) Delete(ctx context.Context, id uint64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *taskRepositoryMock) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *taskRepositoryMock) CountByStatus(ctx context.Context, status domain.TaskStatus) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func sampleTask(id uint64) domain.Task {
	createdAt := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	return domain.Task{
		ID:        id,
		Title:     "Buy milk",
		Status:    domain.TaskStatusPending,
		Priority:  domain.TaskPriorityMedium,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	}
}

func TestTaskService_CreateTask_AppliesDefaultsAndReadsBack(t *testing.T) {
	ctx := context.Background()
	repo := new(taskRepositoryMock)
	repo.On("Create", ctx, domain.CreateTaskInput{
		Title:    "Buy milk",
		Status:   domain.TaskStatusPending,
		Priority: domain.TaskPriorityMedium,
	}).Return(uint64(1), nil).Once()
	repo.On("GetByID", ctx, uint64(1)).Return(sampleTask(1), nil).Once()

	task, err := service.NewTaskService(repo).CreateTask(ctx, domain.CreateTaskInput{Title: "Buy milk"})

	require.NoError(t, err)
	require.Equal(t, uint64(1), task.ID)
	require.Equal(t, domain.TaskStatusPending, task.Status)
	require.Equal(t, domain.TaskPriorityMedium, task.Priority)
	require.Nil(t, task.Description)
	require.Nil(t, task.DueDate)
	require.Equal(t, task.CreatedAt, task.UpdatedAt)
	repo.AssertExpectations(t)
}

func TestTaskService_CreateTask_PropagatesConstraintError(t *testing.T) {
	ctx := context.Background()
	repo := new(taskRepositoryMock)
	repo.On("Create", ctx, mock.Anything).Return(uint64(0), domain.ErrConstraintViolation).Once()

	_, err := service.NewTaskService(repo).CreateTask(ctx, domain.CreateTaskInput{Title: "x", Status: "blocked"})

	require.ErrorIs(t, err, domain.ErrConstraintViolation)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestTaskService_UpdateTask_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(taskRepositoryMock)
	repo.On("GetByID", ctx, uint64(42)).Return(domain.Task{}, domain.ErrTaskNotFound).Once()

	_, err := service.NewTaskService(repo).UpdateTask(ctx, 42, domain.TaskPatch{Title: domain.Some("x")})

	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestTaskService_UpdateTask_EmptyPatchIsNoop(t *testing.T) {
	ctx := context.Background()
	repo := new(taskRepositoryMock)
	repo.On("GetByID", ctx, uint64(1)).Return(sampleTask(1), nil).Once()

	task, err := service.NewTaskService(repo).UpdateTask(ctx, 1, domain.TaskPatch{})

	require.NoError(t, err)
	require.Equal(t, sampleTask(1), task)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	repo.AssertExpectations(t)
}

func TestTaskService_UpdateTask_AppliesPatchAndReturnsFreshRow(t *testing.T) {
	ctx := context.Background()
	patch := domain.TaskPatch{Status: domain.Some(domain.TaskStatusCompleted)}

	updated := sampleTask(1)
	updated.Status = domain.TaskStatusCompleted
	updated.UpdatedAt = updated.UpdatedAt.Add(time.Second)

	repo := new(taskRepositoryMock)
	repo.On("GetByID", ctx, uint64(1)).Return(sampleTask(1), nil).Once()
	repo.On("Update", ctx, uint64(1), patch).Return(nil).Once()
	repo.On("GetByID", ctx, uint64(1)).Return(updated, nil).Once()

	task, err := service.NewTaskService(repo).UpdateTask(ctx, 1, patch)

	require.NoError(t, err)
	require.Equal(t, domain.TaskStatusCompleted, task.Status)
	require.Equal(t, "Buy milk", task.Title)
	require.True(t, !task.UpdatedAt.Before(task.CreatedAt))
	repo.AssertExpectations(t)
}

func TestTaskService_DeleteTask_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(taskRepositoryMock)
	repo.On("GetByID", ctx, uint64(7)).Return(domain.Task{}, domain.ErrTaskNotFound).Once()

	err := service.NewTaskService(repo).DeleteTask(ctx, 7)

	require.ErrorIs(t, err, domain.ErrTaskNotFound)
	repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestTaskService_DeleteTask_Success(t *testing.T) {
	ctx := context.Background()
	repo := new(taskRepositoryMock)
	repo.On("GetByID", ctx, uint64(1)).Return(sampleTask(1), nil).Once()
	repo.On("Delete", ctx, uint64(1)).Return(nil).Once()

	require.NoError(t, service.NewTaskService(repo).DeleteTask(ctx, 1))
	repo.AssertExpectations(t)
}

func TestTaskService_Stats(t *testing.T) {
	ctx := context.Background()
	repo := new(taskRepositoryMock)
	repo.On("CountAll", ctx).Return(int64(6), nil).Once()
	repo.On("CountByStatus", ctx, domain.TaskStatusPending).Return(int64(3), nil).Once()
	repo.On("CountByStatus", ctx, domain.TaskStatusInProgress).Return(int64(1), nil).Once()
	repo.On("CountByStatus", ctx, domain.TaskStatusCompleted).Return(int64(2), nil).Once()

	stats, err := service.NewTaskService(repo).Stats(ctx)

	require.NoError(t, err)
	require.Equal(t, domain.TaskStats{Total: 6, Pending: 3, InProgress: 1, Completed: 2}, stats)
	require.Equal(t, stats.Total, stats.Pending+stats.InProgress+stats.Completed)
	repo.AssertExpectations(t)
}

func TestTaskService_Stats_StopsOnFirstError(t *testing.T) {
	ctx := context.Background()
	repo := new(taskRepositoryMock)
	repo.On("CountAll", ctx).Return(int64(0), domain.ErrStoreUnavailable).Once()

	_, err := service.NewTaskService(repo).Stats(ctx)

	require.True(t, errors.Is(err, domain.ErrStoreUnavailable))
	repo.AssertNotCalled(t, "CountByStatus", mock.Anything, mock.Anything)
}
