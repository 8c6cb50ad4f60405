package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskboard/taskboard-backend/internal/domain"
	"github.com/taskboard/taskboard-backend/internal/repository"
)

// mockTaskRepository lets each test plug in just the calls it cares about.
type mockTaskRepository struct {
	insertFn          func(ctx context.Context, title string) (*domain.Task, error)
	listAllFn         func(ctx context.Context) ([]domain.Task, error)
	updateCompletedFn func(ctx context.Context, id uuid.UUID, completed bool) (*domain.Task, error)
	deleteByIDFn      func(ctx context.Context, id uuid.UUID) error
}

func (m *mockTaskRepository) Insert(ctx context.Context, title string) (*domain.Task, error) {
	return m.insertFn(ctx, title)
}

func (m *mockTaskRepository) ListAll(ctx context.Context) ([]domain.Task, error) {
	return m.listAllFn(ctx)
}

func (m *mockTaskRepository) UpdateCompleted(ctx context.Context, id uuid.UUID, completed bool) (*domain.Task, error) {
	return m.updateCompletedFn(ctx, id, completed)
}

func (m *mockTaskRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return m.deleteByIDFn(ctx, id)
}

func newTask(title string, completed bool) *domain.Task {
	now := time.Now()
	return &domain.Task{
		ID:        uuid.New(),
		Title:     title,
		Completed: completed,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestCreateTask(t *testing.T) {
	repo := &mockTaskRepository{
		insertFn: func(ctx context.Context, title string) (*domain.Task, error) {
			return newTask(title, false), nil
		},
	}
	svc := NewTaskService(repo)

	resp, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: "Buy milk"})
	require.NoError(t, err)
	assert.Equal(t, "Buy milk", resp.Title)
	assert.False(t, resp.Completed)

	// The returned id is usable immediately.
	_, err = uuid.Parse(resp.ID)
	assert.NoError(t, err)
}

func TestCreateTaskEmptyTitle(t *testing.T) {
	svc := NewTaskService(&mockTaskRepository{})

	for _, title := range []string{"", "   ", "\t\n"} {
		_, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: title})
		assert.ErrorIs(t, err, ErrEmptyTitle)
	}
}

func TestCreateTaskStorageFailure(t *testing.T) {
	repo := &mockTaskRepository{
		insertFn: func(ctx context.Context, title string) (*domain.Task, error) {
			return nil, errors.New("connection lost")
		},
	}
	svc := NewTaskService(repo)

	_, err := svc.CreateTask(context.Background(), CreateTaskRequest{Title: "Buy milk"})
	require.Error(t, err)
	// Storage detail does not leak past the service layer.
	assert.NotContains(t, err.Error(), "connection lost")
}

func TestListTasks(t *testing.T) {
	stored := []domain.Task{*newTask("one", false), *newTask("two", true)}
	repo := &mockTaskRepository{
		listAllFn: func(ctx context.Context) ([]domain.Task, error) {
			return stored, nil
		},
	}
	svc := NewTaskService(repo)

	tasks, err := svc.ListTasks(context.Background())
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, "one", tasks[0].Title)
	assert.True(t, tasks[1].Completed)
}

func TestListTasksEmptyIsNotNil(t *testing.T) {
	repo := &mockTaskRepository{
		listAllFn: func(ctx context.Context) ([]domain.Task, error) {
			return nil, nil
		},
	}
	svc := NewTaskService(repo)

	tasks, err := svc.ListTasks(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestUpdateTask(t *testing.T) {
	id := uuid.New()
	repo := &mockTaskRepository{
		updateCompletedFn: func(ctx context.Context, gotID uuid.UUID, completed bool) (*domain.Task, error) {
			assert.Equal(t, id, gotID)
			task := newTask("Buy milk", completed)
			task.ID = id
			return task, nil
		},
	}
	svc := NewTaskService(repo)

	completed := true
	resp, err := svc.UpdateTask(context.Background(), id, UpdateTaskRequest{Completed: &completed})
	require.NoError(t, err)
	assert.True(t, resp.Completed)
	assert.Equal(t, id.String(), resp.ID)
}

func TestUpdateTaskMissingCompleted(t *testing.T) {
	svc := NewTaskService(&mockTaskRepository{})

	_, err := svc.UpdateTask(context.Background(), uuid.New(), UpdateTaskRequest{})
	assert.ErrorIs(t, err, ErrCompletedRequired)
}

func TestUpdateTaskNotFound(t *testing.T) {
	repo := &mockTaskRepository{
		updateCompletedFn: func(ctx context.Context, id uuid.UUID, completed bool) (*domain.Task, error) {
			return nil, repository.ErrTaskNotFound
		},
	}
	svc := NewTaskService(repo)

	completed := true
	_, err := svc.UpdateTask(context.Background(), uuid.New(), UpdateTaskRequest{Completed: &completed})
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
}

func TestDeleteTask(t *testing.T) {
	id := uuid.New()
	repo := &mockTaskRepository{
		deleteByIDFn: func(ctx context.Context, gotID uuid.UUID) error {
			assert.Equal(t, id, gotID)
			return nil
		},
	}
	svc := NewTaskService(repo)

	assert.NoError(t, svc.DeleteTask(context.Background(), id))
}

func TestDeleteTaskNotFound(t *testing.T) {
	repo := &mockTaskRepository{
		deleteByIDFn: func(ctx context.Context, id uuid.UUID) error {
			return repository.ErrTaskNotFound
		},
	}
	svc := NewTaskService(repo)

	err := svc.DeleteTask(context.Background(), uuid.New())
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)
}
