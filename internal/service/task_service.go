package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskboard/taskboard-backend/internal/repository"
)

// ErrEmptyTitle is returned when a create request carries no usable title.
var ErrEmptyTitle = errors.New("title cannot be empty")

// ErrCompletedRequired is returned when an update request omits the
// completed field. It is the only field the update operation may change.
var ErrCompletedRequired = errors.New("completed is required")

// CreateTaskRequest holds the data needed to create a new task.
type CreateTaskRequest struct {
	Title string `json:"title"`
}

// UpdateTaskRequest holds the data for updating an existing task. The
// pointer distinguishes an omitted field from an explicit false.
type UpdateTaskRequest struct {
	Completed *bool `json:"completed"`
}

// TaskResponse is the representation of a task returned by the service.
type TaskResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// TaskService defines the operations for managing tasks. It is the stateless
// translation layer between the HTTP handlers and the repository.
type TaskService interface {
	// CreateTask stores a new task with the requested title.
	CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error)

	// ListTasks returns every stored task.
	ListTasks(ctx context.Context) ([]TaskResponse, error)

	// UpdateTask sets the completed flag of an existing task.
	UpdateTask(ctx context.Context, id uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error)

	// DeleteTask removes a task permanently.
	DeleteTask(ctx context.Context, id uuid.UUID) error
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService creates a task service backed by the given repository.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func (s *taskService) CreateTask(ctx context.Context, req CreateTaskRequest) (*TaskResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, ErrEmptyTitle
	}

	task, err := s.repo.Insert(ctx, title)
	if err != nil {
		log.Printf("Error inserting task: %v", err)
		return nil, errors.New("failed to create task")
	}

	resp := toResponse(task.ID, task.Title, task.Completed, task.CreatedAt, task.UpdatedAt)
	return &resp, nil
}

func (s *taskService) ListTasks(ctx context.Context) ([]TaskResponse, error) {
	tasks, err := s.repo.ListAll(ctx)
	if err != nil {
		log.Printf("Error listing tasks: %v", err)
		return nil, errors.New("failed to retrieve tasks")
	}

	responses := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		responses = append(responses, toResponse(task.ID, task.Title, task.Completed, task.CreatedAt, task.UpdatedAt))
	}
	return responses, nil
}

func (s *taskService) UpdateTask(ctx context.Context, id uuid.UUID, req UpdateTaskRequest) (*TaskResponse, error) {
	if req.Completed == nil {
		return nil, ErrCompletedRequired
	}

	task, err := s.repo.UpdateCompleted(ctx, id, *req.Completed)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, err
		}
		log.Printf("Error updating task %s: %v", id, err)
		return nil, errors.New("failed to update task")
	}

	resp := toResponse(task.ID, task.Title, task.Completed, task.CreatedAt, task.UpdatedAt)
	return &resp, nil
}

func (s *taskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return err
		}
		log.Printf("Error deleting task %s: %v", id, err)
		return errors.New("failed to delete task")
	}
	return nil
}

func toResponse(id uuid.UUID, title string, completed bool, createdAt, updatedAt time.Time) TaskResponse {
	return TaskResponse{
		ID:        id.String(),
		Title:     title,
		Completed: completed,
		CreatedAt: createdAt.Format(time.RFC3339),
		UpdatedAt: updatedAt.Format(time.RFC3339),
	}
}
