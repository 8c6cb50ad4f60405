package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/taskboard/taskboard-backend/internal/domain"
)

// ErrTaskNotFound is returned when no task matches the given identifier.
// Callers distinguish it from storage failures with errors.Is.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository defines the persistence operations for tasks.
type TaskRepository interface {
	// Insert stores a new task with the given title, completed=false and a
	// fresh identifier, and returns the stored record.
	Insert(ctx context.Context, title string) (*domain.Task, error)

	// ListAll returns every stored task. Enumeration order is unspecified.
	ListAll(ctx context.Context) ([]domain.Task, error)

	// UpdateCompleted sets the completed field of the matching task and
	// returns the updated record, or ErrTaskNotFound.
	UpdateCompleted(ctx context.Context, id uuid.UUID, completed bool) (*domain.Task, error)

	// DeleteByID removes the matching task, or returns ErrTaskNotFound.
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// gormTaskRepository implements TaskRepository using GORM.
type gormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GORM-backed task repository.
func NewGormTaskRepository(db *gorm.DB) TaskRepository {
	return &gormTaskRepository{db: db}
}

func (r *gormTaskRepository) Insert(ctx context.Context, title string) (*domain.Task, error) {
	task := &domain.Task{
		Title:     title,
		Completed: false,
	}
	if result := r.db.WithContext(ctx).Create(task); result.Error != nil {
		return nil, result.Error
	}
	return task, nil
}

func (r *gormTaskRepository) ListAll(ctx context.Context) ([]domain.Task, error) {
	var tasks []domain.Task
	if result := r.db.WithContext(ctx).Find(&tasks); result.Error != nil {
		return nil, result.Error
	}
	return tasks, nil
}

func (r *gormTaskRepository) UpdateCompleted(ctx context.Context, id uuid.UUID, completed bool) (*domain.Task, error) {
	var task domain.Task
	if result := r.db.WithContext(ctx).First(&task, "id = ?", id); result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, result.Error
	}

	// Only the completed field is ever updated post-creation; GORM bumps
	// UpdatedAt as part of the column update.
	if result := r.db.WithContext(ctx).Model(&task).Update("completed", completed); result.Error != nil {
		return nil, result.Error
	}
	return &task, nil
}

func (r *gormTaskRepository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&domain.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}
