package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Task is the single entity of the system: a titled, completable to-do item.
type Task struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title     string    `gorm:"not null"`
	Completed bool      `gorm:"not null;default:false"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BeforeCreate assigns the identifier. It is immutable after creation.
func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
