package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/totegamma/journal-playground/internal/domain"
	"github.com/totegamma/journal-playground/internal/infra/database/models"
)

// TargetRepository persists the journaled record kinds. Each kind is a
// plain table; nothing here knows about envelopes.
type TargetRepository struct {
	db *gorm.DB
}

func NewTargetRepository(db *gorm.DB) *TargetRepository {
	return &TargetRepository{db: db}
}

func (r *TargetRepository) CreateNote(ctx context.Context, title string) (domain.Note, error) {
	row := models.Note{Title: title}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Note{}, err
	}
	return noteToDomain(row), nil
}

func (r *TargetRepository) GetNote(ctx context.Context, id int64) (domain.Note, error) {
	var row models.Note
	err := r.db.WithContext(ctx).Take(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Note{}, domain.NotFoundError{Resource: "note"}
		}
		return domain.Note{}, err
	}
	return noteToDomain(row), nil
}

func (r *TargetRepository) DeleteNote(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Note{}, id).Error
}

func (r *TargetRepository) CreateTask(ctx context.Context, title string, deadline *time.Time) (domain.Task, error) {
	row := models.Task{Title: title, Deadline: deadline}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Task{}, err
	}
	return taskToDomain(row), nil
}

func (r *TargetRepository) GetTask(ctx context.Context, id int64) (domain.Task, error) {
	var row models.Task
	err := r.db.WithContext(ctx).Take(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Task{}, domain.NotFoundError{Resource: "task"}
		}
		return domain.Task{}, err
	}
	return taskToDomain(row), nil
}

func (r *TargetRepository) DeleteTask(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Task{}, id).Error
}

func (r *TargetRepository) CreateEvent(ctx context.Context, title string, start, end *time.Time) (domain.Event, error) {
	row := models.Event{Title: title, StartDate: start, EndDate: end}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.Event{}, err
	}
	return eventToDomain(row), nil
}

func (r *TargetRepository) GetEvent(ctx context.Context, id int64) (domain.Event, error) {
	var row models.Event
	err := r.db.WithContext(ctx).Take(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.Event{}, domain.NotFoundError{Resource: "event"}
		}
		return domain.Event{}, err
	}
	return eventToDomain(row), nil
}

func (r *TargetRepository) DeleteEvent(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.Event{}, id).Error
}

func noteToDomain(row models.Note) domain.Note {
	return domain.Note{ID: row.ID, Title: row.Title}
}

func taskToDomain(row models.Task) domain.Task {
	return domain.Task{ID: row.ID, Title: row.Title, Completed: row.Completed, Deadline: row.Deadline}
}

func eventToDomain(row models.Event) domain.Event {
	return domain.Event{ID: row.ID, Title: row.Title, StartDate: row.StartDate, EndDate: row.EndDate}
}
