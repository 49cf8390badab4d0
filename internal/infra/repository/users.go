package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/totegamma/journal-playground/internal/domain"
	"github.com/totegamma/journal-playground/internal/infra/database/models"
)

// UserRepository reads owner identities. Users are written by bootstrap,
// never by the journal.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Get(ctx context.Context, id int64) (domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).Take(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.NotFoundError{Resource: "user"}
		}
		return domain.User{}, err
	}
	return domain.User{ID: row.ID, Name: row.Name}, nil
}

func (r *UserRepository) First(ctx context.Context) (domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).Order("id ASC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.User{}, domain.NotFoundError{Resource: "user"}
		}
		return domain.User{}, err
	}
	return domain.User{ID: row.ID, Name: row.Name}, nil
}
