package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/totegamma/journal-playground"
	"github.com/totegamma/journal-playground/internal/infra/database/models"
)

func NewPostgres(dsn string) (*gorm.DB, error) {
	gormLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             300 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormLogger,
	})
	return db, err
}

func MigratePostgres(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.User{},
		&models.Note{},
		&models.Task{},
		&models.Event{},
		&models.ContentType{},
		&models.JournalItem{},
		&models.ItemRelation{},
	)
	if err != nil {
		return err
	}

	return seed(db)
}

// seed populates the content-type registry and makes sure at least one
// user exists for the demo endpoints.
func seed(db *gorm.DB) error {
	for _, kind := range journal.Kinds() {
		err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}},
			DoNothing: true,
		}).Create(&models.ContentType{
			Kind:  string(kind),
			Model: kind.Name(),
		}).Error
		if err != nil {
			return err
		}
	}

	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		if err := db.Create(&models.User{Name: "demo"}).Error; err != nil {
			return err
		}
	}

	return nil
}
