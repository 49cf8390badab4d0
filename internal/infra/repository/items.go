package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/totegamma/journal-playground"
	"github.com/totegamma/journal-playground/internal/domain"
	"github.com/totegamma/journal-playground/internal/infra/database/models"
)

// ItemRepository persists envelopes and their parent/child relations.
type ItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

func contentTypeID(ctx context.Context, tx *gorm.DB, kind journal.Kind) (int64, error) {
	var row models.ContentType
	err := tx.WithContext(ctx).Where("kind = ?", string(kind)).Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, domain.KindMismatchError{Declared: kind}
		}
		return 0, err
	}
	return row.ID, nil
}

func (r *ItemRepository) Create(ctx context.Context, item domain.JournalItem) (domain.JournalItem, error) {
	// The descriptor is derived from the type tag, never accepted from the
	// caller, so the two columns agree by construction.
	ctID, err := contentTypeID(ctx, r.db, item.ItemType)
	if err != nil {
		return domain.JournalItem{}, err
	}

	row := models.JournalItem{
		ItemType:      string(item.ItemType),
		OwnerID:       item.OwnerID,
		ContentTypeID: ctID,
		TargetID:      item.TargetID,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return domain.JournalItem{}, err
	}

	created := itemToDomain(row)
	created.Descriptor = item.ItemType
	return created, nil
}

func (r *ItemRepository) Get(ctx context.Context, id int64) (domain.JournalItem, error) {
	var row models.JournalItem
	err := r.db.WithContext(ctx).Preload("ContentType").Take(&row, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.JournalItem{}, domain.NotFoundError{Resource: "journal item"}
		}
		return domain.JournalItem{}, err
	}

	item := itemToDomain(row)
	item.Descriptor = journal.Kind(row.ContentType.Kind)
	return item, nil
}

func (r *ItemRepository) ListByOwner(ctx context.Context, ownerID int64) ([]domain.JournalItem, error) {
	var rows []models.JournalItem
	err := r.db.WithContext(ctx).
		Preload("ContentType").
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return itemsToDomain(rows), nil
}

func (r *ItemRepository) ListByTarget(ctx context.Context, kind journal.Kind, targetID int64) ([]domain.JournalItem, error) {
	ctID, err := contentTypeID(ctx, r.db, kind)
	if err != nil {
		return nil, err
	}

	var rows []models.JournalItem
	err = r.db.WithContext(ctx).
		Preload("ContentType").
		Where("item_type = ? AND content_type_id = ? AND target_id = ?", string(kind), ctID, targetID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return itemsToDomain(rows), nil
}

func (r *ItemRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&models.JournalItem{}, id).Error
}

func (r *ItemRepository) AddChild(ctx context.Context, parentID, childID int64) error {
	return r.db.WithContext(ctx).Create(&models.ItemRelation{
		ParentID: parentID,
		ChildID:  childID,
	}).Error
}

func (r *ItemRepository) Children(ctx context.Context, parentID int64) ([]domain.JournalItem, error) {
	var rows []models.JournalItem
	err := r.db.WithContext(ctx).
		Preload("ContentType").
		Joins("JOIN item_relations ir ON ir.child_id = journal_items.id").
		Where("ir.parent_id = ?", parentID).
		Order("journal_items.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return itemsToDomain(rows), nil
}

func (r *ItemRepository) Parent(ctx context.Context, childID int64) (domain.JournalItem, error) {
	var row models.JournalItem
	err := r.db.WithContext(ctx).
		Preload("ContentType").
		Joins("JOIN item_relations ir ON ir.parent_id = journal_items.id").
		Where("ir.child_id = ?", childID).
		Take(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.JournalItem{}, domain.NotFoundError{Resource: "parent"}
		}
		return domain.JournalItem{}, err
	}

	item := itemToDomain(row)
	item.Descriptor = journal.Kind(row.ContentType.Kind)
	return item, nil
}

// ResetJournal wipes relations, envelopes and every target table, then
// recreates the seed. The whole sequence runs in one transaction so
// concurrent readers never see the empty window between delete and insert.
func (r *ItemRepository) ResetJournal(ctx context.Context, ownerID int64, seed domain.JournalSeed) ([]domain.JournalItem, error) {
	var result []domain.JournalItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{
			&models.ItemRelation{},
			&models.JournalItem{},
			&models.Note{},
			&models.Task{},
			&models.Event{},
		} {
			wipe := tx.Session(&gorm.Session{AllowGlobalUpdate: true})
			if err := wipe.Delete(model).Error; err != nil {
				return err
			}
		}

		wrap := func(kind journal.Kind, targetID int64) error {
			ctID, err := contentTypeID(ctx, tx, kind)
			if err != nil {
				return err
			}
			row := models.JournalItem{
				ItemType:      string(kind),
				OwnerID:       ownerID,
				ContentTypeID: ctID,
				TargetID:      targetID,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			item := itemToDomain(row)
			item.Descriptor = kind
			result = append(result, item)
			return nil
		}

		for _, title := range seed.Events {
			row := models.Event{Title: title}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			if err := wrap(journal.KindEvent, row.ID); err != nil {
				return err
			}
		}
		for _, title := range seed.Tasks {
			row := models.Task{Title: title}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			if err := wrap(journal.KindTask, row.ID); err != nil {
				return err
			}
		}
		for _, title := range seed.Notes {
			row := models.Note{Title: title}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			if err := wrap(journal.KindNote, row.ID); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func itemToDomain(row models.JournalItem) domain.JournalItem {
	return domain.JournalItem{
		ID:        row.ID,
		ItemType:  journal.Kind(row.ItemType),
		OwnerID:   row.OwnerID,
		TargetID:  row.TargetID,
		CreatedAt: row.CDate,
	}
}

func itemsToDomain(rows []models.JournalItem) []domain.JournalItem {
	result := make([]domain.JournalItem, 0, len(rows))
	for _, row := range rows {
		item := itemToDomain(row)
		item.Descriptor = journal.Kind(row.ContentType.Kind)
		result = append(result, item)
	}
	return result
}
