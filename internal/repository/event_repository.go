package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"freefood/internal/model"
)

// EventRepository defines event-store persistence operations. Create and
// UpdateWithRelations run inside a transaction so the event row and its
// location, photos, and tag links commit or roll back together.
type EventRepository interface {
	Create(ctx context.Context, event *model.Event, tags []model.Tag) error
	UpdateWithRelations(ctx context.Context, event *model.Event, location *model.Location, tags *[]model.Tag) error
	AddPhoto(ctx context.Context, photo *model.Photo) error
	FindByID(ctx context.Context, id uint) (*model.Event, error)
	ListByUser(ctx context.Context, userID uint) ([]model.Event, error)
	ListActive(ctx context.Context, now time.Time) ([]model.Event, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository builds a GORM-backed repository.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

// creatorName limits the CreatedBy expansion to what list views need.
func creatorName(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name")
}

func (r *eventRepository) Create(ctx context.Context, event *model.Event, tags []model.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Location and photo rows ride along via their associations; tags
		// are pre-existing rows, so only the join entries get written.
		if err := tx.Omit("Tags").Create(event).Error; err != nil {
			return err
		}
		if len(tags) > 0 {
			if err := tx.Model(event).Association("Tags").Append(&tags); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *eventRepository) UpdateWithRelations(ctx context.Context, event *model.Event, location *model.Location, tags *[]model.Tag) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Location", "Photos", "CreatedBy").Save(event).Error; err != nil {
			return err
		}
		if location != nil {
			updates := map[string]interface{}{
				"address":  location.Address,
				"floor":    location.Floor,
				"room":     location.Room,
				"loc_note": location.LocNote,
			}
			if err := tx.Model(&model.Location{}).Where("event_id = ?", event.EventID).Updates(updates).Error; err != nil {
				return err
			}
		}
		if tags != nil {
			// Full replace of the association set, including replace-to-empty.
			if len(*tags) == 0 {
				return tx.Model(event).Association("Tags").Clear()
			}
			return tx.Model(event).Association("Tags").Replace(tags)
		}
		return nil
	})
}

func (r *eventRepository) AddPhoto(ctx context.Context, photo *model.Photo) error {
	return r.db.WithContext(ctx).Create(photo).Error
}

func (r *eventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	var event model.Event
	err := r.db.WithContext(ctx).
		Preload("Tags").
		Preload("Location").
		Preload("Photos").
		Preload("CreatedBy", creatorName).
		First(&event, id).Error
	if err != nil {
		return nil, err
	}
	return &event, nil
}

func (r *eventRepository) ListByUser(ctx context.Context, userID uint) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("created_by_id = ?", userID).
		Preload("Tags").
		Preload("Location").
		Preload("CreatedBy", creatorName).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

func (r *eventRepository) ListActive(ctx context.Context, now time.Time) ([]model.Event, error) {
	var events []model.Event
	err := r.db.WithContext(ctx).
		Where("exp_time > ? AND done = ?", now, false).
		Preload("Tags").
		Preload("Location").
		Preload("CreatedBy", creatorName).
		Preload("Photos", func(db *gorm.DB) *gorm.DB { return db.Order("photos.id") }).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
