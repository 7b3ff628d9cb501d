package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"freefood/internal/cache"
	"freefood/internal/errors"
	"freefood/internal/model"
	"freefood/internal/repository"
)

const (
	maxPhotosPerEvent    = 10
	activeEventsCacheKey = "events:active"
	activeEventsCacheTTL = 30 * time.Second
)

// LocationInput carries location fields for create and edit. Floor is a
// pointer so absence is distinguishable from ground floor.
type LocationInput struct {
	Address string
	Floor   *int
	Room    string
	LocNote string
}

// CreateEventInput carries validated-on-entry event creation fields.
type CreateEventInput struct {
	Description string
	Qty         string
	ExpTime     *time.Time
	TagIDs      []uint
	Location    LocationInput
	Photos      []string
}

// EditEventInput carries partial-edit fields; nil means leave untouched.
// TagIDs, when present, replaces the full association set. Photo, when
// present, appends one photo row.
type EditEventInput struct {
	Description *string
	Qty         *string
	ExpTime     *time.Time
	Done        *bool
	TagIDs      *[]uint
	Location    *LocationInput
	Photo       *string
}

// EventService handles the event lifecycle.
type EventService interface {
	Create(ctx context.Context, ownerID uint, input CreateEventInput) (*model.Event, error)
	Edit(ctx context.Context, eventID uint, input EditEventInput) (*model.Event, error)
	GetByID(ctx context.Context, eventID uint) (*model.Event, error)
	ListForUser(ctx context.Context, userID uint) ([]model.Event, error)
	ListActive(ctx context.Context) ([]model.Event, error)
}

type eventService struct {
	eventRepo repository.EventRepository
	tagRepo   repository.TagRepository
	cache     *cache.Client
}

// NewEventService creates a new event service.
func NewEventService(eventRepo repository.EventRepository, tagRepo repository.TagRepository, cache *cache.Client) EventService {
	return &eventService{
		eventRepo: eventRepo,
		tagRepo:   tagRepo,
		cache:     cache,
	}
}

// Create validates the input in contract order (first failing rule wins) and
// writes the event, its location, its photos, and its tag links atomically.
func (s *eventService) Create(ctx context.Context, ownerID uint, input CreateEventInput) (*model.Event, error) {
	now := time.Now()
	if err := validateEventInput(now, input); err != nil {
		return nil, err
	}

	tags, err := s.resolveTags(ctx, input.TagIDs)
	if err != nil {
		return nil, err
	}

	photos := make([]model.Photo, 0, len(input.Photos))
	for _, p := range input.Photos {
		photos = append(photos, model.Photo{Photo: p})
	}

	event := &model.Event{
		Description: input.Description,
		Qty:         input.Qty,
		PostTime:    now,
		ExpTime:     *input.ExpTime,
		Done:        false,
		CreatedByID: ownerID,
		Location: &model.Location{
			Address: input.Location.Address,
			Floor:   *input.Location.Floor,
			Room:    input.Location.Room,
			LocNote: input.Location.LocNote,
		},
		Photos: photos,
	}

	if err := s.eventRepo.Create(ctx, event, tags); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.cache.Delete(ctx, activeEventsCacheKey)
	return event, nil
}

// Edit applies a partial update. Supplied fields pass the same rules as
// create; omitted fields stay untouched and unvalidated. A supplied tag set
// fully replaces the existing associations, and a supplied photo is appended
// after the relational update commits.
func (s *eventService) Edit(ctx context.Context, eventID uint, input EditEventInput) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}

	if err := validateEventEdit(time.Now(), input); err != nil {
		return nil, err
	}

	if input.Description != nil {
		event.Description = *input.Description
	}
	if input.Qty != nil {
		event.Qty = *input.Qty
	}
	if input.ExpTime != nil {
		event.ExpTime = *input.ExpTime
	}
	if input.Done != nil {
		event.Done = *input.Done
	}

	var location *model.Location
	if input.Location != nil {
		location = &model.Location{
			Address: input.Location.Address,
			Floor:   *input.Location.Floor,
			Room:    input.Location.Room,
			LocNote: input.Location.LocNote,
		}
	}

	var tags *[]model.Tag
	if input.TagIDs != nil {
		resolved, err := s.resolveTags(ctx, *input.TagIDs)
		if err != nil {
			return nil, err
		}
		tags = &resolved
	}

	if err := s.eventRepo.UpdateWithRelations(ctx, event, location, tags); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}

	if input.Photo != nil && *input.Photo != "" {
		photo := &model.Photo{EventID: event.EventID, Photo: *input.Photo}
		if err := s.eventRepo.AddPhoto(ctx, photo); err != nil {
			return nil, fmt.Errorf("add photo: %w", err)
		}
	}

	s.cache.Delete(ctx, activeEventsCacheKey)

	updated, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("reload event: %w", err)
	}
	return updated, nil
}

func (s *eventService) GetByID(ctx context.Context, eventID uint) (*model.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrEventNotFound
		}
		return nil, fmt.Errorf("find event: %w", err)
	}
	return event, nil
}

func (s *eventService) ListForUser(ctx context.Context, userID uint) ([]model.Event, error) {
	return s.eventRepo.ListByUser(ctx, userID)
}

// ListActive serves the active listing through a short-lived cache. Cached
// entries are re-filtered against the current clock so an event expiring
// inside the TTL window is never served as active.
func (s *eventService) ListActive(ctx context.Context) ([]model.Event, error) {
	now := time.Now()

	var cached []model.Event
	if s.cache.GetJSON(ctx, activeEventsCacheKey, &cached) {
		return filterActive(cached, now), nil
	}

	events, err := s.eventRepo.ListActive(ctx, now)
	if err != nil {
		return nil, err
	}

	// List views carry at most the first photo as a thumbnail.
	for i := range events {
		if len(events[i].Photos) > 1 {
			events[i].Photos = events[i].Photos[:1]
		}
	}

	s.cache.SetJSON(ctx, activeEventsCacheKey, events, activeEventsCacheTTL)
	return filterActive(events, now), nil
}

func filterActive(events []model.Event, now time.Time) []model.Event {
	active := make([]model.Event, 0, len(events))
	for _, e := range events {
		if e.ExpTime.After(now) && !e.Done {
			active = append(active, e)
		}
	}
	return active
}

// resolveTags maps tag ids to existing tag rows. Unknown ids are rejected up
// front; letting the association write discover them would abort the
// transaction with an opaque storage error.
func (s *eventService) resolveTags(ctx context.Context, ids []uint) ([]model.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	tags, err := s.tagRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve tags: %w", err)
	}
	if len(tags) != len(ids) {
		return nil, errors.NewValidationError("One or more tags do not exist.")
	}
	return tags, nil
}

func validateEventInput(now time.Time, input CreateEventInput) error {
	if input.ExpTime != nil && !input.ExpTime.After(now) {
		return errors.NewValidationError("Expiration time must be after the current time.")
	}
	if strings.TrimSpace(input.Description) == "" {
		return errors.NewValidationError("Description cannot be empty.")
	}
	if strings.TrimSpace(input.Qty) == "" {
		return errors.NewValidationError("Quantity cannot be empty.")
	}
	if len(input.Photos) > maxPhotosPerEvent {
		return errors.NewValidationError("Upload no more than 10 photos.")
	}
	if input.ExpTime == nil {
		return errors.NewValidationError("Expiration time must exist.")
	}
	return validateLocationInput(input.Location)
}

func validateLocationInput(loc LocationInput) error {
	if strings.TrimSpace(loc.Address) == "" {
		return errors.NewValidationError("Location address cannot be empty.")
	}
	if loc.Floor == nil {
		return errors.NewValidationError("Location floor cannot be empty.")
	}
	if *loc.Floor < 0 {
		return errors.NewValidationError("Location floor must be an integer.")
	}
	if strings.TrimSpace(loc.Room) == "" {
		return errors.NewValidationError("Location room cannot be empty.")
	}
	return nil
}

// validateEventEdit applies the create-time rules to whichever fields the
// edit actually supplies.
func validateEventEdit(now time.Time, input EditEventInput) error {
	if input.ExpTime != nil && !input.ExpTime.After(now) {
		return errors.NewValidationError("Expiration time must be after the current time.")
	}
	if input.Description != nil && strings.TrimSpace(*input.Description) == "" {
		return errors.NewValidationError("Description cannot be empty.")
	}
	if input.Qty != nil && strings.TrimSpace(*input.Qty) == "" {
		return errors.NewValidationError("Quantity cannot be empty.")
	}
	if input.Location != nil {
		return validateLocationInput(*input.Location)
	}
	return nil
}
