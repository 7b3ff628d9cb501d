package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"freefood/internal/errors"
	"freefood/internal/model"
)

// MockEventRepository is a mock implementation of EventRepository.
type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) Create(ctx context.Context, event *model.Event, tags []model.Tag) error {
	args := m.Called(ctx, event, tags)
	return args.Error(0)
}

func (m *MockEventRepository) UpdateWithRelations(ctx context.Context, event *model.Event, location *model.Location, tags *[]model.Tag) error {
	args := m.Called(ctx, event, location, tags)
	return args.Error(0)
}

func (m *MockEventRepository) AddPhoto(ctx context.Context, photo *model.Photo) error {
	args := m.Called(ctx, photo)
	return args.Error(0)
}

func (m *MockEventRepository) FindByID(ctx context.Context, id uint) (*model.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Event), args.Error(1)
}

func (m *MockEventRepository) ListByUser(ctx context.Context, userID uint) ([]model.Event, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockEventRepository) ListActive(ctx context.Context, now time.Time) ([]model.Event, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

// MockTagRepository is a mock implementation of TagRepository.
type MockTagRepository struct {
	mock.Mock
}

func (m *MockTagRepository) List(ctx context.Context) ([]model.Tag, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) FindByIDs(ctx context.Context, ids []uint) ([]model.Tag, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tag), args.Error(1)
}

func (m *MockTagRepository) FirstOrCreateByName(ctx context.Context, name string) (*model.Tag, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Tag), args.Error(1)
}

func intPtr(v int) *int              { return &v }
func strPtr(v string) *string        { return &v }
func timePtr(v time.Time) *time.Time { return &v }

func validCreateInput() CreateEventInput {
	return CreateEventInput{
		Description: "Leftover pizza from the CS seminar",
		Qty:         "3 boxes",
		ExpTime:     timePtr(time.Now().Add(2 * time.Hour)),
		TagIDs:      nil,
		Location: LocationInput{
			Address: "Gates Hall",
			Floor:   intPtr(3),
			Room:    "3002",
		},
	}
}

func TestEventService_Create_Validation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*CreateEventInput)
		expectedMsg string
	}{
		{
			name:        "expiration in the past",
			mutate:      func(in *CreateEventInput) { in.ExpTime = timePtr(time.Now().Add(-time.Hour)) },
			expectedMsg: "Expiration time must be after the current time.",
		},
		{
			name:        "empty description",
			mutate:      func(in *CreateEventInput) { in.Description = "  " },
			expectedMsg: "Description cannot be empty.",
		},
		{
			name:        "empty quantity",
			mutate:      func(in *CreateEventInput) { in.Qty = "" },
			expectedMsg: "Quantity cannot be empty.",
		},
		{
			name:        "too many photos",
			mutate:      func(in *CreateEventInput) { in.Photos = make([]string, 11) },
			expectedMsg: "Upload no more than 10 photos.",
		},
		{
			name:        "missing expiration",
			mutate:      func(in *CreateEventInput) { in.ExpTime = nil },
			expectedMsg: "Expiration time must exist.",
		},
		{
			name:        "empty address",
			mutate:      func(in *CreateEventInput) { in.Location.Address = "" },
			expectedMsg: "Location address cannot be empty.",
		},
		{
			name:        "missing floor",
			mutate:      func(in *CreateEventInput) { in.Location.Floor = nil },
			expectedMsg: "Location floor cannot be empty.",
		},
		{
			name:        "negative floor",
			mutate:      func(in *CreateEventInput) { in.Location.Floor = intPtr(-2) },
			expectedMsg: "Location floor must be an integer.",
		},
		{
			name:        "empty room",
			mutate:      func(in *CreateEventInput) { in.Location.Room = " " },
			expectedMsg: "Location room cannot be empty.",
		},
		{
			// The ordering matters: the past-expiration rule fires before
			// the empty-description rule when both fail.
			name: "past expiration wins over empty description",
			mutate: func(in *CreateEventInput) {
				in.ExpTime = timePtr(time.Now().Add(-time.Hour))
				in.Description = ""
			},
			expectedMsg: "Expiration time must be after the current time.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockEvents := new(MockEventRepository)
			mockTags := new(MockTagRepository)
			svc := NewEventService(mockEvents, mockTags, nil)

			input := validCreateInput()
			tt.mutate(&input)

			event, err := svc.Create(context.Background(), 1, input)

			assert.Nil(t, event)
			var verr *errors.ValidationError
			assert.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.expectedMsg, verr.Message)

			// Validation failures must never reach the store.
			mockEvents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestEventService_Create_Success(t *testing.T) {
	mockEvents := new(MockEventRepository)
	mockTags := new(MockTagRepository)
	svc := NewEventService(mockEvents, mockTags, nil)

	input := validCreateInput()
	input.TagIDs = []uint{1, 2}
	input.Photos = []string{"data:image/png;base64,AAA", "data:image/png;base64,BBB"}
	input.Location.LocNote = "By the elevators"

	resolved := []model.Tag{{TagID: 1, Name: "Pizza"}, {TagID: 2, Name: "Vegetarian"}}
	mockTags.On("FindByIDs", mock.Anything, []uint{1, 2}).Return(resolved, nil)
	mockEvents.On("Create", mock.Anything, mock.AnythingOfType("*model.Event"), resolved).Return(nil)

	event, err := svc.Create(context.Background(), 42, input)

	assert.NoError(t, err)
	assert.NotNil(t, event)
	assert.Equal(t, uint(42), event.CreatedByID)
	assert.False(t, event.Done)
	assert.False(t, event.PostTime.IsZero())
	assert.True(t, event.ExpTime.After(event.PostTime))
	assert.Len(t, event.Photos, 2)
	if assert.NotNil(t, event.Location) {
		assert.Equal(t, "Gates Hall", event.Location.Address)
		assert.Equal(t, 3, event.Location.Floor)
		assert.Equal(t, "By the elevators", event.Location.LocNote)
	}

	mockEvents.AssertExpectations(t)
	mockTags.AssertExpectations(t)
}

func TestEventService_Create_UnknownTag(t *testing.T) {
	mockEvents := new(MockEventRepository)
	mockTags := new(MockTagRepository)
	svc := NewEventService(mockEvents, mockTags, nil)

	input := validCreateInput()
	input.TagIDs = []uint{1, 99}

	mockTags.On("FindByIDs", mock.Anything, []uint{1, 99}).Return([]model.Tag{{TagID: 1, Name: "Pizza"}}, nil)

	event, err := svc.Create(context.Background(), 1, input)

	assert.Nil(t, event)
	var verr *errors.ValidationError
	assert.ErrorAs(t, err, &verr)
	mockEvents.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestEventService_Edit_ReplacesTagSet(t *testing.T) {
	mockEvents := new(MockEventRepository)
	mockTags := new(MockTagRepository)
	svc := NewEventService(mockEvents, mockTags, nil)

	existing := &model.Event{
		EventID:     5,
		Description: "Bagels",
		Qty:         "1 dozen",
		ExpTime:     time.Now().Add(time.Hour),
		Tags:        []model.Tag{{TagID: 1}, {TagID: 2}, {TagID: 3}},
	}
	afterEdit := &model.Event{EventID: 5, Description: "Bagels", Tags: []model.Tag{}}

	mockEvents.On("FindByID", mock.Anything, uint(5)).Return(existing, nil).Once()
	mockEvents.On("UpdateWithRelations", mock.Anything, existing, (*model.Location)(nil), mock.MatchedBy(func(tags *[]model.Tag) bool {
		return tags != nil && len(*tags) == 0
	})).Return(nil)
	mockEvents.On("FindByID", mock.Anything, uint(5)).Return(afterEdit, nil).Once()

	empty := []uint{}
	event, err := svc.Edit(context.Background(), 5, EditEventInput{TagIDs: &empty})

	assert.NoError(t, err)
	assert.Empty(t, event.Tags)
	mockEvents.AssertExpectations(t)
}

func TestEventService_Edit_AppendsPhoto(t *testing.T) {
	mockEvents := new(MockEventRepository)
	mockTags := new(MockTagRepository)
	svc := NewEventService(mockEvents, mockTags, nil)

	existing := &model.Event{EventID: 5, Description: "Bagels", Qty: "1 dozen", ExpTime: time.Now().Add(time.Hour)}

	mockEvents.On("FindByID", mock.Anything, uint(5)).Return(existing, nil)
	mockEvents.On("UpdateWithRelations", mock.Anything, existing, (*model.Location)(nil), (*[]model.Tag)(nil)).Return(nil)
	mockEvents.On("AddPhoto", mock.Anything, mock.MatchedBy(func(p *model.Photo) bool {
		return p.EventID == 5 && p.Photo == "data:image/jpeg;base64,CCC"
	})).Return(nil)

	_, err := svc.Edit(context.Background(), 5, EditEventInput{
		Qty:   strPtr("2 dozen"),
		Photo: strPtr("data:image/jpeg;base64,CCC"),
	})

	assert.NoError(t, err)
	assert.Equal(t, "2 dozen", existing.Qty)
	mockEvents.AssertExpectations(t)
}

func TestEventService_Edit_ValidatesSuppliedFields(t *testing.T) {
	mockEvents := new(MockEventRepository)
	mockTags := new(MockTagRepository)
	svc := NewEventService(mockEvents, mockTags, nil)

	existing := &model.Event{EventID: 5, Description: "Bagels", ExpTime: time.Now().Add(time.Hour)}
	mockEvents.On("FindByID", mock.Anything, uint(5)).Return(existing, nil)

	_, err := svc.Edit(context.Background(), 5, EditEventInput{Description: strPtr("   ")})

	var verr *errors.ValidationError
	assert.ErrorAs(t, err, &verr)
	assert.Equal(t, "Description cannot be empty.", verr.Message)
	mockEvents.AssertNotCalled(t, "UpdateWithRelations", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestEventService_Edit_NotFound(t *testing.T) {
	mockEvents := new(MockEventRepository)
	mockTags := new(MockTagRepository)
	svc := NewEventService(mockEvents, mockTags, nil)

	mockEvents.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.Edit(context.Background(), 404, EditEventInput{})
	assert.ErrorIs(t, err, errors.ErrEventNotFound)
}

func TestEventService_GetByID_NotFound(t *testing.T) {
	mockEvents := new(MockEventRepository)
	mockTags := new(MockTagRepository)
	svc := NewEventService(mockEvents, mockTags, nil)

	mockEvents.On("FindByID", mock.Anything, uint(404)).Return(nil, gorm.ErrRecordNotFound)

	_, err := svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, errors.ErrEventNotFound)
}

func TestEventService_ListActive(t *testing.T) {
	mockEvents := new(MockEventRepository)
	mockTags := new(MockTagRepository)
	svc := NewEventService(mockEvents, mockTags, nil)

	future := time.Now().Add(time.Hour)
	events := []model.Event{
		{
			EventID: 1,
			ExpTime: future,
			Photos:  []model.Photo{{ID: 1}, {ID: 2}, {ID: 3}},
		},
		{
			// Expired between the repository query and now; must be dropped.
			EventID: 2,
			ExpTime: time.Now().Add(-time.Second),
		},
		{
			EventID: 3,
			ExpTime: future,
			Done:    true,
		},
	}
	mockEvents.On("ListActive", mock.Anything, mock.AnythingOfType("time.Time")).Return(events, nil)

	active, err := svc.ListActive(context.Background())

	assert.NoError(t, err)
	if assert.Len(t, active, 1) {
		assert.Equal(t, uint(1), active[0].EventID)
		// List views carry at most one photo.
		assert.Len(t, active[0].Photos, 1)
	}
	mockEvents.AssertExpectations(t)
}
