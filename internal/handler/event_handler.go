package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"freefood/internal/auth"
	"freefood/internal/errors"
	"freefood/internal/service"
)

// EventHandler handles event lifecycle endpoints.
type EventHandler struct {
	eventService service.EventService
}

// NewEventHandler creates a new event handler.
func NewEventHandler(eventService service.EventService) *EventHandler {
	return &EventHandler{eventService: eventService}
}

// LocationPayload mirrors the frontend's location object, capitalised
// "Address" included.
type LocationPayload struct {
	Address string `json:"Address"`
	Floor   *int   `json:"floor"`
	Room    string `json:"room"`
	LocNote string `json:"loc_note"`
}

// CreateEventRequest represents an event creation request. The contract
// checks with fixed messages live in the service; the validator tags guard
// the shapes those checks do not cover.
type CreateEventRequest struct {
	Description string          `json:"description"`
	Qty         string          `json:"qty"`
	ExpTime     *time.Time      `json:"exp_time"`
	Tags        []uint          `json:"tags" validate:"omitempty,unique"`
	Location    LocationPayload `json:"location"`
	Photos      []string        `json:"photos" validate:"omitempty,dive,required"`
}

// EditEventRequest represents a partial event edit. Absent fields are left
// untouched; tag_ids, when present, replaces the full tag set; photo, when
// present, is appended.
type EditEventRequest struct {
	Description *string          `json:"description"`
	Qty         *string          `json:"qty"`
	ExpTime     *time.Time       `json:"exp_time"`
	Done        *bool            `json:"done"`
	TagIDs      *[]uint          `json:"tag_ids" validate:"omitempty,unique"`
	Location    *LocationPayload `json:"location"`
	Photo       *string          `json:"photo"`
}

// GetEvents godoc
// @Summary List events owned by the caller
// @Tags events
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Event
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events [get]
func (h *EventHandler) GetEvents(c echo.Context) error {
	claims, ok := auth.CurrentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	events, err := h.eventService.ListForUser(c.Request().Context(), claims.ID)
	if err != nil {
		c.Logger().Error(err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, events)
}

// GetActiveEvents godoc
// @Summary List currently active events
// @Tags events
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/active [get]
func (h *EventHandler) GetActiveEvents(c echo.Context) error {
	events, err := h.eventService.ListActive(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, echo.Map{"events": events})
}

// GetEvent godoc
// @Summary Get a single event with all its relations
// @Tags events
// @Produce json
// @Param event_id path int true "Event ID"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{event_id} [get]
func (h *EventHandler) GetEvent(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "Invalid event_id"})
	}

	event, err := h.eventService.GetByID(c.Request().Context(), eventID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Error(err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, event)
}

// CreateEvent godoc
// @Summary Post a new event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateEventRequest true "Event data"
// @Success 201 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/create [post]
func (h *EventHandler) CreateEvent(c echo.Context) error {
	claims, ok := auth.CurrentClaims(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}

	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.CreateEventInput{
		Description: req.Description,
		Qty:         req.Qty,
		ExpTime:     req.ExpTime,
		TagIDs:      req.Tags,
		Location:    locationInput(req.Location),
		Photos:      req.Photos,
	}

	event, err := h.eventService.Create(c.Request().Context(), claims.ID, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Error(err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, event)
}

// EditEvent godoc
// @Summary Partially edit an event
// @Tags events
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param event_id path int true "Event ID"
// @Param request body EditEventRequest true "Fields to change"
// @Success 200 {object} model.Event
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /events/{event_id} [put]
func (h *EventHandler) EditEvent(c echo.Context) error {
	eventID, err := parseEventID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{Error: "Invalid event_id"})
	}

	var req EditEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	input := service.EditEventInput{
		Description: req.Description,
		Qty:         req.Qty,
		ExpTime:     req.ExpTime,
		Done:        req.Done,
		TagIDs:      req.TagIDs,
		Photo:       req.Photo,
	}
	if req.Location != nil {
		loc := locationInput(*req.Location)
		input.Location = &loc
	}

	event, err := h.eventService.Edit(c.Request().Context(), eventID, input)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		if httpErr.StatusCode == http.StatusInternalServerError {
			c.Logger().Error(err)
		}
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, event)
}

func parseEventID(c echo.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("event_id"), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(id), nil
}

func locationInput(p LocationPayload) service.LocationInput {
	return service.LocationInput{
		Address: p.Address,
		Floor:   p.Floor,
		Room:    p.Room,
		LocNote: p.LocNote,
	}
}
