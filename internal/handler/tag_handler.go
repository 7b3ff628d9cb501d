package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"freefood/internal/errors"
	"freefood/internal/service"
)

// TagHandler handles the tag directory endpoint.
type TagHandler struct {
	tagService service.TagService
}

// NewTagHandler creates a new tag handler.
func NewTagHandler(tagService service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// ListTags godoc
// @Summary List all available tags
// @Tags tags
// @Produce json
// @Success 200 {array} model.Tag
// @Failure 500 {object} errors.ErrorResponse
// @Router /tags [get]
func (h *TagHandler) ListTags(c echo.Context) error {
	tags, err := h.tagService.List(c.Request().Context())
	if err != nil {
		c.Logger().Error(err)
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, tags)
}
