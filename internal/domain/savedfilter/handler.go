package savedfilter

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/implantdesk/implantdesk/internal/filter"
	"github.com/implantdesk/implantdesk/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	group := api.Group("", auth.RequireRole(auth.RolePractitioner, auth.RoleAssistant, auth.RoleReception))
	group.GET("/saved-filters", h.List)
	group.GET("/saved-filters/:id", h.Load)
	group.POST("/saved-filters", h.Save)
	group.DELETE("/saved-filters/:id", h.Delete)
}

type saveRequest struct {
	Name     string        `json:"name"`
	PageType string        `json:"page_type"`
	Filter   *filter.Group `json:"filter"`
}

func (h *Handler) Save(c echo.Context) error {
	var req saveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	createdBy := auth.UserIDFromContext(c.Request().Context())
	f, err := h.svc.Save(c.Request().Context(), req.Name, req.PageType, req.Filter, createdBy)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, f)
}

// loadResponse carries both the stored record and the decoded group so
// the drawer can rehydrate its rule editors.
type loadResponse struct {
	*SavedFilter
	Filter *filter.Group `json:"filter"`
}

func (h *Handler) Load(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	f, g, err := h.svc.Load(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, filter.ErrInvalidFormat) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, "saved filter has invalid format")
		}
		return echo.NewHTTPError(http.StatusNotFound, "saved filter not found")
	}
	return c.JSON(http.StatusOK, loadResponse{SavedFilter: f, Filter: g})
}

func (h *Handler) List(c echo.Context) error {
	pageType := c.QueryParam("page_type")
	items, err := h.svc.List(c.Request().Context(), pageType)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}
