package onboarding

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/implantdesk/implantdesk/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	// Onboarding reshapes the whole practice, admin only.
	group := api.Group("", auth.RequireRole())
	group.GET("/onboarding", h.Get)
	group.POST("/onboarding/steps/:step", h.CompleteStep)
	group.POST("/onboarding/reset", h.Reset)
}

func (h *Handler) Get(c echo.Context) error {
	st, err := h.svc.Get(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) CompleteStep(c echo.Context) error {
	payload, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(payload) > 0 && !json.Valid(payload) {
		return echo.NewHTTPError(http.StatusBadRequest, "payload must be valid JSON")
	}
	st, err := h.svc.CompleteStep(c.Request().Context(), c.Param("step"), payload)
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, st)
}

func (h *Handler) Reset(c echo.Context) error {
	st, err := h.svc.Reset(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusOK, st)
}
