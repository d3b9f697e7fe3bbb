package catalog

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/implantdesk/implantdesk/internal/filter"
	"github.com/implantdesk/implantdesk/internal/platform/auth"
	"github.com/implantdesk/implantdesk/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole(auth.RolePractitioner, auth.RoleAssistant, auth.RoleReception))
	readGroup.GET("/implants", h.ListImplants)
	readGroup.GET("/implants/:id", h.GetImplant)
	readGroup.GET("/implants/filter-fields", h.ImplantFilterFields)
	readGroup.POST("/implants/filtered", h.FilterImplants)
	readGroup.GET("/prostheses", h.ListProstheses)
	readGroup.GET("/prostheses/:id", h.GetProsthesis)
	readGroup.GET("/prostheses/filter-fields", h.ProsthesisFilterFields)
	readGroup.POST("/prostheses/filtered", h.FilterProstheses)

	writeGroup := api.Group("", auth.RequireRole(auth.RolePractitioner, auth.RoleAssistant))
	writeGroup.POST("/implants", h.CreateImplant)
	writeGroup.PUT("/implants/:id", h.UpdateImplant)
	writeGroup.DELETE("/implants/:id", h.DeleteImplant)
	writeGroup.POST("/prostheses", h.CreateProsthesis)
	writeGroup.PUT("/prostheses/:id", h.UpdateProsthesis)
	writeGroup.DELETE("/prostheses/:id", h.DeleteProsthesis)
}

// filteredRequest is the body of the POST .../filtered endpoints.
type filteredRequest struct {
	Filter *filter.Group `json:"filter"`
}

// filterFieldsResponse describes one filterable field and its allowed
// operators, consumed by the filter-drawer UI.
type filterFieldsResponse struct {
	Name      string   `json:"name"`
	Label     string   `json:"label"`
	Type      string   `json:"type"`
	Operators []string `json:"operators"`
}

func fieldsResponse(schema filter.Schema) []filterFieldsResponse {
	out := make([]filterFieldsResponse, 0, len(schema))
	for _, f := range schema {
		out = append(out, filterFieldsResponse{
			Name:      f.Name,
			Label:     f.Label,
			Type:      string(f.Type),
			Operators: f.Operators(),
		})
	}
	return out
}

// -- Implant Handlers --

func (h *Handler) CreateImplant(c echo.Context) error {
	var i Implant
	if err := c.Bind(&i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateImplant(c.Request().Context(), &i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, i)
}

func (h *Handler) GetImplant(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	i, err := h.svc.GetImplant(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "implant not found")
	}
	return c.JSON(http.StatusOK, i)
}

func (h *Handler) ListImplants(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListImplants(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateImplant(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var i Implant
	if err := c.Bind(&i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	i.ID = id
	if err := h.svc.UpdateImplant(c.Request().Context(), &i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, i)
}

func (h *Handler) DeleteImplant(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteImplant(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) FilterImplants(c echo.Context) error {
	var req filteredRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	items, err := h.svc.FilterImplants(c.Request().Context(), req.Filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"total": len(items),
		"chips": filter.Chips(filter.Normalize(req.Filter, ImplantFilterSchema), ImplantFilterSchema),
	})
}

func (h *Handler) ImplantFilterFields(c echo.Context) error {
	return c.JSON(http.StatusOK, fieldsResponse(ImplantFilterSchema))
}

// -- Prosthesis Handlers --

func (h *Handler) CreateProsthesis(c echo.Context) error {
	var p Prosthesis
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.svc.CreateProsthesis(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *Handler) GetProsthesis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	p, err := h.svc.GetProsthesis(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "prosthesis not found")
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) ListProstheses(c echo.Context) error {
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListProstheses(c.Request().Context(), pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) UpdateProsthesis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	var p Prosthesis
	if err := c.Bind(&p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	p.ID = id
	if err := h.svc.UpdateProsthesis(c.Request().Context(), &p); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) DeleteProsthesis(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.DeleteProsthesis(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) FilterProstheses(c echo.Context) error {
	var req filteredRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	items, err := h.svc.FilterProstheses(c.Request().Context(), req.Filter)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"items": items,
		"total": len(items),
		"chips": filter.Chips(filter.Normalize(req.Filter, ProsthesisFilterSchema), ProsthesisFilterSchema),
	})
}

func (h *Handler) ProsthesisFilterFields(c echo.Context) error {
	return c.JSON(http.StatusOK, fieldsResponse(ProsthesisFilterSchema))
}
