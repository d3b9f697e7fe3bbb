package radiograph

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/implantdesk/implantdesk/internal/platform/auth"
	"github.com/implantdesk/implantdesk/internal/platform/blobstore"
	"github.com/implantdesk/implantdesk/pkg/pagination"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	readGroup := api.Group("", auth.RequireRole(auth.RolePractitioner, auth.RoleAssistant))
	readGroup.GET("/radiographs", h.List)
	readGroup.GET("/radiographs/:id", h.Get)
	readGroup.GET("/radiographs/:id/url", h.DownloadURL)

	writeGroup := api.Group("", auth.RequireRole(auth.RolePractitioner, auth.RoleAssistant))
	writeGroup.POST("/radiographs", h.Upload)
	writeGroup.DELETE("/radiographs/:id", h.Delete)

	// Download is authenticated by the URL signature itself, not the
	// session, so signed links can be embedded in <img> tags.
	api.GET("/radiographs/:id/download", h.Download)
}

func (h *Handler) Upload(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	defer file.Close()
	data, err := io.ReadAll(file)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var rg Radiograph
	if pid := c.FormValue("patient_id"); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid patient_id")
		}
		rg.PatientID = id
	}
	if oid := c.FormValue("operation_id"); oid != "" {
		id, err := uuid.Parse(oid)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid operation_id")
		}
		rg.OperationID = &id
	}
	rg.Kind = c.FormValue("kind")
	if capturedAt := c.FormValue("captured_at"); capturedAt != "" {
		t, err := time.Parse(time.RFC3339, capturedAt)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid captured_at")
		}
		rg.CapturedAt = &t
	}
	if note := c.FormValue("note"); note != "" {
		rg.Note = &note
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if err := h.svc.Upload(c.Request().Context(), &rg, contentType, data); err != nil {
		if errors.Is(err, blobstore.ErrUnsupportedContent) || errors.Is(err, blobstore.ErrBlobTooLarge) {
			return echo.NewHTTPError(http.StatusUnsupportedMediaType, err.Error())
		}
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.JSON(http.StatusCreated, rg)
}

func (h *Handler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	rg, err := h.svc.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "radiograph not found")
	}
	return c.JSON(http.StatusOK, rg)
}

func (h *Handler) List(c echo.Context) error {
	patientID, err := uuid.Parse(c.QueryParam("patient_id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "patient_id is required")
	}
	pg := pagination.FromContext(c)
	items, total, err := h.svc.ListByPatient(c.Request().Context(), patientID, pg.Limit, pg.Offset)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, pagination.NewResponse(items, total, pg.Limit, pg.Offset))
}

func (h *Handler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.svc.Delete(c.Request().Context(), id); err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "radiograph not found")
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DownloadURL(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	signed, err := h.svc.DownloadURL(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "radiograph not found")
	}
	return c.JSON(http.StatusOK, signed)
}

func (h *Handler) Download(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	data, rg, err := h.svc.Download(c.Request().Context(), id, c.QueryParam("expires"), c.QueryParam("sig"))
	if err != nil {
		switch {
		case errors.Is(err, blobstore.ErrBadSignature):
			return echo.NewHTTPError(http.StatusForbidden, "invalid signature")
		case errors.Is(err, blobstore.ErrLinkExpired):
			return echo.NewHTTPError(http.StatusForbidden, "link expired")
		default:
			return echo.NewHTTPError(http.StatusNotFound, "radiograph not found")
		}
	}
	return c.Blob(http.StatusOK, rg.ContentType, data)
}
