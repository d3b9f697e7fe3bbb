package savedfilter

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/implantdesk/implantdesk/internal/filter"
)

func newTestHandler() (*Handler, *mockRepo, *echo.Echo) {
	svc, repo := newTestService()
	return NewHandler(svc), repo, echo.New()
}

func TestHandler_Save(t *testing.T) {
	h, _, e := newTestHandler()
	body := `{"name":"narrow straumann","page_type":"implants","filter":{"id":"g1","operator":"AND","rules":[
		{"id":"r1","field":"brand","operator":"contains","value":"stra"}
	]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/saved-filters", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Save(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var f SavedFilter
	if err := json.Unmarshal(rec.Body.Bytes(), &f); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if f.Name != "narrow straumann" || f.PageType != "implants" {
		t.Errorf("unexpected saved filter: %+v", f)
	}
}

func TestHandler_Save_EmptyFilter(t *testing.T) {
	h, _, e := newTestHandler()
	body := `{"name":"empty","page_type":"implants","filter":{"id":"g1","operator":"AND","rules":[]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/saved-filters", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Save(c)
	if err == nil {
		t.Fatal("expected error for empty filter")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_LoadRoundTrip(t *testing.T) {
	h, _, e := newTestHandler()
	saved, err := h.svc.Save(context.Background(), "mine", "implants", brandGroup("stra"), "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/saved-filters/"+saved.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(saved.ID.String())

	if err := h.Load(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		Name   string        `json:"name"`
		Filter *filter.Group `json:"filter"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Name != "mine" {
		t.Errorf("got name %q", resp.Name)
	}
	if resp.Filter == nil || len(resp.Filter.Rules) != 1 || resp.Filter.Rules[0].Value != "stra" {
		t.Errorf("decoded filter does not match saved one: %+v", resp.Filter)
	}
}

func TestHandler_Load_CorruptData(t *testing.T) {
	h, repo, e := newTestHandler()
	id := uuid.New()
	repo.byID[id] = &SavedFilter{ID: id, Name: "bad", PageType: "implants", FilterData: `not json`}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/saved-filters/"+id.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.Load(c)
	if err == nil {
		t.Fatal("expected error for corrupt filter data")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %v", err)
	}
}

func TestHandler_List(t *testing.T) {
	h, _, e := newTestHandler()
	for _, name := range []string{"a", "b"} {
		if _, err := h.svc.Save(context.Background(), name, "implants", brandGroup("x"), ""); err != nil {
			t.Fatalf("save %s: %v", name, err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/saved-filters?page_type=implants", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.List(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var items []*SavedFilter
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 2 {
		t.Errorf("expected 2 saved filters, got %d", len(items))
	}
}

func TestHandler_Delete(t *testing.T) {
	h, repo, e := newTestHandler()
	saved, err := h.svc.Save(context.Background(), "doomed", "implants", brandGroup("x"), "")
	if err != nil {
		t.Fatalf("save: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/saved-filters/"+saved.ID.String(), nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(saved.ID.String())

	if err := h.Delete(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204, got %d", rec.Code)
	}
	if len(repo.byID) != 0 {
		t.Error("row should be gone")
	}
}
