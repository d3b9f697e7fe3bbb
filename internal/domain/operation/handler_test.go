package operation

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService())
	return h, echo.New()
}

func TestHandler_Create(t *testing.T) {
	h, e := newTestHandler()
	body := `{"patient_id":"` + uuid.New().String() + `","practitioner_id":"` + uuid.New().String() +
		`","date":"2026-03-01T09:00:00Z","type":"implant-placement"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}

	var o Operation
	json.Unmarshal(rec.Body.Bytes(), &o)
	if o.Status != "planned" {
		t.Errorf("expected status planned, got %s", o.Status)
	}
}

func TestHandler_Create_BadRequest(t *testing.T) {
	h, e := newTestHandler()
	body := `{"patient_id":"` + uuid.New().String() + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/operations", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Create(c); err == nil {
		t.Error("expected error for missing fields")
	}
}

func TestHandler_AddPose(t *testing.T) {
	h, e := newTestHandler()
	operationID := uuid.New()
	body := `{"tooth_position":16,"torque_ncm":35,"bone_type":"D2"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(operationID.String())

	if err := h.AddPose(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_AddPose_InvalidTooth(t *testing.T) {
	h, e := newTestHandler()
	body := `{"tooth_position":99}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	if err := h.AddPose(c); err == nil {
		t.Error("expected error for tooth 99")
	}
}

func TestHandler_AddMeasurementReturnsWeighted(t *testing.T) {
	h, e := newTestHandler()
	poseID := uuid.New()
	body := `{"buccal":60,"lingual":80,"mesial":80,"measured_at":"2026-03-01T09:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(poseID.String())

	if err := h.AddMeasurement(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var resp struct {
		Weighted float64 `json:"weighted"`
	}
	json.Unmarshal(rec.Body.Bytes(), &resp)
	if resp.Weighted != 70 {
		t.Errorf("weighted = %v, want 70", resp.Weighted)
	}
}

func TestHandler_SuggestStatus(t *testing.T) {
	h, e := newTestHandler()
	pose := &ImplantPose{OperationID: uuid.New(), ToothPosition: 46}
	h.svc.AddPose(nil, pose)
	h.svc.AddMeasurement(nil, &ISQMeasurement{
		PoseID: pose.ID, Buccal: 58, Lingual: 58, Mesial: 58, MeasuredAt: time.Now(),
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(pose.ID.String())

	if err := h.SuggestStatus(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var sug Suggestion
	json.Unmarshal(rec.Body.Bytes(), &sug)
	if sug.Status != StatusAtRisk {
		t.Errorf("single low reading should be at-risk, got %s", sug.Status)
	}
	if sug.Reason == "" {
		t.Error("expected a reason")
	}
}

func TestHandler_SuggestStatus_NotFound(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())

	if err := h.SuggestStatus(c); err == nil {
		t.Error("expected error for unknown pose")
	}
}
