package onboarding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	return NewHandler(newTestService()), echo.New()
}

func TestHandler_Get(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/onboarding", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Get(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var st State
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.CurrentStep != StepPracticeProfile {
		t.Errorf("got step %s", st.CurrentStep)
	}
}

func TestHandler_CompleteStep(t *testing.T) {
	h, e := newTestHandler()
	body := `{"practice_name":"Smile Clinic","country":"FR"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding/steps/practice-profile", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("step")
	c.SetParamValues(StepPracticeProfile)

	if err := h.CompleteStep(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var st State
	if err := json.Unmarshal(rec.Body.Bytes(), &st); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if st.CurrentStep != StepPractitioners {
		t.Errorf("expected advance to practitioners, got %s", st.CurrentStep)
	}
}

func TestHandler_CompleteStep_OutOfOrder(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/onboarding/steps/preferences", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("step")
	c.SetParamValues(StepPreferences)

	err := h.CompleteStep(c)
	if err == nil {
		t.Fatal("expected error for out-of-order step")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}
}
