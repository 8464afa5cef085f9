package surveillance

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	h := NewHandler(newTestService())
	e := echo.New()
	return h, e
}

func TestHandler_RecordReport(t *testing.T) {
	h, e := newTestHandler()
	body := `{"disease_name":"Cholera","ward_id":"` + uuid.New().String() +
		`","source":"FACILITY","period_start":"2026-07-01T00:00:00Z",` +
		`"period_end":"2026-07-07T00:00:00Z","cases_suspected":12,"cases_confirmed":4}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.RecordReport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_RecordReport_BadSource(t *testing.T) {
	h, e := newTestHandler()
	body := `{"disease_name":"Cholera","ward_id":"` + uuid.New().String() +
		`","source":"RUMOUR","period_start":"2026-07-01T00:00:00Z",` +
		`"period_end":"2026-07-07T00:00:00Z"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := h.RecordReport(c)
	if err == nil {
		t.Fatal("expected error")
	}
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_GetReport(t *testing.T) {
	h, e := newTestHandler()
	r := seedReport(t, h.svc)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(r.ID.String())
	if err := h.GetReport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_ListReports_ByNumber(t *testing.T) {
	h, e := newTestHandler()
	r := seedReport(t, h.svc)

	req := httptest.NewRequest(http.MethodGet, "/?number="+r.ReportNumber, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.ListReports(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), r.ReportNumber) {
		t.Error("response does not contain the report number")
	}
}

func TestHandler_ListReports_InvalidOutbreakParam(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/?outbreak=maybe", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := h.ListReports(c)
	if err == nil {
		t.Fatal("expected error")
	}
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}

func TestHandler_DeclareOutbreak(t *testing.T) {
	h, e := newTestHandler()
	r := seedReport(t, h.svc)

	body := `{"response_details":"water points chlorinated"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(r.ID.String())
	if err := h.DeclareOutbreak(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"outbreak_declared":true`) {
		t.Error("response does not show the outbreak declared")
	}
}

func TestHandler_DeclareOutbreak_NotFound(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodPost, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())
	err := h.DeclareOutbreak(c)
	if err == nil {
		t.Fatal("expected error")
	}
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %v", err)
	}
}

func TestHandler_RecordDeath(t *testing.T) {
	h, e := newTestHandler()
	body := `{"death_category":"MATERNAL","ward_id":"` + uuid.New().String() +
		`","date_of_death":"2026-08-02T00:00:00Z","place_of_death":"home",` +
		`"immediate_cause":"postpartum haemorrhage"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.RecordDeath(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"pregnancy_related":true`) {
		t.Error("maternal death should come back pregnancy related")
	}
}

func TestHandler_ListDeaths_InvalidCategory(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/?category=UNKNOWN", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	err := h.ListDeaths(c)
	if err == nil {
		t.Fatal("expected error")
	}
	if he, ok := err.(*echo.HTTPError); !ok || he.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %v", err)
	}
}
