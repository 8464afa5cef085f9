package clinical

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc := newTestService()
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func TestHandler_CreatePregnancy(t *testing.T) {
	h, e := newTestHandler()
	lmp := time.Now().AddDate(0, -2, 0).UTC().Format(time.RFC3339)
	body := `{"person_id":"` + uuid.New().String() + `","lmp_date":"` + lmp + `","gravida":1}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.CreatePregnancy(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_RecordANCVisit(t *testing.T) {
	h, e := newTestHandler()
	p := seedPregnancy(t, h.svc)

	body := `{"visit_number":1,"visit_date":"` + time.Now().UTC().Format(time.RFC3339) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())
	if err := h.RecordANCVisit(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_RecordANCVisit_SlotTaken(t *testing.T) {
	h, e := newTestHandler()
	p := seedPregnancy(t, h.svc)

	body := `{"visit_number":1,"visit_date":"` + time.Now().UTC().Format(time.RFC3339) + `"}`
	for i, wantErr := range []bool{false, true} {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("id")
		c.SetParamValues(p.ID.String())
		err := h.RecordANCVisit(c)
		if !wantErr {
			if err != nil {
				t.Fatalf("attempt %d: unexpected error: %v", i, err)
			}
			continue
		}
		he, ok := err.(*echo.HTTPError)
		if !ok || he.Code != http.StatusConflict {
			t.Errorf("expected 409, got %v", err)
		}
	}
}

func TestHandler_RecordDeliveryOutcome(t *testing.T) {
	h, e := newTestHandler()
	p := seedPregnancy(t, h.svc)

	body := `{"delivery_date":"` + time.Now().UTC().Format(time.RFC3339) + `","delivery_outcome":"LIVE_BIRTH"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(p.ID.String())
	if err := h.RecordDeliveryOutcome(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_GetPregnancy_NotFound(t *testing.T) {
	h, e := newTestHandler()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(uuid.New().String())
	if err := h.GetPregnancy(c); err == nil {
		t.Error("expected error")
	}
}

func TestHandler_RecordScreening_InvalidType(t *testing.T) {
	h, e := newTestHandler()
	body := `{"person_id":"` + uuid.New().String() + `","screening_type":"DENTAL","result":"NEGATIVE"}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.RecordScreening(c); err == nil {
		t.Error("expected error")
	}
}
