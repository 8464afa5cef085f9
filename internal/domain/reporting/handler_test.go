package reporting

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/chis/chis/internal/platform/auth"
)

func newTestHandler() (*Handler, *echo.Echo) {
	svc := newTestService(&mockAggregator{metrics: Metrics{ANCVisits: 8}}, nil)
	h := NewHandler(svc)
	e := echo.New()
	return h, e
}

func TestHandler_GenerateReport(t *testing.T) {
	h, e := newTestHandler()
	body := `{"facility_id":"` + uuid.New().String() + `","year":2026,"month":7}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.GenerateReport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", rec.Code)
	}
}

func TestHandler_GenerateReport_InvalidPeriod(t *testing.T) {
	h, e := newTestHandler()
	body := `{"facility_id":"` + uuid.New().String() + `","year":2026,"month":13}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.GenerateReport(c); err == nil {
		t.Error("expected error")
	}
}

func TestHandler_ApproveReport(t *testing.T) {
	h, e := newTestHandler()
	report, err := h.svc.Generate(context.Background(), uuid.New(), 2026, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	ctx := context.WithValue(req.Context(), auth.UserIDKey, uuid.New().String())
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(report.ID.String())
	if err := h.ApproveReport(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestHandler_ApproveReport_Twice(t *testing.T) {
	h, e := newTestHandler()
	report, err := h.svc.Generate(context.Background(), uuid.New(), 2026, 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := h.svc.Approve(context.Background(), report.ID, uuid.New()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	ctx := context.WithValue(req.Context(), auth.UserIDKey, uuid.New().String())
	req = req.WithContext(ctx)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(report.ID.String())
	err = h.ApproveReport(c)
	if err == nil {
		t.Fatal("expected error")
	}
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusConflict {
		t.Errorf("expected 409, got %v", err)
	}
}

func TestHandler_ExportReports(t *testing.T) {
	h, e := newTestHandler()
	if _, err := h.svc.Generate(context.Background(), uuid.New(), 2026, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/?year=2026&month=7", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.ExportReports(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if cd := rec.Header().Get(echo.HeaderContentDisposition); !strings.Contains(cd, "monthly-reports-2026-07.xlsx") {
		t.Errorf("unexpected content disposition: %s", cd)
	}
}

func TestHandler_ListReports(t *testing.T) {
	h, e := newTestHandler()
	if _, err := h.svc.Generate(context.Background(), uuid.New(), 2026, 7); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/?year=2026", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.ListReports(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}
