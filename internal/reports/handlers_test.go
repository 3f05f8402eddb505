package reports

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/fdg312/run-coach/internal/storage"
	"github.com/fdg312/run-coach/internal/storage/memory"
)

func newLocalService(t *testing.T) (*Service, *memory.MemoryStorage) {
	t.Helper()
	store := memory.New()
	service := NewService(store, store, nil, 366, 900, "", false)
	return service, store
}

func seedRuns(t *testing.T, store *memory.MemoryStorage) {
	t.Helper()
	hr := 148.0
	runs := []storage.Run{
		{Date: "2025-03-10", DistanceKm: 10.5, DurationMin: 58, ElevationM: 120, AvgHR: &hr},
		{Date: "2025-03-12", DistanceKm: 6.2, DurationMin: 35},
	}
	for i := range runs {
		if err := store.UpsertRun(context.Background(), &runs[i]); err != nil {
			t.Fatal(err)
		}
	}
}

func TestCreateReportCSV(t *testing.T) {
	service, store := newLocalService(t)
	seedRuns(t, store)

	report, err := service.CreateReport(context.Background(), CreateReportRequest{
		From: "2025-03-10", To: "2025-03-16", Format: FormatCSV,
	})
	if err != nil {
		t.Fatal(err)
	}

	if report.SizeBytes == 0 || len(report.Data) == 0 {
		t.Fatal("local mode must store report bytes inline")
	}
	if report.ObjectKey != nil {
		t.Error("local mode must not set an object key")
	}

	content := string(report.Data)
	if !strings.HasPrefix(content, "date,distance_km,duration_min") {
		t.Errorf("csv header missing: %q", content)
	}
	if !strings.Contains(content, "2025-03-10,10.50,58.0") {
		t.Errorf("csv row missing: %q", content)
	}
}

func TestCreateReportPDF(t *testing.T) {
	service, store := newLocalService(t)
	seedRuns(t, store)

	report, err := service.CreateReport(context.Background(), CreateReportRequest{
		From: "2025-03-10", To: "2025-03-16", Format: FormatPDF,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(report.Data, []byte("%PDF")) {
		t.Error("not a PDF document")
	}
}

func TestCreateReportValidation(t *testing.T) {
	service, _ := newLocalService(t)

	cases := []struct {
		req  CreateReportRequest
		want error
	}{
		{CreateReportRequest{From: "2025-03-10", To: "2025-03-16", Format: "xlsx"}, ErrInvalidFormat},
		{CreateReportRequest{From: "mars", To: "2025-03-16", Format: FormatCSV}, ErrInvalidDate},
		{CreateReportRequest{From: "2025-03-16", To: "2025-03-10", Format: FormatCSV}, ErrInvalidDateRange},
		{CreateReportRequest{From: "2020-01-01", To: "2025-03-16", Format: FormatCSV}, ErrRangeTooLarge},
	}
	for i, tc := range cases {
		if _, err := service.CreateReport(context.Background(), tc.req); err != tc.want {
			t.Errorf("case %d: err = %v, want %v", i, err, tc.want)
		}
	}
}

func TestHandleCreateAndDownload(t *testing.T) {
	service, store := newLocalService(t)
	seedRuns(t, store)
	h := NewHandlers(service)

	body, _ := json.Marshal(CreateReportRequest{From: "2025-03-10", To: "2025-03-16", Format: FormatCSV})
	req := httptest.NewRequest(http.MethodPost, "/v1/reports", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.HandleCreate(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var dto ReportDTO
	if err := json.Unmarshal(rec.Body.Bytes(), &dto); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(dto.DownloadURL, "/v1/reports/"+dto.ID.String()+"/download") {
		t.Errorf("download URL = %q", dto.DownloadURL)
	}

	// Download through a mux so the {id} path value is populated.
	mux := http.NewServeMux()
	mux.HandleFunc("GET /v1/reports/{id}/download", h.HandleDownload)

	req = httptest.NewRequest(http.MethodGet, "/v1/reports/"+dto.ID.String()+"/download", nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("download status = %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/csv" {
		t.Errorf("content type = %q", ct)
	}
	if !strings.Contains(rec.Header().Get("Content-Disposition"), "report_2025-03-10_2025-03-16.csv") {
		t.Errorf("content disposition = %q", rec.Header().Get("Content-Disposition"))
	}
}

func TestHandleListAndDelete(t *testing.T) {
	service, store := newLocalService(t)
	seedRuns(t, store)
	h := NewHandlers(service)

	report, err := service.CreateReport(context.Background(), CreateReportRequest{
		From: "2025-03-10", To: "2025-03-16", Format: FormatCSV,
	})
	if err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodGet, "/v1/reports", nil)
	rec := httptest.NewRecorder()
	h.HandleList(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}

	var listed ReportsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &listed); err != nil {
		t.Fatal(err)
	}
	if len(listed.Reports) != 1 || listed.Reports[0].ID != report.ID {
		t.Errorf("reports = %+v", listed.Reports)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("DELETE /v1/reports/{id}", h.HandleDelete)

	req = httptest.NewRequest(http.MethodDelete, "/v1/reports/"+report.ID.String(), nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rec.Code)
	}

	// Repeat delete must report not found.
	req = httptest.NewRequest(http.MethodDelete, "/v1/reports/"+report.ID.String(), nil)
	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("repeat delete status = %d", rec.Code)
	}
}
