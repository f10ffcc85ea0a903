package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"example.com/finance-tracker/backend/internal/aggregate"
	"example.com/finance-tracker/backend/internal/models"
	"example.com/finance-tracker/backend/internal/store"
)

func newStatsContext(t *testing.T, path string) (echo.Context, *httptest.ResponseRecorder, store.Store, *StatsHandler) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	st := store.NewMemoryStore()
	handler := NewStatsHandler(store.NewCollections(st))
	return c, rec, st, handler
}

func actualOf(v float64) *float64 {
	return &v
}

// TestVarianceFiltersByMonth проверяет отбор статей по месяцу даты.
func TestVarianceFiltersByMonth(t *testing.T) {
	ctx := context.Background()
	c, rec, st, handler := newStatsContext(t, "/api/v1/stats/variance?month=2024-12")

	data := store.NewCollections(st)
	if err := data.SaveBudgetItems(ctx, []models.BudgetItem{
		{ID: "b-1", Name: "Rent", Forecast: 50000, Actual: actualOf(50000), Date: "2024-12-01"},
		{ID: "b-2", Name: "Groceries", Forecast: 10000, Actual: actualOf(12000), Date: "2024-12-15"},
		{ID: "b-3", Name: "Rent", Forecast: 50000, Date: "2025-01-01"},
		{ID: "b-4", Name: "Broken", Forecast: 100, Date: "2024"},
	}); err != nil {
		t.Fatalf("seed budget items: %v", err)
	}

	if err := handler.Variance(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var response VarianceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(response.Items) != 2 {
		t.Fatalf("expected 2 items for 2024-12, got %d", len(response.Items))
	}
	if response.Items[0].ID != "b-1" || response.Items[0].Status != aggregate.VarianceOnTrack {
		t.Fatalf("unexpected first item %+v", response.Items[0])
	}
	if response.Items[1].ID != "b-2" || response.Items[1].Status != aggregate.VarianceOver {
		t.Fatalf("unexpected second item %+v", response.Items[1])
	}
}

// TestVarianceRejectsInvalidMonth проверяет 400 для кривого месяца.
func TestVarianceRejectsInvalidMonth(t *testing.T) {
	c, rec, _, handler := newStatsContext(t, "/api/v1/stats/variance?month=dec-2024")

	if err := handler.Variance(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

// TestZakatYearFilter проверяет отбор выплат закята по году.
func TestZakatYearFilter(t *testing.T) {
	ctx := context.Background()
	c, rec, st, handler := newStatsContext(t, "/api/v1/stats/zakat?year=2024")

	doc, err := json.Marshal([]models.ZakatRecord{
		{ID: "z-1", Year: "2023", ZakatDue: 5000, ZakatPaid: 5000, Status: models.ZakatStatusPaid},
		{ID: "z-2", Year: "2024", ZakatDue: 6000, Status: models.ZakatStatusPending},
	})
	if err != nil {
		t.Fatalf("encode zakat records: %v", err)
	}
	if err := st.Set(ctx, store.KeyZakatRecords, doc); err != nil {
		t.Fatalf("seed zakat records: %v", err)
	}

	if err := handler.Zakat(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var response ZakatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(response.Records) != 1 {
		t.Fatalf("expected 1 record for 2024, got %d", len(response.Records))
	}
	if response.Records[0].ID != "z-2" {
		t.Fatalf("unexpected record %+v", response.Records[0])
	}
}

// TestZakatWithoutYearReturnsAllRecords проверяет выдачу без фильтра.
func TestZakatWithoutYearReturnsAllRecords(t *testing.T) {
	ctx := context.Background()
	c, rec, st, handler := newStatsContext(t, "/api/v1/stats/zakat")

	doc, err := json.Marshal([]models.ZakatRecord{
		{ID: "z-1", Year: "2023"},
		{ID: "z-2", Year: "2024"},
	})
	if err != nil {
		t.Fatalf("encode zakat records: %v", err)
	}
	if err := st.Set(ctx, store.KeyZakatRecords, doc); err != nil {
		t.Fatalf("seed zakat records: %v", err)
	}

	if err := handler.Zakat(c); err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var response ZakatResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(response.Records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(response.Records))
	}
}
