package handlers

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"example.com/finance-tracker/backend/internal/store"
)

type ExportHandler struct {
	Data *store.Collections
}

// NewExportHandler создает обработчик выгрузок.
func NewExportHandler(data *store.Collections) *ExportHandler {
	return &ExportHandler{Data: data}
}

// ClosedMonthsCSV выгружает историю закрытых месяцев в CSV-файл.
func (h *ExportHandler) ClosedMonthsCSV(c echo.Context) error {
	closed, err := h.Data.ClosedMonths(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	header := []string{"month", "closed_date", "total_income", "total_expenses", "remaining_money", "saved_to_account"}
	if err := writer.Write(header); err != nil {
		return serverError(c)
	}

	for _, record := range closed {
		row := []string{
			record.Month,
			record.ClosedDate,
			strconv.FormatFloat(record.TotalIncome, 'f', 2, 64),
			strconv.FormatFloat(record.TotalExpenses, 'f', 2, 64),
			strconv.FormatFloat(record.RemainingMoney, 'f', 2, 64),
			record.SavedToAccountName,
		}
		if err := writer.Write(row); err != nil {
			return serverError(c)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\"closed-months.csv\"")
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}

// ExpenseHistoryCSV выгружает исторические расходы по категориям.
func (h *ExportHandler) ExpenseHistoryCSV(c echo.Context) error {
	expenses, err := h.Data.ExpenseData(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"month", "category", "amount"}); err != nil {
		return serverError(c)
	}

	for _, expense := range expenses {
		row := []string{
			expense.Month,
			expense.Category,
			strconv.FormatFloat(expense.Amount, 'f', 2, 64),
		}
		if err := writer.Write(row); err != nil {
			return serverError(c)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return serverError(c)
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename=\"expense-history.csv\"")
	return c.Blob(http.StatusOK, "text/csv", buf.Bytes())
}
