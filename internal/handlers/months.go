package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"example.com/finance-tracker/backend/internal/closing"
	"example.com/finance-tracker/backend/internal/models"
	"example.com/finance-tracker/backend/internal/notifications"
	"example.com/finance-tracker/backend/internal/store"
)

const monthLayout = "2006-01"

type MonthHandler struct {
	Data     *store.Collections
	Closer   *closing.ClosureService
	Rollover *closing.RolloverService
	Notifier *notifications.Hub
}

// NewMonthHandler создает обработчик закрытия и переноса месяца.
func NewMonthHandler(data *store.Collections, closer *closing.ClosureService, rollover *closing.RolloverService, notifier *notifications.Hub) *MonthHandler {
	return &MonthHandler{
		Data:     data,
		Closer:   closer,
		Rollover: rollover,
		Notifier: notifier,
	}
}

type CloseMonthRequest struct {
	Amount    *float64 `json:"amount"`
	AccountID string   `json:"account_id"`
}

type MonthStatusResponse struct {
	Month          string              `json:"month"`
	Closed         bool                `json:"closed"`
	Record         *models.ClosedMonth `json:"record,omitempty"`
	TotalIncome    float64             `json:"total_income"`
	TotalForecast  float64             `json:"total_forecast"`
	TotalExpenses  float64             `json:"total_expenses"`
	RemainingMoney float64             `json:"remaining_money"`
}

type RolloverResponse struct {
	NextMonth     string `json:"next_month"`
	ItemsCopied   int    `json:"items_copied"`
	IncomesCopied int    `json:"incomes_copied"`
}

// Status возвращает вычисленные показатели месяца и запись о закрытии.
// Клиент показывает вычисленный остаток рядом с правкой оператора.
func (h *MonthHandler) Status(c echo.Context) error {
	month, err := monthParam(c)
	if err != nil {
		return badRequest(c, "invalid month")
	}

	totals, err := h.Closer.Totals(c.Request().Context(), month)
	if err != nil {
		return serverError(c)
	}

	response := MonthStatusResponse{
		Month:          month,
		TotalIncome:    totals.TotalIncome,
		TotalForecast:  totals.TotalForecast,
		TotalExpenses:  totals.TotalExpenses,
		RemainingMoney: totals.RemainingMoney,
	}

	closed, err := h.Data.ClosedMonths(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	for i := range closed {
		if closed[i].Month == month {
			response.Closed = true
			response.Record = &closed[i]
			break
		}
	}

	return c.JSON(http.StatusOK, response)
}

// Close закрывает месяц, с переводом положительного остатка на счет.
func (h *MonthHandler) Close(c echo.Context) error {
	month, err := monthParam(c)
	if err != nil {
		return badRequest(c, "invalid month")
	}

	var req CloseMonthRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "invalid payload")
	}

	record, err := h.Closer.CloseMonth(c.Request().Context(), closing.CloseRequest{
		Month:     month,
		Amount:    req.Amount,
		AccountID: req.AccountID,
	})
	if err != nil {
		switch {
		case errors.Is(err, closing.ErrAlreadyClosed):
			return conflict(c, "month already closed")
		case errors.Is(err, closing.ErrMissingDestinationAccount):
			return badRequest(c, "destination account required for positive remainder")
		case errors.Is(err, closing.ErrAccountNotFound):
			return notFound(c, "account not found")
		case errors.Is(err, closing.ErrInvalidMonth):
			return badRequest(c, "invalid month")
		}

		var partial *closing.PartialWriteError
		if errors.As(err, &partial) {
			// Клиент обязан перечитать состояние из хранилища.
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"error":           "partial write failure, reload data",
				"completed_steps": partial.Completed,
				"failed_step":     partial.Failed,
			})
		}

		return serverError(c)
	}

	h.Notifier.PublishCollectionChanged(store.KeyClosedMonths)
	if record.SavedToAccountID != "" {
		h.Notifier.PublishCollectionChanged(store.KeyAccounts)
		h.Notifier.PublishCollectionChanged(store.KeySavingsTrackers)
	}

	return c.JSON(http.StatusCreated, record)
}

// CopyToNext копирует статьи и доходы месяца в следующий месяц.
func (h *MonthHandler) CopyToNext(c echo.Context) error {
	month, err := monthParam(c)
	if err != nil {
		return badRequest(c, "invalid month")
	}

	result, err := h.Rollover.CopyToNextMonth(c.Request().Context(), month)
	if err != nil {
		switch {
		case errors.Is(err, closing.ErrNothingToCopy):
			return badRequest(c, "no budget items to copy")
		case errors.Is(err, closing.ErrInvalidMonth):
			return badRequest(c, "invalid month")
		}

		var partial *closing.PartialWriteError
		if errors.As(err, &partial) {
			return c.JSON(http.StatusInternalServerError, map[string]interface{}{
				"error":           "partial write failure, reload data",
				"completed_steps": partial.Completed,
				"failed_step":     partial.Failed,
			})
		}

		return serverError(c)
	}

	h.Notifier.PublishCollectionChanged(store.KeyBudgetData)
	if result.IncomesCopied > 0 {
		h.Notifier.PublishCollectionChanged(store.KeyMonthlyIncomes)
	}

	return c.JSON(http.StatusOK, RolloverResponse{
		NextMonth:     result.NextMonth,
		ItemsCopied:   result.ItemsCopied,
		IncomesCopied: result.IncomesCopied,
	})
}

func monthParam(c echo.Context) (string, error) {
	month := c.Param("month")
	if _, err := time.Parse(monthLayout, month); err != nil {
		return "", err
	}
	return month, nil
}
