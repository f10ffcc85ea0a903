package closing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"example.com/finance-tracker/backend/internal/models"
	"example.com/finance-tracker/backend/internal/store"
)

// RolloverService копирует статьи бюджета и доходы в следующий месяц.
// Операция только добавляет записи и не идемпотентна: повторный вызов
// для того же месяца продублирует все скопированное.
type RolloverService struct {
	data *store.Collections
}

// NewRolloverService создает сервис переноса на следующий месяц.
func NewRolloverService(data *store.Collections) *RolloverService {
	return &RolloverService{data: data}
}

type RolloverResult struct {
	NextMonth     string
	ItemsCopied   int
	IncomesCopied int
}

// NextMonth прибавляет календарный месяц к "YYYY-MM" с переходом года.
func NextMonth(month string) (string, error) {
	parsed, err := time.Parse(monthLayout, month)
	if err != nil {
		return "", ErrInvalidMonth
	}

	return parsed.AddDate(0, 1, 0).Format(monthLayout), nil
}

// CopyToNextMonth копирует статьи и доходы исходного месяца в следующий.
// У копий статей сбрасываются факт, отметка оплаты и заметки; дата
// ставится на первое число нового месяца. Исходные записи не меняются.
func (s *RolloverService) CopyToNextMonth(ctx context.Context, sourceMonth string) (RolloverResult, error) {
	var result RolloverResult

	nextMonth, err := NextMonth(sourceMonth)
	if err != nil {
		return result, err
	}
	result.NextMonth = nextMonth

	items, err := s.data.BudgetItems(ctx)
	if err != nil {
		return result, err
	}

	copied := make([]models.BudgetItem, 0)
	for _, item := range items {
		if !strings.HasPrefix(item.Date, sourceMonth) {
			continue
		}

		copied = append(copied, models.BudgetItem{
			ID:       uuid.NewString(),
			Name:     item.Name,
			Category: item.Category,
			Forecast: item.Forecast,
			Date:     nextMonth + "-01",
			IsPaid:   false,
		})
	}

	if len(copied) == 0 {
		return result, ErrNothingToCopy
	}

	if err := s.data.SaveBudgetItems(ctx, append(items, copied...)); err != nil {
		return result, err
	}
	result.ItemsCopied = len(copied)

	incomes, err := s.data.MonthlyIncomes(ctx)
	if err != nil {
		return result, &PartialWriteError{Completed: []string{"budget-data"}, Failed: "monthly-incomes", Err: err}
	}

	copiedIncomes := make([]models.MonthlyIncome, 0)
	for _, income := range incomes {
		if income.Month != sourceMonth {
			continue
		}

		copiedIncomes = append(copiedIncomes, models.MonthlyIncome{
			ID:     uuid.NewString(),
			Amount: income.Amount,
			Month:  nextMonth,
			Source: income.Source,
		})
	}

	if len(copiedIncomes) > 0 {
		if err := s.data.SaveMonthlyIncomes(ctx, append(incomes, copiedIncomes...)); err != nil {
			return result, &PartialWriteError{Completed: []string{"budget-data"}, Failed: "monthly-incomes", Err: err}
		}
	}
	result.IncomesCopied = len(copiedIncomes)

	return result, nil
}
