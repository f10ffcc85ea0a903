// Package closing реализует закрытие месяца и перенос бюджета
// на следующий месяц.
package closing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"example.com/finance-tracker/backend/internal/aggregate"
	"example.com/finance-tracker/backend/internal/models"
	"example.com/finance-tracker/backend/internal/store"
)

const (
	monthLayout = "2006-01"
	dateLayout  = "2006-01-02"
)

// ClosureService закрывает месяц: переводит остаток на выбранный счет
// и фиксирует итоговую запись. Записи идут строго по порядку
// движение -> счет -> закрытый месяц; атомарности между коллекциями нет.
type ClosureService struct {
	data *store.Collections
	now  func() time.Time
}

// NewClosureService создает сервис закрытия месяца.
func NewClosureService(data *store.Collections) *ClosureService {
	return &ClosureService{data: data, now: time.Now}
}

// CloseRequest описывает закрытие месяца. Amount — правка оператора,
// она авторитетна; при nil берется вычисленный остаток.
type CloseRequest struct {
	Month     string
	Amount    *float64
	AccountID string
}

// MonthTotals — вычисленные показатели месяца.
type MonthTotals struct {
	TotalIncome    float64
	TotalForecast  float64
	TotalExpenses  float64
	RemainingMoney float64
}

// IsMonthClosed проверяет наличие записи о закрытии месяца.
func (s *ClosureService) IsMonthClosed(ctx context.Context, month string) (bool, error) {
	closed, err := s.data.ClosedMonths(ctx)
	if err != nil {
		return false, err
	}

	for _, record := range closed {
		if record.Month == month {
			return true, nil
		}
	}
	return false, nil
}

// Totals считает показатели месяца по текущему состоянию коллекций.
func (s *ClosureService) Totals(ctx context.Context, month string) (MonthTotals, error) {
	var totals MonthTotals

	incomes, err := s.data.MonthlyIncomes(ctx)
	if err != nil {
		return totals, err
	}

	items, err := s.data.BudgetItems(ctx)
	if err != nil {
		return totals, err
	}

	totals.TotalIncome = aggregate.MonthlyIncomeTotal(incomes, month)
	totals.TotalForecast = aggregate.MonthlyExpenseTotal(items, month, aggregate.FieldForecast)
	totals.TotalExpenses = aggregate.MonthlyExpenseTotal(items, month, aggregate.FieldActual)
	totals.RemainingMoney = totals.TotalIncome - totals.TotalExpenses
	return totals, nil
}

// CloseMonth закрывает месяц. Положительный остаток требует счет
// назначения; нулевой и отрицательный фиксируются без перевода.
// Проверка дубликата и запись не атомарны: гонка двух закрытий
// одного месяца может оставить две записи.
func (s *ClosureService) CloseMonth(ctx context.Context, req CloseRequest) (models.ClosedMonth, error) {
	var record models.ClosedMonth

	if _, err := time.Parse(monthLayout, req.Month); err != nil {
		return record, ErrInvalidMonth
	}

	alreadyClosed, err := s.IsMonthClosed(ctx, req.Month)
	if err != nil {
		return record, err
	}
	if alreadyClosed {
		return record, ErrAlreadyClosed
	}

	totals, err := s.Totals(ctx, req.Month)
	if err != nil {
		return record, err
	}

	amount := totals.RemainingMoney
	if req.Amount != nil {
		amount = *req.Amount
	}

	if amount > 0 && req.AccountID == "" {
		return record, ErrMissingDestinationAccount
	}

	today := s.now().Format(dateLayout)
	var completed []string
	var savedTo *models.Account

	if amount > 0 {
		accounts, err := s.data.Accounts(ctx)
		if err != nil {
			return record, err
		}

		idx := -1
		for i, account := range accounts {
			if account.ID == req.AccountID {
				idx = i
				break
			}
		}
		if idx < 0 {
			return record, ErrAccountNotFound
		}

		trackers, err := s.data.SavingsTrackers(ctx)
		if err != nil {
			return record, err
		}

		monthStart, _ := time.Parse(monthLayout, req.Month)
		trackers = append(trackers, models.SavingsTracker{
			ID:          uuid.NewString(),
			Date:        today,
			Amount:      amount,
			Type:        models.TrackerTypeDeposit,
			Description: fmt.Sprintf("%s Month Saved Salary", monthStart.Format("January 2006")),
			AccountID:   accounts[idx].ID,
			AccountName: accounts[idx].Name,
		})

		if err := s.data.SaveSavingsTrackers(ctx, trackers); err != nil {
			return record, fmt.Errorf("write savings tracker: %w", err)
		}
		completed = append(completed, "savings-tracker")

		accounts[idx].Balance += amount
		accounts[idx].LastTransaction = today

		if err := s.data.SaveAccounts(ctx, accounts); err != nil {
			return record, &PartialWriteError{Completed: completed, Failed: "accounts", Err: err}
		}
		completed = append(completed, "accounts")

		savedTo = &accounts[idx]
	}

	closed, err := s.data.ClosedMonths(ctx)
	if err != nil {
		if len(completed) > 0 {
			return record, &PartialWriteError{Completed: completed, Failed: "closed-months", Err: err}
		}
		return record, err
	}

	record = models.ClosedMonth{
		ID:             uuid.NewString(),
		Month:          req.Month,
		ClosedDate:     today,
		TotalIncome:    totals.TotalIncome,
		TotalExpenses:  totals.TotalExpenses,
		RemainingMoney: amount,
	}
	if savedTo != nil {
		record.SavedToAccountID = savedTo.ID
		record.SavedToAccountName = savedTo.Name
	}

	if err := s.data.SaveClosedMonths(ctx, append(closed, record)); err != nil {
		if len(completed) > 0 {
			return record, &PartialWriteError{Completed: completed, Failed: "closed-months", Err: err}
		}
		return record, fmt.Errorf("write closed month: %w", err)
	}

	return record, nil
}
