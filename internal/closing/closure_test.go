package closing

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"example.com/finance-tracker/backend/internal/models"
	"example.com/finance-tracker/backend/internal/store"
)

func ptr(v float64) *float64 {
	return &v
}

func seedMonth(t *testing.T, data *store.Collections) {
	t.Helper()
	ctx := context.Background()

	err := data.SaveMonthlyIncomes(ctx, []models.MonthlyIncome{
		{ID: "inc-1", Amount: 100000, Month: "2024-12", Source: "Salary"},
	})
	if err != nil {
		t.Fatalf("seed incomes: %v", err)
	}

	err = data.SaveBudgetItems(ctx, []models.BudgetItem{
		{ID: "b-1", Name: "Rent", Forecast: 50000, Actual: ptr(50000), Date: "2024-12-01"},
		{ID: "b-2", Name: "Food", Forecast: 30000, Actual: ptr(26000), Date: "2024-12-05"},
	})
	if err != nil {
		t.Fatalf("seed budget: %v", err)
	}

	err = data.SaveAccounts(ctx, []models.Account{
		{ID: "acc-1", Name: "Savings", Type: "Savings", Balance: 50000, Bank: "HBL"},
	})
	if err != nil {
		t.Fatalf("seed accounts: %v", err)
	}
}

// TestCloseMonthTransfersRemainder проверяет перевод остатка на счет.
func TestCloseMonthTransfersRemainder(t *testing.T) {
	ctx := context.Background()
	data := store.NewCollections(store.NewMemoryStore())
	seedMonth(t, data)

	service := NewClosureService(data)
	service.now = func() time.Time {
		return time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)
	}

	record, err := service.CloseMonth(ctx, CloseRequest{
		Month:     "2024-12",
		Amount:    ptr(20000),
		AccountID: "acc-1",
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if record.TotalIncome != 100000 {
		t.Fatalf("expected total income 100000, got %v", record.TotalIncome)
	}
	if record.TotalExpenses != 76000 {
		t.Fatalf("expected total expenses 76000, got %v", record.TotalExpenses)
	}
	// Правка оператора авторитетна, а не вычисленные 24000.
	if record.RemainingMoney != 20000 {
		t.Fatalf("expected remaining 20000, got %v", record.RemainingMoney)
	}
	if record.SavedToAccountName != "Savings" {
		t.Fatalf("expected saved-to account name, got %q", record.SavedToAccountName)
	}

	accounts, err := data.Accounts(ctx)
	if err != nil {
		t.Fatalf("load accounts: %v", err)
	}
	if accounts[0].Balance != 70000 {
		t.Fatalf("expected balance 70000, got %v", accounts[0].Balance)
	}
	if accounts[0].LastTransaction != "2024-12-31" {
		t.Fatalf("expected last transaction date, got %q", accounts[0].LastTransaction)
	}

	trackers, err := data.SavingsTrackers(ctx)
	if err != nil {
		t.Fatalf("load trackers: %v", err)
	}
	if len(trackers) != 1 {
		t.Fatalf("expected 1 tracker record, got %d", len(trackers))
	}
	if trackers[0].Amount != 20000 || trackers[0].Type != models.TrackerTypeDeposit {
		t.Fatalf("unexpected tracker: %+v", trackers[0])
	}
	if trackers[0].Description != "December 2024 Month Saved Salary" {
		t.Fatalf("unexpected description: %q", trackers[0].Description)
	}
}

// TestCloseMonthAlreadyClosed проверяет отказ при повторном закрытии.
func TestCloseMonthAlreadyClosed(t *testing.T) {
	ctx := context.Background()
	data := store.NewCollections(store.NewMemoryStore())
	seedMonth(t, data)

	service := NewClosureService(data)

	if _, err := service.CloseMonth(ctx, CloseRequest{Month: "2024-12", AccountID: "acc-1"}); err != nil {
		t.Fatalf("first close failed: %v", err)
	}

	trackersBefore, _ := data.SavingsTrackers(ctx)
	accountsBefore, _ := data.Accounts(ctx)

	_, err := service.CloseMonth(ctx, CloseRequest{Month: "2024-12", AccountID: "acc-1"})
	if !errors.Is(err, ErrAlreadyClosed) {
		t.Fatalf("expected ErrAlreadyClosed, got %v", err)
	}

	// Повторный вызов не пишет ничего.
	trackersAfter, _ := data.SavingsTrackers(ctx)
	accountsAfter, _ := data.Accounts(ctx)
	closed, _ := data.ClosedMonths(ctx)

	if len(trackersAfter) != len(trackersBefore) {
		t.Fatal("expected no new tracker records")
	}
	if accountsAfter[0].Balance != accountsBefore[0].Balance {
		t.Fatal("expected account balance unchanged")
	}
	if len(closed) != 1 {
		t.Fatalf("expected 1 closed month record, got %d", len(closed))
	}
}

// TestCloseMonthRequiresAccount проверяет отказ без счета назначения.
func TestCloseMonthRequiresAccount(t *testing.T) {
	ctx := context.Background()
	data := store.NewCollections(store.NewMemoryStore())
	seedMonth(t, data)

	service := NewClosureService(data)

	_, err := service.CloseMonth(ctx, CloseRequest{Month: "2024-12"})
	if !errors.Is(err, ErrMissingDestinationAccount) {
		t.Fatalf("expected ErrMissingDestinationAccount, got %v", err)
	}

	// Отказ происходит до любой записи.
	trackers, _ := data.SavingsTrackers(ctx)
	closed, _ := data.ClosedMonths(ctx)
	if len(trackers) != 0 || len(closed) != 0 {
		t.Fatal("expected no writes after rejected close")
	}
}

// TestCloseMonthDeficit проверяет закрытие с перерасходом без перевода.
func TestCloseMonthDeficit(t *testing.T) {
	ctx := context.Background()
	data := store.NewCollections(store.NewMemoryStore())

	err := data.SaveMonthlyIncomes(ctx, []models.MonthlyIncome{
		{ID: "inc-1", Amount: 50000, Month: "2024-12", Source: "Salary"},
	})
	if err != nil {
		t.Fatalf("seed incomes: %v", err)
	}
	err = data.SaveBudgetItems(ctx, []models.BudgetItem{
		{ID: "b-1", Name: "Rent", Forecast: 50000, Actual: ptr(65000), Date: "2024-12-01"},
	})
	if err != nil {
		t.Fatalf("seed budget: %v", err)
	}

	service := NewClosureService(data)

	record, err := service.CloseMonth(ctx, CloseRequest{Month: "2024-12"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if record.RemainingMoney != -15000 {
		t.Fatalf("expected remaining -15000, got %v", record.RemainingMoney)
	}
	if record.SavedToAccountID != "" {
		t.Fatal("expected no destination account for deficit close")
	}

	trackers, _ := data.SavingsTrackers(ctx)
	if len(trackers) != 0 {
		t.Fatal("expected no tracker records for deficit close")
	}
}

// TestCloseMonthUnknownAccount проверяет ошибку для несуществующего счета.
func TestCloseMonthUnknownAccount(t *testing.T) {
	ctx := context.Background()
	data := store.NewCollections(store.NewMemoryStore())
	seedMonth(t, data)

	service := NewClosureService(data)

	_, err := service.CloseMonth(ctx, CloseRequest{Month: "2024-12", AccountID: "missing"})
	if !errors.Is(err, ErrAccountNotFound) {
		t.Fatalf("expected ErrAccountNotFound, got %v", err)
	}
}

// TestCloseMonthInvalidMonth проверяет валидацию формата месяца.
func TestCloseMonthInvalidMonth(t *testing.T) {
	data := store.NewCollections(store.NewMemoryStore())
	service := NewClosureService(data)

	_, err := service.CloseMonth(context.Background(), CloseRequest{Month: "december"})
	if !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

// failingStore падает на записи заданного ключа после успешных шагов.
type failingStore struct {
	store.Store
	failKey string
}

func (s *failingStore) Set(ctx context.Context, key string, doc json.RawMessage) error {
	if key == s.failKey {
		return errors.New("write failed")
	}
	return s.Store.Set(ctx, key, doc)
}

// TestCloseMonthPartialWrite проверяет, что падение после первой записи
// возвращает ошибку частичной записи с именем шага.
func TestCloseMonthPartialWrite(t *testing.T) {
	ctx := context.Background()
	base := store.NewMemoryStore()
	seedMonth(t, store.NewCollections(base))

	data := store.NewCollections(&failingStore{Store: base, failKey: store.KeyAccounts})
	service := NewClosureService(data)

	_, err := service.CloseMonth(ctx, CloseRequest{Month: "2024-12", AccountID: "acc-1"})

	var partial *PartialWriteError
	if !errors.As(err, &partial) {
		t.Fatalf("expected PartialWriteError, got %v", err)
	}
	if partial.Failed != "accounts" {
		t.Fatalf("expected failed step accounts, got %q", partial.Failed)
	}
	if len(partial.Completed) != 1 || partial.Completed[0] != "savings-tracker" {
		t.Fatalf("unexpected completed steps: %v", partial.Completed)
	}

	// Запись движения уже лежит в хранилище — состояние рассогласовано.
	trackers, _ := store.NewCollections(base).SavingsTrackers(ctx)
	if len(trackers) != 1 {
		t.Fatalf("expected orphaned tracker record, got %d", len(trackers))
	}
}
