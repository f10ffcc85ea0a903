package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"example.com/finance-tracker/backend/internal/models"
)

// Collections — типизированный доступ к коллекциям поверх Store.
// Каждый вызов читает или переписывает документ целиком; снимки
// не кэшируются, вызывающий перечитывает данные явно.
type Collections struct {
	store Store
}

// NewCollections создает типизированную обертку над хранилищем.
func NewCollections(store Store) *Collections {
	return &Collections{store: store}
}

func loadList[T any](ctx context.Context, s Store, key string) ([]T, error) {
	doc, err := s.Get(ctx, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return []T{}, nil
		}
		return nil, fmt.Errorf("load %s: %w", key, err)
	}

	var items []T
	if err := json.Unmarshal(doc, &items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", key, err)
	}

	if items == nil {
		items = []T{}
	}
	return items, nil
}

func saveList[T any](ctx context.Context, s Store, key string, items []T) error {
	if items == nil {
		items = []T{}
	}

	doc, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}

	if err := s.Set(ctx, key, doc); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// BudgetItems возвращает все статьи бюджета.
func (c *Collections) BudgetItems(ctx context.Context) ([]models.BudgetItem, error) {
	return loadList[models.BudgetItem](ctx, c.store, KeyBudgetData)
}

// SaveBudgetItems переписывает коллекцию статей бюджета.
func (c *Collections) SaveBudgetItems(ctx context.Context, items []models.BudgetItem) error {
	return saveList(ctx, c.store, KeyBudgetData, items)
}

// ExpenseData возвращает устаревший список расходов по категориям.
func (c *Collections) ExpenseData(ctx context.Context) ([]models.ExpenseData, error) {
	return loadList[models.ExpenseData](ctx, c.store, KeyExpenseData)
}

// MonthlyIncomes возвращает все записи доходов.
func (c *Collections) MonthlyIncomes(ctx context.Context) ([]models.MonthlyIncome, error) {
	return loadList[models.MonthlyIncome](ctx, c.store, KeyMonthlyIncomes)
}

// SaveMonthlyIncomes переписывает коллекцию доходов.
func (c *Collections) SaveMonthlyIncomes(ctx context.Context, items []models.MonthlyIncome) error {
	return saveList(ctx, c.store, KeyMonthlyIncomes, items)
}

// Accounts возвращает все счета.
func (c *Collections) Accounts(ctx context.Context) ([]models.Account, error) {
	return loadList[models.Account](ctx, c.store, KeyAccounts)
}

// SaveAccounts переписывает коллекцию счетов.
func (c *Collections) SaveAccounts(ctx context.Context, items []models.Account) error {
	return saveList(ctx, c.store, KeyAccounts, items)
}

// SavingsTrackers возвращает все движения по счетам.
func (c *Collections) SavingsTrackers(ctx context.Context) ([]models.SavingsTracker, error) {
	return loadList[models.SavingsTracker](ctx, c.store, KeySavingsTrackers)
}

// SaveSavingsTrackers переписывает коллекцию движений.
func (c *Collections) SaveSavingsTrackers(ctx context.Context, items []models.SavingsTracker) error {
	return saveList(ctx, c.store, KeySavingsTrackers, items)
}

// ClosedMonths возвращает записи о закрытых месяцах.
func (c *Collections) ClosedMonths(ctx context.Context) ([]models.ClosedMonth, error) {
	return loadList[models.ClosedMonth](ctx, c.store, KeyClosedMonths)
}

// SaveClosedMonths переписывает коллекцию закрытых месяцев.
func (c *Collections) SaveClosedMonths(ctx context.Context, items []models.ClosedMonth) error {
	return saveList(ctx, c.store, KeyClosedMonths, items)
}

// GoldInvestments возвращает все золотые активы.
func (c *Collections) GoldInvestments(ctx context.Context) ([]models.GoldInvestment, error) {
	return loadList[models.GoldInvestment](ctx, c.store, KeyGoldInvestments)
}

// ZakatRecords возвращает все записи закята.
func (c *Collections) ZakatRecords(ctx context.Context) ([]models.ZakatRecord, error) {
	return loadList[models.ZakatRecord](ctx, c.store, KeyZakatRecords)
}

// Assets возвращает все прочие активы.
func (c *Collections) Assets(ctx context.Context) ([]models.Asset, error) {
	return loadList[models.Asset](ctx, c.store, KeyAssets)
}

// GoldPrices возвращает глобальные цены на золото.
// Отсутствующий документ дает нулевые цены.
func (c *Collections) GoldPrices(ctx context.Context) (models.GoldPrices, error) {
	var prices models.GoldPrices

	doc, err := c.store.Get(ctx, KeyGoldPrices)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return prices, nil
		}
		return prices, fmt.Errorf("load %s: %w", KeyGoldPrices, err)
	}

	if err := json.Unmarshal(doc, &prices); err != nil {
		return prices, fmt.Errorf("decode %s: %w", KeyGoldPrices, err)
	}
	return prices, nil
}

// TripBudget возвращает потолок расходов на поездку, если он задан.
func (c *Collections) TripBudget(ctx context.Context) (models.TripBudget, bool, error) {
	var budget models.TripBudget

	doc, err := c.store.Get(ctx, KeyTripBudget)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return budget, false, nil
		}
		return budget, false, fmt.Errorf("load %s: %w", KeyTripBudget, err)
	}

	if err := json.Unmarshal(doc, &budget); err != nil {
		return budget, false, fmt.Errorf("decode %s: %w", KeyTripBudget, err)
	}
	return budget, true, nil
}

// TripExpenses возвращает все расходы поездки.
func (c *Collections) TripExpenses(ctx context.Context) ([]models.TripExpense, error) {
	return loadList[models.TripExpense](ctx, c.store, KeyTripExpenses)
}
