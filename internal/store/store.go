package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Store — хранилище коллекций целиком: один ключ — один JSON-документ.
// Каждая запись заменяет документ полностью, побеждает последний писатель.
type Store interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Set(ctx context.Context, key string, doc json.RawMessage) error
	Close() error
}

var (
	ErrNotFound   = errors.New("collection not found")
	ErrUnknownKey = errors.New("unknown collection key")
)

const (
	KeyCategories      = "categories"
	KeyExpenseData     = "expense-data"
	KeyBudgetData      = "budget-data"
	KeySavingsAccounts = "savings-accounts"
	KeySavingsTrackers = "savings-trackers"
	KeyAccounts        = "accounts"
	KeyGoldInvestments = "gold-investments"
	KeyZakatRecords    = "zakat-records"
	KeyMonthlyIncomes  = "monthly-incomes"
	KeyAssets          = "assets"
	KeyClosedMonths    = "closed-months"
	KeyGoldPrices      = "gold-prices"
	KeyTripBudget      = "trip-budget"
	KeyTripExpenses    = "trip-expenses"
)

// singleton-ключи хранят один объект, остальные — массив записей.
var singletonKeys = map[string]bool{
	KeyGoldPrices: true,
	KeyTripBudget: true,
}

var knownKeys = map[string]bool{
	KeyCategories:      true,
	KeyExpenseData:     true,
	KeyBudgetData:      true,
	KeySavingsAccounts: true,
	KeySavingsTrackers: true,
	KeyAccounts:        true,
	KeyGoldInvestments: true,
	KeyZakatRecords:    true,
	KeyMonthlyIncomes:  true,
	KeyAssets:          true,
	KeyClosedMonths:    true,
	KeyGoldPrices:      true,
	KeyTripBudget:      true,
	KeyTripExpenses:    true,
}

// KnownKey сообщает, относится ли ключ к известной коллекции.
func KnownKey(key string) bool {
	return knownKeys[key]
}

// IsSingleton сообщает, хранит ли ключ одиночный объект вместо массива.
func IsSingleton(key string) bool {
	return singletonKeys[key]
}

// EmptyDocument возвращает документ по умолчанию для ключа.
func EmptyDocument(key string) json.RawMessage {
	if IsSingleton(key) {
		return json.RawMessage("{}")
	}
	return json.RawMessage("[]")
}
