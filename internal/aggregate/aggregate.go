// Package aggregate содержит чистые функции расчета производных
// показателей по уже загруженным коллекциям. Без побочных эффектов.
package aggregate

import (
	"strings"

	"example.com/finance-tracker/backend/internal/models"
)

type ExpenseField string

const (
	FieldForecast ExpenseField = "forecast"
	FieldActual   ExpenseField = "actual"
)

type Variance string

const (
	VariancePending Variance = "pending"
	VarianceOver    Variance = "over"
	VarianceUnder   Variance = "under"
	VarianceOnTrack Variance = "on-track"
)

// Доля ставки закята от облагаемого богатства.
const zakatRate = 0.025

// Скидка на пригодность золота к закяту.
const goldZakatFactor = 0.9

// MonthlyIncomeTotal суммирует доходы за месяц (точное совпадение "YYYY-MM").
func MonthlyIncomeTotal(incomes []models.MonthlyIncome, month string) float64 {
	var total float64
	for _, income := range incomes {
		if income.Month == month {
			total += income.Amount
		}
	}
	return total
}

// MonthlyExpenseTotal суммирует выбранное поле статей за месяц.
// Месяц сопоставляется префиксом даты; статьи без факта не входят
// в сумму фактических расходов.
func MonthlyExpenseTotal(items []models.BudgetItem, month string, field ExpenseField) float64 {
	var total float64
	for _, item := range items {
		if !strings.HasPrefix(item.Date, month) {
			continue
		}

		switch field {
		case FieldForecast:
			total += item.Forecast
		case FieldActual:
			if item.Actual != nil {
				total += *item.Actual
			}
		}
	}
	return total
}

// RemainingMoney — доход минус фактические расходы месяца.
// Может быть отрицательным при перерасходе.
func RemainingMoney(incomes []models.MonthlyIncome, items []models.BudgetItem, month string) float64 {
	return MonthlyIncomeTotal(incomes, month) - MonthlyExpenseTotal(items, month, FieldActual)
}

// VarianceStatus классифицирует отклонение факта от плана.
// Порог +-10%. Нулевой план с положительным фактом считается
// перерасходом, нулевой план с нулевым фактом — в пределах плана.
func VarianceStatus(forecast float64, actual *float64) Variance {
	if actual == nil {
		return VariancePending
	}

	if forecast == 0 {
		if *actual > 0 {
			return VarianceOver
		}
		return VarianceOnTrack
	}

	pct := (*actual - forecast) / forecast * 100
	switch {
	case pct > 10:
		return VarianceOver
	case pct < -10:
		return VarianceUnder
	default:
		return VarianceOnTrack
	}
}

// pricePerGram возвращает цену грамма для пробы. Пробы без прямой цены
// выводятся из 24K по каратной доле; неизвестная проба дает цену 22K.
func pricePerGram(purity models.GoldPurity, prices models.GoldPrices) float64 {
	switch purity {
	case models.Purity24K:
		return prices.Gold24K
	case models.Purity22K:
		return prices.Gold22K
	case models.Purity21K:
		return prices.Gold21K
	case models.Purity18K:
		return prices.Gold24K * 0.75
	case models.Purity14K:
		return prices.Gold24K * 0.583
	case models.Purity10K:
		return prices.Gold24K * 0.417
	default:
		return prices.Gold22K
	}
}

// GoldValue оценивает стоимость золота по весу и пробе.
func GoldValue(weightGrams float64, purity models.GoldPurity, prices models.GoldPrices) float64 {
	return weightGrams * pricePerGram(purity, prices)
}

// TotalGoldWeight суммирует вес всех золотых активов.
func TotalGoldWeight(investments []models.GoldInvestment) float64 {
	var total float64
	for _, inv := range investments {
		total += inv.Weight
	}
	return total
}

// TotalGoldValue оценивает суммарную стоимость золотых активов.
func TotalGoldValue(investments []models.GoldInvestment, prices models.GoldPrices) float64 {
	var total float64
	for _, inv := range investments {
		total += GoldValue(inv.Weight, inv.Purity, prices)
	}
	return total
}

// ZakatDue — закят со стоимости облагаемого богатства.
func ZakatDue(zakatableWealth float64) float64 {
	return zakatableWealth * zakatRate
}

// ZakatEligibleSavings — облагаемая часть накоплений: меньший из текущего
// и прошлогоднего баланса, если он не ниже порога нисаба, иначе ноль.
func ZakatEligibleSavings(currentBalance, lastYearBalance, nisaabThreshold float64) float64 {
	eligible := currentBalance
	if lastYearBalance < eligible {
		eligible = lastYearBalance
	}

	if eligible < nisaabThreshold {
		return 0
	}
	return eligible
}

// ZakatEligibleGold — облагаемая стоимость золота со скидкой 0.9 на вес.
func ZakatEligibleGold(investments []models.GoldInvestment, prices models.GoldPrices) float64 {
	var total float64
	for _, inv := range investments {
		total += GoldValue(inv.Weight*goldZakatFactor, inv.Purity, prices)
	}
	return total
}

// TotalSavings — каноническое определение общих накоплений:
// балансы счетов плюс стоимость прочих активов по текущему курсу.
func TotalSavings(accounts []models.Account, assets []models.Asset) float64 {
	var total float64
	for _, account := range accounts {
		total += account.Balance
	}
	for _, asset := range assets {
		total += asset.Amount * asset.CurrentRate
	}
	return total
}
