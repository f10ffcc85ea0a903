package aggregate

import (
	"sort"

	"example.com/finance-tracker/backend/internal/models"
)

type TripDay struct {
	Day      int                  `json:"day"`
	Total    float64              `json:"total"`
	Expenses []models.TripExpense `json:"expenses"`
}

type TripSummary struct {
	Budget     float64   `json:"budget"`
	TotalSpent float64   `json:"total_spent"`
	Remaining  float64   `json:"remaining"`
	Days       []TripDay `json:"days"`
}

// SummarizeTrip группирует расходы поездки по дням и считает остаток
// от общего потолка.
func SummarizeTrip(budget models.TripBudget, expenses []models.TripExpense) TripSummary {
	byDay := make(map[int][]models.TripExpense)

	var totalSpent float64
	for _, expense := range expenses {
		totalSpent += expense.Amount
		byDay[expense.Day] = append(byDay[expense.Day], expense)
	}

	days := make([]TripDay, 0, len(byDay))
	for day, dayExpenses := range byDay {
		var dayTotal float64
		for _, expense := range dayExpenses {
			dayTotal += expense.Amount
		}
		days = append(days, TripDay{Day: day, Total: dayTotal, Expenses: dayExpenses})
	}

	sort.Slice(days, func(i, j int) bool {
		return days[i].Day < days[j].Day
	})

	return TripSummary{
		Budget:     budget.Budget,
		TotalSpent: totalSpent,
		Remaining:  budget.Budget - totalSpent,
		Days:       days,
	}
}
