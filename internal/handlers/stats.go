package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/sync/errgroup"

	"example.com/finance-tracker/backend/internal/aggregate"
	"example.com/finance-tracker/backend/internal/models"
	"example.com/finance-tracker/backend/internal/store"
)

type StatsHandler struct {
	Data *store.Collections
}

// NewStatsHandler создает обработчик сводной статистики.
func NewStatsHandler(data *store.Collections) *StatsHandler {
	return &StatsHandler{Data: data}
}

type OverviewResponse struct {
	Month          string  `json:"month"`
	TotalIncome    float64 `json:"total_income"`
	TotalForecast  float64 `json:"total_forecast"`
	TotalExpenses  float64 `json:"total_expenses"`
	RemainingMoney float64 `json:"remaining_money"`
	TotalSavings   float64 `json:"total_savings"`
	TotalGoldValue float64 `json:"total_gold_value"`
	TotalGoldGrams float64 `json:"total_gold_grams"`
	ZakatDue       float64 `json:"zakat_due"`
}

type VarianceItem struct {
	ID       string             `json:"id"`
	Name     string             `json:"name"`
	Category string             `json:"category"`
	Forecast float64            `json:"forecast"`
	Actual   *float64           `json:"actual,omitempty"`
	IsPaid   bool               `json:"is_paid"`
	Status   aggregate.Variance `json:"status"`
}

type VarianceResponse struct {
	Month string         `json:"month"`
	Items []VarianceItem `json:"items"`
}

type ZakatCategory struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	ZakatDue float64 `json:"zakat_due"`
}

type ZakatResponse struct {
	Categories      []ZakatCategory      `json:"categories"`
	TotalWealth     float64              `json:"total_wealth"`
	TotalZakatDue   float64              `json:"total_zakat_due"`
	NisaabThreshold float64              `json:"nisaab_threshold"`
	Records         []models.ZakatRecord `json:"records"`
}

// Overview возвращает показатели месяца и суммарные оценки активов.
// Коллекции загружаются параллельно: их много, а документы независимы.
func (h *StatsHandler) Overview(c echo.Context) error {
	month := c.QueryParam("month")
	if month == "" {
		month = time.Now().Format(monthLayout)
	}
	if _, err := time.Parse(monthLayout, month); err != nil {
		return badRequest(c, "invalid month")
	}

	ctx := c.Request().Context()

	var (
		incomes     []models.MonthlyIncome
		items       []models.BudgetItem
		accounts    []models.Account
		assets      []models.Asset
		investments []models.GoldInvestment
		prices      models.GoldPrices
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { incomes, err = h.Data.MonthlyIncomes(gctx); return })
	g.Go(func() (err error) { items, err = h.Data.BudgetItems(gctx); return })
	g.Go(func() (err error) { accounts, err = h.Data.Accounts(gctx); return })
	g.Go(func() (err error) { assets, err = h.Data.Assets(gctx); return })
	g.Go(func() (err error) { investments, err = h.Data.GoldInvestments(gctx); return })
	g.Go(func() (err error) { prices, err = h.Data.GoldPrices(gctx); return })

	if err := g.Wait(); err != nil {
		return serverError(c)
	}

	totalSavings := aggregate.TotalSavings(accounts, assets)
	totalGoldValue := aggregate.TotalGoldValue(investments, prices)

	return c.JSON(http.StatusOK, OverviewResponse{
		Month:          month,
		TotalIncome:    aggregate.MonthlyIncomeTotal(incomes, month),
		TotalForecast:  aggregate.MonthlyExpenseTotal(items, month, aggregate.FieldForecast),
		TotalExpenses:  aggregate.MonthlyExpenseTotal(items, month, aggregate.FieldActual),
		RemainingMoney: aggregate.RemainingMoney(incomes, items, month),
		TotalSavings:   totalSavings,
		TotalGoldValue: totalGoldValue,
		TotalGoldGrams: aggregate.TotalGoldWeight(investments),
		ZakatDue:       aggregate.ZakatDue(totalSavings + totalGoldValue),
	})
}

// Variance возвращает статус отклонения по каждой статье месяца.
func (h *StatsHandler) Variance(c echo.Context) error {
	month := c.QueryParam("month")
	if _, err := time.Parse(monthLayout, month); err != nil {
		return badRequest(c, "invalid month")
	}

	items, err := h.Data.BudgetItems(c.Request().Context())
	if err != nil {
		return serverError(c)
	}

	response := VarianceResponse{Month: month, Items: []VarianceItem{}}
	for _, item := range items {
		if !strings.HasPrefix(item.Date, month) {
			continue
		}

		response.Items = append(response.Items, VarianceItem{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			Forecast: item.Forecast,
			Actual:   item.Actual,
			IsPaid:   item.IsPaid,
			Status:   aggregate.VarianceStatus(item.Forecast, item.Actual),
		})
	}

	return c.JSON(http.StatusOK, response)
}

// Zakat возвращает облагаемые категории и закят по каждой из них.
// Закят категории равен amount * 0.025, итог — сумма по категориям.
// Параметр year сужает историю выплат до одного года.
func (h *StatsHandler) Zakat(c echo.Context) error {
	ctx := c.Request().Context()
	year := c.QueryParam("year")

	var (
		accounts    []models.Account
		assets      []models.Asset
		investments []models.GoldInvestment
		prices      models.GoldPrices
		records     []models.ZakatRecord
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { accounts, err = h.Data.Accounts(gctx); return })
	g.Go(func() (err error) { assets, err = h.Data.Assets(gctx); return })
	g.Go(func() (err error) { investments, err = h.Data.GoldInvestments(gctx); return })
	g.Go(func() (err error) { prices, err = h.Data.GoldPrices(gctx); return })
	g.Go(func() (err error) { records, err = h.Data.ZakatRecords(gctx); return })

	if err := g.Wait(); err != nil {
		return serverError(c)
	}

	savings := aggregate.ZakatEligibleSavings(
		aggregate.TotalSavings(accounts, assets),
		prices.LastYearAccountBalance,
		prices.NisaabThreshold,
	)
	gold := aggregate.ZakatEligibleGold(investments, prices)

	categories := []ZakatCategory{
		{Category: "Gold & Silver", Amount: gold, ZakatDue: aggregate.ZakatDue(gold)},
		{Category: "Savings", Amount: savings, ZakatDue: aggregate.ZakatDue(savings)},
	}

	var totalWealth, totalDue float64
	for _, category := range categories {
		totalWealth += category.Amount
		totalDue += category.ZakatDue
	}

	filtered := []models.ZakatRecord{}
	for _, record := range records {
		if year != "" && record.Year != year {
			continue
		}
		filtered = append(filtered, record)
	}

	return c.JSON(http.StatusOK, ZakatResponse{
		Categories:      categories,
		TotalWealth:     totalWealth,
		TotalZakatDue:   totalDue,
		NisaabThreshold: prices.NisaabThreshold,
		Records:         filtered,
	})
}

// Trip возвращает сводку расходов поездки по дням.
func (h *StatsHandler) Trip(c echo.Context) error {
	ctx := c.Request().Context()

	budget, _, err := h.Data.TripBudget(ctx)
	if err != nil {
		return serverError(c)
	}

	expenses, err := h.Data.TripExpenses(ctx)
	if err != nil {
		return serverError(c)
	}

	return c.JSON(http.StatusOK, aggregate.SummarizeTrip(budget, expenses))
}
