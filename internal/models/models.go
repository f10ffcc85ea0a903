package models

type CategoryType string

type TrackerType string

type ZakatStatus string

type GoldPurity string

const (
	CategoryTypeExpense CategoryType = "expense"
	CategoryTypeIncome  CategoryType = "income"

	TrackerTypeDeposit    TrackerType = "deposit"
	TrackerTypeWithdrawal TrackerType = "withdrawal"

	ZakatStatusPending ZakatStatus = "Pending"
	ZakatStatusPaid    ZakatStatus = "Paid"
	ZakatStatusOverdue ZakatStatus = "Overdue"

	Purity24K GoldPurity = "24K"
	Purity22K GoldPurity = "22K"
	Purity21K GoldPurity = "21K"
	Purity18K GoldPurity = "18K"
	Purity14K GoldPurity = "14K"
	Purity10K GoldPurity = "10K"
)

type Category struct {
	ID    string       `json:"id"`
	Name  string       `json:"name"`
	Color string       `json:"color"`
	Type  CategoryType `json:"type"`
}

// BudgetItem хранит плановую и фактическую сумму статьи за месяц.
// Actual равен nil, пока фактический расход не внесен.
type BudgetItem struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category string   `json:"category"`
	Forecast float64  `json:"forecast"`
	Actual   *float64 `json:"actual,omitempty"`
	Date     string   `json:"date"`
	IsPaid   bool     `json:"isPaid"`
	Notes    string   `json:"notes,omitempty"`
}

// ExpenseData — устаревший список расходов по категориям, коллекция
// expense-data сохранена для совместимости со старыми данными.
type ExpenseData struct {
	ID       string  `json:"id"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
	Month    string  `json:"month"`
}

type MonthlyIncome struct {
	ID     string  `json:"id"`
	Amount float64 `json:"amount"`
	Month  string  `json:"month"`
	Source string  `json:"source"`
}

type Account struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Balance         float64 `json:"balance"`
	Bank            string  `json:"bank"`
	LastTransaction string  `json:"lastTransaction"`
}

type SavingsAccount struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Type         string  `json:"type"`
	Balance      float64 `json:"balance"`
	Goal         float64 `json:"goal"`
	InterestRate float64 `json:"interestRate"`
	Bank         string  `json:"bank"`
}

// SavingsTracker фиксирует движение по счету. AccountName — снимок имени
// счета на момент записи, а не живая ссылка.
type SavingsTracker struct {
	ID          string      `json:"id"`
	Date        string      `json:"date"`
	Amount      float64     `json:"amount"`
	Type        TrackerType `json:"type"`
	Description string      `json:"description"`
	AccountID   string      `json:"accountId"`
	AccountName string      `json:"accountName"`
}

type ClosedMonth struct {
	ID                 string  `json:"id"`
	Month              string  `json:"month"`
	ClosedDate         string  `json:"closedDate"`
	TotalIncome        float64 `json:"totalIncome"`
	TotalExpenses      float64 `json:"totalExpenses"`
	RemainingMoney     float64 `json:"remainingMoney"`
	SavedToAccountID   string  `json:"savedToAccountId,omitempty"`
	SavedToAccountName string  `json:"savedToAccountName,omitempty"`
}

type GoldInvestment struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Type         string     `json:"type"`
	Weight       float64    `json:"weight"`
	Purity       GoldPurity `json:"purity"`
	PurchaseDate string     `json:"purchaseDate"`
	ImageDataURL string     `json:"imageDataUrl,omitempty"`
}

type ZakatRecord struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Year        string      `json:"year"`
	TotalWealth float64     `json:"totalWealth"`
	ZakatDue    float64     `json:"zakatDue"`
	ZakatPaid   float64     `json:"zakatPaid"`
	PaymentDate string      `json:"paymentDate"`
	Status      ZakatStatus `json:"status"`
}

// GoldPrices — глобальный синглтон: цены за грамм и порог нисаба.
type GoldPrices struct {
	Gold24K                float64 `json:"gold24k"`
	Gold22K                float64 `json:"gold22k"`
	Gold21K                float64 `json:"gold21k"`
	LastYearAccountBalance float64 `json:"lastYearAccountBalance"`
	NisaabThreshold        float64 `json:"nisaabThreshold"`
}

type Asset struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Currency    string  `json:"currency"`
	Amount      float64 `json:"amount"`
	CurrentRate float64 `json:"currentRate"`
	Notes       string  `json:"notes,omitempty"`
	DateAdded   string  `json:"dateAdded"`
}

// TripBudget — синглтон с общим потолком расходов на поездку.
type TripBudget struct {
	ID     string  `json:"id"`
	Budget float64 `json:"budget"`
}

type TripExpense struct {
	ID          string  `json:"id"`
	Day         int     `json:"day"`
	Amount      float64 `json:"amount"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
}
