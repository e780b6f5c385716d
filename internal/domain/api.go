package domain

// ============================================================
// API request / response payloads
// ============================================================

// CardChargeRequest creates one or more card charges. With
// Installments > 1 the amount (or TotalWithInterest, when financing
// adds cost) is divided into monthly charges sharing a group id.
// SplitWith divides the total among the named people before
// installment division; unknown names are created as new people.
type CardChargeRequest struct {
	CardID            string   `json:"card_id"`
	Description       string   `json:"description"`
	Amount            float64  `json:"amount"`
	TotalWithInterest float64  `json:"total_with_interest,omitempty"`
	Date              string   `json:"date"`
	Category          string   `json:"category"`
	Notes             string   `json:"notes,omitempty"`
	PersonID          string   `json:"person_id,omitempty"`
	Installments      int      `json:"installments,omitempty"`
	SplitWith         []string `json:"split_with,omitempty"`
}

// TransferRequest moves money between two accounts.
type TransferRequest struct {
	FromAccountID string  `json:"from_account_id"`
	ToAccountID   string  `json:"to_account_id"`
	Amount        float64 `json:"amount"`
	Date          string  `json:"date"`
}

// GoalContributionRequest funds a goal from an account.
type GoalContributionRequest struct {
	AccountID string  `json:"account_id"`
	Amount    float64 `json:"amount"`
	Date      string  `json:"date"`
}

// DebtPaymentRequest pays the next open installment. AccountID
// overrides the debt's default debit account when set.
type DebtPaymentRequest struct {
	AccountID string `json:"account_id,omitempty"`
	Date      string `json:"date,omitempty"`
}

// PersonShare is one person's slice of a statement total. Charges with
// no assigned person fall into the card owner's share (empty PersonID).
type PersonShare struct {
	PersonID   string  `json:"person_id,omitempty"`
	PersonName string  `json:"person_name"`
	Total      float64 `json:"total"`
}

// Statement is the resolved view of one card's billing month.
type Statement struct {
	CardID      string                  `json:"card_id"`
	Month       string                  `json:"month"` // YYYY-MM
	PeriodStart string                  `json:"period_start"`
	PeriodEnd   string                  `json:"period_end"`
	ClosingDate string                  `json:"closing_date"`
	DueDate     string                  `json:"due_date"`
	Total       float64                 `json:"total"`
	Paid        bool                    `json:"paid"`
	Items       []CreditCardTransaction `json:"items"`
	ByPerson    []PersonShare           `json:"by_person"`
}

// CardLimitStatus reports how much of a card's limit is committed.
// Used counts every unpaid charge regardless of statement month.
type CardLimitStatus struct {
	CardID    string  `json:"card_id"`
	Limit     float64 `json:"limit"`
	Used      float64 `json:"used"`
	Available float64 `json:"available"`
}

// AccountBalance pairs an account with its computed balance and,
// when a projection target was given, the projected balance.
type AccountBalance struct {
	AccountID string  `json:"account_id"`
	Name      string  `json:"name"`
	Balance   float64 `json:"balance"`
	Projected float64 `json:"projected,omitempty"`
}

// ProjectionResult is the full projection response.
type ProjectionResult struct {
	TargetDate string           `json:"target_date"`
	Accounts   []AccountBalance `json:"accounts"`
	Total      float64          `json:"total"`
}

// CategoryTotal is one slice of the expense breakdown.
type CategoryTotal struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
}

// DashboardSummary aggregates one calendar month.
type DashboardSummary struct {
	Month           string          `json:"month"` // YYYY-MM
	Income          float64         `json:"income"`
	Expenses        float64         `json:"expenses"`
	CardExpenses    float64         `json:"card_expenses"`
	PreviousBalance float64         `json:"previous_balance"`
	FinalBalance    float64         `json:"final_balance"`
	ByCategory      []CategoryTotal `json:"by_category"`
	Months          []string        `json:"months"` // available months, newest first
}

// NetWorth is the patrimônio summary.
type NetWorth struct {
	TotalInvestments float64 `json:"total_investments"`
	TotalDebts       float64 `json:"total_debts"`
	NetWorth         float64 `json:"net_worth"`
}
