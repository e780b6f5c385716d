// Package domain defines the core business entities of the Meu Financeiro
// API. These models are independent of storage and transport and are the
// canonical data structures used throughout the service.
package domain

// ============================================================
// Transactions / Accounts
// ============================================================

// Transaction types.
const (
	TypeEntrada = "Entrada"
	TypeSaida   = "Saída"
)

// Reserved categories posted by the engine itself.
const (
	CategoryTransfer         = "Transferência"
	CategoryGoalContribution = "Aporte em Meta"
	CategoryDebtPayment      = "Pagamento de Empréstimo"
	CategoryStatementPayment = "Pagamento de Fatura"
)

// Account is a money account (checking, wallet, investment account).
// Transactions reference accounts by name, not by ID.
type Account struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	InitialBalance float64 `json:"initial_balance"`
}

// Transaction is a single cash movement on an account.
type Transaction struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"` // Entrada | Saída
	Description string  `json:"description"`
	Amount      float64 `json:"amount"` // always positive; Type carries the sign
	Date        string  `json:"date"`   // YYYY-MM-DD
	Account     string  `json:"account"`
	Category    string  `json:"category"`
	CostCenter  string  `json:"cost_center,omitempty"`
	Notes       string  `json:"notes,omitempty"`
	Person      string  `json:"person,omitempty"`
}

// Category classifies transactions. Type restricts it to Entrada or
// Saída; empty means both.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type,omitempty"`
}

// CostCenter groups expenses for reporting.
type CostCenter struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Person is someone card charges can be assigned to for statement
// breakdowns (shared cards, family members).
type Person struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ============================================================
// Credit Cards
// ============================================================

// CreditCard holds the billing-cycle parameters that drive statement
// assignment. ClosingDay and DueDay are days of the month (1-31) and
// are clamped to shorter months.
type CreditCard struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Bank        string  `json:"bank"`
	Brand       string  `json:"brand"`
	Last4Digits string  `json:"last4_digits"`
	Limit       float64 `json:"limit"`
	ClosingDay  int     `json:"closing_day"`
	DueDay      int     `json:"due_day"`
	Color       string  `json:"color,omitempty"`
	AccountID   string  `json:"account_id"` // account debited when the statement is paid
}

// InstallmentInfo marks one charge of an installment plan.
type InstallmentInfo struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

// CreditCardTransaction is a charge on a card. Charges belonging to the
// same installment plan share a GroupID.
type CreditCardTransaction struct {
	ID              string           `json:"id"`
	CardID          string           `json:"card_id"`
	Description     string           `json:"description"`
	Amount          float64          `json:"amount"`
	Date            string           `json:"date"` // YYYY-MM-DD
	PersonID        string           `json:"person_id,omitempty"`
	Category        string           `json:"category"`
	Notes           string           `json:"notes,omitempty"`
	Paid            bool             `json:"paid"`
	GroupID         string           `json:"group_id,omitempty"`
	InstallmentInfo *InstallmentInfo `json:"installment_info,omitempty"`
}

// ============================================================
// Recurrence / Patrimônio
// ============================================================

// Recurring frequencies.
const (
	FrequencyMensal = "Mensal"
	FrequencyAnual  = "Anual"
)

// RecurringTransaction is a rule that materializes dated transactions.
// NextDueDate is the cursor: everything at or before today is pending.
type RecurringTransaction struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
	Account     string  `json:"account"`
	Category    string  `json:"category"`
	Frequency   string  `json:"frequency"` // Mensal | Anual
	DayOfMonth  int     `json:"day_of_month"`
	StartDate   string  `json:"start_date"`
	NextDueDate string  `json:"next_due_date"`
}

// Investment is a patrimônio position valued at CurrentValue.
type Investment struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Type            string  `json:"type"`
	Quantity        float64 `json:"quantity"`
	UnitPrice       float64 `json:"unit_price"`
	CurrentValue    float64 `json:"current_value"`
	AcquisitionDate string  `json:"acquisition_date"`
}

// Debt is a fixed-installment loan. TotalAmount already includes
// interest; each installment is TotalAmount / NumberOfInstallments.
type Debt struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	TotalAmount          float64 `json:"total_amount"`
	NumberOfInstallments int     `json:"number_of_installments"`
	PaidInstallments     int     `json:"paid_installments"`
	FirstDueDate         string  `json:"first_due_date"` // YYYY-MM-DD
	AccountID            string  `json:"account_id"`     // account debited on payment
}

// Goal is a savings target funded by contributions.
type Goal struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	TargetAmount  float64 `json:"target_amount"`
	CurrentAmount float64 `json:"current_amount"`
}
