// Package port defines the interfaces (ports) for external dependencies.
// Following hexagonal architecture, these ports decouple the domain/service
// layer from concrete implementations.
package port

import (
	"context"

	"github.com/meu-financeiro/core-api/internal/domain"
)

// Cache provides generic caching with TTL.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
}

// FinanceStore defines all data operations for the finance tracker.
// Implemented by the Supabase adapter and the in-memory store.
type FinanceStore interface {
	// Accounts
	ListAccounts(ctx context.Context) ([]domain.Account, error)
	GetAccount(ctx context.Context, accountID string) (*domain.Account, error)
	CreateAccount(ctx context.Context, acc *domain.Account) (*domain.Account, error)
	UpdateAccount(ctx context.Context, acc *domain.Account) (*domain.Account, error)
	DeleteAccount(ctx context.Context, accountID string) error

	// Transactions
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, txID string) (*domain.Transaction, error)
	CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, txID string) error
	// RenameAccountReferences rewrites the account name on every
	// transaction and recurring rule that references oldName.
	RenameAccountReferences(ctx context.Context, oldName, newName string) error

	// Categories / Cost centers
	ListCategories(ctx context.Context) ([]domain.Category, error)
	CreateCategory(ctx context.Context, cat *domain.Category) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) error
	ListCostCenters(ctx context.Context) ([]domain.CostCenter, error)
	CreateCostCenter(ctx context.Context, cc *domain.CostCenter) (*domain.CostCenter, error)
	DeleteCostCenter(ctx context.Context, costCenterID string) error

	// People
	ListPeople(ctx context.Context) ([]domain.Person, error)
	GetPerson(ctx context.Context, personID string) (*domain.Person, error)
	CreatePerson(ctx context.Context, p *domain.Person) (*domain.Person, error)
	DeletePerson(ctx context.Context, personID string) error

	// Credit cards
	ListCreditCards(ctx context.Context) ([]domain.CreditCard, error)
	GetCreditCard(ctx context.Context, cardID string) (*domain.CreditCard, error)
	CreateCreditCard(ctx context.Context, card *domain.CreditCard) (*domain.CreditCard, error)
	UpdateCreditCard(ctx context.Context, card *domain.CreditCard) (*domain.CreditCard, error)
	DeleteCreditCard(ctx context.Context, cardID string) error

	// Credit card transactions
	ListCardTransactions(ctx context.Context) ([]domain.CreditCardTransaction, error)
	ListCardTransactionsByCard(ctx context.Context, cardID string) ([]domain.CreditCardTransaction, error)
	GetCardTransaction(ctx context.Context, txID string) (*domain.CreditCardTransaction, error)
	CreateCardTransaction(ctx context.Context, tx *domain.CreditCardTransaction) (*domain.CreditCardTransaction, error)
	UpdateCardTransaction(ctx context.Context, tx *domain.CreditCardTransaction) (*domain.CreditCardTransaction, error)
	DeleteCardTransaction(ctx context.Context, txID string) error
	DeleteCardTransactionsByCard(ctx context.Context, cardID string) error
	MarkCardTransactionsPaid(ctx context.Context, txIDs []string) error
	ClearPersonFromCharges(ctx context.Context, personID string) error

	// Recurring rules
	ListRecurring(ctx context.Context) ([]domain.RecurringTransaction, error)
	GetRecurring(ctx context.Context, recurringID string) (*domain.RecurringTransaction, error)
	CreateRecurring(ctx context.Context, rt *domain.RecurringTransaction) (*domain.RecurringTransaction, error)
	UpdateRecurring(ctx context.Context, rt *domain.RecurringTransaction) (*domain.RecurringTransaction, error)
	DeleteRecurring(ctx context.Context, recurringID string) error

	// Debts
	ListDebts(ctx context.Context) ([]domain.Debt, error)
	GetDebt(ctx context.Context, debtID string) (*domain.Debt, error)
	CreateDebt(ctx context.Context, d *domain.Debt) (*domain.Debt, error)
	UpdateDebt(ctx context.Context, d *domain.Debt) (*domain.Debt, error)
	DeleteDebt(ctx context.Context, debtID string) error

	// Goals
	ListGoals(ctx context.Context) ([]domain.Goal, error)
	GetGoal(ctx context.Context, goalID string) (*domain.Goal, error)
	CreateGoal(ctx context.Context, g *domain.Goal) (*domain.Goal, error)
	UpdateGoal(ctx context.Context, g *domain.Goal) (*domain.Goal, error)
	DeleteGoal(ctx context.Context, goalID string) error

	// Investments
	ListInvestments(ctx context.Context) ([]domain.Investment, error)
	GetInvestment(ctx context.Context, investmentID string) (*domain.Investment, error)
	CreateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error)
	UpdateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error)
	DeleteInvestment(ctx context.Context, investmentID string) error
}
