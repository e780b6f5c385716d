// Package memory provides an in-memory FinanceStore. It backs local
// development (USE_SUPABASE=false) and the test suites; all data lives
// for the lifetime of the process.
package memory

import (
	"context"
	"sync"

	"github.com/meu-financeiro/core-api/internal/domain"
	"github.com/meu-financeiro/core-api/internal/port"

	"github.com/google/uuid"
)

var _ port.FinanceStore = (*Store)(nil)

// Store is a process-local FinanceStore guarded by a single RWMutex.
type Store struct {
	mu sync.RWMutex

	accounts    map[string]domain.Account
	txs         map[string]domain.Transaction
	categories  map[string]domain.Category
	costCenters map[string]domain.CostCenter
	people      map[string]domain.Person
	cards       map[string]domain.CreditCard
	charges     map[string]domain.CreditCardTransaction
	recurring   map[string]domain.RecurringTransaction
	debts       map[string]domain.Debt
	goals       map[string]domain.Goal
	investments map[string]domain.Investment
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts:    map[string]domain.Account{},
		txs:         map[string]domain.Transaction{},
		categories:  map[string]domain.Category{},
		costCenters: map[string]domain.CostCenter{},
		people:      map[string]domain.Person{},
		cards:       map[string]domain.CreditCard{},
		charges:     map[string]domain.CreditCardTransaction{},
		recurring:   map[string]domain.RecurringTransaction{},
		debts:       map[string]domain.Debt{},
		goals:       map[string]domain.Goal{},
		investments: map[string]domain.Investment{},
	}
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}

// ============================================================
// Accounts
// ============================================================

func (s *Store) ListAccounts(_ context.Context) ([]domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	return out, nil
}

func (s *Store) GetAccount(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[accountID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "account", ID: accountID}
	}
	return &a, nil
}

func (s *Store) CreateAccount(_ context.Context, acc *domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := *acc
	a.ID = newID(a.ID)
	s.accounts[a.ID] = a
	return &a, nil
}

func (s *Store) UpdateAccount(_ context.Context, acc *domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[acc.ID]; !ok {
		return nil, &domain.ErrNotFound{Resource: "account", ID: acc.ID}
	}
	s.accounts[acc.ID] = *acc
	a := *acc
	return &a, nil
}

func (s *Store) DeleteAccount(_ context.Context, accountID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.accounts[accountID]; !ok {
		return &domain.ErrNotFound{Resource: "account", ID: accountID}
	}
	delete(s.accounts, accountID)
	return nil
}

// ============================================================
// Transactions
// ============================================================

func (s *Store) ListTransactions(_ context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Transaction, 0, len(s.txs))
	for _, t := range s.txs {
		out = append(out, t)
	}
	return out, nil
}

func (s *Store) GetTransaction(_ context.Context, txID string) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.txs[txID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: txID}
	}
	return &t, nil
}

func (s *Store) CreateTransaction(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := *tx
	t.ID = newID(t.ID)
	s.txs[t.ID] = t
	return &t, nil
}

func (s *Store) UpdateTransaction(_ context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txs[tx.ID]; !ok {
		return nil, &domain.ErrNotFound{Resource: "transaction", ID: tx.ID}
	}
	s.txs[tx.ID] = *tx
	t := *tx
	return &t, nil
}

func (s *Store) DeleteTransaction(_ context.Context, txID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txs[txID]; !ok {
		return &domain.ErrNotFound{Resource: "transaction", ID: txID}
	}
	delete(s.txs, txID)
	return nil
}

func (s *Store) RenameAccountReferences(_ context.Context, oldName, newName string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.txs {
		if t.Account == oldName {
			t.Account = newName
			s.txs[id] = t
		}
	}
	for id, rt := range s.recurring {
		if rt.Account == oldName {
			rt.Account = newName
			s.recurring[id] = rt
		}
	}
	return nil
}

// ============================================================
// Categories / Cost centers
// ============================================================

func (s *Store) ListCategories(_ context.Context) ([]domain.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Category, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) CreateCategory(_ context.Context, cat *domain.Category) (*domain.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *cat
	c.ID = newID(c.ID)
	s.categories[c.ID] = c
	return &c, nil
}

func (s *Store) DeleteCategory(_ context.Context, categoryID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[categoryID]; !ok {
		return &domain.ErrNotFound{Resource: "category", ID: categoryID}
	}
	delete(s.categories, categoryID)
	return nil
}

func (s *Store) ListCostCenters(_ context.Context) ([]domain.CostCenter, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CostCenter, 0, len(s.costCenters))
	for _, c := range s.costCenters {
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) CreateCostCenter(_ context.Context, cc *domain.CostCenter) (*domain.CostCenter, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *cc
	c.ID = newID(c.ID)
	s.costCenters[c.ID] = c
	return &c, nil
}

func (s *Store) DeleteCostCenter(_ context.Context, costCenterID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.costCenters[costCenterID]; !ok {
		return &domain.ErrNotFound{Resource: "cost_center", ID: costCenterID}
	}
	delete(s.costCenters, costCenterID)
	return nil
}

// ============================================================
// People
// ============================================================

func (s *Store) ListPeople(_ context.Context) ([]domain.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Person, 0, len(s.people))
	for _, p := range s.people {
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) GetPerson(_ context.Context, personID string) (*domain.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.people[personID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "person", ID: personID}
	}
	return &p, nil
}

func (s *Store) CreatePerson(_ context.Context, p *domain.Person) (*domain.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	cp.ID = newID(cp.ID)
	s.people[cp.ID] = cp
	return &cp, nil
}

func (s *Store) DeletePerson(_ context.Context, personID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.people[personID]; !ok {
		return &domain.ErrNotFound{Resource: "person", ID: personID}
	}
	delete(s.people, personID)
	return nil
}

// ============================================================
// Credit cards
// ============================================================

func (s *Store) ListCreditCards(_ context.Context) ([]domain.CreditCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CreditCard, 0, len(s.cards))
	for _, c := range s.cards {
		out = append(out, c)
	}
	return out, nil
}

func (s *Store) GetCreditCard(_ context.Context, cardID string) (*domain.CreditCard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.cards[cardID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "credit_card", ID: cardID}
	}
	return &c, nil
}

func (s *Store) CreateCreditCard(_ context.Context, card *domain.CreditCard) (*domain.CreditCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *card
	c.ID = newID(c.ID)
	s.cards[c.ID] = c
	return &c, nil
}

func (s *Store) UpdateCreditCard(_ context.Context, card *domain.CreditCard) (*domain.CreditCard, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[card.ID]; !ok {
		return nil, &domain.ErrNotFound{Resource: "credit_card", ID: card.ID}
	}
	s.cards[card.ID] = *card
	c := *card
	return &c, nil
}

func (s *Store) DeleteCreditCard(_ context.Context, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cards[cardID]; !ok {
		return &domain.ErrNotFound{Resource: "credit_card", ID: cardID}
	}
	delete(s.cards, cardID)
	return nil
}

// ============================================================
// Credit card transactions
// ============================================================

func (s *Store) ListCardTransactions(_ context.Context) ([]domain.CreditCardTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.CreditCardTransaction, 0, len(s.charges))
	for _, t := range s.charges {
		out = append(out, copyCharge(t))
	}
	return out, nil
}

func (s *Store) ListCardTransactionsByCard(_ context.Context, cardID string) ([]domain.CreditCardTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.CreditCardTransaction
	for _, t := range s.charges {
		if t.CardID == cardID {
			out = append(out, copyCharge(t))
		}
	}
	return out, nil
}

func (s *Store) GetCardTransaction(_ context.Context, txID string) (*domain.CreditCardTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.charges[txID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "credit_card_transaction", ID: txID}
	}
	result := copyCharge(t)
	return &result, nil
}

func (s *Store) CreateCardTransaction(_ context.Context, tx *domain.CreditCardTransaction) (*domain.CreditCardTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := copyCharge(*tx)
	t.ID = newID(t.ID)
	s.charges[t.ID] = t
	result := copyCharge(t)
	return &result, nil
}

func (s *Store) UpdateCardTransaction(_ context.Context, tx *domain.CreditCardTransaction) (*domain.CreditCardTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charges[tx.ID]; !ok {
		return nil, &domain.ErrNotFound{Resource: "credit_card_transaction", ID: tx.ID}
	}
	t := copyCharge(*tx)
	s.charges[t.ID] = t
	result := copyCharge(t)
	return &result, nil
}

func (s *Store) DeleteCardTransaction(_ context.Context, txID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.charges[txID]; !ok {
		return &domain.ErrNotFound{Resource: "credit_card_transaction", ID: txID}
	}
	delete(s.charges, txID)
	return nil
}

func (s *Store) DeleteCardTransactionsByCard(_ context.Context, cardID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.charges {
		if t.CardID == cardID {
			delete(s.charges, id)
		}
	}
	return nil
}

func (s *Store) MarkCardTransactionsPaid(_ context.Context, txIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range txIDs {
		t, ok := s.charges[id]
		if !ok {
			return &domain.ErrNotFound{Resource: "credit_card_transaction", ID: id}
		}
		t.Paid = true
		s.charges[id] = t
	}
	return nil
}

func (s *Store) ClearPersonFromCharges(_ context.Context, personID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, t := range s.charges {
		if t.PersonID == personID {
			t.PersonID = ""
			s.charges[id] = t
		}
	}
	return nil
}

// copyCharge deep-copies the optional installment info so callers can
// never alias the stored record.
func copyCharge(t domain.CreditCardTransaction) domain.CreditCardTransaction {
	if t.InstallmentInfo != nil {
		info := *t.InstallmentInfo
		t.InstallmentInfo = &info
	}
	return t
}

// ============================================================
// Recurring rules
// ============================================================

func (s *Store) ListRecurring(_ context.Context) ([]domain.RecurringTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.RecurringTransaction, 0, len(s.recurring))
	for _, rt := range s.recurring {
		out = append(out, rt)
	}
	return out, nil
}

func (s *Store) GetRecurring(_ context.Context, recurringID string) (*domain.RecurringTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rt, ok := s.recurring[recurringID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "recurring_transaction", ID: recurringID}
	}
	return &rt, nil
}

func (s *Store) CreateRecurring(_ context.Context, rt *domain.RecurringTransaction) (*domain.RecurringTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := *rt
	r.ID = newID(r.ID)
	s.recurring[r.ID] = r
	return &r, nil
}

func (s *Store) UpdateRecurring(_ context.Context, rt *domain.RecurringTransaction) (*domain.RecurringTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recurring[rt.ID]; !ok {
		return nil, &domain.ErrNotFound{Resource: "recurring_transaction", ID: rt.ID}
	}
	s.recurring[rt.ID] = *rt
	r := *rt
	return &r, nil
}

func (s *Store) DeleteRecurring(_ context.Context, recurringID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recurring[recurringID]; !ok {
		return &domain.ErrNotFound{Resource: "recurring_transaction", ID: recurringID}
	}
	delete(s.recurring, recurringID)
	return nil
}

// ============================================================
// Debts
// ============================================================

func (s *Store) ListDebts(_ context.Context) ([]domain.Debt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Debt, 0, len(s.debts))
	for _, d := range s.debts {
		out = append(out, d)
	}
	return out, nil
}

func (s *Store) GetDebt(_ context.Context, debtID string) (*domain.Debt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.debts[debtID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "debt", ID: debtID}
	}
	return &d, nil
}

func (s *Store) CreateDebt(_ context.Context, d *domain.Debt) (*domain.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *d
	cp.ID = newID(cp.ID)
	s.debts[cp.ID] = cp
	return &cp, nil
}

func (s *Store) UpdateDebt(_ context.Context, d *domain.Debt) (*domain.Debt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.debts[d.ID]; !ok {
		return nil, &domain.ErrNotFound{Resource: "debt", ID: d.ID}
	}
	s.debts[d.ID] = *d
	cp := *d
	return &cp, nil
}

func (s *Store) DeleteDebt(_ context.Context, debtID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.debts[debtID]; !ok {
		return &domain.ErrNotFound{Resource: "debt", ID: debtID}
	}
	delete(s.debts, debtID)
	return nil
}

// ============================================================
// Goals
// ============================================================

func (s *Store) ListGoals(_ context.Context) ([]domain.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Goal, 0, len(s.goals))
	for _, g := range s.goals {
		out = append(out, g)
	}
	return out, nil
}

func (s *Store) GetGoal(_ context.Context, goalID string) (*domain.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[goalID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "goal", ID: goalID}
	}
	return &g, nil
}

func (s *Store) CreateGoal(_ context.Context, g *domain.Goal) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *g
	cp.ID = newID(cp.ID)
	s.goals[cp.ID] = cp
	return &cp, nil
}

func (s *Store) UpdateGoal(_ context.Context, g *domain.Goal) (*domain.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[g.ID]; !ok {
		return nil, &domain.ErrNotFound{Resource: "goal", ID: g.ID}
	}
	s.goals[g.ID] = *g
	cp := *g
	return &cp, nil
}

func (s *Store) DeleteGoal(_ context.Context, goalID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.goals[goalID]; !ok {
		return &domain.ErrNotFound{Resource: "goal", ID: goalID}
	}
	delete(s.goals, goalID)
	return nil
}

// ============================================================
// Investments
// ============================================================

func (s *Store) ListInvestments(_ context.Context) ([]domain.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Investment, 0, len(s.investments))
	for _, inv := range s.investments {
		out = append(out, inv)
	}
	return out, nil
}

func (s *Store) GetInvestment(_ context.Context, investmentID string) (*domain.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.investments[investmentID]
	if !ok {
		return nil, &domain.ErrNotFound{Resource: "investment", ID: investmentID}
	}
	return &inv, nil
}

func (s *Store) CreateInvestment(_ context.Context, inv *domain.Investment) (*domain.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *inv
	cp.ID = newID(cp.ID)
	s.investments[cp.ID] = cp
	return &cp, nil
}

func (s *Store) UpdateInvestment(_ context.Context, inv *domain.Investment) (*domain.Investment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.investments[inv.ID]; !ok {
		return nil, &domain.ErrNotFound{Resource: "investment", ID: inv.ID}
	}
	s.investments[inv.ID] = *inv
	cp := *inv
	return &cp, nil
}

func (s *Store) DeleteInvestment(_ context.Context, investmentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.investments[investmentID]; !ok {
		return &domain.ErrNotFound{Resource: "investment", ID: investmentID}
	}
	delete(s.investments, investmentID)
	return nil
}
