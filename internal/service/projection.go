package service

import (
	"context"
	"time"

	"github.com/meu-financeiro/core-api/internal/calendar"
	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// ============================================================
// Projection aggregator
//
// Seeds current balances, then layers three future effects up to the
// target date: recurring occurrences, unpaid card statements falling
// due, and open debt installments. Nothing is persisted.
// ============================================================

// ProjectionInput carries every record set the projection reads.
type ProjectionInput struct {
	Accounts    []domain.Account
	Txs         []domain.Transaction
	Recurring   []domain.RecurringTransaction
	Cards       []domain.CreditCard
	CardCharges []domain.CreditCardTransaction
	Debts       []domain.Debt
}

// ProjectBalances computes projected per-account balances at target.
func ProjectBalances(in ProjectionInput, today, target time.Time) (*domain.ProjectionResult, error) {
	balances := AccountBalances(in.Accounts, in.Txs)
	projected := make(map[string]float64, len(balances))
	accountIDByName := make(map[string]string, len(in.Accounts))
	for _, b := range balances {
		projected[b.AccountID] = b.Balance
	}
	for _, acc := range in.Accounts {
		accountIDByName[acc.Name] = acc.ID
	}

	targetEnd := calendar.EndOfDay(target)

	// recurring rules
	for _, rt := range in.Recurring {
		accID, ok := accountIDByName[rt.Account]
		if !ok {
			continue
		}
		effect, err := RecurringEffect(rt, today, targetEnd)
		if err != nil {
			return nil, err
		}
		projected[accID] += effect
	}

	// unpaid statements with a due date inside the window
	for i := range in.Cards {
		card := &in.Cards[i]
		if _, ok := projected[card.AccountID]; !ok {
			continue
		}
		totals, err := dueStatementTotals(card, in.CardCharges, today, targetEnd)
		if err != nil {
			return nil, err
		}
		projected[card.AccountID] -= totals
	}

	// open debt installments falling due
	for _, debt := range in.Debts {
		if _, ok := projected[debt.AccountID]; !ok || debt.NumberOfInstallments <= 0 {
			continue
		}
		first, err := calendar.ParseDay(debt.FirstDueDate)
		if err != nil {
			return nil, &domain.ErrValidation{Field: "first_due_date", Message: err.Error()}
		}
		installment := debt.TotalAmount / float64(debt.NumberOfInstallments)
		for i := debt.PaidInstallments; i < debt.NumberOfInstallments; i++ {
			due := calendar.AddMonths(first, i)
			if due.After(today) && !due.After(targetEnd) {
				projected[debt.AccountID] -= installment
			}
		}
	}

	result := &domain.ProjectionResult{TargetDate: calendar.FormatDay(target)}
	var total float64
	for _, b := range balances {
		p := projected[b.AccountID]
		result.Accounts = append(result.Accounts, domain.AccountBalance{
			AccountID: b.AccountID,
			Name:      b.Name,
			Balance:   b.Balance,
			Projected: p,
		})
		total += p
	}
	result.Total = total
	return result, nil
}

// dueStatementTotals sums the card's unpaid charges of every statement
// whose due date falls in (today, targetEnd]. Months are walked from
// the first of today's month so a statement due later this month still
// counts.
func dueStatementTotals(card *domain.CreditCard, charges []domain.CreditCardTransaction, today, targetEnd time.Time) (float64, error) {
	var unpaid []domain.CreditCardTransaction
	for _, tx := range charges {
		if tx.CardID == card.ID && !tx.Paid {
			unpaid = append(unpaid, tx)
		}
	}
	if len(unpaid) == 0 {
		return 0, nil
	}

	var total float64
	for check := calendar.StartOfMonth(today); !check.After(targetEnd); check = calendar.AddMonths(check, 1) {
		due := calendar.ClampedDate(check.Year(), check.Month(), card.DueDay)
		if !due.After(today) || due.After(targetEnd) {
			continue
		}

		// the statement due this month closed on the closing day,
		// possibly in the previous month
		closingMonth := check
		if card.DueDay < card.ClosingDay {
			closingMonth = calendar.AddMonths(check, -1)
		}
		start, end := StatementBounds(closingMonth.Year(), closingMonth.Month(), card.ClosingDay)

		for _, tx := range unpaid {
			day, err := calendar.ParseDay(tx.Date)
			if err != nil {
				return 0, &domain.ErrValidation{Field: "date", Message: err.Error()}
			}
			if chargeInStatement(day, start, end) {
				total += tx.Amount
			}
		}
	}
	return total, nil
}

// ProjectBalances loads everything the projection needs and resolves
// balances at the target date.
func (s *FinanceService) ProjectBalances(ctx context.Context, targetDate string) (*domain.ProjectionResult, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ProjectBalances")
	defer span.End()
	span.SetAttributes(attribute.String("projection.target", targetDate))

	target, err := calendar.ParseDay(targetDate)
	if err != nil {
		return nil, &domain.ErrValidation{Field: "target", Message: err.Error()}
	}
	today := s.today()
	if target.Before(today) {
		return nil, &domain.ErrValidation{Field: "target", Message: "target date must not be in the past"}
	}

	var in ProjectionInput
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { in.Accounts, err = s.store.ListAccounts(gctx); return })
	g.Go(func() (err error) { in.Txs, err = s.store.ListTransactions(gctx); return })
	g.Go(func() (err error) { in.Recurring, err = s.store.ListRecurring(gctx); return })
	g.Go(func() (err error) { in.Cards, err = s.store.ListCreditCards(gctx); return })
	g.Go(func() (err error) { in.CardCharges, err = s.store.ListCardTransactions(gctx); return })
	g.Go(func() (err error) { in.Debts, err = s.store.ListDebts(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return ProjectBalances(in, today, target)
}
