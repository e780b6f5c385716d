package service

import (
	"context"
	"sort"
	"time"

	"github.com/meu-financeiro/core-api/internal/calendar"
	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// ============================================================
// Dashboard / Patrimônio
// ============================================================

// MonthlySummary aggregates one calendar month of activity: income,
// expenses (cash and card), the carry from every earlier month, and
// the expense breakdown by category.
func MonthlySummary(accounts []domain.Account, txs []domain.Transaction, charges []domain.CreditCardTransaction, year int, month time.Month) (*domain.DashboardSummary, error) {
	monthStart := calendar.ClampedDate(year, month, 1)
	nextMonth := calendar.AddMonths(monthStart, 1)
	key := calendar.MonthKey(monthStart)

	var previous float64
	for _, acc := range accounts {
		previous += acc.InitialBalance
	}

	var (
		income, expenses float64
		byCategory       = map[string]float64{}
		monthSet         = map[string]bool{}
	)
	for _, t := range txs {
		day, err := calendar.ParseDay(t.Date)
		if err != nil {
			return nil, &domain.ErrValidation{Field: "date", Message: err.Error()}
		}
		monthSet[calendar.MonthKey(day)] = true

		signed := t.Amount
		if t.Type == domain.TypeSaida {
			signed = -t.Amount
		}
		switch {
		case day.Before(monthStart):
			previous += signed
		case day.Before(nextMonth):
			if t.Type == domain.TypeEntrada {
				income += t.Amount
			} else {
				expenses += t.Amount
				byCategory[t.Category] += t.Amount
			}
		}
	}

	var cardExpenses float64
	for _, tx := range charges {
		day, err := calendar.ParseDay(tx.Date)
		if err != nil {
			return nil, &domain.ErrValidation{Field: "date", Message: err.Error()}
		}
		if !day.Before(monthStart) && day.Before(nextMonth) {
			cardExpenses += tx.Amount
			byCategory[tx.Category] += tx.Amount
		}
	}

	categories := make([]domain.CategoryTotal, 0, len(byCategory))
	for cat, total := range byCategory {
		categories = append(categories, domain.CategoryTotal{Category: cat, Total: total})
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Total > categories[j].Total })

	months := make([]string, 0, len(monthSet))
	for k := range monthSet {
		months = append(months, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))

	return &domain.DashboardSummary{
		Month:           key,
		Income:          income,
		Expenses:        expenses,
		CardExpenses:    cardExpenses,
		PreviousBalance: previous,
		FinalBalance:    previous + income - expenses,
		ByCategory:      categories,
		Months:          months,
	}, nil
}

// ComputeNetWorth values the patrimônio: investments at current value
// minus the remaining (unpaid) installments of every debt.
func ComputeNetWorth(investments []domain.Investment, debts []domain.Debt) domain.NetWorth {
	var totalInvestments, totalDebts float64
	for _, inv := range investments {
		totalInvestments += inv.CurrentValue
	}
	for _, d := range debts {
		if d.NumberOfInstallments <= 0 {
			continue
		}
		remaining := d.NumberOfInstallments - d.PaidInstallments
		totalDebts += d.TotalAmount / float64(d.NumberOfInstallments) * float64(remaining)
	}
	return domain.NetWorth{
		TotalInvestments: totalInvestments,
		TotalDebts:       totalDebts,
		NetWorth:         totalInvestments - totalDebts,
	}
}

// GetDashboard resolves the summary for a YYYY-MM month key; an empty
// key means the current month.
func (s *FinanceService) GetDashboard(ctx context.Context, monthKey string) (*domain.DashboardSummary, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetDashboard")
	defer span.End()

	if monthKey == "" {
		monthKey = calendar.MonthKey(s.today())
	}
	span.SetAttributes(attribute.String("dashboard.month", monthKey))

	year, month, err := calendar.ParseMonthKey(monthKey)
	if err != nil {
		return nil, &domain.ErrValidation{Field: "month", Message: err.Error()}
	}

	var (
		accounts []domain.Account
		txs      []domain.Transaction
		charges  []domain.CreditCardTransaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { accounts, err = s.store.ListAccounts(gctx); return })
	g.Go(func() (err error) { txs, err = s.store.ListTransactions(gctx); return })
	g.Go(func() (err error) { charges, err = s.store.ListCardTransactions(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return MonthlySummary(accounts, txs, charges, year, month)
}

// GetNetWorth resolves the patrimônio summary.
func (s *FinanceService) GetNetWorth(ctx context.Context) (*domain.NetWorth, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetNetWorth")
	defer span.End()

	var (
		investments []domain.Investment
		debts       []domain.Debt
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) { investments, err = s.store.ListInvestments(gctx); return })
	g.Go(func() (err error) { debts, err = s.store.ListDebts(gctx); return })
	if err := g.Wait(); err != nil {
		return nil, err
	}

	nw := ComputeNetWorth(investments, debts)
	return &nw, nil
}
