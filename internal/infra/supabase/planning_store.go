package supabase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Recurring rules
// ============================================================

func (s *Store) ListRecurring(ctx context.Context) ([]domain.RecurringTransaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListRecurring")
	defer span.End()

	return selectRows[domain.RecurringTransaction](ctx, s.Client, "supabase/recurring",
		"recurring_transactions?order=next_due_date.asc")
}

func (s *Store) GetRecurring(ctx context.Context, recurringID string) (*domain.RecurringTransaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetRecurring")
	defer span.End()
	span.SetAttributes(attribute.String("recurring.id", recurringID))

	path := fmt.Sprintf("recurring_transactions?id=eq.%s&limit=1", url.QueryEscape(recurringID))
	return selectOne[domain.RecurringTransaction](ctx, s.Client, "supabase/recurring", "recurring rule", recurringID, path)
}

func (s *Store) CreateRecurring(ctx context.Context, rt *domain.RecurringTransaction) (*domain.RecurringTransaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateRecurring")
	defer span.End()

	rt.ID = newRowID(rt.ID)
	return insertOne(ctx, s.Client, "supabase/recurring", "recurring_transactions", rt)
}

func (s *Store) UpdateRecurring(ctx context.Context, rt *domain.RecurringTransaction) (*domain.RecurringTransaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateRecurring")
	defer span.End()

	patch, err := rowPatch(rt)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("recurring_transactions?id=eq.%s", url.QueryEscape(rt.ID))
	if err := s.patchRows(ctx, "supabase/recurring", path, patch); err != nil {
		return nil, err
	}
	return rt, nil
}

func (s *Store) DeleteRecurring(ctx context.Context, recurringID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteRecurring")
	defer span.End()

	path := fmt.Sprintf("recurring_transactions?id=eq.%s", url.QueryEscape(recurringID))
	return s.deleteRows(ctx, "supabase/recurring", path)
}

// ============================================================
// Debts
// ============================================================

func (s *Store) ListDebts(ctx context.Context) ([]domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListDebts")
	defer span.End()

	return selectRows[domain.Debt](ctx, s.Client, "supabase/debts", "debts?order=first_due_date.asc")
}

func (s *Store) GetDebt(ctx context.Context, debtID string) (*domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetDebt")
	defer span.End()
	span.SetAttributes(attribute.String("debt.id", debtID))

	path := fmt.Sprintf("debts?id=eq.%s&limit=1", url.QueryEscape(debtID))
	return selectOne[domain.Debt](ctx, s.Client, "supabase/debts", "debt", debtID, path)
}

func (s *Store) CreateDebt(ctx context.Context, d *domain.Debt) (*domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateDebt")
	defer span.End()

	d.ID = newRowID(d.ID)
	return insertOne(ctx, s.Client, "supabase/debts", "debts", d)
}

func (s *Store) UpdateDebt(ctx context.Context, d *domain.Debt) (*domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateDebt")
	defer span.End()

	patch, err := rowPatch(d)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("debts?id=eq.%s", url.QueryEscape(d.ID))
	if err := s.patchRows(ctx, "supabase/debts", path, patch); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) DeleteDebt(ctx context.Context, debtID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteDebt")
	defer span.End()

	path := fmt.Sprintf("debts?id=eq.%s", url.QueryEscape(debtID))
	return s.deleteRows(ctx, "supabase/debts", path)
}

// ============================================================
// Goals
// ============================================================

func (s *Store) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListGoals")
	defer span.End()

	return selectRows[domain.Goal](ctx, s.Client, "supabase/goals", "goals?order=name.asc")
}

func (s *Store) GetGoal(ctx context.Context, goalID string) (*domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetGoal")
	defer span.End()
	span.SetAttributes(attribute.String("goal.id", goalID))

	path := fmt.Sprintf("goals?id=eq.%s&limit=1", url.QueryEscape(goalID))
	return selectOne[domain.Goal](ctx, s.Client, "supabase/goals", "goal", goalID, path)
}

func (s *Store) CreateGoal(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateGoal")
	defer span.End()

	g.ID = newRowID(g.ID)
	return insertOne(ctx, s.Client, "supabase/goals", "goals", g)
}

func (s *Store) UpdateGoal(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateGoal")
	defer span.End()

	patch, err := rowPatch(g)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("goals?id=eq.%s", url.QueryEscape(g.ID))
	if err := s.patchRows(ctx, "supabase/goals", path, patch); err != nil {
		return nil, err
	}
	return g, nil
}

func (s *Store) DeleteGoal(ctx context.Context, goalID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteGoal")
	defer span.End()

	path := fmt.Sprintf("goals?id=eq.%s", url.QueryEscape(goalID))
	return s.deleteRows(ctx, "supabase/goals", path)
}

// ============================================================
// Investments
// ============================================================

func (s *Store) ListInvestments(ctx context.Context) ([]domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListInvestments")
	defer span.End()

	return selectRows[domain.Investment](ctx, s.Client, "supabase/investments", "investments?order=name.asc")
}

func (s *Store) GetInvestment(ctx context.Context, investmentID string) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetInvestment")
	defer span.End()
	span.SetAttributes(attribute.String("investment.id", investmentID))

	path := fmt.Sprintf("investments?id=eq.%s&limit=1", url.QueryEscape(investmentID))
	return selectOne[domain.Investment](ctx, s.Client, "supabase/investments", "investment", investmentID, path)
}

func (s *Store) CreateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateInvestment")
	defer span.End()

	inv.ID = newRowID(inv.ID)
	return insertOne(ctx, s.Client, "supabase/investments", "investments", inv)
}

func (s *Store) UpdateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateInvestment")
	defer span.End()

	patch, err := rowPatch(inv)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("investments?id=eq.%s", url.QueryEscape(inv.ID))
	if err := s.patchRows(ctx, "supabase/investments", path, patch); err != nil {
		return nil, err
	}
	return inv, nil
}

func (s *Store) DeleteInvestment(ctx context.Context, investmentID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteInvestment")
	defer span.End()

	path := fmt.Sprintf("investments?id=eq.%s", url.QueryEscape(investmentID))
	return s.deleteRows(ctx, "supabase/investments", path)
}
