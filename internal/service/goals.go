package service

import (
	"context"

	"github.com/meu-financeiro/core-api/internal/calendar"
	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Goals
// ============================================================

func (s *FinanceService) ListGoals(ctx context.Context) ([]domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListGoals")
	defer span.End()

	return s.store.ListGoals(ctx)
}

func (s *FinanceService) CreateGoal(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateGoal")
	defer span.End()

	if g.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if g.TargetAmount <= 0 {
		return nil, &domain.ErrValidation{Field: "target_amount", Message: "target amount must be positive"}
	}
	return s.store.CreateGoal(ctx, g)
}

func (s *FinanceService) UpdateGoal(ctx context.Context, g *domain.Goal) (*domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateGoal")
	defer span.End()

	if g.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if _, err := s.store.GetGoal(ctx, g.ID); err != nil {
		return nil, err
	}
	return s.store.UpdateGoal(ctx, g)
}

func (s *FinanceService) DeleteGoal(ctx context.Context, goalID string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteGoal")
	defer span.End()

	if _, err := s.store.GetGoal(ctx, goalID); err != nil {
		return err
	}
	return s.store.DeleteGoal(ctx, goalID)
}

// ContributeToGoal increments the goal's saved amount and posts the
// matching Saída on the funding account.
func (s *FinanceService) ContributeToGoal(ctx context.Context, goalID string, req *domain.GoalContributionRequest) (*domain.Goal, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ContributeToGoal")
	defer span.End()
	span.SetAttributes(attribute.String("goal.id", goalID))

	if req.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}

	goal, err := s.store.GetGoal(ctx, goalID)
	if err != nil {
		return nil, err
	}
	account, err := s.store.GetAccount(ctx, req.AccountID)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if date == "" {
		date = calendar.FormatDay(s.today())
	} else if _, err := calendar.ParseDay(date); err != nil {
		return nil, &domain.ErrValidation{Field: "date", Message: err.Error()}
	}

	goal.CurrentAmount += req.Amount
	updated, err := s.store.UpdateGoal(ctx, goal)
	if err != nil {
		return nil, err
	}

	contribution := &domain.Transaction{
		Type:        domain.TypeSaida,
		Description: "Aporte Meta: " + goal.Name,
		Amount:      req.Amount,
		Date:        date,
		Account:     account.Name,
		Category:    domain.CategoryGoalContribution,
	}
	if _, err := s.store.CreateTransaction(ctx, contribution); err != nil {
		return nil, err
	}
	s.invalidateBalances()

	s.logger.Info("aporte em meta",
		zap.String("goal", goal.Name),
		zap.Float64("amount", req.Amount),
	)
	return updated, nil
}
