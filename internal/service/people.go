package service

import (
	"context"

	"github.com/meu-financeiro/core-api/internal/domain"
)

// ============================================================
// People / Categories / Cost centers / Investments
// ============================================================

func (s *FinanceService) ListPeople(ctx context.Context) ([]domain.Person, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListPeople")
	defer span.End()

	return s.store.ListPeople(ctx)
}

func (s *FinanceService) CreatePerson(ctx context.Context, p *domain.Person) (*domain.Person, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreatePerson")
	defer span.End()

	if p.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	return s.store.CreatePerson(ctx, p)
}

// DeletePerson removes the person and unassigns their card charges so
// the charges fall back to the card owner's share.
func (s *FinanceService) DeletePerson(ctx context.Context, personID string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeletePerson")
	defer span.End()

	if _, err := s.store.GetPerson(ctx, personID); err != nil {
		return err
	}
	if err := s.store.ClearPersonFromCharges(ctx, personID); err != nil {
		return err
	}
	return s.store.DeletePerson(ctx, personID)
}

func (s *FinanceService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListCategories")
	defer span.End()

	return s.store.ListCategories(ctx)
}

func (s *FinanceService) CreateCategory(ctx context.Context, cat *domain.Category) (*domain.Category, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateCategory")
	defer span.End()

	if cat.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if cat.Type != "" && cat.Type != domain.TypeEntrada && cat.Type != domain.TypeSaida {
		return nil, &domain.ErrValidation{Field: "type", Message: "type must be Entrada, Saída or empty"}
	}
	return s.store.CreateCategory(ctx, cat)
}

func (s *FinanceService) DeleteCategory(ctx context.Context, categoryID string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteCategory")
	defer span.End()

	return s.store.DeleteCategory(ctx, categoryID)
}

func (s *FinanceService) ListCostCenters(ctx context.Context) ([]domain.CostCenter, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListCostCenters")
	defer span.End()

	return s.store.ListCostCenters(ctx)
}

func (s *FinanceService) CreateCostCenter(ctx context.Context, cc *domain.CostCenter) (*domain.CostCenter, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateCostCenter")
	defer span.End()

	if cc.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	return s.store.CreateCostCenter(ctx, cc)
}

func (s *FinanceService) DeleteCostCenter(ctx context.Context, costCenterID string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteCostCenter")
	defer span.End()

	return s.store.DeleteCostCenter(ctx, costCenterID)
}

func (s *FinanceService) ListInvestments(ctx context.Context) ([]domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListInvestments")
	defer span.End()

	return s.store.ListInvestments(ctx)
}

func (s *FinanceService) CreateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateInvestment")
	defer span.End()

	if err := validateInvestment(inv); err != nil {
		return nil, err
	}
	return s.store.CreateInvestment(ctx, inv)
}

func (s *FinanceService) UpdateInvestment(ctx context.Context, inv *domain.Investment) (*domain.Investment, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateInvestment")
	defer span.End()

	if err := validateInvestment(inv); err != nil {
		return nil, err
	}
	if _, err := s.store.GetInvestment(ctx, inv.ID); err != nil {
		return nil, err
	}
	return s.store.UpdateInvestment(ctx, inv)
}

func (s *FinanceService) DeleteInvestment(ctx context.Context, investmentID string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteInvestment")
	defer span.End()

	if _, err := s.store.GetInvestment(ctx, investmentID); err != nil {
		return err
	}
	return s.store.DeleteInvestment(ctx, investmentID)
}

func validateInvestment(inv *domain.Investment) error {
	if inv.Name == "" {
		return &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if inv.CurrentValue < 0 {
		return &domain.ErrValidation{Field: "current_value", Message: "current value cannot be negative"}
	}
	return nil
}
