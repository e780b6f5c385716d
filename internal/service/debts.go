package service

import (
	"context"
	"fmt"

	"github.com/meu-financeiro/core-api/internal/calendar"
	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Debts
// ============================================================

func (s *FinanceService) ListDebts(ctx context.Context) ([]domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListDebts")
	defer span.End()

	return s.store.ListDebts(ctx)
}

func (s *FinanceService) CreateDebt(ctx context.Context, d *domain.Debt) (*domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateDebt")
	defer span.End()

	if err := validateDebt(d); err != nil {
		return nil, err
	}
	if _, err := s.store.GetAccount(ctx, d.AccountID); err != nil {
		return nil, err
	}
	return s.store.CreateDebt(ctx, d)
}

func (s *FinanceService) UpdateDebt(ctx context.Context, d *domain.Debt) (*domain.Debt, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateDebt")
	defer span.End()

	if err := validateDebt(d); err != nil {
		return nil, err
	}
	if _, err := s.store.GetDebt(ctx, d.ID); err != nil {
		return nil, err
	}
	return s.store.UpdateDebt(ctx, d)
}

func (s *FinanceService) DeleteDebt(ctx context.Context, debtID string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteDebt")
	defer span.End()

	if _, err := s.store.GetDebt(ctx, debtID); err != nil {
		return err
	}
	return s.store.DeleteDebt(ctx, debtID)
}

// PayDebtInstallment settles the next open installment: increments the
// paid counter and posts the installment expense on the debit account.
// A fully paid debt rejects further payments.
func (s *FinanceService) PayDebtInstallment(ctx context.Context, debtID string, req *domain.DebtPaymentRequest) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.PayDebtInstallment")
	defer span.End()
	span.SetAttributes(attribute.String("debt.id", debtID))

	debt, err := s.store.GetDebt(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt.PaidInstallments >= debt.NumberOfInstallments {
		return nil, &domain.ErrValidation{Field: "paid_installments", Message: "debt is already fully paid"}
	}

	accountID := debt.AccountID
	if req != nil && req.AccountID != "" {
		accountID = req.AccountID
	}
	account, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return nil, err
	}

	date := calendar.FormatDay(s.today())
	if req != nil && req.Date != "" {
		if _, err := calendar.ParseDay(req.Date); err != nil {
			return nil, &domain.ErrValidation{Field: "date", Message: err.Error()}
		}
		date = req.Date
	}

	installment := debt.TotalAmount / float64(debt.NumberOfInstallments)
	number := debt.PaidInstallments + 1

	debt.PaidInstallments = number
	if _, err := s.store.UpdateDebt(ctx, debt); err != nil {
		return nil, err
	}

	payment := &domain.Transaction{
		Type:        domain.TypeSaida,
		Description: fmt.Sprintf("Pagamento Parcela %d/%d - %s", number, debt.NumberOfInstallments, debt.Name),
		Amount:      installment,
		Date:        date,
		Account:     account.Name,
		Category:    domain.CategoryDebtPayment,
	}
	created, err := s.store.CreateTransaction(ctx, payment)
	if err != nil {
		return nil, err
	}
	s.invalidateBalances()

	s.logger.Info("parcela de dívida paga",
		zap.String("debt", debt.Name),
		zap.Int("installment", number),
		zap.Float64("amount", installment),
	)
	return created, nil
}

func validateDebt(d *domain.Debt) error {
	if d.Name == "" {
		return &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if d.TotalAmount <= 0 {
		return &domain.ErrValidation{Field: "total_amount", Message: "total amount must be positive"}
	}
	if d.NumberOfInstallments < 1 {
		return &domain.ErrValidation{Field: "number_of_installments", Message: "at least one installment is required"}
	}
	if d.PaidInstallments < 0 || d.PaidInstallments > d.NumberOfInstallments {
		return &domain.ErrValidation{Field: "paid_installments", Message: "paid installments out of range"}
	}
	if _, err := calendar.ParseDay(d.FirstDueDate); err != nil {
		return &domain.ErrValidation{Field: "first_due_date", Message: err.Error()}
	}
	if d.AccountID == "" {
		return &domain.ErrValidation{Field: "account_id", Message: "debit account is required"}
	}
	return nil
}
