package service

import (
	"context"

	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Credit cards
// ============================================================

func (s *FinanceService) ListCreditCards(ctx context.Context) ([]domain.CreditCard, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListCreditCards")
	defer span.End()

	return s.store.ListCreditCards(ctx)
}

func (s *FinanceService) GetCreditCard(ctx context.Context, cardID string) (*domain.CreditCard, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetCreditCard")
	defer span.End()

	return s.store.GetCreditCard(ctx, cardID)
}

func (s *FinanceService) CreateCreditCard(ctx context.Context, card *domain.CreditCard) (*domain.CreditCard, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateCreditCard")
	defer span.End()

	if err := validateCard(card); err != nil {
		return nil, err
	}
	if _, err := s.store.GetAccount(ctx, card.AccountID); err != nil {
		return nil, err
	}
	return s.store.CreateCreditCard(ctx, card)
}

func (s *FinanceService) UpdateCreditCard(ctx context.Context, card *domain.CreditCard) (*domain.CreditCard, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateCreditCard")
	defer span.End()

	if err := validateCard(card); err != nil {
		return nil, err
	}
	if _, err := s.store.GetCreditCard(ctx, card.ID); err != nil {
		return nil, err
	}
	if _, err := s.store.GetAccount(ctx, card.AccountID); err != nil {
		return nil, err
	}
	return s.store.UpdateCreditCard(ctx, card)
}

// DeleteCreditCard removes the card and every charge on it.
func (s *FinanceService) DeleteCreditCard(ctx context.Context, cardID string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteCreditCard")
	defer span.End()
	span.SetAttributes(attribute.String("card.id", cardID))

	card, err := s.store.GetCreditCard(ctx, cardID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteCardTransactionsByCard(ctx, cardID); err != nil {
		return err
	}
	if err := s.store.DeleteCreditCard(ctx, cardID); err != nil {
		return err
	}

	s.logger.Info("cartão removido", zap.String("card", card.Name))
	return nil
}

// ============================================================
// Card charges (single record updates; creation lives in
// installments.go because of plan expansion)
// ============================================================

func (s *FinanceService) ListCardTransactions(ctx context.Context, cardID string) ([]domain.CreditCardTransaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListCardTransactions")
	defer span.End()

	if cardID == "" {
		return s.store.ListCardTransactions(ctx)
	}
	return s.store.ListCardTransactionsByCard(ctx, cardID)
}

// UpdateCardTransaction edits a charge's descriptive fields. The paid
// flag only flips through statement payment and the installment plan
// metadata is fixed at creation, so the stored values override
// whatever the client sent.
func (s *FinanceService) UpdateCardTransaction(ctx context.Context, tx *domain.CreditCardTransaction) (*domain.CreditCardTransaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateCardTransaction")
	defer span.End()

	if tx.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}
	current, err := s.store.GetCardTransaction(ctx, tx.ID)
	if err != nil {
		return nil, err
	}
	if _, err := s.store.GetCreditCard(ctx, tx.CardID); err != nil {
		return nil, err
	}

	tx.Paid = current.Paid
	tx.GroupID = current.GroupID
	tx.InstallmentInfo = current.InstallmentInfo
	return s.store.UpdateCardTransaction(ctx, tx)
}

func (s *FinanceService) DeleteCardTransaction(ctx context.Context, txID string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteCardTransaction")
	defer span.End()

	return s.store.DeleteCardTransaction(ctx, txID)
}

func validateCard(card *domain.CreditCard) error {
	if card.Name == "" {
		return &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if card.Limit <= 0 {
		return &domain.ErrValidation{Field: "limit", Message: "limit must be positive"}
	}
	if card.ClosingDay < 1 || card.ClosingDay > 31 {
		return &domain.ErrValidation{Field: "closing_day", Message: "closing day must be between 1 and 31"}
	}
	if card.DueDay < 1 || card.DueDay > 31 {
		return &domain.ErrValidation{Field: "due_day", Message: "due day must be between 1 and 31"}
	}
	if card.AccountID == "" {
		return &domain.ErrValidation{Field: "account_id", Message: "debit account is required"}
	}
	return nil
}
