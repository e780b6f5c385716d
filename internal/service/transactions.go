package service

import (
	"context"

	"github.com/meu-financeiro/core-api/internal/calendar"
	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Transactions
// ============================================================

func (s *FinanceService) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListTransactions")
	defer span.End()

	return s.store.ListTransactions(ctx)
}

func (s *FinanceService) CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateTransaction")
	defer span.End()

	if err := validateTransaction(tx); err != nil {
		return nil, err
	}
	if err := s.requireAccountByName(ctx, tx.Account); err != nil {
		return nil, err
	}

	created, err := s.store.CreateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	s.invalidateBalances()
	return created, nil
}

func (s *FinanceService) UpdateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateTransaction")
	defer span.End()

	if err := validateTransaction(tx); err != nil {
		return nil, err
	}
	if _, err := s.store.GetTransaction(ctx, tx.ID); err != nil {
		return nil, err
	}
	if err := s.requireAccountByName(ctx, tx.Account); err != nil {
		return nil, err
	}

	updated, err := s.store.UpdateTransaction(ctx, tx)
	if err != nil {
		return nil, err
	}
	s.invalidateBalances()
	return updated, nil
}

func (s *FinanceService) DeleteTransaction(ctx context.Context, txID string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteTransaction")
	defer span.End()

	if _, err := s.store.GetTransaction(ctx, txID); err != nil {
		return err
	}
	if err := s.store.DeleteTransaction(ctx, txID); err != nil {
		return err
	}
	s.invalidateBalances()
	return nil
}

// Transfer posts a Saída on the source account and an Entrada on the
// destination, both under the Transferência category.
func (s *FinanceService) Transfer(ctx context.Context, req *domain.TransferRequest) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.Transfer")
	defer span.End()
	span.SetAttributes(
		attribute.String("transfer.from", req.FromAccountID),
		attribute.String("transfer.to", req.ToAccountID),
	)

	if req.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}
	if req.FromAccountID == req.ToAccountID {
		return nil, &domain.ErrValidation{Field: "to_account_id", Message: "source and destination must differ"}
	}
	date := req.Date
	if date == "" {
		date = calendar.FormatDay(s.today())
	} else if _, err := calendar.ParseDay(date); err != nil {
		return nil, &domain.ErrValidation{Field: "date", Message: err.Error()}
	}

	from, err := s.store.GetAccount(ctx, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	to, err := s.store.GetAccount(ctx, req.ToAccountID)
	if err != nil {
		return nil, err
	}

	out := &domain.Transaction{
		Type:        domain.TypeSaida,
		Description: "Transferência para " + to.Name,
		Amount:      req.Amount,
		Date:        date,
		Account:     from.Name,
		Category:    domain.CategoryTransfer,
	}
	in := &domain.Transaction{
		Type:        domain.TypeEntrada,
		Description: "Transferência de " + from.Name,
		Amount:      req.Amount,
		Date:        date,
		Account:     to.Name,
		Category:    domain.CategoryTransfer,
	}

	createdOut, err := s.store.CreateTransaction(ctx, out)
	if err != nil {
		return nil, err
	}
	createdIn, err := s.store.CreateTransaction(ctx, in)
	if err != nil {
		return nil, err
	}
	s.invalidateBalances()

	s.logger.Info("transferência efetuada",
		zap.String("from", from.Name),
		zap.String("to", to.Name),
		zap.Float64("amount", req.Amount),
	)
	return []domain.Transaction{*createdOut, *createdIn}, nil
}

func validateTransaction(tx *domain.Transaction) error {
	if tx.Description == "" {
		return &domain.ErrValidation{Field: "description", Message: "description is required"}
	}
	if tx.Amount <= 0 {
		return &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}
	if tx.Type != domain.TypeEntrada && tx.Type != domain.TypeSaida {
		return &domain.ErrValidation{Field: "type", Message: "type must be Entrada or Saída"}
	}
	if _, err := calendar.ParseDay(tx.Date); err != nil {
		return &domain.ErrValidation{Field: "date", Message: err.Error()}
	}
	return nil
}
