package service

import (
	"context"

	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Accounts
// ============================================================

func (s *FinanceService) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListAccounts")
	defer span.End()

	return s.store.ListAccounts(ctx)
}

func (s *FinanceService) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetAccount")
	defer span.End()

	return s.store.GetAccount(ctx, accountID)
}

func (s *FinanceService) CreateAccount(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateAccount")
	defer span.End()

	if acc.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}
	if err := s.requireUniqueAccountName(ctx, acc.Name, ""); err != nil {
		return nil, err
	}

	created, err := s.store.CreateAccount(ctx, acc)
	if err != nil {
		return nil, err
	}
	s.invalidateBalances()
	return created, nil
}

// UpdateAccount updates the account and, on rename, rewrites the
// account name on every transaction and recurring rule that pointed at
// the old name so history keeps following the account.
func (s *FinanceService) UpdateAccount(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateAccount")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", acc.ID))

	if acc.Name == "" {
		return nil, &domain.ErrValidation{Field: "name", Message: "name is required"}
	}

	current, err := s.store.GetAccount(ctx, acc.ID)
	if err != nil {
		return nil, err
	}
	if current.Name != acc.Name {
		if err := s.requireUniqueAccountName(ctx, acc.Name, acc.ID); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.UpdateAccount(ctx, acc)
	if err != nil {
		return nil, err
	}

	if current.Name != acc.Name {
		if err := s.store.RenameAccountReferences(ctx, current.Name, acc.Name); err != nil {
			return nil, err
		}
		s.logger.Info("conta renomeada",
			zap.String("old_name", current.Name),
			zap.String("new_name", acc.Name),
		)
	}

	s.invalidateBalances()
	return updated, nil
}

// DeleteAccount refuses to delete while transactions or cards still
// reference the account.
func (s *FinanceService) DeleteAccount(ctx context.Context, accountID string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteAccount")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", accountID))

	acc, err := s.store.GetAccount(ctx, accountID)
	if err != nil {
		return err
	}

	txs, err := s.store.ListTransactions(ctx)
	if err != nil {
		return err
	}
	for _, t := range txs {
		if t.Account == acc.Name {
			return &domain.ErrConflict{Message: "conta possui transações associadas"}
		}
	}

	cards, err := s.store.ListCreditCards(ctx)
	if err != nil {
		return err
	}
	for _, c := range cards {
		if c.AccountID == accountID {
			return &domain.ErrConflict{Message: "conta possui cartões associados"}
		}
	}

	if err := s.store.DeleteAccount(ctx, accountID); err != nil {
		return err
	}
	s.invalidateBalances()
	return nil
}

// requireAccountByName resolves an account by its name or fails with
// ErrNotFound. Used by operations that take account names on the wire.
func (s *FinanceService) requireAccountByName(ctx context.Context, name string) error {
	_, err := s.accountByName(ctx, name)
	return err
}

func (s *FinanceService) accountByName(ctx context.Context, name string) (*domain.Account, error) {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return nil, err
	}
	for i := range accounts {
		if accounts[i].Name == name {
			return &accounts[i], nil
		}
	}
	return nil, &domain.ErrNotFound{Resource: "account", ID: name}
}

func (s *FinanceService) requireUniqueAccountName(ctx context.Context, name, exceptID string) error {
	accounts, err := s.store.ListAccounts(ctx)
	if err != nil {
		return err
	}
	for _, acc := range accounts {
		if acc.Name == name && acc.ID != exceptID {
			return &domain.ErrConflict{Message: "já existe uma conta com esse nome"}
		}
	}
	return nil
}
