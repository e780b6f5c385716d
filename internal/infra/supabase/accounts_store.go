package supabase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Accounts
// ============================================================

func (s *Store) ListAccounts(ctx context.Context) ([]domain.Account, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListAccounts")
	defer span.End()

	return selectRows[domain.Account](ctx, s.Client, "supabase/accounts", "accounts?order=name.asc")
}

func (s *Store) GetAccount(ctx context.Context, accountID string) (*domain.Account, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetAccount")
	defer span.End()
	span.SetAttributes(attribute.String("account.id", accountID))

	path := fmt.Sprintf("accounts?id=eq.%s&limit=1", url.QueryEscape(accountID))
	return selectOne[domain.Account](ctx, s.Client, "supabase/accounts", "account", accountID, path)
}

func (s *Store) CreateAccount(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateAccount")
	defer span.End()

	acc.ID = newRowID(acc.ID)
	return insertOne(ctx, s.Client, "supabase/accounts", "accounts", acc)
}

func (s *Store) UpdateAccount(ctx context.Context, acc *domain.Account) (*domain.Account, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateAccount")
	defer span.End()

	patch, err := rowPatch(acc)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("accounts?id=eq.%s", url.QueryEscape(acc.ID))
	if err := s.patchRows(ctx, "supabase/accounts", path, patch); err != nil {
		return nil, err
	}
	return acc, nil
}

func (s *Store) DeleteAccount(ctx context.Context, accountID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteAccount")
	defer span.End()

	path := fmt.Sprintf("accounts?id=eq.%s", url.QueryEscape(accountID))
	return s.deleteRows(ctx, "supabase/accounts", path)
}

// RenameAccountReferences rewrites the denormalized account name on
// transactions and recurring rules after an account rename.
func (s *Store) RenameAccountReferences(ctx context.Context, oldName, newName string) error {
	ctx, span := tracer.Start(ctx, "Supabase.RenameAccountReferences")
	defer span.End()

	txPath := fmt.Sprintf("transactions?account=eq.%s", url.QueryEscape(oldName))
	if err := s.patchRows(ctx, "supabase/transactions", txPath, map[string]any{"account": newName}); err != nil {
		return err
	}
	rtPath := fmt.Sprintf("recurring_transactions?account=eq.%s", url.QueryEscape(oldName))
	return s.patchRows(ctx, "supabase/recurring", rtPath, map[string]any{"account": newName})
}
