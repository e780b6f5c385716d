package supabase

import (
	"context"
	"fmt"
	"net/url"

	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Transactions
// ============================================================

func (s *Store) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListTransactions")
	defer span.End()

	return selectRows[domain.Transaction](ctx, s.Client, "supabase/transactions", "transactions?order=date.desc")
}

func (s *Store) GetTransaction(ctx context.Context, txID string) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetTransaction")
	defer span.End()
	span.SetAttributes(attribute.String("transaction.id", txID))

	path := fmt.Sprintf("transactions?id=eq.%s&limit=1", url.QueryEscape(txID))
	return selectOne[domain.Transaction](ctx, s.Client, "supabase/transactions", "transaction", txID, path)
}

func (s *Store) CreateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateTransaction")
	defer span.End()

	tx.ID = newRowID(tx.ID)
	return insertOne(ctx, s.Client, "supabase/transactions", "transactions", tx)
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateTransaction")
	defer span.End()

	patch, err := rowPatch(tx)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("transactions?id=eq.%s", url.QueryEscape(tx.ID))
	if err := s.patchRows(ctx, "supabase/transactions", path, patch); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *Store) DeleteTransaction(ctx context.Context, txID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteTransaction")
	defer span.End()

	path := fmt.Sprintf("transactions?id=eq.%s", url.QueryEscape(txID))
	return s.deleteRows(ctx, "supabase/transactions", path)
}
