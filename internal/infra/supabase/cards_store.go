package supabase

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
)

// ============================================================
// Credit cards
// ============================================================

func (s *Store) ListCreditCards(ctx context.Context) ([]domain.CreditCard, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListCreditCards")
	defer span.End()

	return selectRows[domain.CreditCard](ctx, s.Client, "supabase/cards", "credit_cards?order=name.asc")
}

func (s *Store) GetCreditCard(ctx context.Context, cardID string) (*domain.CreditCard, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetCreditCard")
	defer span.End()
	span.SetAttributes(attribute.String("card.id", cardID))

	path := fmt.Sprintf("credit_cards?id=eq.%s&limit=1", url.QueryEscape(cardID))
	return selectOne[domain.CreditCard](ctx, s.Client, "supabase/cards", "credit card", cardID, path)
}

func (s *Store) CreateCreditCard(ctx context.Context, card *domain.CreditCard) (*domain.CreditCard, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateCreditCard")
	defer span.End()

	card.ID = newRowID(card.ID)
	return insertOne(ctx, s.Client, "supabase/cards", "credit_cards", card)
}

func (s *Store) UpdateCreditCard(ctx context.Context, card *domain.CreditCard) (*domain.CreditCard, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateCreditCard")
	defer span.End()

	patch, err := rowPatch(card)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("credit_cards?id=eq.%s", url.QueryEscape(card.ID))
	if err := s.patchRows(ctx, "supabase/cards", path, patch); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *Store) DeleteCreditCard(ctx context.Context, cardID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteCreditCard")
	defer span.End()

	path := fmt.Sprintf("credit_cards?id=eq.%s", url.QueryEscape(cardID))
	return s.deleteRows(ctx, "supabase/cards", path)
}

// ============================================================
// Credit card transactions
// ============================================================

func (s *Store) ListCardTransactions(ctx context.Context) ([]domain.CreditCardTransaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListCardTransactions")
	defer span.End()

	return selectRows[domain.CreditCardTransaction](ctx, s.Client, "supabase/card_transactions",
		"credit_card_transactions?order=date.desc")
}

func (s *Store) ListCardTransactionsByCard(ctx context.Context, cardID string) ([]domain.CreditCardTransaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.ListCardTransactionsByCard")
	defer span.End()
	span.SetAttributes(attribute.String("card.id", cardID))

	path := fmt.Sprintf("credit_card_transactions?card_id=eq.%s&order=date.desc", url.QueryEscape(cardID))
	return selectRows[domain.CreditCardTransaction](ctx, s.Client, "supabase/card_transactions", path)
}

func (s *Store) GetCardTransaction(ctx context.Context, txID string) (*domain.CreditCardTransaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.GetCardTransaction")
	defer span.End()

	path := fmt.Sprintf("credit_card_transactions?id=eq.%s", url.QueryEscape(txID))
	return selectOne[domain.CreditCardTransaction](ctx, s.Client, "supabase/card_transactions",
		"credit_card_transaction", txID, path)
}

func (s *Store) CreateCardTransaction(ctx context.Context, tx *domain.CreditCardTransaction) (*domain.CreditCardTransaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.CreateCardTransaction")
	defer span.End()

	tx.ID = newRowID(tx.ID)
	return insertOne(ctx, s.Client, "supabase/card_transactions", "credit_card_transactions", tx)
}

func (s *Store) UpdateCardTransaction(ctx context.Context, tx *domain.CreditCardTransaction) (*domain.CreditCardTransaction, error) {
	ctx, span := tracer.Start(ctx, "Supabase.UpdateCardTransaction")
	defer span.End()

	patch, err := rowPatch(tx)
	if err != nil {
		return nil, err
	}
	path := fmt.Sprintf("credit_card_transactions?id=eq.%s", url.QueryEscape(tx.ID))
	if err := s.patchRows(ctx, "supabase/card_transactions", path, patch); err != nil {
		return nil, err
	}
	return tx, nil
}

func (s *Store) DeleteCardTransaction(ctx context.Context, txID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteCardTransaction")
	defer span.End()

	path := fmt.Sprintf("credit_card_transactions?id=eq.%s", url.QueryEscape(txID))
	return s.deleteRows(ctx, "supabase/card_transactions", path)
}

// DeleteCardTransactionsByCard removes every charge of a card. Called
// when the card itself is deleted.
func (s *Store) DeleteCardTransactionsByCard(ctx context.Context, cardID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.DeleteCardTransactionsByCard")
	defer span.End()

	path := fmt.Sprintf("credit_card_transactions?card_id=eq.%s", url.QueryEscape(cardID))
	return s.deleteRows(ctx, "supabase/card_transactions", path)
}

// MarkCardTransactionsPaid flips paid on the given charges in a single
// PATCH using PostgREST's in.() filter.
func (s *Store) MarkCardTransactionsPaid(ctx context.Context, txIDs []string) error {
	ctx, span := tracer.Start(ctx, "Supabase.MarkCardTransactionsPaid")
	defer span.End()
	span.SetAttributes(attribute.Int("charges.count", len(txIDs)))

	if len(txIDs) == 0 {
		return nil
	}
	path := fmt.Sprintf("credit_card_transactions?id=in.(%s)", url.QueryEscape(strings.Join(txIDs, ",")))
	return s.patchRows(ctx, "supabase/card_transactions", path, map[string]any{"paid": true})
}

// ClearPersonFromCharges detaches a deleted person from their charges.
func (s *Store) ClearPersonFromCharges(ctx context.Context, personID string) error {
	ctx, span := tracer.Start(ctx, "Supabase.ClearPersonFromCharges")
	defer span.End()

	path := fmt.Sprintf("credit_card_transactions?person_id=eq.%s", url.QueryEscape(personID))
	return s.patchRows(ctx, "supabase/card_transactions", path, map[string]any{"person_id": nil})
}
