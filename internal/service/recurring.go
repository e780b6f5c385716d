package service

import (
	"context"
	"time"

	"github.com/meu-financeiro/core-api/internal/calendar"
	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Recurrence projector
//
// NextDueDate is the rule's cursor. The sweep materializes one dated
// transaction per occurrence at or before today and advances the
// cursor, so running it twice posts nothing the second time.
// ============================================================

// recurringPrefix marks transactions materialized from a rule.
const recurringPrefix = "(Recorrente) "

// advanceOccurrence steps a rule's cursor one period forward.
func advanceOccurrence(d time.Time, frequency string) time.Time {
	if frequency == domain.FrequencyAnual {
		return calendar.AddYears(d, 1)
	}
	return calendar.AddMonths(d, 1)
}

// PendingOccurrences expands a rule into the transactions due at or
// before today, returning the advanced cursor alongside. An up-to-date
// rule yields no transactions and its cursor unchanged.
func PendingOccurrences(rt domain.RecurringTransaction, today time.Time) ([]domain.Transaction, string, error) {
	due, err := calendar.ParseDay(rt.NextDueDate)
	if err != nil {
		return nil, "", &domain.ErrValidation{Field: "next_due_date", Message: err.Error()}
	}

	var txs []domain.Transaction
	for !due.After(today) {
		txs = append(txs, domain.Transaction{
			Type:        rt.Type,
			Description: recurringPrefix + rt.Description,
			Amount:      rt.Amount,
			Date:        calendar.FormatDay(due),
			Account:     rt.Account,
			Category:    rt.Category,
		})
		due = advanceOccurrence(due, rt.Frequency)
	}
	return txs, calendar.FormatDay(due), nil
}

// RecurringEffect sums the signed amounts of a rule's occurrences that
// fall between today (inclusive) and target (inclusive), without
// touching the rule. This is the projection-side view of the sweep.
func RecurringEffect(rt domain.RecurringTransaction, today, target time.Time) (float64, error) {
	due, err := calendar.ParseDay(rt.NextDueDate)
	if err != nil {
		return 0, &domain.ErrValidation{Field: "next_due_date", Message: err.Error()}
	}

	var effect float64
	for !due.After(target) {
		if !due.Before(today) {
			if rt.Type == domain.TypeEntrada {
				effect += rt.Amount
			} else {
				effect -= rt.Amount
			}
		}
		due = advanceOccurrence(due, rt.Frequency)
	}
	return effect, nil
}

// ============================================================
// Reconcile (catch-up sweep)
// ============================================================

// ReconcileRecurring materializes every pending occurrence of every
// rule. Runs at startup and behind POST /v1/recurring/reconcile.
// Returns the number of transactions posted.
func (s *FinanceService) ReconcileRecurring(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ReconcileRecurring")
	defer span.End()

	rules, err := s.store.ListRecurring(ctx)
	if err != nil {
		return 0, err
	}

	today := s.today()
	posted := 0
	for _, rt := range rules {
		txs, cursor, err := PendingOccurrences(rt, today)
		if err != nil {
			s.logger.Warn("regra recorrente ignorada",
				zap.String("recurring_id", rt.ID),
				zap.Error(err),
			)
			continue
		}
		if len(txs) == 0 {
			continue
		}

		for i := range txs {
			if _, err := s.store.CreateTransaction(ctx, &txs[i]); err != nil {
				return posted, err
			}
			posted++
		}

		rt.NextDueDate = cursor
		if _, err := s.store.UpdateRecurring(ctx, &rt); err != nil {
			return posted, err
		}
	}

	if posted > 0 {
		s.invalidateBalances()
		s.metrics.IncrRecurringPosted(posted)
		s.logger.Info("lançamentos recorrentes efetivados", zap.Int("posted", posted))
	}
	span.SetAttributes(attribute.Int("recurring.posted", posted))
	return posted, nil
}

// ============================================================
// Recurring rules CRUD
// ============================================================

func (s *FinanceService) ListRecurring(ctx context.Context) ([]domain.RecurringTransaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.ListRecurring")
	defer span.End()

	return s.store.ListRecurring(ctx)
}

func (s *FinanceService) CreateRecurring(ctx context.Context, rt *domain.RecurringTransaction) (*domain.RecurringTransaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateRecurring")
	defer span.End()

	if err := validateRecurring(rt); err != nil {
		return nil, err
	}
	if err := s.requireAccountByName(ctx, rt.Account); err != nil {
		return nil, err
	}
	return s.store.CreateRecurring(ctx, rt)
}

func (s *FinanceService) UpdateRecurring(ctx context.Context, rt *domain.RecurringTransaction) (*domain.RecurringTransaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.UpdateRecurring")
	defer span.End()

	if err := validateRecurring(rt); err != nil {
		return nil, err
	}
	if _, err := s.store.GetRecurring(ctx, rt.ID); err != nil {
		return nil, err
	}
	return s.store.UpdateRecurring(ctx, rt)
}

func (s *FinanceService) DeleteRecurring(ctx context.Context, recurringID string) error {
	ctx, span := tracer.Start(ctx, "FinanceService.DeleteRecurring")
	defer span.End()

	if _, err := s.store.GetRecurring(ctx, recurringID); err != nil {
		return err
	}
	return s.store.DeleteRecurring(ctx, recurringID)
}

func validateRecurring(rt *domain.RecurringTransaction) error {
	if rt.Description == "" {
		return &domain.ErrValidation{Field: "description", Message: "description is required"}
	}
	if rt.Amount <= 0 {
		return &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}
	if rt.Type != domain.TypeEntrada && rt.Type != domain.TypeSaida {
		return &domain.ErrValidation{Field: "type", Message: "type must be Entrada or Saída"}
	}
	if rt.Frequency != domain.FrequencyMensal && rt.Frequency != domain.FrequencyAnual {
		return &domain.ErrValidation{Field: "frequency", Message: "frequency must be Mensal or Anual"}
	}
	if _, err := calendar.ParseDay(rt.NextDueDate); err != nil {
		return &domain.ErrValidation{Field: "next_due_date", Message: err.Error()}
	}
	return nil
}
