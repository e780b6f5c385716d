package service_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/meu-financeiro/core-api/internal/domain"
	"github.com/meu-financeiro/core-api/internal/infra/cache"
	"github.com/meu-financeiro/core-api/internal/infra/memory"
	"github.com/meu-financeiro/core-api/internal/infra/observability"
	"github.com/meu-financeiro/core-api/internal/service"

	"go.uber.org/zap"
)

// newTestService wires a service over a fresh in-memory store with a
// clock pinned to the given day.
func newTestService(t *testing.T, today string) (*service.FinanceService, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	svc := service.NewFinanceService(
		store,
		cache.New[[]domain.AccountBalance](time.Minute),
		observability.NewMetrics(),
		zap.NewNop(),
	)
	pinned := day(t, today)
	svc.WithClock(func() time.Time { return pinned })
	return svc, store
}

func TestPendingOccurrencesCatchesUpMonthly(t *testing.T) {
	rt := domain.RecurringTransaction{
		Type:        domain.TypeSaida,
		Description: "Aluguel",
		Amount:      1200,
		Account:     "Corrente",
		Category:    "Moradia",
		Frequency:   domain.FrequencyMensal,
		NextDueDate: "2025-05-10",
	}

	txs, cursor, err := service.PendingOccurrences(rt, day(t, "2025-07-15"))
	if err != nil {
		t.Fatalf("PendingOccurrences: %v", err)
	}
	if len(txs) != 3 {
		t.Fatalf("got %d occurrences, want 3", len(txs))
	}
	wantDates := []string{"2025-05-10", "2025-06-10", "2025-07-10"}
	for i, tx := range txs {
		if tx.Date != wantDates[i] {
			t.Errorf("tx[%d].Date = %s, want %s", i, tx.Date, wantDates[i])
		}
		if !strings.HasPrefix(tx.Description, "(Recorrente) ") {
			t.Errorf("tx[%d] missing recurring prefix: %q", i, tx.Description)
		}
	}
	if cursor != "2025-08-10" {
		t.Errorf("cursor = %s, want 2025-08-10", cursor)
	}
}

func TestPendingOccurrencesUpToDateRuleYieldsNothing(t *testing.T) {
	rt := domain.RecurringTransaction{
		Type: domain.TypeEntrada, Description: "Salário", Amount: 5000,
		Account: "Corrente", Frequency: domain.FrequencyMensal,
		NextDueDate: "2025-08-05",
	}

	txs, cursor, err := service.PendingOccurrences(rt, day(t, "2025-07-15"))
	if err != nil {
		t.Fatalf("PendingOccurrences: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("got %d occurrences, want 0", len(txs))
	}
	if cursor != "2025-08-05" {
		t.Errorf("cursor moved to %s for an up-to-date rule", cursor)
	}
}

func TestPendingOccurrencesAnnual(t *testing.T) {
	rt := domain.RecurringTransaction{
		Type: domain.TypeSaida, Description: "IPVA", Amount: 900,
		Account: "Corrente", Frequency: domain.FrequencyAnual,
		NextDueDate: "2024-01-15",
	}

	txs, cursor, err := service.PendingOccurrences(rt, day(t, "2025-07-15"))
	if err != nil {
		t.Fatalf("PendingOccurrences: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("got %d occurrences, want 2 (2024 and 2025)", len(txs))
	}
	if cursor != "2026-01-15" {
		t.Errorf("cursor = %s, want 2026-01-15", cursor)
	}
}

func TestRecurringEffectWindow(t *testing.T) {
	rt := domain.RecurringTransaction{
		Type: domain.TypeSaida, Description: "Assinatura", Amount: 100,
		Account: "Corrente", Frequency: domain.FrequencyMensal,
		NextDueDate: "2025-07-20",
	}

	// window covers two occurrences: 07-20 and 08-20
	effect, err := service.RecurringEffect(rt, day(t, "2025-07-15"), day(t, "2025-08-31"))
	if err != nil {
		t.Fatalf("RecurringEffect: %v", err)
	}
	if effect != -200 {
		t.Errorf("effect = %v, want -200", effect)
	}

	// Entrada flips the sign
	rt.Type = domain.TypeEntrada
	effect, _ = service.RecurringEffect(rt, day(t, "2025-07-15"), day(t, "2025-08-31"))
	if effect != 200 {
		t.Errorf("entrada effect = %v, want 200", effect)
	}
}

func TestReconcileRecurringIsIdempotent(t *testing.T) {
	svc, store := newTestService(t, "2025-07-15")
	ctx := context.Background()

	if _, err := store.CreateAccount(ctx, &domain.Account{Name: "Corrente", InitialBalance: 1000}); err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}
	if _, err := store.CreateRecurring(ctx, &domain.RecurringTransaction{
		Type: domain.TypeSaida, Description: "Aluguel", Amount: 500,
		Account: "Corrente", Category: "Moradia",
		Frequency: domain.FrequencyMensal, NextDueDate: "2025-06-10",
	}); err != nil {
		t.Fatalf("CreateRecurring: %v", err)
	}

	posted, err := svc.ReconcileRecurring(ctx)
	if err != nil {
		t.Fatalf("ReconcileRecurring: %v", err)
	}
	if posted != 2 {
		t.Fatalf("first run posted %d, want 2 (June and July)", posted)
	}

	again, err := svc.ReconcileRecurring(ctx)
	if err != nil {
		t.Fatalf("ReconcileRecurring (second run): %v", err)
	}
	if again != 0 {
		t.Errorf("second run posted %d, want 0", again)
	}

	txs, _ := store.ListTransactions(ctx)
	if len(txs) != 2 {
		t.Errorf("store holds %d transactions, want 2", len(txs))
	}
	for _, tx := range txs {
		if !strings.HasPrefix(tx.Description, "(Recorrente) ") {
			t.Errorf("materialized tx missing prefix: %q", tx.Description)
		}
	}

	balances, err := svc.Balances(ctx)
	if err != nil {
		t.Fatalf("Balances: %v", err)
	}
	if len(balances) != 1 || balances[0].Balance != 0 {
		t.Errorf("balance after sweep = %+v, want 1000-500-500=0", balances)
	}
}
