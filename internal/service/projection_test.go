package service_test

import (
	"testing"

	"github.com/meu-financeiro/core-api/internal/domain"
	"github.com/meu-financeiro/core-api/internal/service"
)

func findAccount(t *testing.T, result *domain.ProjectionResult, name string) domain.AccountBalance {
	t.Helper()
	for _, b := range result.Accounts {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("account %q not in projection", name)
	return domain.AccountBalance{}
}

func TestProjectBalancesRecurringOnly(t *testing.T) {
	in := service.ProjectionInput{
		Accounts: []domain.Account{{ID: "a1", Name: "Corrente", InitialBalance: 1000}},
		Recurring: []domain.RecurringTransaction{{
			Type: domain.TypeSaida, Description: "Aluguel", Amount: 100,
			Account: "Corrente", Frequency: domain.FrequencyMensal,
			NextDueDate: "2025-07-20",
		}},
	}

	// window 07-15..08-31 covers the 07-20 and 08-20 occurrences
	result, err := service.ProjectBalances(in, day(t, "2025-07-15"), day(t, "2025-08-31"))
	if err != nil {
		t.Fatalf("ProjectBalances: %v", err)
	}
	acc := findAccount(t, result, "Corrente")
	if acc.Balance != 1000 {
		t.Errorf("current balance = %v, want 1000", acc.Balance)
	}
	if acc.Projected != 800 {
		t.Errorf("projected = %v, want 800", acc.Projected)
	}
}

func TestProjectBalancesUnpaidStatementDueInWindow(t *testing.T) {
	in := service.ProjectionInput{
		Accounts: []domain.Account{{ID: "a1", Name: "Corrente", InitialBalance: 2000}},
		Cards: []domain.CreditCard{{
			ID: "cc1", Name: "Click", Limit: 5000,
			ClosingDay: 20, DueDay: 28, AccountID: "a1",
		}},
		CardCharges: []domain.CreditCardTransaction{
			{CardID: "cc1", Amount: 300, Date: "2025-07-10", Paid: false}, // July statement, due 07-28
			{CardID: "cc1", Amount: 150, Date: "2025-07-25", Paid: false}, // August statement, due 08-28
			{CardID: "cc1", Amount: 500, Date: "2025-07-12", Paid: true},  // paid, ignored
		},
	}

	// target before the August due date: only July's statement hits
	result, err := service.ProjectBalances(in, day(t, "2025-07-15"), day(t, "2025-08-15"))
	if err != nil {
		t.Fatalf("ProjectBalances: %v", err)
	}
	if got := findAccount(t, result, "Corrente").Projected; got != 1700 {
		t.Errorf("projected = %v, want 2000-300=1700", got)
	}

	// extending past 08-28 pulls in the August statement too
	result, err = service.ProjectBalances(in, day(t, "2025-07-15"), day(t, "2025-08-31"))
	if err != nil {
		t.Fatalf("ProjectBalances: %v", err)
	}
	if got := findAccount(t, result, "Corrente").Projected; got != 1550 {
		t.Errorf("projected = %v, want 2000-300-150=1550", got)
	}
}

func TestProjectBalancesShortMonthStatementDebitedOnce(t *testing.T) {
	// closing day 31 clamps to Feb 29; the charge of 01-30 belongs to the
	// january statement (due 02-10) and must not bleed into february's
	in := service.ProjectionInput{
		Accounts: []domain.Account{{ID: "a1", Name: "Corrente", InitialBalance: 1000}},
		Cards: []domain.CreditCard{{
			ID: "cc1", ClosingDay: 31, DueDay: 10, AccountID: "a1",
		}},
		CardCharges: []domain.CreditCardTransaction{
			{CardID: "cc1", Amount: 100, Date: "2024-01-30", Paid: false},
		},
	}

	result, err := service.ProjectBalances(in, day(t, "2024-02-01"), day(t, "2024-03-31"))
	if err != nil {
		t.Fatalf("ProjectBalances: %v", err)
	}
	if got := findAccount(t, result, "Corrente").Projected; got != 900 {
		t.Errorf("projected = %v, want 1000-100=900 (statement counted once)", got)
	}
}

func TestProjectBalancesEarlyDueDayUsesPreviousMonthClosing(t *testing.T) {
	// closes on the 25th, due on the 4th of the following month
	in := service.ProjectionInput{
		Accounts: []domain.Account{{ID: "a1", Name: "Corrente", InitialBalance: 1000}},
		Cards: []domain.CreditCard{{
			ID: "cc1", ClosingDay: 25, DueDay: 4, AccountID: "a1",
		}},
		CardCharges: []domain.CreditCardTransaction{
			// charged 07-10, in the (06-25, 07-25] window, due 08-04
			{CardID: "cc1", Amount: 200, Date: "2025-07-10", Paid: false},
		},
	}

	result, err := service.ProjectBalances(in, day(t, "2025-07-20"), day(t, "2025-08-10"))
	if err != nil {
		t.Fatalf("ProjectBalances: %v", err)
	}
	if got := findAccount(t, result, "Corrente").Projected; got != 800 {
		t.Errorf("projected = %v, want 800", got)
	}
}

func TestProjectBalancesDebtInstallments(t *testing.T) {
	in := service.ProjectionInput{
		Accounts: []domain.Account{{ID: "a1", Name: "Corrente", InitialBalance: 5000}},
		Debts: []domain.Debt{{
			Name: "Financiamento", TotalAmount: 1200, NumberOfInstallments: 12,
			PaidInstallments: 2, FirstDueDate: "2025-05-05", AccountID: "a1",
		}},
	}

	// installments 3 (07-05, already past today) and 4 (08-05) — only
	// the August one falls inside (today, target]
	result, err := service.ProjectBalances(in, day(t, "2025-07-15"), day(t, "2025-08-31"))
	if err != nil {
		t.Fatalf("ProjectBalances: %v", err)
	}
	if got := findAccount(t, result, "Corrente").Projected; got != 4900 {
		t.Errorf("projected = %v, want 5000-100=4900", got)
	}
}

func TestProjectBalancesCombinedTotal(t *testing.T) {
	in := service.ProjectionInput{
		Accounts: []domain.Account{
			{ID: "a1", Name: "Corrente", InitialBalance: 1000},
			{ID: "a2", Name: "Poupança", InitialBalance: 500},
		},
		Txs: []domain.Transaction{
			{Type: domain.TypeEntrada, Description: "Depósito", Amount: 200, Date: "2025-07-01", Account: "Poupança"},
		},
	}

	result, err := service.ProjectBalances(in, day(t, "2025-07-15"), day(t, "2025-07-31"))
	if err != nil {
		t.Fatalf("ProjectBalances: %v", err)
	}
	if result.Total != 1700 {
		t.Errorf("total = %v, want 1700", result.Total)
	}
}
