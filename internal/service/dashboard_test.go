package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/meu-financeiro/core-api/internal/domain"
	"github.com/meu-financeiro/core-api/internal/service"
)

func TestMonthlySummaryCarriesPreviousMonths(t *testing.T) {
	accounts := []domain.Account{{ID: "a1", Name: "Corrente", InitialBalance: 1000}}
	txs := []domain.Transaction{
		{Type: domain.TypeEntrada, Amount: 500, Date: "2025-06-10", Account: "Corrente", Category: "Salário"},
		{Type: domain.TypeSaida, Amount: 200, Date: "2025-06-15", Account: "Corrente", Category: "Mercado"},
		{Type: domain.TypeEntrada, Amount: 300, Date: "2025-07-05", Account: "Corrente", Category: "Salário"},
		{Type: domain.TypeSaida, Amount: 100, Date: "2025-07-10", Account: "Corrente", Category: "Lazer"},
	}

	summary, err := service.MonthlySummary(accounts, txs, nil, 2025, time.July)
	if err != nil {
		t.Fatalf("MonthlySummary: %v", err)
	}
	if summary.PreviousBalance != 1300 {
		t.Errorf("previous = %v, want 1000+500-200=1300", summary.PreviousBalance)
	}
	if summary.Income != 300 || summary.Expenses != 100 {
		t.Errorf("income/expenses = %v/%v, want 300/100", summary.Income, summary.Expenses)
	}
	if summary.FinalBalance != 1500 {
		t.Errorf("final = %v, want 1300+300-100=1500", summary.FinalBalance)
	}
	if len(summary.Months) != 2 || summary.Months[0] != "2025-07" || summary.Months[1] != "2025-06" {
		t.Errorf("months = %v, want [2025-07 2025-06]", summary.Months)
	}
}

func TestMonthlySummaryIncludesCardChargesInBreakdown(t *testing.T) {
	accounts := []domain.Account{{ID: "a1", Name: "Corrente"}}
	txs := []domain.Transaction{
		{Type: domain.TypeSaida, Amount: 80, Date: "2025-07-03", Account: "Corrente", Category: "Mercado"},
	}
	charges := []domain.CreditCardTransaction{
		{CardID: "cc1", Amount: 120, Date: "2025-07-10", Category: "Mercado"},
		{CardID: "cc1", Amount: 60, Date: "2025-07-12", Category: "Lazer"},
		{CardID: "cc1", Amount: 999, Date: "2025-06-12", Category: "Lazer"},
	}

	summary, err := service.MonthlySummary(accounts, txs, charges, 2025, time.July)
	if err != nil {
		t.Fatalf("MonthlySummary: %v", err)
	}
	if summary.CardExpenses != 180 {
		t.Errorf("card expenses = %v, want 180", summary.CardExpenses)
	}
	if len(summary.ByCategory) != 2 {
		t.Fatalf("categories = %v", summary.ByCategory)
	}
	// Mercado 80+120 sorts above Lazer 60
	if summary.ByCategory[0].Category != "Mercado" || summary.ByCategory[0].Total != 200 {
		t.Errorf("top category = %+v, want Mercado/200", summary.ByCategory[0])
	}
}

func TestComputeNetWorth(t *testing.T) {
	investments := []domain.Investment{
		{Name: "FII", CurrentValue: 10000},
		{Name: "CDB", CurrentValue: 5000},
	}
	debts := []domain.Debt{
		// 1200 total, 12 parcels, 4 paid: 800 remaining
		{Name: "Financiamento", TotalAmount: 1200, NumberOfInstallments: 12, PaidInstallments: 4},
	}

	nw := service.ComputeNetWorth(investments, debts)
	if nw.TotalInvestments != 15000 {
		t.Errorf("investments = %v, want 15000", nw.TotalInvestments)
	}
	if nw.TotalDebts != 800 {
		t.Errorf("debts = %v, want 800", nw.TotalDebts)
	}
	if nw.NetWorth != 14200 {
		t.Errorf("net worth = %v, want 14200", nw.NetWorth)
	}
}

func TestPayDebtInstallmentPostsExpenseAndAdvances(t *testing.T) {
	svc, store := newTestService(t, "2025-07-15")
	ctx := context.Background()

	acc, _ := store.CreateAccount(ctx, &domain.Account{Name: "Corrente", InitialBalance: 1000})
	debt, _ := store.CreateDebt(ctx, &domain.Debt{
		Name: "Empréstimo", TotalAmount: 1200, NumberOfInstallments: 12,
		PaidInstallments: 3, FirstDueDate: "2025-01-05", AccountID: acc.ID,
	})

	payment, err := svc.PayDebtInstallment(ctx, debt.ID, nil)
	if err != nil {
		t.Fatalf("PayDebtInstallment: %v", err)
	}
	if payment.Amount != 100 {
		t.Errorf("payment amount = %v, want 1200/12=100", payment.Amount)
	}
	if payment.Description != "Pagamento Parcela 4/12 - Empréstimo" {
		t.Errorf("description = %q", payment.Description)
	}
	if payment.Category != domain.CategoryDebtPayment {
		t.Errorf("category = %q", payment.Category)
	}
	if payment.Date != "2025-07-15" {
		t.Errorf("date = %s, want today", payment.Date)
	}

	updated, _ := store.GetDebt(ctx, debt.ID)
	if updated.PaidInstallments != 4 {
		t.Errorf("paid installments = %d, want 4", updated.PaidInstallments)
	}
}

func TestPayDebtInstallmentRejectsFullyPaid(t *testing.T) {
	svc, store := newTestService(t, "2025-07-15")
	ctx := context.Background()

	acc, _ := store.CreateAccount(ctx, &domain.Account{Name: "Corrente"})
	debt, _ := store.CreateDebt(ctx, &domain.Debt{
		Name: "Quitado", TotalAmount: 600, NumberOfInstallments: 6,
		PaidInstallments: 6, FirstDueDate: "2025-01-05", AccountID: acc.ID,
	})

	_, err := svc.PayDebtInstallment(ctx, debt.ID, nil)
	var vErr *domain.ErrValidation
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ErrValidation for fully paid debt, got %v", err)
	}
}

func TestContributeToGoalPostsAporte(t *testing.T) {
	svc, store := newTestService(t, "2025-07-15")
	ctx := context.Background()

	acc, _ := store.CreateAccount(ctx, &domain.Account{Name: "Corrente", InitialBalance: 1000})
	goal, _ := store.CreateGoal(ctx, &domain.Goal{Name: "Viagem", TargetAmount: 5000, CurrentAmount: 200})

	updated, err := svc.ContributeToGoal(ctx, goal.ID, &domain.GoalContributionRequest{
		AccountID: acc.ID, Amount: 300,
	})
	if err != nil {
		t.Fatalf("ContributeToGoal: %v", err)
	}
	if updated.CurrentAmount != 500 {
		t.Errorf("current amount = %v, want 500", updated.CurrentAmount)
	}

	txs, _ := store.ListTransactions(ctx)
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}
	if txs[0].Description != "Aporte Meta: Viagem" || txs[0].Category != domain.CategoryGoalContribution {
		t.Errorf("aporte tx = %+v", txs[0])
	}
}

func TestTransferCreatesMirroredTransactions(t *testing.T) {
	svc, store := newTestService(t, "2025-07-15")
	ctx := context.Background()

	from, _ := store.CreateAccount(ctx, &domain.Account{Name: "Corrente", InitialBalance: 1000})
	to, _ := store.CreateAccount(ctx, &domain.Account{Name: "Poupança"})

	pair, err := svc.Transfer(ctx, &domain.TransferRequest{
		FromAccountID: from.ID, ToAccountID: to.ID, Amount: 250, Date: "2025-07-15",
	})
	if err != nil {
		t.Fatalf("Transfer: %v", err)
	}
	if len(pair) != 2 {
		t.Fatalf("got %d transactions, want 2", len(pair))
	}
	if pair[0].Type != domain.TypeSaida || pair[0].Account != "Corrente" || pair[0].Description != "Transferência para Poupança" {
		t.Errorf("outgoing leg = %+v", pair[0])
	}
	if pair[1].Type != domain.TypeEntrada || pair[1].Account != "Poupança" || pair[1].Description != "Transferência de Corrente" {
		t.Errorf("incoming leg = %+v", pair[1])
	}

	balances, _ := svc.Balances(ctx)
	for _, b := range balances {
		switch b.Name {
		case "Corrente":
			if b.Balance != 750 {
				t.Errorf("Corrente = %v, want 750", b.Balance)
			}
		case "Poupança":
			if b.Balance != 250 {
				t.Errorf("Poupança = %v, want 250", b.Balance)
			}
		}
	}
}

func TestDeleteAccountRefusedWithReferences(t *testing.T) {
	svc, store := newTestService(t, "2025-07-15")
	ctx := context.Background()

	acc, _ := store.CreateAccount(ctx, &domain.Account{Name: "Corrente"})
	if _, err := store.CreateTransaction(ctx, &domain.Transaction{
		Type: domain.TypeEntrada, Description: "Depósito", Amount: 10,
		Date: "2025-07-01", Account: "Corrente",
	}); err != nil {
		t.Fatalf("seed tx: %v", err)
	}

	err := svc.DeleteAccount(ctx, acc.ID)
	var conflict *domain.ErrConflict
	if !errors.As(err, &conflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestUpdateAccountRenamePropagates(t *testing.T) {
	svc, store := newTestService(t, "2025-07-15")
	ctx := context.Background()

	acc, _ := store.CreateAccount(ctx, &domain.Account{Name: "Corrente", InitialBalance: 100})
	store.CreateTransaction(ctx, &domain.Transaction{
		Type: domain.TypeEntrada, Description: "Depósito", Amount: 50,
		Date: "2025-07-01", Account: "Corrente",
	})
	store.CreateRecurring(ctx, &domain.RecurringTransaction{
		Type: domain.TypeSaida, Description: "Aluguel", Amount: 10,
		Account: "Corrente", Frequency: domain.FrequencyMensal, NextDueDate: "2025-08-01",
	})

	acc.Name = "Conta Principal"
	if _, err := svc.UpdateAccount(ctx, acc); err != nil {
		t.Fatalf("UpdateAccount: %v", err)
	}

	txs, _ := store.ListTransactions(ctx)
	if txs[0].Account != "Conta Principal" {
		t.Errorf("transaction still references %q", txs[0].Account)
	}
	rules, _ := store.ListRecurring(ctx)
	if rules[0].Account != "Conta Principal" {
		t.Errorf("recurring rule still references %q", rules[0].Account)
	}

	balances, _ := svc.Balances(ctx)
	if balances[0].Balance != 150 {
		t.Errorf("balance after rename = %v, want 150 (history kept)", balances[0].Balance)
	}
}

func TestPayStatementMarksChargesAndPostsExpense(t *testing.T) {
	svc, store := newTestService(t, "2025-07-15")
	ctx := context.Background()

	acc, _ := store.CreateAccount(ctx, &domain.Account{Name: "Corrente", InitialBalance: 1000})
	card, _ := store.CreateCreditCard(ctx, &domain.CreditCard{
		Name: "Click", Limit: 5000, ClosingDay: 20, DueDay: 28, AccountID: acc.ID,
	})
	store.CreateCardTransaction(ctx, &domain.CreditCardTransaction{
		CardID: card.ID, Description: "Mercado", Amount: 150, Date: "2025-07-10", Category: "Mercado",
	})
	store.CreateCardTransaction(ctx, &domain.CreditCardTransaction{
		CardID: card.ID, Description: "Lazer", Amount: 50, Date: "2025-07-12", Category: "Lazer",
	})

	payment, err := svc.PayStatement(ctx, card.ID, "2025-07")
	if err != nil {
		t.Fatalf("PayStatement: %v", err)
	}
	if payment.Amount != 200 || payment.Description != "Pagamento Fatura Click" {
		t.Errorf("payment = %+v", payment)
	}

	charges, _ := store.ListCardTransactionsByCard(ctx, card.ID)
	for _, c := range charges {
		if !c.Paid {
			t.Errorf("charge %q left unpaid", c.Description)
		}
	}

	// paying again is rejected
	_, err = svc.PayStatement(ctx, card.ID, "2025-07")
	var vErr *domain.ErrValidation
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ErrValidation on second payment, got %v", err)
	}
}
