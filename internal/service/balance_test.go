package service_test

import (
	"context"
	"testing"

	"github.com/meu-financeiro/core-api/internal/domain"
	"github.com/meu-financeiro/core-api/internal/service"
)

func TestBalanceForMatchesByAccountName(t *testing.T) {
	acc := domain.Account{ID: "a1", Name: "Corrente", InitialBalance: 100}
	txs := []domain.Transaction{
		{Type: domain.TypeEntrada, Amount: 50, Account: "Corrente"},
		{Type: domain.TypeSaida, Amount: 30, Account: "Corrente"},
		{Type: domain.TypeEntrada, Amount: 999, Account: "Poupança"},
	}

	if got := service.BalanceFor(acc, txs); got != 120 {
		t.Errorf("balance = %v, want 100+50-30=120", got)
	}
}

func TestBalanceForNoTransactions(t *testing.T) {
	acc := domain.Account{Name: "Carteira", InitialBalance: 42.5}
	if got := service.BalanceFor(acc, nil); got != 42.5 {
		t.Errorf("balance = %v, want the initial balance", got)
	}
}

func TestAccountBalancesCoversEveryAccount(t *testing.T) {
	accounts := []domain.Account{
		{ID: "a1", Name: "Corrente", InitialBalance: 100},
		{ID: "a2", Name: "Poupança", InitialBalance: 200},
	}
	txs := []domain.Transaction{
		{Type: domain.TypeSaida, Amount: 40, Account: "Corrente"},
	}

	balances := service.AccountBalances(accounts, txs)
	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}
	if balances[0].Balance != 60 || balances[1].Balance != 200 {
		t.Errorf("balances = %v/%v, want 60/200", balances[0].Balance, balances[1].Balance)
	}
}

func TestBalancesCacheInvalidatedOnMutation(t *testing.T) {
	svc, _ := newTestService(t, "2025-07-15")
	ctx := context.Background()

	acc, err := svc.CreateAccount(ctx, &domain.Account{Name: "Corrente", InitialBalance: 100})
	if err != nil {
		t.Fatalf("CreateAccount: %v", err)
	}

	balances, err := svc.Balances(ctx)
	if err != nil {
		t.Fatalf("Balances: %v", err)
	}
	if balances[0].Balance != 100 {
		t.Fatalf("balance = %v, want 100", balances[0].Balance)
	}

	// a mutation through the service must drop the memoized result
	if _, err := svc.CreateTransaction(ctx, &domain.Transaction{
		Type: domain.TypeEntrada, Description: "Depósito", Amount: 50,
		Date: "2025-07-15", Account: "Corrente",
	}); err != nil {
		t.Fatalf("CreateTransaction: %v", err)
	}

	balances, err = svc.Balances(ctx)
	if err != nil {
		t.Fatalf("Balances: %v", err)
	}
	if balances[0].Balance != 150 {
		t.Errorf("balance after mutation = %v, want 150", balances[0].Balance)
	}
	if acc.ID == "" {
		t.Errorf("created account missing id")
	}
}
