package service

import (
	"context"

	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// BalanceFor folds an account's initial balance with every transaction
// whose account name matches. Entrada adds, Saída subtracts.
// Transactions referencing other accounts are ignored.
func BalanceFor(acc domain.Account, txs []domain.Transaction) float64 {
	balance := acc.InitialBalance
	for _, t := range txs {
		if t.Account != acc.Name {
			continue
		}
		if t.Type == domain.TypeEntrada {
			balance += t.Amount
		} else {
			balance -= t.Amount
		}
	}
	return balance
}

// AccountBalances computes the current balance of every account.
func AccountBalances(accounts []domain.Account, txs []domain.Transaction) []domain.AccountBalance {
	out := make([]domain.AccountBalance, 0, len(accounts))
	for _, acc := range accounts {
		out = append(out, domain.AccountBalance{
			AccountID: acc.ID,
			Name:      acc.Name,
			Balance:   BalanceFor(acc, txs),
		})
	}
	return out
}

// Balances returns current balances for all accounts. The result is
// memoized until the next mutation.
func (s *FinanceService) Balances(ctx context.Context) ([]domain.AccountBalance, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.Balances")
	defer span.End()

	if s.balances != nil {
		if cached, ok := s.balances.Get(balancesCacheKey); ok {
			s.metrics.IncrCacheHit("balances")
			return cached, nil
		}
		s.metrics.IncrCacheMiss("balances")
	}

	accounts, txs, err := s.loadAccountsAndTransactions(ctx)
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.Int("accounts.count", len(accounts)))

	result := AccountBalances(accounts, txs)
	if s.balances != nil {
		s.balances.Set(balancesCacheKey, result)
	}
	return result, nil
}

// loadAccountsAndTransactions fetches both record sets concurrently.
func (s *FinanceService) loadAccountsAndTransactions(ctx context.Context) ([]domain.Account, []domain.Transaction, error) {
	var (
		accounts []domain.Account
		txs      []domain.Transaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		accounts, err = s.store.ListAccounts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		txs, err = s.store.ListTransactions(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return accounts, txs, nil
}
