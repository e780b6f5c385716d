// Package service provides the business logic layer (use cases).
// FinanceService handles accounts, transactions, credit cards,
// statements, recurrence, debts, goals and projections.
package service

import (
	"time"

	"github.com/meu-financeiro/core-api/internal/calendar"
	"github.com/meu-financeiro/core-api/internal/domain"
	"github.com/meu-financeiro/core-api/internal/infra/observability"
	"github.com/meu-financeiro/core-api/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var tracer = otel.Tracer("service/finance")

// balancesCacheKey is the single cache entry for current balances;
// any mutation that can move a balance drops it.
const balancesCacheKey = "balances"

// FinanceService orchestrates all finance operations via the store.
type FinanceService struct {
	store    port.FinanceStore
	balances port.Cache[[]domain.AccountBalance]
	metrics  *observability.Metrics
	logger   *zap.Logger
	now      func() time.Time
}

// NewFinanceService creates a new finance service.
func NewFinanceService(store port.FinanceStore, balances port.Cache[[]domain.AccountBalance], metrics *observability.Metrics, logger *zap.Logger) *FinanceService {
	return &FinanceService{
		store:    store,
		balances: balances,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// invalidateBalances drops the memoized balance set after a mutation.
func (s *FinanceService) invalidateBalances() {
	if s.balances != nil {
		s.balances.Delete(balancesCacheKey)
	}
}

// WithClock overrides the service clock. Used by tests to pin "today".
func (s *FinanceService) WithClock(now func() time.Time) *FinanceService {
	s.now = now
	return s
}

// today returns the current calendar day anchored at noon UTC, the
// same normalization applied to wire dates.
func (s *FinanceService) today() time.Time {
	y, m, d := s.now().UTC().Date()
	return calendar.ClampedDate(y, m, d)
}
