package service

import (
	"context"
	"sort"
	"time"

	"github.com/meu-financeiro/core-api/internal/calendar"
	"github.com/meu-financeiro/core-api/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ============================================================
// Statement cycle resolver
//
// A statement is keyed by the month its closing date falls in.
// Charges dated after the closing day roll into the next month's
// statement. The period for month M is the half-open window
// (closing of M-1, closing of M], bounds taken at end of day.
// ============================================================

// StatementMonth returns the statement (year, month) a charge dated
// chargeDay belongs to for a card closing on closingDay.
func StatementMonth(chargeDay time.Time, closingDay int) (int, time.Month) {
	y, m, d := chargeDay.Date()
	if d > closingDay {
		next := calendar.AddMonths(calendar.ClampedDate(y, m, 1), 1)
		return next.Year(), next.Month()
	}
	return y, m
}

// StatementBounds returns the charge window of the statement closing
// in (year, month): start is exclusive (previous closing, end of day),
// end is inclusive (this closing, end of day). The previous closing is
// the closing day clamped into the previous calendar month, never a
// month step from the clamped closing date, so consecutive windows
// stay contiguous around short months.
func StatementBounds(year int, month time.Month, closingDay int) (start, end time.Time) {
	closing := calendar.ClampedDate(year, month, closingDay)
	prev := calendar.AddMonths(calendar.ClampedDate(year, month, 1), -1)
	prevClosing := calendar.ClampedDate(prev.Year(), prev.Month(), closingDay)
	return calendar.EndOfDay(prevClosing), calendar.EndOfDay(closing)
}

// StatementDueDate returns when the statement closing in (year, month)
// must be paid. When the due day precedes the closing day the payment
// falls in the following month.
func StatementDueDate(card *domain.CreditCard, year int, month time.Month) time.Time {
	due := calendar.ClampedDate(year, month, card.DueDay)
	if card.DueDay < card.ClosingDay {
		due = calendar.AddMonths(due, 1)
	}
	return due
}

// chargeInStatement reports whether a charge belongs to the statement
// window. Charge dates are noon-anchored, so the end-of-day bounds make
// the previous closing day exclusive and this closing day inclusive.
func chargeInStatement(chargeDay, start, end time.Time) bool {
	return chargeDay.After(start) && !chargeDay.After(end)
}

// BuildStatement resolves one card's statement for the given month:
// period bounds, item list, total, per-person breakdown and paid flag.
// Charges with no assigned person accumulate into the card owner's
// share.
func BuildStatement(card *domain.CreditCard, charges []domain.CreditCardTransaction, people []domain.Person, year int, month time.Month) (*domain.Statement, error) {
	start, end := StatementBounds(year, month, card.ClosingDay)
	closing := calendar.ClampedDate(year, month, card.ClosingDay)
	due := StatementDueDate(card, year, month)

	personName := make(map[string]string, len(people))
	for _, p := range people {
		personName[p.ID] = p.Name
	}

	var (
		items  []domain.CreditCardTransaction
		total  float64
		shares = map[string]float64{}
	)
	for _, tx := range charges {
		if tx.CardID != card.ID {
			continue
		}
		day, err := calendar.ParseDay(tx.Date)
		if err != nil {
			return nil, &domain.ErrValidation{Field: "date", Message: err.Error()}
		}
		if !chargeInStatement(day, start, end) {
			continue
		}
		items = append(items, tx)
		total += tx.Amount
		shares[tx.PersonID] += tx.Amount
	}

	sort.Slice(items, func(i, j int) bool { return items[i].Date > items[j].Date })

	byPerson := make([]domain.PersonShare, 0, len(shares))
	for id, amount := range shares {
		name := personName[id]
		if id == "" {
			name = "Titular"
		}
		byPerson = append(byPerson, domain.PersonShare{PersonID: id, PersonName: name, Total: amount})
	}
	sort.Slice(byPerson, func(i, j int) bool { return byPerson[i].Total > byPerson[j].Total })

	paid := len(items) > 0
	for _, tx := range items {
		if !tx.Paid {
			paid = false
			break
		}
	}

	return &domain.Statement{
		CardID:      card.ID,
		Month:       calendar.MonthKey(closing),
		PeriodStart: calendar.FormatDay(start),
		PeriodEnd:   calendar.FormatDay(end),
		ClosingDate: calendar.FormatDay(closing),
		DueDate:     calendar.FormatDay(due),
		Total:       total,
		Paid:        paid,
		Items:       items,
		ByPerson:    byPerson,
	}, nil
}

// StatementMonths lists every month (YYYY-MM, newest first) that has at
// least one charge for the card.
func StatementMonths(card *domain.CreditCard, charges []domain.CreditCardTransaction) ([]string, error) {
	seen := map[string]bool{}
	for _, tx := range charges {
		if tx.CardID != card.ID {
			continue
		}
		day, err := calendar.ParseDay(tx.Date)
		if err != nil {
			return nil, &domain.ErrValidation{Field: "date", Message: err.Error()}
		}
		y, m := StatementMonth(day, card.ClosingDay)
		seen[calendar.MonthKey(calendar.ClampedDate(y, m, 1))] = true
	}
	months := make([]string, 0, len(seen))
	for k := range seen {
		months = append(months, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(months)))
	return months, nil
}

// CardLimitStatus computes the committed and available limit. Every
// unpaid charge counts, regardless of which statement it falls in.
func CardLimitStatus(card *domain.CreditCard, charges []domain.CreditCardTransaction) domain.CardLimitStatus {
	var used float64
	for _, tx := range charges {
		if tx.CardID == card.ID && !tx.Paid {
			used += tx.Amount
		}
	}
	return domain.CardLimitStatus{
		CardID:    card.ID,
		Limit:     card.Limit,
		Used:      used,
		Available: card.Limit - used,
	}
}

// ============================================================
// Statement orchestration
// ============================================================

func (s *FinanceService) loadCardWithCharges(ctx context.Context, cardID string) (*domain.CreditCard, []domain.CreditCardTransaction, error) {
	var (
		card    *domain.CreditCard
		charges []domain.CreditCardTransaction
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		card, err = s.store.GetCreditCard(gctx, cardID)
		return err
	})
	g.Go(func() error {
		var err error
		charges, err = s.store.ListCardTransactionsByCard(gctx, cardID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return card, charges, nil
}

// GetStatement resolves a card's statement for a YYYY-MM month key.
func (s *FinanceService) GetStatement(ctx context.Context, cardID, monthKey string) (*domain.Statement, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetStatement")
	defer span.End()
	span.SetAttributes(attribute.String("card.id", cardID), attribute.String("statement.month", monthKey))

	year, month, err := calendar.ParseMonthKey(monthKey)
	if err != nil {
		return nil, &domain.ErrValidation{Field: "month", Message: err.Error()}
	}

	card, charges, err := s.loadCardWithCharges(ctx, cardID)
	if err != nil {
		return nil, err
	}

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, err
	}

	return BuildStatement(card, charges, people, year, month)
}

// GetStatementMonths lists the card's months with charges, newest first.
func (s *FinanceService) GetStatementMonths(ctx context.Context, cardID string) ([]string, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetStatementMonths")
	defer span.End()

	card, charges, err := s.loadCardWithCharges(ctx, cardID)
	if err != nil {
		return nil, err
	}
	return StatementMonths(card, charges)
}

// GetCardLimit reports the card's committed and available limit.
func (s *FinanceService) GetCardLimit(ctx context.Context, cardID string) (*domain.CardLimitStatus, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.GetCardLimit")
	defer span.End()

	card, charges, err := s.loadCardWithCharges(ctx, cardID)
	if err != nil {
		return nil, err
	}
	status := CardLimitStatus(card, charges)
	return &status, nil
}

// PayStatement marks every charge in the statement as paid and posts a
// single expense on the card's debit account. Paying an empty or
// already settled statement is rejected.
func (s *FinanceService) PayStatement(ctx context.Context, cardID, monthKey string) (*domain.Transaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.PayStatement")
	defer span.End()
	span.SetAttributes(attribute.String("card.id", cardID), attribute.String("statement.month", monthKey))

	stmt, err := s.GetStatement(ctx, cardID, monthKey)
	if err != nil {
		return nil, err
	}
	if len(stmt.Items) == 0 {
		return nil, &domain.ErrValidation{Field: "month", Message: "statement has no charges"}
	}
	if stmt.Paid {
		return nil, &domain.ErrValidation{Field: "month", Message: "statement already paid"}
	}

	card, err := s.store.GetCreditCard(ctx, cardID)
	if err != nil {
		return nil, err
	}
	account, err := s.store.GetAccount(ctx, card.AccountID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(stmt.Items))
	for _, tx := range stmt.Items {
		ids = append(ids, tx.ID)
	}
	if err := s.store.MarkCardTransactionsPaid(ctx, ids); err != nil {
		return nil, err
	}

	payment := &domain.Transaction{
		Type:        domain.TypeSaida,
		Description: "Pagamento Fatura " + card.Name,
		Amount:      stmt.Total,
		Date:        calendar.FormatDay(s.today()),
		Account:     account.Name,
		Category:    domain.CategoryStatementPayment,
	}
	created, err := s.store.CreateTransaction(ctx, payment)
	if err != nil {
		return nil, err
	}
	s.invalidateBalances()

	s.logger.Info("fatura paga",
		zap.String("card", card.Name),
		zap.String("month", monthKey),
		zap.Float64("total", stmt.Total),
	)
	return created, nil
}
