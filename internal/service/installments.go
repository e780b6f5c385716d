package service

import (
	"context"
	"fmt"

	"github.com/meu-financeiro/core-api/internal/calendar"
	"github.com/meu-financeiro/core-api/internal/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ============================================================
// Installment scheduler
// ============================================================

// SplitAmount divides total into n cents-exact parts. The remainder
// cents land on the first part so the parts always sum back to total.
func SplitAmount(total float64, n int) []float64 {
	if n <= 1 {
		return []float64{total}
	}
	d := decimal.NewFromFloat(total).Round(2)
	base := d.Div(decimal.NewFromInt(int64(n))).RoundDown(2)
	first := d.Sub(base.Mul(decimal.NewFromInt(int64(n - 1))))

	parts := make([]float64, n)
	parts[0], _ = first.Float64()
	for i := 1; i < n; i++ {
		parts[i], _ = base.Float64()
	}
	return parts
}

// BuildInstallmentPlan expands a charge into its installment records:
// n charges one month apart (day clamped), descriptions suffixed
// "(i/n)", all sharing groupID. With n == 1 the single charge carries
// no group or installment info.
func BuildInstallmentPlan(req *domain.CardChargeRequest, personID, groupID string, total float64, n int) ([]domain.CreditCardTransaction, error) {
	first, err := calendar.ParseDay(req.Date)
	if err != nil {
		return nil, &domain.ErrValidation{Field: "date", Message: err.Error()}
	}

	if n <= 1 {
		return []domain.CreditCardTransaction{{
			CardID:      req.CardID,
			Description: req.Description,
			Amount:      total,
			Date:        req.Date,
			PersonID:    personID,
			Category:    req.Category,
			Notes:       req.Notes,
			Paid:        false,
		}}, nil
	}

	amounts := SplitAmount(total, n)
	plan := make([]domain.CreditCardTransaction, 0, n)
	for i := 0; i < n; i++ {
		plan = append(plan, domain.CreditCardTransaction{
			CardID:      req.CardID,
			Description: fmt.Sprintf("%s (%d/%d)", req.Description, i+1, n),
			Amount:      amounts[i],
			Date:        calendar.FormatDay(calendar.AddMonths(first, i)),
			PersonID:    personID,
			Category:    req.Category,
			Notes:       req.Notes,
			Paid:        false,
			GroupID:     groupID,
			InstallmentInfo: &domain.InstallmentInfo{
				Current: i + 1,
				Total:   n,
			},
		})
	}
	return plan, nil
}

// ============================================================
// Card charge orchestration
// ============================================================

// CreateCardCharge validates the limit and creates the charge, its
// installment plan, or one plan per person when the purchase is split.
// The committed total is the financed total when installments add
// interest, the plain amount otherwise.
func (s *FinanceService) CreateCardCharge(ctx context.Context, req *domain.CardChargeRequest) ([]domain.CreditCardTransaction, error) {
	ctx, span := tracer.Start(ctx, "FinanceService.CreateCardCharge")
	defer span.End()
	span.SetAttributes(attribute.String("card.id", req.CardID))

	if req.Description == "" {
		return nil, &domain.ErrValidation{Field: "description", Message: "description is required"}
	}
	if req.Amount <= 0 {
		return nil, &domain.ErrValidation{Field: "amount", Message: "amount must be positive"}
	}
	n := req.Installments
	if n <= 0 {
		n = 1
	}

	total := req.Amount
	if n > 1 && req.TotalWithInterest > 0 {
		if req.TotalWithInterest < req.Amount {
			return nil, &domain.ErrValidation{Field: "total_with_interest", Message: "financed total cannot be below the purchase amount"}
		}
		total = req.TotalWithInterest
	}

	card, charges, err := s.loadCardWithCharges(ctx, req.CardID)
	if err != nil {
		return nil, err
	}

	limit := CardLimitStatus(card, charges)
	if total > limit.Available {
		return nil, &domain.ErrLimitExceeded{LimitType: "card_available", Limit: limit.Available, Current: total}
	}

	if req.PersonID != "" {
		if _, err := s.store.GetPerson(ctx, req.PersonID); err != nil {
			return nil, err
		}
	}

	shares, err := s.resolveShares(ctx, req, total)
	if err != nil {
		return nil, err
	}

	var created []domain.CreditCardTransaction
	for _, share := range shares {
		groupID := ""
		if n > 1 {
			groupID = uuid.NewString()
		}
		plan, err := BuildInstallmentPlan(req, share.personID, groupID, share.amount, n)
		if err != nil {
			return nil, err
		}
		for i := range plan {
			tx, err := s.store.CreateCardTransaction(ctx, &plan[i])
			if err != nil {
				return created, err
			}
			created = append(created, *tx)
		}
	}

	s.logger.Info("gasto no cartão lançado",
		zap.String("card", card.Name),
		zap.Float64("total", total),
		zap.Int("installments", n),
		zap.Int("charges", len(created)),
	)
	return created, nil
}

type chargeShare struct {
	personID string
	amount   float64
}

// resolveShares splits the total among the people named in SplitWith,
// creating unknown people on the fly. Without a split the full total
// goes to the request's person (or the card owner when unassigned).
func (s *FinanceService) resolveShares(ctx context.Context, req *domain.CardChargeRequest, total float64) ([]chargeShare, error) {
	if len(req.SplitWith) == 0 {
		return []chargeShare{{personID: req.PersonID, amount: total}}, nil
	}

	people, err := s.store.ListPeople(ctx)
	if err != nil {
		return nil, err
	}
	byName := make(map[string]string, len(people))
	for _, p := range people {
		byName[p.Name] = p.ID
	}

	parts := SplitAmount(total, len(req.SplitWith))
	shares := make([]chargeShare, 0, len(req.SplitWith))
	for i, name := range req.SplitWith {
		if name == "" {
			return nil, &domain.ErrValidation{Field: "split_with", Message: "person name cannot be empty"}
		}
		id, ok := byName[name]
		if !ok {
			created, err := s.store.CreatePerson(ctx, &domain.Person{Name: name})
			if err != nil {
				return nil, err
			}
			id = created.ID
			byName[name] = id
		}
		shares = append(shares, chargeShare{personID: id, amount: parts[i]})
	}
	return shares, nil
}
