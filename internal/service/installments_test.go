package service_test

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/meu-financeiro/core-api/internal/domain"
	"github.com/meu-financeiro/core-api/internal/service"
)

func TestSplitAmountExactDivision(t *testing.T) {
	parts := service.SplitAmount(300, 3)
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(parts))
	}
	for i, p := range parts {
		if p != 100 {
			t.Errorf("parts[%d] = %v, want 100", i, p)
		}
	}
}

func TestSplitAmountRemainderOnFirstPart(t *testing.T) {
	parts := service.SplitAmount(100, 3)
	if parts[0] != 33.34 || parts[1] != 33.33 || parts[2] != 33.33 {
		t.Errorf("got %v, want [33.34 33.33 33.33]", parts)
	}

	var sum float64
	for _, p := range parts {
		sum += p
	}
	if math.Abs(sum-100) > 1e-9 {
		t.Errorf("parts sum to %v, want 100", sum)
	}
}

func TestBuildInstallmentPlanSharesGroupAndDates(t *testing.T) {
	req := &domain.CardChargeRequest{
		CardID:      "cc1",
		Description: "Notebook",
		Date:        "2025-01-31",
		Category:    "Eletrônicos",
	}

	plan, err := service.BuildInstallmentPlan(req, "", "grp-1", 3000, 3)
	if err != nil {
		t.Fatalf("BuildInstallmentPlan: %v", err)
	}
	if len(plan) != 3 {
		t.Fatalf("got %d charges, want 3", len(plan))
	}

	wantDates := []string{"2025-01-31", "2025-02-28", "2025-03-31"}
	for i, tx := range plan {
		if tx.GroupID != "grp-1" {
			t.Errorf("plan[%d].GroupID = %q", i, tx.GroupID)
		}
		if tx.Date != wantDates[i] {
			t.Errorf("plan[%d].Date = %s, want %s", i, tx.Date, wantDates[i])
		}
		wantDesc := fmt.Sprintf("Notebook (%d/3)", i+1)
		if tx.Description != wantDesc {
			t.Errorf("plan[%d].Description = %q, want %q", i, tx.Description, wantDesc)
		}
		if tx.InstallmentInfo == nil || tx.InstallmentInfo.Current != i+1 || tx.InstallmentInfo.Total != 3 {
			t.Errorf("plan[%d].InstallmentInfo = %+v", i, tx.InstallmentInfo)
		}
		if tx.Paid {
			t.Errorf("plan[%d] created as paid", i)
		}
	}
}

func TestBuildInstallmentPlanSingleChargeHasNoGroup(t *testing.T) {
	req := &domain.CardChargeRequest{CardID: "cc1", Description: "Mercado", Date: "2025-07-10"}
	plan, err := service.BuildInstallmentPlan(req, "p1", "", 250, 1)
	if err != nil {
		t.Fatalf("BuildInstallmentPlan: %v", err)
	}
	if len(plan) != 1 {
		t.Fatalf("got %d charges, want 1", len(plan))
	}
	tx := plan[0]
	if tx.GroupID != "" || tx.InstallmentInfo != nil {
		t.Errorf("single charge carries installment metadata: %+v", tx)
	}
	if tx.Description != "Mercado" || tx.Amount != 250 || tx.PersonID != "p1" {
		t.Errorf("unexpected charge: %+v", tx)
	}
}

func TestCreateCardChargeRejectsOverLimit(t *testing.T) {
	svc, store := newTestService(t, "2025-07-15")
	ctx := context.Background()

	acc, _ := store.CreateAccount(ctx, &domain.Account{Name: "Corrente"})
	card, _ := store.CreateCreditCard(ctx, &domain.CreditCard{
		Name: "Click", Limit: 1000, ClosingDay: 20, DueDay: 28, AccountID: acc.ID,
	})
	// 800 already committed
	if _, err := store.CreateCardTransaction(ctx, &domain.CreditCardTransaction{
		CardID: card.ID, Description: "Compra antiga", Amount: 800, Date: "2025-07-01",
	}); err != nil {
		t.Fatalf("seed charge: %v", err)
	}

	_, err := svc.CreateCardCharge(ctx, &domain.CardChargeRequest{
		CardID: card.ID, Description: "Televisão", Amount: 300, Date: "2025-07-15", Category: "Eletrônicos",
	})
	var limitErr *domain.ErrLimitExceeded
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
}

func TestCreateCardChargeChecksFinancedTotalAgainstLimit(t *testing.T) {
	svc, store := newTestService(t, "2025-07-15")
	ctx := context.Background()

	acc, _ := store.CreateAccount(ctx, &domain.Account{Name: "Corrente"})
	card, _ := store.CreateCreditCard(ctx, &domain.CreditCard{
		Name: "Click", Limit: 1000, ClosingDay: 20, DueDay: 28, AccountID: acc.ID,
	})

	// 950 purchase financed to 1100 with interest: over the 1000 limit
	_, err := svc.CreateCardCharge(ctx, &domain.CardChargeRequest{
		CardID: card.ID, Description: "Celular", Amount: 950, TotalWithInterest: 1100,
		Date: "2025-07-15", Category: "Eletrônicos", Installments: 10,
	})
	var limitErr *domain.ErrLimitExceeded
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected ErrLimitExceeded on financed total, got %v", err)
	}
}

func TestCreateCardChargeInstallmentsPersisted(t *testing.T) {
	svc, store := newTestService(t, "2025-07-15")
	ctx := context.Background()

	acc, _ := store.CreateAccount(ctx, &domain.Account{Name: "Corrente"})
	card, _ := store.CreateCreditCard(ctx, &domain.CreditCard{
		Name: "Click", Limit: 5000, ClosingDay: 20, DueDay: 28, AccountID: acc.ID,
	})

	created, err := svc.CreateCardCharge(ctx, &domain.CardChargeRequest{
		CardID: card.ID, Description: "Sofá", Amount: 900,
		Date: "2025-07-10", Category: "Casa", Installments: 3,
	})
	if err != nil {
		t.Fatalf("CreateCardCharge: %v", err)
	}
	if len(created) != 3 {
		t.Fatalf("got %d charges, want 3", len(created))
	}

	group := created[0].GroupID
	if group == "" {
		t.Fatal("installments missing group id")
	}
	var sum float64
	for _, tx := range created {
		if tx.GroupID != group {
			t.Errorf("charge %s in different group", tx.ID)
		}
		sum += tx.Amount
	}
	if math.Abs(sum-900) > 1e-9 {
		t.Errorf("installments sum to %v, want 900", sum)
	}

	stored, _ := store.ListCardTransactionsByCard(ctx, card.ID)
	if len(stored) != 3 {
		t.Errorf("store holds %d charges, want 3", len(stored))
	}
}

func TestCreateCardChargeSplitCreatesPeople(t *testing.T) {
	svc, store := newTestService(t, "2025-07-15")
	ctx := context.Background()

	acc, _ := store.CreateAccount(ctx, &domain.Account{Name: "Corrente"})
	card, _ := store.CreateCreditCard(ctx, &domain.CreditCard{
		Name: "Click", Limit: 5000, ClosingDay: 20, DueDay: 28, AccountID: acc.ID,
	})
	ana, _ := store.CreatePerson(ctx, &domain.Person{Name: "Ana"})

	created, err := svc.CreateCardCharge(ctx, &domain.CardChargeRequest{
		CardID: card.ID, Description: "Jantar", Amount: 100,
		Date: "2025-07-10", Category: "Lazer", SplitWith: []string{"Ana", "Bruno"},
	})
	if err != nil {
		t.Fatalf("CreateCardCharge: %v", err)
	}
	if len(created) != 2 {
		t.Fatalf("got %d charges, want 2", len(created))
	}

	people, _ := store.ListPeople(ctx)
	if len(people) != 2 {
		t.Fatalf("store holds %d people, want 2 (Bruno created on the fly)", len(people))
	}

	var anaShare, brunoShare float64
	for _, tx := range created {
		if tx.PersonID == ana.ID {
			anaShare = tx.Amount
		} else {
			brunoShare = tx.Amount
		}
	}
	if anaShare != 50 || brunoShare != 50 {
		t.Errorf("shares = %v/%v, want 50/50", anaShare, brunoShare)
	}
}

func TestUpdateCardTransactionKeepsPaidAndPlan(t *testing.T) {
	svc, store := newTestService(t, "2025-07-15")
	ctx := context.Background()

	acc, _ := store.CreateAccount(ctx, &domain.Account{Name: "Corrente"})
	card, _ := store.CreateCreditCard(ctx, &domain.CreditCard{
		Name: "Click", Limit: 5000, ClosingDay: 20, DueDay: 28, AccountID: acc.ID,
	})
	charge, err := store.CreateCardTransaction(ctx, &domain.CreditCardTransaction{
		CardID: card.ID, Description: "Sofá (1/3)", Amount: 300, Date: "2025-07-10",
		Category: "Casa", Paid: true, GroupID: "g1",
		InstallmentInfo: &domain.InstallmentInfo{Current: 1, Total: 3},
	})
	if err != nil {
		t.Fatalf("seed charge: %v", err)
	}

	// the client sends the full record back with paid cleared and the
	// plan metadata stripped
	edited := *charge
	edited.Description = "Sofá retrátil (1/3)"
	edited.Paid = false
	edited.GroupID = ""
	edited.InstallmentInfo = nil

	updated, err := svc.UpdateCardTransaction(ctx, &edited)
	if err != nil {
		t.Fatalf("UpdateCardTransaction: %v", err)
	}
	if updated.Description != "Sofá retrátil (1/3)" {
		t.Errorf("description not updated: %q", updated.Description)
	}
	if !updated.Paid {
		t.Errorf("settled charge re-opened through update")
	}
	if updated.GroupID != "g1" {
		t.Errorf("group id lost: %q", updated.GroupID)
	}
	if updated.InstallmentInfo == nil || updated.InstallmentInfo.Current != 1 || updated.InstallmentInfo.Total != 3 {
		t.Errorf("installment info lost: %+v", updated.InstallmentInfo)
	}

	stored, _ := store.GetCardTransaction(ctx, charge.ID)
	if !stored.Paid {
		t.Errorf("stored charge flipped to unpaid")
	}
}
