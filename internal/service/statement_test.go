package service_test

import (
	"testing"
	"time"

	"github.com/meu-financeiro/core-api/internal/calendar"
	"github.com/meu-financeiro/core-api/internal/domain"
	"github.com/meu-financeiro/core-api/internal/service"
)

func day(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := calendar.ParseDay(s)
	if err != nil {
		t.Fatalf("ParseDay(%s): %v", s, err)
	}
	return d
}

func TestStatementMonthRollsAfterClosingDay(t *testing.T) {
	tests := []struct {
		name       string
		chargeDate string
		closingDay int
		wantYear   int
		wantMonth  time.Month
	}{
		{"on the closing day stays", "2025-07-20", 20, 2025, time.July},
		{"day after rolls to next month", "2025-07-21", 20, 2025, time.August},
		{"december rolls into next year", "2025-12-28", 20, 2026, time.January},
		{"well before closing stays", "2025-07-01", 20, 2025, time.July},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			y, m := service.StatementMonth(day(t, tc.chargeDate), tc.closingDay)
			if y != tc.wantYear || m != tc.wantMonth {
				t.Errorf("got %d-%v, want %d-%v", y, m, tc.wantYear, tc.wantMonth)
			}
		})
	}
}

func TestStatementBoundsAreHalfOpen(t *testing.T) {
	start, end := service.StatementBounds(2025, time.August, 20)

	// a charge exactly on the previous closing day belongs to July
	if day(t, "2025-07-20").After(start) {
		t.Errorf("charge on previous closing day leaked into August window")
	}
	// the day after the previous closing opens the August window
	if !day(t, "2025-07-21").After(start) {
		t.Errorf("first day of window excluded")
	}
	// the August closing day itself is included
	if day(t, "2025-08-20").After(end) {
		t.Errorf("closing day excluded from window")
	}
	if !day(t, "2025-08-21").After(end) {
		t.Errorf("day after closing included in window")
	}
}

func TestStatementBoundsContiguousAcrossShortMonths(t *testing.T) {
	// closing days past February's length clamp to Feb 28/29; the next
	// window must still start exactly where the previous one ended
	for _, closingDay := range []int{29, 30, 31} {
		_, janEnd := service.StatementBounds(2024, time.January, closingDay)
		febStart, febEnd := service.StatementBounds(2024, time.February, closingDay)
		marStart, _ := service.StatementBounds(2024, time.March, closingDay)

		if !febStart.Equal(janEnd) {
			t.Errorf("closingDay=%d: february starts %v, january ends %v", closingDay, febStart, janEnd)
		}
		if !marStart.Equal(febEnd) {
			t.Errorf("closingDay=%d: march starts %v, february ends %v", closingDay, marStart, febEnd)
		}
	}
}

func TestBuildStatementShortMonthChargeBilledOnce(t *testing.T) {
	card := &domain.CreditCard{ID: "cc1", ClosingDay: 31, DueDay: 10}
	charges := []domain.CreditCardTransaction{
		{ID: "t1", CardID: "cc1", Amount: 100, Date: "2024-01-30"},
	}

	jan, err := service.BuildStatement(card, charges, nil, 2024, time.January)
	if err != nil {
		t.Fatalf("BuildStatement(january): %v", err)
	}
	if len(jan.Items) != 1 || jan.Total != 100 {
		t.Errorf("january: total=%v items=%d, want 100/1", jan.Total, len(jan.Items))
	}

	feb, err := service.BuildStatement(card, charges, nil, 2024, time.February)
	if err != nil {
		t.Fatalf("BuildStatement(february): %v", err)
	}
	if len(feb.Items) != 0 {
		t.Errorf("charge of 2024-01-30 billed again on the february statement")
	}
}

func TestStatementDueDateFallsNextMonthWhenBeforeClosing(t *testing.T) {
	cardLateDue := &domain.CreditCard{ClosingDay: 20, DueDay: 28}
	if got := service.StatementDueDate(cardLateDue, 2025, time.July); calendar.FormatDay(got) != "2025-07-28" {
		t.Errorf("due after closing: got %s, want 2025-07-28", calendar.FormatDay(got))
	}

	cardEarlyDue := &domain.CreditCard{ClosingDay: 25, DueDay: 4}
	if got := service.StatementDueDate(cardEarlyDue, 2025, time.July); calendar.FormatDay(got) != "2025-08-04" {
		t.Errorf("due before closing: got %s, want 2025-08-04", calendar.FormatDay(got))
	}
}

func TestBuildStatementTotalsAndPeriod(t *testing.T) {
	card := &domain.CreditCard{ID: "cc1", Name: "Click", ClosingDay: 20, DueDay: 28}
	charges := []domain.CreditCardTransaction{
		{ID: "t1", CardID: "cc1", Amount: 50, Date: "2025-07-15"},  // July statement
		{ID: "t2", CardID: "cc1", Amount: 30, Date: "2025-07-21"},  // August statement
		{ID: "t3", CardID: "cc1", Amount: 100, Date: "2025-08-20"}, // August statement
		{ID: "t4", CardID: "other", Amount: 999, Date: "2025-08-01"},
	}

	july, err := service.BuildStatement(card, charges, nil, 2025, time.July)
	if err != nil {
		t.Fatalf("BuildStatement(july): %v", err)
	}
	if july.Total != 50 || len(july.Items) != 1 {
		t.Errorf("july: total=%v items=%d, want 50/1", july.Total, len(july.Items))
	}

	august, err := service.BuildStatement(card, charges, nil, 2025, time.August)
	if err != nil {
		t.Fatalf("BuildStatement(august): %v", err)
	}
	if august.Total != 130 || len(august.Items) != 2 {
		t.Errorf("august: total=%v items=%d, want 130/2", august.Total, len(august.Items))
	}
	if august.ClosingDate != "2025-08-20" || august.DueDate != "2025-08-28" {
		t.Errorf("august dates: closing=%s due=%s", august.ClosingDate, august.DueDate)
	}
}

func TestBuildStatementPerPersonBreakdown(t *testing.T) {
	card := &domain.CreditCard{ID: "cc1", ClosingDay: 20, DueDay: 28}
	people := []domain.Person{{ID: "p1", Name: "Ana"}}
	charges := []domain.CreditCardTransaction{
		{ID: "t1", CardID: "cc1", Amount: 80, Date: "2025-07-10", PersonID: "p1"},
		{ID: "t2", CardID: "cc1", Amount: 40, Date: "2025-07-12"},
		{ID: "t3", CardID: "cc1", Amount: 20, Date: "2025-07-13", PersonID: "p1"},
	}

	stmt, err := service.BuildStatement(card, charges, people, 2025, time.July)
	if err != nil {
		t.Fatalf("BuildStatement: %v", err)
	}
	if len(stmt.ByPerson) != 2 {
		t.Fatalf("got %d shares, want 2", len(stmt.ByPerson))
	}
	if stmt.ByPerson[0].PersonName != "Ana" || stmt.ByPerson[0].Total != 100 {
		t.Errorf("largest share: %+v", stmt.ByPerson[0])
	}
	if stmt.ByPerson[1].PersonName != "Titular" || stmt.ByPerson[1].Total != 40 {
		t.Errorf("owner share: %+v", stmt.ByPerson[1])
	}
}

func TestBuildStatementPaidFlag(t *testing.T) {
	card := &domain.CreditCard{ID: "cc1", ClosingDay: 20, DueDay: 28}

	empty, err := service.BuildStatement(card, nil, nil, 2025, time.July)
	if err != nil {
		t.Fatalf("BuildStatement: %v", err)
	}
	if empty.Paid {
		t.Errorf("empty statement reported as paid")
	}

	allPaid := []domain.CreditCardTransaction{
		{ID: "t1", CardID: "cc1", Amount: 10, Date: "2025-07-10", Paid: true},
		{ID: "t2", CardID: "cc1", Amount: 20, Date: "2025-07-11", Paid: true},
	}
	stmt, err := service.BuildStatement(card, allPaid, nil, 2025, time.July)
	if err != nil {
		t.Fatalf("BuildStatement: %v", err)
	}
	if !stmt.Paid {
		t.Errorf("fully settled statement not reported as paid")
	}

	allPaid[1].Paid = false
	stmt, _ = service.BuildStatement(card, allPaid, nil, 2025, time.July)
	if stmt.Paid {
		t.Errorf("statement with open charge reported as paid")
	}
}

func TestStatementMonthsNewestFirst(t *testing.T) {
	card := &domain.CreditCard{ID: "cc1", ClosingDay: 20, DueDay: 28}
	charges := []domain.CreditCardTransaction{
		{ID: "t1", CardID: "cc1", Amount: 10, Date: "2025-05-10"},
		{ID: "t2", CardID: "cc1", Amount: 10, Date: "2025-07-25"}, // rolls to August
		{ID: "t3", CardID: "cc1", Amount: 10, Date: "2025-07-01"},
	}

	months, err := service.StatementMonths(card, charges)
	if err != nil {
		t.Fatalf("StatementMonths: %v", err)
	}
	want := []string{"2025-08", "2025-07", "2025-05"}
	if len(months) != len(want) {
		t.Fatalf("got %v, want %v", months, want)
	}
	for i := range want {
		if months[i] != want[i] {
			t.Errorf("months[%d] = %s, want %s", i, months[i], want[i])
		}
	}
}

func TestCardLimitStatusCountsUnpaidOnly(t *testing.T) {
	card := &domain.CreditCard{ID: "cc1", Limit: 1000}
	charges := []domain.CreditCardTransaction{
		{CardID: "cc1", Amount: 200, Paid: false},
		{CardID: "cc1", Amount: 300, Paid: true},
		{CardID: "cc1", Amount: 100, Paid: false},
		{CardID: "cc2", Amount: 500, Paid: false},
	}

	status := service.CardLimitStatus(card, charges)
	if status.Used != 300 {
		t.Errorf("used = %v, want 300", status.Used)
	}
	if status.Available != 700 {
		t.Errorf("available = %v, want 700", status.Available)
	}
}
