package cashflow

import (
	"errors"
	"testing"
	"time"

	"github.com/etnz/cashflow/date"
)

func TestResolveInvoice(t *testing.T) {
	testCases := []struct {
		name   string
		card   Card
		on     string
		offset int
		want   string
	}{
		{"before closing day", Card{ID: "visa", ClosingDay: 10, DueDay: 20}, "2025-03-09", 0, "visa:2025-03"},
		{"on closing day", Card{ID: "visa", ClosingDay: 10, DueDay: 20}, "2025-03-10", 0, "visa:2025-04"},
		{"after closing day", Card{ID: "visa", ClosingDay: 10, DueDay: 20}, "2025-03-31", 0, "visa:2025-04"},
		{"year rollover", Card{ID: "visa", ClosingDay: 10, DueDay: 20}, "2025-12-15", 0, "visa:2026-01"},
		{"offset", Card{ID: "visa", ClosingDay: 10, DueDay: 20}, "2025-11-01", 3, "visa:2026-02"},
		{"closing day clamped in february", Card{ID: "amex", ClosingDay: 31, DueDay: 5}, "2025-02-27", 0, "amex:2025-02"},
		{"clamped closing day reached", Card{ID: "amex", ClosingDay: 31, DueDay: 5}, "2025-02-28", 0, "amex:2025-03"},
		{"clamped closing day in leap year", Card{ID: "amex", ClosingDay: 30, DueDay: 5}, "2024-02-29", 0, "amex:2024-03"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ResolveInvoice(tc.card, day(tc.on), tc.offset)
			if err != nil {
				t.Fatalf("ResolveInvoice() unexpected error: %v", err)
			}
			if got.String() != tc.want {
				t.Errorf("ResolveInvoice(%v, %d) = %v, want %v", tc.on, tc.offset, got, tc.want)
			}
		})
	}
}

func TestResolveInvoice_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		card   Card
		offset int
	}{
		{"closing day zero", Card{ID: "c", ClosingDay: 0, DueDay: 5}, 0},
		{"closing day 32", Card{ID: "c", ClosingDay: 32, DueDay: 5}, 0},
		{"due day zero", Card{ID: "c", ClosingDay: 5, DueDay: 0}, 0},
		{"negative offset", Card{ID: "c", ClosingDay: 5, DueDay: 15}, -1},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := ResolveInvoice(tc.card, day("2025-01-01"), tc.offset); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("ResolveInvoice() error = %v, want %v", err, ErrInvalidInput)
			}
		})
	}
}

// For a fixed card, invoices never go back in time as the purchase date moves forward.
func TestResolveInvoice_Monotonic(t *testing.T) {
	for closing := 1; closing <= 31; closing++ {
		card := Card{ID: "c", ClosingDay: closing, DueDay: 10}
		var prev InvoicePeriod
		for d := range date.NewRange(day("2023-12-01"), day("2025-03-31")).Days() {
			got, err := ResolveInvoice(card, d, 0)
			if err != nil {
				t.Fatalf("ResolveInvoice(%v) unexpected error: %v", d, err)
			}
			if got.Compare(prev) < 0 {
				t.Fatalf("closing day %d: ResolveInvoice(%v) = %v, before %v", closing, d, got, prev)
			}
			prev = got
		}
	}
}

func TestInvoicePeriod_Dates(t *testing.T) {
	testCases := []struct {
		name         string
		card         Card
		period       InvoicePeriod
		closing, due string
	}{
		{"due after closing", Card{ClosingDay: 10, DueDay: 20}, InvoicePeriod{"c", 2025, time.April}, "2025-04-10", "2025-04-20"},
		{"due before closing", Card{ClosingDay: 25, DueDay: 5}, InvoicePeriod{"c", 2025, time.December}, "2025-12-25", "2026-01-05"},
		{"clamped", Card{ClosingDay: 31, DueDay: 31}, InvoicePeriod{"c", 2025, time.January}, "2025-01-31", "2025-02-28"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.period.ClosingDate(tc.card); got != day(tc.closing) {
				t.Errorf("ClosingDate() = %v, want %v", got, tc.closing)
			}
			if got := tc.period.DueDate(tc.card); got != day(tc.due) {
				t.Errorf("DueDate() = %v, want %v", got, tc.due)
			}
		})
	}
}

func TestParseInvoicePeriod(t *testing.T) {
	got, err := ParseInvoicePeriod("my:card:2025-07")
	if err != nil {
		t.Fatalf("ParseInvoicePeriod() unexpected error: %v", err)
	}
	if want := (InvoicePeriod{"my:card", 2025, time.July}); got != want {
		t.Errorf("ParseInvoicePeriod() = %v, want %v", got, want)
	}
	for _, bad := range []string{"", "2025-07", "visa:2025-13", "visa:"} {
		if _, err := ParseInvoicePeriod(bad); !errors.Is(err, ErrInvalidInput) {
			t.Errorf("ParseInvoicePeriod(%q) error = %v, want %v", bad, err, ErrInvalidInput)
		}
	}
}

func TestGroupInvoices(t *testing.T) {
	cards := []Card{
		{ID: "visa", ClosingDay: 10, DueDay: 20},
		{ID: "amex", ClosingDay: 25, DueDay: 5},
	}
	onCard := func(tx Transaction, card, launch string) Transaction {
		tx.CardID = card
		tx.LaunchDate = day(launch)
		return tx
	}
	stored := onCard(expense("t4", 40, "2025-06-20"), "visa", "2025-03-01")
	stored.InvoicePeriod = "visa:2025-06"
	txs := []Transaction{
		onCard(expense("t1", 10, "2025-03-20"), "visa", "2025-03-02"),
		onCard(expense("t2", 20, "2025-04-20"), "visa", "2025-03-15"),
		paid(onCard(expense("t3", 30, "2025-03-20"), "visa", "2025-03-05"), "2025-03-20"),
		stored,
		onCard(income("refund", 5, "2025-04-05"), "amex", "2025-03-01"),
		expense("cash", 99, "2025-03-01"),
	}
	got, err := GroupInvoices(cards, txs)
	if err != nil {
		t.Fatalf("GroupInvoices() unexpected error: %v", err)
	}
	want := []struct {
		period             string
		total, outstanding Money
		n                  int
		due                string
	}{
		{"amex:2025-03", EUR(5), EUR(5), 1, "2025-04-05"},
		{"visa:2025-03", EUR(-40), EUR(-10), 2, "2025-03-20"},
		{"visa:2025-04", EUR(-20), EUR(-20), 1, "2025-04-20"},
		{"visa:2025-06", EUR(-40), EUR(-40), 1, "2025-06-20"},
	}
	if len(got) != len(want) {
		t.Fatalf("GroupInvoices() returned %d invoices, want %d", len(got), len(want))
	}
	for i, w := range want {
		inv := got[i]
		if inv.Period.String() != w.period || !inv.Total.Equal(w.total) || !inv.Outstanding.Equal(w.outstanding) || len(inv.Transactions) != w.n || inv.Due != day(w.due) {
			t.Errorf("GroupInvoices()[%d] = %v %v %v %d %v, want %v %v %v %d %v", i,
				inv.Period, inv.Total, inv.Outstanding, len(inv.Transactions), inv.Due,
				w.period, w.total, w.outstanding, w.n, w.due)
		}
	}

	if _, err := GroupInvoices(cards[1:], txs); !errors.Is(err, ErrNotFound) {
		t.Errorf("GroupInvoices() with unknown card error = %v, want %v", err, ErrNotFound)
	}
}
