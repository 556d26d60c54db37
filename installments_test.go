package cashflow

import (
	"errors"
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
)

func TestSplitInstallments(t *testing.T) {
	testCases := []struct {
		name  string
		total Money
		count int
		first string
		want  []Installment
	}{
		{
			name:  "remainder goes to the first installment",
			total: EUR(100),
			count: 3,
			first: "2025-01-15",
			want: []Installment{
				{1, EUR(33.34), day("2025-01-15")},
				{2, EUR(33.33), day("2025-02-15")},
				{3, EUR(33.33), day("2025-03-15")},
			},
		},
		{
			name:  "month end is clamped without drift",
			total: EUR(90),
			count: 3,
			first: "2025-01-31",
			want: []Installment{
				{1, EUR(30), day("2025-01-31")},
				{2, EUR(30), day("2025-02-28")},
				{3, EUR(30), day("2025-03-31")},
			},
		},
		{
			name:  "single installment",
			total: EUR(12.34),
			count: 1,
			first: "2025-06-01",
			want:  []Installment{{1, EUR(12.34), day("2025-06-01")}},
		},
		{
			name:  "zero total",
			total: EUR(0),
			count: 2,
			first: "2025-06-01",
			want:  []Installment{{1, EUR(0), day("2025-06-01")}, {2, EUR(0), day("2025-07-01")}},
		},
		{
			name:  "cents smaller than count",
			total: EUR(0.05),
			count: 7,
			first: "2025-11-30",
			want: []Installment{
				{1, EUR(0.05), day("2025-11-30")},
				{2, EUR(0), day("2025-12-30")},
				{3, EUR(0), day("2026-01-30")},
				{4, EUR(0), day("2026-02-28")},
				{5, EUR(0), day("2026-03-30")},
				{6, EUR(0), day("2026-04-30")},
				{7, EUR(0), day("2026-05-30")},
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SplitInstallments(tc.total, tc.count, day(tc.first))
			if err != nil {
				t.Fatalf("SplitInstallments() unexpected error: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("SplitInstallments() returned %d installments, want %d", len(got), len(tc.want))
			}
			for i := range got {
				if got[i].Number != tc.want[i].Number || !got[i].Amount.Equal(tc.want[i].Amount) || got[i].DueDate != tc.want[i].DueDate {
					t.Errorf("SplitInstallments()[%d] = %v %v %v, want %v %v %v", i,
						got[i].Number, got[i].Amount, got[i].DueDate,
						tc.want[i].Number, tc.want[i].Amount, tc.want[i].DueDate)
				}
			}
		})
	}
}

func TestSplitInstallments_Errors(t *testing.T) {
	testCases := []struct {
		name  string
		total Money
		count int
	}{
		{"zero count", EUR(100), 0},
		{"negative count", EUR(100), -2},
		{"negative total", EUR(-100), 2},
		{"too many decimals", EUR(10.005), 2},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := SplitInstallments(tc.total, tc.count, day("2025-01-01"))
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("SplitInstallments() error = %v, want %v", err, ErrInvalidInput)
			}
		})
	}
}

// The installments always sum to the total, whatever the count.
func TestSplitInstallments_Sum(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	for range 1000 {
		cents := rng.Int64N(10_000_000)
		total := M(decimal.New(cents, -2), "EUR")
		count := 1 + rng.IntN(48)
		parts, err := SplitInstallments(total, count, day("2024-01-31"))
		if err != nil {
			t.Fatalf("SplitInstallments(%v, %d) unexpected error: %v", total, count, err)
		}
		sum := EUR(0)
		for _, p := range parts {
			if !p.Amount.Scaled() {
				t.Fatalf("SplitInstallments(%v, %d) produced %v with more than 2 decimals", total, count, p.Amount.Decimal())
			}
			sum = sum.Add(p.Amount)
		}
		if !sum.Equal(total) {
			t.Fatalf("SplitInstallments(%v, %d) sums to %v", total, count, sum)
		}
	}
}

func TestInstallmentTransactions(t *testing.T) {
	card := Card{ID: "visa", ClosingDay: 10, DueDay: 20, DefaultAccountID: "bank"}
	purchase := Transaction{
		ID:          "tv",
		Kind:        Expense,
		Description: "TV",
		Amount:      EUR(-100),
		LaunchDate:  day("2025-03-12"),
		DueDate:     day("2025-03-12"),
		Status:      Pending,
		CategoryID:  "home",
	}
	got, err := InstallmentTransactions(purchase, 3, &card, seqIDs("tv"))
	if err != nil {
		t.Fatalf("InstallmentTransactions() unexpected error: %v", err)
	}
	want := []struct {
		id, invoice, desc string
		amount            Money
		due               string
	}{
		{"tv-1", "visa:2025-04", "TV (1/3)", EUR(-33.34), "2025-04-20"},
		{"tv-2", "visa:2025-05", "TV (2/3)", EUR(-33.33), "2025-05-20"},
		{"tv-3", "visa:2025-06", "TV (3/3)", EUR(-33.33), "2025-06-20"},
	}
	if len(got) != len(want) {
		t.Fatalf("InstallmentTransactions() returned %d transactions, want %d", len(got), len(want))
	}
	for i, w := range want {
		tx := got[i]
		if tx.ID != w.id || tx.InvoicePeriod != w.invoice || tx.Description != w.desc || !tx.Amount.Equal(w.amount) || tx.DueDate != day(w.due) {
			t.Errorf("InstallmentTransactions()[%d] = %s %s %q %v %v, want %s %s %q %v %s", i,
				tx.ID, tx.InvoicePeriod, tx.Description, tx.Amount, tx.DueDate,
				w.id, w.invoice, w.desc, w.amount, w.due)
		}
		if tx.SeriesID != "tv" || tx.Installment != i+1 || tx.Installments != 3 {
			t.Errorf("InstallmentTransactions()[%d] series = %s %d/%d, want tv %d/3", i, tx.SeriesID, tx.Installment, tx.Installments, i+1)
		}
		if tx.AccountID != "bank" || tx.CategoryID != "home" || tx.Status != Pending {
			t.Errorf("InstallmentTransactions()[%d] = account %q category %q status %s", i, tx.AccountID, tx.CategoryID, tx.Status)
		}
	}
	if purchase.InvoicePeriod != "" || purchase.ID != "tv" {
		t.Errorf("InstallmentTransactions() modified the purchase")
	}
}

func TestInstallmentTransactions_NoCard(t *testing.T) {
	purchase := income("course", 300, "2025-01-31")
	got, err := InstallmentTransactions(purchase, 2, nil, seqIDs("c"))
	if err != nil {
		t.Fatalf("InstallmentTransactions() unexpected error: %v", err)
	}
	if got[0].DueDate != day("2025-01-31") || got[1].DueDate != day("2025-02-28") {
		t.Errorf("InstallmentTransactions() due dates = %v, %v", got[0].DueDate, got[1].DueDate)
	}
	if !got[0].Amount.Equal(EUR(150)) || got[0].InvoicePeriod != "" {
		t.Errorf("InstallmentTransactions()[0] = %v %q, want 150 without invoice", got[0].Amount, got[0].InvoicePeriod)
	}
}
