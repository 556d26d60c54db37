package cashflow

import (
	"errors"
	"testing"

	"github.com/etnz/cashflow/date"
)

// newTestBook returns a book with two accounts and three categories.
func newTestBook(txs ...Transaction) *Book {
	b := NewBook()
	b.AddAccount(
		Account{ID: "bank", OpeningBalance: EUR(1000)},
		Account{ID: "savings", OpeningBalance: EUR(5000)},
	)
	b.AddCategory(
		Category{ID: "salary", Class: Operational},
		Category{ID: "equipment", Class: Investment},
		Category{ID: "loan", Class: Financing},
	)
	b.Append(txs...)
	return b
}

func TestNewStatement_Month(t *testing.T) {
	b := newTestBook(
		paid(income("sale", 500, "2025-03-10"), "2025-03-12"),
		expense("supplier", 200, "2025-03-20"),
	)
	testCases := []struct {
		name      string
		today     string
		projected bool
	}{
		{"month has passed", "2025-04-01", false},
		{"month in progress", "2025-03-15", true},
		{"month ends today", "2025-03-31", true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			st, err := NewStatement(b, StatementOptions{
				Range:       date.NewRange(day("2025-03-01"), day("2025-03-31")),
				Granularity: date.Monthly,
				Today:       day(tc.today),
			})
			if err != nil {
				t.Fatalf("NewStatement() unexpected error: %v", err)
			}
			if len(st.Buckets) != 1 {
				t.Fatalf("NewStatement() returned %d buckets, want 1", len(st.Buckets))
			}
			bk := st.Buckets[0]
			if !bk.Net.Equal(EUR(300)) || !bk.Income.Equal(EUR(500)) || !bk.Expense.Equal(EUR(200)) {
				t.Errorf("bucket = income %v expense %v net %v, want 500 200 300", bk.Income, bk.Expense, bk.Net)
			}
			if bk.Projected != tc.projected {
				t.Errorf("bucket.Projected = %v, want %v", bk.Projected, tc.projected)
			}
			if bk.Label != "2025-03" {
				t.Errorf("bucket.Label = %q, want 2025-03", bk.Label)
			}
		})
	}
}

func TestNewStatement_RunningBalance(t *testing.T) {
	b := newTestBook(
		paid(income("old", 100, "2024-12-20"), "2024-12-20"),
		expense("overdue", 40, "2024-12-28"), // pending before the range: not in the baseline
		paid(expense("jan", 300, "2025-01-15"), "2025-01-16"),
		income("feb", 50, "2025-02-01"),
		expense("apr", 25, "2025-04-30"),
		paid(expense("late", 10, "2025-01-05"), "2025-02-02"), // effective on its payment date
	)
	st, err := NewStatement(b, StatementOptions{
		Range:       date.NewRange(day("2025-01-01"), day("2025-04-30")),
		Granularity: date.Monthly,
		Today:       day("2025-02-15"),
	})
	if err != nil {
		t.Fatalf("NewStatement() unexpected error: %v", err)
	}
	if want := EUR(6100); !st.Baseline.Equal(want) {
		t.Errorf("Baseline = %v, want %v", st.Baseline, want)
	}
	want := []struct {
		label            string
		net, open, close Money
		projected        bool
	}{
		{"2025-01", EUR(-300), EUR(6100), EUR(5800), false},
		{"2025-02", EUR(40), EUR(5800), EUR(5840), true},
		{"2025-03", EUR(0), EUR(5840), EUR(5840), true},
		{"2025-04", EUR(-25), EUR(5840), EUR(5815), true},
	}
	if len(st.Buckets) != len(want) {
		t.Fatalf("NewStatement() returned %d buckets, want %d", len(st.Buckets), len(want))
	}
	for i, w := range want {
		bk := st.Buckets[i]
		if bk.Label != w.label || !bk.Net.Equal(w.net) || !bk.Opening.Equal(w.open) || !bk.Closing.Equal(w.close) || bk.Projected != w.projected {
			t.Errorf("bucket[%d] = %s net %v %v→%v projected %v, want %s net %v %v→%v projected %v", i,
				bk.Label, bk.Net, bk.Opening, bk.Closing, bk.Projected,
				w.label, w.net, w.open, w.close, w.projected)
		}
	}
	if !st.Total.Net.Equal(EUR(-285)) || !st.Total.Closing.Equal(EUR(5815)) || st.Total.Count != 4 {
		t.Errorf("Total = net %v closing %v count %d, want -285 5815 4", st.Total.Net, st.Total.Closing, st.Total.Count)
	}
}

func TestNewStatement_Granularity(t *testing.T) {
	b := newTestBook(
		income("a", 10, "2025-01-30"),
		income("b", 20, "2025-01-31"),
		income("c", 40, "2025-02-01"),
	)
	testCases := []struct {
		period date.Period
		labels []string
	}{
		{date.Daily, []string{"2025-01-30", "2025-01-31", "2025-02-01"}},
		{date.Monthly, []string{"2025-01", "2025-02"}},
		{date.Yearly, []string{"2025"}},
	}
	for _, tc := range testCases {
		t.Run(tc.period.String(), func(t *testing.T) {
			st, err := NewStatement(b, StatementOptions{
				Range:       date.NewRange(day("2025-01-30"), day("2025-02-01")),
				Granularity: tc.period,
				Today:       day("2025-01-01"),
			})
			if err != nil {
				t.Fatalf("NewStatement() unexpected error: %v", err)
			}
			var labels []string
			for _, bk := range st.Buckets {
				labels = append(labels, bk.Label)
			}
			if len(labels) != len(tc.labels) {
				t.Fatalf("labels = %v, want %v", labels, tc.labels)
			}
			for i := range labels {
				if labels[i] != tc.labels[i] {
					t.Errorf("labels = %v, want %v", labels, tc.labels)
				}
			}
			if got := st.Buckets[len(st.Buckets)-1].Closing; !got.Equal(EUR(6070)) {
				t.Errorf("closing = %v, want 6070", got)
			}
			// clipped to the requested range
			if got := st.Buckets[0].Range.From; got != day("2025-01-30") {
				t.Errorf("first bucket starts %v, want 2025-01-30", got)
			}
		})
	}
}

func TestNewStatement_AccountFilter(t *testing.T) {
	save := Transaction{ID: "save", Kind: Transfer, Amount: EUR(-300), DueDate: day("2025-03-10"),
		Status: Pending, AccountID: "bank", DestinationAccountID: "savings"}
	b := newTestBook(
		paid(income("salary", 2000, "2025-03-01"), "2025-03-01"),
		save,
	)
	opts := StatementOptions{
		Range:       date.NewRange(day("2025-03-01"), day("2025-03-31")),
		Granularity: date.Monthly,
		Today:       day("2025-03-15"),
	}
	testCases := []struct {
		name      string
		accounts  []string
		transfers Money
		closing   Money
	}{
		{"all accounts", nil, EUR(0), EUR(8000)},
		{"bank only", []string{"bank"}, EUR(-300), EUR(2700)},
		{"savings only", []string{"savings"}, EUR(300), EUR(5300)},
		{"both accounts", []string{"bank", "savings"}, EUR(0), EUR(8000)},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			opts.Accounts = tc.accounts
			st, err := NewStatement(b, opts)
			if err != nil {
				t.Fatalf("NewStatement() unexpected error: %v", err)
			}
			bk := st.Buckets[0]
			if !bk.Transfers.Equal(tc.transfers) || !bk.Closing.Equal(tc.closing) {
				t.Errorf("bucket = transfers %v closing %v, want %v %v", bk.Transfers, bk.Closing, tc.transfers, tc.closing)
			}
		})
	}
}

func TestNewStatement_CostCenterFilter(t *testing.T) {
	shop := expense("shop", 100, "2025-03-05")
	shop.CostCenterID = "store"
	b := newTestBook(shop, expense("home", 50, "2025-03-05"))
	st, err := NewStatement(b, StatementOptions{
		Range:       date.NewRange(day("2025-03-01"), day("2025-03-31")),
		Granularity: date.Monthly,
		CostCenters: []string{"store"},
		Today:       day("2025-03-15"),
	})
	if err != nil {
		t.Fatalf("NewStatement() unexpected error: %v", err)
	}
	if got := st.Buckets[0].Expense; !got.Equal(EUR(100)) {
		t.Errorf("Expense = %v, want 100", got)
	}
}

func TestNewStatement_Direct(t *testing.T) {
	with := func(tx Transaction, category string) Transaction { tx.CategoryID = category; return tx }
	b := newTestBook(
		with(income("pay", 3000, "2025-03-01"), "salary"),
		with(expense("laptop", 1200, "2025-03-03"), "equipment"),
		with(income("credit", 5000, "2025-03-04"), "loan"),
		with(expense("repay", 400, "2025-03-20"), "loan"),
		with(expense("misc", 30, "2025-03-21"), "unknown"),
	)
	st, err := NewStatement(b, StatementOptions{
		Range:       date.NewRange(day("2025-03-01"), day("2025-03-31")),
		Granularity: date.Monthly,
		Method:      Direct,
		Today:       day("2025-03-15"),
	})
	if err != nil {
		t.Fatalf("NewStatement() unexpected error: %v", err)
	}
	bk := st.Buckets[0]
	if !bk.Operating.Equal(EUR(2970)) || !bk.Investing.Equal(EUR(-1200)) || !bk.Financing.Equal(EUR(4600)) {
		t.Errorf("bucket = operating %v investing %v financing %v, want 2970 -1200 4600", bk.Operating, bk.Investing, bk.Financing)
	}
	if sum := bk.Operating.Add(bk.Investing).Add(bk.Financing); !sum.Equal(bk.Net) {
		t.Errorf("classes sum to %v, want net %v", sum, bk.Net)
	}
}

func TestNewStatement_Errors(t *testing.T) {
	b := newTestBook()
	testCases := []struct {
		name string
		opts StatementOptions
		want error
	}{
		{"missing range", StatementOptions{Granularity: date.Monthly}, ErrInvalidInput},
		{"bad granularity", StatementOptions{Range: date.NewRange(day("2025-01-01"), day("2025-01-31")), Granularity: 42}, ErrInvalidInput},
		{"bad method", StatementOptions{Range: date.NewRange(day("2025-01-01"), day("2025-01-31")), Method: "magic"}, ErrInvalidInput},
		{"unknown account", StatementOptions{Range: date.NewRange(day("2025-01-01"), day("2025-01-31")), Accounts: []string{"nope"}}, ErrNotFound},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewStatement(b, tc.opts); !errors.Is(err, tc.want) {
				t.Errorf("NewStatement() error = %v, want %v", err, tc.want)
			}
		})
	}
}
