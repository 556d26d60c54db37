package cashflow

import (
	"fmt"
	"slices"
	"sort"

	"github.com/etnz/cashflow/date"
)

// Method selects how a statement breaks down flows.
type Method string

const (
	// Indirect reports income and expense totals only.
	Indirect Method = "indirect"
	// Direct additionally splits flows by the cash-flow class of their category.
	Direct Method = "direct"
)

// ParseMethod parses "indirect" or "direct". The empty string is Indirect.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case "", Indirect:
		return Indirect, nil
	case Direct:
		return Direct, nil
	default:
		return "", fmt.Errorf("%w: unknown cash-flow method %q", ErrInvalidInput, s)
	}
}

// StatementOptions configures NewStatement.
type StatementOptions struct {
	Range       date.Range  `json:"range"`
	Granularity date.Period `json:"granularity"`
	// Accounts restricts the statement to these accounts. Empty means all
	// accounts, in which case transfers cancel out.
	Accounts []string `json:"accounts,omitempty"`
	// CostCenters restricts the statement to these cost centers. Empty means all.
	CostCenters []string `json:"costCenters,omitempty"`
	Method      Method   `json:"method"`
	// Today splits past buckets from projected ones.
	Today date.Date `json:"today"`
}

// Bucket is one period of a statement.
type Bucket struct {
	Label string     `json:"label"` // identifier of the calendar period, like "2025-03"
	Range date.Range `json:"range"` // calendar period clipped to the statement range

	Income    Money `json:"income"`    // magnitude of income
	Expense   Money `json:"expense"`   // magnitude of expense
	Net       Money `json:"net"`       // Income - Expense
	Transfers Money `json:"transfers"` // net transfers into the filtered accounts
	Opening   Money `json:"opening"`
	Closing   Money `json:"closing"` // Opening + Net + Transfers

	// Direct method only: signed sub-totals by category class.
	Operating Money `json:"operating,omitzero"`
	Investing Money `json:"investing,omitzero"`
	Financing Money `json:"financing,omitzero"`

	Projected bool `json:"projected"` // the bucket ends today or later
	Count     int  `json:"count"`     // number of transactions in the bucket
}

// Statement is a bucketed cash-flow statement.
type Statement struct {
	Options  StatementOptions `json:"options"`
	Baseline Money            `json:"baseline"` // balance carried into the first bucket
	Buckets  []Bucket         `json:"buckets"`
	Total    Bucket           `json:"total"` // sum over all buckets
}

// scope answers which transactions and which legs a statement considers.
type scope struct {
	accounts    map[string]bool // nil means every account
	costCenters map[string]bool // nil means every cost center
}

func newScope(opts StatementOptions) scope {
	var s scope
	if len(opts.Accounts) > 0 {
		s.accounts = make(map[string]bool)
		for _, a := range opts.Accounts {
			s.accounts[a] = true
		}
	}
	if len(opts.CostCenters) > 0 {
		s.costCenters = make(map[string]bool)
		for _, c := range opts.CostCenters {
			s.costCenters[c] = true
		}
	}
	return s
}

// includes reports whether tx is part of the statement at all.
func (s scope) includes(tx Transaction) bool {
	if s.costCenters != nil && !s.costCenters[tx.CostCenterID] {
		return false
	}
	if s.accounts == nil {
		return true
	}
	return s.accounts[tx.AccountID] || (tx.Kind == Transfer && s.accounts[tx.DestinationAccountID])
}

// flow returns the signed effect of tx on the filtered accounts.
func (s scope) flow(tx Transaction) Money {
	if s.accounts == nil {
		if tx.Kind == Transfer {
			return Money{}
		}
		return tx.Amount
	}
	var m Money
	if s.accounts[tx.AccountID] {
		m = m.Add(tx.Leg(tx.AccountID))
	}
	if tx.Kind == Transfer && s.accounts[tx.DestinationAccountID] {
		m = m.Add(tx.Leg(tx.DestinationAccountID))
	}
	return m
}

// NewStatement computes the cash-flow statement of book described by opts.
//
// Transactions are placed on their effective date. Pending and reconciled
// transactions alike contribute to the buckets, while the baseline only
// carries reconciled movements before the statement range.
func NewStatement(book *Book, opts StatementOptions) (*Statement, error) {
	if opts.Range.From.IsZero() || opts.Range.To.IsZero() {
		return nil, fmt.Errorf("%w: statement range %v..%v is incomplete", ErrInvalidInput, opts.Range.From, opts.Range.To)
	}
	opts.Range = date.NewRange(opts.Range.From, opts.Range.To)
	if opts.Granularity < date.Daily || opts.Granularity > date.Yearly {
		return nil, fmt.Errorf("%w: unknown granularity %d", ErrInvalidInput, opts.Granularity)
	}
	method, err := ParseMethod(string(opts.Method))
	if err != nil {
		return nil, err
	}
	opts.Method = method
	if opts.Today.IsZero() {
		opts.Today = date.Today()
	}
	if err := checkCurrency(book.accounts, book.transactions); err != nil {
		return nil, err
	}
	for _, id := range opts.Accounts {
		if _, ok := book.Account(id); !ok {
			return nil, fmt.Errorf("%w: account %q", ErrNotFound, id)
		}
	}

	s := newScope(opts)
	st := &Statement{Options: opts}

	for a := range book.AllAccounts() {
		if s.accounts == nil || s.accounts[a.ID] {
			st.Baseline = st.Baseline.Add(a.OpeningBalance)
		}
	}

	for period := range opts.Range.Periods(opts.Granularity) {
		r := date.Range{From: period.From, To: period.To}
		if r.From.Before(opts.Range.From) {
			r.From = opts.Range.From
		}
		if r.To.After(opts.Range.To) {
			r.To = opts.Range.To
		}
		st.Buckets = append(st.Buckets, Bucket{Label: period.Identifier(), Range: r})
	}

	for tx := range book.AllTransactions() {
		if !s.includes(tx) {
			continue
		}
		on := tx.EffectiveDate()
		if on.Before(opts.Range.From) {
			if tx.Status == Reconciled {
				st.Baseline = st.Baseline.Add(s.flow(tx))
			}
			continue
		}
		if on.After(opts.Range.To) {
			continue
		}
		i := sort.Search(len(st.Buckets), func(i int) bool { return !st.Buckets[i].Range.To.Before(on) })
		b := &st.Buckets[i]
		b.Count++
		switch tx.Kind {
		case Income:
			b.Income = b.Income.Add(tx.Magnitude())
		case Expense:
			b.Expense = b.Expense.Add(tx.Magnitude())
		case Transfer:
			b.Transfers = b.Transfers.Add(s.flow(tx))
			continue
		}
		if opts.Method == Direct {
			switch book.classOf(tx.CategoryID) {
			case Investment:
				b.Investing = b.Investing.Add(tx.Amount)
			case Financing:
				b.Financing = b.Financing.Add(tx.Amount)
			default:
				b.Operating = b.Operating.Add(tx.Amount)
			}
		}
	}

	// fold the running balance in ascending order.
	running := st.Baseline
	for i := range st.Buckets {
		b := &st.Buckets[i]
		b.Net = b.Income.Sub(b.Expense)
		b.Opening = running
		b.Closing = b.Opening.Add(b.Net).Add(b.Transfers)
		b.Projected = !b.Range.To.Before(opts.Today)
		running = b.Closing
	}

	st.Total = Bucket{Label: opts.Range.Identifier(), Range: opts.Range, Opening: st.Baseline, Closing: running}
	for _, b := range st.Buckets {
		st.Total.Income = st.Total.Income.Add(b.Income)
		st.Total.Expense = st.Total.Expense.Add(b.Expense)
		st.Total.Net = st.Total.Net.Add(b.Net)
		st.Total.Transfers = st.Total.Transfers.Add(b.Transfers)
		st.Total.Operating = st.Total.Operating.Add(b.Operating)
		st.Total.Investing = st.Total.Investing.Add(b.Investing)
		st.Total.Financing = st.Total.Financing.Add(b.Financing)
		st.Total.Count += b.Count
	}
	st.Total.Projected = slices.ContainsFunc(st.Buckets, func(b Bucket) bool { return b.Projected })
	return st, nil
}
