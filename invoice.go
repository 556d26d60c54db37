package cashflow

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/etnz/cashflow/date"
)

// InvoicePeriod identifies the monthly invoice of a card.
type InvoicePeriod struct {
	CardID string
	Year   int
	Month  time.Month
}

// String returns the canonical "<card>:YYYY-MM" form.
func (p InvoicePeriod) String() string {
	return fmt.Sprintf("%s:%04d-%02d", p.CardID, p.Year, p.Month)
}

// ParseInvoicePeriod parses the canonical "<card>:YYYY-MM" form.
func ParseInvoicePeriod(s string) (InvoicePeriod, error) {
	i := strings.LastIndex(s, ":")
	if i <= 0 {
		return InvoicePeriod{}, fmt.Errorf("%w: invoice period %q: want <card>:YYYY-MM", ErrInvalidInput, s)
	}
	month, err := time.Parse("2006-01", s[i+1:])
	if err != nil {
		return InvoicePeriod{}, fmt.Errorf("%w: invoice period %q: %v", ErrInvalidInput, s, err)
	}
	return InvoicePeriod{CardID: s[:i], Year: month.Year(), Month: month.Month()}, nil
}

// MarshalText encodes the period in its canonical form.
func (p InvoicePeriod) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

// UnmarshalText decodes the canonical form.
func (p *InvoicePeriod) UnmarshalText(text []byte) error {
	v, err := ParseInvoicePeriod(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}

// Compare orders periods by card, then chronologically.
func (p InvoicePeriod) Compare(q InvoicePeriod) int {
	return cmp.Or(
		strings.Compare(p.CardID, q.CardID),
		cmp.Compare(p.Year, q.Year),
		cmp.Compare(p.Month, q.Month),
	)
}

// clampDay returns day, or the last day of the month if it is shorter.
func clampDay(year int, month time.Month, day int) date.Date {
	return date.New(year, month, min(day, date.DaysIn(year, month)))
}

// ClosingDate is the day the invoice stops accepting purchases.
func (p InvoicePeriod) ClosingDate(card Card) date.Date {
	return clampDay(p.Year, p.Month, card.ClosingDay)
}

// DueDate is the day the invoice must be paid: in the invoice month when the
// card's due day comes after its closing day, in the following month otherwise.
func (p InvoicePeriod) DueDate(card Card) date.Date {
	month := date.New(p.Year, p.Month, 1)
	if card.DueDay <= card.ClosingDay {
		month = month.AddMonths(1)
	}
	return clampDay(month.Year(), month.Month(), card.DueDay)
}

// ResolveInvoice returns the invoice of card that a purchase made on the
// given day is billed on, shifted by offset invoices.
//
// A purchase made on or after the closing day, clamped to the month length,
// goes to the following month's invoice.
func ResolveInvoice(card Card, on date.Date, offset int) (InvoicePeriod, error) {
	if err := card.Validate(); err != nil {
		return InvoicePeriod{}, err
	}
	if offset < 0 {
		return InvoicePeriod{}, fmt.Errorf("%w: invoice offset %d must not be negative", ErrInvalidInput, offset)
	}
	if on.IsZero() {
		return InvoicePeriod{}, fmt.Errorf("%w: card %q: missing purchase date", ErrInvalidInput, card.ID)
	}
	month := date.New(on.Year(), on.Month(), 1)
	if on.Day() >= clampDay(on.Year(), on.Month(), card.ClosingDay).Day() {
		month = month.AddMonths(1)
	}
	month = month.AddMonths(offset)
	return InvoicePeriod{CardID: card.ID, Year: month.Year(), Month: month.Month()}, nil
}

// Invoice groups the transactions billed on one invoice period.
type Invoice struct {
	Period       InvoicePeriod `json:"invoice"`
	Closing      date.Date     `json:"closing"`
	Due          date.Date     `json:"due"`
	Total        Money         `json:"total"`       // signed sum, negative for a balance owed
	Outstanding  Money         `json:"outstanding"` // signed sum of the pending transactions
	Transactions []Transaction `json:"transactions"`
}

// Paid reports whether every transaction of the invoice is reconciled.
func (inv Invoice) Paid() bool { return inv.Outstanding.IsZero() }

// GroupInvoices groups the card transactions of txs by invoice period.
//
// A transaction without a stored InvoicePeriod is resolved from its launch
// date (or due date if missing). Invoices are sorted by card then period and
// keep the input order of their transactions.
func GroupInvoices(cards []Card, txs []Transaction) ([]Invoice, error) {
	if err := checkCurrency(nil, txs); err != nil {
		return nil, err
	}
	byID := make(map[string]Card, len(cards))
	for _, c := range cards {
		byID[c.ID] = c
	}
	index := make(map[InvoicePeriod]int)
	var invoices []Invoice
	for _, tx := range txs {
		if tx.CardID == "" {
			continue
		}
		card, ok := byID[tx.CardID]
		if !ok {
			return nil, fmt.Errorf("%w: transaction %q: card %q", ErrNotFound, tx.ID, tx.CardID)
		}
		var period InvoicePeriod
		var err error
		if tx.InvoicePeriod != "" {
			period, err = ParseInvoicePeriod(tx.InvoicePeriod)
		} else {
			on := tx.LaunchDate
			if on.IsZero() {
				on = tx.DueDate
			}
			period, err = ResolveInvoice(card, on, 0)
		}
		if err != nil {
			return nil, fmt.Errorf("transaction %q: %w", tx.ID, err)
		}
		if period.CardID != card.ID {
			return nil, fmt.Errorf("%w: transaction %q: invoice %v does not belong to card %q", ErrInconsistentState, tx.ID, period, card.ID)
		}
		i, ok := index[period]
		if !ok {
			i = len(invoices)
			index[period] = i
			invoices = append(invoices, Invoice{
				Period:  period,
				Closing: period.ClosingDate(card),
				Due:     period.DueDate(card),
			})
		}
		inv := &invoices[i]
		inv.Total = inv.Total.Add(tx.Amount)
		if tx.Status != Reconciled {
			inv.Outstanding = inv.Outstanding.Add(tx.Amount)
		}
		inv.Transactions = append(inv.Transactions, tx)
	}
	slices.SortStableFunc(invoices, func(a, b Invoice) int { return a.Period.Compare(b.Period) })
	return invoices, nil
}
