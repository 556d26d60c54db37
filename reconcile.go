package cashflow

import (
	"fmt"

	"github.com/etnz/cashflow/date"
)

// Settlement describes how a pending transaction is paid.
type Settlement struct {
	PaymentDate date.Date
	AccountID   string // overrides the transaction's account when set

	// PaidAmount is the principal paid, as a magnitude. Zero means the full
	// amount. A smaller amount settles partially and leaves a remainder.
	PaidAmount Money
	Interest   Money
	Penalty    Money
	Discount   Money

	// RemainderDueDate is the due date of the remainder of a partial
	// payment. Zero keeps the original due date.
	RemainderDueDate date.Date

	// IDs generates the id of a remainder. Nil uses UUIDs.
	IDs IDSource
}

// SettleResult is the outcome of a successful Settle.
type SettleResult struct {
	Settled   Transaction
	Remainder *Transaction // nil unless the payment was partial
}

// Settle reconciles tx according to s.
//
// The settled transaction carries the realized amount, that is the paid
// principal plus interest and penalty minus discount, signed like tx. The
// original account is kept in the adjustments so that Undo can restore it.
// tx is never modified.
func Settle(tx Transaction, s Settlement) (SettleResult, error) {
	switch tx.Status {
	case Pending, Scheduled, Overdue:
	default:
		return SettleResult{}, fmt.Errorf("%w: transaction %q is %s, want pending", ErrInconsistentState, tx.ID, tx.Status)
	}
	if s.PaymentDate.IsZero() {
		return SettleResult{}, fmt.Errorf("%w: transaction %q: missing payment date", ErrInvalidInput, tx.ID)
	}
	account := s.AccountID
	if account == "" {
		account = tx.AccountID
	}
	if account == "" {
		return SettleResult{}, fmt.Errorf("%w: transaction %q: missing payment account", ErrInvalidInput, tx.ID)
	}

	c := tx.Amount.Currency()
	for _, m := range []Money{s.PaidAmount, s.Interest, s.Penalty, s.Discount} {
		if c == "" {
			c = m.Currency()
		}
	}
	parts := []struct {
		name  string
		value Money
	}{
		{"paid amount", s.PaidAmount.withCurrency(c)},
		{"interest", s.Interest.withCurrency(c)},
		{"penalty", s.Penalty.withCurrency(c)},
		{"discount", s.Discount.withCurrency(c)},
	}
	for _, p := range parts {
		if p.value.Currency() != c {
			return SettleResult{}, fmt.Errorf("%w: transaction %q: %s is in %s, want %s", ErrInvalidInput, tx.ID, p.name, p.value.Currency(), c)
		}
		if p.value.IsNegative() {
			return SettleResult{}, fmt.Errorf("%w: transaction %q: %s %v must not be negative", ErrInvalidInput, tx.ID, p.name, p.value)
		}
		if !p.value.Scaled() {
			return SettleResult{}, fmt.Errorf("%w: transaction %q: %s %v has more than %d decimals", ErrInvalidInput, tx.ID, p.name, p.value.Decimal(), MonetaryScale)
		}
	}
	paid, interest, penalty, discount := parts[0].value, parts[1].value, parts[2].value, parts[3].value

	magnitude := tx.Magnitude()
	if paid.IsZero() {
		paid = magnitude
	}
	if paid.GreaterThan(magnitude) {
		return SettleResult{}, fmt.Errorf("%w: transaction %q: paid amount %v exceeds %v", ErrInconsistentState, tx.ID, paid, magnitude)
	}
	realized := paid.Add(interest).Add(penalty).Sub(discount)
	if realized.IsNegative() {
		return SettleResult{}, fmt.Errorf("%w: transaction %q: discount %v exceeds the amount paid", ErrInconsistentState, tx.ID, discount)
	}

	settled := tx.Clone()
	settled.Status = Reconciled
	settled.PaymentDate = s.PaymentDate
	settled.AccountID = account
	settled.Amount = Signed(tx.Kind, realized)
	settled.Adjustments = &SettlementAdjustments{
		Interest:          interest,
		Penalty:           penalty,
		Discount:          discount,
		PaidAmount:        paid,
		PreviousAccountID: tx.AccountID,
	}
	result := SettleResult{Settled: settled}

	if paid.LessThan(magnitude) {
		remainder := tx.Clone()
		remainder.ID = s.IDs.next()
		remainder.Amount = Signed(tx.Kind, magnitude.Sub(paid))
		remainder.Status = Pending
		remainder.PaymentDate = date.Date{}
		remainder.Adjustments = nil
		remainder.Recurrence = nil
		remainder.SplitFrom = tx.ID
		if !s.RemainderDueDate.IsZero() {
			remainder.DueDate = s.RemainderDueDate
		}
		result.Remainder = &remainder
	}
	return result, nil
}

// Undo returns tx back to pending.
//
// The payment date and adjustments are cleared, the amount is restored to
// the paid principal and the account to the one before settlement. A
// remainder split off by a partial payment is left as is: it remains an
// independent pending transaction pointing at tx through SplitFrom.
func Undo(tx Transaction) (Transaction, error) {
	if tx.Status != Reconciled {
		return Transaction{}, fmt.Errorf("%w: transaction %q is %s, want reconciled", ErrInconsistentState, tx.ID, tx.Status)
	}
	out := tx.Clone()
	out.Status = Pending
	out.PaymentDate = date.Date{}
	if adj := tx.Adjustments; adj != nil {
		out.Amount = Signed(tx.Kind, adj.PaidAmount.withCurrency(tx.Amount.Currency()))
		if adj.PreviousAccountID != "" {
			out.AccountID = adj.PreviousAccountID
		}
	}
	out.Adjustments = nil
	return out, nil
}

// Outcome is the per-id result of a batch operation.
type Outcome struct {
	ID      string
	Err     error
	Updated *Transaction  // replaced version of ID
	Created []Transaction // new transactions, like a remainder
	Deleted bool
}

// OK reports whether the operation succeeded for this id.
func (o Outcome) OK() bool { return o.Err == nil }

// MarshalJSON encodes the outcome with its error as a message.
func (o Outcome) MarshalJSON() ([]byte, error) {
	w := &jsonObjectWriter{}
	w.Append("id", o.ID)
	if o.Err != nil {
		w.Append("error", o.Err.Error())
	}
	w.Optional("updated", o.Updated)
	w.Optional("created", o.Created)
	w.Optional("deleted", o.Deleted)
	return w.MarshalJSON()
}

// batch is the working set of a batch operation: outcomes of earlier ids are
// visible to later ones.
type batch struct {
	byID map[string]Transaction
}

func newBatch(txs []Transaction) *batch {
	b := &batch{byID: make(map[string]Transaction, len(txs))}
	for _, tx := range txs {
		b.byID[tx.ID] = tx
	}
	return b
}

// run applies op to each id in turn and records the outcomes.
func (b *batch) run(ids []string, op func(Transaction) Outcome) []Outcome {
	outcomes := make([]Outcome, 0, len(ids))
	for _, id := range ids {
		tx, ok := b.byID[id]
		if !ok {
			outcomes = append(outcomes, Outcome{ID: id, Err: fmt.Errorf("%w: transaction %q", ErrNotFound, id)})
			continue
		}
		o := op(tx)
		o.ID = id
		if o.Err == nil {
			switch {
			case o.Deleted:
				delete(b.byID, id)
			case o.Updated != nil:
				b.byID[id] = *o.Updated
			}
			for _, c := range o.Created {
				b.byID[c.ID] = c
			}
		}
		outcomes = append(outcomes, o)
	}
	return outcomes
}

// SettleAll settles each of ids in txs with s. A failure on one id does not
// prevent the others.
func SettleAll(txs []Transaction, ids []string, s Settlement) []Outcome {
	return newBatch(txs).run(ids, func(tx Transaction) Outcome {
		res, err := Settle(tx, s)
		if err != nil {
			return Outcome{Err: err}
		}
		o := Outcome{Updated: &res.Settled}
		if res.Remainder != nil {
			o.Created = []Transaction{*res.Remainder}
		}
		return o
	})
}

// UndoAll reverts each of ids in txs to pending.
func UndoAll(txs []Transaction, ids []string) []Outcome {
	return newBatch(txs).run(ids, func(tx Transaction) Outcome {
		out, err := Undo(tx)
		if err != nil {
			return Outcome{Err: err}
		}
		return Outcome{Updated: &out}
	})
}

// DeleteAll removes each of ids from txs. Deleting an id twice reports
// ErrNotFound the second time.
func DeleteAll(txs []Transaction, ids []string) []Outcome {
	return newBatch(txs).run(ids, func(Transaction) Outcome {
		return Outcome{Deleted: true}
	})
}
