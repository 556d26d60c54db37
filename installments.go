package cashflow

import (
	"fmt"

	"github.com/etnz/cashflow/date"
)

// Installment is one dated part of a split amount.
type Installment struct {
	Number  int       `json:"number"` // 1-based
	Amount  Money     `json:"amount"`
	DueDate date.Date `json:"due"`
}

// SplitInstallments splits total into count installments due monthly from
// firstDue.
//
// Every installment receives total/count truncated to cents, the first one
// also receives the rounding remainder so that the amounts sum to total
// exactly. Due dates keep the day of month of firstDue, clamped to the end of
// shorter months.
func SplitInstallments(total Money, count int, firstDue date.Date) ([]Installment, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: installment count %d must be at least 1", ErrInvalidInput, count)
	}
	if total.IsNegative() {
		return nil, fmt.Errorf("%w: installment total %v must not be negative", ErrInvalidInput, total)
	}
	if !total.Scaled() {
		return nil, fmt.Errorf("%w: installment total %v has more than %d decimals", ErrInvalidInput, total.Decimal(), MonetaryScale)
	}

	base := total.DivInt(count).Truncate()
	remainder := total.Sub(base.MulInt(count)).Round()

	installments := make([]Installment, count)
	for i := range installments {
		installments[i] = Installment{
			Number:  i + 1,
			Amount:  base,
			DueDate: firstDue.AddMonths(i),
		}
	}
	installments[0].Amount = base.Add(remainder)
	return installments, nil
}

// InstallmentTransactions turns purchase into count pending transactions.
//
// Each carries the sign of the purchase, its position i/N and the purchase id
// as SeriesID. When card is not nil, installment i is billed on the (i-1)-th
// invoice following the purchase's own, and falls due with that invoice.
func InstallmentTransactions(purchase Transaction, count int, card *Card, ids IDSource) ([]Transaction, error) {
	if purchase.Kind == Transfer {
		return nil, fmt.Errorf("%w: transfer %q cannot be paid in installments", ErrInvalidInput, purchase.ID)
	}
	first := purchase.DueDate
	if first.IsZero() {
		first = purchase.LaunchDate
	}
	parts, err := SplitInstallments(purchase.Magnitude(), count, first)
	if err != nil {
		return nil, err
	}
	series := purchase.ID
	if series == "" {
		series = ids.next()
	}

	txs := make([]Transaction, 0, count)
	for _, part := range parts {
		tx := purchase.Clone()
		tx.ID = ids.next()
		tx.Amount = Signed(purchase.Kind, part.Amount)
		tx.DueDate = part.DueDate
		tx.Status = Pending
		tx.PaymentDate = date.Date{}
		tx.Adjustments = nil
		tx.Recurrence = nil
		tx.SeriesID = series
		tx.Installment, tx.Installments = part.Number, count
		if purchase.Description != "" {
			tx.Description = fmt.Sprintf("%s (%d/%d)", purchase.Description, part.Number, count)
		}
		if card != nil {
			period, err := ResolveInvoice(*card, purchase.LaunchDate, part.Number-1)
			if err != nil {
				return nil, err
			}
			tx.CardID = card.ID
			tx.InvoicePeriod = period.String()
			tx.DueDate = period.DueDate(*card)
			if tx.AccountID == "" {
				tx.AccountID = card.DefaultAccountID
			}
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
