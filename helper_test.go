package cashflow

import (
	"fmt"

	"github.com/etnz/cashflow/date"
	"github.com/google/go-cmp/cmp"
)

// EUR is a helper for test to create euro money from const
func EUR(v float64) Money { return M(v, "EUR") }

// NO is a helper for test to create money from const with no currency set
func NO(v float64) Money { return M(v, "") }

// day is a helper for test to create a date from its ISO form.
func day(s string) date.Date { return date.MustParse(s) }

// seqIDs returns an IDSource yielding prefix-1, prefix-2...
func seqIDs(prefix string) IDSource {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}
}

// cmpMoney compares Money by value, ignoring a missing currency on either side.
var cmpMoney = cmp.Comparer(func(a, b Money) bool {
	return a.value.Equal(b.value) && (a.cur == "" || b.cur == "" || a.cur == b.cur)
})

// cmpDate compares dates by value.
var cmpDate = cmp.Comparer(func(a, b date.Date) bool { return a == b })

// expense returns a pending expense of magnitude v on account "bank".
func expense(id string, v float64, due string) Transaction {
	return Transaction{
		ID:        id,
		Kind:      Expense,
		Amount:    EUR(-v),
		DueDate:   day(due),
		Status:    Pending,
		AccountID: "bank",
	}
}

// income returns a pending income of v on account "bank".
func income(id string, v float64, due string) Transaction {
	return Transaction{
		ID:        id,
		Kind:      Income,
		Amount:    EUR(v),
		DueDate:   day(due),
		Status:    Pending,
		AccountID: "bank",
	}
}

// paid returns tx reconciled on the given day.
func paid(tx Transaction, on string) Transaction {
	tx.Status = Reconciled
	tx.PaymentDate = day(on)
	return tx
}
