package cashflow

import (
	"cmp"
	"slices"

	"github.com/etnz/cashflow/date"
)

// DueItem is a pending transaction that needs attention.
type DueItem struct {
	AlertID     string      `json:"alert"` // stable key of the alert, "<id>@<due date>"
	Transaction Transaction `json:"transaction"`
	Status      Status      `json:"status"`   // Overdue, Pending (due today) or Scheduled
	DaysLeft    int         `json:"daysLeft"` // days until due, negative when overdue
}

// DueItems lists the pending transactions of txs due before today plus
// horizonDays, most urgent first.
func DueItems(txs []Transaction, today date.Date, horizonDays int) []DueItem {
	limit := today.Add(horizonDays)
	var items []DueItem
	for _, tx := range txs {
		if tx.Status == Reconciled || tx.DueDate.IsZero() || !tx.DueDate.Before(limit) {
			continue
		}
		items = append(items, DueItem{
			AlertID:     tx.ID + "@" + tx.DueDate.String(),
			Transaction: tx,
			Status:      tx.StatusOn(today),
			DaysLeft:    tx.DueDate.Sub(today),
		})
	}
	slices.SortStableFunc(items, func(a, b DueItem) int {
		return cmp.Or(a.Transaction.DueDate.Compare(b.Transaction.DueDate), a.Transaction.Amount.Decimal().Cmp(b.Transaction.Amount.Decimal()))
	})
	return items
}

// Dismissals is a store of alert dismissals owned by the caller.
type Dismissals interface {
	// LastDismissed returns the last day the alert was dismissed, if ever.
	LastDismissed(alertID string) (date.Date, bool)
}

// DismissalMap is an in-memory Dismissals.
type DismissalMap map[string]date.Date

func (m DismissalMap) LastDismissed(alertID string) (date.Date, bool) {
	d, ok := m[alertID]
	return d, ok
}

// Dismiss records that alertID was dismissed on day.
func (m DismissalMap) Dismiss(alertID string, day date.Date) { m[alertID] = day }

// ActiveDueItems filters out the items dismissed today or later. Dismissals
// made on earlier days are snoozes that have expired.
func ActiveDueItems(items []DueItem, dismissals Dismissals, today date.Date) []DueItem {
	if dismissals == nil {
		return items
	}
	return slices.DeleteFunc(slices.Clone(items), func(it DueItem) bool {
		d, ok := dismissals.LastDismissed(it.AlertID)
		return ok && !d.Before(today)
	})
}
