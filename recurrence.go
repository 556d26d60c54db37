package cashflow

import (
	"fmt"
	"iter"

	"github.com/etnz/cashflow/date"
)

// MaxRecurrenceInstances bounds every recurring series, whatever its end policy.
const MaxRecurrenceInstances = 60

// Frequency is the unit of a recurrence step.
type Frequency string

const (
	Weekly  Frequency = "weekly"
	Monthly Frequency = "monthly"
	Yearly  Frequency = "yearly"
)

// EndPolicy stops a series at a date (inclusive) or after a number of
// instances. When both or neither are set, the first limit reached wins and
// MaxRecurrenceInstances still applies.
type EndPolicy struct {
	Until date.Date `json:"until,omitzero"`
	Count int       `json:"count,omitempty"`
}

// RecurrenceRule describes how a template transaction repeats.
type RecurrenceRule struct {
	Frequency Frequency `json:"frequency"`
	Interval  int       `json:"interval"`
	End       EndPolicy `json:"end,omitzero"`
}

// Validate checks the frequency and interval of r.
func (r RecurrenceRule) Validate() error {
	switch r.Frequency {
	case Weekly, Monthly, Yearly:
	default:
		return fmt.Errorf("%w: unknown recurrence frequency %q", ErrInvalidInput, r.Frequency)
	}
	if r.Interval < 1 {
		return fmt.Errorf("%w: recurrence interval %d must be at least 1", ErrInvalidInput, r.Interval)
	}
	if r.End.Count < 0 {
		return fmt.Errorf("%w: recurrence count %d must not be negative", ErrInvalidInput, r.End.Count)
	}
	return nil
}

// step returns the anchor shifted by n steps of r.
func (r RecurrenceRule) step(anchor date.Date, n int) date.Date {
	switch r.Frequency {
	case Weekly:
		return anchor.Add(7 * r.Interval * n)
	case Monthly:
		return anchor.AddMonths(r.Interval * n)
	default:
		return anchor.AddYears(r.Interval * n)
	}
}

// Expand returns the instances of the series started by template.
//
// The template itself is the first instance and is always yielded unchanged,
// even when the end date of the rule is before its due date. Each
// following instance is a fresh pending copy whose due date is computed from
// the template's due date, so month-end clamping never drifts. Launch dates
// move by the same number of days as due dates.
//
// The sequence is lazy and restarts from the template on every iteration.
// ids may be nil, in which case UUIDs are used.
func Expand(template Transaction, rule RecurrenceRule, ids IDSource) (iter.Seq[Transaction], error) {
	if err := rule.Validate(); err != nil {
		return nil, err
	}
	limit := MaxRecurrenceInstances
	if rule.End.Count > 0 {
		limit = min(limit, rule.End.Count)
	}
	anchor := template.DueDate
	return func(yield func(Transaction) bool) {
		if !yield(template) {
			return
		}
		for n := 1; n < limit; n++ {
			due := rule.step(anchor, n)
			if !rule.End.Until.IsZero() && due.After(rule.End.Until) {
				return
			}
			tx := template.Clone()
			tx.ID = ids.next()
			tx.DueDate = due
			if !template.LaunchDate.IsZero() {
				tx.LaunchDate = template.LaunchDate.Add(due.Sub(anchor))
			}
			tx.Status = Pending
			tx.PaymentDate = date.Date{}
			tx.Adjustments = nil
			tx.Recurrence = nil
			tx.SeriesID = template.ID
			if !yield(tx) {
				return
			}
		}
	}, nil
}
