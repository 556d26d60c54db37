package cashflow

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/etnz/cashflow/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is the direction of a transaction.
type Kind string

const (
	Income   Kind = "income"
	Expense  Kind = "expense"
	Transfer Kind = "transfer"
)

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	switch k {
	case Income, Expense, Transfer:
		return true
	}
	return false
}

// Signed returns magnitude with the sign convention of kind: income is
// positive, expense and transfer (source leg) are negative.
func Signed(kind Kind, magnitude Money) Money {
	magnitude = magnitude.Abs()
	if kind == Income {
		return magnitude
	}
	return magnitude.Neg()
}

// Status is the lifecycle state of a transaction.
//
// Only Pending and Reconciled are ever persisted. Scheduled and Overdue are
// derived from the due date by Transaction.StatusOn.
type Status string

const (
	Pending    Status = "pending"
	Reconciled Status = "reconciled"
	Scheduled  Status = "scheduled"
	Overdue    Status = "overdue"
)

// SettlementAdjustments records how a transaction was settled.
type SettlementAdjustments struct {
	Interest   Money
	Penalty    Money
	Discount   Money
	PaidAmount Money // principal paid, excluding interest, penalty and discount
	// PreviousAccountID is the account the transaction was booked on before
	// settlement moved it, restored by Undo.
	PreviousAccountID string
}

func (a SettlementAdjustments) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("paidAmount", a.PaidAmount.Decimal().StringFixed(MonetaryScale))
	optionalMoney(&w, "interest", a.Interest)
	optionalMoney(&w, "penalty", a.Penalty)
	optionalMoney(&w, "discount", a.Discount)
	w.Optional("previousAccount", a.PreviousAccountID)
	return w.MarshalJSON()
}

func (a *SettlementAdjustments) UnmarshalJSON(data []byte) error {
	var raw struct {
		PaidAmount      decimal.Decimal `json:"paidAmount"`
		Interest        decimal.Decimal `json:"interest"`
		Penalty         decimal.Decimal `json:"penalty"`
		Discount        decimal.Decimal `json:"discount"`
		PreviousAccount string          `json:"previousAccount"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = SettlementAdjustments{
		PaidAmount:        M(raw.PaidAmount, ""),
		Interest:          M(raw.Interest, ""),
		Penalty:           M(raw.Penalty, ""),
		Discount:          M(raw.Discount, ""),
		PreviousAccountID: raw.PreviousAccount,
	}
	return nil
}

// withCurrency assigns currency c to every unqualified amount.
func (a SettlementAdjustments) withCurrency(c string) SettlementAdjustments {
	a.Interest = a.Interest.withCurrency(c)
	a.Penalty = a.Penalty.withCurrency(c)
	a.Discount = a.Discount.withCurrency(c)
	a.PaidAmount = a.PaidAmount.withCurrency(c)
	return a
}

// IDSource generates fresh transaction identifiers.
type IDSource func() string

// UUIDs is the default IDSource.
var UUIDs IDSource = uuid.NewString

// next returns a fresh id from ids, or from UUIDs when ids is nil.
func (ids IDSource) next() string {
	if ids == nil {
		return UUIDs()
	}
	return ids()
}

// Transaction is a single recorded or planned movement of money.
type Transaction struct {
	ID          string
	Kind        Kind
	Description string
	// Amount is signed: income is positive, expense and transfer are negative.
	Amount Money

	LaunchDate  date.Date // when the obligation arose
	DueDate     date.Date
	PaymentDate date.Date // zero until reconciled
	Status      Status

	AccountID            string
	DestinationAccountID string // transfers only
	CategoryID           string
	CostCenterID         string

	CardID        string
	InvoicePeriod string // "<card>:YYYY-MM"

	SeriesID     string // template or purchase that spawned this transaction
	Installment  int    // i of Installments, 1-based
	Installments int
	SplitFrom    string // paid leg this remainder was split from

	Recurrence  *RecurrenceRule
	Adjustments *SettlementAdjustments
}

// Magnitude returns the absolute amount of t.
func (t Transaction) Magnitude() Money { return t.Amount.Abs() }

// EffectiveDate is the date t moves cash: the payment date once reconciled,
// the due date otherwise.
func (t Transaction) EffectiveDate() date.Date {
	if t.Status == Reconciled && !t.PaymentDate.IsZero() {
		return t.PaymentDate
	}
	return t.DueDate
}

// StatusOn returns the derived status of t as seen on today.
func (t Transaction) StatusOn(today date.Date) Status {
	if t.Status == Reconciled {
		return Reconciled
	}
	switch {
	case t.DueDate.Before(today):
		return Overdue
	case t.DueDate.After(today):
		return Scheduled
	default:
		return Pending
	}
}

// Leg returns the signed effect of t on account. Transfers are negative on
// the source account and positive on the destination account.
func (t Transaction) Leg(account string) Money {
	var leg Money
	if t.AccountID == account {
		leg = leg.Add(t.Amount)
	}
	if t.Kind == Transfer && t.DestinationAccountID == account {
		leg = leg.Add(t.Amount.Abs())
	}
	return leg
}

// Clone returns a deep copy of t.
func (t Transaction) Clone() Transaction {
	if t.Recurrence != nil {
		r := *t.Recurrence
		t.Recurrence = &r
	}
	if t.Adjustments != nil {
		a := *t.Adjustments
		t.Adjustments = &a
	}
	return t
}

// normalize folds derived statuses back into the persisted ones.
func (t *Transaction) normalize() {
	switch t.Status {
	case Scheduled, Overdue, "":
		t.Status = Pending
	}
	if t.Adjustments != nil {
		adj := t.Adjustments.withCurrency(t.Amount.Currency())
		t.Adjustments = &adj
	}
}

// Validate checks t in isolation.
func (t Transaction) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: transaction %q: %s", ErrInvalidInput, t.ID, fmt.Sprintf(format, args...)))
	}
	if t.ID == "" {
		fail("missing id")
	}
	if !t.Kind.Valid() {
		fail("unknown kind %q", t.Kind)
	}
	switch {
	case t.Kind == Income && t.Amount.IsNegative():
		fail("income amount %v must not be negative", t.Amount)
	case t.Kind != Income && t.Amount.IsPositive():
		fail("%s amount %v must not be positive", t.Kind, t.Amount)
	}
	if !t.Amount.Scaled() {
		fail("amount %v has more than %d decimals", t.Amount.Decimal(), MonetaryScale)
	}
	if t.DueDate.IsZero() {
		fail("missing due date")
	}
	if t.AccountID == "" && t.CardID == "" {
		fail("missing account or card")
	}
	if t.Kind == Transfer {
		if t.DestinationAccountID == "" {
			fail("transfer without destination account")
		} else if t.DestinationAccountID == t.AccountID {
			fail("transfer from and to the same account %q", t.AccountID)
		}
	}
	switch t.Status {
	case Pending:
		if !t.PaymentDate.IsZero() {
			fail("pending with a payment date")
		}
	case Reconciled:
		if t.PaymentDate.IsZero() {
			fail("reconciled without payment date")
		}
	default:
		fail("unknown status %q", t.Status)
	}
	if t.Recurrence != nil {
		if err := t.Recurrence.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("transaction %q: %w", t.ID, err))
		}
	}
	return errors.Join(errs...)
}

// optionalMoney appends m when it is not zero.
func optionalMoney(w *jsonObjectWriter, key string, m Money) {
	if !m.IsZero() {
		w.Append(key, m.Decimal().StringFixed(MonetaryScale))
	}
}

// MarshalJSON writes t with a stable key order, omitting empty fields.
func (t Transaction) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", t.ID)
	w.Append("kind", t.Kind)
	w.Optional("description", t.Description)
	w.EmbedFrom(t.Amount)
	w.Optional("launch", t.LaunchDate.String())
	w.Append("due", t.DueDate)
	w.Optional("paid", t.PaymentDate.String())
	w.Append("status", t.Status)
	w.Optional("account", t.AccountID)
	w.Optional("destination", t.DestinationAccountID)
	w.Optional("category", t.CategoryID)
	w.Optional("costCenter", t.CostCenterID)
	w.Optional("card", t.CardID)
	w.Optional("invoice", t.InvoicePeriod)
	w.Optional("series", t.SeriesID)
	w.Optional("installment", t.Installment)
	w.Optional("installments", t.Installments)
	w.Optional("splitFrom", t.SplitFrom)
	if t.Recurrence != nil {
		w.Append("recurrence", t.Recurrence)
	}
	if t.Adjustments != nil {
		w.Append("adjustments", t.Adjustments)
	}
	return w.MarshalJSON()
}

// UnmarshalJSON reads a transaction written by MarshalJSON. Derived statuses
// are normalized to pending.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID           string                 `json:"id"`
		Kind         Kind                   `json:"kind"`
		Description  string                 `json:"description"`
		Currency     string                 `json:"currency"`
		Amount       decimal.Decimal        `json:"amount"`
		Launch       date.Date              `json:"launch"`
		Due          date.Date              `json:"due"`
		Paid         date.Date              `json:"paid"`
		Status       Status                 `json:"status"`
		Account      string                 `json:"account"`
		Destination  string                 `json:"destination"`
		Category     string                 `json:"category"`
		CostCenter   string                 `json:"costCenter"`
		Card         string                 `json:"card"`
		Invoice      string                 `json:"invoice"`
		Series       string                 `json:"series"`
		Installment  int                    `json:"installment"`
		Installments int                    `json:"installments"`
		SplitFrom    string                 `json:"splitFrom"`
		Recurrence   *RecurrenceRule        `json:"recurrence"`
		Adjustments  *SettlementAdjustments `json:"adjustments"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*t = Transaction{
		ID:                   raw.ID,
		Kind:                 raw.Kind,
		Description:          raw.Description,
		Amount:               M(raw.Amount, raw.Currency),
		LaunchDate:           raw.Launch,
		DueDate:              raw.Due,
		PaymentDate:          raw.Paid,
		Status:               raw.Status,
		AccountID:            raw.Account,
		DestinationAccountID: raw.Destination,
		CategoryID:           raw.Category,
		CostCenterID:         raw.CostCenter,
		CardID:               raw.Card,
		InvoicePeriod:        raw.Invoice,
		SeriesID:             raw.Series,
		Installment:          raw.Installment,
		Installments:         raw.Installments,
		SplitFrom:            raw.SplitFrom,
		Recurrence:           raw.Recurrence,
		Adjustments:          raw.Adjustments,
	}
	t.normalize()
	return nil
}
