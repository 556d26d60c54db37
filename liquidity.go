package cashflow

import (
	"github.com/etnz/cashflow/date"
	"github.com/shopspring/decimal"
)

// LiquidityWindowDays is the default trailing window of Liquidity.
const LiquidityWindowDays = 90

// Metrics are the liquidity cycle indicators, in days.
type Metrics struct {
	DSO    int        `json:"dso"` // days sales outstanding
	DPO    int        `json:"dpo"` // days payable outstanding
	DIO    int        `json:"dio"` // days inventory outstanding, always 0 without inventory data
	CCC    int        `json:"ccc"` // cash conversion cycle: DIO + DSO - DPO
	Window date.Range `json:"window"`

	Receivables int `json:"receivables"` // number of income transactions in the window
	Payables    int `json:"payables"`    // number of expense transactions in the window
}

// weightedDelay accumulates amount-weighted settlement delays.
type weightedDelay struct {
	weighted decimal.Decimal
	total    decimal.Decimal
	n        int
}

func (w *weightedDelay) add(days int, amount Money) {
	m := amount.Abs().Decimal()
	w.weighted = w.weighted.Add(m.Mul(decimal.NewFromInt(int64(days))))
	w.total = w.total.Add(m)
	w.n++
}

// days returns the rounded weighted average, 0 when nothing was added.
func (w weightedDelay) days() int {
	if w.total.IsZero() {
		return 0
	}
	return int(w.weighted.DivRound(w.total, 8).Round(0).IntPart())
}

// Liquidity computes the liquidity metrics over reconciled transactions
// paid in the windowDays days up to today, both ends included.
//
// A window of 0 or less uses LiquidityWindowDays.
func Liquidity(txs []Transaction, today date.Date, windowDays int) Metrics {
	if windowDays <= 0 {
		windowDays = LiquidityWindowDays
	}
	window := date.NewRange(today.Add(1-windowDays), today)
	var sales, payables weightedDelay
	for _, tx := range txs {
		if tx.Status != Reconciled || tx.LaunchDate.IsZero() || tx.PaymentDate.IsZero() {
			continue
		}
		if !window.Contains(tx.PaymentDate) {
			continue
		}
		delay := tx.PaymentDate.Sub(tx.LaunchDate)
		switch tx.Kind {
		case Income:
			sales.add(delay, tx.Amount)
		case Expense:
			payables.add(delay, tx.Amount)
		}
	}
	m := Metrics{
		DSO:         sales.days(),
		DPO:         payables.days(),
		Window:      window,
		Receivables: sales.n,
		Payables:    payables.n,
	}
	m.CCC = m.DIO + m.DSO - m.DPO
	return m
}
