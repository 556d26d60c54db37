package cashflow

import (
	"fmt"

	"github.com/etnz/cashflow/date"
)

// CategoryTotal is the flow of one category over a period.
type CategoryTotal struct {
	Category Category `json:"category"`
	Depth    int      `json:"depth"` // 0 for roots
	Own      Money    `json:"own"`   // signed flow booked on the category itself
	Total    Money    `json:"total"` // Own plus the Total of every child
	Count    int      `json:"count"` // number of transactions booked on the category itself
}

// RollupCategories totals txs per category and rolls the totals up the
// category tree.
//
// Only transactions whose effective date falls in period are counted; a zero
// period counts everything. Transfers are ignored. A category whose parent
// is unknown is a root. Transactions booked on an unknown or empty category
// are reported last, under a category with an empty id.
//
// The result lists categories depth first, parents before their children,
// siblings in input order.
func RollupCategories(categories []Category, txs []Transaction, period date.Range) ([]CategoryTotal, error) {
	if err := checkCurrency(nil, txs); err != nil {
		return nil, err
	}
	byID := make(map[string]int, len(categories))
	for i, c := range categories {
		if _, dup := byID[c.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInconsistentState, c.ID)
		}
		byID[c.ID] = i
	}

	children := make(map[string][]int)
	var roots []int
	for i, c := range categories {
		if _, ok := byID[c.ParentID]; c.ParentID == "" || !ok {
			roots = append(roots, i)
			continue
		}
		children[c.ParentID] = append(children[c.ParentID], i)
	}

	// pre-order walk with an explicit stack.
	order := make([]int, 0, len(categories))
	depth := make([]int, len(categories))
	stack := make([]int, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		order = append(order, n)
		kids := children[categories[n].ID]
		for i := len(kids) - 1; i >= 0; i-- {
			depth[kids[i]] = depth[n] + 1
			stack = append(stack, kids[i])
		}
	}
	if len(order) != len(categories) {
		// every category not reached from a root sits on a parent cycle.
		reached := make([]bool, len(categories))
		for _, n := range order {
			reached[n] = true
		}
		for i, c := range categories {
			if !reached[i] {
				return nil, fmt.Errorf("%w: category %q is part of a parent cycle", ErrInconsistentState, c.ID)
			}
		}
	}

	totals := make([]CategoryTotal, len(categories))
	for i, c := range categories {
		totals[i] = CategoryTotal{Category: c, Depth: depth[i]}
	}
	uncategorized := CategoryTotal{}
	all := period.From.IsZero() && period.To.IsZero()
	for _, tx := range txs {
		if tx.Kind == Transfer {
			continue
		}
		if !all && !period.Contains(tx.EffectiveDate()) {
			continue
		}
		t := &uncategorized
		if i, ok := byID[tx.CategoryID]; ok && tx.CategoryID != "" {
			t = &totals[i]
		}
		t.Own = t.Own.Add(tx.Amount)
		t.Count++
	}

	// post-order: children come after their parent in order, so walking it
	// backwards folds every subtree before its root.
	for i := range totals {
		totals[i].Total = totals[i].Own
	}
	for k := len(order) - 1; k >= 0; k-- {
		n := order[k]
		if p, ok := byID[categories[n].ParentID]; ok && categories[n].ParentID != "" {
			totals[p].Total = totals[p].Total.Add(totals[n].Total)
		}
	}

	res := make([]CategoryTotal, 0, len(order)+1)
	for _, n := range order {
		res = append(res, totals[n])
	}
	if uncategorized.Count > 0 {
		uncategorized.Total = uncategorized.Own
		res = append(res, uncategorized)
	}
	return res, nil
}
