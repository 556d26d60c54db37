package renderer

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/etnz/cashflow"
	md "github.com/nao1215/markdown"
)

// StatementMarkdown renders a cash-flow statement, one row per bucket.
func StatementMarkdown(st *cashflow.Statement) string {
	var b strings.Builder
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	opts := st.Options
	doc.H1(fmt.Sprintf("Cash Flow from %s to %s", opts.Range.From, opts.Range.To))
	scope := "all accounts"
	if len(opts.Accounts) > 0 {
		scope = "accounts " + strings.Join(opts.Accounts, ", ")
	}
	if len(opts.CostCenters) > 0 {
		scope += ", cost centers " + strings.Join(opts.CostCenters, ", ")
	}
	doc.PlainText(fmt.Sprintf("Granularity: %s. Scope: %s. Opening balance: %s.", opts.Granularity, scope, st.Baseline))

	rows := make([][]string, 0, len(st.Buckets)+1)
	for _, bk := range st.Buckets {
		label := bk.Label
		if bk.Projected {
			label += " *"
		}
		rows = append(rows, []string{label, amount(bk.Income), amount(bk.Expense), bk.Net.SignedString(), bk.Transfers.SignedString(), bk.Closing.String()})
	}
	t := st.Total
	rows = append(rows, []string{md.Bold("Total"), md.Bold(amount(t.Income)), md.Bold(amount(t.Expense)), md.Bold(t.Net.SignedString()), md.Bold(t.Transfers.SignedString()), md.Bold(t.Closing.String())})
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Period", "Income", "Expense", "Net", "Transfers", "Balance"},
		Rows:      rows,
	})
	doc.PlainText("Periods marked with * are projected.")
	b.WriteString(doc.String())

	ConditionalBlock(&b, func(w io.Writer) bool {
		if opts.Method != cashflow.Direct {
			return false
		}
		doc := md.NewMarkdown(w)
		doc.H2("By Activity")
		rows := make([][]string, 0, len(st.Buckets)+1)
		for _, bk := range st.Buckets {
			rows = append(rows, []string{bk.Label, bk.Operating.SignedString(), bk.Investing.SignedString(), bk.Financing.SignedString()})
		}
		rows = append(rows, []string{md.Bold("Total"), md.Bold(t.Operating.SignedString()), md.Bold(t.Investing.SignedString()), md.Bold(t.Financing.SignedString())})
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
			Header:    []string{"Period", "Operating", "Investing", "Financing"},
			Rows:      rows,
		})
		return doc.Build() == nil
	})
	return b.String()
}
