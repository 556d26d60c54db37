package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cashflow"
	md "github.com/nao1215/markdown"
)

// MetricsMarkdown renders the liquidity cycle indicators.
func MetricsMarkdown(m cashflow.Metrics) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Liquidity from %s to %s", m.Window.From, m.Window.To))
	days := func(n int) string { return fmt.Sprintf("%d days", n) }
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Indicator", "Value", "Transactions"},
		Rows: [][]string{
			{"Days Sales Outstanding", days(m.DSO), fmt.Sprint(m.Receivables)},
			{"Days Payable Outstanding", days(m.DPO), fmt.Sprint(m.Payables)},
			{"Days Inventory Outstanding", days(m.DIO), "-"},
			{md.Bold("Cash Conversion Cycle"), md.Bold(days(m.CCC)), ""},
		},
	})
	if m.Receivables+m.Payables == 0 {
		doc.PlainText("No transaction was settled in the window.")
	}
	return doc.String()
}
