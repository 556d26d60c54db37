package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	md "github.com/nao1215/markdown"
)

// BalancesMarkdown renders the realized and projected balance of each account.
func BalancesMarkdown(balances []cashflow.AccountBalance, on date.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Balances on %s", on))
	if len(balances) == 0 {
		doc.PlainText("No accounts.")
		return doc.String()
	}

	var realized, pending, projected cashflow.Money
	rows := make([][]string, 0, len(balances)+1)
	for _, b := range balances {
		rows = append(rows, []string{
			b.Account.ID,
			orDash(b.Account.Name),
			b.Realized.String(),
			b.Pending.SignedString(),
			b.Projected.String(),
		})
		realized = realized.Add(b.Realized)
		pending = pending.Add(b.Pending)
		projected = projected.Add(b.Projected)
	}
	if len(balances) > 1 {
		rows = append(rows, []string{md.Bold("Total"), "", md.Bold(realized.String()), md.Bold(pending.SignedString()), md.Bold(projected.String())})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Account", "Name", "Realized", "Pending", "Projected"},
		Rows:      rows,
	})
	return doc.String()
}
