package renderer

import (
	"bytes"

	"github.com/etnz/cashflow"
	md "github.com/nao1215/markdown"
)

// InvoicesMarkdown renders card invoices, one section per invoice.
func InvoicesMarkdown(invoices []cashflow.Invoice) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Card Invoices")
	if len(invoices) == 0 {
		doc.PlainText("No card transactions.")
		return doc.String()
	}

	summary := make([][]string, 0, len(invoices))
	for _, inv := range invoices {
		state := "open"
		if inv.Paid() {
			state = "paid"
		}
		summary = append(summary, []string{inv.Period.String(), day(inv.Closing), day(inv.Due), inv.Total.String(), amount(inv.Outstanding), state})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignLeft},
		Header:    []string{"Invoice", "Closing", "Due", "Total", "Outstanding", "State"},
		Rows:      summary,
	})

	for _, inv := range invoices {
		doc.H2(inv.Period.String())
		rows := make([][]string, 0, len(inv.Transactions))
		for _, tx := range inv.Transactions {
			rows = append(rows, []string{tx.ID, day(tx.LaunchDate), orDash(tx.Description), tx.Amount.SignedString(), string(tx.Status)})
		}
		doc.Table(md.TableSet{
			Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft},
			Header:    []string{"ID", "Launched", "Description", "Amount", "Status"},
			Rows:      rows,
		})
	}
	return doc.String()
}
