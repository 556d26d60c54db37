package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	md "github.com/nao1215/markdown"
)

// DueMarkdown renders the transactions needing attention on today.
func DueMarkdown(items []cashflow.DueItem, today date.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Due on %s", today))
	if len(items) == 0 {
		doc.PlainText("Nothing is due.")
		return doc.String()
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		var when string
		switch {
		case it.DaysLeft < 0:
			when = fmt.Sprintf("%d days late", -it.DaysLeft)
		case it.DaysLeft == 0:
			when = "today"
		default:
			when = fmt.Sprintf("in %d days", it.DaysLeft)
		}
		tx := it.Transaction
		rows = append(rows, []string{it.AlertID, string(it.Status), when, orDash(tx.Description), tx.Amount.SignedString()})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Alert", "Status", "When", "Description", "Amount"},
		Rows:      rows,
	})
	return doc.String()
}
