package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cashflow"
	md "github.com/nao1215/markdown"
)

// OutcomesMarkdown renders the per-transaction result of a batch operation.
func OutcomesMarkdown(title string, outcomes []cashflow.Outcome) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(title)
	failed := 0
	rows := make([][]string, 0, len(outcomes))
	for _, o := range outcomes {
		var result string
		switch {
		case !o.OK():
			failed++
			result = "❌ " + o.Err.Error()
		case o.Deleted:
			result = "✅ deleted"
		case o.Updated != nil:
			result = fmt.Sprintf("✅ %s %s", o.Updated.Status, o.Updated.Amount.SignedString())
		default:
			result = "✅"
		}
		for _, c := range o.Created {
			result += fmt.Sprintf(", remainder %s %s due %s", c.ID, c.Amount.SignedString(), c.DueDate)
		}
		rows = append(rows, []string{o.ID, result})
	}
	doc.Table(md.TableSet{
		Header: []string{"ID", "Result"},
		Rows:   rows,
	})
	doc.PlainText(fmt.Sprintf("%d succeeded, %d failed.", len(outcomes)-failed, failed))
	return doc.String()
}
