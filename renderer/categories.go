package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	md "github.com/nao1215/markdown"
)

// CategoriesMarkdown renders a category rollup as an indented table. A zero
// period is rendered as "all time".
func CategoriesMarkdown(totals []cashflow.CategoryTotal, period date.Range) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	if period.From.IsZero() && period.To.IsZero() {
		doc.H1("Categories, all time")
	} else {
		doc.H1(fmt.Sprintf("Categories from %s to %s", period.From, period.To))
	}
	rows := make([][]string, 0, len(totals))
	for _, t := range totals {
		name := t.Category.ID
		if t.Category.Name != "" {
			name = t.Category.Name
		}
		if name == "" {
			name = "(uncategorized)"
		}
		if t.Depth == 0 {
			name = md.Bold(name)
		} else {
			name = strings.Repeat("  ", t.Depth-1) + "└ " + name
		}
		rows = append(rows, []string{name, orDash(string(t.Category.Class)), amount(t.Own), t.Total.SignedString(), fmt.Sprint(t.Count)})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignRight, md.AlignRight},
		Header:    []string{"Category", "Class", "Own", "Total", "Count"},
		Rows:      rows,
	})
	return doc.String()
}
