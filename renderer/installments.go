package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cashflow"
	md "github.com/nao1215/markdown"
)

// InstallmentsMarkdown renders an installment plan.
func InstallmentsMarkdown(total cashflow.Money, plan []cashflow.Installment) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s in %d installments", total, len(plan)))
	rows := make([][]string, 0, len(plan))
	for _, in := range plan {
		rows = append(rows, []string{fmt.Sprintf("%d/%d", in.Number, len(plan)), day(in.DueDate), in.Amount.String()})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignRight},
		Header:    []string{"Installment", "Due", "Amount"},
		Rows:      rows,
	})
	return doc.String()
}
