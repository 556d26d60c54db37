package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
	md "github.com/nao1215/markdown"
)

// Transaction renders a transaction to a one line summary.
func Transaction(tx cashflow.Transaction) string {
	what := tx.Description
	if what == "" {
		what = tx.ID
	}
	switch tx.Kind {
	case cashflow.Income:
		return fmt.Sprintf("Received %s into %s for %s", tx.Magnitude(), tx.AccountID, what)
	case cashflow.Expense:
		return fmt.Sprintf("Paid %s from %s for %s", tx.Magnitude(), orDash(tx.AccountID), what)
	case cashflow.Transfer:
		return fmt.Sprintf("Moved %s from %s to %s", tx.Magnitude(), tx.AccountID, tx.DestinationAccountID)
	default:
		return what
	}
}

// transactionRow is the table row of tx, with its status as seen on today.
func transactionRow(tx cashflow.Transaction, today date.Date) []string {
	account := tx.AccountID
	if tx.Kind == cashflow.Transfer {
		account += " → " + tx.DestinationAccountID
	}
	if tx.CardID != "" {
		account = orDash(account) + " (" + tx.CardID + ")"
	}
	return []string{
		tx.ID,
		day(tx.DueDate),
		orDash(tx.Description),
		tx.Amount.SignedString(),
		string(tx.StatusOn(today)),
		orDash(account),
	}
}

// Transactions renders a list of transactions as a markdown table.
func Transactions(txs []cashflow.Transaction, today date.Date) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Transactions")
	if len(txs) == 0 {
		doc.PlainText("No transactions.")
		return doc.String()
	}
	rows := make([][]string, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, transactionRow(tx, today))
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignLeft, md.AlignLeft, md.AlignRight, md.AlignLeft, md.AlignLeft},
		Header:    []string{"ID", "Due", "Description", "Amount", "Status", "Account"},
		Rows:      rows,
	})
	return doc.String()
}
