package renderer

import (
	"bytes"
	"io"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
)

// ConditionalBlock let you fully write a block and decide at the end to print it or not.
// If the block function returns true, the content is printed to w, otherwise it is discarded.
func ConditionalBlock(w io.Writer, block func(io.Writer) bool) {
	bw := &bytes.Buffer{}
	if block(bw) {
		io.Copy(w, bw)
	}
}

// day prints a date, or a dash when it is not set.
func day(d date.Date) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}

// amount prints a money value, or a dash when it is zero.
func amount(m cashflow.Money) string {
	if m.IsZero() {
		return "-"
	}
	return m.String()
}

// orDash replaces an empty cell with a dash.
func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
