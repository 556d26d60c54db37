package cmd

import (
	"fmt"
	"strings"

	"github.com/etnz/cashflow"
	"github.com/etnz/cashflow/date"
)

// parseDay parses a date flag, an empty value means today.
func parseDay(s string) (date.Date, error) {
	if s == "" {
		return date.Today(), nil
	}
	return date.Parse(s)
}

// parseRange computes the range selected by the -p, -s and -d flags: from
// start to end when start is set, the period containing end otherwise.
func parseRange(period, start, end string) (date.Range, error) {
	to, err := parseDay(end)
	if err != nil {
		return date.Range{}, fmt.Errorf("parsing end date: %w", err)
	}
	if start != "" {
		from, err := date.Parse(start)
		if err != nil {
			return date.Range{}, fmt.Errorf("parsing start date: %w", err)
		}
		return date.NewRange(from, to), nil
	}
	p, err := date.ParsePeriod(period)
	if err != nil {
		return date.Range{}, fmt.Errorf("parsing period: %w", err)
	}
	return p.Range(to), nil
}

// parseMoney parses an optional amount flag in currency. An empty flag is a
// zero amount without currency, and so is compatible with any transaction.
func parseMoney(s, currency string) (cashflow.Money, error) {
	if s == "" {
		return cashflow.Money{}, nil
	}
	return cashflow.ParseMoney(s, currency)
}

// list splits a comma separated flag value.
func list(s string) []string {
	var res []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			res = append(res, v)
		}
	}
	return res
}
