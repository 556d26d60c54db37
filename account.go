package cashflow

import (
	"encoding/json"
	"fmt"

	"github.com/etnz/cashflow/date"
	"github.com/shopspring/decimal"
)

// Account is a place holding cash: a bank account, a wallet, a till.
type Account struct {
	ID                 string
	Name               string
	OpeningBalance     Money
	OpeningBalanceDate date.Date
}

func (a Account) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("id", a.ID)
	w.Optional("name", a.Name)
	w.EmbedFrom(a.OpeningBalance)
	w.Optional("openedOn", a.OpeningBalanceDate.String())
	return w.MarshalJSON()
}

func (a *Account) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID       string          `json:"id"`
		Name     string          `json:"name"`
		Currency string          `json:"currency"`
		Amount   decimal.Decimal `json:"amount"`
		OpenedOn date.Date       `json:"openedOn"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*a = Account{ID: raw.ID, Name: raw.Name, OpeningBalance: M(raw.Amount, raw.Currency), OpeningBalanceDate: raw.OpenedOn}
	return nil
}

// Validate checks a in isolation.
func (a Account) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("%w: account without id", ErrInvalidInput)
	}
	if !a.OpeningBalance.Scaled() {
		return fmt.Errorf("%w: account %q: opening balance %v has more than %d decimals", ErrInvalidInput, a.ID, a.OpeningBalance.Decimal(), MonetaryScale)
	}
	return nil
}

// Card is a credit card whose purchases are billed on monthly invoices.
type Card struct {
	ID               string `json:"id"`
	Name             string `json:"name,omitempty"`
	ClosingDay       int    `json:"closingDay"`
	DueDay           int    `json:"dueDay"`
	DefaultAccountID string `json:"account,omitempty"` // account paying the invoices
}

// Validate checks c in isolation.
func (c Card) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: card without id", ErrInvalidInput)
	}
	if c.ClosingDay < 1 || c.ClosingDay > 31 {
		return fmt.Errorf("%w: card %q: closing day %d not in 1..31", ErrInvalidInput, c.ID, c.ClosingDay)
	}
	if c.DueDay < 1 || c.DueDay > 31 {
		return fmt.Errorf("%w: card %q: due day %d not in 1..31", ErrInvalidInput, c.ID, c.DueDay)
	}
	return nil
}

// CashFlowClass is the section of a direct-method statement a category reports into.
type CashFlowClass string

const (
	Operational CashFlowClass = "operational"
	Investment  CashFlowClass = "investment"
	Financing   CashFlowClass = "financing"
)

// Category classifies transactions. Categories form a forest through ParentID.
type Category struct {
	ID       string        `json:"id"`
	Name     string        `json:"name,omitempty"`
	ParentID string        `json:"parent,omitempty"`
	Class    CashFlowClass `json:"class,omitempty"` // empty means Operational
}

// Validate checks c in isolation.
func (c Category) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("%w: category without id", ErrInvalidInput)
	}
	switch c.Class {
	case "", Operational, Investment, Financing:
	default:
		return fmt.Errorf("%w: category %q: unknown class %q", ErrInvalidInput, c.ID, c.Class)
	}
	if c.ParentID == c.ID {
		return fmt.Errorf("%w: category %q is its own parent", ErrInconsistentState, c.ID)
	}
	return nil
}
