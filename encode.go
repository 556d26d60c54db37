package cashflow

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Record types of the JSONL book format.
const (
	recordAccount     = "account"
	recordCard        = "card"
	recordCategory    = "category"
	recordTransaction = "transaction"
)

// DecodeBook reads a book from a JSONL stream, one record per line.
//
// Each line is a JSON object whose "type" property tells what it holds:
// "account", "card", "category" or "transaction". Empty lines are skipped.
// The decoded book is not validated, but two records of the same type with
// the same id are ErrInconsistentState.
func DecodeBook(r io.Reader) (*Book, error) {
	b := NewBook()
	var txs []Transaction
	seen := make(map[string]int) // "<type> <id>" -> line
	unique := func(kind, id string, line int) error {
		key := kind + " " + id
		if first, dup := seen[key]; dup {
			return fmt.Errorf("%w: duplicate %s id %q, first on line %d", ErrInconsistentState, kind, id, first)
		}
		seen[key] = line
		return nil
	}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if strings.TrimSpace(string(line)) == "" {
			continue
		}
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(line, &head); err != nil {
			return nil, fmt.Errorf("parse error on line %d: not a correct json: %w", i, err)
		}
		var err error
		switch head.Type {
		case recordAccount:
			var a Account
			if err = json.Unmarshal(line, &a); err == nil {
				if err = unique(head.Type, a.ID, i); err == nil {
					b.AddAccount(a)
				}
			}
		case recordCard:
			var c Card
			if err = json.Unmarshal(line, &c); err == nil {
				if err = unique(head.Type, c.ID, i); err == nil {
					b.AddCard(c)
				}
			}
		case recordCategory:
			var c Category
			if err = json.Unmarshal(line, &c); err == nil {
				if err = unique(head.Type, c.ID, i); err == nil {
					b.AddCategory(c)
				}
			}
		case recordTransaction:
			var tx Transaction
			if err = json.Unmarshal(line, &tx); err == nil {
				if err = unique(head.Type, tx.ID, i); err == nil {
					txs = append(txs, tx)
				}
			}
		default:
			err = fmt.Errorf("unknown record type %q", head.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("parse error on line %d: %w", i, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading book: %w", err)
	}
	b.Append(txs...)
	return b, nil
}

// encodeRecord writes v as a single line prefixed by its record type.
func encodeRecord(w io.Writer, kind string, v any) error {
	var o jsonObjectWriter
	o.Append("type", kind)
	o.EmbedFrom(v)
	data, err := o.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", kind, err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

// EncodeBook writes b as a JSONL stream: accounts, cards, categories and then
// transactions by due date.
func EncodeBook(w io.Writer, b *Book) error {
	var errs []error
	for a := range b.AllAccounts() {
		errs = append(errs, encodeRecord(w, recordAccount, a))
	}
	for c := range b.AllCards() {
		errs = append(errs, encodeRecord(w, recordCard, c))
	}
	for c := range b.AllCategories() {
		errs = append(errs, encodeRecord(w, recordCategory, c))
	}
	for tx := range b.AllTransactions() {
		errs = append(errs, encodeRecord(w, recordTransaction, tx))
	}
	return errors.Join(errs...)
}

// EncodeTransaction writes a single transaction as a JSON record.
func EncodeTransaction(w io.Writer, tx Transaction) error {
	return encodeRecord(w, recordTransaction, tx)
}
