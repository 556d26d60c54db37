package cashflow

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/cashflow/date"
	"github.com/rs/zerolog"
)

// Book is an in-memory snapshot of accounts, cards, categories and
// transactions.
//
// Transactions are kept sorted by due date, in insertion order for equal
// dates.
type Book struct {
	accounts     []Account
	cards        []Card
	categories   []Category
	transactions []Transaction

	accountIdx  map[string]int
	cardIdx     map[string]int
	categoryIdx map[string]int
	txIdx       map[string]int

	log zerolog.Logger
}

// NewBook creates an empty book.
func NewBook() *Book {
	return &Book{
		accountIdx:  make(map[string]int),
		cardIdx:     make(map[string]int),
		categoryIdx: make(map[string]int),
		txIdx:       make(map[string]int),
		log:         zerolog.Nop(),
	}
}

// SetLogger sets the logger receiving one line per change made by Apply.
func (b *Book) SetLogger(l zerolog.Logger) { b.log = l }

// AddAccount adds or replaces accounts by id.
func (b *Book) AddAccount(accounts ...Account) {
	for _, a := range accounts {
		if i, ok := b.accountIdx[a.ID]; ok {
			b.accounts[i] = a
			continue
		}
		b.accountIdx[a.ID] = len(b.accounts)
		b.accounts = append(b.accounts, a)
	}
}

// AddCard adds or replaces cards by id.
func (b *Book) AddCard(cards ...Card) {
	for _, c := range cards {
		if i, ok := b.cardIdx[c.ID]; ok {
			b.cards[i] = c
			continue
		}
		b.cardIdx[c.ID] = len(b.cards)
		b.cards = append(b.cards, c)
	}
}

// AddCategory adds or replaces categories by id.
func (b *Book) AddCategory(categories ...Category) {
	for _, c := range categories {
		if i, ok := b.categoryIdx[c.ID]; ok {
			b.categories[i] = c
			continue
		}
		b.categoryIdx[c.ID] = len(b.categories)
		b.categories = append(b.categories, c)
	}
}

// Append appends transactions and keeps the book sorted by due date. A
// transaction with an id already in the book replaces it.
func (b *Book) Append(txs ...Transaction) {
	for _, tx := range txs {
		tx.normalize()
		if i, ok := b.txIdx[tx.ID]; ok {
			b.transactions[i] = tx
			continue
		}
		b.txIdx[tx.ID] = len(b.transactions)
		b.transactions = append(b.transactions, tx)
	}
	b.stableSort()
}

// remove deletes the transaction id from the book.
func (b *Book) remove(id string) bool {
	i, ok := b.txIdx[id]
	if !ok {
		return false
	}
	b.transactions = slices.Delete(b.transactions, i, i+1)
	b.reindex()
	return true
}

// stableSort sorts transactions by due date and rebuilds the index.
func (b *Book) stableSort() {
	slices.SortStableFunc(b.transactions, func(x, y Transaction) int { return x.DueDate.Compare(y.DueDate) })
	b.reindex()
}

func (b *Book) reindex() {
	clear(b.txIdx)
	for i, tx := range b.transactions {
		b.txIdx[tx.ID] = i
	}
}

// Account returns the account id.
func (b *Book) Account(id string) (Account, bool) {
	i, ok := b.accountIdx[id]
	if !ok {
		return Account{}, false
	}
	return b.accounts[i], true
}

// Card returns the card id.
func (b *Book) Card(id string) (Card, bool) {
	i, ok := b.cardIdx[id]
	if !ok {
		return Card{}, false
	}
	return b.cards[i], true
}

// Category returns the category id.
func (b *Book) Category(id string) (Category, bool) {
	i, ok := b.categoryIdx[id]
	if !ok {
		return Category{}, false
	}
	return b.categories[i], true
}

// Transaction returns the transaction id.
func (b *Book) Transaction(id string) (Transaction, bool) {
	i, ok := b.txIdx[id]
	if !ok {
		return Transaction{}, false
	}
	return b.transactions[i], true
}

// classOf returns the cash-flow class of a category, Operational when unknown.
func (b *Book) classOf(categoryID string) CashFlowClass {
	c, ok := b.Category(categoryID)
	if !ok || c.Class == "" {
		return Operational
	}
	return c.Class
}

// AllAccounts iterates over accounts in insertion order.
func (b *Book) AllAccounts() iter.Seq[Account] { return slices.Values(b.accounts) }

// AllCards iterates over cards in insertion order.
func (b *Book) AllCards() iter.Seq[Card] { return slices.Values(b.cards) }

// AllCategories iterates over categories in insertion order.
func (b *Book) AllCategories() iter.Seq[Category] { return slices.Values(b.categories) }

// AllTransactions iterates over transactions by due date.
func (b *Book) AllTransactions() iter.Seq[Transaction] { return slices.Values(b.transactions) }

// Accounts returns a copy of the accounts.
func (b *Book) Accounts() []Account { return slices.Clone(b.accounts) }

// Cards returns a copy of the cards.
func (b *Book) Cards() []Card { return slices.Clone(b.cards) }

// Categories returns a copy of the categories.
func (b *Book) Categories() []Category { return slices.Clone(b.categories) }

// Transactions returns a copy of the transactions, sorted by due date.
func (b *Book) Transactions() []Transaction { return slices.Clone(b.transactions) }

// Currency returns the currency of the first account, or "" for an empty book.
func (b *Book) Currency() string {
	for _, a := range b.accounts {
		if c := a.OpeningBalance.Currency(); c != "" {
			return c
		}
	}
	return ""
}

// checkCurrency reports ErrInconsistentState when the accounts and the
// transactions are not all in the same currency. Amounts without currency
// match any.
func checkCurrency(accounts []Account, txs []Transaction) error {
	c := ""
	check := func(record, id string, m Money) error {
		switch {
		case m.Currency() == "":
		case c == "":
			c = m.Currency()
		case m.Currency() != c:
			return fmt.Errorf("%w: %s %q is in %s, want %s", ErrInconsistentState, record, id, m.Currency(), c)
		}
		return nil
	}
	for _, a := range accounts {
		if err := check("account", a.ID, a.OpeningBalance); err != nil {
			return err
		}
	}
	for _, tx := range txs {
		if err := check("transaction", tx.ID, tx.Amount); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks every record and every reference between records.
func (b *Book) Validate() error {
	errs := []error{checkCurrency(b.accounts, b.transactions)}
	for _, a := range b.accounts {
		errs = append(errs, a.Validate())
	}
	for _, c := range b.cards {
		errs = append(errs, c.Validate())
		if c.DefaultAccountID != "" {
			if _, ok := b.Account(c.DefaultAccountID); !ok {
				errs = append(errs, fmt.Errorf("%w: card %q: account %q", ErrNotFound, c.ID, c.DefaultAccountID))
			}
		}
	}
	for _, c := range b.categories {
		errs = append(errs, c.Validate())
	}
	if _, err := RollupCategories(b.categories, nil, date.Range{}); err != nil {
		errs = append(errs, err)
	}
	for _, tx := range b.transactions {
		errs = append(errs, tx.Validate())
		refs := []struct{ kind, id string }{{"account", tx.AccountID}, {"account", tx.DestinationAccountID}}
		for _, ref := range refs {
			if ref.id == "" {
				continue
			}
			if _, ok := b.Account(ref.id); !ok {
				errs = append(errs, fmt.Errorf("%w: transaction %q: %s %q", ErrNotFound, tx.ID, ref.kind, ref.id))
			}
		}
		if tx.CardID != "" {
			if _, ok := b.Card(tx.CardID); !ok {
				errs = append(errs, fmt.Errorf("%w: transaction %q: card %q", ErrNotFound, tx.ID, tx.CardID))
			}
		}
		if tx.CategoryID != "" {
			if _, ok := b.Category(tx.CategoryID); !ok {
				errs = append(errs, fmt.Errorf("%w: transaction %q: category %q", ErrNotFound, tx.ID, tx.CategoryID))
			}
		}
	}
	return errors.Join(errs...)
}

// Apply writes the successful outcomes of a batch back into the book and
// returns the number of changes. Failed outcomes are skipped.
func (b *Book) Apply(outcomes []Outcome) int {
	changes := 0
	for _, o := range outcomes {
		if o.Err != nil {
			b.log.Debug().Str("id", o.ID).Err(o.Err).Msg("skip failed outcome")
			continue
		}
		if o.Deleted {
			if b.remove(o.ID) {
				b.log.Info().Str("id", o.ID).Msg("delete transaction")
				changes++
			}
		}
		if o.Updated != nil {
			b.Append(*o.Updated)
			b.log.Info().
				Str("id", o.Updated.ID).
				Str("status", string(o.Updated.Status)).
				Stringer("amount", o.Updated.Amount).
				Msg("update transaction")
			changes++
		}
		for _, c := range o.Created {
			b.Append(c)
			b.log.Info().
				Str("id", c.ID).
				Str("splitFrom", c.SplitFrom).
				Stringer("amount", c.Amount).
				Stringer("due", c.DueDate).
				Msg("create transaction")
			changes++
		}
	}
	return changes
}
