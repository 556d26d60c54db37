package cashflow

// RealizedBalance is the opening balance of account plus every reconciled
// movement on it. Amounts in another currency than the account's are
// ErrInconsistentState.
func RealizedBalance(account Account, txs []Transaction) (Money, error) {
	if err := checkCurrency([]Account{account}, txs); err != nil {
		return Money{}, err
	}
	b := account.OpeningBalance
	for _, tx := range txs {
		if tx.Status == Reconciled {
			b = b.Add(tx.Leg(account.ID))
		}
	}
	return b, nil
}

// ProjectedBalance is the realized balance of account plus every pending
// movement on it.
func ProjectedBalance(account Account, txs []Transaction) (Money, error) {
	if err := checkCurrency([]Account{account}, txs); err != nil {
		return Money{}, err
	}
	b := account.OpeningBalance
	for _, tx := range txs {
		b = b.Add(tx.Leg(account.ID))
	}
	return b, nil
}

// AccountBalance is the balance view of one account.
type AccountBalance struct {
	Account   Account `json:"account"`
	Realized  Money   `json:"realized"`
	Pending   Money   `json:"pending"`   // signed sum of pending movements
	Projected Money   `json:"projected"` // Realized + Pending
}

// Balances computes the balance view of each account, in the order given.
// Accounts and transactions must share one currency.
func Balances(accounts []Account, txs []Transaction) ([]AccountBalance, error) {
	if err := checkCurrency(accounts, txs); err != nil {
		return nil, err
	}
	res := make([]AccountBalance, 0, len(accounts))
	for _, a := range accounts {
		b := AccountBalance{Account: a, Realized: a.OpeningBalance, Pending: M(0, a.OpeningBalance.Currency())}
		for _, tx := range txs {
			leg := tx.Leg(a.ID)
			if tx.Status == Reconciled {
				b.Realized = b.Realized.Add(leg)
			} else {
				b.Pending = b.Pending.Add(leg)
			}
		}
		b.Projected = b.Realized.Add(b.Pending)
		res = append(res, b)
	}
	return res, nil
}
