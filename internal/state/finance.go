package state

import "slices"

// addTransaction records the transaction and applies its balance deltas.
// A transaction referencing a missing wallet is dropped whole: the
// state comes back unchanged rather than half-applied.
func addTransaction(s AppState, tx Transaction) AppState {
	wallets := slices.Clone(s.Wallets)
	if !applyDeltas(wallets, tx, 1) {
		return s
	}
	s.Wallets = wallets
	s.Transactions = append(slices.Clone(s.Transactions), tx)
	return s
}

// deleteTransaction reverses the exact deltas the stored transaction
// originally applied, then removes it.
func deleteTransaction(s AppState, id string) AppState {
	i := slices.IndexFunc(s.Transactions, func(t Transaction) bool { return t.ID == id })
	if i < 0 {
		return s
	}
	tx := s.Transactions[i]
	wallets := slices.Clone(s.Wallets)
	applyDeltas(wallets, tx, -1)
	s.Wallets = wallets
	s.Transactions = slices.Delete(slices.Clone(s.Transactions), i, i+1)
	return s
}

// applyDeltas mutates the given wallet slice in place (callers pass a
// clone). sign is +1 to apply, -1 to reverse. It reports whether every
// wallet the transaction references was found.
func applyDeltas(wallets []Wallet, tx Transaction, sign int64) bool {
	from := walletIndex(wallets, tx.WalletID)
	if from < 0 {
		return false
	}
	switch tx.Type {
	case TxIncome:
		wallets[from].Balance += sign * tx.Amount
	case TxExpense:
		wallets[from].Balance -= sign * tx.Amount
	case TxTransfer:
		to := walletIndex(wallets, tx.ToWalletID)
		if to < 0 {
			return false
		}
		credited := tx.ToAmount
		if credited == 0 {
			credited = tx.Amount
		}
		wallets[from].Balance -= sign * tx.Amount
		wallets[to].Balance += sign * credited
	default:
		return false
	}
	return true
}
