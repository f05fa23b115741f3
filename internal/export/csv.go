package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"daywise/internal/state"
)

// TransactionsToCSV writes the transaction log with wallet names
// resolved, newest data as stored (no re-ordering).
func TransactionsToCSV(app state.AppState, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	wallets := make(map[string]state.Wallet, len(app.Wallets))
	for _, w := range app.Wallets {
		wallets[w.ID] = w
	}

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"ID", "Date", "Type", "Wallet", "To Wallet", "Amount", "Category", "Note"}); err != nil {
		return err
	}

	for _, tx := range app.Transactions {
		walletName := "Unknown"
		if wl, ok := wallets[tx.WalletID]; ok {
			walletName = wl.Name
		}
		toName := ""
		if tx.ToWalletID != "" {
			toName = "Unknown"
			if wl, ok := wallets[tx.ToWalletID]; ok {
				toName = wl.Name
			}
		}

		row := []string{
			tx.ID,
			tx.Date,
			tx.Type,
			walletName,
			toName,
			formatAmount(tx.Amount),
			tx.Category,
			tx.Note,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}

// formatAmount renders minor units as a decimal string, e.g. 1234 -> "12.34".
func formatAmount(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
