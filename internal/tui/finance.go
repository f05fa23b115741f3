package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"daywise/internal/dateutil"
	"daywise/internal/state"
)

// financeModel shows wallets on the left and recent transactions on
// the right. n opens the transaction form, w the wallet form.
type financeModel struct {
	mgr    *state.Manager
	width  int
	height int

	cursor int // wallet cursor

	formActive bool
	form       *huh.Form
	formKind   string // "wallet" or "tx"

	walletName    *string
	walletBalance *string

	txKind   *string
	txAmount *string
	txDesc   *string
	txCat    *string
	txWallet *string
	txTo     *string
}

func newFinanceModel(mgr *state.Manager) financeModel {
	name, balance := "", ""
	kind, amount, desc, cat, wallet, to := state.TxExpense, "", "", "", "", ""
	return financeModel{
		mgr:           mgr,
		walletName:    &name,
		walletBalance: &balance,
		txKind:        &kind,
		txAmount:      &amount,
		txDesc:        &desc,
		txCat:         &cat,
		txWallet:      &wallet,
		txTo:          &to,
	}
}

func (m *financeModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

func (m financeModel) update(msg tea.Msg) (financeModel, tea.Cmd) {
	if m.formActive && m.form != nil {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	wallets := m.mgr.State().Wallets

	switch {
	case key.Matches(keyMsg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, keys.Down):
		if m.cursor < len(wallets)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, keys.New):
		if len(wallets) == 0 {
			return m, errorStatus(fmt.Errorf("create a wallet first (press w)"))
		}
		return m.showTxForm()
	case keyMsg.String() == "w":
		return m.showWalletForm()
	case key.Matches(keyMsg, keys.Delete):
		if m.cursor < len(wallets) {
			m.mgr.Dispatch(state.DeleteWallet{ID: wallets[m.cursor].ID})
			if m.cursor > 0 {
				m.cursor--
			}
			return m, status("Wallet deleted")
		}
	}
	return m, nil
}

func (m financeModel) showWalletForm() (financeModel, tea.Cmd) {
	*m.walletName = ""
	*m.walletBalance = ""

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Wallet name").Value(m.walletName),
			huh.NewInput().Title("Starting balance").Placeholder("0.00").Value(m.walletBalance),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formKind = "wallet"
	m.formActive = true
	return m, m.form.Init()
}

func (m financeModel) showTxForm() (financeModel, tea.Cmd) {
	wallets := m.mgr.State().Wallets

	*m.txKind = state.TxExpense
	*m.txAmount = ""
	*m.txDesc = ""
	*m.txCat = ""
	*m.txWallet = wallets[0].ID
	*m.txTo = ""

	walletOptions := make([]huh.Option[string], 0, len(wallets))
	toOptions := []huh.Option[string]{huh.NewOption("(none)", "")}
	for _, w := range wallets {
		walletOptions = append(walletOptions, huh.NewOption(w.Name, w.ID))
		toOptions = append(toOptions, huh.NewOption(w.Name, w.ID))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Type").
				Options(
					huh.NewOption("Expense", state.TxExpense),
					huh.NewOption("Income", state.TxIncome),
					huh.NewOption("Transfer", state.TxTransfer),
				).
				Value(m.txKind),
			huh.NewInput().Title("Amount").Placeholder("12.50").Value(m.txAmount),
			huh.NewInput().Title("Description").Value(m.txDesc),
			huh.NewInput().Title("Category").Value(m.txCat),
			huh.NewSelect[string]().Title("Wallet").Options(walletOptions...).Value(m.txWallet),
			huh.NewSelect[string]().Title("To wallet (transfers)").Options(toOptions...).Value(m.txTo),
		),
	).WithShowHelp(true).WithShowErrors(true)

	m.formKind = "tx"
	m.formActive = true
	return m, m.form.Init()
}

func (m financeModel) updateForm(msg tea.Msg) (financeModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			m.formActive = false
			m.form = nil
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.formActive = false
		return m.submitForm()
	}
	return m, cmd
}

func (m financeModel) submitForm() (financeModel, tea.Cmd) {
	switch m.formKind {
	case "wallet":
		if *m.walletName == "" {
			return m, nil
		}
		balance := int64(0)
		if *m.walletBalance != "" {
			cents, err := parseMoney(*m.walletBalance)
			if err != nil {
				return m, errorStatus(err)
			}
			balance = cents
		}
		m.mgr.Dispatch(state.AddWallet{Wallet: state.Wallet{
			ID:      uuid.NewString(),
			Name:    *m.walletName,
			Balance: balance,
		}})
		return m, status("Wallet added")

	case "tx":
		cents, err := parseMoney(*m.txAmount)
		if err != nil {
			return m, errorStatus(err)
		}
		if *m.txKind == state.TxTransfer && *m.txTo == "" {
			return m, errorStatus(fmt.Errorf("transfer needs a destination wallet"))
		}
		m.mgr.Dispatch(state.AddTransaction{Transaction: state.Transaction{
			ID:         uuid.NewString(),
			Type:       *m.txKind,
			Amount:     cents,
			Note:       *m.txDesc,
			Category:   *m.txCat,
			WalletID:   *m.txWallet,
			ToWalletID: *m.txTo,
			Date:       dateutil.FormatDate(time.Now()),
			CreatedAt:  time.Now(),
		}})
		return m, status("Transaction recorded")
	}
	return m, nil
}

func (m financeModel) view() string {
	w := m.width - 4

	if m.formActive && m.form != nil {
		title := "New Wallet"
		if m.formKind == "tx" {
			title = "New Transaction"
		}
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, titleStyle.Render(title), "", m.form.View()),
		)
	}

	s := m.mgr.State()
	currency := s.Settings.Currency

	left := m.viewWallets(s, currency)
	right := m.viewTransactions(s, currency)

	leftW := w / 3
	rightW := w - leftW - 2

	return lipgloss.JoinHorizontal(lipgloss.Top,
		panelStyle.Width(leftW).Render(left),
		panelStyle.Width(rightW).Render(right),
	)
}

func (m financeModel) viewWallets(s state.AppState, currency string) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Wallets"))
	rows = append(rows, "")

	if len(s.Wallets) == 0 {
		rows = append(rows, mutedStyle.Render("No wallets. Press w."))
		return strings.Join(rows, "\n")
	}

	var total int64
	for i, wal := range s.Wallets {
		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		balance := formatMoney(wal.Balance, currency)
		if wal.Balance < 0 {
			balance = warningStyle.Render(balance)
		}
		rows = append(rows, fmt.Sprintf("%s%s  %s", cursor, style.Render(wal.Name), balance))
		total += wal.Balance
	}

	rows = append(rows, "")
	rows = append(rows, accentStyle.Render("Total ")+highlightStyle.Render(formatMoney(total, currency)))
	return strings.Join(rows, "\n")
}

func (m financeModel) viewTransactions(s state.AppState, currency string) string {
	var rows []string
	rows = append(rows, titleStyle.Render("Recent Transactions"))
	rows = append(rows, "")

	if len(s.Transactions) == 0 {
		rows = append(rows, mutedStyle.Render("Nothing recorded yet."))
		return strings.Join(rows, "\n")
	}

	limit := max(5, m.height-10)
	shown := 0
	for i := len(s.Transactions) - 1; i >= 0 && shown < limit; i-- {
		tx := s.Transactions[i]
		amount := formatMoney(tx.Amount, currency)
		switch tx.Type {
		case state.TxIncome:
			amount = successStyle.Render("+" + amount)
		case state.TxExpense:
			amount = warningStyle.Render("-" + amount)
		case state.TxTransfer:
			amount = accentStyle.Render("⇄ " + amount)
		}
		desc := tx.Note
		if desc == "" {
			desc = tx.Category
		}
		if desc == "" {
			desc = tx.Type
		}
		rows = append(rows, fmt.Sprintf("  %s  %s  %s",
			mutedStyle.Render(tx.Date), amount, desc))
		shown++
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: transaction  w: wallet  d: delete wallet"))
	return strings.Join(rows, "\n")
}
