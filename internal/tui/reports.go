package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"daywise/internal/dateutil"
	"daywise/internal/state"
)

type reportMode int

const (
	reportSpending reportMode = iota
	reportHabits
)

// reportsModel charts the last seven days of either spending per
// category or habit completions. Left/right pages week by week.
type reportsModel struct {
	mgr    *state.Manager
	width  int
	height int

	mode   reportMode
	offset int // 7-day blocks back from today (0 = current)

	chart barchart.Model
}

func newReportsModel(mgr *state.Manager) reportsModel {
	return reportsModel{
		mgr:   mgr,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
	r.buildChart()
}

func (r reportsModel) dateRange() (time.Time, time.Time) {
	today := dateutil.Midnight(time.Now())
	end := dateutil.AddDays(today, 1-7*r.offset)
	return dateutil.AddDays(end, -7), end
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return r, nil
	}

	switch {
	case key.Matches(keyMsg, keys.Left):
		r.offset++
		r.buildChart()
	case key.Matches(keyMsg, keys.Right):
		if r.offset > 0 {
			r.offset--
		}
		r.buildChart()
	case keyMsg.String() == "m":
		if r.mode == reportSpending {
			r.mode = reportHabits
		} else {
			r.mode = reportSpending
		}
		r.offset = 0
		r.buildChart()
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := r.dateRange()

	var bars []barchart.BarData
	for d := from; d.Before(to); d = dateutil.AddDays(d, 1) {
		dateStr := dateutil.FormatDate(d)
		label := d.Format("Mon 02")

		var values []barchart.BarValue
		if r.mode == reportSpending {
			values = r.spendingValues(dateStr)
		} else {
			values = r.habitValues(dateStr)
		}

		if len(values) == 0 {
			values = []barchart.BarValue{{Name: "", Value: 0, Style: lipgloss.NewStyle().Foreground(colorSubtle)}}
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: values,
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

// spendingValues stacks one bar segment per expense category for the
// given day, in whole currency units.
func (r reportsModel) spendingValues(dateStr string) []barchart.BarValue {
	byCategory := map[string]int64{}
	var order []string
	for _, tx := range r.mgr.State().Transactions {
		if tx.Date != dateStr || tx.Type != state.TxExpense {
			continue
		}
		cat := tx.Category
		if cat == "" {
			cat = "other"
		}
		if _, ok := byCategory[cat]; !ok {
			order = append(order, cat)
		}
		byCategory[cat] += tx.Amount
	}

	var values []barchart.BarValue
	for i, cat := range order {
		values = append(values, barchart.BarValue{
			Name:  cat,
			Value: float64(byCategory[cat]) / 100.0,
			Style: lipgloss.NewStyle().Foreground(chartPalette[i%len(chartPalette)]),
		})
	}
	return values
}

// habitValues stacks one unit-height segment per habit completed on
// the given day.
func (r reportsModel) habitValues(dateStr string) []barchart.BarValue {
	var values []barchart.BarValue
	for i, h := range r.mgr.State().Habits {
		done := false
		for _, rec := range h.Records {
			if rec == dateStr {
				done = true
				break
			}
		}
		if !done {
			continue
		}
		color := lipgloss.Color(h.Color)
		if h.Color == "" {
			color = chartPalette[i%len(chartPalette)]
		}
		values = append(values, barchart.BarValue{
			Name:  h.Title,
			Value: 1,
			Style: lipgloss.NewStyle().Foreground(color),
		})
	}
	return values
}

func (r reportsModel) view() string {
	w := r.width - 4

	spendingTab := inactiveTabStyle.Render("Spending")
	habitsTab := inactiveTabStyle.Render("Habits")
	if r.mode == reportSpending {
		spendingTab = activeTabStyle.Render("Spending")
	} else {
		habitsTab = activeTabStyle.Render("Habits")
	}
	modeTabs := lipgloss.JoinHorizontal(lipgloss.Bottom, spendingTab, habitsTab)

	from, to := r.dateRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		from.Format("Jan 02"), dateutil.AddDays(to, -1).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", modeTabs, "  ", dateLabel,
	)

	var summary string
	if r.mode == reportSpending {
		summary = r.renderSpendingSummary()
	} else {
		summary = r.renderHabitSummary()
	}

	nav := mutedStyle.Render("  ←/→: navigate  m: switch mode")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", summary, "", nav,
		),
	)
}

func (r reportsModel) renderSpendingSummary() string {
	from, to := r.dateRange()
	currency := r.mgr.State().Settings.Currency

	var spent, earned int64
	for _, tx := range r.mgr.State().Transactions {
		d, err := dateutil.ParseDate(tx.Date)
		if err != nil || d.Before(from) || !d.Before(to) {
			continue
		}
		switch tx.Type {
		case state.TxExpense:
			spent += tx.Amount
		case state.TxIncome:
			earned += tx.Amount
		}
	}

	if spent == 0 && earned == 0 {
		return mutedStyle.Render("  No transactions this week")
	}
	return fmt.Sprintf("  %s %s   %s %s",
		mutedStyle.Render("Spent"), warningStyle.Render(formatMoney(spent, currency)),
		mutedStyle.Render("Earned"), successStyle.Render(formatMoney(earned, currency)),
	)
}

func (r reportsModel) renderHabitSummary() string {
	from, to := r.dateRange()
	habits := r.mgr.State().Habits
	if len(habits) == 0 {
		return mutedStyle.Render("  No habits tracked")
	}

	var items []string
	for _, h := range habits {
		count := 0
		for _, rec := range h.Records {
			d, err := dateutil.ParseDate(rec)
			if err != nil || d.Before(from) || !d.Before(to) {
				continue
			}
			count++
		}
		items = append(items, fmt.Sprintf("%s %d/7", h.Title, count))
	}
	return "  " + mutedStyle.Render(strings.Join(items, "  "))
}
