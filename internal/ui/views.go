package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/waitline/waitline/internal/format"
	"github.com/waitline/waitline/internal/queue"
	"github.com/waitline/waitline/internal/queueapi"
)

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	vm := queue.Build(m.snapshot.Entries, m.filter, m.now)

	var body string
	switch m.current {
	case viewForm:
		body = m.renderForm()
	case viewConfirmRemove:
		body = m.renderConfirm()
	case viewHelp:
		body = m.renderHelp()
	default:
		body = m.renderList(vm.Rows)
	}

	sections := []string{
		m.renderHeader(vm.Stats),
		body,
		m.renderFooter(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(stats queue.Stats) string {
	brand := m.styles.Logo.Render("waitline")

	var badges []string
	if m.snapshot.Demo {
		badges = append(badges, m.styles.WarningText.Render("DEMO"))
	}
	if m.snapshot.IsOffline() {
		badges = append(badges, m.styles.DangerText.Render("OFFLINE"))
	}
	if m.snapshot.Loading || m.mutating {
		badges = append(badges, m.styles.InfoText.Render("..."))
	}

	stage := m.styles.MutedText.Render(m.opts.Config.Stage)
	updated := "--:--"
	if !m.snapshot.LastUpdated.IsZero() {
		updated = format.ClockTime(m.snapshot.LastUpdated)
	}

	left := strings.Join(append([]string{brand, stage}, badges...), " ")
	statLine := fmt.Sprintf("waiting %d  est %s  served today %d  filter %s  updated %s",
		stats.Waiting, stats.EstimatedWait, stats.ServedToday, filterLabel(m.filter), updated)
	right := m.styles.MutedText.Render(statLine)

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return m.styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func filterLabel(filter queueapi.Status) string {
	if filter == "" {
		return "all"
	}
	return string(filter)
}

func (m Model) renderList(rows []queue.Row) string {
	if len(rows) == 0 {
		msg := "No parties in the queue"
		if m.filter != "" {
			msg = fmt.Sprintf("No %s parties", m.filter)
		}
		return m.styles.MutedText.Padding(1, 2).Render(msg)
	}

	lines := make([]string, 0, len(rows))
	for i, row := range rows {
		lines = append(lines, m.renderRow(row, i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderRow(row queue.Row, selected bool) string {
	pos := " - "
	if row.Position > 0 {
		pos = fmt.Sprintf("#%-2d", row.Position)
	}

	checkIn := format.ClockTime(row.Entry.ParsedCheckIn())
	line := fmt.Sprintf(" %s %-24s x%-3d %-17s in %s  wait %-8s",
		pos,
		truncate(row.Entry.Name, 24),
		row.Entry.PartySize,
		format.PhoneDisplay(row.Entry.Phone),
		checkIn,
		row.Wait,
	)

	badge := m.styles.StatusStyle(row.Entry.Status).Render(row.Entry.Status.Label())
	if selected {
		return m.styles.Selected.Render(line) + " " + badge
	}
	return m.styles.Text.Render(line) + " " + badge
}

func (m Model) renderForm() string {
	labels := []string{"Name", "Phone", "Party size"}
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Bold(true).Render(m.form.title()))
	b.WriteString("\n\n")
	for i, input := range m.form.inputs {
		label := labels[i]
		if m.form.focus == i {
			b.WriteString(m.styles.AccentText.Render("> " + label))
		} else {
			b.WriteString(m.styles.MutedText.Render("  " + label))
		}
		b.WriteString("\n  ")
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	if m.form.mode == formEdit {
		label := "  Status"
		if m.form.onStatus() {
			label = m.styles.AccentText.Render("> Status")
		} else {
			label = m.styles.MutedText.Render(label)
		}
		b.WriteString(label)
		b.WriteString("\n  ")
		b.WriteString(m.styles.StatusText(m.form.status).Render("< " + m.form.status.Label() + " >"))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("enter save · tab next field · esc cancel"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) renderConfirm() string {
	prompt := fmt.Sprintf("Remove %s from the queue?", m.confirm)
	return lipgloss.NewStyle().Padding(1, 2).Render(
		m.styles.DangerText.Render(prompt) + "\n\n" +
			m.styles.MutedText.Render("y confirm · n cancel"))
}

func (m Model) renderHelp() string {
	rows := [][2]string{
		{"j/k", "navigate"},
		{"a", "add a party"},
		{"e", "edit the selected party"},
		{"c", "call the selected waiting party"},
		{"s", "seat the selected called party"},
		{"x", "remove the selected party"},
		{"f", "cycle the status filter"},
		{"r", "refresh now"},
		{"t", "switch theme"},
		{"q", "quit"},
	}
	var b strings.Builder
	b.WriteString(m.styles.AccentText.Bold(true).Render("Keys"))
	b.WriteString("\n\n")
	for _, row := range rows {
		b.WriteString(fmt.Sprintf("%s  %s\n",
			m.styles.InfoText.Render(fmt.Sprintf("%4s", row[0])),
			m.styles.Text.Render(row[1])))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.MutedText.Render("press any key to close"))
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (m Model) renderFooter() string {
	if len(m.toasts) > 0 {
		latest := m.toasts[len(m.toasts)-1]
		style := m.styles.InfoText
		switch latest.level {
		case toastSuccess:
			style = m.styles.SuccessText
		case toastError:
			style = m.styles.DangerText
		}
		return m.styles.Footer.Width(m.width).Render(style.Render(latest.text))
	}

	hints := "a add · e edit · c call · s seat · x remove · f filter · r refresh · ? help · q quit"
	return m.styles.Footer.Width(m.width).Render(hints)
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 1 {
		return string(runes[:max])
	}
	return string(runes[:max-1]) + "…"
}
