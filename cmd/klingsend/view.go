package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/Klingon-tech/klingsend/internal/address"
	"github.com/Klingon-tech/klingsend/pkg/entry"
)

var (
	colAccent = lipgloss.Color("81")
	colMuted  = lipgloss.Color("241")
	colReady  = lipgloss.Color("114")
	colError  = lipgloss.Color("203")

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colAccent).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Foreground(colAccent).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colMuted).
			Width(10)

	focusLabelStyle = lipgloss.NewStyle().
			Foreground(colAccent).
			Bold(true).
			Width(10)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colMuted)

	readyStyle = lipgloss.NewStyle().
			Foreground(colReady)

	errorStyle = lipgloss.NewStyle().
			Foreground(colError)

	hintStyle = lipgloss.NewStyle().
			Foreground(colMuted).
			Italic(true)
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Klingsend"))
	b.WriteString("\n\n")
	b.WriteString(m.renderAssetLine())
	b.WriteString("\n")
	b.WriteString(m.renderAddressLine())
	b.WriteString("\n")
	b.WriteString(m.renderAmountLine())
	b.WriteString("\n")
	b.WriteString(m.renderBalanceLine())
	b.WriteString("\n")

	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render(m.helpText()))

	return panelStyle.Render(b.String())
}

func (m model) label(name string, field int) string {
	if m.focus == field {
		return focusLabelStyle.Render("> " + name)
	}
	return labelStyle.Render("  " + name)
}

func (m model) renderAssetLine() string {
	asset, ok := m.ctl.SelectedAsset()
	if !ok {
		return m.label("Asset", focusAsset) + mutedStyle.Render("‹ none ›")
	}
	chainID, symbol, _ := m.ctl.Selection()
	detail := fmt.Sprintf("  %s, %d decimals", asset.Name, asset.Decimals)
	return m.label("Asset", focusAsset) +
		fmt.Sprintf("‹ %s · %s ›", chainID, symbol) +
		mutedStyle.Render(detail)
}

func (m model) renderAddressLine() string {
	line := m.label("Address", focusAddress) + m.addrInput.View()
	if hint := m.addressHint(); hint != "" {
		line += errorStyle.Render("  ✗ " + hint)
	}
	return line
}

// addressHint flags a committed address that cannot belong to the selected
// chain. Derived on every render from current state; nothing is stored, so
// the hint can never go stale when the asset or address changes.
func (m model) addressHint() string {
	addr := m.ctl.Address()
	if addr == "" {
		return ""
	}
	chainID, _, ok := m.ctl.Selection()
	if !ok {
		return ""
	}
	chain, ok := m.reg.Chain(chainID)
	if !ok || chain.HRP == "" {
		return ""
	}
	if err := address.Check(addr, chain.HRP); err != nil {
		return fmt.Sprintf("not a %s address", chain.HRP)
	}
	return ""
}

func (m model) renderAmountLine() string {
	text := m.field.Value()
	if m.focus == focusAmount {
		text += "█"
	} else if text == "" {
		text = mutedStyle.Render("0")
	}
	suffix := ""
	if _, symbol, ok := m.ctl.Selection(); ok {
		suffix = mutedStyle.Render(" " + symbol)
	}
	return m.label("Amount", focusAmount) + text + suffix
}

func (m model) renderBalanceLine() string {
	prefix := labelStyle.Render("  Balance")
	switch m.ctl.BalanceState() {
	case entry.BalancePending:
		return prefix + m.spin.View() + " " + mutedStyle.Render(entry.PendingLabel)
	case entry.BalanceReady:
		label := m.ctl.BalanceLabel()
		if _, symbol, ok := m.ctl.Selection(); ok {
			label += " " + symbol
		}
		return prefix + readyStyle.Render(label)
	default:
		return prefix + mutedStyle.Render(m.ctl.BalanceLabel())
	}
}

func (m model) helpText() string {
	switch m.focus {
	case focusAsset:
		return "←/→ choose asset • c clear • tab next field • q quit"
	case focusAddress:
		return "type address • ctrl+v paste • enter next field"
	default:
		return "type amount • backspace delete • m max • r refresh • ctrl+v paste • q quit"
	}
}
