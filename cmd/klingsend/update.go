package main

import (
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Klingon-tech/klingsend/pkg/entry"
)

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		// Keep spinning only while a fetch is outstanding.
		if m.ctl.BalanceState() == entry.BalancePending {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case balanceDoneMsg:
		if msg.err != nil {
			m.status = "balance fetch failed, r retries"
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusAddress {
		var cmd tea.Cmd
		m.addrInput, cmd = m.addrInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.status = ""

	switch msg.String() {
	case "ctrl+c", "esc":
		return m, tea.Quit
	case "tab", "enter":
		return m.cycleFocus(1)
	case "shift+tab":
		return m.cycleFocus(-1)
	}

	switch m.focus {
	case focusAsset:
		return m.handleAssetKey(msg)
	case focusAddress:
		return m.handleAddressKey(msg)
	default:
		return m.handleAmountKey(msg)
	}
}

// cycleFocus moves keyboard focus between the three fields. Leaving the
// address field commits the edited address.
func (m model) cycleFocus(dir int) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if m.focus == focusAddress {
		m.addrInput.Blur()
		if cmd := m.commitAddress(); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	m.focus = (m.focus + dir + focusCount) % focusCount
	if m.focus == focusAddress {
		cmds = append(cmds, m.addrInput.Focus())
	}
	return m, tea.Batch(cmds...)
}

// commitAddress pushes the edited address into the controller. A changed
// address invalidates any resolved balance, so a fresh fetch starts
// immediately when an asset is selected.
func (m *model) commitAddress() tea.Cmd {
	addr := strings.TrimSpace(m.addrInput.Value())
	if addr == m.ctl.Address() {
		return nil
	}
	m.ctl.SetAddress(addr)
	if _, _, ok := m.ctl.Selection(); ok {
		return tea.Batch(m.fetchBalance(), m.spin.Tick)
	}
	return nil
}

func (m model) handleAssetKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "left", "up", "h", "k":
		return m.cycleAsset(-1)
	case "right", "down", "l", "j", " ":
		return m.cycleAsset(1)
	case "c":
		m.ctl.ClearSelection()
		m.selected = -1
		return m, nil
	case "r":
		return m.refresh()
	case "m":
		m.ctl.UseMax()
		return m, nil
	case "q":
		return m, tea.Quit
	}
	return m, nil
}

// cycleAsset moves the selection through the registry in declaration
// order, wrapping at either end. Selecting clears the field and starts a
// balance fetch for the new asset.
func (m model) cycleAsset(dir int) (tea.Model, tea.Cmd) {
	if len(m.assets) == 0 {
		return m, nil
	}
	idx := m.selected
	if idx < 0 {
		idx = 0
		if dir < 0 {
			idx = len(m.assets) - 1
		}
	} else {
		idx = (idx + dir + len(m.assets)) % len(m.assets)
	}
	ref := m.assets[idx]
	if err := m.ctl.SelectAsset(ref.chainID, ref.symbol); err != nil {
		m.status = err.Error()
		return m, nil
	}
	m.selected = idx
	return m, tea.Batch(m.fetchBalance(), m.spin.Tick)
}

func (m model) handleAddressKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+v" {
		if text, err := clipboard.ReadAll(); err == nil && text != "" {
			m.addrInput.SetValue(strings.TrimSpace(text))
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.addrInput, cmd = m.addrInput.Update(msg)
	return m, cmd
}

// handleAmountKey turns keystrokes into edit proposals. The letters m, r,
// and q double as actions because no amount can ever contain them; the
// guard would veto them as input anyway.
func (m model) handleAmountKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "m":
		m.ctl.UseMax()
		return m, nil
	case "r":
		return m.refresh()
	case "q":
		return m, tea.Quit
	case "backspace":
		m.proposeBackspace()
		return m, nil
	case "ctrl+v":
		if text, err := clipboard.ReadAll(); err == nil {
			m.proposeInsert(strings.TrimSpace(text))
		}
		return m, nil
	}

	if msg.Type == tea.KeyRunes && len(msg.Runes) == 1 {
		m.proposeInsert(string(msg.Runes))
	}
	return m, nil
}

// refresh re-fetches the balance for the current selection. Without a
// selection there is nothing to fetch.
func (m model) refresh() (tea.Model, tea.Cmd) {
	if _, _, ok := m.ctl.Selection(); !ok {
		return m, nil
	}
	return m, tea.Batch(m.fetchBalance(), m.spin.Tick)
}

// proposeInsert runs one insertion through the guard. A vetoed fragment is
// dropped without feedback; the field simply does not change.
func (m *model) proposeInsert(fragment string) {
	if fragment == "" {
		return
	}
	m.ctl.ProposeEdit(entry.EditProposal{
		Current:  m.ctl.Text(),
		Inserted: fragment,
		Kind:     entry.EditInsert,
	})
}

// proposeBackspace deletes the last character. The proposal carries the
// already reduced text; deletions are never refused. Accepted text is
// plain ASCII, so byte slicing is safe.
func (m *model) proposeBackspace() {
	text := m.ctl.Text()
	if text == "" {
		return
	}
	m.ctl.ProposeEdit(entry.EditProposal{
		Current: text[:len(text)-1],
		Kind:    entry.EditDelete,
	})
}
