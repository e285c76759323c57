package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyPress routes key presses based on current mode
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	// Global keys (work in all modes)
	if msg.String() == "ctrl+c" {
		m.Cleanup()
		return tea.Quit
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalKeys(msg)
	case ModeFilter:
		return m.handleFilterKeys(msg)
	case ModeEditRequests, ModeEditWorkers:
		return m.handleEditKeys(msg)
	case ModeRunning:
		return m.handleRunningKeys(msg)
	case ModeResults:
		return m.handleResultsKeys(msg)
	case ModeHistory:
		return m.handleHistoryKeys(msg)
	case ModeHelp:
		return m.handleHelpKeys(msg)
	}

	return nil
}

// handleNormalKeys handles keyboard input in the main view
func (m *Model) handleNormalKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q":
		m.Cleanup()
		return tea.Quit

	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "g":
		m.moveSelection(-len(m.endpoints))
	case "G":
		m.moveSelection(len(m.endpoints))

	case "/":
		m.mode = ModeFilter
		m.clearFilter()
		m.endpointIndex = 0

	case "r":
		if m.refreshing {
			return nil
		}
		m.refreshing = true
		m.statusMsg = "Refreshing endpoints..."
		return m.refreshEndpoints()

	case "n":
		m.mode = ModeEditRequests
		m.editBackup = m.totalInput
	case "w":
		m.mode = ModeEditWorkers
		m.editBackup = m.workersInput

	case "enter", "s":
		return m.startRun()

	case "y":
		if url := m.selectedURL(); url != "" {
			if err := clipboard.WriteAll(url); err != nil {
				m.errorMsg = "Failed to copy to clipboard"
			} else {
				m.statusMsg = "Endpoint copied"
			}
		}

	case "H":
		return m.loadHistory()

	case "?":
		m.mode = ModeHelp
		m.updateHelpView()
		return m.checkForUpdate()
	}

	return nil
}

// handleFilterKeys handles the typeahead endpoint filter
func (m *Model) handleFilterKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.clearFilter()
		m.mode = ModeNormal
		m.endpointIndex = 0

	case "enter":
		// Keep the filtered selection and return to the main view
		if idx := m.visibleToEndpointIndex(m.endpointIndex); idx >= 0 {
			m.disco.Select(idx)
			m.endpointIndex = idx
		}
		m.clearFilter()
		m.mode = ModeNormal

	case "backspace":
		if len(m.filterQuery) > 0 {
			m.filterQuery = m.filterQuery[:len(m.filterQuery)-1]
			m.applyFilter()
		}

	case "down":
		m.moveSelection(1)
	case "up":
		m.moveSelection(-1)

	default:
		if msg.Type == tea.KeyRunes {
			m.filterQuery += string(msg.Runes)
			m.endpointIndex = 0
			m.applyFilter()
		}
	}

	return nil
}

// handleEditKeys handles the numeric input fields
func (m *Model) handleEditKeys(msg tea.KeyMsg) tea.Cmd {
	field := &m.totalInput
	if m.mode == ModeEditWorkers {
		field = &m.workersInput
	}

	switch msg.String() {
	case "esc":
		*field = m.editBackup
		m.mode = ModeNormal

	case "enter":
		if *field == "" {
			*field = m.editBackup
		}
		m.mode = ModeNormal

	case "backspace":
		if len(*field) > 0 {
			*field = (*field)[:len(*field)-1]
		}

	default:
		// Digits only; non-numeric input never reaches the run config
		if msg.Type == tea.KeyRunes {
			for _, r := range msg.Runes {
				if r >= '0' && r <= '9' {
					*field += string(r)
				}
			}
		}
	}

	return nil
}

// handleRunningKeys handles input while a test is running. In-flight runs
// cannot be cancelled; the pool drains on its own.
func (m *Model) handleRunningKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		m.statusMsg = "Run in progress - waiting for workers to finish"
	}
	return nil
}

// handleResultsKeys handles input on the results screen
func (m *Model) handleResultsKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "enter":
		m.mode = ModeNormal

	case "y":
		if m.runResult != nil {
			summary := fmt.Sprintf("%s success=%d failure=%d elapsed=%s tpm=%.1f",
				m.runConfig.URL, m.runResult.Success, m.runResult.Failure,
				m.runResult.Elapsed, m.runResult.TPM)
			if err := clipboard.WriteAll(summary); err != nil {
				m.errorMsg = "Failed to copy to clipboard"
			} else {
				m.statusMsg = "Result copied"
			}
		}

	case "H":
		return m.loadHistory()
	}
	return nil
}

// handleHistoryKeys handles input in the run history view
func (m *Model) handleHistoryKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc":
		m.mode = ModeNormal

	case "j", "down":
		if m.historyIndex < len(m.historyRuns)-1 {
			m.historyIndex++
		}
	case "k", "up":
		if m.historyIndex > 0 {
			m.historyIndex--
		}
	}
	return nil
}

// handleHelpKeys handles input in the help view
func (m *Model) handleHelpKeys(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "q", "esc", "?":
		m.mode = ModeNormal

	case "j", "down":
		m.helpView.ScrollDown(1)
	case "k", "up":
		m.helpView.ScrollUp(1)
	case "pgup":
		m.helpView.PageUp()
	case "pgdown":
		m.helpView.PageDown()
	case "g":
		m.helpView.GotoTop()
	case "G":
		m.helpView.GotoBottom()
	}
	return nil
}
