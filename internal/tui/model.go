package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaysuzi5/api-load-tester/internal/config"
	"github.com/jaysuzi5/api-load-tester/internal/discovery"
	"github.com/jaysuzi5/api-load-tester/internal/loadtest"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeNormal Mode = iota
	ModeFilter
	ModeEditRequests
	ModeEditWorkers
	ModeRunning
	ModeResults
	ModeHistory
	ModeHelp
)

// Model represents the TUI state
type Model struct {
	// Core state
	settings   *config.Settings
	disco      *discovery.Service
	manager    *loadtest.Manager
	controller *loadtest.Controller
	mode       Mode
	version    string

	// Endpoint list
	endpoints      []string
	endpointIndex  int
	endpointOffset int
	refreshing     bool

	// Typeahead filter
	filterQuery   string
	filterMatches []int // indices into endpoints

	// Run configuration input buffers
	totalInput   string
	workersInput string
	editBackup   string // restored on ESC

	// Active run state
	runConfig    loadtest.Config
	runStart     time.Time
	lastSnapshot loadtest.Snapshot
	runResult    *loadtest.Result
	runErr       error
	runDone      chan runCompletedMsg

	// History state
	historyRuns  []*loadtest.Run
	historyIndex int

	// Update notification
	updateAvailable bool
	latestVersion   string
	updateURL       string

	// UI state
	width     int
	height    int
	helpView  viewport.Model
	statusMsg string
	errorMsg  string
}

// Init kicks off the initial endpoint discovery
func (m *Model) Init() tea.Cmd {
	m.refreshing = true
	return m.refreshEndpoints()
}

// Cleanup closes database connections
func (m *Model) Cleanup() {
	if m.manager != nil {
		if err := m.manager.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "error closing run history database: %v\n", err)
		}
	}
}

// Update handles messages and updates the model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		cmd = m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.helpView.Width = msg.Width
		m.helpView.Height = msg.Height - 6
		if m.helpView.Height < 3 {
			m.helpView.Height = 3
		}
		m.updateHelpView()

	case endpointsRefreshedMsg:
		m.refreshing = false
		m.endpoints = msg.urls
		m.endpointIndex = m.disco.SelectedIndex()
		m.endpointOffset = 0
		m.clearFilter()
		m.statusMsg = fmt.Sprintf("Loaded %d endpoints", len(msg.urls))

	case runProgressMsg:
		// Keep polling while the run is active; the completion message
		// carries the authoritative final totals
		if m.mode == ModeRunning {
			m.lastSnapshot = m.controller.Counters().Snapshot()
			return m, m.pollRunProgress()
		}

	case runCompletedMsg:
		m.runDone = nil
		m.runResult = msg.result
		m.runErr = msg.err
		if msg.result != nil {
			m.lastSnapshot = loadtest.Snapshot{Success: msg.result.Success, Failure: msg.result.Failure}
		}
		m.mode = ModeResults
		if msg.err != nil {
			m.errorMsg = fmt.Sprintf("Test failed: %v", msg.err)
		} else {
			m.statusMsg = "Test complete"
		}

	case historyLoadedMsg:
		m.historyRuns = msg.runs
		m.historyIndex = 0
		m.mode = ModeHistory
		m.statusMsg = fmt.Sprintf("Loaded %d past runs", len(msg.runs))

	case versionCheckMsg:
		if msg.err == nil && msg.available {
			m.updateAvailable = true
			m.latestVersion = msg.latestVersion
			m.updateURL = msg.url
			m.updateHelpView()
		}

	case errorMsg:
		m.errorMsg = string(msg)
	}

	return m, cmd
}

// View renders the current mode
func (m *Model) View() string {
	switch m.mode {
	case ModeRunning:
		return m.renderRun()
	case ModeResults:
		return m.renderRun()
	case ModeHistory:
		return m.renderHistory()
	case ModeHelp:
		return m.renderHelp()
	default:
		return m.renderMain()
	}
}

// selectedURL returns the URL under the cursor, honoring an active filter
func (m *Model) selectedURL() string {
	idx := m.visibleToEndpointIndex(m.endpointIndex)
	if idx < 0 || idx >= len(m.endpoints) {
		return ""
	}
	return m.endpoints[idx]
}

// visibleCount returns how many endpoints the current filter shows
func (m *Model) visibleCount() int {
	if m.filterQuery != "" {
		return len(m.filterMatches)
	}
	return len(m.endpoints)
}

// visibleToEndpointIndex maps a position in the rendered list back to the
// full endpoint slice
func (m *Model) visibleToEndpointIndex(visible int) int {
	if m.filterQuery == "" {
		return visible
	}
	if visible < 0 || visible >= len(m.filterMatches) {
		return -1
	}
	return m.filterMatches[visible]
}
