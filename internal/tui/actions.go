package tui

import (
	"context"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"

	"github.com/jaysuzi5/api-load-tester/internal/loadtest"
	"github.com/jaysuzi5/api-load-tester/internal/version"
)

// Message types
type endpointsRefreshedMsg struct{ urls []string }
type runProgressMsg struct{}
type runCompletedMsg struct {
	result *loadtest.Result
	err    error
}
type historyLoadedMsg struct{ runs []*loadtest.Run }
type versionCheckMsg struct {
	available     bool
	latestVersion string
	url           string
	err           error
}
type errorMsg string

// refreshEndpoints re-queries the log service off the UI goroutine.
// Discovery never fails; a dead log service yields the fallback list.
func (m *Model) refreshEndpoints() tea.Cmd {
	disco := m.disco
	return func() tea.Msg {
		return endpointsRefreshedMsg{urls: disco.Refresh(context.Background())}
	}
}

// startRun validates the inputs and launches the load test
func (m *Model) startRun() tea.Cmd {
	url := m.selectedURL()
	if url == "" {
		m.errorMsg = "Please select an API endpoint"
		return nil
	}

	total, err := strconv.Atoi(m.totalInput)
	if err != nil {
		m.errorMsg = "Number of requests must be a positive integer"
		return nil
	}
	workers, err := strconv.Atoi(m.workersInput)
	if err != nil {
		m.errorMsg = "Number of workers must be a positive integer"
		return nil
	}

	cfg := loadtest.Config{
		URL:           url,
		TotalRequests: total,
		Workers:       workers,
	}
	if err := cfg.Validate(); err != nil {
		m.errorMsg = err.Error()
		return nil
	}

	m.runConfig = cfg
	m.runStart = time.Now()
	m.runResult = nil
	m.runErr = nil
	m.lastSnapshot = loadtest.Snapshot{}
	m.errorMsg = ""
	m.statusMsg = "Test started"
	m.mode = ModeRunning

	done := make(chan runCompletedMsg, 1)
	m.runDone = done

	controller := m.controller
	go func() {
		result, err := controller.Run(context.Background(), cfg, nil)
		done <- runCompletedMsg{result: result, err: err}
	}()

	return tea.Batch(m.pollRunProgress(), waitForRun(done))
}

// pollRunProgress re-reads the shared counters for display
func (m *Model) pollRunProgress() tea.Cmd {
	return tea.Tick(loadtest.DefaultReportInterval, func(time.Time) tea.Msg {
		return runProgressMsg{}
	})
}

// waitForRun delivers the run's final result into the update loop
func waitForRun(done <-chan runCompletedMsg) tea.Cmd {
	return func() tea.Msg {
		return <-done
	}
}

// loadHistory fetches recent runs from the database
func (m *Model) loadHistory() tea.Cmd {
	manager := m.manager
	return func() tea.Msg {
		if manager == nil {
			return errorMsg("Run history is not available")
		}
		runs, err := manager.ListRuns(50)
		if err != nil {
			return errorMsg("Failed to load history: " + err.Error())
		}
		return historyLoadedMsg{runs: runs}
	}
}

// checkForUpdate looks for a newer release in the background
func (m *Model) checkForUpdate() tea.Cmd {
	if m.updateAvailable {
		return nil
	}
	current := m.version
	return func() tea.Msg {
		available, latest, url, err := version.CheckForUpdate(current)
		return versionCheckMsg{available: available, latestVersion: latest, url: url, err: err}
	}
}

// applyFilter recomputes fuzzy matches for the current query
func (m *Model) applyFilter() {
	if m.filterQuery == "" {
		m.filterMatches = nil
		return
	}

	matches := fuzzy.Find(m.filterQuery, m.endpoints)
	m.filterMatches = make([]int, 0, len(matches))
	for _, match := range matches {
		m.filterMatches = append(m.filterMatches, match.Index)
	}

	if m.endpointIndex >= len(m.filterMatches) {
		m.endpointIndex = 0
	}
}

// clearFilter drops the typeahead query and restores the full list
func (m *Model) clearFilter() {
	m.filterQuery = ""
	m.filterMatches = nil
}

// moveSelection moves the endpoint cursor by delta, clamped to the list
func (m *Model) moveSelection(delta int) {
	count := m.visibleCount()
	if count == 0 {
		return
	}

	m.endpointIndex += delta
	if m.endpointIndex < 0 {
		m.endpointIndex = 0
	} else if m.endpointIndex >= count {
		m.endpointIndex = count - 1
	}

	if idx := m.visibleToEndpointIndex(m.endpointIndex); idx >= 0 {
		m.disco.Select(idx)
	}
}
