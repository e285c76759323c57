package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/jaysuzi5/api-load-tester/internal/loadtest"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleSuccess = lipgloss.NewStyle().
			Foreground(colorGreen)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// renderMain renders the endpoint list and run configuration panel
func (m *Model) renderMain() string {
	if m.width == 0 {
		return ""
	}

	var content strings.Builder

	content.WriteString(styleTitle.Render("API Load Tester") + "\n\n")

	// Endpoint list
	header := fmt.Sprintf("Endpoints (%d)", m.visibleCount())
	if m.refreshing {
		header += styleSubtle.Render("  refreshing...")
	}
	content.WriteString(styleTitle.Render(header) + "\n")

	if m.mode == ModeFilter {
		content.WriteString(styleWarning.Render("/"+m.filterQuery+"_") + "\n")
	}

	content.WriteString(m.renderEndpointList())
	content.WriteString("\n")

	// Run configuration
	content.WriteString(styleTitle.Render("Configuration") + "\n")

	totalLine := fmt.Sprintf("Requests: %s", m.totalInput)
	workersLine := fmt.Sprintf("Workers:  %s", m.workersInput)
	switch m.mode {
	case ModeEditRequests:
		totalLine = styleSelected.Render(fmt.Sprintf("Requests: %s_", m.totalInput))
	case ModeEditWorkers:
		workersLine = styleSelected.Render(fmt.Sprintf("Workers:  %s_", m.workersInput))
	}
	content.WriteString(totalLine + "\n")
	content.WriteString(workersLine + "\n\n")

	content.WriteString(m.renderStatusBar())

	return content.String()
}

// renderEndpointList renders the scrollable, filterable endpoint list
func (m *Model) renderEndpointList() string {
	count := m.visibleCount()
	if count == 0 {
		if m.filterQuery != "" {
			return styleSubtle.Render("  No endpoints match the filter") + "\n"
		}
		return styleSubtle.Render("  No endpoints discovered") + "\n"
	}

	// Keep the cursor inside the visible window
	visibleRows := m.height - 14
	if visibleRows < 3 {
		visibleRows = 3
	}
	if m.endpointIndex < m.endpointOffset {
		m.endpointOffset = m.endpointIndex
	}
	if m.endpointIndex >= m.endpointOffset+visibleRows {
		m.endpointOffset = m.endpointIndex - visibleRows + 1
	}

	var list strings.Builder
	for visible := m.endpointOffset; visible < count && visible < m.endpointOffset+visibleRows; visible++ {
		idx := m.visibleToEndpointIndex(visible)
		if idx < 0 {
			continue
		}
		line := "  " + m.endpoints[idx]
		if visible == m.endpointIndex {
			line = styleSelected.Render("> " + m.endpoints[idx])
		}
		list.WriteString(line + "\n")
	}
	return list.String()
}

// renderRun renders the live progress and final results view
func (m *Model) renderRun() string {
	var content strings.Builder

	state := m.controller.State()
	title := "Load Test - " + m.renderState(state)
	content.WriteString(styleTitle.Render("API Load Tester") + "\n\n")
	content.WriteString(title + "\n\n")

	content.WriteString(fmt.Sprintf("URL:      %s\n", m.runConfig.URL))
	content.WriteString(fmt.Sprintf("Requests: %d\n", m.runConfig.TotalRequests))
	content.WriteString(fmt.Sprintf("Workers:  %d\n\n", m.runConfig.Workers))

	snapshot := m.lastSnapshot
	completed := snapshot.Total()
	total := int64(m.runConfig.TotalRequests)

	progress := 0.0
	if total > 0 {
		progress = float64(completed) / float64(total) * 100.0
	}
	content.WriteString(fmt.Sprintf("%d/%d requests (%.1f%%)\n", completed, total, progress))

	// Progress bar
	barWidth := 40
	filled := int(progress / 100.0 * float64(barWidth))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
	content.WriteString(bar + "\n\n")

	content.WriteString(styleSuccess.Render(fmt.Sprintf("Success: %d", snapshot.Success)) + "\n")
	content.WriteString(styleError.Render(fmt.Sprintf("Failure: %d", snapshot.Failure)) + "\n")

	if m.mode == ModeResults && m.runResult != nil {
		content.WriteString(fmt.Sprintf("Elapsed: %s\n", formatDuration(m.runResult.Elapsed)))
		content.WriteString(fmt.Sprintf("Transactions/min: %.1f\n", m.runResult.TPM))
	} else {
		content.WriteString(fmt.Sprintf("Elapsed: %s\n", formatDuration(time.Since(m.runStart))))
		content.WriteString(fmt.Sprintf("Active workers: %d\n", m.controller.Dispatcher().ActiveWorkers()))
	}

	if m.runErr != nil {
		content.WriteString("\n" + styleError.Render(fmt.Sprintf("Error: %v", m.runErr)) + "\n")
	}

	content.WriteString("\n")
	if m.mode == ModeResults {
		content.WriteString(styleSubtle.Render("enter/esc: back | y: copy result | H: history"))
	} else {
		content.WriteString(styleSubtle.Render("Running - waiting for workers to finish"))
	}

	return content.String()
}

// renderState colors the run status text
func (m *Model) renderState(state loadtest.State) string {
	switch state {
	case loadtest.StateRunning:
		return styleWarning.Render(state.String())
	case loadtest.StateComplete:
		return styleSuccess.Render(state.String())
	default:
		return styleSubtle.Render(state.String())
	}
}

// renderHistory renders the past run list
func (m *Model) renderHistory() string {
	var content strings.Builder

	content.WriteString(styleTitle.Render("Run History") + "\n\n")

	if len(m.historyRuns) == 0 {
		content.WriteString(styleSubtle.Render("  No past runs") + "\n")
	}

	for i, run := range m.historyRuns {
		line := fmt.Sprintf("%s  %-9s  %d/%d ok  %.1f tpm  %s",
			run.StartedAt.Format("2006-01-02 15:04"),
			run.Status,
			run.SuccessCount,
			run.SuccessCount+run.FailureCount,
			run.TPM,
			run.URL)

		if i == m.historyIndex {
			content.WriteString(styleSelected.Render("> "+line) + "\n")
			continue
		}

		switch run.Status {
		case "failed":
			content.WriteString("  " + styleError.Render(line) + "\n")
		case "running":
			content.WriteString("  " + styleWarning.Render(line) + "\n")
		default:
			content.WriteString("  " + line + "\n")
		}
	}

	content.WriteString("\n" + styleSubtle.Render("j/k: navigate | esc: back"))
	return content.String()
}

// updateHelpView rebuilds the help viewport content
func (m *Model) updateHelpView() {
	helpText := `API Load Tester - Keyboard Shortcuts

ENDPOINTS
  j/k, up/down   Move endpoint selection
  g/G            Go to first/last endpoint
  /              Filter endpoints (typeahead)
  r              Refresh endpoints from the log index
  y              Copy selected endpoint to clipboard

RUN
  n              Edit number of requests
  w              Edit number of workers
  enter, s       Start the load test

RESULTS
  enter/esc      Back to the endpoint list
  y              Copy result summary to clipboard

OTHER
  H              Show run history
  ?              Show this help
  q              Quit

Use j/k to scroll, ESC or ? to close`

	helpText += "\n\nloadtester v" + m.version
	if m.updateAvailable {
		helpText += "\n" + styleWarning.Render(
			fmt.Sprintf("Update available: v%s - %s", m.latestVersion, m.updateURL))
	}

	m.helpView.SetContent(helpText)
}

// renderHelp renders the scrollable keyboard shortcut reference
func (m *Model) renderHelp() string {
	var content strings.Builder
	content.WriteString(styleTitle.Render("Help") + "\n\n")
	content.WriteString(m.helpView.View())
	content.WriteString("\n\n" + styleSubtle.Render("j/k: scroll | esc: back"))
	return content.String()
}

// renderStatusBar renders the bottom status line
func (m *Model) renderStatusBar() string {
	left := styleSubtle.Render("j/k: move | /: filter | r: refresh | n/w: edit | enter: start | H: history | ?: help | q: quit")

	var line string
	if m.errorMsg != "" {
		line = styleError.Render(m.errorMsg)
	} else if m.statusMsg != "" {
		line = styleSubtle.Render(m.statusMsg)
	}

	if line == "" {
		return left
	}
	return line + "\n" + left
}

// formatDuration renders a duration with sub-second precision trimmed
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(100 * time.Millisecond).String()
}
