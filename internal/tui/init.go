package tui

import (
	"fmt"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jaysuzi5/api-load-tester/internal/config"
	"github.com/jaysuzi5/api-load-tester/internal/discovery"
	"github.com/jaysuzi5/api-load-tester/internal/loadtest"
	"github.com/jaysuzi5/api-load-tester/internal/splunk"
)

// New creates a new TUI model
func New(settings *config.Settings, disco *discovery.Service, manager *loadtest.Manager, version string) *Model {
	return &Model{
		settings:     settings,
		disco:        disco,
		manager:      manager,
		controller:   loadtest.NewController(loadtest.NewDispatcher(), manager),
		mode:         ModeNormal,
		version:      version,
		totalInput:   strconv.Itoa(settings.Defaults.TotalRequests),
		workersInput: strconv.Itoa(settings.Defaults.Workers),
	}
}

// Run starts the TUI
func Run(version string) error {
	if err := config.Initialize(); err != nil {
		return err
	}

	settings, err := config.Load()
	if err != nil {
		return err
	}

	client := splunk.NewClient(settings.Splunk)
	disco := discovery.NewService(client, settings.BaseURL, settings.Splunk.Index)

	manager, err := loadtest.NewManager(config.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open run history: %w", err)
	}

	m := New(settings, disco, manager, version)
	defer m.Cleanup()

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}

	return nil
}
