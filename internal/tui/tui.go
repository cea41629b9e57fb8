// Package tui renders the marketplace client in the terminal. A single
// Bubble Tea model owns the screens; all navigation flows through the route
// guards so authorization lives in one place.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/internal/service"
	"github.com/mcmarket/mcmarket-client/internal/store"
)

type TUI struct {
	services    *service.ClientServices
	onboardings store.OnboardingRepository
	logger      *logger.Logger
}

func New(services *service.ClientServices, onboardings store.OnboardingRepository, log *logger.Logger) *TUI {
	return &TUI{services: services, onboardings: onboardings, logger: log}
}

// Run starts the terminal program and blocks until the user quits. The
// session bootstrap runs as the program's first command, so the loading
// placeholder is the first thing on screen.
func (t *TUI) Run(ctx context.Context) error {
	model := newAppModel(ctx, t.services, t.onboardings, t.logger)
	_, err := tea.NewProgram(model, tea.WithAltScreen()).Run()
	return err
}
