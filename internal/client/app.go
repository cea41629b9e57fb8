package client

import (
	"context"

	"github.com/mcmarket/mcmarket-client/internal/config"
	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/internal/service"
	"github.com/mcmarket/mcmarket-client/internal/tui"
)

// App ties the client services, the background refresh job, and the terminal
// UI into one process lifecycle.
type App struct {
	services *service.ClientServices
	tui      *tui.TUI
	workers  config.Workers
	logger   *logger.Logger
}

func NewApp(services *service.ClientServices, ui *tui.TUI, workers config.Workers, log *logger.Logger) (*App, error) {
	return &App{services: services, tui: ui, workers: workers, logger: log}, nil
}

// Run starts the session refresh job and hands the terminal to the UI. The
// session bootstrap itself runs as the UI's first command so the loading
// placeholder renders while the persisted token is re-validated.
func (a *App) Run() error {
	ctx := a.logger.WithContext(context.Background())

	a.services.RefreshJob.Start(ctx, a.workers.RefreshInterval)
	defer a.services.RefreshJob.Stop()

	return a.tui.Run(ctx)
}
