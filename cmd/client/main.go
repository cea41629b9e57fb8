package main

import (
	"fmt"

	"github.com/joho/godotenv"

	"github.com/mcmarket/mcmarket-client/internal/adapter"
	"github.com/mcmarket/mcmarket-client/internal/callback"
	"github.com/mcmarket/mcmarket-client/internal/client"
	"github.com/mcmarket/mcmarket-client/internal/config"
	"github.com/mcmarket/mcmarket-client/internal/logger"
	"github.com/mcmarket/mcmarket-client/internal/service"
	"github.com/mcmarket/mcmarket-client/internal/store"
	"github.com/mcmarket/mcmarket-client/internal/tui"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// a missing .env is fine, the environment itself still applies
	_ = godotenv.Load()

	log := logger.NewClientLogger("mcmarket-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	market, err := adapter.NewHTTPMarketAdapter(cfg.API, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create market adapter")
	}

	storages, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	listener := callback.NewListener(cfg.Callback, log)
	services := service.NewClientServices(storages, market, listener, log)

	ui := tui.New(services, storages.Onboarding, log)

	app, err := client.NewApp(services, ui, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
