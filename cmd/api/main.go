package main

import (
	"flag"
	"log/slog"
	"os"

	"explorer.navitia.org/internal/appconf"
	"explorer.navitia.org/internal/navitia"
)

func main() {
	var cfg appconf.Config
	var navitiaCfg navitia.Config
	var apiKeysFlag string
	var envFlag string
	var configFile string
	var stationsDBPath string
	var disruptionRefreshSecs int

	// Parse command-line flags
	flag.IntVar(&cfg.Port, "port", 4000, "API server port")
	flag.StringVar(&envFlag, "env", "development", "Environment (development|test|production)")
	flag.StringVar(&apiKeysFlag, "api-keys", "test", "Comma Separated API Keys (test, etc)")
	flag.IntVar(&cfg.RateLimit, "rate-limit", 100, "Requests per second per API key for rate limiting")
	flag.StringVar(&navitiaCfg.BaseURL, "navitia-url", "https://api.navitia.io/v1", "Base URL of the Navitia API")
	flag.StringVar(&navitiaCfg.Token, "navitia-token", "", "Navitia API token")
	flag.StringVar(&navitiaCfg.Coverage, "coverage", "sncf", "Navitia coverage to query")
	flag.IntVar(&disruptionRefreshSecs, "disruption-refresh-seconds", 120, "Seconds between disruption cache refreshes")
	flag.StringVar(&stationsDBPath, "stations-db", "./stations.db", "Path to the SQLite database holding the station directory")
	flag.StringVar(&configFile, "config-file", "", "Optional JSON config file; overrides the other flags")
	flag.Parse()

	cfg.Verbose = true
	navitiaCfg.Verbose = true
	navitiaCfg.DisruptionRefreshInterval = secondsToDuration(disruptionRefreshSecs)

	cfg.ApiKeys = ParseAPIKeys(apiKeysFlag)
	cfg.Env = appconf.EnvFlagToEnvironment(envFlag)

	if configFile != "" {
		jsonCfg, err := appconf.LoadFromFile(configFile)
		if err != nil {
			logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
			logger.Error("failed to load config file", "error", err, "path", configFile)
			os.Exit(1)
		}
		cfg = jsonCfg.ToAppConfig()
		navitiaCfg = jsonCfg.ToNavitiaConfig()
		stationsDBPath = jsonCfg.StationsDBPath
	}

	// Build application with dependencies
	coreApp, err := BuildApplication(cfg, navitiaCfg, stationsDBPath)
	if err != nil {
		logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
		logger.Error("failed to build application", "error", err)
		os.Exit(1)
	}

	// Create HTTP server
	srv, api := CreateServer(coreApp, cfg)

	// Run server with graceful shutdown
	if err := Run(srv, coreApp, api); err != nil {
		coreApp.Logger.Error("server error", "error", err)
		os.Exit(1)
	}
}
