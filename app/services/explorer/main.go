package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ardanlabs/blockexplorer/app/services/explorer/handlers"
	"github.com/ardanlabs/blockexplorer/business/core/explorer"
	"github.com/ardanlabs/blockexplorer/business/core/worker"
	"github.com/ardanlabs/blockexplorer/business/data/node"
	"github.com/ardanlabs/blockexplorer/foundation/events"
	"github.com/ardanlabs/blockexplorer/foundation/jsonrpc"
	"github.com/ardanlabs/blockexplorer/foundation/logger"
	"github.com/ardanlabs/conf/v3"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("EXPLORER")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		log.Errorw("startup", "ERROR", err)
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {

	// =========================================================================
	// Configuration

	// This is all the configuration for the application and the default values.
	// Values found in a .env file are loaded into the environment before
	// parsing.
	cfg := struct {
		conf.Version
		Web struct {
			ReadTimeout     time.Duration `conf:"default:5s"`
			WriteTimeout    time.Duration `conf:"default:10s"`
			IdleTimeout     time.Duration `conf:"default:120s"`
			ShutdownTimeout time.Duration `conf:"default:20s"`
			DebugHost       string        `conf:"default:0.0.0.0:7080"`
			APIHost         string        `conf:"default:0.0.0.0:3000"`
			CORSOrigin      string        `conf:"default:*"`
		}
		Node struct {
			URL       string        `conf:"default:http://127.0.0.1:18142/json_rpc"`
			Timeout   time.Duration `conf:"default:10s"`
			CacheSize int           `conf:"default:1024"`
			CacheTTL  time.Duration `conf:"default:10s"`
		}
		Explorer struct {
			ItemsPerPage    int           `conf:"default:10"`
			MaxItemsPerPage int           `conf:"default:100"`
			OverviewBlocks  int           `conf:"default:10"`
			MaxBlocks       int           `conf:"default:100"`
			StatsWindow     int           `conf:"default:100"`
			TipPoll         time.Duration `conf:"default:15s"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "block explorer backend for a base node",
		},
	}

	// Parse will set the defaults and then look for any overriding values
	// in environment variables and command line flags.
	const prefix = "EXPLORER"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	// =========================================================================
	// App Starting

	log.Infow("starting service", "version", build)
	defer log.Infow("shutdown complete")

	// Display the current configuration to the logs.
	out, err := conf.String(&cfg)
	if err != nil {
		return fmt.Errorf("generating config for output: %w", err)
	}
	log.Infow("startup", "config", out)

	// =========================================================================
	// Base Node Support

	log.Infow("startup", "status", "initializing base node client", "url", cfg.Node.URL)

	// The rpc client caches results so repeated page and search requests
	// against the same block do not reach the base node.
	rpc := jsonrpc.New(jsonrpc.Config{
		URL:       cfg.Node.URL,
		Timeout:   cfg.Node.Timeout,
		CacheSize: cfg.Node.CacheSize,
		CacheTTL:  cfg.Node.CacheTTL,
	})

	core := explorer.NewCore(node.NewClient(rpc), explorer.Config{
		StatsWindow: cfg.Explorer.StatsWindow,
		MaxPerPage:  cfg.Explorer.MaxItemsPerPage,
		MaxBlocks:   cfg.Explorer.MaxBlocks,
	})

	// =========================================================================
	// Tip Watcher Support

	// The events value fans tip announcements out to every websocket client.
	evts := events.New()
	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		log.Infow(s, "traceid", "00000000-0000-0000-0000-000000000000")
	}

	// A new tip makes cached tip, stats and header results stale.
	wrk := worker.Run(worker.Config{
		Node:      core,
		Publisher: evts,
		Interval:  cfg.Explorer.TipPoll,
		Timeout:   cfg.Node.Timeout,
		OnNewTip:  func(node.Tip) { rpc.Purge() },
		EvHandler: ev,
	})
	defer wrk.Shutdown()

	// =========================================================================
	// Start Debug Service

	log.Infow("startup", "status", "debug v1 router started", "host", cfg.Web.DebugHost)

	// Construct the mux for the debug calls.
	debugMux := handlers.DebugMux(build, log, core)

	// Start the service listening for debug requests.
	// Not concerned with shutting this down with load shedding.
	go func() {
		if err := http.ListenAndServe(cfg.Web.DebugHost, debugMux); err != nil {
			log.Errorw("shutdown", "status", "debug v1 router closed", "host", cfg.Web.DebugHost, "ERROR", err)
		}
	}()

	// =========================================================================
	// Start API Service

	log.Infow("startup", "status", "initializing V1 API support")

	// Make a channel to listen for an interrupt or terminate signal from the OS.
	// Use a buffered channel because the signal package requires it.
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	// Construct the mux for the API calls.
	apiMux := handlers.APIMux(handlers.MuxConfig{
		Shutdown:       shutdown,
		Log:            log,
		Core:           core,
		Evts:           evts,
		CORSOrigin:     cfg.Web.CORSOrigin,
		PerPage:        cfg.Explorer.ItemsPerPage,
		OverviewBlocks: cfg.Explorer.OverviewBlocks,
	})

	// Construct a server to service the requests against the mux.
	api := http.Server{
		Addr:         cfg.Web.APIHost,
		Handler:      apiMux,
		ReadTimeout:  cfg.Web.ReadTimeout,
		WriteTimeout: cfg.Web.WriteTimeout,
		IdleTimeout:  cfg.Web.IdleTimeout,
		ErrorLog:     zap.NewStdLog(log.Desugar()),
	}

	// Make a channel to listen for errors coming from the listener. Use a
	// buffered channel so the goroutine can exit if we don't collect this error.
	serverErrors := make(chan error, 1)

	// Start the service listening for api requests.
	go func() {
		log.Infow("startup", "status", "api router started", "host", api.Addr)
		serverErrors <- api.ListenAndServe()
	}()

	// =========================================================================
	// Shutdown

	// Blocking main and waiting for shutdown.
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		log.Infow("shutdown", "status", "shutdown started", "signal", sig)
		defer log.Infow("shutdown", "status", "shutdown complete", "signal", sig)

		// Release any web sockets that are currently active.
		log.Infow("shutdown", "status", "shutdown web socket channels")
		evts.Shutdown()

		// Give outstanding requests a deadline for completion.
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Web.ShutdownTimeout)
		defer cancel()

		// Asking listener to shut down and shed load.
		if err := api.Shutdown(ctx); err != nil {
			api.Close()
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
	}

	return nil
}
