package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/urfave/cli/v2"
	_ "modernc.org/sqlite"

	apiserver "vitalink/internal/api"
	configapp "vitalink/internal/config/application"
	"vitalink/internal/infrastructure/database"
	"vitalink/internal/infrastructure/logger"
	recordingapp "vitalink/internal/recording/application"
	recordingdomain "vitalink/internal/recording/domain"
	recordinginfra "vitalink/internal/recording/infrastructure"
	"vitalink/internal/schema"
	sourceapp "vitalink/internal/source/application"
	sourcedomain "vitalink/internal/source/domain"
	sourceinfra "vitalink/internal/source/infrastructure"
	vitalsapp "vitalink/internal/vitals/application"
	vitalsdomain "vitalink/internal/vitals/domain"
)

func main() {
	app := &cli.App{
		Name:  "vitalink",
		Usage: "Vital-signs telemetry daemon for BLE sensor peripherals",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "api-key", Usage: "API key for /api/v1 authentication"},
			&cli.StringFlag{Name: "port", Usage: "API server port"},
			&cli.BoolFlag{Name: "dev", Usage: "development mode: Swagger UI, optional API key"},
			&cli.StringFlag{Name: "log-level", Usage: "DEBUG, INFO, WARN, or ERROR"},
			&cli.StringFlag{Name: "log-format", Usage: "text or json"},
			&cli.StringFlag{Name: "log-output", Usage: "stdout, stderr, or a file path"},
			&cli.StringFlag{Name: "db", Usage: "SQLite path for session recording; empty disables recording"},
			&cli.StringFlag{Name: "env-file", Usage: ".env file path"},
			&cli.StringFlag{Name: "ble-service", Usage: "16-bit service UUID (hex)"},
			&cli.StringFlag{Name: "ble-characteristic", Usage: "16-bit characteristic UUID (hex)"},
			&cli.StringFlag{Name: "ble-address", Usage: "pin discovery to one peripheral address"},
			&cli.BoolFlag{Name: "demo", Usage: "start demo mode on boot"},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		logger.DefaultLogger().Error("Application error", "err", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	bootLogger := logger.DefaultLogger()
	configapp.LoadEnvFile(bootLogger, c.String("env-file"))

	cfg := configapp.LoadRuntimeConfig(configapp.Flags{
		APIKey:             c.String("api-key"),
		Port:               c.String("port"),
		LogLevel:           c.String("log-level"),
		LogFormat:          c.String("log-format"),
		LogOutput:          c.String("log-output"),
		DBPath:             c.String("db"),
		ServiceUUID:        c.String("ble-service"),
		CharacteristicUUID: c.String("ble-characteristic"),
		DeviceAddress:      c.String("ble-address"),
		DevMode:            c.Bool("dev"),
		DemoOnStart:        c.Bool("demo"),
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	// The logger reads its settings from the environment; propagate the
	// resolved values so flags win there too.
	os.Setenv("VITALINK_LOG_LEVEL", cfg.LogLevel)
	os.Setenv("VITALINK_LOG_FORMAT", cfg.LogFormat)
	os.Setenv("VITALINK_LOG_OUTPUT", cfg.LogOutput)

	appLogger := logger.NewLogger()
	logger.SetDefaultLogger(appLogger)

	appLogger.Info("Starting Vitalink", "version", "1.0")

	sigCtx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Session recording is optional; without a database path the live
	// window is the only state and nothing persists.
	var recorder *recordingapp.Recorder
	var sessionRepo recordingdomain.Repository
	if cfg.DBPath != "" {
		appLogger.Debug("Connecting to database", "file", cfg.DBPath)
		dbRead, err := database.ConnectSQLite(cfg.DBPath)
		if err != nil {
			appLogger.Error("Failed to connect to read database", "err", err)
			return err
		}
		defer dbRead.Close()
		dbRead.SetMaxOpenConns(runtime.NumCPU())

		dbWrite, err := database.ConnectSQLite(cfg.DBPath)
		if err != nil {
			appLogger.Error("Failed to connect to write database", "err", err)
			return err
		}
		defer dbWrite.Close()
		dbWrite.SetMaxOpenConns(1)

		appLogger.Debug("Initializing database schema")
		if _, err := dbWrite.ExecContext(sigCtx, schema.DDL); err != nil {
			appLogger.Error("Failed to initialize schema", "err", err)
			return err
		}

		repo := recordinginfra.NewRepository(dbRead, dbWrite)
		sessionRepo = repo
		recorder = recordingapp.NewRecorder(appLogger, repo)
		appLogger.Info("Session recording enabled", "db", cfg.DBPath)
	}

	var sink vitalsdomain.Sink
	if recorder != nil {
		sink = recorder
	}
	vitalsService := vitalsapp.NewService(appLogger, sink)

	demoFactory := func(ctx context.Context) (sourcedomain.Source, error) {
		return sourceapp.NewDemoSource(appLogger, vitalsService, sourceapp.DefaultDemoInterval), nil
	}
	hardwareFactory := func(ctx context.Context) (sourcedomain.Source, error) {
		source := sourceinfra.NewBLESource(appLogger, vitalsService, cfg.BLEConfig())
		if err := source.Connect(ctx); err != nil {
			return nil, err
		}
		return source, nil
	}

	var sessionRecorder sourceapp.SessionRecorder
	if recorder != nil {
		sessionRecorder = recorder
	}
	manager := sourceapp.NewManager(appLogger, vitalsService, sessionRecorder, demoFactory, hardwareFactory)

	apiServer := apiserver.NewServer(appLogger, cfg, vitalsService, manager, sessionRepo)

	if cfg.DemoOnStart {
		if err := manager.StartDemo(sigCtx); err != nil {
			appLogger.Error("Failed to start demo mode", "err", err)
			return err
		}
	}

	serverErrChan := make(chan error, 1)
	go func() {
		if err := apiServer.Start(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- err
		}
	}()

	appLogger.Info("Vitalink started, waiting for shutdown signal")

	select {
	case <-sigCtx.Done():
		appLogger.Info("Shutdown signal received, starting graceful shutdown")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()

		var shutdownErr error
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("API server shutdown error", "err", err)
			shutdownErr = err
		}
		if err := manager.Stop(shutdownCtx); err != nil {
			appLogger.Error("Source manager shutdown error", "err", err)
			if shutdownErr == nil {
				shutdownErr = err
			}
		}

		appLogger.Info("Graceful shutdown completed")
		return shutdownErr
	case err := <-serverErrChan:
		appLogger.Error("API server error", "err", err)
		return err
	}
}
