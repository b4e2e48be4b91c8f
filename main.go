package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/danielgtaylor/huma/v2/humacli"
	"github.com/smazurov/framefit/cmd"
	"github.com/smazurov/framefit/internal/api"
	"github.com/smazurov/framefit/internal/capture"
	"github.com/smazurov/framefit/internal/config"
	"github.com/smazurov/framefit/internal/devices"
	"github.com/smazurov/framefit/internal/events"
	"github.com/smazurov/framefit/internal/logging"
	"github.com/smazurov/framefit/internal/metrics/collectors"
	"github.com/smazurov/framefit/internal/metrics/exporters"
	"github.com/smazurov/framefit/internal/resolution"
	"github.com/smazurov/framefit/internal/systemd"
)

// Options for the CLI - flat structure with toml mapping.
type Options struct {
	Config string `help:"Path to configuration file" short:"c" default:"config.toml"`

	// Server settings
	Port       string `help:"Port to listen on" short:"p" default:":8090" toml:"server.port" env:"SERVER_PORT"`
	CORSOrigin string `help:"Allowed CORS origin, empty disables CORS" default:"" toml:"server.cors_origin" env:"SERVER_CORS_ORIGIN"`

	// Device settings
	ProfilesFile  string `help:"Device profile file (TOML or YAML)" default:"" toml:"profiles.file" env:"PROFILES_FILE"`
	ProfilesWatch bool   `help:"Reload the profile file when it changes" default:"true" toml:"profiles.watch" env:"PROFILES_WATCH"`
	Hotplug       bool   `help:"Follow V4L2 hotplug events" default:"true" toml:"devices.hotplug" env:"DEVICES_HOTPLUG"`

	// Capture settings
	CaptureTarget string `help:"Default requested resolution" default:"1080x1920" toml:"capture.target" env:"CAPTURE_TARGET"`

	// Auth settings, empty username disables auth
	AuthUsername string `help:"Basic auth username" default:"" toml:"auth.username" env:"AUTH_USERNAME"`
	AuthPassword string `help:"Basic auth password" default:"" toml:"auth.password" env:"AUTH_PASSWORD"`

	// Observability settings
	MetricsEnabled bool `help:"Serve Prometheus metrics on /metrics" default:"true" toml:"metrics.enabled" env:"METRICS_ENABLED"`

	// Logging settings
	LoggingLevel   string `help:"Global logging level (debug, info, warn, error)" default:"info" toml:"logging.level" env:"LOGGING_LEVEL"`
	LoggingFormat  string `help:"Logging format (text, json)" default:"text" toml:"logging.format" env:"LOGGING_FORMAT"`
	LoggingCapture string `help:"Capture logging level" default:"info" toml:"logging.capture" env:"LOGGING_CAPTURE"`
	LoggingDevices string `help:"Devices logging level" default:"info" toml:"logging.devices" env:"LOGGING_DEVICES"`
	LoggingAPI     string `help:"API logging level" default:"info" toml:"logging.api" env:"LOGGING_API"`
	LoggingHTTP    string `help:"HTTP request logging level" default:"info" toml:"logging.http" env:"LOGGING_HTTP"`
	LoggingMetrics string `help:"Metrics logging level" default:"info" toml:"logging.metrics" env:"LOGGING_METRICS"`
	LoggingConfig  string `help:"Config watcher logging level" default:"info" toml:"logging.config" env:"LOGGING_CONFIG"`
}

func main() {
	var cli humacli.CLI
	cli = humacli.New(func(hooks humacli.Hooks, opts *Options) {
		if loadErr := config.LoadConfig(opts, cli.Root()); loadErr != nil {
			slog.Warn("Failed to load config", "error", loadErr)
		}

		logging.Initialize(logging.Config{
			Level:  opts.LoggingLevel,
			Format: opts.LoggingFormat,
			Modules: map[string]string{
				"capture": opts.LoggingCapture,
				"devices": opts.LoggingDevices,
				"api":     opts.LoggingAPI,
				"http":    opts.LoggingHTTP,
				"metrics": opts.LoggingMetrics,
				"config":  opts.LoggingConfig,
			},
		})

		logger := logging.GetLogger("main")

		target, err := resolution.Parse(opts.CaptureTarget)
		if err != nil {
			logger.Warn("Invalid capture target, using default", "target", opts.CaptureTarget, "error", err)
			target = capture.DefaultTarget
		}

		eventBus := events.New()

		source, profiles, err := devices.Open(opts.ProfilesFile)
		if err != nil {
			logger.Error("Failed to open device profiles", "file", opts.ProfilesFile, "error", err)
			os.Exit(1)
		}
		if profiles != nil && opts.ProfilesWatch {
			if watchErr := profiles.Watch(eventBus, 0); watchErr != nil {
				logger.Warn("Failed to watch device profiles", "file", profiles.Path(), "error", watchErr)
			}
		}

		negotiator := capture.NewNegotiator(source, eventBus, capture.WithDefaultTarget(target))

		apiOpts := &api.Options{
			AuthUsername: opts.AuthUsername,
			AuthPassword: opts.AuthPassword,
			CORSOrigin:   opts.CORSOrigin,
			Negotiator:   negotiator,
			EventBus:     eventBus,
		}
		if opts.MetricsEnabled {
			apiOpts.PrometheusHandler = exporters.HTTPHandler()
		}
		server := api.NewServer(apiOpts)

		deviceCollector := collectors.NewDeviceCollector(eventBus)
		monitor := devices.NewMonitor(source, eventBus)
		ctx, cancel := context.WithCancel(context.Background())

		hooks.OnStart(func() {
			deviceCollector.Start()

			if opts.Hotplug {
				go func() {
					if runErr := monitor.Run(ctx); runErr != nil {
						logger.Warn("Hotplug monitor stopped", "error", runErr)
					}
				}()
			} else {
				monitor.Refresh()
			}

			go systemd.Watchdog(ctx)
			systemd.Ready()

			logger.Info("Starting HTTP server", "port", opts.Port, "target", target.String())
			if startErr := server.Start(opts.Port); startErr != nil && !errors.Is(startErr, http.ErrServerClosed) {
				logger.Error("Failed to start HTTP server", "error", startErr)
				os.Exit(1)
			}
		})

		hooks.OnStop(func() {
			logger.Info("Shutting down server")
			systemd.Stopping()

			if stopErr := server.Stop(); stopErr != nil {
				logger.Error("Error stopping HTTP server", "error", stopErr)
			}

			cancel()
			deviceCollector.Stop()
			if profiles != nil {
				if closeErr := profiles.Close(); closeErr != nil {
					logger.Warn("Error closing profile watcher", "error", closeErr)
				}
			}
		})
	})

	cli.Root().Use = "framefit"
	cli.Root().Short = "Capture resolution negotiation service"

	cli.Root().AddCommand(cmd.CreateSelectCmd())
	cli.Root().AddCommand(cmd.CreateDevicesCmd())

	cli.Run()
}
