package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/macrat/foxroute/browser"
	"github.com/macrat/foxroute/config"
	"github.com/macrat/foxroute/errors"
	"github.com/macrat/foxroute/filter"
	"github.com/macrat/foxroute/metrics"
	"github.com/macrat/foxroute/register"
)

func addConfigFlags(flags *pflag.FlagSet) {
	flags.StringP("config", "c", "", "Path to configuration file. (default \"config.json\" or $FOXROUTE_CONFIG)")

	flags.String("browser", "", "Browser executable used when no browser is running.")
	flags.String("process-name", "", fmt.Sprintf("Executable name of running browser processes. (default %#v)", config.DefaultProcessName()))
	flags.String("profile", "", "Profile to open URLs with, instead of the profile of the running browser.")

	flags.String("log-file", "", "Write logs to this file as JSON lines.")
	flags.String("log-level", "", "Log level; debug, info, warn or error. (default \"info\")")
	flags.String("metrics-file", "", "Write metrics of each run to this file in Prometheus text format.")

	flags.Bool("dry-run", false, "Filter URLs and find the browser, but do not open it.")
}

// setupStartupLogger installs the logger used until the configuration is loaded.
func setupStartupLogger(w io.Writer) {
	lv, err := zerolog.ParseLevel(config.DefaultLogLevel)
	if err != nil {
		lv = zerolog.InfoLevel
	}
	metrics.SetupConsoleLogger(w, lv)
}

// invalidArguments wraps argument validation errors of a command so that they exit with code 2.
func invalidArguments(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return errors.New(errors.InvalidArguments, cmd.Name(), err)
		}
		return nil
	}
}

// loadConfig reads the configuration for cmd and sets up logging from it.
func loadConfig(cmd *cobra.Command) (*config.Config, func(), error) {
	file, _ := cmd.Flags().GetString("config")

	conf := &config.Config{}
	if err := conf.Load(file, cmd.Flags()); err != nil {
		return nil, nil, errors.New(errors.InvalidConfig, "", err)
	}
	if err := conf.Validate(); err != nil {
		return nil, nil, errors.New(errors.InvalidConfig, "", err)
	}

	closer, err := metrics.SetupLogger(conf.Log.Level, conf.Log.File)
	if err != nil {
		return nil, nil, errors.New(errors.InvalidConfig, "--log-file", err)
	}

	if conf.File != "" {
		log.Debug().Str("path", conf.File).Msg("loaded config")
	} else {
		log.Debug().Msg("no config file found, not filtering URLs")
	}

	return conf, func() { closer.Close() }, nil
}

func newRootCommand(newApp func(*config.Config) (*App, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "foxroute [flags] [URL...]",
		Short: "Open URLs in the running Firefox, skipping ignored ones.",
		Long: `Open URLs in the running Firefox, skipping ignored ones.

URLs matching any glob of "ignored_urls" or any regular expression of
"ignored_urls_regex" in the configuration file are dropped. The rest are
opened in the running Firefox, with the same profile.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, _ := cmd.Flags().GetBool("register")
			unreg, _ := cmd.Flags().GetBool("unregister")
			switch {
			case reg && unreg:
				return errors.New(errors.InvalidArguments, "--register and --unregister can not be used together", nil)
			case reg:
				return runRegister()
			case unreg:
				return runUnregister()
			}

			conf, closeLog, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			defer closeLog()

			app, err := newApp(conf)
			if err != nil {
				return err
			}
			err = app.Route(cmd.Context(), args)

			if conf.Metrics.File != "" {
				if werr := app.Metrics.WriteFile(conf.Metrics.File); werr != nil {
					log.Warn().Err(werr).Str("path", conf.Metrics.File).Msg("failed to write metrics")
				}
			}

			return err
		},
	}

	addConfigFlags(cmd.PersistentFlags())
	cmd.Flags().Bool("register", false, "Register foxroute as a browser of the system.")
	cmd.Flags().Bool("unregister", false, "Remove foxroute from browsers of the system.")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return errors.New(errors.InvalidArguments, c.Name(), err)
	})

	cmd.AddCommand(newCheckCommand(), newPatternsCommand(), newConfigCommand())

	return cmd
}

func runRegister() error {
	exe, err := os.Executable()
	if err != nil {
		return errors.New(errors.RegistrationFailed, "failed to find executable", err)
	}
	if err := register.Register(exe); err != nil {
		return errors.New(errors.RegistrationFailed, "", err)
	}
	return nil
}

func runUnregister() error {
	if err := register.Unregister(); err != nil {
		return errors.New(errors.RegistrationFailed, "", err)
	}
	return nil
}

func main() {
	cmd := newRootCommand(func(conf *config.Config) (*App, error) {
		finder, err := browser.NewFinder(conf.Browser.ProcessName)
		if err != nil {
			return nil, errors.New(errors.InvalidConfig, "--process-name", err)
		}

		return &App{
			Config:   conf,
			Filter:   filter.New(conf),
			Finder:   finder,
			Launcher: browser.Launcher{DryRun: conf.DisableLinkOpening},
			Locate:   browser.Locate,
			Metrics:  metrics.NewRunMetrics(),
		}, nil
	})

	setupStartupLogger(os.Stderr)

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		log.Error().Err(err).Msg("foxroute failed")
		os.Exit(errors.ExitCode(err))
	}
}
