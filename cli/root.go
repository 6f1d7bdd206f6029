// Package cli implements the nsctl command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	slogcontext "github.com/veqryn/slog-context"

	"github.com/0xalexb/hjarta-ns/config"
	filefetcher "github.com/0xalexb/hjarta-ns/config/fetcher/file"
	yamlparser "github.com/0xalexb/hjarta-ns/config/parser/yaml"
	"github.com/0xalexb/hjarta-ns/logging"
	"github.com/0xalexb/hjarta-ns/namespace"
)

// Global flags.
const (
	FlagConfig    = "config"
	FlagRoot      = "root"
	FlagDelimiter = "delimiter"
	FlagTimeout   = "timeout"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

// EnvConfig names the settings file when --config is not given.
const EnvConfig = "HJARTA_NS_CONFIG"

// ErrConfigNotFound is returned when --config names a file that does not exist.
var ErrConfigNotFound = errors.New("settings file not found")

// configCandidates are searched in order when --config is not given.
//
//nolint:gochecknoglobals // fixed search path
var configCandidates = []string{"$" + EnvConfig, "nsctl.yaml", "~/.config/hjarta/nsctl.yaml"}

// Execute runs the nsctl command line and exits non-zero on failure.
func Execute() {
	err := New().Execute()
	if err != nil {
		os.Exit(1)
	}
}

// New returns the nsctl root command.
func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "nsctl [sub-command]",
		Short: "Resolve keys against a hierarchical configuration namespace",
		Long: `nsctl resolves dotted keys against a tree of configuration documents
  (properties, ini, yaml and xml) found below a root directory, bundle or URL.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	flags := cmd.PersistentFlags()
	flags.String(FlagConfig, "", "settings file (default: $"+EnvConfig+", ./nsctl.yaml, ~/.config/hjarta/nsctl.yaml)")
	flags.String(FlagRoot, "", `namespace root, e.g. "file:///etc/app", "classpath://conf" or "https://host/conf"`)
	flags.String(FlagDelimiter, "", `key segment delimiter (default ".")`)
	flags.Duration(FlagTimeout, 0, "timeout for reading remote documents")
	flags.String(FlagLogLevel, "", "log level: debug, info, warn or error")
	flags.String(FlagLogFormat, "", "log format: json or text")

	cmd.AddCommand(newLookupCommand())
	cmd.AddCommand(newListCommand())
	cmd.AddCommand(newExportCommand())
	cmd.AddCommand(newServeCommand())
	cmd.AddCommand(newVersionCommand())

	return cmd
}

// loadSettings reads the settings file, if any, applies environment overrides
// and defaults, and finally the command line flags.
func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	flags := cmd.Flags()

	explicit, err := flags.GetString(FlagConfig)
	if err != nil {
		return nil, err
	}

	path, found := filefetcher.Find(append([]string{explicit}, configCandidates...)...)
	if explicit != "" && (!found || path != filefetcher.Expand(explicit)) {
		return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, explicit)
	}

	settings := new(config.Settings)

	if found {
		fetcher, err := filefetcher.NewFetcher(path)()
		if err != nil {
			return nil, err
		}

		settings, err = config.Provider(settings, config.SettingsSection)(yamlparser.NewParser(), fetcher)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	} else {
		settings, err = config.Finalize(settings, config.SettingsSection, os.LookupEnv)
		if err != nil {
			return nil, err
		}
	}

	for flag, field := range map[string]*string{
		FlagRoot:      &settings.Root,
		FlagDelimiter: &settings.Delimiter,
		FlagLogLevel:  &settings.Log.Level,
		FlagLogFormat: &settings.Log.Format,
	} {
		if flags.Changed(flag) {
			*field, _ = flags.GetString(flag)
		}
	}

	if flags.Changed(FlagTimeout) {
		settings.Timeout, _ = flags.GetDuration(FlagTimeout)
	}

	err = settings.Validate()
	if err != nil {
		return nil, err
	}

	return settings, nil
}

// setup loads the settings and returns a resolver together with a context
// carrying a logger that writes to the command's error stream.
func setup(cmd *cobra.Command) (context.Context, *namespace.Resolver, *config.Settings, error) {
	settings, err := loadSettings(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	logger := logging.NewLogger(logging.LoggerConfig{
		Level:  settings.Log.Level,
		Format: settings.Log.Format,
	}, cmd.ErrOrStderr())

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	ctx = slogcontext.NewCtx(ctx, logger)

	resolver, err := namespace.New(append(settings.ResolverOptions(), namespace.WithLogger(logger))...)
	if err != nil {
		return nil, nil, nil, err
	}

	logger.DebugContext(ctx, "resolver ready", slog.String("root", settings.Root))

	return ctx, resolver, settings, nil
}
