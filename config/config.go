package config

import (
	"fmt"
	"log/slog"
	"os"
)

// Parser defines an interface for parsing configuration data into a target structure.
//
// The path parameter selects a section of the data, using colon (:) as the
// separator for nested keys: "nsctl:resolver" navigates to config["nsctl"]["resolver"],
// and "" means the entire document.
type Parser interface {
	Parse(data []byte, target any, path string) error
}

// DataFetcher defines an interface for reading configuration data.
type DataFetcher interface {
	Fetch() ([]byte, error)
}

// Validator defines an interface for validating configuration structures.
type Validator interface {
	Validate() error
}

// Defaulter defines an interface for setting default values in configuration structures.
type Defaulter interface {
	SetDefaults() (changed bool)
}

// LookupEnv reads one environment variable, like os.LookupEnv.
type LookupEnv func(key string) (string, bool)

// EnvApplier is implemented by configuration structures that accept overrides
// from the environment. Overrides are applied after parsing and before defaults.
type EnvApplier interface {
	ApplyEnv(lookup LookupEnv) (changed bool, err error)
}

// Provider returns a function that reads, parses, overrides from the environment,
// sets defaults, and validates configuration data.
func Provider[T any](target *T, path string) func(Parser, DataFetcher) (*T, error) {
	return func(parser Parser, dataSourcer DataFetcher) (*T, error) {
		data, err := dataSourcer.Fetch()
		if err != nil {
			return nil, fmt.Errorf("reading data error: %w", err)
		}

		err = parser.Parse(data, target, path)
		if err != nil {
			return nil, fmt.Errorf("parsing error: %w", err)
		}

		return Finalize(target, path, os.LookupEnv)
	}
}

// Finalize runs the steps that follow parsing: environment overrides, defaults
// and validation. It is used on its own when there is no file to parse.
func Finalize[T any](target *T, path string, lookup LookupEnv) (*T, error) {
	if applier, isApplier := any(target).(EnvApplier); isApplier {
		changed, err := applier.ApplyEnv(lookup)
		if err != nil {
			return nil, fmt.Errorf("environment error: %w", err)
		}

		if changed {
			slog.Info("environment overrides applied", slog.String("path", path))
		}
	}

	targetDefaulter, isDefaulter := any(target).(Defaulter)
	if isDefaulter {
		changed := targetDefaulter.SetDefaults()
		if changed {
			slog.Debug("defaults applied", slog.String("path", path))
		}
	}

	targetValidatable, isValidatable := any(target).(Validator)
	if isValidatable {
		err := targetValidatable.Validate()
		if err != nil {
			return nil, fmt.Errorf("validating error: %w", err)
		}
	}

	return target, nil
}
