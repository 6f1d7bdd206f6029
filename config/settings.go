package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/0xalexb/hjarta-ns/listener"
	"github.com/0xalexb/hjarta-ns/namespace"
	"github.com/0xalexb/hjarta-ns/namespace/locator"
)

// Environment variables read by Settings.ApplyEnv.
const (
	EnvRoot            = "HJARTA_NS_ROOT"
	EnvDelimiter       = "HJARTA_NS_DELIMITER"
	EnvTimeout         = "HJARTA_NS_TIMEOUT"
	EnvRetries         = "HJARTA_NS_RETRIES"
	EnvCacheSize       = "HJARTA_NS_CACHE_SIZE"
	EnvCompositeMarker = "HJARTA_NS_COMPOSITE_MARKER"
	EnvListen          = "HJARTA_NS_LISTEN"
	EnvLogLevel        = "HJARTA_NS_LOG_LEVEL"
	EnvLogFormat       = "HJARTA_NS_LOG_FORMAT"
)

// SettingsSection is the section of the settings file holding Settings.
const SettingsSection = "namespace"

// DefaultListen is the address the serve command binds when none is configured.
const DefaultListen = listener.DefaultAddress

// ErrInvalidSettings is returned by Settings.Validate.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings configures nsctl: the resolver, the HTTP listener and logging.
type Settings struct {
	Root            string        `yaml:"root"`
	Delimiter       string        `yaml:"delimiter"`
	Timeout         time.Duration `yaml:"timeout"`
	Retries         int           `yaml:"retries"`
	CacheSize       int           `yaml:"cache_size"`
	CompositeMarker string        `yaml:"composite_marker"`
	Listen          string        `yaml:"listen"`
	RateLimit       float64       `yaml:"rate_limit"`
	RateBurst       int           `yaml:"rate_burst"`
	Log             LogSettings   `yaml:"log"`
}

// LogSettings configures the logger.
type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// ApplyEnv overrides settings from HJARTA_NS_* variables.
func (s *Settings) ApplyEnv(lookup LookupEnv) (bool, error) {
	changed := false

	for env, field := range map[string]*string{
		EnvRoot:            &s.Root,
		EnvDelimiter:       &s.Delimiter,
		EnvCompositeMarker: &s.CompositeMarker,
		EnvListen:          &s.Listen,
		EnvLogLevel:        &s.Log.Level,
		EnvLogFormat:       &s.Log.Format,
	} {
		if v, ok := lookup(env); ok && v != "" {
			*field = v
			changed = true
		}
	}

	if v, ok := lookup(EnvTimeout); ok && v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return false, fmt.Errorf("%s: %w", EnvTimeout, err)
		}

		s.Timeout = timeout
		changed = true
	}

	for env, field := range map[string]*int{
		EnvRetries:   &s.Retries,
		EnvCacheSize: &s.CacheSize,
	} {
		v, ok := lookup(env)
		if !ok || v == "" {
			continue
		}

		n, err := strconv.Atoi(v)
		if err != nil {
			return false, fmt.Errorf("%s: %w", env, err)
		}

		*field = n
		changed = true
	}

	return changed, nil
}

// SetDefaults fills unset fields.
func (s *Settings) SetDefaults() bool {
	changed := false

	if s.Delimiter == "" {
		s.Delimiter = namespace.DefaultDelimiter
		changed = true
	}

	if s.Timeout == 0 {
		s.Timeout = locator.DefaultTimeout
		changed = true
	}

	if s.CompositeMarker == "" {
		s.CompositeMarker = namespace.DefaultCompositeMarker
		changed = true
	}

	if s.Listen == "" {
		s.Listen = DefaultListen
		changed = true
	}

	if s.Log.Level == "" {
		s.Log.Level = "info"
		changed = true
	}

	return changed
}

// Validate checks the settings for errors.
func (s *Settings) Validate() error {
	var errs []string

	if _, _, err := locator.ParseRoot(s.Root); err != nil {
		errs = append(errs, fmt.Sprintf("root: %v", err))
	}

	if s.Delimiter == "" {
		errs = append(errs, "delimiter is required")
	}

	if s.Timeout < 0 {
		errs = append(errs, "timeout must not be negative")
	}

	if s.Retries < 0 {
		errs = append(errs, "retries must not be negative")
	}

	if s.CacheSize < 0 {
		errs = append(errs, "cache_size must not be negative")
	}

	if s.RateLimit < 0 || s.RateBurst < 0 {
		errs = append(errs, "rate_limit and rate_burst must not be negative")
	}

	switch strings.ToLower(s.Log.Format) {
	case "", "json", "text":
	default:
		errs = append(errs, fmt.Sprintf("log.format %q must be json or text", s.Log.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(errs, "; "))
	}

	return nil
}

// ResolverOptions translates the settings into resolver options.
func (s *Settings) ResolverOptions() []namespace.Option {
	return []namespace.Option{
		namespace.WithRoot(s.Root),
		namespace.WithDelimiter(s.Delimiter),
		namespace.WithTimeout(s.Timeout),
		namespace.WithRetries(s.Retries),
		namespace.WithCacheSize(s.CacheSize),
		namespace.WithCompositeMarker(s.CompositeMarker),
	}
}

// ListenerOptions translates the settings into HTTP listener options.
func (s *Settings) ListenerOptions() []listener.Option {
	return []listener.Option{
		listener.WithAddress(s.Listen),
		listener.WithRateLimit(s.RateLimit, s.RateBurst),
	}
}
