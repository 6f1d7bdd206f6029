package ns_test

import (
	"io"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	ns "github.com/0xalexb/hjarta-ns"
	"github.com/0xalexb/hjarta-ns/config"
	"github.com/0xalexb/hjarta-ns/listener"
)

func TestWithLogLevel(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		level    string
		expected string
	}{
		{name: "debug level", level: "debug", expected: "debug"},
		{name: "info level", level: "info", expected: "info"},
		{name: "warn level", level: "warn", expected: "warn"},
		{name: "error level", level: "error", expected: "error"},
		{name: "empty level", level: "", expected: ""},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var opts ns.Options

			ns.WithLogLevel(testCase.level)(&opts)

			require.Equal(t, testCase.expected, opts.LogLevel)
		})
	}
}

func TestWithLogFormatAndOutput(t *testing.T) {
	t.Parallel()

	var opts ns.Options

	ns.WithLogFormat("text")(&opts)
	ns.WithLogOutput(io.Discard)(&opts)

	require.Equal(t, "text", opts.LogFormat)
	require.Equal(t, io.Discard, opts.LogOutput)
}

func TestWithModules(t *testing.T) {
	t.Parallel()

	var opts ns.Options

	ns.WithModules(fx.Module("test1"))(&opts)
	require.Len(t, opts.Modules, 1)

	ns.WithModules(fx.Module("test2"), fx.Module("test3"))(&opts)
	require.Len(t, opts.Modules, 3)
}

func TestWithSettings(t *testing.T) {
	t.Parallel()

	var opts ns.Options

	ns.WithSettings(&config.Settings{Log: config.LogSettings{Level: "debug", Format: "text"}})(&opts)

	require.Equal(t, "debug", opts.LogLevel)
	require.Equal(t, "text", opts.LogFormat)
	require.Len(t, opts.Modules, 1, "resolver module")
}

func TestWiringOptionsAddModules(t *testing.T) {
	t.Parallel()

	var opts ns.Options

	ns.WithResolver()(&opts)
	ns.WithHTTPListener(listener.WithAddress("127.0.0.1:0"))(&opts)
	ns.WithMetrics(prometheus.NewRegistry())(&opts)

	require.Len(t, opts.Modules, 3)
}
