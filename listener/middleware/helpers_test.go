package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xalexb/hjarta-ns/logging"
)

// newTestLogger returns a debug-level JSON logger that, like the production
// logger, copies context attributes onto records.
func newTestLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer

	return logging.NewLogger(logging.LoggerConfig{Level: "debug"}, &buf), &buf
}

func decodeRecords(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()

	var records []map[string]any

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}

		var record map[string]any

		require.NoError(t, json.Unmarshal([]byte(line), &record))

		records = append(records, record)
	}

	return records
}
