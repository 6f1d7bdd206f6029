// Package logging builds the structured logger shared by the resolver, the
// HTTP listener and the nsctl commands. Output is JSON by default, or logfmt
// style text, and includes attributes stored in the context with slog-context.
package logging
