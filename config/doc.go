// Package config loads nsctl settings.
//
// Loading is a pipeline over four extension points:
//   - DataFetcher retrieves raw data (see config/fetcher/file)
//   - Parser decodes it into a struct, optionally below a colon-separated path
//     such as "nsctl:resolver" (see config/parser/yaml)
//   - EnvApplier overrides fields from HJARTA_NS_* environment variables
//   - Defaulter and Validator fill in and check the result
//
// Provider runs the whole pipeline; Finalize runs the steps after parsing,
// for callers that have no file:
//
//	settings, err := config.Provider(&config.Settings{}, "nsctl")(yamlparser.NewParser(), fetcher)
//	if err != nil {
//	    return err
//	}
//
//	resolver, err := namespace.New(settings.ResolverOptions()...)
package config
