// Package yaml reads nsctl settings files with github.com/goccy/go-yaml.
//
// A colon-separated path selects a section of the file before decoding, so
// one file can hold the settings of several tools:
//
//	parser := yaml.NewParser(yaml.WithStrict())
//	var settings config.Settings
//	err := parser.Parse(data, &settings, "nsctl")
package yaml
