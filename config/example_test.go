package config_test

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/0xalexb/hjarta-ns/config"
	filefetcher "github.com/0xalexb/hjarta-ns/config/fetcher/file"
	yamlparser "github.com/0xalexb/hjarta-ns/config/parser/yaml"
)

// StaticDataFetcher implements config.DataFetcher with static data.
type StaticDataFetcher struct {
	Data []byte
}

// Fetch returns the static data.
func (f *StaticDataFetcher) Fetch() ([]byte, error) {
	return f.Data, nil
}

func ExampleProvider() {
	fetcher := &StaticDataFetcher{
		Data: []byte("nsctl:\n  root: classpath://conf\n  timeout: 2s\n"),
	}

	settings, err := config.Provider(&config.Settings{}, "nsctl")(yamlparser.NewParser(), fetcher)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("Root: %s, Delimiter: %s, Timeout: %s\n", settings.Root, settings.Delimiter, settings.Timeout)
	// Output: Root: classpath://conf, Delimiter: ., Timeout: 2s
}

func ExampleProvider_fileDataFetcher() {
	dir, err := os.MkdirTemp("", "nsctl-example")
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "nsctl.yaml")

	err = os.WriteFile(path, []byte("delimiter: /\nlisten: 127.0.0.1:9000\nlog:\n  format: text\n"), 0o600)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fetcher, err := filefetcher.NewFetcher(path)()
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	settings, err := config.Provider(&config.Settings{}, "")(yamlparser.NewParser(yamlparser.WithStrict()), fetcher)
	if err != nil {
		fmt.Printf("Error: %v\n", err)

		return
	}

	fmt.Printf("Delimiter: %s, Listen: %s, Log: %s/%s\n",
		settings.Delimiter, settings.Listen, settings.Log.Level, settings.Log.Format)
	// Output: Delimiter: /, Listen: 127.0.0.1:9000, Log: info/text
}
