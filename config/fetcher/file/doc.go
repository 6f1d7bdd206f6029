// Package file provides a file-based config.DataFetcher for nsctl settings.
//
// Paths may contain environment variables and a leading "~/". Find picks the
// first existing file from a list of conventional locations:
//
//	path, ok := file.Find(flagValue, "$HJARTA_NS_CONFIG", "nsctl.yaml", "~/.config/hjarta/nsctl.yaml")
//	if ok {
//	    fetcher, err := file.NewFetcher(path)()
//	}
//
// Use errors.Is(err, file.ErrPathIsDirectory) to check for directory errors.
package file
