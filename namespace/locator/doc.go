// Package locator finds and opens the resources behind a namespace.
//
// A namespace root selects one of three protocols:
//
//	""                       Bundled, empty root
//	classpath://conf         Bundled, root "conf" inside the bundle (bundle:// works too)
//	file:///etc/app          LocalPath
//	/etc/app                 LocalPath (no scheme)
//	http://host/conf         Remote (https too)
//
// Locators answer one question per location: is there something there, and if the
// protocol can tell, is it a container or a leaf. The local filesystem always knows.
// Bundles and remote endpoints report Unknown for anything that exists; the resolver
// then applies its containment heuristic.
//
// Remote requests go through github.com/hashicorp/go-retryablehttp and are bounded by
// the configured timeout. A request that runs out of time fails with ErrTimeout and
// can be retried by the caller.
package locator
