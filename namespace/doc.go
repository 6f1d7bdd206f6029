// Package namespace resolves hierarchical keys such as "java.magic" or
// "nested.FooDS.url" against a tree of configuration documents.
//
// A key is split on the delimiter (default ".") and walked from the root:
// segments naming a container descend into it, the first segment naming a
// document selects it, and the rest of the key is looked up inside that
// document. When the walk runs out of containers, the container's
// "default.<ext>" document answers for the remainder. Documents are parsed
// once and shared between lookups.
//
// Values bound with Bind shadow the backing store for the resolver they are
// bound on. Two reserved keys reconfigure a resolver in place:
//
//	r.Rebind(namespace.RootKey, "file:///etc/app/conf")
//	r.Rebind(namespace.DelimiterKey, "/")
//
// A document value accompanied by "<key>.type" is converted to that type,
// and a key whose type is "datasource" (or any key of a document flagged
// with "is-composite=true") resolves to a *Composite.
//
// Example:
//
//	r, err := namespace.New(namespace.WithRoot("./conf"))
//	if err != nil {
//		return err
//	}
//
//	port, err := r.Lookup(ctx, "server.port")
package namespace
