// Package registry maps location names to lazily loaded symbol tables.
//
// A location is the module-shaped half of a candidate spec ("location:symbol"):
// a named place where a capability implementation might live. Each location
// is backed by a [Provider] whose Load call may fail until the location has
// been configured, which is what lets the resolver skip it now and find it
// on a later scan.
//
// # Registration
//
// Capability packages register themselves against the process-wide registry
// from init, in the database/sql driver style:
//
//	func init() {
//	    _ = registry.Register("memsearch", registry.StaticProvider(registry.SymbolTable{
//	        "HybridSearch": defaultIndex.HybridSearch,
//	    }))
//	}
//
// Importing the package (blank import is enough) makes the location
// loadable. Tests and embedders that want isolation construct their own
// [Registry] with New instead of using the package-level helpers.
//
// # Thread Safety
//
// All Registry methods are safe for concurrent use.
package registry
