// Package loader provides the plugin-like feature loading system used by
// serve mode.
//
// Each feature implements the Feature interface and registers its own routes.
//
// # Feature Interface
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// # Manager
//
// The Manager holds the registry of features:
//   - Register adds a feature; registration order is load order.
//   - LoadAll loads enabled features and fails on the first error.
package loader
