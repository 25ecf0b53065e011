// Package loader registers HTTP features and mounts the enabled ones.
//
// A feature bundles a handler and its routes behind the Feature interface:
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
//
// The Manager keeps features in registration order. LoadAll skips disabled
// features (media without a database, for example) and stops at the first
// feature that fails to load.
package loader
