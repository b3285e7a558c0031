// Package loader provides the feature loading system.
//
// Each feature implements the Feature interface and is registered on a Manager at startup;
// LoadAll mounts the routes of every enabled feature in registration order.
//
//	type Feature interface {
//	    Name() string
//	    IsEnabled() bool
//	    Load(app fiber.Router) error
//	}
package loader
