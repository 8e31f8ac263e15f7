package portledger

import "github.com/giantswarm/portledger/internal/registry"

// registryConfig holds configuration for a Registry. This unexported type
// wraps registry.Config via embedding, keeping internal/registry types out
// of the public API signature while avoiding field-by-field duplication.
type registryConfig struct {
	registry.Config
}

// toInternalConfig returns the embedded registry.Config.
func (c registryConfig) toInternalConfig() registry.Config {
	return c.Config
}
