package domain

import "fmt"

// Config holds the optional defaults read from ~/.port-ranger.yaml.
type Config struct {
	Gateway  GatewayConfig  `yaml:"gateway"`
	UDPRoute UDPRouteConfig `yaml:"udpRoute"`
}

// GatewayConfig selects the Gateway generated UDPRoutes attach to.
// An empty Namespace means the namespace of the route itself.
type GatewayConfig struct {
	Name      string `yaml:"name"`
	Namespace string `yaml:"namespace,omitempty"`
}

type UDPRouteConfig struct {
	APIVersion string `yaml:"apiVersion"`
	ChunkSize  int    `yaml:"chunkSize"`
}

func CreateDefaultConfig() Config {
	return Config{
		Gateway: GatewayConfig{
			Name: DefaultGatewayName,
		},
		UDPRoute: UDPRouteConfig{
			APIVersion: DefaultUDPRouteAPIVersion,
		},
	}
}

// ApplyDefaults fills every unset field from CreateDefaultConfig.
func (c *Config) ApplyDefaults() {
	defaults := CreateDefaultConfig()
	if c.Gateway.Name == "" {
		c.Gateway.Name = defaults.Gateway.Name
	}
	if c.UDPRoute.APIVersion == "" {
		c.UDPRoute.APIVersion = defaults.UDPRoute.APIVersion
	}
}

// Validate rejects values that can never produce a usable route.
func (c *Config) Validate() error {
	if c.UDPRoute.ChunkSize < 0 {
		return fmt.Errorf("%w: udpRoute.chunkSize is %d", ErrInvalidChunkSize, c.UDPRoute.ChunkSize)
	}
	return nil
}
