package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in 1..65535 (got %d)", c.Server.Port)
	}

	if c.Server.MaxBodyBytes <= 0 {
		return fmt.Errorf("server.max_body_bytes must be > 0 (got %d)", c.Server.MaxBodyBytes)
	}

	if c.Generation.RequestTimeout <= 0 {
		return fmt.Errorf("generation.request_timeout must be > 0 (got %v)", c.Generation.RequestTimeout)
	}

	if c.Generation.TextModel == "" || c.Generation.ImageModel == "" {
		return fmt.Errorf("generation models must not be empty")
	}

	return nil
}
