package auth

import (
	"fmt"

	"github.com/kbukum/errguard/auth/jwt"
	"github.com/kbukum/errguard/auth/password"
)

// Config holds authentication configuration. Sub-configs are pointers so
// unused features stay nil.
type Config struct {
	Enabled  bool             `yaml:"enabled" mapstructure:"enabled"`
	JWT      *jwt.Config      `yaml:"jwt" mapstructure:"jwt"`
	Password *password.Config `yaml:"password" mapstructure:"password"`
}

// ApplyDefaults fills defaults on non-nil sub-configs.
func (c *Config) ApplyDefaults() {
	if c.JWT != nil {
		c.JWT.ApplyDefaults()
	}
	if c.Password != nil {
		c.Password.ApplyDefaults()
	}
}

// Validate checks sub-configs when auth is enabled.
func (c *Config) Validate() error {
	if !c.Enabled {
		return nil
	}
	if c.JWT == nil {
		return fmt.Errorf("auth.jwt is required when auth is enabled")
	}
	if err := c.JWT.Validate(); err != nil {
		return fmt.Errorf("auth.jwt: %w", err)
	}
	if c.Password != nil {
		if err := c.Password.Validate(); err != nil {
			return fmt.Errorf("auth.password: %w", err)
		}
	}
	return nil
}
