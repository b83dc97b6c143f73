package jwt

import (
	"fmt"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
)

// SigningMethod names a supported HMAC algorithm.
type SigningMethod string

const (
	HS256 SigningMethod = "HS256"
	HS384 SigningMethod = "HS384"
	HS512 SigningMethod = "HS512"
)

// MinSecretLength is the shortest accepted signing secret.
const MinSecretLength = 32

// Config configures the token service.
type Config struct {
	Secret         string        `yaml:"secret" mapstructure:"secret"`
	Method         SigningMethod `yaml:"method" mapstructure:"method"`
	Issuer         string        `yaml:"issuer" mapstructure:"issuer"`
	Audience       string        `yaml:"audience" mapstructure:"audience"`
	AccessTokenTTL time.Duration `yaml:"access_token_ttl" mapstructure:"access_token_ttl"`
	Leeway         time.Duration `yaml:"leeway" mapstructure:"leeway"`
}

// ApplyDefaults sets HS256 and a 15 minute access token lifetime.
func (c *Config) ApplyDefaults() {
	if c.Method == "" {
		c.Method = HS256
	}
	if c.AccessTokenTTL == 0 {
		c.AccessTokenTTL = 15 * time.Minute
	}
}

// Validate checks the secret and algorithm.
func (c *Config) Validate() error {
	if len(c.Secret) < MinSecretLength {
		return fmt.Errorf("secret must be at least %d characters", MinSecretLength)
	}
	if c.signingMethod() == nil {
		return fmt.Errorf("method must be one of [HS256, HS384, HS512] (got: %s)", c.Method)
	}
	if c.AccessTokenTTL < 0 {
		return fmt.Errorf("access_token_ttl must not be negative")
	}
	return nil
}

func (c *Config) signingMethod() gojwt.SigningMethod {
	switch c.Method {
	case HS256:
		return gojwt.SigningMethodHS256
	case HS384:
		return gojwt.SigningMethodHS384
	case HS512:
		return gojwt.SigningMethodHS512
	default:
		return nil
	}
}
