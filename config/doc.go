// Package config loads service configuration for errguard applications.
//
// Values come from a YAML file, a .env file and the process environment,
// in increasing order of precedence. Environment keys are matched against
// nested config keys by splitting on underscores, so ERRORS_DEFAULT_MESSAGE
// sets errors.default_message.
//
// # Usage
//
//	type Config struct {
//	    config.ServiceConfig `yaml:",inline" mapstructure:",squash"`
//	    Errors handler.Config `yaml:"errors" mapstructure:"errors"`
//	}
//
//	var cfg Config
//	err := config.LoadConfig("errguard", &cfg)
package config
