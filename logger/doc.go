// Package logger provides structured logging for errguard using zerolog.
//
// It supports JSON and console output, level configuration, and
// component-scoped loggers with map fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.New(&cfg, "orders").WithComponent("handler")
//	log.Error("request failed", logger.Fields("status", 500))
package logger
