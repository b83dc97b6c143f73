// Package util holds small parsing helpers shared by the config and server
// packages: human-readable byte sizes and secret masking for log output.
package util
