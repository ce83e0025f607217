// Package control
// Author: momentics <momentics@gmail.com>
//
// Configuration, logging, metrics and debug introspection for peuck.
//
// Provides:
//   - viper-backed configuration with file and environment overrides
//   - logrus logger construction from configuration
//   - prometheus collectors for affinity, parsing and tracing activity
//   - named debug probes evaluated on demand
//
// This package is cross-platform and build-tag-partitioned as needed.
package control
