// Package config provides configuration loading, merging, and validation
// for the code generation server.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Missing values are then filled with defaults (SQLite file "codegen.db",
// 30 minute sessions, no generation provider) and the result is validated.
// The entry point is [GetStructuredConfig].
package config
