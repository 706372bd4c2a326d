// ABOUTME: Package documentation for configuration handling
// ABOUTME: Notes the YAML format, env expansion, and override variables

// Package config handles configuration loading for fieldstore.
//
// Configuration is YAML. ${VAR} references inside the file are expanded from
// the environment before parsing, and FIELDSTORE_DB_PATH, FIELDSTORE_PREFIX,
// FIELDSTORE_LOG_LEVEL, and FIELDSTORE_LOG_FORMAT override the parsed values
// afterwards.
package config
