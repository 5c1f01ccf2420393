// Package config handles configuration loading from an optional YAML file,
// a .env file and environment variables. The resulting Config is built once
// at startup and passed read-only into every component.
package config
