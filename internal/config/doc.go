// Package config loads and validates faceoff's TOML configuration.
//
// Load resolves the config path (explicit flag, ~/.config/faceoff/config.toml,
// or a project-local faceoff.toml), decodes it over Default values, expands
// paths, and validates the result. Missing files are not an error; defaults
// apply.
package config
