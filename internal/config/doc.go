// Package config loads, normalizes, and validates the TOML configuration
// used by every sellsight command.
//
// Load resolves the config path (explicit flag, then
// ~/.config/sellsight/config.toml, then ./sellsight.toml), applies defaults
// for missing values, expands ~ in paths, and validates the result. Missing
// config files are not an error; defaults plus environment fallbacks apply.
package config
