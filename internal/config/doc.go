// Package config loads, normalizes, and validates streamdetails configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the
// STREAMDETAILS_PREFERRED_LANGUAGE environment fallback. Helpers translate the
// settings into archive options and the subtitle ranking used by the streams
// package.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
