// Package file provides the TOML-backed settings store. Settings are
// read from ~/.study-assistant/config.toml with environment variables
// taking precedence over the file.
package file
