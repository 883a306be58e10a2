// Package config loads the solver service settings from WORDLE_ environment
// variables and an optional config.yaml, applies defaults and validates the
// result before any component is built from it.
package config
