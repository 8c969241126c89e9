// Package cli defines the Cobra command tree for the steerdoc CLI. Each
// file registers one top-level command (install, update, validate, etc.)
// with the root command. Commands only parse flags, wire engines, and
// format output; all lifecycle logic lives in the internal engine packages.
package cli
