// Package catalog loads the framework manifest, validates it against a JSON
// Schema, and serves cached lookups and searches over the entries. A default
// catalog of steering documents is embedded in the binary; an external
// catalog root can be configured instead.
package catalog
