// Package seed builds initial file trees for the virtual file store from a
// YAML or TOML manifest or from a host directory.
package seed
