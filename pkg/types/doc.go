// Package types defines the data-type tags, configuration, and standard
// error values shared by the directory schema engine, the record store,
// and the CLI.
package types
