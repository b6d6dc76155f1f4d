// Package app wires the application together: logger, profile loading,
// compiler front-end registry, source discovery, and the batch pipeline.
package app
