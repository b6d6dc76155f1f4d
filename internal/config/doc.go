// Package config defines the format-agnostic batch profile model and the
// Loader interface a format-specific implementation (such as the HCL loader)
// satisfies.
package config
