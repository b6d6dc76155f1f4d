// Package cli parses and validates the command-line surface of prismc.
package cli
