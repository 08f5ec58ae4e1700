// Package main provides the entry point for the glyphprint CLI.
//
// Glyphprint detects installed fonts through text-width measurement and
// derives a stable device fingerprint from the result, together with a
// score estimating how identifying that font profile is.
//
// Usage:
//
//	glyphprint scan
//	glyphprint scan --backend system --json
//
// See --help for all available options.
package main

// main is the entry point for glyphprint.
func main() {
	Execute()
}
