// Package corpus assembles the font-name list a scan probes.
//
// The corpus is built once from several source lists (web-safe fonts,
// Windows, macOS, Linux, and extended/regional families), deduplicated
// under Unicode normalization and case folding, and is immutable for the
// life of the engine. Iteration order is the assembly order, which fixes
// the detection order of a scan.
package corpus
