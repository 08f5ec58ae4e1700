// Package measure provides the text-measurement primitive the detection
// engine probes fonts with.
//
// The engine only depends on the Measurer interface: given a font stack,
// a size, and a probe string, return the rendered advance width. How the
// width is produced is a backend concern:
//
//   - Table measures against a width table (built-in or YAML-loaded),
//     giving fully deterministic output for demos and tests.
//   - System derives a width table from the font families installed on
//     the host, so a scan reflects the actual machine.
//   - Func adapts a closure, which is convenient in tests.
//
// All backends honor the fallback contract: when the first family in the
// stack is unknown, measurement silently falls through to the next one,
// exactly like font substitution in a rendering environment.
package measure
