// Package database provides SQLite-based storage for scan history.
//
// Persistence is strictly opt-in: a scan writes nothing unless the
// caller asks for it. When enabled, each scan report is stored as a
// row in a single SQLite file under the XDG data directory, so past
// fingerprints can be listed and compared later.
//
// The package uses modernc.org/sqlite, a pure-Go driver that requires
// no CGO and therefore no C toolchain at build time.
package database
