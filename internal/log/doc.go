// Package log provides privacy-aware logging built on top of the
// standard slog package.
//
// A fingerprint identifies a device; writing it to a log that later
// lands in a bug report or a shared terminal defeats the point of
// computing it locally. The PrivacyHandler masks fingerprint digests
// and session identifiers in log output while leaving the rest of the
// record intact.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, true) // verbose=true
//
//	logger.Info("scan complete",
//	    "fingerprint", "a3f2b8c91e04d756", // masked in output
//	    "detected", 42,
//	)
//
//	slog.SetDefault(logger)
package log
