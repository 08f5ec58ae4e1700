// Package fingerprint derives a compact identifier and a uniqueness score
// from a detected-font list.
//
// The fingerprint is computed over the lexicographically sorted font names
// so that it is independent of detection order. The primary hash is a
// SHA-256 digest truncated to 16 hex characters; a weak 32-bit rolling
// hash serves as a fallback when the digest primitive is unavailable.
//
// The uniqueness score maps a detected-font count onto a 5-99 heuristic
// scale with a square-root curve, so that each additional font contributes
// progressively less to the score.
package fingerprint
