package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Length is the number of hex characters in a fingerprint.
const Length = 16

// delimiter joins sorted font names before hashing. The pipe character
// does not occur in font family names, so the joined string is unambiguous.
const delimiter = "|"

// Digester computes a cryptographic digest of the given data.
// It is an interface so the hasher can run in environments where a secure
// digest is unavailable, and so tests can force the fallback path.
type Digester interface {
	// Sum returns the digest of data, or an error if the primitive
	// cannot be used.
	Sum(data []byte) ([]byte, error)
}

// SHA256Digester is the default Digester backed by crypto/sha256.
type SHA256Digester struct{}

// Sum returns the SHA-256 digest of data. It never fails.
func (SHA256Digester) Sum(data []byte) ([]byte, error) {
	sum := sha256.Sum256(data)
	return sum[:], nil
}

// Hasher derives fingerprints from detected-font lists.
//
// Design decision: The digest primitive is injected rather than called
// directly so that the degraded path (weak fallback hash) is reachable
// and testable. The fallback must never be preferred when the digest
// works; it only activates on a nil digester or a digest error.
type Hasher struct {
	// digester is the cryptographic digest primitive. May be nil,
	// in which case every fingerprint uses the fallback hash.
	digester Digester

	// logger records the warning when the fallback path activates.
	logger *slog.Logger
}

// HasherOption configures a Hasher.
type HasherOption func(*Hasher)

// WithDigester sets the digest primitive. Passing nil forces the
// fallback hash for every fingerprint.
func WithDigester(d Digester) HasherOption {
	return func(h *Hasher) {
		h.digester = d
	}
}

// WithHasherLogger sets a custom logger for the hasher.
func WithHasherLogger(logger *slog.Logger) HasherOption {
	return func(h *Hasher) {
		h.logger = logger
	}
}

// NewHasher creates a Hasher with SHA-256 as the default digest.
func NewHasher(opts ...HasherOption) *Hasher {
	h := &Hasher{
		digester: SHA256Digester{},
	}

	for _, opt := range opts {
		opt(h)
	}

	if h.logger == nil {
		h.logger = slog.Default()
	}

	return h
}

// Fingerprint derives the identifier for the given detected-font list.
// The input slice is not modified; the names are copied, sorted, joined
// and hashed. Identical font sets always yield identical fingerprints
// regardless of order.
//
// The second return value is true when the weak fallback hash was used
// because the digest primitive was unavailable or failed.
func (h *Hasher) Fingerprint(fonts []string) (string, bool) {
	sorted := make([]string, len(fonts))
	copy(sorted, fonts)
	sort.Strings(sorted)

	joined := strings.Join(sorted, delimiter)

	if h.digester == nil {
		h.logger.Warn("digest primitive unavailable, using fallback hash")
		return fallbackHash(joined), true
	}

	digest, err := h.digester.Sum([]byte(joined))
	if err != nil {
		h.logger.Warn("digest failed, using fallback hash", "error", err)
		return fallbackHash(joined), true
	}

	return hex.EncodeToString(digest)[:Length], false
}

// fallbackHash is a deterministic 32-bit rolling multiply-add hash over
// the character codes of s, rendered as zero-padded hex of Length
// characters. It is collision-prone and non-cryptographic; it exists only
// so a fingerprint can still be produced when no digest primitive works.
func fallbackHash(s string) string {
	var h uint32
	for _, r := range s {
		h = h*31 + uint32(r)
	}
	return fmt.Sprintf("%0*x", Length, uint64(h))
}
