package ir

import (
	"crypto/sha256"
	"encoding/hex"
)

// Domain prefixes for content-addressed identity.
// Version suffix enables future algorithm migration.
const (
	DomainTypeDef = "typegraph/typedef/v1"
	DomainSchema  = "typegraph/schema/v1"
)

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte separator prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TypeDefHash computes the content-addressed ID of one canonically
// encoded type definition.
func TypeDefHash(canonical []byte) string {
	return hashWithDomain(DomainTypeDef, canonical)
}

// SchemaHash computes the content-addressed ID of a canonically encoded
// schema snapshot. The hash covers resolved structure only; build IDs
// are deliberately excluded so identical declarations hash identically
// across builds.
func SchemaHash(canonical []byte) string {
	return hashWithDomain(DomainSchema, canonical)
}
