package generator

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
)

// ComputeHash digests the fields that define a generation request. Equal
// inputs always produce equal output; any changed field changes the digest.
// It validates preview reuse only and is not a security primitive.
func ComputeHash(input string, settings Settings, referenceContent string) string {
	h := sha256.New()
	writeField(h, input)
	writeSettings(h, settings)
	writeField(h, referenceContent)
	return hex.EncodeToString(h.Sum(nil))
}

// CacheKey digests the wizard settings alone; it names the preview cache
// slot a user's session writes into.
func CacheKey(settings Settings) string {
	h := sha256.New()
	writeSettings(h, settings)
	return hex.EncodeToString(h.Sum(nil))
}

func writeSettings(h hash.Hash, s Settings) {
	cta := "0"
	if s.IncludeCTA {
		cta = "1"
	}
	for _, field := range []string{
		s.Tone, s.Style, s.Length, s.Language, s.Purpose,
		s.Audience, s.EmojiUsage, cta, s.CustomInstructions,
	} {
		writeField(h, field)
	}
}

// writeField length-prefixes each value so adjacent fields cannot collide
// by shifting bytes across a boundary.
func writeField(h hash.Hash, field string) {
	fmt.Fprintf(h, "%d:", len(field))
	h.Write([]byte(field))
}
