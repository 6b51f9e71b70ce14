// Package identifier holds the pure codec for human-facing identifiers
// (restaurant slugs, table codes) and the generators for their random parts.
package identifier

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
	"unicode"
)

// MinLength is the shortest slug or code accepted for persistence.
// Normalize itself may return shorter strings (including ""); callers
// decide whether to reject or fall back.
const MinLength = 3

// Normalize turns free text into a URL-safe identifier: lower-case,
// diacritics folded to their base letter, anything outside [a-z0-9 -]
// dropped, whitespace runs collapsed to single hyphens, repeated hyphens
// collapsed, leading/trailing hyphens trimmed. Deterministic and
// idempotent.
func Normalize(input string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(input) {
		r = foldAccent(r)
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}

	fields := strings.FieldsFunc(b.String(), func(r rune) bool {
		return r == ' ' || r == '-'
	})
	return strings.Join(fields, "-")
}

// Valid reports whether s is already a well-formed identifier of
// acceptable length.
func Valid(s string) bool {
	return len(s) >= MinLength && s == Normalize(s)
}

// foldAccent maps common accented latin letters to their base letter so
// that e.g. "Café" slugs to "cafe" rather than "caf".
func foldAccent(r rune) rune {
	switch r {
	case 'à', 'á', 'â', 'ã', 'ä', 'å':
		return 'a'
	case 'è', 'é', 'ê', 'ë':
		return 'e'
	case 'ì', 'í', 'î', 'ï':
		return 'i'
	case 'ò', 'ó', 'ô', 'õ', 'ö':
		return 'o'
	case 'ù', 'ú', 'û', 'ü':
		return 'u'
	case 'ç':
		return 'c'
	case 'ñ':
		return 'n'
	}
	return r
}

// RandomSuffix returns a short hex suffix appended to a slug or code when
// the base candidate is already taken.
func RandomSuffix() string {
	buf := make([]byte, 2)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

// NewQRToken returns an opaque 32-character token backed by 16 bytes of
// crypto/rand entropy. Uniqueness is still enforced by the database index,
// not assumed from entropy alone.
func NewQRToken() string {
	buf := make([]byte, 16)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}
