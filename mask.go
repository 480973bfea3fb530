package codebook

import (
	"encoding/hex"
	"strconv"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// fingerprintBytes is the number of BLAKE2b-256 bytes kept in a fingerprint.
const fingerprintBytes = 8

// MaskKey renders k for logs and events without revealing its material.
//
//	none                 -> none
//	text "LEMON"         -> text:L****
//	numeric "31415"      -> numeric:*****
//	pair (5, 8)          -> pair:*,*
//	width 3              -> width:3
//	double "AB", "CDE"   -> double:A*|C**
//
// Widths are structural (rail or column counts) and shown as is.
func MaskKey(k Key) string {
	switch k.kind {
	case KeyNone:
		return "none"
	case KeyText:
		return "text:" + maskText(k.text)
	case KeyNumeric:
		return "numeric:" + strings.Repeat("*", len([]rune(k.text)))
	case KeyPair:
		return "pair:*,*"
	case KeyWidth:
		return "width:" + strconv.Itoa(k.a)
	case KeyDouble:
		return "double:" + maskText(k.text) + "|" + maskText(k.second)
	default:
		return k.kind.String()
	}
}

// maskText keeps the first rune and masks the rest: LEMON -> L****
func maskText(s string) string {
	runes := []rune(s)
	if len(runes) == 0 {
		return ""
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-1)
}

// Fingerprint returns a short stable identifier for k: the hex prefix of the
// BLAKE2b-256 digest of its material, prefixed by the kind. Equal keys have
// equal fingerprints, so events can be correlated without exposing the key.
// The absent key has an empty fingerprint.
func Fingerprint(k Key) string {
	if k.kind == KeyNone {
		return ""
	}
	material := append([]byte(k.kind.String()+":"), k.material()...)
	sum := blake2b.Sum256(material)
	return hex.EncodeToString(sum[:fingerprintBytes])
}
