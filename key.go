package codebook

import (
	"fmt"
	"strconv"
	"strings"
)

// KeyKind identifies which variant a Key holds.
type KeyKind int

const (
	// KeyNone is the absent key.
	KeyNone KeyKind = iota

	// KeyText is an arbitrary string, usually sanitized to letters.
	KeyText

	// KeyNumeric is a string of decimal digits.
	KeyNumeric

	// KeyPair is an ordered integer pair (Affine a, b).
	KeyPair

	// KeyWidth is a single positive integer (rails, grid width, diameter).
	KeyWidth

	// KeyDouble is two text keys (Double Transposition, ADFGVX grid + transposition).
	KeyDouble
)

// String returns the kind name used in events and error messages.
func (k KeyKind) String() string {
	switch k {
	case KeyNone:
		return "none"
	case KeyText:
		return "text"
	case KeyNumeric:
		return "numeric"
	case KeyPair:
		return "pair"
	case KeyWidth:
		return "width"
	case KeyDouble:
		return "double"
	default:
		return fmt.Sprintf("key-kind-invalid(%d)", int(k))
	}
}

// Key is a closed sum of the key shapes ciphers accept.
// The zero value is the absent key.
type Key struct {
	kind   KeyKind
	text   string
	second string
	a, b   int
}

// NoKey returns the absent key.
func NoKey() Key {
	return Key{}
}

// TextKey returns a text key. An empty string yields the absent key.
func TextKey(s string) Key {
	if s == "" {
		return Key{}
	}
	return Key{kind: KeyText, text: s}
}

// NumericKey returns a digit-string key. An empty string yields the absent key.
// Digits are validated by the ciphers that consume it.
func NumericKey(s string) Key {
	if s == "" {
		return Key{}
	}
	return Key{kind: KeyNumeric, text: s}
}

// PairKey returns an integer pair key.
func PairKey(a, b int) Key {
	return Key{kind: KeyPair, a: a, b: b}
}

// WidthKey returns a single-integer key.
func WidthKey(n int) Key {
	return Key{kind: KeyWidth, a: n}
}

// DoubleKey returns a key holding two text keys.
func DoubleKey(first, second string) Key {
	return Key{kind: KeyDouble, text: first, second: second}
}

// Kind reports the variant held by k.
func (k Key) Kind() KeyKind {
	return k.kind
}

// IsZero reports whether k is the absent key.
func (k Key) IsZero() bool {
	return k.kind == KeyNone
}

// Text returns the text of a text or numeric key.
func (k Key) Text() (string, bool) {
	if k.kind != KeyText && k.kind != KeyNumeric {
		return "", false
	}
	return k.text, true
}

// Pair returns the integers of a pair key.
func (k Key) Pair() (int, int, bool) {
	if k.kind != KeyPair {
		return 0, 0, false
	}
	return k.a, k.b, true
}

// Width returns the integer of a width key.
func (k Key) Width() (int, bool) {
	if k.kind != KeyWidth {
		return 0, false
	}
	return k.a, true
}

// Double returns both halves of a double key.
func (k Key) Double() (string, string, bool) {
	if k.kind != KeyDouble {
		return "", "", false
	}
	return k.text, k.second, true
}

// String renders k with secret material masked. See MaskKey.
func (k Key) String() string {
	return MaskKey(k)
}

// material returns the raw bytes identifying the key, for fingerprinting.
func (k Key) material() []byte {
	switch k.kind {
	case KeyText, KeyNumeric:
		return []byte(k.text)
	case KeyPair:
		return []byte(strconv.Itoa(k.a) + "," + strconv.Itoa(k.b))
	case KeyWidth:
		return []byte(strconv.Itoa(k.a))
	case KeyDouble:
		return []byte(k.text + "\x00" + k.second)
	default:
		return nil
	}
}

// integer extracts a single integer from a width, numeric or digit-only text key.
func (k Key) integer() (int, bool) {
	switch k.kind {
	case KeyWidth:
		return k.a, true
	case KeyNumeric, KeyText:
		n, err := strconv.Atoi(strings.TrimSpace(k.text))
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}

// textKey resolves the text a keyed cipher should use. A text key wins,
// otherwise fallback is used. Wrong kinds fail with ErrInvalidKey and an
// empty result fails with ErrMissingKey.
func textKey(cipher string, key Key, fallback string) (string, error) {
	switch key.kind {
	case KeyText:
		return key.text, nil
	case KeyNone:
		if fallback == "" {
			return "", newConfigError(ErrMissingKey, cipher, "")
		}
		return fallback, nil
	default:
		return "", invalidKindError(cipher, key, KeyText)
	}
}

// letterKey is textKey reduced to its letters; a key without letters is missing.
func letterKey(cipher string, key Key, fallback string) (string, error) {
	text, err := textKey(cipher, key, fallback)
	if err != nil {
		return "", err
	}
	letters := sanitize(text)
	if letters == "" {
		return "", newConfigError(ErrMissingKey, cipher, "key has no letters")
	}
	return letters, nil
}

// requireNoKey rejects every key kind except KeyNone.
func requireNoKey(cipher string, key Key) error {
	if key.kind != KeyNone {
		return invalidKindError(cipher, key, KeyNone)
	}
	return nil
}

// invalidKindError reports a key of the wrong variant.
func invalidKindError(cipher string, key Key, want ...KeyKind) error {
	names := make([]string, len(want))
	for i, w := range want {
		names[i] = w.String()
	}
	detail := fmt.Sprintf("got %s key, want %s", key.kind, strings.Join(names, " or "))
	return newConfigError(ErrInvalidKey, cipher, detail)
}
