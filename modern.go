package codebook

import (
	"encoding/base64"
	"encoding/hex"
	"strings"
)

// base64Cipher is standard Base64 over the UTF-8 bytes of the text.
type base64Cipher struct{}

// Base64 returns the keyless standard Base64 codec. Input that is not valid
// Base64 decodes to itself.
func Base64() Cipher {
	return &base64Cipher{}
}

func (c *base64Cipher) Name() string { return string(NameBase64) }

func (c *base64Cipher) Encode(plaintext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString([]byte(plaintext)), nil
}

func (c *base64Cipher) Decode(ciphertext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil {
		return ciphertext, nil
	}
	return string(decoded), nil
}

// XORBytes XORs data with a repeating key. Applying it twice with the same
// key returns the original data. An empty key returns a copy of data.
func XORBytes(data, key []byte) []byte {
	out := make([]byte, len(data))
	if len(key) == 0 {
		copy(out, data)
		return out
	}
	for i, b := range data {
		out[i] = b ^ key[i%len(key)]
	}
	return out
}

// xorCipher XORs bytes with a repeating key and hex-encodes the result.
type xorCipher struct{}

// XOR returns the repeating-key XOR cipher. Encoded output is lowercase hex;
// decode accepts hex and passes anything else through unchanged.
func XOR() Cipher {
	return &xorCipher{}
}

func (c *xorCipher) Name() string { return string(NameXOR) }

func (c *xorCipher) key(key Key) ([]byte, error) {
	switch key.Kind() {
	case KeyNone:
		return nil, newConfigError(ErrMissingKey, c.Name(), "")
	case KeyText, KeyNumeric:
		text, _ := key.Text()
		return []byte(text), nil
	default:
		return nil, invalidKindError(c.Name(), key, KeyText)
	}
}

func (c *xorCipher) Encode(plaintext string, key Key) (string, error) {
	k, err := c.key(key)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(XORBytes([]byte(plaintext), k)), nil
}

func (c *xorCipher) Decode(ciphertext string, key Key) (string, error) {
	k, err := c.key(key)
	if err != nil {
		return "", err
	}
	raw, err := hex.DecodeString(strings.TrimSpace(ciphertext))
	if err != nil {
		return ciphertext, nil
	}
	return string(XORBytes(raw, k)), nil
}

// tokenTable maps single characters to tokens and back.
type tokenTable struct {
	forward map[rune]string
	inverse map[string]rune
}

// newTokenTable builds both directions from a forward map.
func newTokenTable(forward map[rune]string) tokenTable {
	inv := make(map[string]rune, len(forward))
	for r, tok := range forward {
		inv[tok] = r
	}
	return tokenTable{forward: forward, inverse: inv}
}

// encode emits one space-separated token per character. Letters are folded
// to upper case; characters without a token pass through as themselves.
func (t tokenTable) encode(s string) string {
	tokens := make([]string, 0, len(s))
	for _, r := range s {
		if idx, ok := letterIndex(r); ok {
			r = letterAt(idx)
		}
		if tok, ok := t.forward[r]; ok {
			tokens = append(tokens, tok)
			continue
		}
		tokens = append(tokens, string(r))
	}
	return strings.Join(tokens, " ")
}

// decode maps each whitespace-separated token back, passing unknown tokens through.
func (t tokenTable) decode(s string) string {
	return joinDecoded(strings.Fields(s), func(tok string) (string, bool) {
		r, ok := t.inverse[tok]
		if !ok {
			return "", false
		}
		return string(r), true
	})
}

// morseTable is International Morse Code; a word gap is written as "/".
var morseTable = newTokenTable(map[rune]string{
	'A': ".-", 'B': "-...", 'C': "-.-.", 'D': "-..", 'E': ".", 'F': "..-.",
	'G': "--.", 'H': "....", 'I': "..", 'J': ".---", 'K': "-.-", 'L': ".-..",
	'M': "--", 'N': "-.", 'O': "---", 'P': ".--.", 'Q': "--.-", 'R': ".-.",
	'S': "...", 'T': "-", 'U': "..-", 'V': "...-", 'W': ".--", 'X': "-..-",
	'Y': "-.--", 'Z': "--..",
	'0': "-----", '1': ".----", '2': "..---", '3': "...--", '4': "....-",
	'5': ".....", '6': "-....", '7': "--...", '8': "---..", '9': "----.",
	' ': "/",
})

// baudotTable is ITA2 in letters shift, bits written 1 to 5.
var baudotTable = newTokenTable(map[rune]string{
	'A': "00011", 'B': "11001", 'C': "01110", 'D': "01001", 'E': "00001",
	'F': "01101", 'G': "11010", 'H': "10100", 'I': "00110", 'J': "01011",
	'K': "01111", 'L': "10010", 'M': "11100", 'N': "01100", 'O': "11000",
	'P': "10110", 'Q': "10111", 'R': "01010", 'S': "00101", 'T': "10000",
	'U': "00111", 'V': "11110", 'W': "10011", 'X': "11101", 'Y': "10101",
	'Z': "10001", ' ': "00100",
})

// tokenCipher is a keyless codec backed by a token table.
type tokenCipher struct {
	name  CipherName
	table tokenTable
}

// Morse returns the International Morse codec. Tokens are space separated
// and a space between words becomes "/".
func Morse() Cipher {
	return &tokenCipher{name: NameMorse, table: morseTable}
}

// FractionatedMorse returns a Morse codec registered under the Fractionated
// Morse name. The triplet substitution stage is not applied; output is plain Morse.
func FractionatedMorse() Cipher {
	return &tokenCipher{name: NameFractionatedMorse, table: morseTable}
}

// Baudot returns the ITA2 codec: each letter becomes its 5-bit code as
// 0/1 characters, space separated.
func Baudot() Cipher {
	return &tokenCipher{name: NameBaudot, table: baudotTable}
}

func (c *tokenCipher) Name() string { return string(c.name) }

func (c *tokenCipher) Encode(plaintext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	return c.table.encode(plaintext), nil
}

func (c *tokenCipher) Decode(ciphertext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	return c.table.decode(ciphertext), nil
}
