package codebook

import "strings"

// keyIndices converts sanitized key letters to alphabet indices.
func keyIndices(letters string) []int {
	out := make([]int, len(letters))
	for i, r := range letters {
		out[i] = int(r - 'A')
	}
	return out
}

// vigenereCipher adds a repeating key: C = (P + K) mod 26.
type vigenereCipher struct{}

// Vigenere returns the repeating-key additive cipher.
// Operates on letters only; everything else is dropped.
func Vigenere() Cipher {
	return &vigenereCipher{}
}

func (c *vigenereCipher) Name() string { return string(NameVigenere) }

func (c *vigenereCipher) Encode(plaintext string, key Key) (string, error) {
	letters, err := letterKey(c.Name(), key, "")
	if err != nil {
		return "", err
	}
	return vigenere(plaintext, keyIndices(letters), 1), nil
}

func (c *vigenereCipher) Decode(ciphertext string, key Key) (string, error) {
	letters, err := letterKey(c.Name(), key, "")
	if err != nil {
		return "", err
	}
	return vigenere(ciphertext, keyIndices(letters), -1), nil
}

// vigenere applies the key stream over the sanitized text; sign selects encode (+1) or decode (-1).
func vigenere(text string, k []int, sign int) string {
	return mapLetters(sanitize(text), func(idx, pos int) int {
		return idx + sign*k[pos%len(k)]
	})
}

// beaufortCipher subtracts the plaintext from the key: C = (K - P) mod 26.
type beaufortCipher struct{}

// Beaufort returns the self-reciprocal Beaufort cipher.
// Operates on letters only; everything else is dropped.
func Beaufort() Cipher {
	return &beaufortCipher{}
}

func (c *beaufortCipher) Name() string { return string(NameBeaufort) }

func (c *beaufortCipher) Encode(plaintext string, key Key) (string, error) {
	letters, err := letterKey(c.Name(), key, "")
	if err != nil {
		return "", err
	}
	k := keyIndices(letters)
	return mapLetters(sanitize(plaintext), func(idx, pos int) int {
		return k[pos%len(k)] - idx
	}), nil
}

func (c *beaufortCipher) Decode(ciphertext string, key Key) (string, error) {
	return c.Encode(ciphertext, key)
}

// autokeyCipher extends the keyword with the plaintext itself.
type autokeyCipher struct{}

// Autokey returns the autokey cipher. The key stream is the keyword followed
// by the plaintext, so the keyword never repeats. Non-letters pass through
// and do not consume key.
func Autokey() Cipher {
	return &autokeyCipher{}
}

func (c *autokeyCipher) Name() string { return string(NameAutokey) }

func (c *autokeyCipher) Encode(plaintext string, key Key) (string, error) {
	letters, err := letterKey(c.Name(), key, "")
	if err != nil {
		return "", err
	}
	stream := keyIndices(letters)
	return mapLetters(plaintext, func(idx, pos int) int {
		stream = append(stream, idx)
		return idx + stream[pos]
	}), nil
}

func (c *autokeyCipher) Decode(ciphertext string, key Key) (string, error) {
	letters, err := letterKey(c.Name(), key, "")
	if err != nil {
		return "", err
	}
	stream := keyIndices(letters)
	return mapLetters(ciphertext, func(idx, pos int) int {
		p := mod(idx-stream[pos], alphabetSize)
		stream = append(stream, p)
		return p
	}), nil
}

// gronsfeldCipher is Vigenere keyed by digits.
type gronsfeldCipher struct{}

// Gronsfeld returns the digit-keyed shift cipher. Each key digit is a shift;
// digits repeat cyclically. Non-letters pass through and do not consume key.
func Gronsfeld() Cipher {
	return &gronsfeldCipher{}
}

func (c *gronsfeldCipher) Name() string { return string(NameGronsfeld) }

func (c *gronsfeldCipher) digits(key Key) ([]int, error) {
	if key.IsZero() {
		return nil, newConfigError(ErrMissingKey, c.Name(), "")
	}
	if key.Kind() != KeyNumeric && key.Kind() != KeyText {
		return nil, invalidKindError(c.Name(), key, KeyNumeric)
	}
	text, _ := key.Text()
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, newConfigError(ErrMissingKey, c.Name(), "")
	}
	out := make([]int, 0, len(text))
	for _, r := range text {
		if r < '0' || r > '9' {
			return nil, newConfigError(ErrInvalidKey, c.Name(), "key must contain only digits")
		}
		out = append(out, int(r-'0'))
	}
	return out, nil
}

func (c *gronsfeldCipher) Encode(plaintext string, key Key) (string, error) {
	d, err := c.digits(key)
	if err != nil {
		return "", err
	}
	return mapLetters(plaintext, func(idx, pos int) int { return idx + d[pos%len(d)] }), nil
}

func (c *gronsfeldCipher) Decode(ciphertext string, key Key) (string, error) {
	d, err := c.digits(key)
	if err != nil {
		return "", err
	}
	return mapLetters(ciphertext, func(idx, pos int) int { return idx - d[pos%len(d)] }), nil
}

// portaCipher swaps the two alphabet halves with a key-dependent offset.
type portaCipher struct{}

// Porta returns the self-reciprocal Porta cipher. Each key letter selects a
// half-shift of keyIndex/2. Operates on letters only.
func Porta() Cipher {
	return &portaCipher{}
}

func (c *portaCipher) Name() string { return string(NamePorta) }

func (c *portaCipher) Encode(plaintext string, key Key) (string, error) {
	letters, err := letterKey(c.Name(), key, "")
	if err != nil {
		return "", err
	}
	k := keyIndices(letters)
	const half = alphabetSize / 2
	return mapLetters(sanitize(plaintext), func(idx, pos int) int {
		s := k[pos%len(k)] / 2
		if idx < half {
			return half + (idx+s)%half
		}
		return mod(idx-half-s, half)
	}), nil
}

func (c *portaCipher) Decode(ciphertext string, key Key) (string, error) {
	return c.Encode(ciphertext, key)
}
