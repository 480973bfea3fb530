package codebook

// vicCipher chains a columnar transposition and a Vigenere substitution.
type vicCipher struct{}

// VIC returns a simplified VIC cipher: columnar transposition followed by
// Vigenere, both keyed by the same text key. Operates on letters only.
func VIC() Cipher {
	return &vicCipher{}
}

func (c *vicCipher) Name() string { return string(NameVIC) }

func (c *vicCipher) Encode(plaintext string, key Key) (string, error) {
	letters, err := letterKey(c.Name(), key, "")
	if err != nil {
		return "", err
	}
	transposed := columnarEncode([]rune(sanitize(plaintext)), columnOrder(letters))
	return vigenere(string(transposed), keyIndices(letters), 1), nil
}

func (c *vicCipher) Decode(ciphertext string, key Key) (string, error) {
	letters, err := letterKey(c.Name(), key, "")
	if err != nil {
		return "", err
	}
	substituted := vigenere(ciphertext, keyIndices(letters), -1)
	return string(columnarDecode([]rune(substituted), columnOrder(letters))), nil
}
