package codebook

import (
	"fmt"
	"strings"
)

// DefaultCaesarShift is the classical Caesar shift.
const DefaultCaesarShift = 3

// caesarCipher shifts each letter by a fixed amount.
type caesarCipher struct {
	name  CipherName
	shift int
}

// Caesar returns a Caesar cipher with the default shift of 3.
// A numeric key overrides the shift per call.
func Caesar() Cipher {
	return CaesarWithShift(DefaultCaesarShift)
}

// CaesarWithShift returns a Caesar cipher with a custom default shift.
func CaesarWithShift(n int) Cipher {
	return &caesarCipher{name: NameCaesar, shift: mod(n, alphabetSize)}
}

// ROT13 returns the self-reciprocal shift-13 cipher. It takes no key.
func ROT13() Cipher {
	return &caesarCipher{name: NameROT13, shift: 13}
}

func (c *caesarCipher) Name() string { return string(c.name) }

func (c *caesarCipher) resolve(key Key) (int, error) {
	if key.IsZero() {
		return c.shift, nil
	}
	if c.name == NameROT13 {
		return 0, requireNoKey(c.Name(), key)
	}
	if key.Kind() == KeyPair || key.Kind() == KeyDouble {
		return 0, invalidKindError(c.Name(), key, KeyNumeric, KeyWidth)
	}
	n, ok := key.integer()
	if !ok {
		return 0, newConfigError(ErrInvalidKey, c.Name(), "shift must be an integer")
	}
	return mod(n, alphabetSize), nil
}

func (c *caesarCipher) Encode(plaintext string, key Key) (string, error) {
	n, err := c.resolve(key)
	if err != nil {
		return "", err
	}
	return mapLetters(plaintext, func(idx, _ int) int { return idx + n }), nil
}

func (c *caesarCipher) Decode(ciphertext string, key Key) (string, error) {
	n, err := c.resolve(key)
	if err != nil {
		return "", err
	}
	return mapLetters(ciphertext, func(idx, _ int) int { return idx - n }), nil
}

// atbashCipher mirrors the alphabet.
type atbashCipher struct{}

// Atbash returns the self-reciprocal mirror cipher (A<->Z, B<->Y, ...).
func Atbash() Cipher {
	return &atbashCipher{}
}

func (c *atbashCipher) Name() string { return string(NameAtbash) }

func (c *atbashCipher) Encode(plaintext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	return mapLetters(plaintext, func(idx, _ int) int { return alphabetSize - 1 - idx }), nil
}

func (c *atbashCipher) Decode(ciphertext string, key Key) (string, error) {
	return c.Encode(ciphertext, key)
}

// affineCipher computes E(x) = a*x + b mod 26.
type affineCipher struct {
	a, b    int
	inverse int
}

// Affine returns an affine cipher E(x) = a*x + b mod 26.
// Fails with ErrNoModularInverse when a is not coprime to 26.
// A pair key overrides (a, b) per call and is validated the same way.
func Affine(a, b int) (Cipher, error) {
	inv, err := modInverse(a, alphabetSize)
	if err != nil {
		return nil, newConfigError(ErrNoModularInverse, string(NameAffine), fmt.Sprintf("a=%d is not coprime to 26", a))
	}
	return &affineCipher{a: mod(a, alphabetSize), b: mod(b, alphabetSize), inverse: inv}, nil
}

func (c *affineCipher) Name() string { return string(NameAffine) }

func (c *affineCipher) resolve(key Key) (*affineCipher, error) {
	if key.IsZero() {
		return c, nil
	}
	a, b, ok := key.Pair()
	if !ok {
		return nil, invalidKindError(c.Name(), key, KeyPair)
	}
	ac, err := Affine(a, b)
	if err != nil {
		return nil, err
	}
	return ac.(*affineCipher), nil
}

func (c *affineCipher) Encode(plaintext string, key Key) (string, error) {
	ac, err := c.resolve(key)
	if err != nil {
		return "", err
	}
	return mapLetters(plaintext, func(x, _ int) int { return ac.a*x + ac.b }), nil
}

func (c *affineCipher) Decode(ciphertext string, key Key) (string, error) {
	ac, err := c.resolve(key)
	if err != nil {
		return "", err
	}
	return mapLetters(ciphertext, func(x, _ int) int { return ac.inverse * (x - ac.b) }), nil
}

// substitutionTable is a letter permutation and its inverse.
type substitutionTable struct {
	forward [26]int
	inverse [26]int
}

// newSubstitutionTable builds tables from a 26-letter permutation.
func newSubstitutionTable(alphabet string) substitutionTable {
	var t substitutionTable
	for i, r := range alphabet {
		j := int(r - 'A')
		t.forward[i] = j
		t.inverse[j] = i
	}
	return t
}

func (t substitutionTable) encode(s string) string {
	return mapLetters(s, func(idx, _ int) int { return t.forward[idx] })
}

func (t substitutionTable) decode(s string) string {
	return mapLetters(s, func(idx, _ int) int { return t.inverse[idx] })
}

// validateAlphabet checks that alphabet sanitizes to 26 distinct letters.
func validateAlphabet(cipher, alphabet string) (string, error) {
	clean := sanitize(alphabet)
	if len(clean) != alphabetSize {
		return "", newConfigError(ErrInvalidAlphabetLength, cipher,
			fmt.Sprintf("got %d letters, want %d", len(clean), alphabetSize))
	}
	if dedupeLetters(clean) != clean {
		return "", newConfigError(ErrInvalidAlphabetLength, cipher, "alphabet repeats letters")
	}
	return clean, nil
}

// keywordCipher substitutes with a keyword-mixed alphabet.
type keywordCipher struct {
	keyword string
}

// Keyword returns a keyword substitution cipher that requires a text key.
func Keyword() Cipher {
	return &keywordCipher{}
}

// KeywordWith returns a keyword substitution cipher with a default keyword.
func KeywordWith(keyword string) Cipher {
	return &keywordCipher{keyword: keyword}
}

func (c *keywordCipher) Name() string { return string(NameKeyword) }

func (c *keywordCipher) table(key Key) (substitutionTable, error) {
	kw, err := letterKey(c.Name(), key, c.keyword)
	if err != nil {
		return substitutionTable{}, err
	}
	return newSubstitutionTable(keyedAlphabet(kw)), nil
}

func (c *keywordCipher) Encode(plaintext string, key Key) (string, error) {
	t, err := c.table(key)
	if err != nil {
		return "", err
	}
	return t.encode(plaintext), nil
}

func (c *keywordCipher) Decode(ciphertext string, key Key) (string, error) {
	t, err := c.table(key)
	if err != nil {
		return "", err
	}
	return t.decode(ciphertext), nil
}

// monoalphabeticCipher substitutes with an explicit alphabet.
type monoalphabeticCipher struct {
	table substitutionTable
}

// Monoalphabetic returns a substitution cipher over a custom 26-letter alphabet.
// Fails with ErrInvalidAlphabetLength unless alphabet holds 26 distinct letters.
// A text key supplies a replacement alphabet per call.
func Monoalphabetic(alphabet string) (Cipher, error) {
	clean, err := validateAlphabet(string(NameMonoalphabetic), alphabet)
	if err != nil {
		return nil, err
	}
	return &monoalphabeticCipher{table: newSubstitutionTable(clean)}, nil
}

func (c *monoalphabeticCipher) Name() string { return string(NameMonoalphabetic) }

func (c *monoalphabeticCipher) resolve(key Key) (substitutionTable, error) {
	if key.IsZero() {
		return c.table, nil
	}
	alpha, err := textKey(c.Name(), key, "")
	if err != nil {
		return substitutionTable{}, err
	}
	clean, err := validateAlphabet(c.Name(), alpha)
	if err != nil {
		return substitutionTable{}, err
	}
	return newSubstitutionTable(clean), nil
}

func (c *monoalphabeticCipher) Encode(plaintext string, key Key) (string, error) {
	t, err := c.resolve(key)
	if err != nil {
		return "", err
	}
	return t.encode(plaintext), nil
}

func (c *monoalphabeticCipher) Decode(ciphertext string, key Key) (string, error) {
	t, err := c.resolve(key)
	if err != nil {
		return "", err
	}
	return t.decode(ciphertext), nil
}

// pigpenGlyphs holds one glyph per letter: two tic-tac-toe grids (plain and
// dotted) for A-R, two saltires (plain and dotted) for S-Z.
var pigpenGlyphs = [26]rune{
	'┘', '┴', '└', '┤', '┼', '├', '┐', '┬', '┌',
	'╝', '╩', '╚', '╣', '╬', '╠', '╗', '╦', '╔',
	'∨', '⟩', '⟨', '∧',
	'⊻', '⊳', '⊲', '⊼',
}

// pigpenCipher swaps letters for grid glyphs.
type pigpenCipher struct {
	inverse map[rune]rune
}

// Pigpen returns the keyless grid-glyph substitution.
func Pigpen() Cipher {
	inv := make(map[rune]rune, len(pigpenGlyphs))
	for i, g := range pigpenGlyphs {
		inv[g] = letterAt(i)
	}
	return &pigpenCipher{inverse: inv}
}

func (c *pigpenCipher) Name() string { return string(NamePigpen) }

func (c *pigpenCipher) Encode(plaintext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	var b strings.Builder
	for _, r := range plaintext {
		if idx, ok := letterIndex(r); ok {
			b.WriteRune(pigpenGlyphs[idx])
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}

func (c *pigpenCipher) Decode(ciphertext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	var b strings.Builder
	for _, r := range ciphertext {
		if l, ok := c.inverse[r]; ok {
			b.WriteRune(l)
			continue
		}
		b.WriteRune(r)
	}
	return b.String(), nil
}
