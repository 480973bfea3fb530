package codebook

import (
	"fmt"
	"strings"
)

// Alphabet is the reference alphabet shared by every letter cipher.
// A letter's index in Alphabet is its numeric value.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// alphabetSize is the modulus for letter arithmetic.
const alphabetSize = len(Alphabet)

// mod returns n modulo m in the range [0, m-1], including for negative n.
func mod(n, m int) int {
	r := n % m
	if r < 0 {
		r += m
	}
	return r
}

// gcd returns the greatest common divisor of a and b.
func gcd(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// modInverse returns x in [1, m-1] such that a*x ≡ 1 (mod m).
// Returns ErrNoModularInverse when a and m are not coprime.
func modInverse(a, m int) (int, error) {
	if m <= 1 || gcd(a, m) != 1 {
		return 0, fmt.Errorf("%w: %d has no inverse modulo %d", ErrNoModularInverse, a, m)
	}

	// Extended Euclid
	t, newT := 0, 1
	r, newR := m, mod(a, m)
	for newR != 0 {
		q := r / newR
		t, newT = newT, t-q*newT
		r, newR = newR, r-q*newR
	}
	return mod(t, m), nil
}

// letterIndex returns the alphabet index of r, folding lower case.
// The second result is false for anything outside A-Z.
func letterIndex(r rune) (int, bool) {
	switch {
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), true
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), true
	default:
		return 0, false
	}
}

// letterAt returns the upper-case letter for index i modulo 26.
func letterAt(i int) rune {
	return rune(Alphabet[mod(i, alphabetSize)])
}

// shift moves a letter n places along the alphabet. Non-letters are returned unchanged.
func shift(r rune, n int) rune {
	idx, ok := letterIndex(r)
	if !ok {
		return r
	}
	return letterAt(idx + n)
}

// sanitize returns the upper-cased letters of s with everything else removed.
func sanitize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if idx, ok := letterIndex(r); ok {
			b.WriteRune(letterAt(idx))
		}
	}
	return b.String()
}

// sanitizeAlphanumeric is sanitize but keeps ASCII digits.
func sanitizeAlphanumeric(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if idx, ok := letterIndex(r); ok {
			b.WriteRune(letterAt(idx))
			continue
		}
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// mapLetters applies fn to every letter of s, passing everything else through.
// fn receives the letter's index and its position among letters only.
func mapLetters(s string, fn func(idx, pos int) int) string {
	var b strings.Builder
	b.Grow(len(s))
	pos := 0
	for _, r := range s {
		idx, ok := letterIndex(r)
		if !ok {
			b.WriteRune(r)
			continue
		}
		b.WriteRune(letterAt(fn(idx, pos)))
		pos++
	}
	return b.String()
}

// dedupeLetters returns the sanitized letters of s in first-seen order without repeats.
func dedupeLetters(s string) string {
	var seen [26]bool
	var b strings.Builder
	for _, r := range sanitize(s) {
		idx := int(r - 'A')
		if seen[idx] {
			continue
		}
		seen[idx] = true
		b.WriteRune(r)
	}
	return b.String()
}

// keyedAlphabet places the deduplicated keyword letters first and appends the
// rest of the alphabet in order.
func keyedAlphabet(keyword string) string {
	return dedupeLetters(keyword + Alphabet)
}
