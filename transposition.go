package codebook

import (
	"fmt"
	"sort"
)

// Transposition defaults when no key is given.
const (
	DefaultRails           = 3
	DefaultRouteWidth      = 5
	DefaultScytaleDiameter = 3
)

// intKey resolves an integer-valued key, falling back to def when absent.
func intKey(cipher string, key Key, def int) (int, error) {
	if key.IsZero() {
		return def, nil
	}
	switch key.Kind() {
	case KeyWidth, KeyNumeric, KeyText:
	default:
		return 0, invalidKindError(cipher, key, KeyWidth)
	}
	n, ok := key.integer()
	if !ok {
		return 0, newConfigError(ErrInvalidKey, cipher, "key must be an integer")
	}
	return n, nil
}

// positiveIntKey is intKey restricted to n >= 1.
func positiveIntKey(cipher string, key Key, def int) (int, error) {
	n, err := intKey(cipher, key, def)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, newConfigError(ErrInvalidKey, cipher, fmt.Sprintf("width must be at least 1, got %d", n))
	}
	return n, nil
}

// clampWidth caps a rail, column or row count at the text length. Any larger
// value lays the text out the same way.
func clampWidth(width, n int) int {
	return min(width, max(1, n))
}

// railFenceCipher writes text in a zigzag over N rails.
type railFenceCipher struct{}

// RailFence returns the zigzag transposition. A width key sets the rail
// count (default 3); one rail or fewer is the identity.
func RailFence() Cipher {
	return &railFenceCipher{}
}

func (c *railFenceCipher) Name() string { return string(NameRailFence) }

// railOf returns the rail visited at position i.
func railOf(i, rails int) int {
	cycle := 2 * (rails - 1)
	r := i % cycle
	if r >= rails {
		r = cycle - r
	}
	return r
}

func (c *railFenceCipher) Encode(plaintext string, key Key) (string, error) {
	rails, err := intKey(c.Name(), key, DefaultRails)
	if err != nil {
		return "", err
	}
	text := []rune(plaintext)
	if rails <= 1 || len(text) == 0 {
		return plaintext, nil
	}
	rails = clampWidth(rails, len(text))

	segments := make([][]rune, rails)
	for i, r := range text {
		rail := railOf(i, rails)
		segments[rail] = append(segments[rail], r)
	}
	out := make([]rune, 0, len(text))
	for _, seg := range segments {
		out = append(out, seg...)
	}
	return string(out), nil
}

func (c *railFenceCipher) Decode(ciphertext string, key Key) (string, error) {
	rails, err := intKey(c.Name(), key, DefaultRails)
	if err != nil {
		return "", err
	}
	text := []rune(ciphertext)
	if rails <= 1 || len(text) == 0 {
		return ciphertext, nil
	}
	rails = clampWidth(rails, len(text))

	counts := make([]int, rails)
	for i := range text {
		counts[railOf(i, rails)]++
	}

	// Slice the ciphertext into rails, then walk the zigzag again.
	segments := make([][]rune, rails)
	pos := 0
	for rail, n := range counts {
		segments[rail] = text[pos : pos+n]
		pos += n
	}

	out := make([]rune, len(text))
	next := make([]int, rails)
	for i := range out {
		rail := railOf(i, rails)
		out[i] = segments[rail][next[rail]]
		next[rail]++
	}
	return string(out), nil
}

// columnOrder returns column indices sorted by key letter, ties in original order.
func columnOrder(key string) []int {
	order := make([]int, len(key))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return key[order[i]] < key[order[j]]
	})
	return order
}

// naturalOrder returns 0..n-1.
func naturalOrder(n int) []int {
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	return order
}

// columnarEncode writes text row-major into len(order) columns and reads the
// columns in the given order.
func columnarEncode(text []rune, order []int) []rune {
	cols := len(order)
	out := make([]rune, 0, len(text))
	for _, col := range order {
		for i := col; i < len(text); i += cols {
			out = append(out, text[i])
		}
	}
	return out
}

// columnarDecode inverts columnarEncode. Column lengths are n/cols, plus one
// for each of the first n%cols columns in original order.
func columnarDecode(text []rune, order []int) []rune {
	cols := len(order)
	n := len(text)
	base, extra := n/cols, n%cols

	columns := make([][]rune, cols)
	pos := 0
	for _, col := range order {
		length := base
		if col < extra {
			length++
		}
		columns[col] = text[pos : pos+length]
		pos += length
	}

	out := make([]rune, n)
	for i := range out {
		out[i] = columns[i%cols][i/cols]
	}
	return out
}

// columnarCipher transposes columns in key order.
type columnarCipher struct{}

// Columnar returns the keyed columnar transposition. Every character is
// transposed; the key's letters define column order.
func Columnar() Cipher {
	return &columnarCipher{}
}

func (c *columnarCipher) Name() string { return string(NameColumnar) }

func (c *columnarCipher) Encode(plaintext string, key Key) (string, error) {
	letters, err := letterKey(c.Name(), key, "")
	if err != nil {
		return "", err
	}
	return string(columnarEncode([]rune(plaintext), columnOrder(letters))), nil
}

func (c *columnarCipher) Decode(ciphertext string, key Key) (string, error) {
	letters, err := letterKey(c.Name(), key, "")
	if err != nil {
		return "", err
	}
	return string(columnarDecode([]rune(ciphertext), columnOrder(letters))), nil
}

// routeCipher reads a grid along a clockwise spiral.
type routeCipher struct{}

// Route returns the spiral route transposition. Letters are written row-major
// into a grid of width columns (default 5) and read clockwise from the top-left.
// Operates on letters only.
func Route() Cipher {
	return &routeCipher{}
}

func (c *routeCipher) Name() string { return string(NameRoute) }

// spiral returns the clockwise spiral visiting order of the first n cells of
// a row-major grid with the given width.
func spiral(n, width int) []int {
	width = clampWidth(width, n)
	rows := (n + width - 1) / width
	order := make([]int, 0, n)
	visit := func(r, c int) {
		if idx := r*width + c; idx < n {
			order = append(order, idx)
		}
	}

	top, bottom, left, right := 0, rows-1, 0, width-1
	for top <= bottom && left <= right {
		for col := left; col <= right; col++ {
			visit(top, col)
		}
		top++
		for row := top; row <= bottom; row++ {
			visit(row, right)
		}
		right--
		if top <= bottom {
			for col := right; col >= left; col-- {
				visit(bottom, col)
			}
			bottom--
		}
		if left <= right {
			for row := bottom; row >= top; row-- {
				visit(row, left)
			}
			left++
		}
	}
	return order
}

func (c *routeCipher) Encode(plaintext string, key Key) (string, error) {
	width, err := positiveIntKey(c.Name(), key, DefaultRouteWidth)
	if err != nil {
		return "", err
	}
	text := []rune(sanitize(plaintext))
	out := make([]rune, 0, len(text))
	for _, idx := range spiral(len(text), width) {
		out = append(out, text[idx])
	}
	return string(out), nil
}

func (c *routeCipher) Decode(ciphertext string, key Key) (string, error) {
	width, err := positiveIntKey(c.Name(), key, DefaultRouteWidth)
	if err != nil {
		return "", err
	}
	text := []rune(sanitize(ciphertext))
	out := make([]rune, len(text))
	for k, idx := range spiral(len(text), width) {
		out[idx] = text[k]
	}
	return string(out), nil
}

// scytaleCipher wraps text around a rod of a given diameter.
type scytaleCipher struct{}

// Scytale returns the rod transposition: text is written row-major into
// diameter rows (default 3) and read column-major.
func Scytale() Cipher {
	return &scytaleCipher{}
}

func (c *scytaleCipher) Name() string { return string(NameScytale) }

func (c *scytaleCipher) order(n int, key Key) ([]int, error) {
	d, err := positiveIntKey(c.Name(), key, DefaultScytaleDiameter)
	if err != nil {
		return nil, err
	}
	if d == 1 || n == 0 {
		return nil, nil
	}
	d = clampWidth(d, n)
	return naturalOrder((n + d - 1) / d), nil
}

func (c *scytaleCipher) Encode(plaintext string, key Key) (string, error) {
	text := []rune(plaintext)
	order, err := c.order(len(text), key)
	if err != nil || order == nil {
		return plaintext, err
	}
	return string(columnarEncode(text, order)), nil
}

func (c *scytaleCipher) Decode(ciphertext string, key Key) (string, error) {
	text := []rune(ciphertext)
	order, err := c.order(len(text), key)
	if err != nil || order == nil {
		return ciphertext, err
	}
	return string(columnarDecode(text, order)), nil
}

// doubleTranspositionCipher runs two columnar passes.
type doubleTranspositionCipher struct{}

// DoubleTransposition returns two sequential columnar transpositions. Use
// DoubleKey for distinct keys; a text key is used for both passes.
func DoubleTransposition() Cipher {
	return &doubleTranspositionCipher{}
}

func (c *doubleTranspositionCipher) Name() string { return string(NameDoubleTransposition) }

func (c *doubleTranspositionCipher) orders(key Key) ([]int, []int, error) {
	var first, second string
	switch key.Kind() {
	case KeyNone:
		return nil, nil, newConfigError(ErrMissingKey, c.Name(), "")
	case KeyText:
		first, _ = key.Text()
		second = first
	case KeyDouble:
		first, second, _ = key.Double()
	default:
		return nil, nil, invalidKindError(c.Name(), key, KeyText, KeyDouble)
	}
	first, second = sanitize(first), sanitize(second)
	if first == "" || second == "" {
		return nil, nil, newConfigError(ErrMissingKey, c.Name(), "both keys need letters")
	}
	return columnOrder(first), columnOrder(second), nil
}

func (c *doubleTranspositionCipher) Encode(plaintext string, key Key) (string, error) {
	first, second, err := c.orders(key)
	if err != nil {
		return "", err
	}
	return string(columnarEncode(columnarEncode([]rune(plaintext), first), second)), nil
}

func (c *doubleTranspositionCipher) Decode(ciphertext string, key Key) (string, error) {
	first, second, err := c.orders(key)
	if err != nil {
		return "", err
	}
	return string(columnarDecode(columnarDecode([]rune(ciphertext), second), first)), nil
}
