package codebook

import (
	"strconv"
	"strings"
)

// polybiusGrid is the 5x5 square with I and J sharing a cell.
const polybiusGrid = "ABCDEFGHIKLMNOPQRSTUVWXYZ"

// polybiusCoords returns the 1-based row and column of a letter index.
// J shares I's cell.
func polybiusCoords(idx int) (int, int) {
	if idx == 'J'-'A' {
		idx = 'I' - 'A'
	}
	pos := strings.IndexByte(polybiusGrid, byte('A'+idx))
	return pos/5 + 1, pos%5 + 1
}

// polybiusLetter returns the letter at a 1-based row and column.
func polybiusLetter(row, col int) (byte, bool) {
	if row < 1 || row > 5 || col < 1 || col > 5 {
		return 0, false
	}
	return polybiusGrid[(row-1)*5+col-1], true
}

// letterIndices returns the alphabet indices of the sanitized letters of s.
func letterIndices(s string) []int {
	clean := sanitize(s)
	out := make([]int, len(clean))
	for i := 0; i < len(clean); i++ {
		out[i] = int(clean[i] - 'A')
	}
	return out
}

// joinDecoded concatenates decoded tokens, keeping unrecognized tokens verbatim.
func joinDecoded(tokens []string, decode func(tok string) (string, bool)) string {
	var b strings.Builder
	for _, tok := range tokens {
		if s, ok := decode(tok); ok {
			b.WriteString(s)
			continue
		}
		b.WriteString(tok)
	}
	return b.String()
}

// polybiusCipher replaces letters with grid coordinates.
type polybiusCipher struct{}

// Polybius returns the 5x5 square cipher. Each letter becomes a two-digit
// row/column code; codes are space separated. J is encoded as I.
func Polybius() Cipher {
	return &polybiusCipher{}
}

func (c *polybiusCipher) Name() string { return string(NamePolybius) }

func (c *polybiusCipher) Encode(plaintext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	idx := letterIndices(plaintext)
	codes := make([]string, len(idx))
	for i, x := range idx {
		row, col := polybiusCoords(x)
		codes[i] = strconv.Itoa(row*10 + col)
	}
	return strings.Join(codes, " "), nil
}

func (c *polybiusCipher) Decode(ciphertext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	return joinDecoded(strings.Fields(ciphertext), func(tok string) (string, bool) {
		if len(tok) != 2 {
			return "", false
		}
		l, ok := polybiusLetter(int(tok[0]-'0'), int(tok[1]-'0'))
		if !ok {
			return "", false
		}
		return string(l), true
	}), nil
}

// bifidCipher fractionates letters into row and column streams.
type bifidCipher struct {
	name CipherName
}

// Bifid returns the Bifid cipher: Polybius coordinates are split into a row
// stream and a column stream, concatenated, then re-paired into letters.
func Bifid() Cipher {
	return &bifidCipher{name: NameBifid}
}

// Trifid returns the Trifid cipher with a constant depth of 1. A constant
// depth stream carries no information, so fractionation reduces to the row
// and column streams and the output equals Bifid's.
func Trifid() Cipher {
	return &bifidCipher{name: NameTrifid}
}

func (c *bifidCipher) Name() string { return string(c.name) }

func (c *bifidCipher) Encode(plaintext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	idx := letterIndices(plaintext)
	n := len(idx)
	stream := make([]int, 2*n)
	for i, x := range idx {
		stream[i], stream[n+i] = polybiusCoords(x)
	}

	out := make([]byte, n)
	for i := range out {
		out[i], _ = polybiusLetter(stream[2*i], stream[2*i+1])
	}
	return string(out), nil
}

func (c *bifidCipher) Decode(ciphertext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	idx := letterIndices(ciphertext)
	n := len(idx)
	stream := make([]int, 2*n)
	for i, x := range idx {
		stream[2*i], stream[2*i+1] = polybiusCoords(x)
	}

	out := make([]byte, n)
	for i := range out {
		out[i], _ = polybiusLetter(stream[i], stream[n+i])
	}
	return string(out), nil
}

// adfgvxLabels are the row and column labels of the 6x6 grid.
const adfgvxLabels = "ADFGVX"

// adfgvxDefaultGrid is the unkeyed 6x6 grid.
const adfgvxDefaultGrid = Alphabet + "0123456789"

// adfgvxCipher substitutes through a 6x6 grid then transposes.
type adfgvxCipher struct{}

// ADFGVX returns the ADFGVX cipher. Letters and digits become label pairs
// from a 6x6 grid, then the pairs are columnar-transposed with the text key.
// DoubleKey(gridKeyword, transpositionKey) also mixes the grid.
func ADFGVX() Cipher {
	return &adfgvxCipher{}
}

func (c *adfgvxCipher) Name() string { return string(NameADFGVX) }

// resolve returns the grid and transposition order for key.
func (c *adfgvxCipher) resolve(key Key) (string, []int, error) {
	var gridKey, transKey string
	switch key.Kind() {
	case KeyNone:
		return "", nil, newConfigError(ErrMissingKey, c.Name(), "")
	case KeyText:
		transKey, _ = key.Text()
	case KeyDouble:
		gridKey, transKey, _ = key.Double()
	default:
		return "", nil, invalidKindError(c.Name(), key, KeyText, KeyDouble)
	}
	transKey = sanitize(transKey)
	if transKey == "" {
		return "", nil, newConfigError(ErrMissingKey, c.Name(), "transposition key has no letters")
	}

	grid := adfgvxDefaultGrid
	if gridKey != "" {
		var seen [128]bool
		var b strings.Builder
		for _, r := range sanitizeAlphanumeric(gridKey) + adfgvxDefaultGrid {
			if !seen[r] {
				seen[r] = true
				b.WriteRune(r)
			}
		}
		grid = b.String()
	}
	return grid, columnOrder(transKey), nil
}

func (c *adfgvxCipher) Encode(plaintext string, key Key) (string, error) {
	grid, order, err := c.resolve(key)
	if err != nil {
		return "", err
	}
	text := sanitizeAlphanumeric(plaintext)
	pairs := make([]rune, 0, 2*len(text))
	for i := 0; i < len(text); i++ {
		pos := strings.IndexByte(grid, text[i])
		pairs = append(pairs, rune(adfgvxLabels[pos/6]), rune(adfgvxLabels[pos%6]))
	}
	return string(columnarEncode(pairs, order)), nil
}

func (c *adfgvxCipher) Decode(ciphertext string, key Key) (string, error) {
	grid, order, err := c.resolve(key)
	if err != nil {
		return "", err
	}
	text := []rune(strings.ToUpper(strings.Join(strings.Fields(ciphertext), "")))
	pairs := columnarDecode(text, order)

	var b strings.Builder
	for i := 0; i < len(pairs); i += 2 {
		if i+1 == len(pairs) {
			b.WriteRune(pairs[i])
			break
		}
		row := strings.IndexRune(adfgvxLabels, pairs[i])
		col := strings.IndexRune(adfgvxLabels, pairs[i+1])
		if row < 0 || col < 0 {
			b.WriteRune(pairs[i])
			b.WriteRune(pairs[i+1])
			continue
		}
		b.WriteByte(grid[row*6+col])
	}
	return b.String(), nil
}

// nihilistCipher adds key coordinates to text coordinates.
type nihilistCipher struct{}

// Nihilist returns the Nihilist cipher: each letter's Polybius number
// (row*10+col) plus the repeating key letter's number, space separated.
func Nihilist() Cipher {
	return &nihilistCipher{}
}

func (c *nihilistCipher) Name() string { return string(NameNihilist) }

func (c *nihilistCipher) keyNumbers(key Key) ([]int, error) {
	letters, err := letterKey(c.Name(), key, "")
	if err != nil {
		return nil, err
	}
	nums := make([]int, len(letters))
	for i := 0; i < len(letters); i++ {
		row, col := polybiusCoords(int(letters[i] - 'A'))
		nums[i] = row*10 + col
	}
	return nums, nil
}

func (c *nihilistCipher) Encode(plaintext string, key Key) (string, error) {
	k, err := c.keyNumbers(key)
	if err != nil {
		return "", err
	}
	idx := letterIndices(plaintext)
	out := make([]string, len(idx))
	for i, x := range idx {
		row, col := polybiusCoords(x)
		out[i] = strconv.Itoa(row*10 + col + k[i%len(k)])
	}
	return strings.Join(out, " "), nil
}

func (c *nihilistCipher) Decode(ciphertext string, key Key) (string, error) {
	k, err := c.keyNumbers(key)
	if err != nil {
		return "", err
	}
	pos := 0
	return joinDecoded(strings.Fields(ciphertext), func(tok string) (string, bool) {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return "", false
		}
		v := n - k[pos%len(k)]
		pos++
		l, ok := polybiusLetter(v/10, v%10)
		if !ok || v < 0 {
			return "", false
		}
		return string(l), true
	}), nil
}

// tapCodeCipher renders grid coordinates as groups of taps.
type tapCodeCipher struct{}

// TapCode returns the prisoners' tap code. Each letter becomes
// "<row taps> <column taps>" using dots; letters are joined with " / ".
// J is tapped as I.
func TapCode() Cipher {
	return &tapCodeCipher{}
}

func (c *tapCodeCipher) Name() string { return string(NameTapCode) }

func (c *tapCodeCipher) Encode(plaintext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	idx := letterIndices(plaintext)
	out := make([]string, len(idx))
	for i, x := range idx {
		row, col := polybiusCoords(x)
		out[i] = strings.Repeat(".", row) + " " + strings.Repeat(".", col)
	}
	return strings.Join(out, " / "), nil
}

func (c *tapCodeCipher) Decode(ciphertext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	parts := strings.Split(ciphertext, "/")
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			tokens = append(tokens, p)
		}
	}
	return joinDecoded(tokens, func(tok string) (string, bool) {
		groups := strings.Fields(tok)
		if len(groups) != 2 || strings.Trim(groups[0], ".") != "" || strings.Trim(groups[1], ".") != "" {
			return "", false
		}
		l, ok := polybiusLetter(len(groups[0]), len(groups[1]))
		if !ok {
			return "", false
		}
		return string(l), true
	}), nil
}

// baconCipher writes each letter index as five A/B symbols.
type baconCipher struct{}

// Bacon returns Bacon's biliteral cipher over all 26 letters: the letter's
// index as 5 bits, A for 0 and B for 1, space separated.
func Bacon() Cipher {
	return &baconCipher{}
}

func (c *baconCipher) Name() string { return string(NameBacon) }

func (c *baconCipher) Encode(plaintext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	idx := letterIndices(plaintext)
	out := make([]string, len(idx))
	for i, x := range idx {
		var sym [5]byte
		for bit := 0; bit < 5; bit++ {
			sym[bit] = 'A'
			if x&(1<<(4-bit)) != 0 {
				sym[bit] = 'B'
			}
		}
		out[i] = string(sym[:])
	}
	return strings.Join(out, " "), nil
}

func (c *baconCipher) Decode(ciphertext string, key Key) (string, error) {
	if err := requireNoKey(c.Name(), key); err != nil {
		return "", err
	}
	return joinDecoded(strings.Fields(ciphertext), func(tok string) (string, bool) {
		if len(tok) != 5 {
			return "", false
		}
		v := 0
		for i := 0; i < 5; i++ {
			v <<= 1
			switch tok[i] {
			case 'A', 'a':
			case 'B', 'b':
				v |= 1
			default:
				return "", false
			}
		}
		if v >= alphabetSize {
			return "", false
		}
		return string(letterAt(v)), true
	}), nil
}
