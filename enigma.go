package codebook

import (
	"fmt"
	"strings"
)

// Historical wirings used by DefaultEnigma.
const (
	RotorI     = "EKMFLGDQVZNTOWYHXUSPAIBRCJ"
	RotorII    = "AJDKSIRUXBLHWTMCQGZNPYFVOE"
	RotorIII   = "BDFHJLCPRTXVZNYEIWGOKMAUSQ"
	ReflectorB = "YRUHQSLDPXNGOKMIEBFZCWVJAT"
)

// EnigmaConfig describes a rotor machine.
type EnigmaConfig struct {
	Rotors    []string // Rotor wirings, first rotor steps fastest
	Reflector string   // Reflector wiring; must pair letters with no fixed points
	Positions []int    // Initial rotor offsets; missing entries start at 0
}

// DefaultEnigmaConfig returns rotors I, II, III with reflector B at offset 0.
func DefaultEnigmaConfig() EnigmaConfig {
	return EnigmaConfig{
		Rotors:    []string{RotorI, RotorII, RotorIII},
		Reflector: ReflectorB,
	}
}

// RotorState is the mutable offset vector of a running machine.
// It belongs to the caller; one state per message stream.
type RotorState struct {
	positions []int
	initial   []int
}

// Positions returns a copy of the current rotor offsets.
func (s *RotorState) Positions() []int {
	out := make([]int, len(s.positions))
	copy(out, s.positions)
	return out
}

// Reset returns the state to the offsets it was created with.
func (s *RotorState) Reset() {
	copy(s.positions, s.initial)
}

// step advances the rotors like an odometer: the first rotor always moves,
// each following rotor moves when its predecessor wraps to 0.
func (s *RotorState) step() {
	for i := range s.positions {
		s.positions[i] = (s.positions[i] + 1) % alphabetSize
		if s.positions[i] != 0 {
			return
		}
	}
}

// Enigma is a rotor machine. The machine's wiring is immutable; rotor
// offsets live in a RotorState so concurrent messages never share state.
type Enigma struct {
	forward   [][26]int
	backward  [][26]int
	reflector [26]int
	initial   []int
}

// NewEnigma validates cfg and builds a machine.
func NewEnigma(cfg EnigmaConfig) (*Enigma, error) {
	name := string(NameEnigma)
	if len(cfg.Rotors) == 0 {
		return nil, newConfigError(ErrInvalidRotor, name, "at least one rotor is required")
	}
	if len(cfg.Positions) > len(cfg.Rotors) {
		return nil, newConfigError(ErrInvalidRotor, name,
			fmt.Sprintf("%d positions for %d rotors", len(cfg.Positions), len(cfg.Rotors)))
	}

	e := &Enigma{
		forward:  make([][26]int, len(cfg.Rotors)),
		backward: make([][26]int, len(cfg.Rotors)),
		initial:  make([]int, len(cfg.Rotors)),
	}

	for i, wiring := range cfg.Rotors {
		clean := sanitize(wiring)
		if len(clean) != alphabetSize {
			return nil, newConfigError(ErrInvalidAlphabetLength, name,
				fmt.Sprintf("rotor %d has %d letters", i+1, len(clean)))
		}
		if dedupeLetters(clean) != clean {
			return nil, newConfigError(ErrInvalidRotor, name, fmt.Sprintf("rotor %d repeats letters", i+1))
		}
		t := newSubstitutionTable(clean)
		e.forward[i], e.backward[i] = t.forward, t.inverse
	}

	refl := sanitize(cfg.Reflector)
	if len(refl) != alphabetSize {
		return nil, newConfigError(ErrInvalidAlphabetLength, name,
			fmt.Sprintf("reflector has %d letters", len(refl)))
	}
	for i := 0; i < alphabetSize; i++ {
		j := int(refl[i] - 'A')
		if j == i || int(refl[j]-'A') != i {
			return nil, newConfigError(ErrInvalidReflector, name,
				fmt.Sprintf("%c does not pair with a distinct letter", letterAt(i)))
		}
		e.reflector[i] = j
	}

	for i, p := range cfg.Positions {
		e.initial[i] = mod(p, alphabetSize)
	}
	return e, nil
}

// DefaultEnigma returns the machine built from DefaultEnigmaConfig.
func DefaultEnigma() *Enigma {
	e, err := NewEnigma(DefaultEnigmaConfig())
	if err != nil {
		panic(err)
	}
	return e
}

// Name returns the display name.
func (e *Enigma) Name() string { return string(NameEnigma) }

// Rotors returns the number of rotors.
func (e *Enigma) Rotors() int { return len(e.forward) }

// NewState returns a fresh state at the configured initial offsets.
func (e *Enigma) NewState() *RotorState {
	return newRotorState(e.initial)
}

func newRotorState(initial []int) *RotorState {
	s := &RotorState{
		positions: make([]int, len(initial)),
		initial:   make([]int, len(initial)),
	}
	copy(s.positions, initial)
	copy(s.initial, initial)
	return s
}

// StateFromKey returns a fresh state for key. A text key sets the offsets
// from its letters ("AAA" is all zeros, missing letters are 0); the absent
// key uses the configured offsets.
func (e *Enigma) StateFromKey(key Key) (*RotorState, error) {
	switch key.Kind() {
	case KeyNone:
		return e.NewState(), nil
	case KeyText:
	default:
		return nil, invalidKindError(e.Name(), key, KeyText)
	}

	text, _ := key.Text()
	letters := sanitize(text)
	if letters == "" {
		return nil, newConfigError(ErrInvalidKey, e.Name(), "rotor key has no letters")
	}
	if len(letters) > e.Rotors() {
		return nil, newConfigError(ErrInvalidKey, e.Name(),
			fmt.Sprintf("%d rotor letters for %d rotors", len(letters), e.Rotors()))
	}
	initial := make([]int, e.Rotors())
	for i := 0; i < len(letters); i++ {
		initial[i] = int(letters[i] - 'A')
	}
	return newRotorState(initial), nil
}

// Process runs text through the machine, advancing state once per letter.
// Non-letters pass through and do not step the rotors. The same call
// decodes, given a state with the same offsets.
func (e *Enigma) Process(state *RotorState, text string) (string, error) {
	if state == nil || len(state.positions) != e.Rotors() {
		return "", newConfigError(ErrInvalidKey, e.Name(), "rotor state does not match machine")
	}

	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		x, ok := letterIndex(r)
		if !ok {
			b.WriteRune(r)
			continue
		}
		state.step()
		for i, p := range state.positions {
			x = mod(e.forward[i][mod(x+p, alphabetSize)]-p, alphabetSize)
		}
		x = e.reflector[x]
		for i := len(state.positions) - 1; i >= 0; i-- {
			p := state.positions[i]
			x = mod(e.backward[i][mod(x+p, alphabetSize)]-p, alphabetSize)
		}
		b.WriteRune(letterAt(x))
	}
	return b.String(), nil
}

// Encode processes plaintext from a fresh state derived from key. Each call
// starts over, so two calls never continue one stream; use NewState or
// StateFromKey with Process to carry rotor positions across messages.
func (e *Enigma) Encode(plaintext string, key Key) (string, error) {
	state, err := e.StateFromKey(key)
	if err != nil {
		return "", err
	}
	return e.Process(state, plaintext)
}

// Decode is Encode: the machine is self-reciprocal from equal starting offsets.
// Like Encode it starts from a fresh state on every call.
func (e *Enigma) Decode(ciphertext string, key Key) (string, error) {
	return e.Encode(ciphertext, key)
}
