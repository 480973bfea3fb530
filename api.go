// Package codebook provides classical and modern ciphers behind one interface.
//
// Every algorithm implements Cipher and is addressed by name through a Registry.
// Keys are passed as a Key, a closed sum of the shapes ciphers accept.
//
// # Basic Usage
//
//	reg := codebook.NewRegistry()
//
//	ct, _ := reg.Encode(ctx, "HELLO", codebook.TextKey("KEY"), "vigenere") // RIJVS
//	pt, _ := reg.Decode(ctx, ct, codebook.TextKey("KEY"), "Vigenere")      // HELLO
//
// Names are matched after Normalize: case folded, whitespace removed.
//
// # Families
//
//   - Monoalphabetic: Caesar, ROT13, Atbash, Affine, Keyword, Monoalphabetic, Pigpen
//   - Polyalphabetic: Vigenere, Beaufort, Autokey, Gronsfeld, Porta
//   - Transposition: Rail Fence, Columnar, Route, Scytale, Double Transposition
//   - Fractionation: Polybius, Bifid, Trifid, ADFGVX, Nihilist, Tap Code, Bacon, Fractionated Morse
//   - Mechanical and composite: Enigma, VIC
//   - Modern codecs: Base64, XOR, Baudot, Morse
//
// Ciphers marked as sanitizing in their constructor docs drop everything but
// letters before transforming; the rest pass non-letters through unchanged.
//
// # Keys
//
//	codebook.NoKey()                  // absent
//	codebook.TextKey("LEMON")         // keyword, alphabet, rotor positions
//	codebook.NumericKey("31415")      // Gronsfeld digits
//	codebook.PairKey(5, 8)            // Affine a, b
//	codebook.WidthKey(4)              // rails, grid width, diameter
//	codebook.DoubleKey("ONE", "TWO")  // Double Transposition, ADFGVX
//
// A key of a kind the cipher does not accept fails with ErrInvalidKey.
//
// # Errors
//
// Configuration is strict and data is lenient: a bad key or constructor
// argument returns an error, while malformed ciphertext decodes to a best
// effort result. Registry failures are *LookupError or *TransformError and
// match their sentinels with errors.Is.
//
// # Enigma
//
// Enigma wiring is immutable. Rotor positions live in a caller-owned
// RotorState:
//
//	m := codebook.DefaultEnigma()
//	st := m.NewState()
//	a, _ := m.Process(st, "HELLO")
//	b, _ := m.Process(st, "WORLD") // continues from where HELLO left off
//
// Encode and Decode start from a fresh state each call.
//
// # Struct Fields
//
// A Processor encodes tagged fields when sealing a value and decodes them when
// opening it:
//
//	type Dispatch struct {
//	    To   string `json:"to"`
//	    Body string `json:"body" codebook:"vigenere"`
//	}
//
//	func (d Dispatch) Clone() Dispatch { return d }
//
//	proc, _ := codebook.NewProcessor[Dispatch](json.New(),
//	    codebook.WithKey("vigenere", codebook.TextKey("LEMON")))
//
//	data, _ := proc.Seal(ctx, &msg)
//	back, _ := proc.Open(ctx, data)
//
// # Codec Providers
//
//   - json - JSON encoding (application/json)
//   - xml - XML encoding (application/xml)
//   - yaml - YAML encoding (application/yaml)
//   - msgpack - MessagePack encoding (application/msgpack)
//   - bson - BSON encoding (application/bson)
//
// # Events
//
// Registry and processor operations emit capitan signals. Keys never appear
// raw in events: they are reported as a kind, a BLAKE2b fingerprint and a
// masked rendering (see MaskKey).
package codebook
