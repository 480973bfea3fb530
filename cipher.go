package codebook

// Cipher is the capability every algorithm exposes.
//
// Implementations are immutable after construction and safe for concurrent
// use. Encode and Decode fail only on configuration problems (missing or
// malformed keys); malformed ciphertext is passed through rather than rejected.
type Cipher interface {
	// Name returns the display name of the cipher.
	Name() string

	// Encode transforms plaintext under key.
	Encode(plaintext string, key Key) (string, error)

	// Decode reverses Encode under the same key.
	Decode(ciphertext string, key Key) (string, error)
}

// builtinCiphers constructs one instance of every built-in family in registration order.
func builtinCiphers() []Cipher {
	affine, err := Affine(5, 8)
	if err != nil {
		panic(err)
	}
	mono, err := Monoalphabetic("QWERTYUIOPASDFGHJKLZXCVBNM")
	if err != nil {
		panic(err)
	}

	return []Cipher{
		Caesar(),
		ROT13(),
		Atbash(),
		affine,
		Keyword(),
		mono,
		Pigpen(),
		Vigenere(),
		Beaufort(),
		Autokey(),
		Gronsfeld(),
		Porta(),
		RailFence(),
		Columnar(),
		Route(),
		Scytale(),
		DoubleTransposition(),
		Polybius(),
		Bifid(),
		Trifid(),
		ADFGVX(),
		Nihilist(),
		TapCode(),
		Bacon(),
		FractionatedMorse(),
		DefaultEnigma(),
		VIC(),
		Base64(),
		XOR(),
		Baudot(),
		Morse(),
	}
}
