package codebook

// CipherName is the display identifier of a cipher family.
// Registry lookups use Normalize(name), so "Rail Fence" and "railfence" are the same cipher.
type CipherName string

// Monoalphabetic substitution.
const (
	NameCaesar         CipherName = "Caesar"
	NameROT13          CipherName = "ROT13"
	NameAtbash         CipherName = "Atbash"
	NameAffine         CipherName = "Affine"
	NameKeyword        CipherName = "Keyword"
	NameMonoalphabetic CipherName = "Monoalphabetic"
	NamePigpen         CipherName = "Pigpen"
)

// Polyalphabetic substitution.
const (
	NameVigenere  CipherName = "Vigenere"
	NameBeaufort  CipherName = "Beaufort"
	NameAutokey   CipherName = "Autokey"
	NameGronsfeld CipherName = "Gronsfeld"
	NamePorta     CipherName = "Porta"
)

// Transposition.
const (
	NameRailFence           CipherName = "Rail Fence"
	NameColumnar            CipherName = "Columnar"
	NameRoute               CipherName = "Route"
	NameScytale             CipherName = "Scytale"
	NameDoubleTransposition CipherName = "Double Transposition"
)

// Coordinate and fractionation.
const (
	NamePolybius          CipherName = "Polybius"
	NameBifid             CipherName = "Bifid"
	NameTrifid            CipherName = "Trifid"
	NameADFGVX            CipherName = "ADFGVX"
	NameNihilist          CipherName = "Nihilist"
	NameTapCode           CipherName = "Tap Code"
	NameBacon             CipherName = "Bacon"
	NameFractionatedMorse CipherName = "Fractionated Morse"
)

// Mechanical and composite.
const (
	NameEnigma CipherName = "Enigma"
	NameVIC    CipherName = "VIC"
)

// Modern codecs.
const (
	NameBase64 CipherName = "Base64"
	NameXOR    CipherName = "XOR"
	NameBaudot CipherName = "Baudot"
	NameMorse  CipherName = "Morse"
)

// String returns the display name.
func (n CipherName) String() string {
	return string(n)
}

// Normalized returns the registry key for n.
func (n CipherName) Normalized() string {
	return Normalize(string(n))
}

// builtinNames lists every built-in family in registration order.
var builtinNames = []CipherName{
	NameCaesar, NameROT13, NameAtbash, NameAffine, NameKeyword, NameMonoalphabetic, NamePigpen,
	NameVigenere, NameBeaufort, NameAutokey, NameGronsfeld, NamePorta,
	NameRailFence, NameColumnar, NameRoute, NameScytale, NameDoubleTransposition,
	NamePolybius, NameBifid, NameTrifid, NameADFGVX, NameNihilist, NameTapCode, NameBacon, NameFractionatedMorse,
	NameEnigma, NameVIC,
	NameBase64, NameXOR, NameBaudot, NameMorse,
}

// validNames contains the normalized form of every built-in name.
var validNames = func() map[string]bool {
	m := make(map[string]bool, len(builtinNames))
	for _, n := range builtinNames {
		m[n.Normalized()] = true
	}
	return m
}()

// IsBuiltinName returns true if name normalizes to a built-in cipher.
func IsBuiltinName(name string) bool {
	return validNames[Normalize(name)]
}

// BuiltinNames returns the display names of the built-in ciphers in registration order.
func BuiltinNames() []CipherName {
	out := make([]CipherName, len(builtinNames))
	copy(out, builtinNames)
	return out
}
