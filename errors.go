package codebook

import (
	"errors"
	"fmt"
)

// Sentinel errors for programmatic error handling.
// Use errors.Is() to check for these error types.
var (
	// ErrMissingCipherName indicates the registry was called without a cipher name.
	ErrMissingCipherName = errors.New("missing cipher name")

	// ErrCipherNotFound indicates the cipher name is not registered.
	ErrCipherNotFound = errors.New("cipher not found")

	// ErrMissingKey indicates the cipher requires a key and none was given.
	ErrMissingKey = errors.New("missing key")

	// ErrInvalidKey indicates a key of the wrong variant or format.
	ErrInvalidKey = errors.New("invalid key")

	// ErrNoModularInverse indicates a multiplier that is not coprime to the modulus.
	ErrNoModularInverse = errors.New("no modular inverse")

	// ErrInvalidAlphabetLength indicates a substitution alphabet that does not hold 26 distinct letters.
	ErrInvalidAlphabetLength = errors.New("invalid alphabet length")

	// ErrInvalidRotor indicates an Enigma rotor that is not a permutation of the alphabet.
	ErrInvalidRotor = errors.New("invalid rotor")

	// ErrInvalidReflector indicates an Enigma reflector that is not a fixed-point-free involution.
	ErrInvalidReflector = errors.New("invalid reflector")

	// ErrEncode indicates an encode call failed.
	ErrEncode = errors.New("encode failed")

	// ErrDecode indicates a decode call failed.
	ErrDecode = errors.New("decode failed")

	// ErrInvalidTag indicates a struct tag names an unknown cipher.
	ErrInvalidTag = errors.New("invalid tag")

	// ErrUnmarshal indicates the codec failed to unmarshal input data.
	ErrUnmarshal = errors.New("unmarshal failed")

	// ErrMarshal indicates the codec failed to marshal output data.
	ErrMarshal = errors.New("marshal failed")
)

// LookupError represents a registry lookup failure.
type LookupError struct {
	Err  error  // ErrMissingCipherName or ErrCipherNotFound
	Name string // Name as supplied by the caller
}

func (e *LookupError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s: %q", e.Err.Error(), e.Name)
	}
	return e.Err.Error()
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// ConfigError represents a cipher configuration error.
// It wraps a sentinel error with the cipher and a detail message.
type ConfigError struct {
	Err    error  // Underlying sentinel error (ErrMissingKey, etc.)
	Cipher string // Cipher that rejected the configuration
	Detail string // Optional detail
}

func (e *ConfigError) Error() string {
	if e.Cipher != "" && e.Detail != "" {
		return fmt.Sprintf("%s for cipher %q: %s", e.Err.Error(), e.Cipher, e.Detail)
	}
	if e.Cipher != "" {
		return fmt.Sprintf("%s for cipher %q", e.Err.Error(), e.Cipher)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Detail)
	}
	return e.Err.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// TransformError represents a failed encode or decode dispatched by the registry.
// errors.Is matches both the operation sentinel and the cause.
type TransformError struct {
	Err       error  // ErrEncode or ErrDecode
	Cipher    string // Normalized cipher name
	Operation string // "encode" or "decode"
	Cause     error  // Error returned by the cipher
}

func (e *TransformError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s with %s: %v", e.Operation, e.Cipher, e.Cause)
	}
	return fmt.Sprintf("%s with %s", e.Operation, e.Cipher)
}

func (e *TransformError) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Err}
	}
	return []error{e.Err, e.Cause}
}

// CodecError represents a marshal/unmarshal error.
type CodecError struct {
	Err   error // Underlying sentinel error (ErrMarshal, ErrUnmarshal)
	Cause error // Original error from the codec
}

func (e *CodecError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Err.Error(), e.Cause)
	}
	return e.Err.Error()
}

func (e *CodecError) Unwrap() error {
	return e.Err
}

// newLookupError creates a LookupError for registry misses.
func newLookupError(sentinel error, name string) error {
	return &LookupError{
		Err:  sentinel,
		Name: name,
	}
}

// newConfigError creates a ConfigError for rejected cipher configuration.
func newConfigError(sentinel error, cipher, detail string) error {
	return &ConfigError{
		Err:    sentinel,
		Cipher: cipher,
		Detail: detail,
	}
}

// newTransformError creates a TransformError for a failed cipher call.
func newTransformError(sentinel error, operation, cipher string, cause error) error {
	return &TransformError{
		Err:       sentinel,
		Cipher:    cipher,
		Operation: operation,
		Cause:     cause,
	}
}

// newCodecError creates a CodecError for marshal/unmarshal failures.
func newCodecError(sentinel error, cause error) error {
	return &CodecError{
		Err:   sentinel,
		Cause: cause,
	}
}
