package codebook

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"

	"golang.org/x/text/cases"
)

// Normalize returns the registry key for a cipher name: Unicode case folded
// with all whitespace removed. "Rail Fence", "railfence" and " RAIL fence "
// normalize alike.
func Normalize(name string) string {
	folded := cases.Fold().String(name)
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, folded)
}

// Registry maps normalized cipher names to instances.
//
// A Registry is immutable after NewRegistry returns and safe for concurrent use.
type Registry struct {
	ciphers map[string]Cipher
	order   []string
}

// Option configures a Registry.
type Option func(*Registry)

// WithCipher registers c under Normalize(c.Name()), replacing any built-in
// cipher with the same normalized name. New names are appended to List order.
func WithCipher(c Cipher) Option {
	return func(r *Registry) {
		r.add(c)
	}
}

// NewRegistry builds one instance of every built-in cipher, then applies opts.
func NewRegistry(opts ...Option) *Registry {
	builtin := builtinCiphers()
	r := &Registry{
		ciphers: make(map[string]Cipher, len(builtin)),
		order:   make([]string, 0, len(builtin)),
	}
	for _, c := range builtin {
		r.add(c)
	}
	for _, opt := range opts {
		opt(r)
	}

	emitRegistryCreated(context.Background(), len(r.order))
	return r
}

func (r *Registry) add(c Cipher) {
	name := Normalize(c.Name())
	if _, exists := r.ciphers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.ciphers[name] = c
}

var defaultRegistry = sync.OnceValue(func() *Registry {
	return NewRegistry()
})

// Default returns the shared registry of built-in ciphers.
func Default() *Registry {
	return defaultRegistry()
}

// Lookup returns the cipher registered under name.
func (r *Registry) Lookup(name string) (Cipher, error) {
	if strings.TrimSpace(name) == "" {
		return nil, newLookupError(ErrMissingCipherName, "")
	}
	c, ok := r.ciphers[Normalize(name)]
	if !ok {
		return nil, newLookupError(ErrCipherNotFound, name)
	}
	return c, nil
}

// List returns the normalized names in registration order.
func (r *Registry) List() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered ciphers.
func (r *Registry) Len() int {
	return len(r.order)
}

// Encode encodes text with the named cipher.
// Lookup failures return *LookupError; cipher failures return *TransformError
// matching both ErrEncode and the cipher's own error.
func (r *Registry) Encode(ctx context.Context, text string, key Key, name string) (string, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return "", err
	}

	cipher := Normalize(name)
	start := time.Now()
	emitEncodeStart(ctx, cipher, key, len(text))

	out, err := c.Encode(text, key)
	if err != nil {
		err = newTransformError(ErrEncode, "encode", cipher, err)
		out = ""
	}
	emitEncodeComplete(ctx, cipher, key, len(out), time.Since(start), err)
	return out, err
}

// Decode decodes text with the named cipher.
// Errors follow Encode, with ErrDecode in place of ErrEncode.
func (r *Registry) Decode(ctx context.Context, text string, key Key, name string) (string, error) {
	c, err := r.Lookup(name)
	if err != nil {
		return "", err
	}

	cipher := Normalize(name)
	start := time.Now()
	emitDecodeStart(ctx, cipher, key, len(text))

	out, err := c.Decode(text, key)
	if err != nil {
		err = newTransformError(ErrDecode, "decode", cipher, err)
		out = ""
	}
	emitDecodeComplete(ctx, cipher, key, len(out), time.Since(start), err)
	return out, err
}
