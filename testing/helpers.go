// Package testing provides test utilities for codebook.
package testing

import (
	"testing"

	"github.com/zoobzio/codebook"
)

// Plaintext is a message every built-in cipher round-trips exactly:
// upper-case letters only and no J.
const Plaintext = "ATTACKATDAWN"

// sampleKeys holds a working key for each built-in cipher that takes one.
var sampleKeys = map[codebook.CipherName]codebook.Key{
	codebook.NameAffine:              codebook.PairKey(7, 3),
	codebook.NameKeyword:             codebook.TextKey("ZEBRAS"),
	codebook.NameVigenere:            codebook.TextKey("LEMON"),
	codebook.NameBeaufort:            codebook.TextKey("FORTIFICATION"),
	codebook.NameAutokey:             codebook.TextKey("QUEENLY"),
	codebook.NameGronsfeld:           codebook.NumericKey("31415"),
	codebook.NamePorta:               codebook.TextKey("FORTIFICATION"),
	codebook.NameRailFence:           codebook.WidthKey(3),
	codebook.NameColumnar:            codebook.TextKey("ZEBRAS"),
	codebook.NameRoute:               codebook.WidthKey(4),
	codebook.NameScytale:             codebook.WidthKey(4),
	codebook.NameDoubleTransposition: codebook.DoubleKey("ZEBRAS", "STRIPE"),
	codebook.NameADFGVX:              codebook.TextKey("PRIVACY"),
	codebook.NameNihilist:            codebook.TextKey("RUSSIAN"),
	codebook.NameEnigma:              codebook.TextKey("ABC"),
	codebook.NameVIC:                 codebook.TextKey("LEMON"),
	codebook.NameXOR:                 codebook.TextKey("secret"),
}

// SampleKey returns a key that name accepts. Keyless ciphers get NoKey.
func SampleKey(name codebook.CipherName) codebook.Key {
	return sampleKeys[name]
}

// RoundTrip encodes then decodes text and fails t if the result differs.
// It returns the intermediate ciphertext.
func RoundTrip(t testing.TB, c codebook.Cipher, text string, key codebook.Key) string {
	t.Helper()
	ct, err := c.Encode(text, key)
	if err != nil {
		t.Fatalf("%s Encode() error: %v", c.Name(), err)
	}
	pt, err := c.Decode(ct, key)
	if err != nil {
		t.Fatalf("%s Decode() error: %v", c.Name(), err)
	}
	if pt != text {
		t.Errorf("%s round trip = %q (via %q), want %q", c.Name(), pt, ct, text)
	}
	return ct
}

// PlainDispatch is a test type with no cipher tags.
type PlainDispatch struct {
	ID   string `json:"id" yaml:"id" msgpack:"id" bson:"id"`
	From string `json:"from" yaml:"from" msgpack:"from" bson:"from"`
}

// Clone implements Cloner[PlainDispatch].
func (d PlainDispatch) Clone() PlainDispatch { return d }

// Dispatch is a test type with tagged fields of every supported shape.
type Dispatch struct {
	ID      string            `json:"id" yaml:"id" msgpack:"id" bson:"id"`
	Body    string            `json:"body" yaml:"body" msgpack:"body" bson:"body" codebook:"vigenere"`
	Code    string            `json:"code" yaml:"code" msgpack:"code" bson:"code" codebook:"morse"`
	Lines   []string          `json:"lines" yaml:"lines" msgpack:"lines" bson:"lines" codebook:"caesar"`
	Headers map[string]string `json:"headers" yaml:"headers" msgpack:"headers" bson:"headers" codebook:"atbash"`
	Raw     []byte            `json:"raw" yaml:"raw" msgpack:"raw" bson:"raw" codebook:"rot13"`
}

// Clone implements Cloner[Dispatch].
func (d Dispatch) Clone() Dispatch {
	c := d
	if d.Lines != nil {
		c.Lines = make([]string, len(d.Lines))
		copy(c.Lines, d.Lines)
	}
	if d.Headers != nil {
		c.Headers = make(map[string]string, len(d.Headers))
		for k, v := range d.Headers {
			c.Headers[k] = v
		}
	}
	if d.Raw != nil {
		c.Raw = append([]byte(nil), d.Raw...)
	}
	return c
}

// SampleDispatch returns a Dispatch whose tagged fields round-trip exactly
// under DispatchKeys.
func SampleDispatch() *Dispatch {
	return &Dispatch{
		ID:      "d-1",
		Body:    "HELLO",
		Code:    "SOS 1",
		Lines:   []string{"ABC", "XYZ!"},
		Headers: map[string]string{"to": "STATION", "from": "HQ"},
		Raw:     []byte("URGENT"),
	}
}

// DispatchKeys returns the processor options Dispatch needs.
func DispatchKeys() []codebook.ProcessorOption {
	return []codebook.ProcessorOption{
		codebook.WithKey("vigenere", codebook.TextKey("KEY")),
	}
}
