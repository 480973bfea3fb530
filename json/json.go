// Package json provides a JSON codec implementation.
package json

import (
	"bytes"
	"encoding/json"

	"github.com/zoobzio/codebook"
)

// jsonCodec implements codebook.Codec for JSON.
type jsonCodec struct{}

// New returns a JSON codec. Output is not HTML-escaped, so ciphertext
// containing <, > or & is written as is.
func New() codebook.Codec {
	return &jsonCodec{}
}

// ContentType returns the MIME type for JSON.
func (c *jsonCodec) ContentType() string {
	return "application/json"
}

// Marshal encodes v as compact JSON without a trailing newline.
func (c *jsonCodec) Marshal(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Unmarshal decodes JSON data into v.
func (c *jsonCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}
