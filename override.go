package codebook

// Override interfaces allow types to bypass reflection-based processing.
// When a type implements one of these interfaces, the Processor calls the
// interface method instead of walking tagged fields.

// TransformFunc runs the named cipher over text with the key configured on
// the processor for that cipher.
type TransformFunc func(cipher, text string) (string, error)

// Encodable bypasses reflection for Seal.
type Encodable interface {
	// EncodeFields encodes the receiver's fields in place.
	// The receiver is a clone, so mutations are safe.
	EncodeFields(encode TransformFunc) error
}

// Decodable bypasses reflection for Open.
type Decodable interface {
	// DecodeFields decodes the receiver's fields in place.
	// Called on freshly unmarshaled data.
	DecodeFields(decode TransformFunc) error
}
