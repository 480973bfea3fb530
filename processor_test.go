package codebook

import (
	"context"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

// testCodec is a simple JSON codec for testing.
type testCodec struct{}

func (c *testCodec) ContentType() string { return "application/json" }

func (c *testCodec) Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

func (c *testCodec) Unmarshal(data []byte, v any) error {
	return json.Unmarshal(data, v)
}

// Note has a single keyless cipher field.
type Note struct {
	ID   string `json:"id"`
	Body string `json:"body" codebook:"caesar"`
}

func (n Note) Clone() Note { return n }

// Signature is reached through a pointer.
type Signature struct {
	Name string `json:"name" codebook:"atbash"`
}

// Meta is embedded by value.
type Meta struct {
	Subject string `json:"subject" codebook:"rot13"`
	Plain   string `json:"plain"`
}

// Letter mixes keyed, nested and pointer fields.
type Letter struct {
	ID   string     `json:"id"`
	Body string     `json:"body" codebook:"vigenere"`
	Meta Meta       `json:"meta"`
	Sign *Signature `json:"sign"`
	Skip string     `json:"skip" codebook:"-"`
}

func (l Letter) Clone() Letter {
	c := l
	if l.Sign != nil {
		s := *l.Sign
		c.Sign = &s
	}
	return c
}

// Bundle covers the collection field types.
type Bundle struct {
	Lines []string          `json:"lines" codebook:"caesar"`
	Tags  map[string]string `json:"tags" codebook:"atbash"`
	Raw   []byte            `json:"raw" codebook:"rot13"`
}

func (b Bundle) Clone() Bundle {
	c := Bundle{}
	if b.Lines != nil {
		c.Lines = append([]string(nil), b.Lines...)
	}
	if b.Tags != nil {
		c.Tags = make(map[string]string, len(b.Tags))
		for k, v := range b.Tags {
			c.Tags[k] = v
		}
	}
	if b.Raw != nil {
		c.Raw = append([]byte(nil), b.Raw...)
	}
	return c
}

func TestNewProcessor(t *testing.T) {
	proc, err := NewProcessor[Note](&testCodec{})
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}
	if proc == nil {
		t.Error("NewProcessor() returned nil")
	}
}

type UnknownTagNote struct {
	Body string `json:"body" codebook:"playfair"`
}

func (n UnknownTagNote) Clone() UnknownTagNote { return n }

func TestNewProcessor_UnknownTag(t *testing.T) {
	_, err := NewProcessor[UnknownTagNote](&testCodec{})
	if !errors.Is(err, ErrInvalidTag) {
		t.Errorf("NewProcessor() error = %v, want ErrInvalidTag", err)
	}
}

type UnsupportedTypeNote struct {
	Count int `json:"count" codebook:"caesar"`
}

func (n UnsupportedTypeNote) Clone() UnsupportedTypeNote { return n }

func TestNewProcessor_UnsupportedType(t *testing.T) {
	_, err := NewProcessor[UnsupportedTypeNote](&testCodec{})
	if !errors.Is(err, ErrInvalidTag) {
		t.Errorf("NewProcessor() error = %v, want ErrInvalidTag", err)
	}
}

func TestProcessor_Fields(t *testing.T) {
	proc, err := NewProcessor[Letter](&testCodec{})
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	want := []string{"Body", "Meta.Subject", "Sign.Name"}
	if got := proc.Fields(); !reflect.DeepEqual(got, want) {
		t.Errorf("Fields() = %v, want %v", got, want)
	}
}

func TestProcessor_SealOpen(t *testing.T) {
	ctx := context.Background()
	proc, err := NewProcessor[Note](&testCodec{})
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	note := &Note{ID: "n1", Body: "HELLO"}
	data, err := proc.Seal(ctx, note)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	if !strings.Contains(string(data), `"body":"KHOOR"`) {
		t.Errorf("Seal() = %s, want body encoded", data)
	}
	if note.Body != "HELLO" {
		t.Errorf("Seal() mutated original: Body = %q", note.Body)
	}

	back, err := proc.Open(ctx, data)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if back.ID != "n1" || back.Body != "HELLO" {
		t.Errorf("Open() = %+v, want %+v", back, note)
	}
}

func TestProcessor_NestedAndPointer(t *testing.T) {
	ctx := context.Background()
	proc, err := NewProcessor[Letter](&testCodec{}, WithKey("Vigenere", TextKey("KEY")))
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	letter := &Letter{
		ID:   "l1",
		Body: "HELLO",
		Meta: Meta{Subject: "HELLO", Plain: "HELLO"},
		Sign: &Signature{Name: "ABC"},
		Skip: "HELLO",
	}

	data, err := proc.Seal(ctx, letter)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	var raw Letter
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if raw.Body != "RIJVS" {
		t.Errorf("sealed Body = %q, want %q", raw.Body, "RIJVS")
	}
	if raw.Meta.Subject != "URYYB" || raw.Meta.Plain != "HELLO" {
		t.Errorf("sealed Meta = %+v", raw.Meta)
	}
	if raw.Sign.Name != "ZYX" {
		t.Errorf("sealed Sign.Name = %q, want %q", raw.Sign.Name, "ZYX")
	}
	if raw.Skip != "HELLO" {
		t.Errorf("sealed Skip = %q, want untouched", raw.Skip)
	}
	if letter.Sign.Name != "ABC" {
		t.Error("Seal() mutated original through pointer")
	}

	back, err := proc.Open(ctx, data)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if !reflect.DeepEqual(back, letter) {
		t.Errorf("Open() = %+v, want %+v", back, letter)
	}
}

func TestProcessor_NilPointerField(t *testing.T) {
	ctx := context.Background()
	proc, _ := NewProcessor[Letter](&testCodec{}, WithKey("vigenere", TextKey("KEY")))

	data, err := proc.Seal(ctx, &Letter{ID: "l2", Body: "HELLO"})
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	back, err := proc.Open(ctx, data)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if back.Sign != nil || back.Body != "HELLO" {
		t.Errorf("Open() = %+v", back)
	}
}

func TestProcessor_Collections(t *testing.T) {
	ctx := context.Background()
	proc, err := NewProcessor[Bundle](&testCodec{})
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	bundle := &Bundle{
		Lines: []string{"ABC", "XYZ"},
		Tags:  map[string]string{"to": "ABC"},
		Raw:   []byte("HELLO"),
	}

	data, err := proc.Seal(ctx, bundle)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}

	var raw Bundle
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("json.Unmarshal() error: %v", err)
	}
	if !reflect.DeepEqual(raw.Lines, []string{"DEF", "ABC"}) {
		t.Errorf("sealed Lines = %v", raw.Lines)
	}
	if raw.Tags["to"] != "ZYX" {
		t.Errorf("sealed Tags = %v", raw.Tags)
	}
	if string(raw.Raw) != "URYYB" {
		t.Errorf("sealed Raw = %q", raw.Raw)
	}
	if bundle.Lines[0] != "ABC" || bundle.Tags["to"] != "ABC" {
		t.Error("Seal() mutated original collections")
	}

	back, err := proc.Open(ctx, data)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if !reflect.DeepEqual(back, bundle) {
		t.Errorf("Open() = %+v, want %+v", back, bundle)
	}
}

func TestProcessor_SetKey(t *testing.T) {
	ctx := context.Background()
	proc, _ := NewProcessor[Letter](&testCodec{})

	_, err := proc.Seal(ctx, &Letter{Body: "HELLO"})
	if !errors.Is(err, ErrMissingKey) {
		t.Errorf("Seal() without key error = %v, want ErrMissingKey", err)
	}

	result := proc.SetKey("VIGENERE", TextKey("KEY"))
	if result != proc {
		t.Error("SetKey() should return processor for chaining")
	}

	data, err := proc.Seal(ctx, &Letter{Body: "HELLO"})
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	if !strings.Contains(string(data), `"body":"RIJVS"`) {
		t.Errorf("Seal() = %s", data)
	}
}

func TestProcessor_WithRegistry(t *testing.T) {
	reg := NewRegistry(WithCipher(CaesarWithShift(1)))
	proc, err := NewProcessor[Note](&testCodec{}, WithRegistry(reg))
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	data, err := proc.Seal(context.Background(), &Note{Body: "HELLO"})
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	if !strings.Contains(string(data), `"body":"IFMMP"`) {
		t.Errorf("Seal() = %s", data)
	}
}

func TestProcessor_SealNil(t *testing.T) {
	proc, _ := NewProcessor[Note](&testCodec{})

	data, err := proc.Seal(context.Background(), nil)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("Seal(nil) = %s, want null", data)
	}
}

func TestProcessor_OpenInvalid(t *testing.T) {
	proc, _ := NewProcessor[Note](&testCodec{})

	_, err := proc.Open(context.Background(), []byte("{not json"))
	if !errors.Is(err, ErrUnmarshal) {
		t.Errorf("Open() error = %v, want ErrUnmarshal", err)
	}
	var ce *CodecError
	if !errors.As(err, &ce) || ce.Cause == nil {
		t.Error("Open() should return *CodecError with the codec's error")
	}
}

type ChanNote struct {
	Body string   `json:"body" codebook:"caesar"`
	Ch   chan int `json:"ch"`
}

func (n ChanNote) Clone() ChanNote { return n }

func TestProcessor_SealMarshalError(t *testing.T) {
	proc, err := NewProcessor[ChanNote](&testCodec{})
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	_, err = proc.Seal(context.Background(), &ChanNote{Body: "HELLO", Ch: make(chan int)})
	if !errors.Is(err, ErrMarshal) {
		t.Errorf("Seal() error = %v, want ErrMarshal", err)
	}
}

// OverrideNote encodes its own fields.
type OverrideNote struct {
	Body  string `json:"body"`
	Extra string `json:"extra"`
}

func (n OverrideNote) Clone() OverrideNote { return n }

func (n *OverrideNote) EncodeFields(encode TransformFunc) error {
	var err error
	if n.Body, err = encode("atbash", n.Body); err != nil {
		return err
	}
	n.Extra, err = encode("rot13", n.Extra)
	return err
}

func (n *OverrideNote) DecodeFields(decode TransformFunc) error {
	var err error
	if n.Body, err = decode("atbash", n.Body); err != nil {
		return err
	}
	n.Extra, err = decode("rot13", n.Extra)
	return err
}

func TestProcessor_Overrides(t *testing.T) {
	ctx := context.Background()
	proc, err := NewProcessor[OverrideNote](&testCodec{})
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}
	if len(proc.Fields()) != 0 {
		t.Errorf("Fields() = %v, want none", proc.Fields())
	}

	note := &OverrideNote{Body: "ABC", Extra: "HELLO"}
	data, err := proc.Seal(ctx, note)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	if !strings.Contains(string(data), `"body":"ZYX"`) || !strings.Contains(string(data), `"extra":"URYYB"`) {
		t.Errorf("Seal() = %s", data)
	}

	back, err := proc.Open(ctx, data)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if *back != *note {
		t.Errorf("Open() = %+v, want %+v", back, note)
	}
}

// FailingOverride reports an unknown cipher from its override.
type FailingOverride struct {
	Body string `json:"body"`
}

func (n FailingOverride) Clone() FailingOverride { return n }

func (n *FailingOverride) EncodeFields(encode TransformFunc) error {
	var err error
	n.Body, err = encode("playfair", n.Body)
	return err
}

func TestProcessor_OverrideError(t *testing.T) {
	proc, _ := NewProcessor[FailingOverride](&testCodec{})

	_, err := proc.Seal(context.Background(), &FailingOverride{Body: "A"})
	if !errors.Is(err, ErrCipherNotFound) {
		t.Errorf("Seal() error = %v, want ErrCipherNotFound", err)
	}
}

func TestUse(t *testing.T) {
	Reset()
	defer Reset()

	a, err := Use[Note](&testCodec{})
	if err != nil {
		t.Fatalf("Use() error: %v", err)
	}
	b, err := Use[Note](&testCodec{})
	if err != nil {
		t.Fatalf("Use() error: %v", err)
	}
	if a != b {
		t.Error("Use() should return the cached processor")
	}

	Reset()
	c, _ := Use[Note](&testCodec{})
	if c == a {
		t.Error("Use() after Reset() should build a new processor")
	}
}

func TestUse_InvalidTag(t *testing.T) {
	Reset()
	defer Reset()

	if _, err := Use[UnknownTagNote](&testCodec{}); !errors.Is(err, ErrInvalidTag) {
		t.Errorf("Use() error = %v, want ErrInvalidTag", err)
	}
}
