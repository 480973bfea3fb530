package yaml

import (
	"context"
	"errors"
	"testing"

	"github.com/zoobzio/codebook"
)

type dispatch struct {
	To    string   `yaml:"to"`
	Body  string   `yaml:"body" codebook:"vigenere"`
	Lines []string `yaml:"lines" codebook:"rail fence"`
}

func (d dispatch) Clone() dispatch {
	lines := make([]string, len(d.Lines))
	copy(lines, d.Lines)
	d.Lines = lines
	return d
}

func TestNew(t *testing.T) {
	c := New()
	if c == nil {
		t.Error("New() should return non-nil codec")
	}
}

func TestContentType(t *testing.T) {
	c := New()
	if c.ContentType() != "application/yaml" {
		t.Errorf("ContentType() = %q, want %q", c.ContentType(), "application/yaml")
	}
}

func TestMarshalUnmarshal(t *testing.T) {
	c := New()
	original := dispatch{To: "station", Body: "RIJVS", Lines: []string{"HLOEL"}}

	data, err := c.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal() error: %v", err)
	}

	var restored dispatch
	if err := c.Unmarshal(data, &restored); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}

	if restored.To != original.To || restored.Body != original.Body {
		t.Errorf("Unmarshal() = %+v, want %+v", restored, original)
	}
	if len(restored.Lines) != 1 || restored.Lines[0] != "HLOEL" {
		t.Errorf("Lines = %v, want [HLOEL]", restored.Lines)
	}
}

func TestUnmarshalInvalid(t *testing.T) {
	c := New()
	var restored dispatch
	if err := c.Unmarshal([]byte("to: [unclosed"), &restored); err == nil {
		t.Error("Unmarshal() should fail on malformed input")
	}
}

func TestProcessorRoundTrip(t *testing.T) {
	proc, err := codebook.NewProcessor[dispatch](New(),
		codebook.WithKey("vigenere", codebook.TextKey("KEY")),
		codebook.WithKey("rail fence", codebook.WidthKey(2)),
	)
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}

	ctx := context.Background()
	original := &dispatch{To: "station", Body: "HELLO", Lines: []string{"ATTACK AT DAWN"}}

	data, err := proc.Seal(ctx, original)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	if original.Body != "HELLO" {
		t.Errorf("Seal() mutated original: Body = %q", original.Body)
	}

	var sealed dispatch
	if err := New().Unmarshal(data, &sealed); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if sealed.Body != "RIJVS" {
		t.Errorf("sealed Body = %q, want %q", sealed.Body, "RIJVS")
	}
	if sealed.To != "station" {
		t.Errorf("sealed To = %q, untagged field should be unchanged", sealed.To)
	}

	opened, err := proc.Open(ctx, data)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if opened.Body != "HELLO" {
		t.Errorf("Open() Body = %q, want %q", opened.Body, "HELLO")
	}
	if len(opened.Lines) != 1 || opened.Lines[0] != "ATTACK AT DAWN" {
		t.Errorf("Open() Lines = %v, want [ATTACK AT DAWN]", opened.Lines)
	}
}

func TestProcessorOpenInvalid(t *testing.T) {
	proc, err := codebook.NewProcessor[dispatch](New())
	if err != nil {
		t.Fatalf("NewProcessor() error: %v", err)
	}
	_, err = proc.Open(context.Background(), []byte("to: [unclosed"))
	if !errors.Is(err, codebook.ErrUnmarshal) {
		t.Errorf("Open() error = %v, want ErrUnmarshal", err)
	}
}
