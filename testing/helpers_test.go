package testing

import (
	"testing"

	"github.com/zoobzio/codebook"
)

func TestSampleKey_Keyless(t *testing.T) {
	if !SampleKey(codebook.NameAtbash).IsZero() {
		t.Error("SampleKey(Atbash) should be the absent key")
	}
	if SampleKey(codebook.NameVigenere).Kind() != codebook.KeyText {
		t.Error("SampleKey(Vigenere) should be a text key")
	}
}

func TestRoundTrip_AllBuiltins(t *testing.T) {
	reg := codebook.NewRegistry()
	for _, name := range codebook.BuiltinNames() {
		t.Run(name.String(), func(t *testing.T) {
			c, err := reg.Lookup(name.String())
			if err != nil {
				t.Fatalf("Lookup() error: %v", err)
			}
			RoundTrip(t, c, Plaintext, SampleKey(name))
		})
	}
}

func TestDispatch_Clone(t *testing.T) {
	original := SampleDispatch()
	cloned := original.Clone()

	cloned.Lines[0] = "changed"
	cloned.Headers["to"] = "changed"
	cloned.Raw[0] = 'X'

	if original.Lines[0] != "ABC" {
		t.Error("Clone() should deep copy Lines")
	}
	if original.Headers["to"] != "STATION" {
		t.Error("Clone() should deep copy Headers")
	}
	if original.Raw[0] != 'U' {
		t.Error("Clone() should deep copy Raw")
	}
}

func TestPlainDispatch_Clone(t *testing.T) {
	original := PlainDispatch{ID: "1", From: "HQ"}
	if cloned := original.Clone(); cloned != original {
		t.Error("Clone() should copy all fields")
	}
}
