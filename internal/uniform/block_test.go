package uniform

import (
	"errors"
	"testing"

	"raymarch-renderer/internal/mathutil"
)

func TestTypedGetters(t *testing.T) {
	b := NewBlock()
	b.SetFloat("_f", 1.5)
	b.SetInt("_i", 7)
	b.SetVector("_v", mathutil.Vec4{1, 2, 3, 4})
	b.SetColor("_c", mathutil.Vec4{0.5, 0.5, 0.5, 1})
	b.SetMatrix("_m", mathutil.Mat4Identity())

	if f, err := b.Float("_f"); err != nil || f != 1.5 {
		t.Errorf("Float = %g, %v", f, err)
	}
	if i, err := b.Int("_i"); err != nil || i != 7 {
		t.Errorf("Int = %d, %v", i, err)
	}
	if v, err := b.Vector("_v"); err != nil || v != (mathutil.Vec4{1, 2, 3, 4}) {
		t.Errorf("Vector = %v, %v", v, err)
	}
	if c, err := b.Color("_c"); err != nil || c[3] != 1 {
		t.Errorf("Color = %v, %v", c, err)
	}
	if m, err := b.Matrix("_m"); err != nil || m != mathutil.Mat4Identity() {
		t.Errorf("Matrix = %v, %v", m, err)
	}
}

func TestGetterErrors(t *testing.T) {
	b := NewBlock()
	b.SetInt("_i", 1)
	if _, err := b.Float("_missing"); !errors.Is(err, ErrMissing) {
		t.Errorf("missing: %v", err)
	}
	if _, err := b.Float("_i"); !errors.Is(err, ErrKind) {
		t.Errorf("kind: %v", err)
	}
}

func TestSchemaCheck(t *testing.T) {
	schema := Schema{{"_a", Float}, {"_b", Color}}

	ok := NewBlock()
	ok.SetFloat("_a", 1)
	ok.SetColor("_b", mathutil.Vec4{})
	if err := schema.Check(ok); err != nil {
		t.Fatalf("valid block rejected: %v", err)
	}

	bad := NewBlock()
	bad.SetInt("_a", 1)
	bad.SetFloat("_extra", 2)
	err := schema.Check(bad)
	for _, want := range []error{ErrKind, ErrMissing, ErrUnknown} {
		if !errors.Is(err, want) {
			t.Errorf("Check error %v does not include %v", err, want)
		}
	}
}

func TestSchemaDuplicate(t *testing.T) {
	schema := Schema{{"_a", Float}, {"_a", Float}}
	b := NewBlock()
	b.SetFloat("_a", 1)
	if err := schema.Check(b); !errors.Is(err, ErrDeclared) {
		t.Errorf("err = %v, want ErrDeclared", err)
	}
}
